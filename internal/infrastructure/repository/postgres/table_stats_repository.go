package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/euroleague-stats/internal/platform/querybuilder"
)

// TableStatsRepository reports stored row counts after a sync.
type TableStatsRepository struct {
	db *sqlx.DB
}

func NewTableStatsRepository(db *sqlx.DB) *TableStatsRepository {
	return &TableStatsRepository{db: db}
}

type seasonCountRow struct {
	Season int `db:"season"`
	Total  int `db:"total"`
}

func (r *TableStatsRepository) CountBySeason(ctx context.Context, table string, seasons []int) (map[int]int, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	query, args, err := buildCountBySeason(table, seasons)
	if err != nil {
		return nil, fmt.Errorf("build count rows query: %w", err)
	}

	var rows []seasonCountRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count rows table=%s: %w", table, annotateTableError(table, err))
	}

	out := make(map[int]int, len(rows))
	for _, row := range rows {
		out[row.Season] = row.Total
	}
	return out, nil
}

func buildCountBySeason(table string, seasons []int) (string, []any, error) {
	values := make([]any, 0, len(seasons))
	for _, season := range seasons {
		values = append(values, season)
	}
	return qb.Select("season", "COUNT(1) AS total").
		From(table).
		Where(qb.In("season", values)).
		GroupBy("season").
		OrderBy("season").
		ToSQL()
}
