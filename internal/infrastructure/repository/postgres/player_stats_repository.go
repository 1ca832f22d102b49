package postgres

import (
	"context"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/euroleague-stats/internal/domain/playerstats"
	qb "github.com/riskibarqy/euroleague-stats/internal/platform/querybuilder"
)

var playerStatsConflictKeys = []string{"player_code", "season", "phase", "player_team_code"}

type PlayerStatsRepository struct {
	writer batchWriter
}

func NewPlayerStatsRepository(db *sqlx.DB, batchSize int) *PlayerStatsRepository {
	return &PlayerStatsRepository{writer: newBatchWriter(db, batchSize)}
}

var _ playerstats.Repository = (*PlayerStatsRepository)(nil)

func (r *PlayerStatsRepository) UpsertSeasonStats(ctx context.Context, table string, stats []playerstats.SeasonStats) error {
	stats = lastByKey(stats, playerStatsKey)
	return r.writer.upsert(ctx, table, "player stats", len(stats), func(lo, hi int) (string, []any, error) {
		return buildPlayerStatsUpsert(table, stats[lo:hi])
	})
}

// Stat columns come from the endpoint column registry, so rows are built
// positionally rather than from a tagged model.
func playerStatsColumns() []string {
	stats := playerstats.AllColumns()
	cols := make([]string, 0, len(stats)+8)
	cols = append(cols,
		"player_code",
		"player_name",
		"player_age",
		"player_imageurl",
		"player_team_code",
		"player_team_name",
	)
	for _, col := range stats {
		cols = append(cols, col.DB)
	}
	return append(cols, "season", "phase")
}

func playerStatsValues(s playerstats.SeasonStats) []any {
	stats := playerstats.AllColumns()
	values := make([]any, 0, len(stats)+8)
	values = append(values,
		s.PlayerCode,
		nullableString(s.PlayerName),
		s.PlayerAge,
		nullableString(s.ImageURL),
		s.TeamCode,
		nullableString(s.TeamName),
	)
	for _, col := range stats {
		values = append(values, s.Value(col.Field))
	}
	return append(values, s.Season, s.Phase)
}

func buildPlayerStatsUpsert(table string, stats []playerstats.SeasonStats) (string, []any, error) {
	columns := playerStatsColumns()
	builder := qb.InsertInto(table).
		Columns(columns...).
		Suffix(qb.OnConflictUpdate(playerStatsConflictKeys, columns))
	for _, s := range stats {
		builder.Values(playerStatsValues(s)...)
	}
	return builder.ToSQL()
}

func playerStatsKey(s playerstats.SeasonStats) string {
	return s.PlayerCode + "|" + strconv.Itoa(s.Season) + "|" + s.Phase + "|" + s.TeamCode
}
