package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/euroleague-stats/internal/domain/gamelog"
	qb "github.com/riskibarqy/euroleague-stats/internal/platform/querybuilder"
)

type GameLogRepository struct {
	writer batchWriter
}

func NewGameLogRepository(db *sqlx.DB, batchSize int) *GameLogRepository {
	return &GameLogRepository{writer: newBatchWriter(db, batchSize)}
}

var _ gamelog.Repository = (*GameLogRepository)(nil)

func (r *GameLogRepository) UpsertGameLogs(ctx context.Context, table string, rows []gamelog.Row) error {
	models := make([]gameLogInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, toGameLogInsertModel(row))
	}
	models = lastByKey(models, gameLogKey)

	suffix, err := upsertSuffix(gameLogInsertModel{}, gameLogConflictKeys)
	if err != nil {
		return err
	}
	return r.writer.upsert(ctx, table, "game logs", len(models), func(lo, hi int) (string, []any, error) {
		return qb.InsertModels(table, models[lo:hi], suffix)
	})
}
