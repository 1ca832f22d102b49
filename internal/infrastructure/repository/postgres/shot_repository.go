package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/euroleague-stats/internal/domain/shot"
	qb "github.com/riskibarqy/euroleague-stats/internal/platform/querybuilder"
)

type ShotRepository struct {
	writer batchWriter
}

func NewShotRepository(db *sqlx.DB, batchSize int) *ShotRepository {
	return &ShotRepository{writer: newBatchWriter(db, batchSize)}
}

var _ shot.Repository = (*ShotRepository)(nil)

func (r *ShotRepository) UpsertShots(ctx context.Context, table string, shots []shot.Shot) error {
	models := make([]shotInsertModel, 0, len(shots))
	for _, s := range shots {
		models = append(models, toShotInsertModel(s))
	}
	models = lastByKey(models, shotKey)

	suffix, err := upsertSuffix(shotInsertModel{}, shotConflictKeys)
	if err != nil {
		return err
	}
	return r.writer.upsert(ctx, table, "shots", len(models), func(lo, hi int) (string, []any, error) {
		return qb.InsertModels(table, models[lo:hi], suffix)
	})
}

func (r *ShotRepository) UpsertAverages(ctx context.Context, table string, averages []shot.ZoneAverage) error {
	models := make([]averageInsertModel, 0, len(averages))
	for _, a := range averages {
		models = append(models, toAverageInsertModel(a))
	}
	models = lastByKey(models, averageKey)

	suffix, err := upsertSuffix(averageInsertModel{}, averageConflictKeys)
	if err != nil {
		return err
	}
	return r.writer.upsert(ctx, table, "shot averages", len(models), func(lo, hi int) (string, []any, error) {
		return qb.InsertModels(table, models[lo:hi], suffix)
	})
}
