package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/euroleague-stats/internal/domain/schedule"
	qb "github.com/riskibarqy/euroleague-stats/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	writer batchWriter
}

func NewScheduleRepository(db *sqlx.DB, batchSize int) *ScheduleRepository {
	return &ScheduleRepository{writer: newBatchWriter(db, batchSize)}
}

var _ schedule.Repository = (*ScheduleRepository)(nil)

func (r *ScheduleRepository) UpsertRecords(ctx context.Context, table string, entries []schedule.RecordEntry) error {
	models := make([]scheduleInsertModel, 0, len(entries))
	for _, e := range entries {
		models = append(models, toScheduleInsertModel(e))
	}
	models = lastByKey(models, scheduleKey)

	suffix, err := upsertSuffix(scheduleInsertModel{}, scheduleConflictKeys)
	if err != nil {
		return err
	}
	return r.writer.upsert(ctx, table, "schedule results", len(models), func(lo, hi int) (string, []any, error) {
		return qb.InsertModels(table, models[lo:hi], suffix)
	})
}
