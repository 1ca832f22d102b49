package schedule

import "context"

// Repository persists team record entries into a competition results table.
type Repository interface {
	UpsertRecords(ctx context.Context, table string, entries []RecordEntry) error
}
