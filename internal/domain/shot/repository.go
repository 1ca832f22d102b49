package shot

import "context"

// Repository persists classified shots and league averages for one competition table set.
type Repository interface {
	UpsertShots(ctx context.Context, table string, shots []Shot) error
	UpsertAverages(ctx context.Context, table string, averages []ZoneAverage) error
}
