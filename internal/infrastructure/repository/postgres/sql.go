package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	qb "github.com/riskibarqy/euroleague-stats/internal/platform/querybuilder"
)

const (
	DefaultUpsertBatchSize = 500

	undefinedTableCode = "42P01"
)

var (
	ErrMissingTable     = errors.New("table does not exist, run migrations")
	ErrInvalidTableName = errors.New("invalid table name")
)

func annotateTableError(table string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTableCode {
		return fmt.Errorf("%w: %s: %w", ErrMissingTable, table, err)
	}
	return err
}

// validateTable accepts lower-case identifiers only, since table names are
// interpolated into the statement.
func validateTable(table string) error {
	if table == "" {
		return ErrInvalidTableName
	}
	for _, r := range table {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
		}
	}
	return nil
}

type batchWriter struct {
	db        *sqlx.DB
	batchSize int
}

func newBatchWriter(db *sqlx.DB, batchSize int) batchWriter {
	if batchSize <= 0 {
		batchSize = DefaultUpsertBatchSize
	}
	return batchWriter{db: db, batchSize: batchSize}
}

// upsert runs build for every batch of n items inside one transaction.
func (w batchWriter) upsert(ctx context.Context, table, label string, n int, build func(lo, hi int) (string, []any, error)) error {
	if n == 0 {
		return nil
	}
	if err := validateTable(table); err != nil {
		return err
	}

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert %s: %w", label, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, chunk := range qb.Chunks(n, w.batchSize) {
		query, args, err := build(chunk[0], chunk[1])
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s rows %d-%d: %w", label, chunk[0], chunk[1], annotateTableError(table, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert %s tx: %w", label, err)
	}
	return nil
}

// lastByKey keeps the last item per key at the position of the first one.
// A single INSERT ... ON CONFLICT DO UPDATE cannot touch the same row twice.
func lastByKey[T any](items []T, key func(T) string) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	v := value
	return &v
}

func upsertSuffix(model any, keys []string) (string, error) {
	columns, err := qb.ModelColumns(model)
	if err != nil {
		return "", fmt.Errorf("resolve upsert columns: %w", err)
	}
	return qb.OnConflictUpdate(keys, columns), nil
}
