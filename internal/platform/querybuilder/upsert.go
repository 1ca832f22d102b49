package querybuilder

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// InsertModels builds one multi-row insert from models sharing a struct type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	var columns []string
	for i := range models {
		cols, vals, err := columnsAndValuesFromModel(models[i])
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if columns == nil {
			columns = cols
			builder.Columns(cols...)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

// ModelColumns returns the db-tagged columns of a model in field order.
func ModelColumns(model any) ([]string, error) {
	cols, _, err := columnsAndValuesFromModel(model)
	return cols, err
}

// OnConflictUpdate renders an upsert suffix that overwrites every non-key
// column with the incoming row.
func OnConflictUpdate(keys, columns []string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("ON CONFLICT (")
	for i, key := range keys {
		if i > 0 {
			_, _ = buf.WriteString(", ")
		}
		_, _ = buf.WriteString(key)
	}
	_, _ = buf.WriteString(")")

	isKey := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		isKey[key] = struct{}{}
	}

	wrote := 0
	for _, col := range columns {
		if _, skip := isKey[col]; skip {
			continue
		}
		if wrote == 0 {
			_, _ = buf.WriteString(" DO UPDATE SET ")
		} else {
			_, _ = buf.WriteString(", ")
		}
		_, _ = buf.WriteString(col)
		_, _ = buf.WriteString(" = EXCLUDED.")
		_, _ = buf.WriteString(col)
		wrote++
	}
	if wrote == 0 {
		_, _ = buf.WriteString(" DO NOTHING")
	}
	return buf.String()
}

// Chunks splits n items into [lo, hi) ranges of at most size items.
func Chunks(n, size int) [][2]int {
	if n <= 0 {
		return nil
	}
	if size <= 0 || size > n {
		size = n
	}
	out := make([][2]int, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}
