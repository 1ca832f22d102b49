package result

import (
	"fmt"
	"strings"
)

// Policy decides what happens to a batch when one of its rows fails to map.
type Policy string

const (
	PolicySkip  Policy = "skip"
	PolicyAbort Policy = "abort"
)

// ParsePolicy accepts skip or abort, case-insensitively. Empty means skip.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicySkip:
		return PolicySkip, nil
	case PolicyAbort:
		return PolicyAbort, nil
	default:
		return "", fmt.Errorf("unknown row error policy %q", value)
	}
}

// Row is one mapped input row. Index is the position in the provider payload.
type Row[T any] struct {
	Index int
	Value T
	Err   error
}

func OK[T any](index int, value T) Row[T] {
	return Row[T]{Index: index, Value: value}
}

func Fail[T any](index int, err error) Row[T] {
	return Row[T]{Index: index, Err: err}
}

// RowError wraps the first failing row of an aborted batch.
type RowError struct {
	Index int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Collect splits rows into values and failures. Under PolicyAbort the first
// failure stops the batch and is returned as a *RowError.
func Collect[T any](rows []Row[T], policy Policy) ([]T, []Row[T], error) {
	values := make([]T, 0, len(rows))
	var failed []Row[T]
	for _, row := range rows {
		if row.Err == nil {
			values = append(values, row.Value)
			continue
		}
		if policy == PolicyAbort {
			return nil, []Row[T]{row}, &RowError{Index: row.Index, Err: row.Err}
		}
		failed = append(failed, row)
	}
	return values, failed, nil
}
