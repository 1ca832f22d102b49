package cell

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 2^63, the first float64 beyond int64.
const maxIntCell = float64(1 << 63)

func isBlank(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "DNP", "None", "null":
		return true
	}
	return false
}

// Float reads a numeric provider cell. Blank markers such as DNP map to nil.
func Float(v any) (*float64, error) {
	var f float64
	switch value := v.(type) {
	case nil:
		return nil, nil
	case float64:
		f = value
	case int:
		f = float64(value)
	case int64:
		f = float64(value)
	case string:
		if isBlank(value) {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("parse numeric cell %q: %w", value, err)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("unsupported cell type %T", v)
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	return &f, nil
}

// Int reads a numeric cell and truncates it toward zero. Infinite values and
// magnitudes outside the int64 range are rejected.
func Int(v any) (*int, error) {
	f, err := Float(v)
	if err != nil || f == nil {
		return nil, err
	}
	if math.IsInf(*f, 0) || *f >= maxIntCell || *f < -maxIntCell {
		return nil, fmt.Errorf("integer cell %v out of range", *f)
	}
	n := int(*f)
	return &n, nil
}

// String renders a cell as text. Blank markers map to nil.
func String(v any) *string {
	var s string
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		s = value
	case float64:
		s = strconv.FormatFloat(value, 'f', -1, 64)
	default:
		s = fmt.Sprint(value)
	}
	if s == "" || s == "None" {
		return nil
	}
	return &s
}
