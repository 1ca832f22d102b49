package playerstats

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseValue reads a provider stat cell. "45.5%" becomes 0.455, numeric
// strings and numbers are kept, anything else is null.
func ParseValue(v any) decimal.NullDecimal {
	switch value := v.(type) {
	case nil:
		return decimal.NullDecimal{}
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(value))
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(value)))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(value))
	case string:
		s := strings.TrimSpace(value)
		if pct, ok := strings.CutSuffix(s, "%"); ok {
			d, err := decimal.NewFromString(strings.TrimSpace(pct))
			if err != nil {
				return decimal.NullDecimal{}
			}
			return decimal.NewNullDecimal(d.Div(hundred))
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	default:
		return decimal.NullDecimal{}
	}
}

// SelectColumns keeps only the endpoint's configured stats from a raw field map.
func SelectColumns(endpoint string, raw map[string]any) map[string]decimal.NullDecimal {
	columns := ColumnsOf(endpoint)
	out := make(map[string]decimal.NullDecimal, len(columns))
	for _, col := range columns {
		if v, ok := raw[col.Field]; ok {
			out[col.Field] = ParseValue(v)
		}
	}
	return out
}

func identityKey(id Identity) string {
	age := ""
	if id.PlayerAge != nil {
		age = strconv.Itoa(*id.PlayerAge)
	}
	return strings.Join([]string{id.PlayerCode, id.PlayerName, age, id.ImageURL, id.TeamCode, id.TeamName}, "\x1f")
}

// Merge outer-joins the per-endpoint lines on the player identity and stamps
// season and phase. Output follows first appearance across the endpoints.
func Merge(season int, phase string, endpoints ...[]Line) []SeasonStats {
	index := make(map[string]int, 256)
	out := make([]SeasonStats, 0, 256)
	for _, lines := range endpoints {
		for _, line := range lines {
			key := identityKey(line.Identity)
			pos, ok := index[key]
			if !ok {
				pos = len(out)
				index[key] = pos
				out = append(out, SeasonStats{
					Identity: line.Identity,
					Season:   season,
					Phase:    phase,
					Values:   make(map[string]decimal.NullDecimal, 40),
				})
			}
			for field, value := range line.Values {
				out[pos].Values[field] = value
			}
		}
	}
	return out
}

type dedupeKey struct {
	playerCode string
	season     int
	phase      string
	teamCode   string
}

// Dedupe drops repeated (player code, season, phase, team code) lines, keeping
// the last one at the position of the first.
func Dedupe(stats []SeasonStats) []SeasonStats {
	index := make(map[dedupeKey]int, len(stats))
	out := make([]SeasonStats, 0, len(stats))
	for _, s := range stats {
		key := dedupeKey{playerCode: s.PlayerCode, season: s.Season, phase: s.Phase, teamCode: s.TeamCode}
		if pos, ok := index[key]; ok {
			out[pos] = s
			continue
		}
		index[key] = len(out)
		out = append(out, s)
	}
	return out
}
