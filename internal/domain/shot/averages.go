package shot

import "sort"

type averageKey struct {
	season int
	zone   Zone
}

// LeagueAverages aggregates shots per (season, zone). Sorted by season desc, then zone.
func LeagueAverages(shots []Shot) []ZoneAverage {
	totals := make(map[averageKey]*ZoneAverage, 32)
	for _, s := range shots {
		key := averageKey{season: s.Season, zone: s.Zone}
		row, ok := totals[key]
		if !ok {
			row = &ZoneAverage{Season: s.Season, Zone: s.Zone}
			totals[key] = row
		}
		row.TotalShots++
		if s.Made {
			row.MadeShots++
		}
	}

	out := make([]ZoneAverage, 0, len(totals))
	for _, row := range totals {
		row.ShotPercentage = shotPercentage(row.MadeShots, row.TotalShots)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		return out[i].Zone < out[j].Zone
	})
	return out
}

func shotPercentage(made, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(made) / float64(total)
}
