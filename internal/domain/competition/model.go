package competition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/euroleague-stats/internal/domain/schedule"
)

const (
	CodeEuroleague = "E"
	CodeEurocup    = "U"

	GroupRegularSeason = "RS"
	GroupPostseason    = "POSTSEASON"
)

var ErrUnknownCompetition = errors.New("unknown competition")

// SeasonWindow is an inclusive range of season start years.
type SeasonWindow struct {
	From int
	To   int
}

// Seasons expands the window into its season years.
func (w SeasonWindow) Seasons() []int {
	if w.To < w.From {
		return nil
	}
	out := make([]int, 0, w.To-w.From+1)
	for season := w.From; season <= w.To; season++ {
		out = append(out, season)
	}
	return out
}

// Competition carries everything the ingest jobs need to know about one tournament.
type Competition struct {
	Code        string
	Name        string
	TableSuffix string
	Phases      schedule.PhaseRules
	StatPhases  []string

	ShotSeasons        SeasonWindow
	ScheduleSeasons    SeasonWindow
	GameLogSeasons     SeasonWindow
	PlayerStatsSeasons SeasonWindow
}

// SeasonCode formats a provider season code, e.g. E2023.
func (c Competition) SeasonCode(season int) string {
	return fmt.Sprintf("%s%d", c.Code, season)
}

func (c Competition) ShotsTable() string       { return "shot_data_" + c.TableSuffix }
func (c Competition) AveragesTable() string    { return c.ShotsTable() + "_averages" }
func (c Competition) ScheduleTable() string    { return "schedule_results_" + c.TableSuffix }
func (c Competition) GameLogsTable() string    { return "game_logs_" + c.TableSuffix }
func (c Competition) PlayerStatsTable() string { return "player_stats_" + c.TableSuffix }

var registry = map[string]Competition{
	CodeEuroleague: {
		Code:        CodeEuroleague,
		Name:        "Euroleague",
		TableSuffix: "euroleague",
		Phases: schedule.PhaseRules{
			Order: map[string]int{"RS": 0, "PI": 1, "PO": 2, "FF": 3},
			Groups: map[string]string{
				"RS": GroupRegularSeason,
				"PI": GroupPostseason,
				"PO": GroupPostseason,
				"FF": GroupPostseason,
			},
		},
		StatPhases:         []string{"RS", "PI", "PO", "FF"},
		ShotSeasons:        SeasonWindow{From: 2017, To: 2024},
		ScheduleSeasons:    SeasonWindow{From: 2017, To: 2024},
		GameLogSeasons:     SeasonWindow{From: 2016, To: 2024},
		PlayerStatsSeasons: SeasonWindow{From: 2017, To: 2024},
	},
	CodeEurocup: {
		Code:        CodeEurocup,
		Name:        "Eurocup",
		TableSuffix: "eurocup",
		Phases: schedule.PhaseRules{
			Order: map[string]int{"RS": 0, "8F": 1, "4F": 2},
			Groups: map[string]string{
				"RS": GroupRegularSeason,
				"8F": GroupPostseason,
				"4F": GroupPostseason,
			},
		},
		StatPhases:         []string{"RS", "8F", "4F"},
		ShotSeasons:        SeasonWindow{From: 2017, To: 2024},
		ScheduleSeasons:    SeasonWindow{From: 2017, To: 2024},
		GameLogSeasons:     SeasonWindow{From: 2016, To: 2024},
		PlayerStatsSeasons: SeasonWindow{From: 2017, To: 2024},
	},
}

// Lookup resolves a competition code case-insensitively.
func Lookup(code string) (Competition, error) {
	c, ok := registry[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Competition{}, fmt.Errorf("%w: %q", ErrUnknownCompetition, code)
	}
	return c, nil
}

// Codes lists the supported competition codes in a stable order.
func Codes() []string {
	return []string{CodeEuroleague, CodeEurocup}
}
