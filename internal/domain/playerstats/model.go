package playerstats

import (
	"context"

	"github.com/shopspring/decimal"
)

const (
	EndpointTraditional = "traditional"
	EndpointMisc        = "misc"
	EndpointScoring     = "scoring"
	EndpointAdvanced    = "advanced"

	StatisticModePerGame = "PerGame"
)

// Column maps a provider stat field to its stored column.
type Column struct {
	Field string
	DB    string
}

// EndpointColumns lists, per endpoint and in fetch order, the stats kept from it.
var EndpointColumns = []struct {
	Endpoint string
	Columns  []Column
}{
	{Endpoint: EndpointTraditional, Columns: []Column{
		{"gamesPlayed", "games_played"},
		{"gamesStarted", "games_started"},
		{"minutesPlayed", "minutes_played"},
		{"pointsScored", "points_scored"},
		{"twoPointersMade", "two_pointers_made"},
		{"twoPointersAttempted", "two_pointers_attempted"},
		{"twoPointersPercentage", "two_pointers_percentage"},
		{"threePointersMade", "three_pointers_made"},
		{"threePointersAttempted", "three_pointers_attempted"},
		{"threePointersPercentage", "three_pointers_percentage"},
		{"freeThrowsMade", "free_throws_made"},
		{"freeThrowsAttempted", "free_throws_attempted"},
		{"freeThrowsPercentage", "free_throws_percentage"},
		{"offensiveRebounds", "offensive_rebounds"},
		{"defensiveRebounds", "defensive_rebounds"},
		{"totalRebounds", "total_rebounds"},
		{"assists", "assists"},
		{"steals", "steals"},
		{"turnovers", "turnovers"},
		{"blocks", "blocks"},
		{"blocksAgainst", "blocks_against"},
		{"foulsCommited", "fouls_commited"},
		{"foulsDrawn", "fouls_drawn"},
		{"pir", "pir"},
	}},
	{Endpoint: EndpointMisc, Columns: []Column{
		{"doubleDoubles", "double_doubles"},
		{"tripleDoubles", "triple_doubles"},
	}},
	{Endpoint: EndpointScoring, Columns: []Column{
		{"twoPointRate", "two_point_rate"},
		{"threePointerRate", "three_pointer_rate"},
		{"pointsFromTwoPointersPercentage", "points_from_two_pointers_percentage"},
		{"pointsFromThreePointersPercentage", "points_from_three_pointers_percentage"},
		{"pointsFromFreeThrowsPercentage", "points_from_free_throws_percentage"},
	}},
	{Endpoint: EndpointAdvanced, Columns: []Column{
		{"effectiveFieldGoalPercentage", "effective_field_goal_percentage"},
		{"offensiveReboundsPercentage", "offensive_rebounds_percentage"},
		{"defensiveReboundsPercentage", "defensive_rebounds_percentage"},
		{"reboundsPercentage", "rebounds_percentage"},
		{"assistsToTurnoversRatio", "assists_to_turnovers_ratio"},
		{"freeThrowsRate", "free_throws_rate"},
	}},
}

// Endpoints returns the endpoint names in fetch order.
func Endpoints() []string {
	out := make([]string, 0, len(EndpointColumns))
	for _, ec := range EndpointColumns {
		out = append(out, ec.Endpoint)
	}
	return out
}

// ColumnsOf returns the kept columns of one endpoint, or nil when it is unknown.
func ColumnsOf(endpoint string) []Column {
	for _, ec := range EndpointColumns {
		if ec.Endpoint == endpoint {
			return ec.Columns
		}
	}
	return nil
}

// AllColumns returns every stored stat column in endpoint order.
func AllColumns() []Column {
	out := make([]Column, 0, 40)
	for _, ec := range EndpointColumns {
		out = append(out, ec.Columns...)
	}
	return out
}

// Identity is the outer-merge key shared by every endpoint.
type Identity struct {
	PlayerCode string
	PlayerName string
	PlayerAge  *int
	ImageURL   string
	TeamCode   string
	TeamName   string
}

// Line is one player's stats from a single endpoint before merging.
type Line struct {
	Identity Identity
	Values   map[string]decimal.NullDecimal
}

// SeasonStats is a merged per-game stat line for one player, season and phase.
type SeasonStats struct {
	Identity
	Season int
	Phase  string
	Values map[string]decimal.NullDecimal
}

// Value returns the stat for a provider field; missing stats are null.
func (s SeasonStats) Value(field string) decimal.NullDecimal {
	return s.Values[field]
}

type Repository interface {
	UpsertSeasonStats(ctx context.Context, table string, stats []SeasonStats) error
}
