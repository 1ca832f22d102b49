package gamelog

import "context"

const (
	RowTypePlayer = "player"
	RowTypeTeam   = "team"
	RowTypeTotal  = "total"

	playerIDTeam  = "Team"
	playerIDTotal = "Total"
)

// Row is one box score line. Team and Total lines share the shape of player lines.
type Row struct {
	Season   int
	Phase    string
	Round    int
	Gamecode string
	Home     *int
	PlayerID string
	Team     string
	Player   string

	IsStarter *float64
	IsPlaying *float64
	Dorsal    *int
	Minutes   *string

	Points               *int
	FieldGoalsMade2      *int
	FieldGoalsAttempted2 *int
	FieldGoalsMade3      *int
	FieldGoalsAttempted3 *int
	FreeThrowsMade       *int
	FreeThrowsAttempted  *int
	OffensiveRebounds    *int
	DefensiveRebounds    *int
	TotalRebounds        *int
	Assists              *int
	Steals               *int
	Turnovers            *int
	BlocksFavour         *int
	BlocksAgainst        *int
	FoulsCommitted       *int
	FoulsReceived        *int
	Valuation            *int
	PlusMinus            *float64

	GameSequence *int
	SeasonRound  string
	RowType      string
	RowNumber    int
}

// RowTypeOf maps the provider player id to the stored row type.
func RowTypeOf(playerID string) string {
	switch playerID {
	case playerIDTeam:
		return RowTypeTeam
	case playerIDTotal:
		return RowTypeTotal
	default:
		return RowTypePlayer
	}
}

type Repository interface {
	UpsertGameLogs(ctx context.Context, table string, rows []Row) error
}
