package usecase

import "context"

// StatsProvider is the upstream competition data feed.
type StatsProvider interface {
	FetchGames(ctx context.Context, competitionCode, seasonCode string) ([]ExternalGame, error)
	FetchShots(ctx context.Context, seasonCode string, gamecode int) ([]ExternalShot, error)
	FetchBoxScore(ctx context.Context, seasonCode string, gamecode int) ([]ExternalBoxScoreRow, error)
	FetchPlayerStats(ctx context.Context, query PlayerStatsQuery) ([]ExternalPlayerStatLine, error)
}

type ExternalClub struct {
	Code  string
	Name  string
	Crest string
}

type ExternalGame struct {
	Gamecode  int
	Season    int
	Phase     string
	Round     int
	Date      string
	Played    bool
	Home      ExternalClub
	Away      ExternalClub
	HomeScore *int
	AwayScore *int
}

// ExternalShot is one play-by-play point row. Numeric cells are kept loose
// because the feed mixes numbers, numeric strings and blanks.
type ExternalShot struct {
	NumAnot           int
	Team              string
	PlayerID          string
	Player            string
	ActionCode        string
	Action            string
	Points            any
	X                 any
	Y                 any
	Zone              string
	Fastbreak         any
	SecondChance      any
	PointsOffTurnover any
	Minute            any
	Console           string
	PointsA           any
	PointsB           any
	UTC               string
}

// ExternalBoxScoreRow is one box score line keyed by provider column name.
type ExternalBoxScoreRow struct {
	Home     int
	Team     string
	PlayerID string
	Player   string
	Cells    map[string]any
}

type PlayerStatsQuery struct {
	CompetitionCode string
	SeasonCode      string
	Endpoint        string
	Phase           string
	StatisticMode   string
}

type ExternalPlayerStatLine struct {
	Code     string
	Name     string
	Age      *int
	ImageURL string
	TeamCode string
	TeamName string
	Fields   map[string]any
}
