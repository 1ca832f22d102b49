package schedule

import (
	"errors"
	"fmt"
	"time"
)

const (
	ResultWin  = "Win"
	ResultLoss = "Loss"
	ResultDraw = "Draw"

	LocationHome = "Home"
	LocationAway = "Away"
)

// Club identifies one side of a game as reported by the provider.
type Club struct {
	Name  string
	Code  string
	Crest string
}

// Game is one played game from the competition results feed.
type Game struct {
	Gamecode  string
	Season    int
	Phase     string
	Round     int
	Date      time.Time
	Home      Club
	Away      Club
	HomeScore int
	AwayScore int
}

// RecordEntry is a game seen from one team, carrying its running record.
type RecordEntry struct {
	Team          string
	TeamCode      string
	TeamLogo      string
	Date          time.Time
	Opponent      string
	OpponentCode  string
	OpponentLogo  string
	Round         int
	Result        string
	Location      string
	Record        string
	TeamScore     int
	OpponentScore int
	Gamecode      string
	Season        int
	Phase         string
	PhaseGroup    string
}

var ErrDataIntegrity = errors.New("data integrity violation")

// DataIntegrityError reports a game that cannot be attributed to the team being folded.
type DataIntegrityError struct {
	Team     string
	Gamecode string
	Season   int
	Home     string
	Away     string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("team %q is neither home %q nor away %q in game %s season %d",
		e.Team, e.Home, e.Away, e.Gamecode, e.Season)
}

func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}
