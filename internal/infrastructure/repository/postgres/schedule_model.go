package postgres

import (
	"strconv"
	"time"

	"github.com/riskibarqy/euroleague-stats/internal/domain/schedule"
)

var scheduleConflictKeys = []string{"team", "gamecode", "season"}

type scheduleInsertModel struct {
	Team          string    `db:"team"`
	TeamCode      string    `db:"teamcode"`
	TeamLogo      *string   `db:"teamlogo"`
	GameDate      time.Time `db:"game_date"`
	Opponent      string    `db:"opponent"`
	OpponentCode  string    `db:"opponentcode"`
	OpponentLogo  *string   `db:"opponentlogo"`
	Round         int       `db:"round"`
	Result        string    `db:"result"`
	Location      string    `db:"location"`
	Record        string    `db:"record"`
	TeamScore     int       `db:"team_score"`
	OpponentScore int       `db:"opponent_score"`
	Gamecode      string    `db:"gamecode"`
	Season        int       `db:"season"`
	Phase         string    `db:"phase"`
	PhaseGroup    string    `db:"phase_group"`
}

func toScheduleInsertModel(e schedule.RecordEntry) scheduleInsertModel {
	return scheduleInsertModel{
		Team:          e.Team,
		TeamCode:      e.TeamCode,
		TeamLogo:      nullableString(e.TeamLogo),
		GameDate:      e.Date,
		Opponent:      e.Opponent,
		OpponentCode:  e.OpponentCode,
		OpponentLogo:  nullableString(e.OpponentLogo),
		Round:         e.Round,
		Result:        e.Result,
		Location:      e.Location,
		Record:        e.Record,
		TeamScore:     e.TeamScore,
		OpponentScore: e.OpponentScore,
		Gamecode:      e.Gamecode,
		Season:        e.Season,
		Phase:         e.Phase,
		PhaseGroup:    e.PhaseGroup,
	}
}

func scheduleKey(m scheduleInsertModel) string {
	return m.Team + "|" + m.Gamecode + "|" + strconv.Itoa(m.Season)
}
