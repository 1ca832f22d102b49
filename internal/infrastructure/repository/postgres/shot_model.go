package postgres

import (
	"strconv"
	"time"

	"github.com/riskibarqy/euroleague-stats/internal/domain/shot"
)

var (
	shotConflictKeys    = []string{"id_player", "gamecode", "season", "num_anot"}
	averageConflictKeys = []string{"season", "bin"}
)

type shotInsertModel struct {
	Season            int        `db:"season"`
	Phase             string     `db:"phase"`
	Round             int        `db:"round"`
	Gamecode          string     `db:"gamecode"`
	NumAnot           int        `db:"num_anot"`
	Team              string     `db:"team"`
	PlayerID          string     `db:"id_player"`
	Player            string     `db:"player"`
	ActionCode        string     `db:"id_action"`
	Action            string     `db:"action"`
	Points            int        `db:"points"`
	CoordX            *float64   `db:"coord_x"`
	CoordY            *float64   `db:"coord_y"`
	Zone              *string    `db:"zone"`
	Bin               string     `db:"bin"`
	Made              bool       `db:"made"`
	Fastbreak         *int       `db:"fastbreak"`
	SecondChance      *int       `db:"second_chance"`
	PointsOffTurnover *int       `db:"points_off_turnover"`
	Minute            *int       `db:"minute"`
	Console           *string    `db:"console"`
	PointsA           *int       `db:"points_a"`
	PointsB           *int       `db:"points_b"`
	UTC               *time.Time `db:"utc"`
}

func toShotInsertModel(s shot.Shot) shotInsertModel {
	return shotInsertModel{
		Season:            s.Season,
		Phase:             s.Phase,
		Round:             s.Round,
		Gamecode:          s.Gamecode,
		NumAnot:           s.NumAnot,
		Team:              s.Team,
		PlayerID:          s.PlayerID,
		Player:            s.Player,
		ActionCode:        s.ActionCode,
		Action:            s.ActionLabel,
		Points:            s.Points,
		CoordX:            s.X,
		CoordY:            s.Y,
		Zone:              nullableString(s.ProviderZone),
		Bin:               string(s.Zone),
		Made:              s.Made,
		Fastbreak:         s.Fastbreak,
		SecondChance:      s.SecondChance,
		PointsOffTurnover: s.PointsOffTurnover,
		Minute:            s.Minute,
		Console:           nullableString(s.Console),
		PointsA:           s.PointsA,
		PointsB:           s.PointsB,
		UTC:               s.UTC,
	}
}

func shotKey(m shotInsertModel) string {
	return m.PlayerID + "|" + m.Gamecode + "|" + strconv.Itoa(m.Season) + "|" + strconv.Itoa(m.NumAnot)
}

type averageInsertModel struct {
	Season         int     `db:"season"`
	Bin            string  `db:"bin"`
	TotalShots     int     `db:"total_shots"`
	MadeShots      int     `db:"made_shots"`
	ShotPercentage float64 `db:"shot_percentage"`
}

func toAverageInsertModel(a shot.ZoneAverage) averageInsertModel {
	return averageInsertModel{
		Season:         a.Season,
		Bin:            string(a.Zone),
		TotalShots:     a.TotalShots,
		MadeShots:      a.MadeShots,
		ShotPercentage: a.ShotPercentage,
	}
}

func averageKey(m averageInsertModel) string {
	return strconv.Itoa(m.Season) + "|" + m.Bin
}
