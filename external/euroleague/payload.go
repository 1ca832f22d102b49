package euroleague

import (
	"math"
	"strings"

	"github.com/riskibarqy/euroleague-stats/internal/usecase"
)

type gamesEnvelope struct {
	Data []gamePayload `json:"data"`
}

type gamePayload struct {
	GameCode int    `json:"gameCode"`
	Round    int    `json:"round"`
	Date     string `json:"date"`
	Played   bool   `json:"played"`
	Season   struct {
		Code string `json:"code"`
		Year int    `json:"year"`
	} `json:"season"`
	PhaseType struct {
		Code string `json:"code"`
	} `json:"phaseType"`
	Local sidePayload `json:"local"`
	Road  sidePayload `json:"road"`
}

type sidePayload struct {
	Club struct {
		Code   string `json:"code"`
		Name   string `json:"name"`
		Images struct {
			Crest string `json:"crest"`
		} `json:"images"`
	} `json:"club"`
	Score *int `json:"score"`
}

func (p gamePayload) toExternal() usecase.ExternalGame {
	return usecase.ExternalGame{
		Gamecode:  p.GameCode,
		Season:    p.Season.Year,
		Phase:     p.PhaseType.Code,
		Round:     p.Round,
		Date:      p.Date,
		Played:    p.Played,
		Home:      p.Local.club(),
		Away:      p.Road.club(),
		HomeScore: p.Local.Score,
		AwayScore: p.Road.Score,
	}
}

func (s sidePayload) club() usecase.ExternalClub {
	return usecase.ExternalClub{
		Code:  s.Club.Code,
		Name:  s.Club.Name,
		Crest: s.Club.Images.Crest,
	}
}

type pointsEnvelope struct {
	Rows []pointPayload `json:"Rows"`
}

type pointPayload struct {
	NumAnot           int    `json:"NUM_ANOT"`
	Team              string `json:"TEAM"`
	PlayerID          string `json:"ID_PLAYER"`
	Player            string `json:"PLAYER"`
	ActionCode        string `json:"ID_ACTION"`
	Action            string `json:"ACTION"`
	Points            any    `json:"POINTS"`
	CoordX            any    `json:"COORD_X"`
	CoordY            any    `json:"COORD_Y"`
	Zone              string `json:"ZONE"`
	Fastbreak         any    `json:"FASTBREAK"`
	SecondChance      any    `json:"SECOND_CHANCE"`
	PointsOffTurnover any    `json:"POINTS_OFF_TURNOVER"`
	Minute            any    `json:"MINUTE"`
	Console           string `json:"CONSOLE"`
	PointsA           any    `json:"POINTS_A"`
	PointsB           any    `json:"POINTS_B"`
	UTC               string `json:"UTC"`
}

func (p pointPayload) toExternal() usecase.ExternalShot {
	return usecase.ExternalShot{
		NumAnot:           p.NumAnot,
		Team:              p.Team,
		PlayerID:          strings.TrimSpace(p.PlayerID),
		Player:            p.Player,
		ActionCode:        strings.TrimSpace(p.ActionCode),
		Action:            p.Action,
		Points:            p.Points,
		X:                 p.CoordX,
		Y:                 p.CoordY,
		Zone:              p.Zone,
		Fastbreak:         p.Fastbreak,
		SecondChance:      p.SecondChance,
		PointsOffTurnover: p.PointsOffTurnover,
		Minute:            p.Minute,
		Console:           p.Console,
		PointsA:           p.PointsA,
		PointsB:           p.PointsB,
		UTC:               p.UTC,
	}
}

type boxScoreEnvelope struct {
	Stats []boxScoreSide `json:"Stats"`
}

// boxScoreSide is one team's box score. tmr carries team rebounds and
// similar non-player events, totr the team totals.
type boxScoreSide struct {
	PlayersStats []map[string]any `json:"PlayersStats"`
	Tmr          map[string]any   `json:"tmr"`
	Totr         map[string]any   `json:"totr"`
}

const (
	boxScoreTeamRowID  = "Team"
	boxScoreTotalRowID = "Total"
)

func (e boxScoreEnvelope) rows() []usecase.ExternalBoxScoreRow {
	out := make([]usecase.ExternalBoxScoreRow, 0, 32)
	for i, side := range e.Stats {
		home := 0
		if i == 0 {
			home = 1
		}

		teamCode := ""
		for _, cells := range side.PlayersStats {
			code := textCell(cells, "Team")
			if teamCode == "" {
				teamCode = code
			}
			out = append(out, usecase.ExternalBoxScoreRow{
				Home:     home,
				Team:     code,
				PlayerID: strings.TrimSpace(textCell(cells, "Player_ID")),
				Player:   textCell(cells, "Player"),
				Cells:    cells,
			})
		}
		if side.Tmr != nil {
			out = append(out, aggregateRow(home, teamCode, boxScoreTeamRowID, side.Tmr))
		}
		if side.Totr != nil {
			out = append(out, aggregateRow(home, teamCode, boxScoreTotalRowID, side.Totr))
		}
	}
	return out
}

func aggregateRow(home int, teamCode, id string, cells map[string]any) usecase.ExternalBoxScoreRow {
	return usecase.ExternalBoxScoreRow{
		Home:     home,
		Team:     teamCode,
		PlayerID: id,
		Player:   id,
		Cells:    cells,
	}
}

type playerStatsEnvelope struct {
	Players []map[string]any `json:"players"`
}

// playerStatLine splits one feed entry into the nested player identity and
// the flat stat fields that sit next to it.
func playerStatLine(item map[string]any) usecase.ExternalPlayerStatLine {
	line := usecase.ExternalPlayerStatLine{Fields: make(map[string]any, len(item))}
	for key, value := range item {
		if key == "player" {
			continue
		}
		line.Fields[key] = value
	}

	player, _ := item["player"].(map[string]any)
	if player == nil {
		return line
	}
	line.Code = textCell(player, "code")
	line.Name = textCell(player, "name")
	line.ImageURL = textCell(player, "imageUrl")
	if age, ok := player["age"].(float64); ok && !math.IsNaN(age) {
		value := int(age)
		line.Age = &value
	}
	if team, ok := player["team"].(map[string]any); ok {
		line.TeamCode = textCell(team, "code")
		line.TeamName = textCell(team, "name")
	}
	return line
}

func textCell(cells map[string]any, key string) string {
	value, _ := cells[key].(string)
	return value
}
