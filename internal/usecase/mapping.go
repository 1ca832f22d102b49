package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/euroleague-stats/internal/domain/gamelog"
	"github.com/riskibarqy/euroleague-stats/internal/domain/playerstats"
	"github.com/riskibarqy/euroleague-stats/internal/domain/schedule"
	"github.com/riskibarqy/euroleague-stats/internal/domain/shot"
	"github.com/riskibarqy/euroleague-stats/internal/platform/cell"
	"github.com/riskibarqy/euroleague-stats/internal/platform/result"
)

const providerUTCLayout = "20060102150405"

var gameDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func rejectRow(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRowRejected, field, err)
}

func mapShotEvent(game ExternalGame, index int, raw ExternalShot) result.Row[shot.Event] {
	if strings.TrimSpace(raw.ActionCode) == "" {
		return result.Fail[shot.Event](index, fmt.Errorf("%w: action code is empty", ErrRowRejected))
	}

	event := shot.Event{
		Season:       game.Season,
		Phase:        game.Phase,
		Round:        game.Round,
		Gamecode:     strconv.Itoa(game.Gamecode),
		NumAnot:      raw.NumAnot,
		Team:         strings.TrimSpace(raw.Team),
		PlayerID:     strings.TrimSpace(raw.PlayerID),
		Player:       strings.TrimSpace(raw.Player),
		ActionCode:   strings.TrimSpace(raw.ActionCode),
		ActionLabel:  strings.TrimSpace(raw.Action),
		ProviderZone: strings.TrimSpace(raw.Zone),
		Console:      strings.TrimSpace(raw.Console),
	}

	points, err := cell.Int(raw.Points)
	if err != nil {
		return result.Fail[shot.Event](index, rejectRow("points", err))
	}
	if points != nil {
		event.Points = *points
	}
	if event.X, err = cell.Float(raw.X); err != nil {
		return result.Fail[shot.Event](index, rejectRow("coord_x", err))
	}
	if event.Y, err = cell.Float(raw.Y); err != nil {
		return result.Fail[shot.Event](index, rejectRow("coord_y", err))
	}

	ints := []struct {
		name string
		src  any
		dst  **int
	}{
		{"fastbreak", raw.Fastbreak, &event.Fastbreak},
		{"second_chance", raw.SecondChance, &event.SecondChance},
		{"points_off_turnover", raw.PointsOffTurnover, &event.PointsOffTurnover},
		{"minute", raw.Minute, &event.Minute},
		{"points_a", raw.PointsA, &event.PointsA},
		{"points_b", raw.PointsB, &event.PointsB},
	}
	for _, item := range ints {
		value, err := cell.Int(item.src)
		if err != nil {
			return result.Fail[shot.Event](index, rejectRow(item.name, err))
		}
		*item.dst = value
	}

	if utc := strings.TrimSpace(raw.UTC); utc != "" {
		parsed, err := time.Parse(providerUTCLayout, utc)
		if err != nil {
			return result.Fail[shot.Event](index, rejectRow("utc", err))
		}
		event.UTC = &parsed
	}

	return result.OK(index, event)
}

func parseGameDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range gameDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q", raw)
}

// isPlayed reports whether a game has a final score worth folding.
func isPlayed(game ExternalGame) bool {
	return game.Played && game.HomeScore != nil && game.AwayScore != nil
}

func mapGame(index int, raw ExternalGame) result.Row[schedule.Game] {
	if strings.TrimSpace(raw.Home.Name) == "" || strings.TrimSpace(raw.Away.Name) == "" {
		return result.Fail[schedule.Game](index, fmt.Errorf("%w: game %d has no club names", ErrRowRejected, raw.Gamecode))
	}
	if raw.HomeScore == nil || raw.AwayScore == nil {
		return result.Fail[schedule.Game](index, fmt.Errorf("%w: game %d has no final score", ErrRowRejected, raw.Gamecode))
	}
	date, err := parseGameDate(raw.Date)
	if err != nil {
		return result.Fail[schedule.Game](index, rejectRow("date", err))
	}

	return result.OK(index, schedule.Game{
		Gamecode:  strconv.Itoa(raw.Gamecode),
		Season:    raw.Season,
		Phase:     strings.ToUpper(strings.TrimSpace(raw.Phase)),
		Round:     raw.Round,
		Date:      date,
		Home:      schedule.Club{Name: strings.TrimSpace(raw.Home.Name), Code: raw.Home.Code, Crest: raw.Home.Crest},
		Away:      schedule.Club{Name: strings.TrimSpace(raw.Away.Name), Code: raw.Away.Code, Crest: raw.Away.Crest},
		HomeScore: *raw.HomeScore,
		AwayScore: *raw.AwayScore,
	})
}

var boxScoreIntColumns = []struct {
	column string
	dst    func(*gamelog.Row) **int
}{
	{"Dorsal", func(r *gamelog.Row) **int { return &r.Dorsal }},
	{"Points", func(r *gamelog.Row) **int { return &r.Points }},
	{"FieldGoalsMade2", func(r *gamelog.Row) **int { return &r.FieldGoalsMade2 }},
	{"FieldGoalsAttempted2", func(r *gamelog.Row) **int { return &r.FieldGoalsAttempted2 }},
	{"FieldGoalsMade3", func(r *gamelog.Row) **int { return &r.FieldGoalsMade3 }},
	{"FieldGoalsAttempted3", func(r *gamelog.Row) **int { return &r.FieldGoalsAttempted3 }},
	{"FreeThrowsMade", func(r *gamelog.Row) **int { return &r.FreeThrowsMade }},
	{"FreeThrowsAttempted", func(r *gamelog.Row) **int { return &r.FreeThrowsAttempted }},
	{"OffensiveRebounds", func(r *gamelog.Row) **int { return &r.OffensiveRebounds }},
	{"DefensiveRebounds", func(r *gamelog.Row) **int { return &r.DefensiveRebounds }},
	{"TotalRebounds", func(r *gamelog.Row) **int { return &r.TotalRebounds }},
	{"Assistances", func(r *gamelog.Row) **int { return &r.Assists }},
	{"Steals", func(r *gamelog.Row) **int { return &r.Steals }},
	{"Turnovers", func(r *gamelog.Row) **int { return &r.Turnovers }},
	{"BlocksFavour", func(r *gamelog.Row) **int { return &r.BlocksFavour }},
	{"BlocksAgainst", func(r *gamelog.Row) **int { return &r.BlocksAgainst }},
	{"FoulsCommited", func(r *gamelog.Row) **int { return &r.FoulsCommitted }},
	{"FoulsReceived", func(r *gamelog.Row) **int { return &r.FoulsReceived }},
	{"Valuation", func(r *gamelog.Row) **int { return &r.Valuation }},
}

var boxScoreFloatColumns = []struct {
	column string
	dst    func(*gamelog.Row) **float64
}{
	{"IsStarter", func(r *gamelog.Row) **float64 { return &r.IsStarter }},
	{"IsPlaying", func(r *gamelog.Row) **float64 { return &r.IsPlaying }},
	{"Plusminus", func(r *gamelog.Row) **float64 { return &r.PlusMinus }},
}

func mapBoxScoreRow(game ExternalGame, index int, raw ExternalBoxScoreRow) result.Row[gamelog.Row] {
	playerID := strings.TrimSpace(raw.PlayerID)
	if playerID == "" {
		return result.Fail[gamelog.Row](index, fmt.Errorf("%w: player id is empty", ErrRowRejected))
	}

	home := raw.Home
	row := gamelog.Row{
		Season:   game.Season,
		Phase:    game.Phase,
		Round:    game.Round,
		Gamecode: strconv.Itoa(game.Gamecode),
		Home:     &home,
		PlayerID: playerID,
		Team:     strings.TrimSpace(raw.Team),
		Player:   strings.TrimSpace(raw.Player),
		Minutes:  cell.String(raw.Cells["Minutes"]),
	}

	for _, col := range boxScoreIntColumns {
		value, err := cell.Int(raw.Cells[col.column])
		if err != nil {
			return result.Fail[gamelog.Row](index, rejectRow(col.column, err))
		}
		*col.dst(&row) = value
	}
	for _, col := range boxScoreFloatColumns {
		value, err := cell.Float(raw.Cells[col.column])
		if err != nil {
			return result.Fail[gamelog.Row](index, rejectRow(col.column, err))
		}
		*col.dst(&row) = value
	}

	return result.OK(index, row)
}

func mapPlayerStatLine(endpoint string, raw ExternalPlayerStatLine) playerstats.Line {
	return playerstats.Line{
		Identity: playerstats.Identity{
			PlayerCode: strings.TrimSpace(raw.Code),
			PlayerName: strings.TrimSpace(raw.Name),
			PlayerAge:  raw.Age,
			ImageURL:   strings.TrimSpace(raw.ImageURL),
			TeamCode:   strings.TrimSpace(raw.TeamCode),
			TeamName:   strings.TrimSpace(raw.TeamName),
		},
		Values: playerstats.SelectColumns(endpoint, raw.Fields),
	}
}
