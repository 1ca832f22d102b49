package postgres

import (
	"strconv"

	"github.com/riskibarqy/euroleague-stats/internal/domain/gamelog"
)

var gameLogConflictKeys = []string{"player_id", "gamecode", "season", "team", "row_number"}

type gameLogInsertModel struct {
	Season               int      `db:"season"`
	Phase                string   `db:"phase"`
	Round                int      `db:"round"`
	Gamecode             string   `db:"gamecode"`
	Home                 *int     `db:"home"`
	PlayerID             string   `db:"player_id"`
	IsStarter            *float64 `db:"is_starter"`
	IsPlaying            *float64 `db:"is_playing"`
	Team                 string   `db:"team"`
	Dorsal               *int     `db:"dorsal"`
	Player               string   `db:"player"`
	Minutes              *string  `db:"minutes"`
	Points               *int     `db:"points"`
	FieldGoalsMade2      *int     `db:"field_goals_made_2"`
	FieldGoalsAttempted2 *int     `db:"field_goals_attempted_2"`
	FieldGoalsMade3      *int     `db:"field_goals_made_3"`
	FieldGoalsAttempted3 *int     `db:"field_goals_attempted_3"`
	FreeThrowsMade       *int     `db:"free_throws_made"`
	FreeThrowsAttempted  *int     `db:"free_throws_attempted"`
	OffensiveRebounds    *int     `db:"offensive_rebounds"`
	DefensiveRebounds    *int     `db:"defensive_rebounds"`
	TotalRebounds        *int     `db:"total_rebounds"`
	Assists              *int     `db:"assistances"`
	Steals               *int     `db:"steals"`
	Turnovers            *int     `db:"turnovers"`
	BlocksFavour         *int     `db:"blocks_favour"`
	BlocksAgainst        *int     `db:"blocks_against"`
	FoulsCommitted       *int     `db:"fouls_commited"`
	FoulsReceived        *int     `db:"fouls_received"`
	Valuation            *int     `db:"valuation"`
	PlusMinus            *float64 `db:"plusminus"`
	GameSequence         *int     `db:"game_sequence"`
	SeasonRound          string   `db:"season_round"`
	RowType              string   `db:"row_type"`
	RowNumber            int      `db:"row_number"`
}

func toGameLogInsertModel(r gamelog.Row) gameLogInsertModel {
	return gameLogInsertModel{
		Season:               r.Season,
		Phase:                r.Phase,
		Round:                r.Round,
		Gamecode:             r.Gamecode,
		Home:                 r.Home,
		PlayerID:             r.PlayerID,
		IsStarter:            r.IsStarter,
		IsPlaying:            r.IsPlaying,
		Team:                 r.Team,
		Dorsal:               r.Dorsal,
		Player:               r.Player,
		Minutes:              r.Minutes,
		Points:               r.Points,
		FieldGoalsMade2:      r.FieldGoalsMade2,
		FieldGoalsAttempted2: r.FieldGoalsAttempted2,
		FieldGoalsMade3:      r.FieldGoalsMade3,
		FieldGoalsAttempted3: r.FieldGoalsAttempted3,
		FreeThrowsMade:       r.FreeThrowsMade,
		FreeThrowsAttempted:  r.FreeThrowsAttempted,
		OffensiveRebounds:    r.OffensiveRebounds,
		DefensiveRebounds:    r.DefensiveRebounds,
		TotalRebounds:        r.TotalRebounds,
		Assists:              r.Assists,
		Steals:               r.Steals,
		Turnovers:            r.Turnovers,
		BlocksFavour:         r.BlocksFavour,
		BlocksAgainst:        r.BlocksAgainst,
		FoulsCommitted:       r.FoulsCommitted,
		FoulsReceived:        r.FoulsReceived,
		Valuation:            r.Valuation,
		PlusMinus:            r.PlusMinus,
		GameSequence:         r.GameSequence,
		SeasonRound:          r.SeasonRound,
		RowType:              r.RowType,
		RowNumber:            r.RowNumber,
	}
}

func gameLogKey(m gameLogInsertModel) string {
	return m.PlayerID + "|" + m.Gamecode + "|" + strconv.Itoa(m.Season) + "|" + m.Team + "|" + strconv.Itoa(m.RowNumber)
}
