package gamelog

import (
	"sort"
	"strconv"
)

// AssignGameSequence orders rows by player name, newest season and round
// first, then numbers each player's games from 1. Team and total rows carry
// no sequence.
func AssignGameSequence(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		if a.Season != b.Season {
			return a.Season > b.Season
		}
		return a.Round > b.Round
	})

	counters := make(map[string]int, 256)
	for i := range rows {
		if RowTypeOf(rows[i].PlayerID) != RowTypePlayer {
			rows[i].GameSequence = nil
			continue
		}
		counters[rows[i].PlayerID]++
		seq := counters[rows[i].PlayerID]
		rows[i].GameSequence = &seq
	}
}

// SeasonRound formats the season-round label, e.g. 2023-12.
func SeasonRound(season, round int) string {
	return strconv.Itoa(season) + "-" + strconv.Itoa(round)
}

type rowKey struct {
	playerID string
	gamecode string
	season   int
	team     string
}

// AssignRowNumbers numbers rows within (player id, gamecode, season, team)
// so repeated team and total lines get distinct upsert keys.
func AssignRowNumbers(rows []Row) {
	counters := make(map[rowKey]int, len(rows))
	for i := range rows {
		key := rowKey{playerID: rows[i].PlayerID, gamecode: rows[i].Gamecode, season: rows[i].Season, team: rows[i].Team}
		counters[key]++
		rows[i].RowNumber = counters[key]
	}
}

// Prepare fills every derived column in place.
func Prepare(rows []Row) {
	AssignGameSequence(rows)
	for i := range rows {
		rows[i].SeasonRound = SeasonRound(rows[i].Season, rows[i].Round)
		rows[i].RowType = RowTypeOf(rows[i].PlayerID)
	}
	AssignRowNumbers(rows)
}
