package schedule

import (
	"sort"
	"strconv"
)

// recordState is the accumulator of one (team, season) fold.
type recordState struct {
	wins    int
	losses  int
	group   string
	started bool
}

func (s recordState) enter(group string) recordState {
	if s.started && s.group == group {
		return s
	}
	return recordState{group: group, started: true}
}

func (s recordState) apply(result string) recordState {
	switch result {
	case ResultWin:
		s.wins++
	case ResultLoss:
		s.losses++
	}
	return s
}

func (s recordState) String() string {
	return strconv.Itoa(s.wins) + "-" + strconv.Itoa(s.losses)
}

// Teams returns every club name that appears on either side, sorted.
func Teams(games []Game) []string {
	seen := make(map[string]struct{}, 32)
	for _, g := range games {
		seen[g.Home.Name] = struct{}{}
		seen[g.Away.Name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GamesOf returns the games the team took part in.
func GamesOf(team string, games []Game) []Game {
	out := make([]Game, 0, 64)
	for _, g := range games {
		if g.Home.Name == team || g.Away.Name == team {
			out = append(out, g)
		}
	}
	return out
}

// BuildTeamRecords folds one team's games into running records, season by season.
func BuildTeamRecords(team string, games []Game, rules PhaseRules) ([]RecordEntry, error) {
	ordered := append([]Game(nil), games...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if ra, rb := rules.Rank(a.Phase), rules.Rank(b.Phase); ra != rb {
			return ra < rb
		}
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		return a.Date.Before(b.Date)
	})

	out := make([]RecordEntry, 0, len(ordered))
	for start := 0; start < len(ordered); {
		end := start
		for end < len(ordered) && ordered[end].Season == ordered[start].Season {
			end++
		}
		entries, err := foldSeason(team, ordered[start:end], rules)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
		start = end
	}
	return out, nil
}

func foldSeason(team string, games []Game, rules PhaseRules) ([]RecordEntry, error) {
	out := make([]RecordEntry, 0, len(games))
	state := recordState{}
	for _, g := range games {
		entry, err := viewFrom(team, g)
		if err != nil {
			return nil, err
		}
		entry.PhaseGroup = rules.GroupOf(g.Phase)
		state = state.enter(entry.PhaseGroup).apply(entry.Result)
		entry.Record = state.String()
		out = append(out, entry)
	}
	return out, nil
}

func viewFrom(team string, g Game) (RecordEntry, error) {
	var self, other Club
	var selfScore, otherScore int
	var location string
	switch team {
	case g.Home.Name:
		self, other = g.Home, g.Away
		selfScore, otherScore = g.HomeScore, g.AwayScore
		location = LocationHome
	case g.Away.Name:
		self, other = g.Away, g.Home
		selfScore, otherScore = g.AwayScore, g.HomeScore
		location = LocationAway
	default:
		return RecordEntry{}, &DataIntegrityError{
			Team:     team,
			Gamecode: g.Gamecode,
			Season:   g.Season,
			Home:     g.Home.Name,
			Away:     g.Away.Name,
		}
	}

	result := ResultDraw
	switch {
	case selfScore > otherScore:
		result = ResultWin
	case selfScore < otherScore:
		result = ResultLoss
	}

	return RecordEntry{
		Team:          team,
		TeamCode:      self.Code,
		TeamLogo:      self.Crest,
		Date:          g.Date,
		Opponent:      other.Name,
		OpponentCode:  other.Code,
		OpponentLogo:  other.Crest,
		Round:         g.Round,
		Result:        result,
		Location:      location,
		TeamScore:     selfScore,
		OpponentScore: otherScore,
		Gamecode:      g.Gamecode,
		Season:        g.Season,
		Phase:         g.Phase,
	}, nil
}

// SortEntries orders entries by team, season, phase group, round, then date.
func SortEntries(entries []RecordEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.PhaseGroup != b.PhaseGroup {
			return a.PhaseGroup < b.PhaseGroup
		}
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		return a.Date.Before(b.Date)
	})
}

// BuildRecords folds every team in the feed and returns the entries in SortEntries order.
func BuildRecords(games []Game, rules PhaseRules) ([]RecordEntry, error) {
	out := make([]RecordEntry, 0, len(games)*2)
	for _, team := range Teams(games) {
		entries, err := BuildTeamRecords(team, GamesOf(team, games), rules)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	SortEntries(out)
	return out, nil
}
