package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/riskibarqy/euroleague-stats/internal/domain/gamelog"
	"github.com/riskibarqy/euroleague-stats/internal/domain/playerstats"
	"github.com/riskibarqy/euroleague-stats/internal/domain/schedule"
	"github.com/riskibarqy/euroleague-stats/internal/domain/shot"
)

// Store keeps every dataset table in process memory with the same upsert
// keys as the postgres tables.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*tableData
}

type tableData struct {
	order   []string
	rows    map[string]any
	seasons map[string]int
}

func NewStore() *Store {
	return &Store{tables: make(map[string]*tableData)}
}

var (
	_ shot.Repository        = (*Store)(nil)
	_ schedule.Repository    = (*Store)(nil)
	_ gamelog.Repository     = (*Store)(nil)
	_ playerstats.Repository = (*Store)(nil)
)

func (s *Store) UpsertShots(_ context.Context, table string, shots []shot.Shot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(table)
	for _, item := range shots {
		key := join(item.PlayerID, item.Gamecode, strconv.Itoa(item.Season), strconv.Itoa(item.NumAnot))
		t.put(key, item.Season, item)
	}
	return nil
}

func (s *Store) UpsertAverages(_ context.Context, table string, averages []shot.ZoneAverage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(table)
	for _, item := range averages {
		t.put(join(strconv.Itoa(item.Season), string(item.Zone)), item.Season, item)
	}
	return nil
}

func (s *Store) UpsertRecords(_ context.Context, table string, entries []schedule.RecordEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(table)
	for _, item := range entries {
		t.put(join(item.Team, item.Gamecode, strconv.Itoa(item.Season)), item.Season, item)
	}
	return nil
}

func (s *Store) UpsertGameLogs(_ context.Context, table string, rows []gamelog.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(table)
	for _, item := range rows {
		key := join(item.PlayerID, item.Gamecode, strconv.Itoa(item.Season), item.Team, strconv.Itoa(item.RowNumber))
		t.put(key, item.Season, item)
	}
	return nil
}

func (s *Store) UpsertSeasonStats(_ context.Context, table string, stats []playerstats.SeasonStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(table)
	for _, item := range stats {
		t.put(join(item.PlayerCode, strconv.Itoa(item.Season), item.Phase, item.TeamCode), item.Season, item)
	}
	return nil
}

func (s *Store) CountBySeason(_ context.Context, table string, seasons []int) (map[int]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int]struct{}, len(seasons))
	for _, season := range seasons {
		wanted[season] = struct{}{}
	}

	out := make(map[int]int, len(seasons))
	t, ok := s.tables[table]
	if !ok {
		return out, nil
	}
	for _, season := range t.seasons {
		if _, ok := wanted[season]; ok {
			out[season]++
		}
	}
	return out, nil
}

// Tables lists the table names written so far.
func (s *Store) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.tables))
	for name := range s.tables {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Rows returns the rows of one table in first-write order.
func Rows[T any](s *Store, table string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[table]
	if !ok {
		return nil
	}
	out := make([]T, 0, len(t.order))
	for _, key := range t.order {
		if row, ok := t.rows[key].(T); ok {
			out = append(out, row)
		}
	}
	return out
}

func (s *Store) table(name string) *tableData {
	t, ok := s.tables[name]
	if !ok {
		t = &tableData{rows: make(map[string]any), seasons: make(map[string]int)}
		s.tables[name] = t
	}
	return t
}

func (t *tableData) put(key string, season int, row any) {
	if _, exists := t.rows[key]; !exists {
		t.order = append(t.order, key)
	}
	t.rows[key] = row
	t.seasons[key] = season
}

func join(parts ...string) string {
	return strings.Join(parts, "|")
}
