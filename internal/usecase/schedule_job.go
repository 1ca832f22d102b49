package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/euroleague-stats/internal/domain/schedule"
	"github.com/riskibarqy/euroleague-stats/internal/platform/result"
	"github.com/sourcegraph/conc/pool"
)

func (s *SyncService) syncSchedule(ctx context.Context, run *syncRun) (DatasetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.syncSchedule")
	defer span.End()

	out := DatasetResult{
		Table:   run.comp.ScheduleTable(),
		Seasons: run.seasons(run.comp.ScheduleSeasons),
		Status:  syncStatusSuccess,
	}

	entries := make([]schedule.RecordEntry, 0, 2048)
	for _, season := range out.Seasons {
		seasonCode := run.comp.SeasonCode(season)
		raw, err := s.provider.FetchGames(ctx, run.comp.Code, seasonCode)
		if err != nil {
			return out, fmt.Errorf("fetch games season=%s: %w", seasonCode, err)
		}
		out.Fetched += len(raw)

		rows := make([]result.Row[schedule.Game], 0, len(raw))
		for i, game := range raw {
			if !isPlayed(game) {
				out.Skipped++
				continue
			}
			rows = append(rows, mapGame(i, game))
		}
		games, err := collectRows(s.cfg.RowErrorPolicy, rows, &out)
		if err != nil {
			return out, fmt.Errorf("season=%s: %w", seasonCode, err)
		}

		seasonEntries, err := buildRecordsConcurrently(games, run.comp.Phases, run.workers)
		if err != nil {
			return out, fmt.Errorf("build records season=%s: %w", seasonCode, err)
		}
		entries = append(entries, seasonEntries...)
	}

	schedule.SortEntries(entries)
	out.Written = len(entries)
	if len(entries) == 0 {
		out.Status = syncStatusSkipped
		out.Message = "no played games in selected seasons"
		return out, nil
	}
	if run.request.DryRun {
		return out, nil
	}
	if err := s.repos.Schedule.UpsertRecords(ctx, out.Table, entries); err != nil {
		return out, fmt.Errorf("upsert schedule results: %w", err)
	}
	return out, nil
}

// buildRecordsConcurrently folds each team on its own goroutine. Every fold
// only reads the shared game slice.
func buildRecordsConcurrently(games []schedule.Game, rules schedule.PhaseRules, workers int) ([]schedule.RecordEntry, error) {
	teams := schedule.Teams(games)
	if len(teams) == 0 {
		return nil, nil
	}

	p := pool.NewWithResults[[]schedule.RecordEntry]().WithErrors().WithMaxGoroutines(maxInt(workers, 1))
	for _, team := range teams {
		team := team
		p.Go(func() ([]schedule.RecordEntry, error) {
			return schedule.BuildTeamRecords(team, schedule.GamesOf(team, games), rules)
		})
	}
	perTeam, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make([]schedule.RecordEntry, 0, len(games)*2)
	for _, entries := range perTeam {
		out = append(out, entries...)
	}
	schedule.SortEntries(out)
	return out, nil
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
