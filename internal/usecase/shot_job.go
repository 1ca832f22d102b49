package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/euroleague-stats/internal/domain/shot"
	"github.com/riskibarqy/euroleague-stats/internal/platform/result"
	"github.com/sourcegraph/conc/iter"
)

func (s *SyncService) syncShots(ctx context.Context, run *syncRun) (DatasetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.syncShots")
	defer span.End()

	out := DatasetResult{
		Table:   run.comp.ShotsTable(),
		Seasons: run.seasons(run.comp.ShotSeasons),
		Status:  syncStatusSuccess,
	}

	all := make([]shot.Shot, 0, 4096)
	for _, season := range out.Seasons {
		fetched, err := s.loadSeasonShots(ctx, run, season)
		if err != nil {
			return out, fmt.Errorf("season=%d: %w", season, err)
		}
		out.Fetched += fetched.fetched
		out.RowErrors += fetched.rowErrors
		all = append(all, fetched.shots...)
	}

	out.Written = len(all)
	if len(all) == 0 {
		out.Status = syncStatusSkipped
		out.Message = "no field goal attempts in selected seasons"
		return out, nil
	}
	if run.request.DryRun {
		return out, nil
	}
	if err := s.repos.Shots.UpsertShots(ctx, out.Table, all); err != nil {
		return out, fmt.Errorf("upsert shots: %w", err)
	}
	return out, nil
}

func (s *SyncService) syncAverages(ctx context.Context, run *syncRun) (DatasetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.syncAverages")
	defer span.End()

	out := DatasetResult{
		Table:   run.comp.AveragesTable(),
		Seasons: run.seasons(run.comp.ShotSeasons),
		Status:  syncStatusSuccess,
	}

	all := make([]shot.Shot, 0, 4096)
	for _, season := range out.Seasons {
		fetched, err := s.loadSeasonShots(ctx, run, season)
		if err != nil {
			return out, fmt.Errorf("season=%d: %w", season, err)
		}
		out.Fetched += fetched.fetched
		out.RowErrors += fetched.rowErrors
		all = append(all, fetched.shots...)
	}

	averages := shot.LeagueAverages(all)
	out.Written = len(averages)
	if len(averages) == 0 {
		out.Status = syncStatusSkipped
		out.Message = "no field goal attempts in selected seasons"
		return out, nil
	}
	if run.request.DryRun {
		return out, nil
	}
	if err := s.repos.Shots.UpsertAverages(ctx, out.Table, averages); err != nil {
		return out, fmt.Errorf("upsert averages: %w", err)
	}
	return out, nil
}

// loadSeasonShots fetches, maps and classifies one season once per run.
func (s *SyncService) loadSeasonShots(ctx context.Context, run *syncRun, season int) (shotFetch, error) {
	if cached, ok := run.shotsBySeason[season]; ok {
		return cached, nil
	}

	seasonCode := run.comp.SeasonCode(season)
	games, err := s.playedGames(ctx, run, seasonCode)
	if err != nil {
		return shotFetch{}, err
	}

	perGame, err := fetchPerGame(ctx, run.workers, games, func(ctx context.Context, game ExternalGame) ([]ExternalShot, error) {
		return s.provider.FetchShots(ctx, seasonCode, game.Gamecode)
	})
	if err != nil {
		return shotFetch{}, err
	}

	var fetched shotFetch
	events := make([]shot.Event, 0, 4096)
	for i, game := range games {
		rows := make([]result.Row[shot.Event], 0, len(perGame[i]))
		for j, raw := range perGame[i] {
			rows = append(rows, mapShotEvent(game, j, raw))
		}
		fetched.fetched += len(rows)

		counter := DatasetResult{}
		mapped, err := collectRows(s.cfg.RowErrorPolicy, rows, &counter)
		fetched.rowErrors += counter.RowErrors
		if err != nil {
			return shotFetch{}, fmt.Errorf("game=%d: %w", game.Gamecode, err)
		}
		if counter.RowErrors > 0 {
			s.logger.WarnContext(ctx, "skipped malformed shot rows",
				"season", seasonCode,
				"gamecode", game.Gamecode,
				"rows", counter.RowErrors,
			)
		}
		events = append(events, mapped...)
	}

	court := s.cfg.Court
	attempts := shot.ExcludeFreeThrows(events)
	fetched.shots = iter.Map(attempts, func(e *shot.Event) shot.Shot {
		return shot.Derive(*e, court)
	})

	run.shotsBySeason[season] = fetched
	return fetched, nil
}

func (s *SyncService) playedGames(ctx context.Context, run *syncRun, seasonCode string) ([]ExternalGame, error) {
	games, err := s.provider.FetchGames(ctx, run.comp.Code, seasonCode)
	if err != nil {
		return nil, fmt.Errorf("fetch games season=%s: %w", seasonCode, err)
	}
	played := make([]ExternalGame, 0, len(games))
	for _, game := range games {
		if isPlayed(game) {
			played = append(played, game)
		}
	}
	return played, nil
}

// fetchPerGame runs fetch for every game on a bounded worker pool. Results
// keep the order of games. The first error cancels the remaining fetches.
func fetchPerGame[T any](
	ctx context.Context,
	workers int,
	games []ExternalGame,
	fetch func(ctx context.Context, game ExternalGame) ([]T, error),
) ([][]T, error) {
	out := make([][]T, len(games))
	if len(games) == 0 {
		return out, nil
	}
	if workers > len(games) {
		workers = len(games)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i, game := range games {
		i, game := i, game
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			items, err := fetch(ctx, game)
			if err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("game=%d: %w", game.Gamecode, err)
					cancel()
				})
				return
			}
			out[i] = items
		}); err != nil {
			wg.Done()
			cancel()
			wg.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
