package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/euroleague-stats/internal/domain/gamelog"
	"github.com/riskibarqy/euroleague-stats/internal/platform/result"
)

func (s *SyncService) syncGameLogs(ctx context.Context, run *syncRun) (DatasetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.syncGameLogs")
	defer span.End()

	out := DatasetResult{
		Table:   run.comp.GameLogsTable(),
		Seasons: run.seasons(run.comp.GameLogSeasons),
		Status:  syncStatusSuccess,
	}

	// game sequence runs across seasons, so every season is gathered before numbering
	rows := make([]gamelog.Row, 0, 8192)
	for _, season := range out.Seasons {
		seasonCode := run.comp.SeasonCode(season)
		games, err := s.playedGames(ctx, run, seasonCode)
		if err != nil {
			return out, err
		}

		perGame, err := fetchPerGame(ctx, run.workers, games, func(ctx context.Context, game ExternalGame) ([]ExternalBoxScoreRow, error) {
			return s.provider.FetchBoxScore(ctx, seasonCode, game.Gamecode)
		})
		if err != nil {
			return out, fmt.Errorf("season=%s: %w", seasonCode, err)
		}

		for i, game := range games {
			mapped := make([]result.Row[gamelog.Row], 0, len(perGame[i]))
			for j, raw := range perGame[i] {
				mapped = append(mapped, mapBoxScoreRow(game, j, raw))
			}
			out.Fetched += len(mapped)

			before := out.RowErrors
			values, err := collectRows(s.cfg.RowErrorPolicy, mapped, &out)
			if err != nil {
				return out, fmt.Errorf("season=%s game=%d: %w", seasonCode, game.Gamecode, err)
			}
			if skipped := out.RowErrors - before; skipped > 0 {
				s.logger.WarnContext(ctx, "skipped malformed box score rows",
					"season", seasonCode,
					"gamecode", game.Gamecode,
					"rows", skipped,
				)
			}
			rows = append(rows, values...)
		}
	}

	gamelog.Prepare(rows)
	out.Written = len(rows)
	if len(rows) == 0 {
		out.Status = syncStatusSkipped
		out.Message = "no box scores in selected seasons"
		return out, nil
	}
	if run.request.DryRun {
		return out, nil
	}
	if err := s.repos.GameLogs.UpsertGameLogs(ctx, out.Table, rows); err != nil {
		return out, fmt.Errorf("upsert game logs: %w", err)
	}
	return out, nil
}
