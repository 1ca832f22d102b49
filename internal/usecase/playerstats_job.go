package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/euroleague-stats/internal/domain/playerstats"
)

func (s *SyncService) syncPlayerStats(ctx context.Context, run *syncRun) (DatasetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.syncPlayerStats")
	defer span.End()

	out := DatasetResult{
		Table:   run.comp.PlayerStatsTable(),
		Seasons: run.seasons(run.comp.PlayerStatsSeasons),
		Status:  syncStatusSuccess,
	}

	merged := make([]playerstats.SeasonStats, 0, 4096)
	for _, season := range out.Seasons {
		seasonCode := run.comp.SeasonCode(season)
		for _, phase := range run.comp.StatPhases {
			perEndpoint := make([][]playerstats.Line, 0, len(playerstats.EndpointColumns))
			for _, endpoint := range playerstats.Endpoints() {
				raw, err := s.provider.FetchPlayerStats(ctx, PlayerStatsQuery{
					CompetitionCode: run.comp.Code,
					SeasonCode:      seasonCode,
					Endpoint:        endpoint,
					Phase:           phase,
					StatisticMode:   playerstats.StatisticModePerGame,
				})
				if err != nil {
					if ctx.Err() != nil {
						return out, ctx.Err()
					}
					// a missing endpoint leaves its columns null for this phase
					out.Skipped++
					s.logger.WarnContext(ctx, "fetch player stats failed, continuing without endpoint",
						"season", seasonCode,
						"phase", phase,
						"endpoint", endpoint,
						"error", err,
					)
					continue
				}
				if len(raw) == 0 {
					continue
				}
				out.Fetched += len(raw)

				lines := make([]playerstats.Line, 0, len(raw))
				for _, item := range raw {
					lines = append(lines, mapPlayerStatLine(endpoint, item))
				}
				perEndpoint = append(perEndpoint, lines)
			}
			if len(perEndpoint) == 0 {
				continue
			}
			merged = append(merged, playerstats.Merge(season, phase, perEndpoint...)...)
		}
	}

	stats := playerstats.Dedupe(merged)
	out.Written = len(stats)
	if len(stats) == 0 {
		out.Status = syncStatusSkipped
		out.Message = "no player stats in selected seasons"
		return out, nil
	}
	if run.request.DryRun {
		return out, nil
	}
	if err := s.repos.PlayerStats.UpsertSeasonStats(ctx, out.Table, stats); err != nil {
		return out, fmt.Errorf("upsert player stats: %w", err)
	}
	return out, nil
}
