package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/euroleague-stats/internal/domain/competition"
	"github.com/riskibarqy/euroleague-stats/internal/domain/gamelog"
	"github.com/riskibarqy/euroleague-stats/internal/domain/playerstats"
	"github.com/riskibarqy/euroleague-stats/internal/domain/schedule"
	"github.com/riskibarqy/euroleague-stats/internal/domain/shot"
	"github.com/riskibarqy/euroleague-stats/internal/platform/logging"
	"github.com/riskibarqy/euroleague-stats/internal/platform/result"
)

const (
	DatasetShots       = "shots"
	DatasetAverages    = "averages"
	DatasetSchedule    = "schedule"
	DatasetGameLogs    = "gamelogs"
	DatasetPlayerStats = "playerstats"

	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"
	syncStatusSkipped = "skipped"

	maxSyncWorkers = 32
)

// Datasets lists every dataset in the order Run executes them.
func Datasets() []string {
	return []string{DatasetShots, DatasetAverages, DatasetSchedule, DatasetGameLogs, DatasetPlayerStats}
}

type SyncRequest struct {
	Competition string   `validate:"required,oneof=E U"`
	FromSeason  int      `validate:"omitempty,min=2000"`
	ToSeason    int      `validate:"omitempty,min=2000,gtefield=FromSeason"`
	Datasets    []string `validate:"required,min=1,dive,oneof=shots averages schedule gamelogs playerstats"`
	MaxWorkers  int      `validate:"omitempty,min=1,max=32"`
	// DryRun skips DB writes and returns computed counts only.
	DryRun bool
}

type SyncResult struct {
	Competition string          `json:"competition"`
	DryRun      bool            `json:"dry_run"`
	WorkerCount int             `json:"worker_count"`
	Datasets    []DatasetResult `json:"datasets"`
}

type DatasetResult struct {
	Dataset    string `json:"dataset"`
	Table      string `json:"table"`
	Seasons    []int  `json:"seasons"`
	Status     string `json:"status"`
	Fetched    int    `json:"fetched"`
	Written    int    `json:"written"`
	Skipped    int    `json:"skipped"`
	RowErrors  int    `json:"row_errors"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
	// StoredBySeason is the table row count per synced season after the write.
	StoredBySeason map[int]int `json:"stored_by_season,omitempty"`
}

type SyncConfig struct {
	MaxWorkers     int
	RowErrorPolicy result.Policy
	Court          shot.CourtParams
}

// RowCounter reads back stored row counts; it is optional.
type RowCounter interface {
	CountBySeason(ctx context.Context, table string, seasons []int) (map[int]int, error)
}

type SyncRepositories struct {
	Shots       shot.Repository
	Schedule    schedule.Repository
	GameLogs    gamelog.Repository
	PlayerStats playerstats.Repository
	Counter     RowCounter
}

type SyncService struct {
	provider StatsProvider
	repos    SyncRepositories
	cfg      SyncConfig
	logger   *logging.Logger
	validate *validator.Validate
}

func NewSyncService(provider StatsProvider, repos SyncRepositories, cfg SyncConfig, logger *logging.Logger) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.RowErrorPolicy == "" {
		cfg.RowErrorPolicy = result.PolicySkip
	}
	if cfg.Court == (shot.CourtParams{}) {
		cfg.Court = shot.DefaultCourtParams()
	}

	return &SyncService{
		provider: provider,
		repos:    repos,
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(),
	}
}

// syncRun carries per-invocation state shared by the dataset jobs.
type syncRun struct {
	comp    competition.Competition
	request SyncRequest
	workers int

	// shots and averages read the same play-by-play feed
	shotsBySeason map[int]shotFetch
}

type shotFetch struct {
	shots     []shot.Shot
	fetched   int
	rowErrors int
}

func (s *SyncService) Run(ctx context.Context, req SyncRequest) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Run")
	defer span.End()

	if s.provider == nil {
		return SyncResult{}, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}

	req = normalizeSyncRequest(req)
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return SyncResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.cfg.Court.Validate(); err != nil {
		return SyncResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	comp, err := competition.Lookup(req.Competition)
	if err != nil {
		return SyncResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !req.DryRun {
		if err := s.requireWriters(req.Datasets); err != nil {
			return SyncResult{}, err
		}
	}

	run := &syncRun{
		comp:          comp,
		request:       req,
		workers:       normalizeSyncWorkerCount(req.MaxWorkers, s.cfg.MaxWorkers),
		shotsBySeason: make(map[int]shotFetch, 8),
	}
	out := SyncResult{
		Competition: comp.Code,
		DryRun:      req.DryRun,
		WorkerCount: run.workers,
		Datasets:    make([]DatasetResult, 0, len(req.Datasets)),
	}

	var failures []error
	for _, dataset := range req.Datasets {
		start := time.Now()
		row, err := s.runDataset(ctx, run, dataset)
		row.Dataset = dataset
		row.DurationMs = time.Since(start).Milliseconds()
		if err != nil {
			row.Status = syncStatusFailed
			row.Message = err.Error()
			failures = append(failures, fmt.Errorf("%s: %w", dataset, err))
			s.logger.ErrorContext(ctx, "dataset sync failed",
				"competition", comp.Code,
				"dataset", dataset,
				"error", err,
			)
		} else {
			s.countStored(ctx, run, &row)
			s.logger.InfoContext(ctx, "dataset synced",
				"competition", comp.Code,
				"dataset", dataset,
				"status", row.Status,
				"fetched", row.Fetched,
				"written", row.Written,
				"row_errors", row.RowErrors,
				"dry_run", req.DryRun,
				"duration_ms", row.DurationMs,
			)
		}
		out.Datasets = append(out.Datasets, row)

		if ctx.Err() != nil {
			return out, ctx.Err()
		}
	}

	if len(failures) > 0 {
		return out, errors.Join(failures...)
	}
	return out, nil
}

func (s *SyncService) runDataset(ctx context.Context, run *syncRun, dataset string) (DatasetResult, error) {
	switch dataset {
	case DatasetShots:
		return s.syncShots(ctx, run)
	case DatasetAverages:
		return s.syncAverages(ctx, run)
	case DatasetSchedule:
		return s.syncSchedule(ctx, run)
	case DatasetGameLogs:
		return s.syncGameLogs(ctx, run)
	case DatasetPlayerStats:
		return s.syncPlayerStats(ctx, run)
	default:
		return DatasetResult{}, fmt.Errorf("%w: unsupported dataset=%s", ErrInvalidInput, dataset)
	}
}

func (s *SyncService) countStored(ctx context.Context, run *syncRun, row *DatasetResult) {
	if s.repos.Counter == nil || run.request.DryRun || row.Status != syncStatusSuccess {
		return
	}
	stored, err := s.repos.Counter.CountBySeason(ctx, row.Table, row.Seasons)
	if err != nil {
		s.logger.WarnContext(ctx, "count stored rows failed",
			"table", row.Table,
			"error", err,
		)
		return
	}
	row.StoredBySeason = stored
}

func (s *SyncService) requireWriters(datasets []string) error {
	for _, dataset := range datasets {
		var missing bool
		switch dataset {
		case DatasetShots, DatasetAverages:
			missing = s.repos.Shots == nil
		case DatasetSchedule:
			missing = s.repos.Schedule == nil
		case DatasetGameLogs:
			missing = s.repos.GameLogs == nil
		case DatasetPlayerStats:
			missing = s.repos.PlayerStats == nil
		}
		if missing {
			return fmt.Errorf("%w: no repository configured for dataset=%s", ErrDependencyUnavailable, dataset)
		}
	}
	return nil
}

// seasons resolves the request window, falling back to the dataset default per side.
func (r *syncRun) seasons(window competition.SeasonWindow) []int {
	if r.request.FromSeason > 0 {
		window.From = r.request.FromSeason
	}
	if r.request.ToSeason > 0 {
		window.To = r.request.ToSeason
	}
	return window.Seasons()
}

func normalizeSyncRequest(req SyncRequest) SyncRequest {
	req.Competition = strings.ToUpper(strings.TrimSpace(req.Competition))
	if len(req.Datasets) == 0 {
		return req
	}

	requested := make(map[string]struct{}, len(req.Datasets))
	for _, item := range req.Datasets {
		key := strings.ToLower(strings.TrimSpace(item))
		key = strings.NewReplacer("_", "", "-", "").Replace(key)
		if key == "" {
			continue
		}
		requested[key] = struct{}{}
	}

	ordered := make([]string, 0, len(requested))
	for _, dataset := range Datasets() {
		if _, ok := requested[dataset]; ok {
			ordered = append(ordered, dataset)
			delete(requested, dataset)
		}
	}
	// unknown names stay so validation can reject them
	for key := range requested {
		ordered = append(ordered, key)
	}
	req.Datasets = ordered
	return req
}

func normalizeSyncWorkerCount(requested, configured int) int {
	value := requested
	if value <= 0 {
		value = configured
	}
	if value <= 0 {
		value = 1
	}
	if value > maxSyncWorkers {
		value = maxSyncWorkers
	}
	return value
}

func collectRows[T any](policy result.Policy, rows []result.Row[T], out *DatasetResult) ([]T, error) {
	values, failed, err := result.Collect(rows, policy)
	out.RowErrors += len(failed)
	if err != nil {
		return nil, err
	}
	return values, nil
}
