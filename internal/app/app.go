package app

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/euroleague-stats/external/euroleague"
	"github.com/riskibarqy/euroleague-stats/internal/config"
	"github.com/riskibarqy/euroleague-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/euroleague-stats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/euroleague-stats/internal/platform/logging"
	"github.com/riskibarqy/euroleague-stats/internal/platform/resilience"
	"github.com/riskibarqy/euroleague-stats/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type IngestOptions struct {
	// Store selects the write target. Empty means postgres, falling back to
	// memory for dry runs without DB_URL.
	Store  string
	DryRun bool
}

// Ingest is the wired sync pipeline. Close releases the database pool.
type Ingest struct {
	Service *usecase.SyncService
	// Memory is set when rows are kept in process instead of postgres.
	Memory *memory.Store

	db *sqlx.DB
}

func NewIngest(cfg config.Config, opts IngestOptions, logger *logging.Logger) (*Ingest, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, err := resolveStore(cfg, opts)
	if err != nil {
		return nil, err
	}

	provider := euroleague.NewClient(euroleague.ClientConfig{
		LiveBaseURL:   cfg.EuroleagueLiveBaseURL,
		APIBaseURL:    cfg.EuroleagueAPIBaseURL,
		FeedsBaseURL:  cfg.EuroleagueFeedsBaseURL,
		Timeout:       cfg.EuroleagueTimeout,
		MaxRetries:    cfg.EuroleagueMaxRetries,
		RequestDelay:  cfg.EuroleagueRequestDelay,
		GamesCacheTTL: cfg.EuroleagueGamesCacheTTL,
		Logger:        logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.EuroleagueCircuitEnabled,
			FailureThreshold: cfg.EuroleagueCircuitFailureCount,
			OpenTimeout:      cfg.EuroleagueCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.EuroleagueCircuitHalfOpenMaxReq,
		},
	})
	syncCfg := usecase.SyncConfig{
		MaxWorkers:     cfg.IngestMaxWorkers,
		RowErrorPolicy: cfg.IngestRowErrorPolicy,
	}

	out := &Ingest{}
	var repos usecase.SyncRepositories
	switch store {
	case StoreMemory:
		out.Memory = memory.NewStore()
		repos = usecase.SyncRepositories{
			Shots:       out.Memory,
			Schedule:    out.Memory,
			GameLogs:    out.Memory,
			PlayerStats: out.Memory,
			Counter:     out.Memory,
		}
	default:
		db, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		out.db = db
		repos = usecase.SyncRepositories{
			Shots:       postgres.NewShotRepository(db, cfg.DBUpsertBatchSize),
			Schedule:    postgres.NewScheduleRepository(db, cfg.DBUpsertBatchSize),
			GameLogs:    postgres.NewGameLogRepository(db, cfg.DBUpsertBatchSize),
			PlayerStats: postgres.NewPlayerStatsRepository(db, cfg.DBUpsertBatchSize),
			Counter:     postgres.NewTableStatsRepository(db),
		}
	}

	logger.Info("ingest wired",
		"store", store,
		"dry_run", opts.DryRun,
		"max_workers", cfg.IngestMaxWorkers,
		"row_error_policy", cfg.IngestRowErrorPolicy,
	)
	out.Service = usecase.NewSyncService(provider, repos, syncCfg, logger)
	return out, nil
}

func (i *Ingest) Close() error {
	if i == nil || i.db == nil {
		return nil
	}
	return i.db.Close()
}

func resolveStore(cfg config.Config, opts IngestOptions) (string, error) {
	store := strings.ToLower(strings.TrimSpace(opts.Store))
	switch store {
	case "":
		if cfg.DBURL == "" && opts.DryRun {
			return StoreMemory, nil
		}
		store = StorePostgres
	case StorePostgres, StoreMemory:
	default:
		return "", fmt.Errorf("unknown store %q: valid values are %s, %s", opts.Store, StorePostgres, StoreMemory)
	}
	if store == StorePostgres && cfg.DBURL == "" {
		return "", fmt.Errorf("DB_URL is required for the %s store", StorePostgres)
	}
	return store, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	return db, nil
}
