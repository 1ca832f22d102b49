package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/euroleague-stats/internal/app"
	"github.com/riskibarqy/euroleague-stats/internal/config"
	"github.com/riskibarqy/euroleague-stats/internal/domain/competition"
	"github.com/riskibarqy/euroleague-stats/internal/observability"
	"github.com/riskibarqy/euroleague-stats/internal/platform/logging"
	"github.com/riskibarqy/euroleague-stats/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

type ingestFlags struct {
	envFile      string
	competitions []string
	from         int
	to           int
	workers      int
	dryRun       bool
	store        string
}

func newRootCommand() *cobra.Command {
	flags := &ingestFlags{}
	root := &cobra.Command{
		Use:           "euroleague-ingest",
		Short:         "Load Euroleague and Eurocup stats into postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file to load before reading the environment; missing files are ignored")
	pf.StringSliceVarP(&flags.competitions, "competition", "c", competition.Codes(), "competition code (E or U), repeatable")
	pf.IntVar(&flags.from, "from", 0, "first season start year; 0 uses the dataset default")
	pf.IntVar(&flags.to, "to", 0, "last season start year; 0 uses the dataset default")
	pf.IntVar(&flags.workers, "workers", 0, "concurrent provider requests; 0 uses INGEST_MAX_WORKERS")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "fetch and transform without writing")
	pf.StringVar(&flags.store, "store", "", "write target: postgres or memory")

	descriptions := map[string]string{
		usecase.DatasetShots:       "Shot events with court zones",
		usecase.DatasetAverages:    "League shooting percentage per zone",
		usecase.DatasetSchedule:    "Per-team game results with running records",
		usecase.DatasetGameLogs:    "Per-player box score lines",
		usecase.DatasetPlayerStats: "Season player statistics by phase",
	}
	for _, dataset := range usecase.Datasets() {
		root.AddCommand(&cobra.Command{
			Use:   dataset,
			Short: descriptions[dataset],
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runIngest(cmd.Context(), cmd.OutOrStdout(), flags, []string{dataset})
			},
		})
	}
	root.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Every dataset in dependency order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIngest(cmd.Context(), cmd.OutOrStdout(), flags, usecase.Datasets())
		},
	})
	return root
}

func runIngest(ctx context.Context, stdout io.Writer, flags *ingestFlags, datasets []string) error {
	if err := loadEnvFile(flags.envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return err
	}

	logger := logging.NewJSONWriter(zapcore.Lock(os.Stderr), cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return err
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	ingest, err := app.NewIngest(cfg, app.IngestOptions{Store: flags.store, DryRun: flags.dryRun}, logger)
	if err != nil {
		logger.Error("build ingest", "error", err)
		return err
	}
	defer func() {
		if err := ingest.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
	}()

	results := make([]usecase.SyncResult, 0, len(flags.competitions))
	var failures []error
	for _, code := range normalizeCompetitions(flags.competitions) {
		res, err := ingest.Service.Run(ctx, usecase.SyncRequest{
			Competition: code,
			FromSeason:  flags.from,
			ToSeason:    flags.to,
			Datasets:    datasets,
			MaxWorkers:  flags.workers,
			DryRun:      flags.dryRun,
		})
		if res.Competition != "" {
			results = append(results, res)
		}
		if err != nil {
			logger.ErrorContext(ctx, "ingest failed", "competition", code, "error", err)
			failures = append(failures, fmt.Errorf("competition %s: %w", code, err))
		}
		if ctx.Err() != nil {
			break
		}
	}

	if err := writeSummary(stdout, results); err != nil {
		logger.Error("write summary", "error", err)
		failures = append(failures, err)
	}
	return errors.Join(failures...)
}

func loadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	// variables already set in the environment win
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// normalizeCompetitions upper-cases codes, accepts comma lists and drops
// duplicates while keeping the given order.
func normalizeCompetitions(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, raw := range codes {
		for _, part := range strings.Split(raw, ",") {
			code := strings.ToUpper(strings.TrimSpace(part))
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	return out
}

func writeSummary(w io.Writer, results []usecase.SyncResult) error {
	raw, err := sonic.ConfigStd.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
