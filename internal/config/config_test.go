package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/euroleague-stats/internal/platform/logging"
	"github.com/riskibarqy/euroleague-stats/internal/platform/result"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("UPTRACE_ENABLED", "")
	t.Setenv("PYROSCOPE_ENABLED", "")
	t.Setenv("DB_UPSERT_BATCH_SIZE", "")
	t.Setenv("EUROLEAGUE_REQUEST_DELAY", "")
	t.Setenv("INGEST_ROW_ERROR_POLICY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev || cfg.ServiceName != "euroleague-ingest" {
		t.Fatalf("unexpected service identity: %s %s", cfg.AppEnv, cfg.ServiceName)
	}
	if cfg.DBUpsertBatchSize != 500 {
		t.Fatalf("unexpected DBUpsertBatchSize: %d", cfg.DBUpsertBatchSize)
	}
	if cfg.EuroleagueRequestDelay != 100*time.Millisecond {
		t.Fatalf("unexpected EuroleagueRequestDelay: %s", cfg.EuroleagueRequestDelay)
	}
	if cfg.IngestRowErrorPolicy != result.PolicySkip {
		t.Fatalf("unexpected IngestRowErrorPolicy: %s", cfg.IngestRowErrorPolicy)
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("pyroscope app name should default to service name, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	t.Setenv("UPTRACE_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
	if cfg.UptraceLogLevel != logging.LevelWarn {
		t.Fatalf("unexpected UptraceLogLevel: %s", cfg.UptraceLogLevel)
	}
}

func TestLoad_EuroleagueSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("EUROLEAGUE_TIMEOUT", "5s")
	t.Setenv("EUROLEAGUE_MAX_RETRIES", "4")
	t.Setenv("EUROLEAGUE_REQUEST_DELAY", "0s")
	t.Setenv("EUROLEAGUE_CIRCUIT_FAILURE_COUNT", "7")
	t.Setenv("INGEST_MAX_WORKERS", "8")
	t.Setenv("INGEST_ROW_ERROR_POLICY", "ABORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.EuroleagueTimeout != 5*time.Second || cfg.EuroleagueMaxRetries != 4 {
		t.Fatalf("unexpected client settings: %s %d", cfg.EuroleagueTimeout, cfg.EuroleagueMaxRetries)
	}
	if cfg.EuroleagueRequestDelay != 0 {
		t.Fatalf("explicit zero delay should disable throttling, got %s", cfg.EuroleagueRequestDelay)
	}
	if !cfg.EuroleagueCircuitEnabled || cfg.EuroleagueCircuitFailureCount != 7 {
		t.Fatalf("unexpected circuit settings: %v %d", cfg.EuroleagueCircuitEnabled, cfg.EuroleagueCircuitFailureCount)
	}
	if cfg.IngestMaxWorkers != 8 || cfg.IngestRowErrorPolicy != result.PolicyAbort {
		t.Fatalf("unexpected ingest settings: %d %s", cfg.IngestMaxWorkers, cfg.IngestRowErrorPolicy)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"DB_UPSERT_BATCH_SIZE":             "0",
		"EUROLEAGUE_MAX_RETRIES":           "-1",
		"EUROLEAGUE_TIMEOUT":               "soon",
		"EUROLEAGUE_CIRCUIT_FAILURE_COUNT": "0",
		"INGEST_MAX_WORKERS":               "64",
		"INGEST_ROW_ERROR_POLICY":          "retry",
		"PYROSCOPE_UPLOAD_RATE":            "-1s",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_PyroscopeRequiresServerAddress(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}
