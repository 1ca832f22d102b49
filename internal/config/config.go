package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/euroleague-stats/internal/platform/logging"
	"github.com/riskibarqy/euroleague-stats/internal/platform/result"
)

// Config stores runtime configuration for the ingest and migration commands.
type Config struct {
	AppEnv                          string
	ServiceName                     string
	ServiceVersion                  string
	DBURL                           string
	DBDisablePreparedBinary         bool
	DBMaxOpenConns                  int
	DBUpsertBatchSize               int
	EuroleagueLiveBaseURL           string
	EuroleagueAPIBaseURL            string
	EuroleagueFeedsBaseURL          string
	EuroleagueTimeout               time.Duration
	EuroleagueMaxRetries            int
	EuroleagueRequestDelay          time.Duration
	EuroleagueGamesCacheTTL         time.Duration
	EuroleagueCircuitEnabled        bool
	EuroleagueCircuitFailureCount   int
	EuroleagueCircuitOpenTimeout    time.Duration
	EuroleagueCircuitHalfOpenMaxReq int
	IngestMaxWorkers                int
	IngestRowErrorPolicy            result.Policy
	UptraceEnabled                  bool
	UptraceDSN                      string
	UptraceLogsEnabled              bool
	UptraceLogLevel                 logging.Level
	PyroscopeEnabled                bool
	PyroscopeServerAddress          string
	PyroscopeAppName                string
	PyroscopeAuthToken              string
	PyroscopeBasicAuthUser          string
	PyroscopeBasicAuthPassword      string
	PyroscopeUploadRate             time.Duration
	LogLevel                        logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if dbMaxOpenConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	dbUpsertBatchSize, err := getEnvAsInt("DB_UPSERT_BATCH_SIZE", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_UPSERT_BATCH_SIZE: %w", err)
	}
	if dbUpsertBatchSize <= 0 {
		return Config{}, fmt.Errorf("DB_UPSERT_BATCH_SIZE must be > 0")
	}

	euroleagueTimeout, err := time.ParseDuration(getEnv("EUROLEAGUE_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EUROLEAGUE_TIMEOUT: %w", err)
	}
	if euroleagueTimeout <= 0 {
		return Config{}, fmt.Errorf("EUROLEAGUE_TIMEOUT must be > 0")
	}
	euroleagueMaxRetries, err := getEnvAsInt("EUROLEAGUE_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse EUROLEAGUE_MAX_RETRIES: %w", err)
	}
	if euroleagueMaxRetries < 0 {
		return Config{}, fmt.Errorf("EUROLEAGUE_MAX_RETRIES must be >= 0")
	}
	euroleagueRequestDelay, err := time.ParseDuration(getEnv("EUROLEAGUE_REQUEST_DELAY", "100ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EUROLEAGUE_REQUEST_DELAY: %w", err)
	}
	if euroleagueRequestDelay < 0 {
		return Config{}, fmt.Errorf("EUROLEAGUE_REQUEST_DELAY must be >= 0")
	}

	euroleagueGamesCacheTTL, err := time.ParseDuration(getEnv("EUROLEAGUE_GAMES_CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EUROLEAGUE_GAMES_CACHE_TTL: %w", err)
	}

	euroleagueCircuitEnabled, err := strconv.ParseBool(getEnv("EUROLEAGUE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EUROLEAGUE_CIRCUIT_ENABLED: %w", err)
	}
	euroleagueCircuitFailureCount, err := getEnvAsInt("EUROLEAGUE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse EUROLEAGUE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	euroleagueCircuitOpenTimeout, err := time.ParseDuration(getEnv("EUROLEAGUE_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EUROLEAGUE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	euroleagueCircuitHalfOpenMaxReq, err := getEnvAsInt("EUROLEAGUE_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse EUROLEAGUE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if euroleagueCircuitEnabled {
		if euroleagueCircuitFailureCount <= 0 {
			return Config{}, fmt.Errorf("EUROLEAGUE_CIRCUIT_FAILURE_COUNT must be > 0")
		}
		if euroleagueCircuitOpenTimeout <= 0 {
			return Config{}, fmt.Errorf("EUROLEAGUE_CIRCUIT_OPEN_TIMEOUT must be > 0")
		}
		if euroleagueCircuitHalfOpenMaxReq <= 0 {
			return Config{}, fmt.Errorf("EUROLEAGUE_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
		}
	}

	ingestMaxWorkers, err := getEnvAsInt("INGEST_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_MAX_WORKERS: %w", err)
	}
	if ingestMaxWorkers <= 0 || ingestMaxWorkers > 32 {
		return Config{}, fmt.Errorf("INGEST_MAX_WORKERS must be between 1 and 32")
	}
	rowErrorPolicy, err := result.ParsePolicy(getEnv("INGEST_ROW_ERROR_POLICY", string(result.PolicySkip)))
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_ROW_ERROR_POLICY: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	serviceName := getEnv("SERVICE_NAME", "euroleague-ingest")

	return Config{
		AppEnv:                          appEnv,
		ServiceName:                     serviceName,
		ServiceVersion:                  getEnv("SERVICE_VERSION", "dev"),
		DBURL:                           strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:         dbDisablePreparedBinary,
		DBMaxOpenConns:                  dbMaxOpenConns,
		DBUpsertBatchSize:               dbUpsertBatchSize,
		EuroleagueLiveBaseURL:           getEnv("EUROLEAGUE_LIVE_BASE_URL", "https://live.euroleague.net"),
		EuroleagueAPIBaseURL:            getEnv("EUROLEAGUE_API_BASE_URL", "https://api-live.euroleague.net"),
		EuroleagueFeedsBaseURL:          getEnv("EUROLEAGUE_FEEDS_BASE_URL", "https://feeds.incrowdsports.com/provider/euroleague-feeds"),
		EuroleagueTimeout:               euroleagueTimeout,
		EuroleagueMaxRetries:            euroleagueMaxRetries,
		EuroleagueRequestDelay:          euroleagueRequestDelay,
		EuroleagueGamesCacheTTL:         euroleagueGamesCacheTTL,
		EuroleagueCircuitEnabled:        euroleagueCircuitEnabled,
		EuroleagueCircuitFailureCount:   euroleagueCircuitFailureCount,
		EuroleagueCircuitOpenTimeout:    euroleagueCircuitOpenTimeout,
		EuroleagueCircuitHalfOpenMaxReq: euroleagueCircuitHalfOpenMaxReq,
		IngestMaxWorkers:                ingestMaxWorkers,
		IngestRowErrorPolicy:            rowErrorPolicy,
		UptraceEnabled:                  uptraceEnabled,
		UptraceDSN:                      uptraceDSN,
		UptraceLogsEnabled:              uptraceLogsEnabled,
		UptraceLogLevel:                 logging.ParseLevel(getEnv("UPTRACE_LOG_LEVEL", "info")),
		PyroscopeEnabled:                pyroscopeEnabled,
		PyroscopeServerAddress:          pyroscopeServerAddress,
		PyroscopeAppName:                getEnv("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:              getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:          getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword:      getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:             pyroscopeUploadRate,
		LogLevel:                        logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}
	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
