package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/riskibarqy/euroleague-stats/internal/config"
)

// normalizeDBURL sets disable_prepared_binary_result=yes unless the URL already
// carries a value. Needed behind pgbouncer in transaction mode.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}

// MigrationDSN is the database URL used by golang-migrate.
func MigrationDSN(cfg config.Config) (string, error) {
	if cfg.DBURL == "" {
		return "", fmt.Errorf("DB_URL is required")
	}
	return normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), nil
}
