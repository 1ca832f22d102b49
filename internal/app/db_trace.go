package app

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// two or more "($1, $2), ($3, $4)" tuples from a multi-row upsert
	valuesTuplesRegex = regexp.MustCompile(`\(\$\d+(?:, \$\d+)*\)(?:, \(\$\d+(?:, \$\d+)*\))+`)
)

// formatDBQueryForTrace flattens whitespace and folds batched VALUES lists to
// the first tuple plus a row count, so span names stay readable.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = valuesTuplesRegex.ReplaceAllStringFunc(normalized, func(tuples string) string {
		first := tuples[:strings.Index(tuples, ")")+1]
		return fmt.Sprintf("%s, ... /* %d rows */", first, strings.Count(tuples, "), (")+1)
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
