package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/euroleague-stats/internal/usecase"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCompetitions(t *testing.T) {
	t.Parallel()

	got := normalizeCompetitions([]string{"e", " U ", "E,u", ""})
	require.Equal(t, []string{"E", "U"}, got)
}

func TestNewRootCommand_RegistersDatasets(t *testing.T) {
	t.Parallel()

	root := newRootCommand()
	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, dataset := range usecase.Datasets() {
		require.True(t, names[dataset], "missing subcommand %s", dataset)
	}
	require.True(t, names["all"])

	flag := root.PersistentFlags().Lookup("competition")
	require.NotNil(t, flag)
	require.Equal(t, "[E,U]", flag.DefValue)
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, loadEnvFile(""))

	path := filepath.Join(t.TempDir(), "ingest.env")
	require.NoError(t, os.WriteFile(path, []byte("INGEST_TEST_ONLY_KEY=from-file\n"), 0o600))
	t.Setenv("INGEST_TEST_ONLY_KEY", "")
	require.NoError(t, os.Unsetenv("INGEST_TEST_ONLY_KEY"))

	require.NoError(t, loadEnvFile(path))
	require.Equal(t, "from-file", os.Getenv("INGEST_TEST_ONLY_KEY"))
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeSummary(&buf, []usecase.SyncResult{{
		Competition: "U",
		DryRun:      true,
		WorkerCount: 2,
		Datasets: []usecase.DatasetResult{{
			Dataset: usecase.DatasetSchedule,
			Table:   "schedule_results_eurocup",
			Seasons: []int{2023},
			Status:  "success",
			Fetched: 10,
		}},
	}})
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"competition": "U"`)
	require.Contains(t, buf.String(), `"table": "schedule_results_eurocup"`)
	require.NotContains(t, buf.String(), "stored_by_season")
}
