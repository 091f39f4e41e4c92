package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housingdata/internal/files"
	"housingdata/internal/infrastructure"
	"housingdata/pkg/contracts"
)

// runCLI runs the command against a fresh global logger
func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	var stdout bytes.Buffer
	code := run(args, &stdout)
	return code, stdout.String()
}

func setupDataDir(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "UNRATE.csv"),
		[]byte("DATE,UNRATE\n2020-01-01,3.5\n2020-02-01,.\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "MSPUS.csv"),
		[]byte("DATE,MSPUS\n2020-01-01,329000\n"), 0644))
	return dataDir, filepath.Join(root, "out")
}

func TestRun_ExportsNamedDataset(t *testing.T) {
	dataDir, outDir := setupDataDir(t)
	code, stdout := runCLI(t, "-data", dataDir, "-out", outDir, "-dataset", "unemployment_rate")
	require.Equal(t, 0, code, stdout)

	content, err := os.ReadFile(filepath.Join(outDir, "unemployment_rate.csv"))
	require.NoError(t, err)
	assert.Equal(t, "date,value\n2020-01-01,3.5\n2020-02-01,\n", string(content))
	assert.Contains(t, stdout, "Dataset exported")

	_, err = os.Stat(filepath.Join(outDir, "median_house_price.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_AllExportsPresentDatasets(t *testing.T) {
	dataDir, outDir := setupDataDir(t)
	metricsPath := filepath.Join(outDir, "run.prom")
	code, stdout := runCLI(t, "-data", dataDir, "-out", outDir, "-bom", "-metrics", metricsPath)
	require.Equal(t, 0, code, stdout)

	for _, name := range []string{"unemployment_rate", "median_house_price"} {
		content, err := os.ReadFile(filepath.Join(outDir, name+".csv"))
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}), name)
	}

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `housing_dataset_loads_total{dataset="median_house_price",status="success"} 1`)
}

func TestRun_LogsShareTraceID(t *testing.T) {
	dataDir, outDir := setupDataDir(t)
	code, stdout := runCLI(t, "-data", dataDir, "-out", outDir, "-dataset", "unemployment_rate,loan_report")
	require.Equal(t, 1, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.NotEmpty(t, lines)

	var traceID string
	messages := make(map[string]bool)
	for _, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		id, _ := entry["trace_id"].(string)
		require.NotEmpty(t, id, line)
		if traceID == "" {
			traceID = id
		}
		assert.Equal(t, traceID, id, line)
		messages[entry["msg"].(string)] = true
	}
	assert.Len(t, traceID, 36)
	for _, msg := range []string{"Starting dataset export", "Dataset loaded", "Dataset load failed", "Writing CSV file", "Dataset exported"} {
		assert.True(t, messages[msg], msg)
	}
}

func TestRun_FailedDatasetExitsNonZero(t *testing.T) {
	dataDir, outDir := setupDataDir(t)
	code, stdout := runCLI(t, "-data", dataDir, "-out", outDir, "-dataset", "unemployment_rate,loan_report")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Dataset load failed")

	// The dataset that loaded is still exported.
	_, err := os.Stat(filepath.Join(outDir, "unemployment_rate.csv"))
	assert.NoError(t, err)
}

func TestRun_NoDatasets(t *testing.T) {
	code, stdout := runCLI(t, "-data", t.TempDir(), "-out", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "No datasets to load")
}

func TestRun_List(t *testing.T) {
	dataDir, _ := setupDataDir(t)
	code, stdout := runCLI(t, "-data", dataDir, "-list")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	var found bool
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 4 && fields[0] == "unemployment_rate" {
			found = true
			assert.Equal(t, "true", fields[2])
		}
	}
	assert.True(t, found, stdout)
}

func TestRun_Version(t *testing.T) {
	code, stdout := runCLI(t, "-version")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, contracts.Version))
}

func TestRun_BadFlag(t *testing.T) {
	code, _ := runCLI(t, "-nope")
	assert.Equal(t, 2, code)
}

func TestRun_BadConfigFile(t *testing.T) {
	code, stdout := runCLI(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "failed to load config")
}

func TestSelectDatasets(t *testing.T) {
	dataDir, _ := setupDataDir(t)
	d := files.NewDiscovery(dataDir)

	assert.ElementsMatch(t, []string{"unemployment_rate", "median_house_price"}, selectDatasets("all", d))
	assert.Equal(t, []string{"a", "b"}, selectDatasets(" a, ,b ", d))
}
