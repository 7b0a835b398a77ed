package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/TetrisStack/internal/testbench"
	benchconfig "github.com/i5heu/TetrisStack/pkg/config"
)

// withAllModes runs fn once per known game mode as a subtest.
func withAllModes(t *testing.T, fn func(t *testing.T, m modeInfo)) {
	t.Helper()
	for _, m := range getModes() {
		t.Run(m.name, func(t *testing.T) {
			fn(t, m)
		})
	}
}

func runBenchCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"TETRIS_MODE", "TETRIS_SEED", "TETRIS_ALPHABET", "TETRIS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBenchEachMode(t *testing.T) {
	withAllModes(t, func(t *testing.T, m modeInfo) {
		jsonFile := filepath.Join(t.TempDir(), "results.json")
		out, err := runBenchCmd(t,
			"--modes", m.name,
			"--iter", "2",
			"--sessions", "4",
			"--actions", "200",
			"--workers", "2",
			"--json", "--jsonfile", jsonFile)
		require.NoError(t, err)
		assert.Contains(t, out, "[Mode: "+m.name+"]")
		assert.Contains(t, out, "iteration 2/2")

		data, err := os.ReadFile(jsonFile)
		require.NoError(t, err)
		var sessions []FullReport
		require.NoError(t, json.Unmarshal(data, &sessions))
		require.Len(t, sessions, 1)
		require.Len(t, sessions[0].Benchmarks, 2)
		for _, b := range sessions[0].Benchmarks {
			assert.Equal(t, m.name, b.Mode)
			assert.Equal(t, int64(800), b.Actions)
			assert.Equal(t, 4, b.Sessions)
		}
	})
}

func TestBenchRejectsUnknownMode(t *testing.T) {
	_, err := runBenchCmd(t, "--modes", "arcade", "--iter", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestBenchProgressBar(t *testing.T) {
	out, err := runBenchCmd(t, "--modes", "reserve", "--iter", "1", "--sessions", "3", "--actions", "50", "--progress")
	require.NoError(t, err)
	assert.Contains(t, out, "iteration 1/1")
}

func TestAppendReportKeepsHistory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "results.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, appendReport(file, FullReport{SessionTime: time.Unix(int64(i), 0).UTC().Format(time.RFC3339)}))
	}
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var sessions []FullReport
	require.NoError(t, json.Unmarshal(data, &sessions))
	assert.Len(t, sessions, 3)
}

func TestAppendReportRejectsGarbage(t *testing.T) {
	file := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0644))
	assert.Error(t, appendReport(file, FullReport{}))
}

func TestMarkdownTable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "results.json")
	report := FullReport{Benchmarks: []BenchmarkResult{
		{Mode: "strategic", Actions: 100, Throughput: 1000, PerAction: map[string]actionStats{"swap_batch": {Applied: 10, Rejected: 40}}},
		{Mode: "strategic", Actions: 100, Throughput: 3000, PerAction: map[string]actionStats{"swap_batch": {Applied: 20, Rejected: 10}}},
		{Mode: "queue", Actions: 50, Throughput: 500, PerAction: map[string]actionStats{"play": {Applied: 50}}},
	}}
	require.NoError(t, appendReport(file, report))

	var out bytes.Buffer
	require.NoError(t, outputMarkdownTable(&out, file))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[4], "strategic")
	assert.Contains(t, lines[4], "FIFO, LIFO, Refill, Swap")
	assert.Contains(t, lines[4], "25.0%")
	assert.Contains(t, lines[4], "2000")
	assert.Contains(t, lines[5], "queue")
}

func TestMarkdownTableErrors(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	assert.Error(t, outputMarkdownTable(&out, filepath.Join(dir, "missing.json")))

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0644))
	assert.Error(t, outputMarkdownTable(&out, empty))
}

func TestNewResult(t *testing.T) {
	cfg := benchconfig.Config{Mode: "reserve", ActionsPerSession: 10, Workers: 2}
	st := benchconfig.Stats{
		Sessions:  2,
		Actions:   20,
		Elapsed:   2 * time.Second,
		PerAction: map[string]testbench.ActionStats{"play": {Applied: 15, Rejected: 5}},
	}
	r := newResult(cfg, st)
	assert.Equal(t, 10.0, r.Throughput)
	assert.Equal(t, actionStats{Applied: 15, Rejected: 5}, r.PerAction["play"])
	assert.Equal(t, "2s", r.ActualElapsed)
}
