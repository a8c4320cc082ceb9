package report

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeStranger-Fred/narmbandit/bandit"
	"github.com/CodeStranger-Fred/narmbandit/testbed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTestbed(t *testing.T, pulls int, reg prometheus.Registerer) *testbed.Result {
	t.Helper()
	cfg := testbed.DefaultConfig()
	cfg.Trials = 5
	cfg.Pulls = pulls
	r, err := testbed.NewRunner(cfg, reg)
	require.NoError(t, err)
	r.Logger = log.New(io.Discard, "", 0)
	res, err := r.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestConsoleSummary(t *testing.T) {
	res := runTestbed(t, 20, nil)
	var out bytes.Buffer
	NewConsole(&out, false).Summary(res)

	s := out.String()
	assert.Contains(t, s, res.RunID.String())
	assert.Contains(t, s, "random")
	assert.Contains(t, s, "greedy")
	assert.Contains(t, s, "benchmark")
	assert.Contains(t, s, "vs_average")
	assert.NotContains(t, s, "not run")
	assert.NotContains(t, s, "\x1b[")
}

func TestConsoleSummaryNotRun(t *testing.T) {
	res := runTestbed(t, 5, nil)
	var out bytes.Buffer
	NewConsole(&out, true).Summary(res)
	assert.Contains(t, out.String(), "not run")
	assert.Contains(t, out.String(), "\x1b[")
}

func TestConsoleArms(t *testing.T) {
	b, err := bandit.FromArms([]bandit.Arm{
		{Quality: bandit.Bad, Lower: 0, Upper: 0.3, Mean: 0.1},
		{Quality: bandit.Good, Lower: 0.7, Upper: 1, Mean: 0.9},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	NewConsole(&out, false).Arms(b)
	s := out.String()
	assert.Contains(t, s, "bad")
	assert.Contains(t, s, "good")
	assert.Contains(t, s, "0.9000")
	assert.Contains(t, s, "average 0.5000")
}

func TestChart(t *testing.T) {
	res := runTestbed(t, 20, nil)
	var out bytes.Buffer
	require.NoError(t, Chart(res, &out))
	assert.Contains(t, out.String(), "random")
	assert.Contains(t, out.String(), "greedy")
	assert.Contains(t, out.String(), "average reward per step")
}

func TestWriteChartAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	res := runTestbed(t, 20, reg)
	dir := t.TempDir()

	path, err := WriteChart(res, filepath.Join(dir, "charts"))
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	srv := httptest.NewServer(Handler(filepath.Dir(path), reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/" + ChartFile)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "greedy")

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "narmbandit_trials_total 5")
}
