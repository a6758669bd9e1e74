package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const barJob = `
layers:
  - geom: bar
    stat: count
    mapping: {x: fruit}
  - geom: point
    data: extra.csv
    mapping: {x: v, y: w}
    sampling: [{name: pick, n: 1}]
`

// runCLI executes the root command with args, isolated from PLOTFRAME_*
// variables, and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"PLOTFRAME_DEBUG_LOG", "PLOTFRAME_MAX_PARALLELISM", "PLOTFRAME_PARALLEL_GROUP_THRESHOLD"} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestProcessCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "fruit.csv", "fruit,price\napple,1\npear,2\napple,3\n")
	writeFile(t, dir, "extra.csv", "v,w\n1,2\n3,4\n")
	job := writeFile(t, dir, "job.yaml", barJob)

	stdout, _, err := runCLI(t, "process", "--data", data, "--job", job)
	require.NoError(t, err)

	var doc struct {
		Layers []struct {
			Geom string           `json:"geom"`
			Stat string           `json:"stat"`
			Data map[string][]any `json:"data"`
		} `json:"layers"`
		Messages []string `json:"computation_messages"`
		Error    string   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Empty(t, doc.Error)
	require.Len(t, doc.Layers, 2)
	assert.Equal(t, "count", doc.Layers[0].Stat)
	assert.Equal(t, []any{"apple", "pear"}, doc.Layers[0].Data["fruit"])
	assert.Len(t, doc.Layers[1].Data["v"], 1)
	assert.Equal(t, []string{"sampling_pick(n=1) was applied to [point/identity stat] layer"}, doc.Messages)
}

func TestProcessCommandWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "fruit.csv", "fruit\napple\n")
	job := writeFile(t, dir, "job.yaml", "layers:\n  - stat: count\n    mapping: {x: fruit}\n")
	out := filepath.Join(dir, "out.json")

	stdout, _, err := runCLI(t, "process", "-d", data, "-j", job, "-o", out, "--indent")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, json.Valid(content))
	assert.Contains(t, string(content), "\n  \"layers\"")
}

func TestProcessCommandStats(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "fruit.csv", "fruit\napple\npear\n")
	job := writeFile(t, dir, "job.yaml", "layers:\n  - stat: count\n    mapping: {x: fruit}\n")

	_, stderr, err := runCLI(t, "process", "--data", data, "--job", job, "--stats")
	require.NoError(t, err)
	assert.Contains(t, stderr, "STAGE")
	assert.Contains(t, stderr, "transform")
	assert.Contains(t, stderr, "prune")
}

func TestProcessCommandFailure(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "fruit.csv", "fruit\napple\n")
	job := writeFile(t, dir, "job.yaml", "layers:\n  - stat: count\n    mapping: {x: nope}\n")

	stdout, _, err := runCLI(t, "process", "--data", data, "--job", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plot processing failed")
	assert.Contains(t, stdout, `"error"`)
}

func TestProcessCommandErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "fruit.csv", "fruit\napple\n")
	goodJob := writeFile(t, dir, "job.yaml", "layers: []\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing flags", []string{"process"}},
		{"missing data file", []string{"process", "--data", filepath.Join(dir, "none.csv"), "--job", goodJob}},
		{"missing job file", []string{"process", "--data", data, "--job", filepath.Join(dir, "none.yaml")}},
		{"unknown job field", []string{"process", "--data", data, "--job", writeFile(t, dir, "bad.yaml", "layerz: []\n")}},
		{"unknown stat", []string{"process", "--data", data, "--job", writeFile(t, dir, "stat.yaml", "layers:\n  - stat: violin\n")}},
		{"bad config", []string{"process", "--config", writeFile(t, dir, "cfg.toml", ""), "--data", data, "--job", goodJob}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "cfg.yaml", "max_parallelism: 3\ndefault_sampling_seed: 5\n")

	stdout, _, err := runCLI(t, "config", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "max_parallelism: 3")
	assert.Contains(t, stdout, "default_sampling_seed: 5")

	t.Setenv("PLOTFRAME_MAX_PARALLELISM", "0")
	var stdoutBuf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdoutBuf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config"})
	assert.Error(t, cmd.Execute(), "invalid environment config")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "plotframe ")

	stdout, _, err = runCLI(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Contains(t, info, "version")
}
