package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnzdotmx/workflowlint/internal/config"
	"github.com/gnzdotmx/workflowlint/internal/utils"
	"github.com/gnzdotmx/workflowlint/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validDoc = `{"name":"a","nodes":[],"connections":{}}`

// workspace creates a temp working directory with the given files and chdirs into it
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	chdir(t, dir)
	t.Setenv(config.EnvDir, "")
	t.Setenv(config.EnvSchema, "")
	t.Setenv(config.EnvReport, "")
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prevLevel := utils.CurrentLogLevel
	t.Cleanup(func() { utils.SetLogLevel(prevLevel) })

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_DefaultDirectory(t *testing.T) {
	workspace(t, map[string]string{
		"workflows/a.json":   validDoc,
		"workflows/b.json":   `{"name":"a","connections":{}}`,
		"workflows/c.txt":    "ignored",
		"elsewhere/bad.json": "{",
	})

	stdout, stderr, err := execute(t)
	assert.ErrorIs(t, err, validator.ErrValidationFailed)
	assert.Equal(t, "OK  a.json\n", stdout)
	assert.Equal(t, "ERR b.json: missing required key: nodes\n", stderr)
}

func TestRoot_AllValid(t *testing.T) {
	workspace(t, map[string]string{
		"workflows/one.json": validDoc,
		"workflows/two.json": validDoc,
	})

	stdout, stderr, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "OK  one.json\nOK  two.json\n", stdout)
	assert.Empty(t, stderr)
}

func TestRoot_MissingDirectoryIsFatal(t *testing.T) {
	workspace(t, nil)

	stdout, stderr, err := execute(t)
	require.Error(t, err)
	assert.NotErrorIs(t, err, validator.ErrValidationFailed)
	assert.Contains(t, err.Error(), "workflows")
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestRoot_RejectsArguments(t *testing.T) {
	workspace(t, map[string]string{"workflows/a.json": validDoc})

	_, _, err := execute(t, "somewhere")
	assert.Error(t, err)
}

func TestValidate_PositionalDirectory(t *testing.T) {
	workspace(t, map[string]string{
		"workflows/a.json":     "{",
		"n8n/workflows/x.json": validDoc,
	})

	stdout, stderr, err := execute(t, "validate", "n8n/workflows")
	require.NoError(t, err)
	assert.Equal(t, "OK  x.json\n", stdout)
	assert.Empty(t, stderr)
}

func TestValidate_Precedence(t *testing.T) {
	workspace(t, map[string]string{
		config.DefaultConfigFile: "dir: from-file\n",
		"from-file/f.json":       validDoc,
		"from-env/e.json":        validDoc,
		"from-flag/g.json":       validDoc,
		"from-arg/p.json":        validDoc,
	})

	stdout, _, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "OK  f.json\n", stdout)

	t.Setenv(config.EnvDir, "from-env")
	stdout, _, err = execute(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "OK  e.json\n", stdout)

	stdout, _, err = execute(t, "validate", "--dir", "from-flag")
	require.NoError(t, err)
	assert.Equal(t, "OK  g.json\n", stdout)

	stdout, _, err = execute(t, "validate", "--dir", "from-flag", "from-arg")
	require.NoError(t, err)
	assert.Equal(t, "OK  p.json\n", stdout)
}

func TestValidate_InvalidConfig(t *testing.T) {
	workspace(t, map[string]string{"lint.yaml": "extension: json\n"})

	_, _, err := execute(t, "--config", "lint.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_StrictFlag(t *testing.T) {
	workspace(t, map[string]string{
		"workflows/w.json": `{"name":"w","nodes":[{"name":"A"}],"connections":{"B":{"main":[]}}}`,
	})

	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "OK  w.json\n", stdout)

	_, stderr, err := execute(t, "validate", "--strict")
	assert.ErrorIs(t, err, validator.ErrValidationFailed)
	assert.Equal(t, "ERR w.json: connection source \"B\" is not a node\n", stderr)
}

func TestValidate_SchemaFlag(t *testing.T) {
	workspace(t, map[string]string{
		"schema.json":      `{"type":"object","properties":{"name":{"type":"string"}}}`,
		"workflows/a.json": validDoc,
		"workflows/b.json": `{"name":7,"nodes":[],"connections":{}}`,
	})

	stdout, stderr, err := execute(t, "-s", "schema.json")
	assert.ErrorIs(t, err, validator.ErrValidationFailed)
	assert.Equal(t, "OK  a.json\n", stdout)
	assert.Contains(t, stderr, "ERR b.json: schema violation: /name: ")

	_, _, err = execute(t, "-s", "missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file does not exist")
}

func TestValidate_ReportFlag(t *testing.T) {
	dir := workspace(t, map[string]string{
		"workflows/a.json": validDoc,
		"workflows/b.json": "[]",
	})

	_, _, err := execute(t, "--report", "out/report.yaml")
	assert.ErrorIs(t, err, validator.ErrValidationFailed)

	data, err := os.ReadFile(filepath.Join(dir, "out", "report.yaml"))
	require.NoError(t, err)

	var report validator.Report
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, "workflows", report.Dir)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Files, 2)
	assert.Equal(t, "missing required key: name", report.Files[1].Error)
}

func TestValidate_LogLevelKeepsResultsClean(t *testing.T) {
	workspace(t, map[string]string{"workflows/a.json": validDoc})

	var diag bytes.Buffer
	prev := utils.Stderr
	utils.SetOutput(&diag)
	t.Cleanup(func() { utils.SetOutput(prev) })

	stdout, stderr, err := execute(t, "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "OK  a.json\n", stdout)
	assert.Empty(t, stderr)
	assert.Contains(t, diag.String(), "Found 1 .json files")

	diag.Reset()
	stdout, _, err = execute(t, "-l", "quiet")
	require.NoError(t, err)
	assert.Equal(t, "OK  a.json\n", stdout)
	assert.Empty(t, diag.String())
}
