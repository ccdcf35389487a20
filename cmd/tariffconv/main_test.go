package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../tariff/testdata/request.json"

func TestRun_ConvertToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"convert", "-in", fixture}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "# yaml\n")
	assert.Contains(t, out, "# toml\n")
	assert.Contains(t, out, "[[gifts]]")
	assert.Contains(t, out, "user_id: 8d234120-0bda-49b2-b7e0-fbd3912f6cbf")
}

func TestRun_DefaultSubcommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-in", fixture, "-to", "json"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "# json\n{\n  \"type\": \"success\",")
}

func TestRun_ConvertToDir(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"convert", "-in", fixture, "-out", dir, "-log-level", "info"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Empty(t, stdout.String())

	for _, name := range []string{"request.yaml", "request.toml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, stderr.String(), "wrote")
}

func TestRun_ConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "tariffconv.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("input: "+fixture+"\nto: [toml]\nlog_level: error\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"convert", "-config", cfg, "-to", "yaml"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "# yaml\n")
	assert.NotContains(t, stdout.String(), "# toml\n")
}

func TestRun_DecodeFailureLogsPaths(t *testing.T) {
	in := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"type":"maybe"}`), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"convert", "-in", in}, &stdout, &stderr)
	assert.Equal(t, exitFail, code)
	assert.Empty(t, stdout.String())
	logs := stderr.String()
	assert.Contains(t, logs, "path=/stream")
	assert.Contains(t, logs, "code=required")
	assert.Contains(t, logs, "path=/type")
	assert.Contains(t, logs, "code=invalid_enum")
}

func TestRun_MissingInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"convert", "-in", filepath.Join(t.TempDir(), "nope.json")}, &stdout, &stderr)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, stderr.String(), "category=io")
}

func TestRun_UsageErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown command": {"frobnicate"},
		"unknown flag":    {"convert", "-nope"},
		"bad target":      {"convert", "-to", "xml"},
		"bad level":       {"convert", "-log-level", "loud"},
		"stray argument":  {"convert", "extra"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, exitUsage, run(args, &stdout, &stderr))
		})
	}
}

func TestRun_Event(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"event", "-name", "Launch", "-date", "2021-11-14"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, `"date": "Date: 2021-11-14"`)
	assert.Contains(t, out, "decoded: {Name:Launch Date:2021-11-14}")
}
