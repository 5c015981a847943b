package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeConvert(t *testing.T, args ...string) error {
	t.Helper()

	// Reset flag state between runs
	convertConfigPath = ""
	convertInput = ""
	convertOutput = ""
	convertStyle = ""
	convertFormat = ""
	convertVerbose = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// Execute on a subcommand always runs from the root, so pass the
	// subcommand name through the root's args.
	rootCmd.SetArgs(append([]string{"convert"}, args...))
	defer rootCmd.SetArgs(nil)
	return rootCmd.Execute()
}

func TestConvert_RequiresInput(t *testing.T) {
	err := executeConvert(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input is required")
}

func TestConvert_RejectsMissingConfigFile(t *testing.T) {
	err := executeConvert(t, "--config", "/nonexistent/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestConvert_RejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"style": "neon"}`), 0o644))

	err := executeConvert(t, "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'style' must be")
}

func TestConvert_RejectsMissingInputFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"input": "/nonexistent/cv.pdf"}`), 0o644))

	err := executeConvert(t, "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file not found")
}
