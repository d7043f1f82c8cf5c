package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/portsweep/internal/model"
)

// writeSettings creates a settings file with the given name and content
// inside a fresh temp directory and returns the directory.
func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

// TestLoad_NoFile verifies that a directory without a settings file
// yields the built-in defaults and no error.
func TestLoad_NoFile(t *testing.T) {
	defaults, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, model.DefaultStartPort, defaults.StartPort)
	assert.Equal(t, model.DefaultEndPort, defaults.EndPort)
	assert.Equal(t, model.DefaultConcurrency, defaults.Concurrency)
	assert.Zero(t, defaults.Timeout, "timeout stays zero so the engine default applies")
	assert.False(t, defaults.Verbose)
}

// TestLoad_JSONC verifies that a JSONC settings file with comments is
// parsed and overlaid on the built-in defaults.
func TestLoad_JSONC(t *testing.T) {
	dir := writeSettings(t, "portsweep.jsonc", `{
	// scan the privileged range by default
	"startPort": 1,
	"endPort": 1024,
	"concurrency": 200,
	"timeout": "2s",
	"verbose": true,
}`)

	defaults, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, defaults.StartPort)
	assert.Equal(t, 1024, defaults.EndPort)
	assert.Equal(t, 200, defaults.Concurrency)
	assert.Equal(t, 2*time.Second, defaults.Timeout)
	assert.True(t, defaults.Verbose)
}

// TestLoad_YAML verifies the YAML form of the settings file.
func TestLoad_YAML(t *testing.T) {
	dir := writeSettings(t, "portsweep.yaml", `
startPort: 8000
endPort: 8100
concurrency: 50
timeout: 500ms
`)

	defaults, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 8000, defaults.StartPort)
	assert.Equal(t, 8100, defaults.EndPort)
	assert.Equal(t, 50, defaults.Concurrency)
	assert.Equal(t, 500*time.Millisecond, defaults.Timeout)
	assert.False(t, defaults.Verbose, "unset fields keep their defaults")
}

// TestLoad_PartialFile verifies that fields absent from the file keep
// the built-in defaults.
func TestLoad_PartialFile(t *testing.T) {
	dir := writeSettings(t, "portsweep.json", `{"concurrency": 32}`)

	defaults, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 32, defaults.Concurrency)
	assert.Equal(t, model.DefaultStartPort, defaults.StartPort)
	assert.Equal(t, model.DefaultEndPort, defaults.EndPort)
}

// TestLoad_Precedence verifies that the jsonc file wins when multiple
// settings files are present.
func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portsweep.jsonc"), []byte(`{"concurrency": 10}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portsweep.yaml"), []byte("concurrency: 99"), 0o644))

	defaults, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, defaults.Concurrency, "jsonc is first in precedence order")
}

// TestLoad_ParseError verifies that an unparseable settings file is a
// CLIError carrying ExitConfigError.
func TestLoad_ParseError(t *testing.T) {
	dir := writeSettings(t, "portsweep.yaml", "concurrency: [not a number")

	_, err := Load(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

// TestLoad_BadTimeout verifies rejection of invalid and non-positive
// timeout values.
func TestLoad_BadTimeout(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unparseable", `{"timeout": "fast"}`},
		{"negative", `{"timeout": "-1s"}`},
		{"zero", `{"timeout": "0s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSettings(t, "portsweep.json", tt.content)

			_, err := Load(dir)
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitConfigError, cliErr.Code)
		})
	}
}
