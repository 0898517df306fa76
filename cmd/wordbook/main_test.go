package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "wordbook", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"word", "idiom", "lookup", "quiz", "sync", "export", "stats", "migrate"} {
		assert.Contains(t, names, want)
	}
}

// setupConfig writes a config backed by a fresh sqlite database.
func setupConfig(t *testing.T) string {
	t.Helper()
	return testutil.SetupTestConfig(t, t.TempDir())
}

func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: postgres\n"), 0644))
	return path
}

// runCommand executes the root command with args against cfgPath and
// returns what it printed.
func runCommand(t *testing.T, cfgPath string, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// addedID returns the id printed by an add command.
func addedID(t *testing.T, output string) string {
	t.Helper()
	start := strings.LastIndex(output, "(")
	end := strings.LastIndex(output, ")")
	require.True(t, start >= 0 && end > start, output)
	return output[start+1 : end]
}

func TestCommands_InvalidConfig(t *testing.T) {
	cfgPath := setupBrokenConfigFile(t)

	tests := [][]string{
		{"word", "list"},
		{"idiom", "add", "break the ice", "-d", "to start a conversation"},
		{"lookup", "run"},
		{"quiz", "spelling"},
		{"sync", "export"},
		{"export"},
		{"stats"},
		{"migrate"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := runCommand(t, cfgPath, nil, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration")
		})
	}
}

func TestMigrateCommand(t *testing.T) {
	cfgPath := setupConfig(t)

	for i := 0; i < 2; i++ {
		out, err := runCommand(t, cfgPath, nil, "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "Database schema of sqlite3 is up to date")
	}
}
