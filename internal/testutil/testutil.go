// Package testutil provides shared test helpers for config files, databases and fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/config"
	"github.com/at-ishikawa/wordbook/internal/database"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// SetupTestConfig creates a config file backed by a sqlite database under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"data", "dictionary", "outputs"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`database:
  driver: sqlite3
  path: %s
  connect_attempts: 1
dictionary:
  base_url: http://127.0.0.1:1/entries
  timeout: 1s
  cache_directory: %s
store:
  coalesce_window: 20ms
outputs:
  directory: %s
`,
		filepath.Join(tmpDir, "data", "wordbook.db"),
		filepath.Join(tmpDir, "dictionary"),
		filepath.Join(tmpDir, "outputs"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// OpenTestDB opens a fresh, migrated in-memory sqlite database that is closed
// when the test ends. Every call returns an isolated database.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, database.Migrate(db))
	return db
}

// FixedTime is the creation time used by fixtures.
var FixedTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// CoalesceWindow is a short refresh window for repositories under test.
const CoalesceWindow = 20 * time.Millisecond

// WordOption configures a word fixture.
type WordOption func(*vocabulary.Word)

// WithFavorite marks the fixture as a favorite.
func WithFavorite() WordOption {
	return func(w *vocabulary.Word) {
		w.Favorite = true
	}
}

// WithCreatedAt overrides the fixture's creation time.
func WithCreatedAt(at time.Time) WordOption {
	return func(w *vocabulary.Word) {
		w.CreatedAt = at
	}
}

// WithExamples sets the fixture's usage examples.
func WithExamples(examples ...string) WordOption {
	return func(w *vocabulary.Word) {
		w.Examples = examples
	}
}

// NewWord builds a word fixture created at FixedTime unless overridden.
func NewWord(text, definition string, pos vocabulary.PartOfSpeech, opts ...WordOption) vocabulary.Word {
	w := vocabulary.NewWord(text, definition, pos, "", FixedTime)
	for _, opt := range opts {
		opt(&w)
	}
	return w
}
