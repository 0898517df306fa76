package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/datasync"
)

const serendipityResponse = `[{
  "word": "serendipity",
  "phonetic": "/ˌsɛɹ.ənˈdɪp.ɪ.ti/",
  "meanings": [{
    "partOfSpeech": "noun",
    "definitions": [{"definition": "A happy accident.", "example": "It was pure serendipity.", "synonyms": ["chance"], "antonyms": []}]
  }]
}]`

func newDictionaryServer(t *testing.T) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/serendipity") {
			_, _ = w.Write([]byte(serendipityResponse))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	t.Setenv("DICTIONARY_API_BASE_URL", server.URL)
}

func TestLookupCommand(t *testing.T) {
	newDictionaryServer(t)
	cfgPath := setupConfig(t)

	tests := []struct {
		name         string
		args         []string
		wantContains []string
		wantWords    int
	}{
		{
			name:         "shows the entry",
			args:         []string{"lookup", "Serendipity"},
			wantContains: []string{"serendipity /ˌsɛɹ.ənˈdɪp.ɪ.ti/", "noun", "1. A happy accident.", "e.g. It was pure serendipity.", "synonyms: chance"},
		},
		{
			name:         "unknown word",
			args:         []string{"lookup", "qwxz"},
			wantContains: []string{`No definitions found for "qwxz"`},
		},
		{
			name:         "saves the entry",
			args:         []string{"lookup", "serendipity", "--save"},
			wantContains: []string{`Saved "Serendipity"`},
			wantWords:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, cfgPath, nil, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
		})
	}

	out, err := runCommand(t, cfgPath, nil, "word", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Serendipity")
	assert.Contains(t, out, "A happy accident.")
}

func TestLookupCommand_InvalidInput(t *testing.T) {
	cfgPath := setupConfig(t)

	_, err := runCommand(t, cfgPath, nil, "lookup", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid lookup input")
}

func TestQuizCommands(t *testing.T) {
	cfgPath := setupConfig(t)
	_, err := runCommand(t, cfgPath, nil, "word", "add", "run", "-d", "to move fast")
	require.NoError(t, err)

	t.Run("spelling", func(t *testing.T) {
		out, err := runCommand(t, cfgPath, strings.NewReader("RUN\n"), "quiz", "spelling")
		require.NoError(t, err)
		assert.Contains(t, out, "Spelling quiz with 1 words.")
		assert.Contains(t, out, "to move fast")
		assert.Contains(t, out, "It's correct.")
		assert.Contains(t, out, "Score: 1/1")
	})

	t.Run("history", func(t *testing.T) {
		_, err := runCommand(t, cfgPath, strings.NewReader("ran\n"), "quiz", "spelling")
		require.NoError(t, err)

		out, err := runCommand(t, cfgPath, nil, "quiz", "history")
		require.NoError(t, err)
		assert.Regexp(t, `WORD\s+ACCURACY\s+ANSWERS\s+LAST ANSWERED\s+NEXT REVIEW`, out)
		assert.Regexp(t, `Run\s+50%\s+1/2\s+`, out)
	})

	t.Run("nothing is due right after an answer", func(t *testing.T) {
		_, err := runCommand(t, cfgPath, strings.NewReader(""), "quiz", "spelling", "--due")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enough words")
	})

	t.Run("choice needs two words", func(t *testing.T) {
		_, err := runCommand(t, cfgPath, strings.NewReader(""), "quiz", "choice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enough words")
	})

	t.Run("favorites only", func(t *testing.T) {
		_, err := runCommand(t, cfgPath, strings.NewReader(""), "quiz", "spelling", "--favorites")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enough words")
	})

	t.Run("choice", func(t *testing.T) {
		_, err := runCommand(t, cfgPath, nil, "word", "add", "walk", "-d", "to move slowly")
		require.NoError(t, err)

		out, err := runCommand(t, cfgPath, strings.NewReader(""), "quiz", "choice")
		require.NoError(t, err)
		assert.Contains(t, out, "Multiple choice quiz with 2 words.")
	})
}

func TestQuizHistoryCommand_Empty(t *testing.T) {
	cfgPath := setupConfig(t)

	out, err := runCommand(t, cfgPath, nil, "quiz", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No quiz answers recorded yet.")
}

func TestSyncCommands(t *testing.T) {
	cfgPath := setupConfig(t)
	_, err := runCommand(t, cfgPath, nil, "word", "add", "run", "-d", "to move fast")
	require.NoError(t, err)
	_, err = runCommand(t, cfgPath, nil, "idiom", "add", "break the ice", "-d", "to start a conversation")
	require.NoError(t, err)

	outputDir := t.TempDir()
	out, err := runCommand(t, cfgPath, nil, "sync", "export", "--output-dir", outputDir)
	require.NoError(t, err)
	exportPath := filepath.Join(outputDir, datasync.ExportFileName)
	assert.Contains(t, out, "Exported 1 words and 1 idioms to "+exportPath)

	// importing into another database adds everything
	otherCfg := setupConfig(t)
	out, err = runCommand(t, otherCfg, nil, "sync", "import", exportPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "(dry-run mode, no changes made)")
	assert.Contains(t, out, "Words:   1 new, 0 skipped, 0 updated")

	out, err = runCommand(t, otherCfg, nil, "sync", "import", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Idioms:  1 new, 0 skipped, 0 updated")

	out, err = runCommand(t, otherCfg, nil, "word", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Run")

	out, err = runCommand(t, cfgPath, nil, "sync", "import", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Words:   0 new, 1 skipped, 0 updated")

	_, err = runCommand(t, cfgPath, nil, "sync", "import", filepath.Join(outputDir, "missing.yml"))
	require.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	cfgPath := setupConfig(t)
	_, err := runCommand(t, cfgPath, nil, "word", "add", "run", "-d", "to move fast", "--pos", "verb")
	require.NoError(t, err)

	outputDir := filepath.Join(t.TempDir(), "print")
	out, err := runCommand(t, cfgPath, nil, "export", "--output-dir", outputDir, "--pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "wordbook.md")
	assert.Contains(t, out, "wordbook.pdf")

	markdown, err := os.ReadFile(filepath.Join(outputDir, "wordbook.md"))
	require.NoError(t, err)
	assert.Contains(t, string(markdown), "### Run")
	assert.Contains(t, string(markdown), "*verb*")
}

func TestStatsCommand(t *testing.T) {
	cfgPath := setupConfig(t)

	out, err := runCommand(t, cfgPath, nil, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found.")

	_, err = runCommand(t, cfgPath, nil, "word", "add", "run", "-d", "to move fast", "--pos", "verb")
	require.NoError(t, err)
	_, err = runCommand(t, cfgPath, nil, "idiom", "add", "break the ice", "-d", "to start a conversation")
	require.NoError(t, err)

	out, err = runCommand(t, cfgPath, nil, "stats")
	require.NoError(t, err)
	assert.Regexp(t, `\d{4}-\d{2}\s+1\s+1\s+0`, out)
	assert.Regexp(t, `total\s+1\s+1\s+0`, out)
	assert.Contains(t, out, "verb: 1")

	_, err = runCommand(t, cfgPath, nil, "stats", "--year", "2025", "--month", "13")
	require.Error(t, err)
}
