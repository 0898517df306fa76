package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/quiz"
	"github.com/at-ishikawa/wordbook/internal/repository"
	"github.com/at-ishikawa/wordbook/internal/testutil"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown driver",
			content: "database:\n  driver: postgres\n",
			wantErr: "failed to load configuration",
		},
		{
			name:    "broken yaml",
			content: "database: [\n",
			wantErr: "failed to load configuration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	cfg, err := LoadConfig(testutil.SetupTestConfig(t, t.TempDir()))
	require.NoError(t, err)

	a, err := Open(ctx, cfg)
	require.NoError(t, err)
	word, err := a.Words.Add(ctx, repository.WordInput{Text: "run", Definition: "to move fast", PartOfSpeech: vocabulary.PartOfSpeechVerb})
	require.NoError(t, err)
	_, err = a.Learning.Record(ctx, word.ID, quiz.TypeSpelling, true)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// a second process sees the saved word in its first snapshot
	reopened, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = reopened.Close()
	})
	require.Len(t, reopened.Words.Records(), 1)
	assert.Equal(t, word.ID, reopened.Words.Records()[0].ID)
	assert.Empty(t, reopened.Idioms.Records())
	latest, err := reopened.Learning.FindLatestByWord(ctx, word.ID, quiz.TypeSpelling)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.Correct)

	err = reopened.Words.Delete(ctx, vocabulary.Word{ID: word.ID})
	require.NoError(t, err)
	err = reopened.Words.Delete(ctx, vocabulary.Word{ID: word.ID})
	assert.True(t, IsRecordNotFound(err))
}
