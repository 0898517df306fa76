package datasync

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/store"
	"github.com/at-ishikawa/wordbook/internal/testutil"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

func seededStore(t *testing.T) (*store.Store, vocabulary.Word, vocabulary.Idiom) {
	t.Helper()
	s := store.New(testutil.OpenTestDB(t))
	word := testutil.NewWord("run", "to move fast", vocabulary.PartOfSpeechVerb, testutil.WithExamples("I run."))
	idiom := vocabulary.NewIdiom("break the ice", "to start a conversation", testutil.FixedTime)
	s.Words().Insert(word)
	s.Idioms().Insert(idiom)
	_, err := s.Save(context.Background())
	require.NoError(t, err)
	return s, word, idiom
}

func TestImporter_Import(t *testing.T) {
	edited := func(w vocabulary.Word) vocabulary.Word {
		w.Definition = "to go quickly"
		return w
	}

	tests := []struct {
		name       string
		doc        func(word vocabulary.Word, idiom vocabulary.Idiom) *Document
		opts       ImportOptions
		want       *ImportResult
		wantWords  int
		wantOutput []string
		check      func(t *testing.T, words []vocabulary.Word)
	}{
		{
			name: "identical records are skipped and new ones are added",
			doc: func(word vocabulary.Word, idiom vocabulary.Idiom) *Document {
				return &Document{
					Words:  []vocabulary.Word{word, {Text: "Walk", Definition: "to move slowly", PartOfSpeech: "Verb"}},
					Idioms: []vocabulary.Idiom{idiom},
				}
			},
			want:       &ImportResult{WordsNew: 1, WordsSkipped: 1, IdiomsSkipped: 1},
			wantWords:  2,
			wantOutput: []string{`[NEW]  "Walk" (word)`, `[SKIP]  "Run" (word)`, `[SKIP]  "Break the ice" (idiom)`},
			check: func(t *testing.T, words []vocabulary.Word) {
				for _, w := range words {
					if w.Text == "Walk" {
						assert.NotEqual(t, uuid.Nil, w.ID)
						assert.Equal(t, vocabulary.PartOfSpeechVerb, w.PartOfSpeech)
						assert.Equal(t, vocabulary.Examples{}, w.Examples)
					}
				}
			},
		},
		{
			name: "changed record is skipped without UpdateExisting",
			doc: func(word vocabulary.Word, idiom vocabulary.Idiom) *Document {
				return &Document{Words: []vocabulary.Word{edited(word)}}
			},
			want:      &ImportResult{WordsSkipped: 1},
			wantWords: 1,
			check: func(t *testing.T, words []vocabulary.Word) {
				assert.Equal(t, "to move fast", words[0].Definition)
			},
		},
		{
			name: "changed record overwrites with UpdateExisting",
			doc: func(word vocabulary.Word, idiom vocabulary.Idiom) *Document {
				return &Document{Words: []vocabulary.Word{edited(word)}}
			},
			opts:       ImportOptions{UpdateExisting: true},
			want:       &ImportResult{WordsUpdated: 1},
			wantWords:  1,
			wantOutput: []string{`[UPDATE]  "Run" (word)`},
			check: func(t *testing.T, words []vocabulary.Word) {
				assert.Equal(t, "to go quickly", words[0].Definition)
			},
		},
		{
			name: "deletions only count stored records",
			doc: func(word vocabulary.Word, idiom vocabulary.Idiom) *Document {
				return &Document{DeletedWords: []uuid.UUID{word.ID, word.ID, uuid.New()}}
			},
			want:       &ImportResult{Deleted: 1},
			wantWords:  0,
			wantOutput: []string{`[DELETE]  "Run" (word)`},
		},
		{
			name: "dry run changes nothing",
			doc: func(word vocabulary.Word, idiom vocabulary.Idiom) *Document {
				return &Document{
					Words:        []vocabulary.Word{{Text: "Walk", Definition: "to move slowly"}},
					DeletedWords: []uuid.UUID{word.ID},
				}
			},
			opts:      ImportOptions{DryRun: true},
			want:      &ImportResult{WordsNew: 1, Deleted: 1},
			wantWords: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, word, idiom := seededStore(t)
			var out bytes.Buffer
			importer := NewImporter(s, s.Words(), s.Idioms(), &out)

			got, err := importer.Import(context.Background(), tt.doc(word, idiom), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}

			words, err := s.Words().FetchAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, words, tt.wantWords)
			if tt.check != nil {
				tt.check(t, words)
			}
		})
	}
}

func TestImporter_ImportNotifiesMerge(t *testing.T) {
	s, _, _ := seededStore(t)
	var changes []store.Change
	s.Subscribe(func(c store.Change) {
		changes = append(changes, c)
	})

	_, err := NewImporter(s, s.Words(), s.Idioms(), &bytes.Buffer{}).Import(context.Background(), &Document{
		Idioms: []vocabulary.Idiom{{Text: "Hit the sack", Definition: "to go to bed"}},
	}, ImportOptions{})
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Equal(t, store.ChangeMerged, changes[0].Kind)
	assert.Equal(t, []vocabulary.Kind{vocabulary.KindIdiom}, changes[0].Entities)
}

type failingMerger struct{}

func (failingMerger) Merge(context.Context, store.MergeSet) (store.MergeResult, error) {
	return store.MergeResult{}, errors.New("database is locked")
}

func TestImporter_ImportMergeError(t *testing.T) {
	s, _, _ := seededStore(t)

	_, err := NewImporter(failingMerger{}, s.Words(), s.Idioms(), &bytes.Buffer{}).Import(context.Background(), &Document{}, ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merger.Merge() > database is locked")
}

func TestExportAndReadYAML(t *testing.T) {
	s, word, idiom := seededStore(t)
	dir := filepath.Join(t.TempDir(), "outputs")

	doc, err := NewExporter(s.Words(), s.Idioms()).Export(context.Background())
	require.NoError(t, err)
	path, err := NewYAMLSink(dir).Write(doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ExportFileName), path)

	read, err := ReadYAML(path)
	require.NoError(t, err)
	require.Len(t, read.Words, 1)
	require.Len(t, read.Idioms, 1)
	assert.Equal(t, word.ID, read.Words[0].ID)
	assert.Equal(t, word.Examples, read.Words[0].Examples)
	assert.True(t, word.CreatedAt.Equal(read.Words[0].CreatedAt))
	assert.Equal(t, idiom.ID, read.Idioms[0].ID)

	// importing an unchanged export is a no-op
	result, err := NewImporter(s, s.Words(), s.Idioms(), &bytes.Buffer{}).Import(context.Background(), read, ImportOptions{UpdateExisting: true})
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{WordsSkipped: 1, IdiomsSkipped: 1}, result)
}

func TestReadYAML(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	doc, err := ReadYAML(empty)
	require.NoError(t, err)
	assert.Empty(t, doc.Words)

	invalid := filepath.Join(dir, "invalid.yml")
	require.NoError(t, os.WriteFile(invalid, []byte("words: [\n"), 0o644))
	_, err = ReadYAML(invalid)
	assert.Error(t, err)

	_, err = ReadYAML(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
