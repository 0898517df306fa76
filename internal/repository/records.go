package repository

import (
	"context"
	"time"

	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// WordInput holds the fields a caller supplies for a new word. Text and
// Definition are expected to be non-empty; the repository does not check.
type WordInput struct {
	Text         string
	Definition   string
	PartOfSpeech vocabulary.PartOfSpeech
	Phonetic     string
	Examples     []string
}

type WordRepository struct {
	*Repository[vocabulary.Word]
	now func() time.Time
}

func NewWordRepository(source Source[vocabulary.Word], window time.Duration) *WordRepository {
	return &WordRepository{
		Repository: New(source, window),
		now:        time.Now,
	}
}

// Add creates a word with a fresh id and the current time, then saves it.
func (r *WordRepository) Add(ctx context.Context, in WordInput) (vocabulary.Word, error) {
	word := vocabulary.NewWord(in.Text, in.Definition, in.PartOfSpeech, in.Phonetic, r.now())
	if len(in.Examples) > 0 {
		word.Examples = vocabulary.Examples(in.Examples)
	}
	return r.insert(ctx, word)
}

// IdiomInput holds the fields a caller supplies for a new idiom.
type IdiomInput struct {
	Text       string
	Definition string
	Examples   []string
}

type IdiomRepository struct {
	*Repository[vocabulary.Idiom]
	now func() time.Time
}

func NewIdiomRepository(source Source[vocabulary.Idiom], window time.Duration) *IdiomRepository {
	return &IdiomRepository{
		Repository: New(source, window),
		now:        time.Now,
	}
}

// Add creates an idiom with a fresh id and the current time, then saves it.
func (r *IdiomRepository) Add(ctx context.Context, in IdiomInput) (vocabulary.Idiom, error) {
	idiom := vocabulary.NewIdiom(in.Text, in.Definition, r.now())
	if len(in.Examples) > 0 {
		idiom.Examples = vocabulary.Examples(in.Examples)
	}
	return r.insert(ctx, idiom)
}
