// Package vocabulary defines the records a user keeps in the personal dictionary.
package vocabulary

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Kind names an entity kind kept in the store.
type Kind string

const (
	KindWord  Kind = "word"
	KindIdiom Kind = "idiom"
)

// PartOfSpeech is the closed set of grammatical tags a Word can carry.
type PartOfSpeech string

const (
	PartOfSpeechNoun        PartOfSpeech = "noun"
	PartOfSpeechVerb        PartOfSpeech = "verb"
	PartOfSpeechAdjective   PartOfSpeech = "adjective"
	PartOfSpeechAdverb      PartOfSpeech = "adverb"
	PartOfSpeechExclamation PartOfSpeech = "exclamation"
	PartOfSpeechConjunction PartOfSpeech = "conjunction"
	PartOfSpeechPronoun     PartOfSpeech = "pronoun"
	PartOfSpeechNumber      PartOfSpeech = "number"
	PartOfSpeechUnknown     PartOfSpeech = "unknown"
)

// AllPartsOfSpeech lists every tag in display order.
var AllPartsOfSpeech = []PartOfSpeech{
	PartOfSpeechNoun,
	PartOfSpeechVerb,
	PartOfSpeechAdjective,
	PartOfSpeechAdverb,
	PartOfSpeechExclamation,
	PartOfSpeechConjunction,
	PartOfSpeechPronoun,
	PartOfSpeechNumber,
	PartOfSpeechUnknown,
}

// ParsePartOfSpeech maps free text (including dictionary API labels) to a tag.
// Anything outside the closed set becomes PartOfSpeechUnknown.
func ParsePartOfSpeech(s string) PartOfSpeech {
	normalized := PartOfSpeech(strings.ToLower(strings.TrimSpace(s)))
	for _, pos := range AllPartsOfSpeech {
		if pos == normalized {
			return pos
		}
	}
	return PartOfSpeechUnknown
}

// Entry is the read surface shared by words and idioms.
type Entry interface {
	RecordID() uuid.UUID
	PrimaryText() string
	IsFavorite() bool
	CreationTime() time.Time
}

// Record constrains generic code to the stored entity kinds.
type Record interface {
	Word | Idiom
	Entry
}

// Word is a saved vocabulary entry.
type Word struct {
	ID           uuid.UUID    `db:"id" yaml:"id" json:"id"`
	Text         string       `db:"text" yaml:"text" json:"text"`
	Definition   string       `db:"definition" yaml:"definition" json:"definition"`
	PartOfSpeech PartOfSpeech `db:"part_of_speech" yaml:"part_of_speech" json:"part_of_speech"`
	Phonetic     string       `db:"phonetic" yaml:"phonetic,omitempty" json:"phonetic,omitempty"`
	Favorite     bool         `db:"favorite" yaml:"favorite" json:"favorite"`
	CreatedAt    time.Time    `db:"created_at" yaml:"created_at" json:"created_at"`
	Examples     Examples     `db:"examples" yaml:"examples,omitempty" json:"examples"`
}

// NewWord builds a Word with a fresh identifier and creation timestamp.
// The text is trimmed and its first letter capitalized.
func NewWord(text, definition string, pos PartOfSpeech, phonetic string, now time.Time) Word {
	if pos == "" {
		pos = PartOfSpeechUnknown
	}
	return Word{
		ID:           uuid.New(),
		Text:         normalizeText(text),
		Definition:   definition,
		PartOfSpeech: pos,
		Phonetic:     strings.TrimSpace(phonetic),
		CreatedAt:    now,
		Examples:     Examples{},
	}
}

func (w Word) RecordID() uuid.UUID     { return w.ID }
func (w Word) PrimaryText() string     { return w.Text }
func (w Word) IsFavorite() bool        { return w.Favorite }
func (w Word) CreationTime() time.Time { return w.CreatedAt }

// Tag returns the word's part of speech.
func (w Word) Tag() PartOfSpeech { return w.PartOfSpeech }

// Idiom is a saved idiomatic phrase.
type Idiom struct {
	ID         uuid.UUID `db:"id" yaml:"id" json:"id"`
	Text       string    `db:"text" yaml:"text" json:"text"`
	Definition string    `db:"definition" yaml:"definition" json:"definition"`
	Favorite   bool      `db:"favorite" yaml:"favorite" json:"favorite"`
	CreatedAt  time.Time `db:"created_at" yaml:"created_at" json:"created_at"`
	Examples   Examples  `db:"examples" yaml:"examples,omitempty" json:"examples"`
}

// NewIdiom builds an Idiom with a fresh identifier and creation timestamp.
func NewIdiom(text, definition string, now time.Time) Idiom {
	return Idiom{
		ID:         uuid.New(),
		Text:       normalizeText(text),
		Definition: definition,
		CreatedAt:  now,
		Examples:   Examples{},
	}
}

func (i Idiom) RecordID() uuid.UUID     { return i.ID }
func (i Idiom) PrimaryText() string     { return i.Text }
func (i Idiom) IsFavorite() bool        { return i.Favorite }
func (i Idiom) CreationTime() time.Time { return i.CreatedAt }

// KindOf returns the entity kind of T.
func KindOf[T Record]() Kind {
	var zero T
	switch any(zero).(type) {
	case Word:
		return KindWord
	case Idiom:
		return KindIdiom
	}
	panic(fmt.Sprintf("unreachable: unknown record type %T", zero))
}

// WithFavorite returns a copy of r with the favorite flag set to favorite.
func WithFavorite[T Record](r T, favorite bool) T {
	switch v := any(r).(type) {
	case Word:
		v.Favorite = favorite
		return any(v).(T)
	case Idiom:
		v.Favorite = favorite
		return any(v).(T)
	}
	return r
}

func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
