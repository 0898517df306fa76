package dictionary

import (
	"strings"

	"github.com/at-ishikawa/wordbook/internal/repository"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// WordEntry is one entry returned by the dictionary API.
type WordEntry struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic,omitempty"`
	Phonetics []Phonetic `json:"phonetics,omitempty"`
	Origin    string     `json:"origin,omitempty"`
	Meanings  []Meaning  `json:"meanings"`
}

type Phonetic struct {
	Text     string `json:"text,omitempty"`
	AudioURL string `json:"audio,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

type Definition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// PhoneticText returns the entry's transcription, falling back to the first
// non-empty one among its phonetics.
func (e WordEntry) PhoneticText() string {
	if e.Phonetic != "" {
		return e.Phonetic
	}
	for _, p := range e.Phonetics {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

// ToWordInput converts an entry into input for a new word, using the first
// meaning's part of speech and definition. Examples are collected from every
// definition of that meaning.
func ToWordInput(entry WordEntry) repository.WordInput {
	in := repository.WordInput{
		Text:         strings.TrimSpace(entry.Word),
		PartOfSpeech: vocabulary.PartOfSpeechUnknown,
		Phonetic:     entry.PhoneticText(),
	}
	if len(entry.Meanings) == 0 {
		return in
	}

	meaning := entry.Meanings[0]
	in.PartOfSpeech = vocabulary.ParsePartOfSpeech(meaning.PartOfSpeech)
	for i, d := range meaning.Definitions {
		if i == 0 {
			in.Definition = d.Definition
		}
		if d.Example != "" {
			in.Examples = append(in.Examples, d.Example)
		}
	}
	return in
}
