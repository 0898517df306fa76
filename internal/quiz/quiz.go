// Package quiz builds spelling-recall and multiple-choice questions from a
// snapshot of saved words.
package quiz

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// Quiz types stored with every recorded answer.
const (
	TypeSpelling = "spelling"
	TypeChoice   = "choice"
)

// MaxOptions is the number of choices offered per multiple-choice question.
const MaxOptions = 4

var ErrNotEnoughWords = errors.New("not enough words for a quiz")

// SpellingQuestion shows a definition and expects the word.
type SpellingQuestion struct {
	Word vocabulary.Word
}

func (q SpellingQuestion) Prompt() string {
	return q.Word.Definition
}

// Check compares the answer with the word, ignoring case and surrounding
// whitespace.
func (q SpellingQuestion) Check(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.Word.Text))
}

// ChoiceQuestion shows a word and asks for its definition among Options.
type ChoiceQuestion struct {
	Word    vocabulary.Word
	Options []string
	Answer  int
}

func (q ChoiceQuestion) Check(choice int) bool {
	return choice == q.Answer
}

// Score counts answers in a session.
type Score struct {
	Correct int
	Total   int
}

func (s *Score) Record(correct bool) {
	s.Total++
	if correct {
		s.Correct++
	}
}

// NewSpelling returns one question per word in random order.
func NewSpelling(words []vocabulary.Word, rng *rand.Rand) ([]SpellingQuestion, error) {
	if len(words) == 0 {
		return nil, ErrNotEnoughWords
	}
	questions := make([]SpellingQuestion, 0, len(words))
	for _, w := range words {
		questions = append(questions, SpellingQuestion{Word: w})
	}
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions, nil
}

// NewMultipleChoice returns one question per word in random order. Wrong
// options are definitions of other words; a word whose definition cannot be
// told apart from every other word is skipped.
func NewMultipleChoice(words []vocabulary.Word, rng *rand.Rand) ([]ChoiceQuestion, error) {
	if len(words) < 2 {
		return nil, ErrNotEnoughWords
	}

	questions := make([]ChoiceQuestion, 0, len(words))
	for _, i := range rng.Perm(len(words)) {
		word := words[i]
		options := []string{word.Definition}
		for _, j := range rng.Perm(len(words)) {
			if len(options) == MaxOptions {
				break
			}
			definition := words[j].Definition
			if j == i || slices.Contains(options, definition) {
				continue
			}
			options = append(options, definition)
		}
		if len(options) < 2 {
			continue
		}

		rng.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		questions = append(questions, ChoiceQuestion{
			Word:    word,
			Options: options,
			Answer:  slices.Index(options, word.Definition),
		})
	}
	if len(questions) == 0 {
		return nil, ErrNotEnoughWords
	}
	return questions, nil
}
