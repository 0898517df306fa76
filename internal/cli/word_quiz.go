package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/at-ishikawa/wordbook/internal/quiz"
)

// SpellingQuizCLI asks for the word matching each definition.
type SpellingQuizCLI struct {
	*InteractiveQuizCLI
	questions []quiz.SpellingQuestion
}

func NewSpellingQuizCLI(base *InteractiveQuizCLI, questions []quiz.SpellingQuestion) *SpellingQuizCLI {
	return &SpellingQuizCLI{
		InteractiveQuizCLI: base,
		questions:          questions,
	}
}

func (r *SpellingQuizCLI) Session(ctx context.Context) error {
	if len(r.questions) == 0 {
		_, _ = fmt.Fprintln(r.stdoutWriter, "No more words to practice!")
		return errEnd
	}
	q := r.questions[0]

	_, _ = fmt.Fprintf(r.stdoutWriter, "%s\n", r.italic.Sprintf("%s", q.Prompt()))
	_, _ = r.bold.Fprint(r.stdoutWriter, "Word: ")
	answer, err := r.readAnswer()
	if err != nil {
		return err
	}

	if q.Check(answer) {
		err = r.answer(ctx, q.Word.ID, quiz.TypeSpelling, true, "It's correct.")
	} else {
		err = r.answer(ctx, q.Word.ID, quiz.TypeSpelling, false, `It's wrong. The answer is "%s"`, r.bold.Sprintf("%s", q.Word.Text))
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(r.stdoutWriter)

	r.questions = r.questions[1:]
	return nil
}

// MultipleChoiceQuizCLI asks for the definition of each word among options.
type MultipleChoiceQuizCLI struct {
	*InteractiveQuizCLI
	questions []quiz.ChoiceQuestion
}

func NewMultipleChoiceQuizCLI(base *InteractiveQuizCLI, questions []quiz.ChoiceQuestion) *MultipleChoiceQuizCLI {
	return &MultipleChoiceQuizCLI{
		InteractiveQuizCLI: base,
		questions:          questions,
	}
}

func (r *MultipleChoiceQuizCLI) Session(ctx context.Context) error {
	if len(r.questions) == 0 {
		_, _ = fmt.Fprintln(r.stdoutWriter, "No more words to practice!")
		return errEnd
	}
	q := r.questions[0]

	_, _ = fmt.Fprintf(r.stdoutWriter, "What does %s mean?\n", r.bold.Sprintf("%s", q.Word.Text))
	for i, option := range q.Options {
		_, _ = fmt.Fprintf(r.stdoutWriter, "  %d) %s\n", i+1, option)
	}
	_, _ = r.bold.Fprint(r.stdoutWriter, "Choice: ")
	answer, err := r.readAnswer()
	if err != nil {
		return err
	}

	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || choice < 1 || choice > len(q.Options) {
		_, _ = fmt.Fprintf(r.stdoutWriter, "Please enter a number between 1 and %d\n", len(q.Options))
		return nil
	}

	if q.Check(choice - 1) {
		err = r.answer(ctx, q.Word.ID, quiz.TypeChoice, true, "It's correct.")
	} else {
		err = r.answer(ctx, q.Word.ID, quiz.TypeChoice, false, `It's wrong. %s means "%s"`,
			r.bold.Sprintf("%s", q.Word.Text),
			r.italic.Sprintf("%s", q.Options[q.Answer]),
		)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(r.stdoutWriter)

	r.questions = r.questions[1:]
	return nil
}
