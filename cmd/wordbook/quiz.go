package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/cli"
	"github.com/at-ishikawa/wordbook/internal/learning"
	"github.com/at-ishikawa/wordbook/internal/quiz"
	"github.com/at-ishikawa/wordbook/internal/view"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

func newQuizCommand() *cobra.Command {
	quizCommand := &cobra.Command{
		Use:   "quiz",
		Short: "Quiz commands for practicing saved words",
	}

	quizCommand.AddCommand(newQuizSpellingCommand())
	quizCommand.AddCommand(newQuizChoiceCommand())
	quizCommand.AddCommand(newQuizHistoryCommand())

	return quizCommand
}

// quizWords returns the words to practice, limited to favorites when asked.
func quizWords(words []vocabulary.Word, favoritesOnly bool) []vocabulary.Word {
	var filter view.Filter
	if favoritesOnly {
		filter.SelectFavorite()
	}
	return view.Apply(words, view.Options{Filter: filter}).Records
}

// dueWords keeps the words never quizzed or due for review at now.
func dueWords(ctx context.Context, logs *learning.DBLearningRepository, words []vocabulary.Word, now time.Time) ([]vocabulary.Word, error) {
	all, err := logs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("learning.FindAll() > %w", err)
	}
	summaries := learning.SummarizeByWord(all)

	due := make([]vocabulary.Word, 0, len(words))
	for _, w := range words {
		if s, ok := summaries[w.ID]; !ok || s.Review.IsDue(now) {
			due = append(due, w)
		}
	}
	return due, nil
}

func newRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func newQuizSpellingCommand() *cobra.Command {
	var favoritesOnly, dueOnly bool
	command := &cobra.Command{
		Use:   "spelling",
		Short: "Shows a definition, you type the word",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			words := quizWords(a.Words.Records(), favoritesOnly)
			if dueOnly {
				if words, err = dueWords(cmd.Context(), a.Learning, words, time.Now()); err != nil {
					return err
				}
			}
			questions, err := quiz.NewSpelling(words, newRand())
			if err != nil {
				return fmt.Errorf("quiz.NewSpelling() > %w", err)
			}

			base := cli.NewInteractiveQuizCLI(cmd.InOrStdin(), cmd.OutOrStdout())
			base.SetRecorder(a.Learning)
			spellingCLI := cli.NewSpellingQuizCLI(base, questions)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Spelling quiz with %d words. Press Ctrl+D to stop.\n\n", len(questions))
			return spellingCLI.Run(cmd.Context(), spellingCLI)
		},
	}
	command.Flags().BoolVar(&favoritesOnly, "favorites", false, "practice favorites only")
	command.Flags().BoolVar(&dueOnly, "due", false, "practice words due for review only")
	return command
}

func newQuizChoiceCommand() *cobra.Command {
	var favoritesOnly, dueOnly bool
	command := &cobra.Command{
		Use:   "choice",
		Short: "Shows a word, you pick its definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			words := quizWords(a.Words.Records(), favoritesOnly)
			if dueOnly {
				if words, err = dueWords(cmd.Context(), a.Learning, words, time.Now()); err != nil {
					return err
				}
			}
			questions, err := quiz.NewMultipleChoice(words, newRand())
			if err != nil {
				return fmt.Errorf("quiz.NewMultipleChoice() > %w", err)
			}

			base := cli.NewInteractiveQuizCLI(cmd.InOrStdin(), cmd.OutOrStdout())
			base.SetRecorder(a.Learning)
			choiceCLI := cli.NewMultipleChoiceQuizCLI(base, questions)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Multiple choice quiz with %d words. Press Ctrl+D to stop.\n\n", len(questions))
			return choiceCLI.Run(cmd.Context(), choiceCLI)
		},
	}
	command.Flags().BoolVar(&favoritesOnly, "favorites", false, "practice favorites only")
	command.Flags().BoolVar(&dueOnly, "due", false, "practice words due for review only")
	return command
}

func newQuizHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Shows quiz accuracy and next review per word, weakest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			logs, err := a.Learning.FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("learning.FindAll() > %w", err)
			}

			texts := make(map[uuid.UUID]string)
			for _, w := range a.Words.Records() {
				texts[w.ID] = w.Text
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "WORD\tACCURACY\tANSWERS\tLAST ANSWERED\tNEXT REVIEW")
			var rows int
			for _, s := range learning.Summarize(logs) {
				text, ok := texts[s.WordID]
				// answers for deleted words are kept but not shown
				if !ok {
					continue
				}
				_, _ = fmt.Fprintf(tw, "%s\t%.0f%%\t%d/%d\t%s\t%s\n",
					text, s.Accuracy()*100, s.Correct, s.Answers,
					s.LastAnsweredAt.Local().Format(time.DateTime),
					s.Review.DueAt.Local().Format(time.DateOnly),
				)
				rows++
			}
			if rows == 0 {
				_, _ = fmt.Fprintln(out, "No quiz answers recorded yet.")
				return nil
			}
			return tw.Flush()
		},
	}
}
