package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/app"
	"github.com/at-ishikawa/wordbook/internal/repository"
	"github.com/at-ishikawa/wordbook/internal/view"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// listOptions are the flags shared by the list commands.
type listOptions struct {
	sort      view.SortKey
	favorites bool
	search    string
}

func (o *listOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Var(&o.sort, "sort", fmt.Sprintf("sort key. Possible values are %v", view.AllSortKeys))
	flags.BoolVar(&o.favorites, "favorites", false, "show favorites only")
	flags.StringVarP(&o.search, "search", "s", "", "show records containing this text")
}

func (o *listOptions) viewOptions() view.Options {
	opts := view.Options{Sort: o.sort}
	if o.favorites {
		opts.Filter.SelectFavorite()
	}
	opts.Filter.SetSearch(o.search)
	return opts
}

func newWordCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "word",
		Short: "Manage saved words",
	}
	command.AddCommand(newWordAddCommand())
	command.AddCommand(newListCommand("word", func(a *app.App) *repository.Repository[vocabulary.Word] {
		return a.Words.Repository
	}, describeWord))
	command.AddCommand(newDeleteCommand("word", func(a *app.App) *repository.Repository[vocabulary.Word] {
		return a.Words.Repository
	}))
	command.AddCommand(newFavoriteCommand("word", func(a *app.App) *repository.Repository[vocabulary.Word] {
		return a.Words.Repository
	}))
	return command
}

func newIdiomCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "idiom",
		Short: "Manage saved idioms",
	}
	command.AddCommand(newIdiomAddCommand())
	command.AddCommand(newListCommand("idiom", func(a *app.App) *repository.Repository[vocabulary.Idiom] {
		return a.Idioms.Repository
	}, describeIdiom))
	command.AddCommand(newDeleteCommand("idiom", func(a *app.App) *repository.Repository[vocabulary.Idiom] {
		return a.Idioms.Repository
	}))
	command.AddCommand(newFavoriteCommand("idiom", func(a *app.App) *repository.Repository[vocabulary.Idiom] {
		return a.Idioms.Repository
	}))
	return command
}

func newWordAddCommand() *cobra.Command {
	var (
		definition string
		pos        = partOfSpeechFlag(vocabulary.PartOfSpeechUnknown)
		phonetic   string
		examples   []string
	)
	command := &cobra.Command{
		Use:   "add TEXT",
		Short: "Save a new word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" || strings.TrimSpace(definition) == "" {
				return fmt.Errorf("text and --definition must not be empty")
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			word, err := a.Words.Add(cmd.Context(), repository.WordInput{
				Text:         args[0],
				Definition:   strings.TrimSpace(definition),
				PartOfSpeech: vocabulary.PartOfSpeech(pos),
				Phonetic:     phonetic,
				Examples:     examples,
			})
			if err != nil {
				return fmt.Errorf("words.Add() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", word.Text, word.ID)
			return nil
		},
	}
	flags := command.Flags()
	flags.StringVarP(&definition, "definition", "d", "", "definition of the word")
	flags.Var(&pos, "pos", fmt.Sprintf("part of speech. Possible values are %v", vocabulary.AllPartsOfSpeech))
	flags.StringVar(&phonetic, "phonetic", "", "phonetic transcription")
	flags.StringArrayVarP(&examples, "example", "e", nil, "usage example, repeatable")
	return command
}

func newIdiomAddCommand() *cobra.Command {
	var (
		definition string
		examples   []string
	)
	command := &cobra.Command{
		Use:   "add TEXT",
		Short: "Save a new idiom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" || strings.TrimSpace(definition) == "" {
				return fmt.Errorf("text and --definition must not be empty")
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			idiom, err := a.Idioms.Add(cmd.Context(), repository.IdiomInput{
				Text:       args[0],
				Definition: strings.TrimSpace(definition),
				Examples:   examples,
			})
			if err != nil {
				return fmt.Errorf("idioms.Add() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", idiom.Text, idiom.ID)
			return nil
		},
	}
	flags := command.Flags()
	flags.StringVarP(&definition, "definition", "d", "", "definition of the idiom")
	flags.StringArrayVarP(&examples, "example", "e", nil, "usage example, repeatable")
	return command
}

func newListCommand[T vocabulary.Record](kind string, repo func(*app.App) *repository.Repository[T], describe func(T) []string) *cobra.Command {
	var opts listOptions
	command := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List saved %ss", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			result := view.Apply(repo(a).Records(), opts.viewOptions())
			printRecords(cmd.OutOrStdout(), result, describe)
			if result.OfferCreate {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nAdd it with: wordbook %s add %q --definition ...\n", kind, result.Query)
			}
			return nil
		},
	}
	opts.register(command)
	return command
}

func printRecords[T vocabulary.Record](w io.Writer, result view.Result[T], describe func(T) []string) {
	if len(result.Records) == 0 {
		_, _ = fmt.Fprintln(w, "No records found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range result.Records {
		star := " "
		if r.IsFavorite() {
			star = color.YellowString("*")
		}
		columns := append([]string{r.RecordID().String()[:8], star}, describe(r)...)
		_, _ = fmt.Fprintln(tw, strings.Join(columns, "\t"))
	}
	_ = tw.Flush()
}

func describeWord(w vocabulary.Word) []string {
	return []string{w.Text, string(w.PartOfSpeech), w.Definition}
}

func describeIdiom(i vocabulary.Idiom) []string {
	return []string{i.Text, i.Definition}
}

func newDeleteCommand[T vocabulary.Record](kind string, repo func(*app.App) *repository.Repository[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a saved %s by id or id prefix", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			r := repo(a)
			record, err := findRecord(r.Records(), args[0])
			if err != nil {
				return err
			}
			if err := r.Delete(cmd.Context(), record); err != nil {
				if app.IsRecordNotFound(err) {
					return fmt.Errorf("%q was already deleted", record.PrimaryText())
				}
				return fmt.Errorf("repository.Delete() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", record.PrimaryText())
			return nil
		},
	}
}

func newFavoriteCommand[T vocabulary.Record](kind string, repo func(*app.App) *repository.Repository[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite ID",
		Short: fmt.Sprintf("Toggle the favorite flag of a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			r := repo(a)
			record, err := findRecord(r.Records(), args[0])
			if err != nil {
				return err
			}
			updated, err := r.ToggleFavorite(cmd.Context(), record)
			if err != nil {
				return fmt.Errorf("repository.ToggleFavorite() > %w", err)
			}
			state := "removed from"
			if updated.IsFavorite() {
				state = "added to"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%q %s favorites\n", updated.PrimaryText(), state)
			return nil
		},
	}
}
