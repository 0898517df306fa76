package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

func newLookupCommand() *cobra.Command {
	var save bool
	command := &cobra.Command{
		Use:   "lookup WORD",
		Short: "Look a word up in the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			entries, err := a.Dictionary.Lookup(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("dictionary.Lookup() > %w", err)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintf(out, "No definitions found for %q\n", args[0])
				return nil
			}
			showEntry(out, entries[0])

			if !save {
				return nil
			}
			in := dictionary.ToWordInput(entries[0])
			if in.Definition == "" {
				return fmt.Errorf("the entry for %q has no definition to save", in.Text)
			}
			word, err := a.Words.Add(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("words.Add() > %w", err)
			}
			_, _ = fmt.Fprintf(out, "\nSaved %q (%s)\n", word.Text, word.ID)
			return nil
		},
	}
	command.Flags().BoolVar(&save, "save", false, "save the first definition as a new word")
	return command
}

func showEntry(w io.Writer, entry dictionary.WordEntry) {
	bold := color.New(color.Bold)
	italic := color.New(color.Italic)

	_, _ = bold.Fprint(w, entry.Word)
	if phonetic := entry.PhoneticText(); phonetic != "" {
		_, _ = fmt.Fprintf(w, " %s", phonetic)
	}
	_, _ = fmt.Fprintln(w)

	for _, meaning := range entry.Meanings {
		_, _ = fmt.Fprintf(w, "\n%s\n", italic.Sprint(meaning.PartOfSpeech))
		for i, d := range meaning.Definitions {
			_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, d.Definition)
			if d.Example != "" {
				_, _ = fmt.Fprintf(w, "     e.g. %s\n", d.Example)
			}
			if len(d.Synonyms) > 0 {
				_, _ = fmt.Fprintf(w, "     synonyms: %s\n", strings.Join(d.Synonyms, ", "))
			}
		}
	}
}
