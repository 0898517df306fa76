package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var debug bool
	rootCommand := &cobra.Command{
		Use:          "wordbook",
		Short:        "A personal dictionary of words and idioms",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debug)
		},
	}

	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", os.Getenv("WORDBOOK_CONFIG"), "config file path")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")

	rootCommand.AddCommand(newWordCommand())
	rootCommand.AddCommand(newIdiomCommand())
	rootCommand.AddCommand(newLookupCommand())
	rootCommand.AddCommand(newQuizCommand())
	rootCommand.AddCommand(newSyncCommand())
	rootCommand.AddCommand(newExportCommand())
	rootCommand.AddCommand(newStatsCommand())
	rootCommand.AddCommand(newMigrateCommand())
	return rootCommand
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})))
}
