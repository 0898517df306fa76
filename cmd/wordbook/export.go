package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/export"
	"github.com/at-ishikawa/wordbook/internal/view"
)

func newExportCommand() *cobra.Command {
	var (
		outputDir     string
		sortKey       = view.SortName
		favoritesOnly bool
		pdf           bool
	)
	command := &cobra.Command{
		Use:   "export",
		Short: "Export a printable word list as markdown and optionally PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if outputDir == "" {
				outputDir = a.Config.Outputs.Directory
			}
			paths, err := export.NewExporter(a.Store.Words(), a.Store.Idioms()).Export(ctx, export.Options{
				OutputDirectory: outputDir,
				TemplatePath:    a.Config.Templates.WordListTemplate,
				Sort:            sortKey,
				FavoritesOnly:   favoritesOnly,
				PDF:             pdf,
			})
			for _, path := range paths {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&outputDir, "output-dir", "", "output directory. Defaults to outputs.directory")
	flags.Var(&sortKey, "sort", fmt.Sprintf("sort key. Possible values are %v", view.AllSortKeys))
	flags.BoolVar(&favoritesOnly, "favorites", false, "export favorites only")
	flags.BoolVar(&pdf, "pdf", false, "also convert the markdown into a PDF")
	return command
}
