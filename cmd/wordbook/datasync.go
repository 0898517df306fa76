package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/datasync"
)

func newSyncCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "sync",
		Short: "Move words and idioms between the database and YAML files",
	}
	command.AddCommand(newSyncExportCommand())
	command.AddCommand(newSyncImportCommand())
	return command
}

func newSyncExportCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every word and idiom into a YAML file",
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
			doc, err := datasync.NewExporter(a.Store.Words(), a.Store.Idioms()).Export(ctx)
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}
			path, err := datasync.NewYAMLSink(outputDir).Write(doc)
			if err != nil {
				return fmt.Errorf("sink.Write() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words and %d idioms to %s\n", len(doc.Words), len(doc.Idioms), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory of the YAML file. Defaults to outputs.directory")
	return cmd
}

func newSyncImportCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import words and idioms from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := datasync.ReadYAML(args[0])
			if err != nil {
				return fmt.Errorf("datasync.ReadYAML() > %w", err)
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(a.Store, a.Store.Words(), a.Store.Idioms(), out)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.Import(ctx, doc, opts)
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}

			_, _ = fmt.Fprintln(out, "\nImport Summary:")
			if opts.DryRun {
				_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			_, _ = fmt.Fprintf(out, "  Words:   %d new, %d skipped, %d updated\n", result.WordsNew, result.WordsSkipped, result.WordsUpdated)
			_, _ = fmt.Fprintf(out, "  Idioms:  %d new, %d skipped, %d updated\n", result.IdiomsNew, result.IdiomsSkipped, result.IdiomsUpdated)
			_, _ = fmt.Fprintf(out, "  Deleted: %d\n", result.Deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}
