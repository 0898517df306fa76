package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/app"
	"github.com/at-ishikawa/wordbook/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configFile)
			if err != nil {
				return err
			}
			db, err := database.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database schema of %s is up to date\n", cfg.Database.Driver)
			return nil
		},
	}
}
