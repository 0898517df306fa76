package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/statistics"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

func newStatsCommand() *cobra.Command {
	var year, month int
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show how many words and idioms were added per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			result := statistics.CalculateStatistics(a.Words.Records(), a.Idioms.Records(), year, month)
			out := cmd.OutOrStdout()
			if len(result.Periods) == 0 {
				_, _ = fmt.Fprintln(out, "No records found.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "PERIOD\tWORDS\tIDIOMS\tFAVORITES")
			for _, p := range result.Periods {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", p.Period, p.Words, p.Idioms, p.Favorites)
			}
			total := result.Aggregate
			_, _ = fmt.Fprintf(tw, "total\t%d\t%d\t%d\n", total.Words, total.Idioms, total.Favorites)
			_ = tw.Flush()

			_, _ = fmt.Fprintln(out)
			for _, pos := range vocabulary.AllPartsOfSpeech {
				if n := total.PartsOfSpeech[pos]; n > 0 {
					_, _ = fmt.Fprintf(out, "%s: %d\n", pos, n)
				}
			}
			return nil
		},
	}
	flags := command.Flags()
	flags.IntVar(&year, "year", 0, "only count records added in this year")
	flags.IntVar(&month, "month", 0, "only count records added in this month of --year")
	return command
}
