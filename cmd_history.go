package main

import (
	"github.com/spf13/cobra"

	"haus-finance/domain"
)

var (
	historyKind  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded calculations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackends(cmd, func(b *backends) error {
			records, err := b.calc.History(cmd.Context(), domain.CalculationKind(historyKind), historyLimit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), records)
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.CreatedAt.Local().Format("2006-01-02 15:04"),
					string(rec.Kind),
					rec.ID.String(),
				})
			}
			return renderColumns(cmd.OutOrStdout(), "Calculation history", []string{"When", "Kind", "ID"}, rows)
		})
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "only list this calculation kind")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of records")
}
