package cli

import (
	"github.com/spf13/cobra"

	"fastsort/internal/history"
	"fastsort/internal/report"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded organization runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()

		db, err := history.Open(app.cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := history.NewStore(db).ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(runs)
		}
		PrintInfo(report.RunsTable(runs))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run with its journaled operations",
	Long: `Show a single recorded run. The run ID may be abbreviated to any
unambiguous prefix, like the eight characters the listing shows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()

		db, err := history.Open(app.cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer db.Close()

		run, ops, err := history.NewStore(db).GetRun(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(struct {
				Run *history.Run       `json:"run"`
				Ops []history.OpRecord `json:"operations"`
			}{run, ops})
		}
		PrintInfo(report.RunDetail(run, ops))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
	historyCmd.AddCommand(historyShowCmd)
}
