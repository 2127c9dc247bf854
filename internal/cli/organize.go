package cli

import (
	"github.com/spf13/cobra"

	"fastsort/internal/dedup"
	"fastsort/internal/executor"
)

var (
	organizeTest  bool
	organizeDedup string
	organizeYes   bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [directory]",
	Short: "Sort a directory into Year/Category folders",
	Long: `Organize the given directory (default: current directory) into a
Year/Category structure according to the rule file.

With --test every operation is logged but nothing is moved. Duplicate
handling is controlled by --dedup: skip renames collisions, prompt asks
per duplicate group, force-newest keeps the most recent copy and
deletes the rest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := targetDir(args)
		if err != nil {
			return err
		}
		app, err := newApp(true)
		if err != nil {
			return err
		}
		defer app.Close()
		app.assumeYes = organizeYes

		policyName := organizeDedup
		if policyName == "" {
			policyName = app.cfg.DedupPolicy
		}
		policy, err := dedup.ParsePolicy(policyName)
		if err != nil {
			return err
		}

		mode := executor.ModeExecute
		if organizeTest {
			mode = executor.ModeTest
		}
		return app.Organize(root, mode, policy)
	},
}

func init() {
	organizeCmd.Flags().BoolVarP(&organizeTest, "test", "t", false, "Simulate without moving anything")
	organizeCmd.Flags().StringVar(&organizeDedup, "dedup", "", "Duplicate policy: skip, prompt or force-newest")
	organizeCmd.Flags().BoolVarP(&organizeYes, "yes", "y", false, "Skip the confirmation prompt")
}
