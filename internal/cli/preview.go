package cli

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [directory]",
	Short: "Show what organize would do, as a tree",
	Long: `Build the organization plan for the given directory (default: current
directory) and render it as a Year/Category tree with per-category
statistics. Nothing is moved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := targetDir(args)
		if err != nil {
			return err
		}
		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.Preview(root)
	},
}
