package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [directory]",
	Short: "Show statistics for a directory",
	Long: `Walk the given directory (default: current directory) and report file
counts, sizes, top extensions, files by year and the largest files.`,
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
		return app.Stats(root)
	},
}
