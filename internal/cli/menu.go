package cli

import (
	"os"

	"github.com/spf13/cobra"

	"fastsort/internal/menu"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu()
	},
}

// runMenu starts the wizard. The wizard runs its own confirmations, so
// the App skips the command-line one.
func runMenu() error {
	app, err := newApp(true)
	if err != nil {
		return err
	}
	defer app.Close()
	app.assumeYes = true

	return menu.NewWizard(app, os.Stdin, os.Stdout).Run()
}
