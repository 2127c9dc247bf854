package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fastsort/internal/fsops"
	"fastsort/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and edit the categorization rules",
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active rule file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.ShowRules()
	},
}

var rulesInitForce bool

var rulesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the stock rule file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		defer app.Close()

		if _, err := os.Lstat(app.cfg.RulesFile); err == nil && !rulesInitForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", app.cfg.RulesFile)
		}
		fs := fsops.NewRealFS()
		if err := fs.AtomicWrite(app.cfg.RulesFile, []byte(rules.Default()), 0644); err != nil {
			return err
		}
		PrintSuccess("wrote " + app.cfg.RulesFile)
		return nil
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <category> <extension>",
	Short: "Assign an extension to a category",
	Long: `Add an extension to a category, creating the category if it does not
exist yet. The rule file is rewritten; an extension already owned by a
different category is rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editRules(func(rs *rules.RuleSet) (*rules.RuleSet, string, error) {
			next, err := rs.AddExtension(args[0], args[1])
			if err != nil {
				return nil, "", err
			}
			msg := fmt.Sprintf("added %s to %s", rules.NormalizeExtension(args[1]), args[0])
			return next, msg, nil
		})
	},
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove <extension>",
	Short: "Unassign an extension from its category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editRules(func(rs *rules.RuleSet) (*rules.RuleSet, string, error) {
			next, owner, err := rs.RemoveExtension(args[0])
			if err != nil {
				return nil, "", err
			}
			msg := fmt.Sprintf("removed %s from %s", rules.NormalizeExtension(args[0]), owner)
			return next, msg, nil
		})
	},
}

// editRules loads the rule file, applies edit and writes the result
// back atomically. Comments are not preserved across edits.
func editRules(edit func(*rules.RuleSet) (*rules.RuleSet, string, error)) error {
	app, err := newApp(false)
	if err != nil {
		return err
	}
	defer app.Close()

	rs, err := app.loadRules()
	if err != nil {
		return err
	}
	next, msg, err := edit(rs)
	if err != nil {
		return err
	}

	fs := fsops.NewRealFS()
	if err := fs.AtomicWrite(app.cfg.RulesFile, []byte(next.Serialize()), 0644); err != nil {
		return err
	}
	PrintSuccess(msg)
	return nil
}

func init() {
	rulesInitCmd.Flags().BoolVarP(&rulesInitForce, "force", "f", false, "Overwrite an existing rule file")

	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesRemoveCmd)
}
