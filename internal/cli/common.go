package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"fastsort/internal/clock"
	"fastsort/internal/config"
	"fastsort/internal/dedup"
	"fastsort/internal/executor"
	"fastsort/internal/fsops"
	"fastsort/internal/hash"
	"fastsort/internal/history"
	"fastsort/internal/logging"
	"fastsort/internal/menu"
	"fastsort/internal/planner"
	"fastsort/internal/report"
	"fastsort/internal/rules"
	"fastsort/internal/stats"
)

// App wires the real dependencies behind every subcommand and the
// interactive menu.
type App struct {
	paths *config.Paths
	cfg   *config.Config
	log   *logging.Logger
	clk   clock.Clock

	// assumeYes suppresses the execute confirmation. Set by --yes, or
	// by the wizard which runs its own confirmations.
	assumeYes bool
}

// newApp loads configuration and builds an App. When logToFile is set
// a timestamped log file is opened under the configured log directory.
func newApp(logToFile bool) (*App, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, err
	}
	// First run materializes the commented sample settings file.
	if _, err := config.WriteSample(paths); err != nil {
		return nil, err
	}
	cfg, err := config.Load(paths)
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDirectories(paths, cfg); err != nil {
		return nil, err
	}

	clk := &clock.RealClock{}
	opts := []logging.Option{}
	if verbose {
		opts = append(opts, logging.WithVerbose())
	}
	if logToFile {
		name := "fastsort_" + clock.Stamp(clk.Now()) + ".log"
		opts = append(opts, logging.WithFile(filepath.Join(cfg.LogDir, name)))
	}
	log, err := logging.New(opts...)
	if err != nil {
		return nil, err
	}

	return &App{paths: paths, cfg: cfg, log: log, clk: clk}, nil
}

// Close releases the log file.
func (a *App) Close() error {
	return a.log.Close()
}

// loadRules reads and parses the configured rule file. A missing file
// falls back to the stock rules with a warning.
func (a *App) loadRules() (*rules.RuleSet, error) {
	data, err := os.ReadFile(a.cfg.RulesFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read rule file %s: %w", a.cfg.RulesFile, err)
		}
		a.log.Warn("rule file %s not found, using built-in defaults (run `fastsort rules init`)", a.cfg.RulesFile)
		return rules.Parse(rules.Default())
	}
	return rules.Parse(string(data))
}

// plan classifies root and builds the operation plan.
func (a *App) plan(root string, policy dedup.Policy) (*planner.Plan, error) {
	rs, err := a.loadRules()
	if err != nil {
		return nil, err
	}

	var chooser dedup.Chooser
	if policy == dedup.PolicyPrompt {
		chooser = menu.PromptChooser(os.Stdin, os.Stdout)
	}

	p := planner.New(fsops.NewRealFS(), hash.NewSHA256Hasher(), policy, chooser)
	return p.Plan(root, rs)
}

// Organize plans and applies the organization of root.
func (a *App) Organize(root string, mode executor.Mode, policy dedup.Policy) error {
	startedAt := a.clk.Now()

	plan, err := a.plan(root, policy)
	if err != nil {
		return err
	}
	if plan.Moves() == 0 && plan.Deletes() == 0 {
		PrintInfo("nothing to organize in " + root)
		return nil
	}

	PrintInfo(report.Summary(plan))
	if mode == executor.ModeExecute && !a.assumeYes {
		if !confirmStdin(fmt.Sprintf("Move %s now?", PrintCount(plan.Moves(), "file", "files"))) {
			PrintInfo("aborted")
			return nil
		}
	}

	result := executor.New(fsops.NewRealFS(), a.log).Run(plan, mode)

	if jsonOutput {
		return outputJSON(result)
	}

	if len(result.Failed) > 0 {
		PrintWarning(fmt.Sprintf("%s failed", PrintCount(len(result.Failed), "operation", "operations")))
		for _, r := range result.Failed {
			PrintError(fmt.Sprintf("%s: %s", r.Op.Source, r.Err))
		}
	}
	switch mode {
	case executor.ModeTest:
		PrintSuccess(fmt.Sprintf("test run complete, %s would be applied", PrintCount(len(result.Completed), "operation", "operations")))
	case executor.ModeExecute:
		PrintSuccess(fmt.Sprintf("organized %s (%s)", root, PrintCount(len(result.Completed), "operation", "operations")))
		runID, err := a.recordRun(startedAt, root, result)
		if err != nil {
			a.log.Warn("failed to record run history: %v", err)
		} else {
			PrintLabelValue("Run ID", runID)
		}
	}
	return nil
}

// recordRun journals an executed run in the history database.
func (a *App) recordRun(startedAt time.Time, root string, result *executor.RunResult) (string, error) {
	db, err := history.Open(a.cfg.HistoryDB)
	if err != nil {
		return "", err
	}
	defer db.Close()
	return history.NewStore(db).RecordRun(startedAt, root, result)
}

// Preview renders the plan tree and per-category stats without touching
// anything. Duplicate groups are never prompted for here; colliding
// files show up with disambiguated names.
func (a *App) Preview(root string) error {
	plan, err := a.plan(root, dedup.PolicySkip)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(plan)
	}

	PrintSection("Preview of " + root)
	PrintInfo(report.PlanTree(plan, a.cfg.PreviewSampleSize))
	PrintInfo("")
	PrintInfo(report.PlanStats(plan))
	PrintInfo(report.Summary(plan))
	for _, line := range report.Failures(plan) {
		PrintWarning(line)
	}
	return nil
}

// Stats collects and renders directory statistics.
func (a *App) Stats(root string) error {
	s, err := stats.Collect(root)
	if err != nil {
		return err
	}
	if jsonOutput {
		return outputJSON(s)
	}
	PrintSection("Statistics for " + root)
	PrintInfo(report.DirectoryStats(s))
	for _, f := range s.Failures {
		PrintWarning(f)
	}
	return nil
}

// ShowRules renders the active rule set as a table. An unparseable
// rule file is shown raw alongside its error.
func (a *App) ShowRules() error {
	data, err := os.ReadFile(a.cfg.RulesFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		PrintWarning(fmt.Sprintf("no rule file at %s, showing built-in defaults", a.cfg.RulesFile))
		data = []byte(rules.Default())
	}

	rs, err := rules.Parse(string(data))
	if err != nil {
		PrintWarning(fmt.Sprintf("rule file does not parse: %v", err))
		fmt.Print(string(data))
		return nil
	}
	PrintLabelValue("Rule file", a.cfg.RulesFile)
	PrintInfo(report.RulesTable(rs))
	return nil
}

// ShowHistory lists the most recent runs.
func (a *App) ShowHistory() error {
	db, err := history.Open(a.cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := history.NewStore(db).ListRuns(20)
	if err != nil {
		return err
	}
	if jsonOutput {
		return outputJSON(runs)
	}
	PrintInfo(report.RunsTable(runs))
	return nil
}

// targetDir resolves the optional positional directory argument,
// defaulting to the current directory.
func targetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	fi, err := os.Lstat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", abs, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// confirmStdin asks a y/N question on the terminal. Non-interactive
// stdin counts as a no; scripts must pass --yes.
func confirmStdin(prompt string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		PrintWarning("stdin is not a terminal, use --yes to skip confirmation")
		return false
	}
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
