// Package menu implements the interactive terminal wizard.
//
// The wizard is a thin shell over the same operations the subcommands
// expose; it owns prompting and nothing else. All decisions flow back
// through the App interface so the wizard stays testable with scripted
// input and a recording App.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"fastsort/internal/dedup"
	"fastsort/internal/executor"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	optionColor = color.New(color.FgWhite)
	warnColor   = color.New(color.FgYellow, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

// App is the surface the wizard drives. The CLI provides the real
// implementation; tests provide a recorder.
type App interface {
	Organize(root string, mode executor.Mode, policy dedup.Policy) error
	Preview(root string) error
	Stats(root string) error
	ShowRules() error
	ShowHistory() error
}

// Wizard runs the interactive menu loop.
type Wizard struct {
	app App
	in  *bufio.Reader
	out io.Writer
}

// NewWizard creates a Wizard reading choices from in.
func NewWizard(app App, in io.Reader, out io.Writer) *Wizard {
	return &Wizard{app: app, in: bufio.NewReader(in), out: out}
}

const banner = `fastsort - organize files by year and category`

// Run loops the main menu until the user quits or input ends.
func (w *Wizard) Run() error {
	fmt.Fprintln(w.out)
	_, _ = titleColor.Fprintln(w.out, banner)

	for {
		choice, err := w.choose("What would you like to do?", []string{
			"Organize files",
			"Preview organization",
			"Directory statistics",
			"Show rules",
			"Run history",
			"Help",
			"Quit",
		})
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var actionErr error
		switch choice {
		case 0:
			actionErr = w.organize()
		case 1:
			if root, ok := w.selectDirectory(); ok {
				actionErr = w.app.Preview(root)
			}
		case 2:
			if root, ok := w.selectDirectory(); ok {
				actionErr = w.app.Stats(root)
			}
		case 3:
			actionErr = w.app.ShowRules()
		case 4:
			actionErr = w.app.ShowHistory()
		case 5:
			w.help()
		case 6:
			return nil
		}
		if actionErr != nil {
			warnColor.Fprintf(w.out, "error: %v\n", actionErr)
		}
	}
}

// organize walks the user through directory, mode and policy, with the
// extra confirmation force-newest deserves.
func (w *Wizard) organize() error {
	root, ok := w.selectDirectory()
	if !ok {
		return nil
	}

	modeIdx, err := w.choose("Select operation mode:", []string{
		"Execute - organize files now",
		"Test - simulate without moving anything",
		"Cancel",
	})
	if err != nil || modeIdx == 2 {
		return err
	}
	mode := executor.ModeExecute
	if modeIdx == 1 {
		mode = executor.ModeTest
	}

	policyIdx, err := w.choose("Duplicate handling:", []string{
		"Skip - rename collisions, keep everything",
		"Prompt - ask per duplicate group",
		"Force newest - keep most recent, delete the rest",
	})
	if err != nil {
		return err
	}
	policy := [...]dedup.Policy{dedup.PolicySkip, dedup.PolicyPrompt, dedup.PolicyForceKeepNewest}[policyIdx]

	if policy == dedup.PolicyForceKeepNewest && mode == executor.ModeExecute {
		_, _ = warnColor.Fprintln(w.out, "Force newest deletes older duplicates without asking.")
		if !w.confirm("Are you sure?", false) {
			return nil
		}
	}

	if mode == executor.ModeExecute {
		if err := w.app.Preview(root); err != nil {
			return err
		}
		if !w.confirm("Proceed with organizing?", false) {
			return nil
		}
	}

	return w.app.Organize(root, mode, policy)
}

// help prints a short orientation text.
func (w *Wizard) help() {
	fmt.Fprintln(w.out)
	_, _ = titleColor.Fprintln(w.out, "How fastsort works")
	fmt.Fprintln(w.out, `Files are sorted into Year/Category folders inside the chosen
directory, where the year comes from each file's modification time and
the category from the rule file (see "Show rules").

Test mode logs every move without touching anything. Execute mode shows
a preview first and asks before moving. Duplicate files (same content,
same destination) are renamed, prompted for, or reduced to the newest
copy depending on the selected duplicate handling.`)
}

// selectDirectory offers the usual suspects plus a custom path. The
// second return is false when the user cancels.
func (w *Wizard) selectDirectory() (string, bool) {
	options := []string{}
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		for _, name := range []string{"Downloads", "Documents"} {
			dir := filepath.Join(home, name)
			if fi, err := os.Lstat(dir); err == nil && fi.IsDir() {
				options = append(options, name+" ("+dir+")")
				paths = append(paths, dir)
			}
		}
		options = append(options, "Home ("+home+")")
		paths = append(paths, home)
	}
	if cwd, err := os.Getwd(); err == nil {
		options = append(options, "Current directory ("+cwd+")")
		paths = append(paths, cwd)
	}
	options = append(options, "Enter a path", "Cancel")

	idx, err := w.choose("Select target directory:", options)
	if err != nil {
		return "", false
	}
	switch {
	case idx < len(paths):
		return paths[idx], true
	case idx == len(options)-2:
		fmt.Fprint(w.out, "Path: ")
		line, err := w.in.ReadString('\n')
		if err != nil {
			return "", false
		}
		path := strings.TrimSpace(line)
		if fi, err := os.Lstat(path); err != nil || !fi.IsDir() {
			_, _ = warnColor.Fprintf(w.out, "%s is not a directory\n", path)
			return "", false
		}
		return path, true
	default:
		return "", false
	}
}

// choose prints numbered options and reads a selection.
func (w *Wizard) choose(title string, options []string) (int, error) {
	fmt.Fprintln(w.out)
	_, _ = titleColor.Fprintln(w.out, title)
	for i, opt := range options {
		_, _ = optionColor.Fprintf(w.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprint(w.out, "> ")
		line, err := w.in.ReadString('\n')
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		_, _ = dimColor.Fprintf(w.out, "enter a number between 1 and %d\n", len(options))
	}
}

// confirm asks a yes/no question.
func (w *Wizard) confirm(prompt string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(w.out, "%s [%s] ", prompt, hint)

	line, err := w.in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}
