package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"fastsort/internal/dedup"
)

// PromptChooser builds a dedup.Chooser that asks the user which file to
// keep in each duplicate group. Any read error aborts the whole run.
func PromptChooser(in io.Reader, out io.Writer) dedup.Chooser {
	r := bufio.NewReader(in)
	return func(g dedup.Group) (int, error) {
		fmt.Fprintln(out)
		_, _ = warnColor.Fprintf(out, "Duplicate group for %s (%d identical files):\n", g.Dest, len(g.Files))
		for i, f := range g.Files {
			fmt.Fprintf(out, "  %d) %s  %s  %s\n",
				i+1, f.Path, humanize.Bytes(uint64(f.Size)), f.ModTime.Format("2006-01-02 15:04"))
		}
		for {
			fmt.Fprint(out, "keep which? > ")
			line, err := r.ReadString('\n')
			if err != nil {
				return 0, fmt.Errorf("reading duplicate choice: %w", err)
			}
			n, convErr := strconv.Atoi(strings.TrimSpace(line))
			if convErr == nil && n >= 1 && n <= len(g.Files) {
				return n - 1, nil
			}
			_, _ = dimColor.Fprintf(out, "enter a number between 1 and %d\n", len(g.Files))
		}
	}
}
