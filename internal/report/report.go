// Package report renders plans and statistics for human eyes.
//
// Renderers are pure string producers over the planner's and stats'
// value types; the CLI and the wizard print the same strings, and the
// JSON output path bypasses this package entirely.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/list"

	"fastsort/internal/planner"
)

// PlanTree renders the proposed year/category structure as a tree,
// showing up to sampleSize files per category before eliding.
func PlanTree(plan *planner.Plan, sampleSize int) string {
	type bucket struct {
		files []string
	}
	years := map[int]map[string]*bucket{}

	for _, op := range plan.Operations {
		if op.Kind != planner.OpMove {
			continue
		}
		cats, ok := years[op.Year]
		if !ok {
			cats = map[string]*bucket{}
			years[op.Year] = cats
		}
		b, ok := cats[op.Category]
		if !ok {
			b = &bucket{}
			cats[op.Category] = b
		}
		b.files = append(b.files, filepath.Base(op.Dest))
	}

	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedRounded)
	lw.AppendItem(plan.Root)
	lw.Indent()

	yearKeys := make([]int, 0, len(years))
	for y := range years {
		yearKeys = append(yearKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yearKeys)))

	for _, y := range yearKeys {
		lw.AppendItem(strconv.Itoa(y))
		lw.Indent()

		catKeys := make([]string, 0, len(years[y]))
		for c := range years[y] {
			catKeys = append(catKeys, c)
		}
		sort.Strings(catKeys)

		for _, c := range catKeys {
			files := years[y][c].files
			lw.AppendItem(fmt.Sprintf("%s (%d files)", c, len(files)))
			lw.Indent()
			sort.Strings(files)
			for i, f := range files {
				if i == sampleSize {
					lw.AppendItem(fmt.Sprintf("... and %d more", len(files)-sampleSize))
					break
				}
				lw.AppendItem(f)
			}
			lw.UnIndent()
		}
		lw.UnIndent()
	}
	lw.UnIndent()

	return lw.Render()
}

// PlanStats renders the per-category summary table of a plan.
func PlanStats(plan *planner.Plan) string {
	type agg struct {
		files int
		bytes int64
		years map[int]struct{}
	}
	cats := map[string]*agg{}
	for _, op := range plan.Operations {
		if op.Kind != planner.OpMove {
			continue
		}
		a, ok := cats[op.Category]
		if !ok {
			a = &agg{years: map[int]struct{}{}}
			cats[op.Category] = a
		}
		a.files++
		a.bytes += op.Size
		a.years[op.Year] = struct{}{}
	}

	names := make([]string, 0, len(cats))
	for name := range cats {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	var totalFiles int
	var totalBytes int64
	for _, name := range names {
		a := cats[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(a.files),
			strconv.Itoa(len(a.years)),
			humanize.Bytes(uint64(a.bytes)),
		})
		totalFiles += a.files
		totalBytes += a.bytes
	}
	rows = append(rows, []string{"TOTAL", strconv.Itoa(totalFiles), "", humanize.Bytes(uint64(totalBytes))})

	return renderTable(
		[]string{"Category", "Files", "Years", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}

// Summary renders the one-line counts of a plan.
func Summary(plan *planner.Plan) string {
	s := fmt.Sprintf("%d to move (%s), %d skipped, %d duplicates to delete",
		plan.Moves(), humanize.Bytes(uint64(plan.MovedBytes())), plan.Skips(), plan.Deletes())
	if len(plan.Failures) > 0 {
		s += fmt.Sprintf(", %d failed", len(plan.Failures))
	}
	return s
}

// Failures renders the planner's failure list, one line per file.
func Failures(plan *planner.Plan) []string {
	out := make([]string, 0, len(plan.Failures))
	for _, f := range plan.Failures {
		out = append(out, fmt.Sprintf("%s: %s", f.Path, f.Reason))
	}
	return out
}
