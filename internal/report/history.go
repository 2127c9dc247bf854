package report

import (
	"fmt"
	"strconv"

	"fastsort/internal/history"
)

// RunsTable renders the run journal listing, newest first.
func RunsTable(runs []history.Run) string {
	if len(runs) == 0 {
		return "no recorded runs"
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Mode,
			r.Root,
			strconv.Itoa(r.Moved),
			strconv.Itoa(r.Skipped),
			strconv.Itoa(r.Deleted),
			strconv.Itoa(r.Failed),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Mode", "Root", "Moved", "Skipped", "Deleted", "Failed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}

// RunDetail renders a single run with its journaled operations.
func RunDetail(run *history.Run, ops []history.OpRecord) string {
	out := fmt.Sprintf("run %s\nstarted %s  mode %s  root %s\nmoved %d, skipped %d, deleted %d, failed %d\n",
		run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Mode, run.Root,
		run.Moved, run.Skipped, run.Deleted, run.Failed)

	if len(ops) == 0 {
		return out
	}

	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		detail := op.Dest
		if op.Error != "" {
			detail = "error: " + op.Error
		} else if detail == "" {
			detail = op.Reason
		}
		rows = append(rows, []string{op.Kind, op.Source, detail})
	}
	return out + renderTable(
		[]string{"Op", "Source", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}

// shortID abbreviates a UUID for the listing; GetRun accepts prefixes.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
