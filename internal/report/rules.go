package report

import (
	"strings"

	"fastsort/internal/rules"
)

// RulesTable renders the parsed rule set: one row per category plus the
// ignore and archive directives.
func RulesTable(rs *rules.RuleSet) string {
	rows := [][]string{}
	for _, cat := range rs.Categories() {
		rows = append(rows, []string{cat.Name, strings.Join(cat.Extensions, ", ")})
	}
	if exts := rs.IgnoredExtensions(); len(exts) > 0 {
		rows = append(rows, []string{"(ignored)", strings.Join(exts, ", ")})
	}
	if paths := rs.IgnorePaths(); len(paths) > 0 {
		rows = append(rows, []string{"(ignored paths)", strings.Join(paths, ", ")})
	}
	if dirs := rs.ArchiveDirs(); len(dirs) > 0 {
		rows = append(rows, []string{"(archive dirs)", strings.Join(dirs, ", ")})
	}

	return renderTable(
		[]string{"Category", "Extensions"},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	)
}
