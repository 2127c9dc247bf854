package report

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"fastsort/internal/stats"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// DirectoryStats renders the stats command's tables: summary, top file
// types, files by year and largest files.
func DirectoryStats(s *stats.Stats) string {
	out := renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Total files", strconv.Itoa(s.TotalFiles)},
			{"Total directories", strconv.Itoa(s.TotalDirs)},
			{"Total size", humanize.Bytes(uint64(s.TotalBytes))},
		},
		[]columnAlignment{alignLeft, alignRight},
	)

	if top := s.TopExtensions(10); len(top) > 0 {
		rows := make([][]string, 0, len(top))
		for _, ext := range top {
			rows = append(rows, []string{ext, strconv.Itoa(s.ByExtension[ext])})
		}
		out += "\n" + renderTable([]string{"Extension", "Files"}, rows, []columnAlignment{alignLeft, alignRight})
	}

	if years := s.Years(); len(years) > 0 {
		rows := make([][]string, 0, len(years))
		for _, y := range years {
			rows = append(rows, []string{strconv.Itoa(y), strconv.Itoa(s.ByYear[y])})
		}
		out += "\n" + renderTable([]string{"Year", "Files"}, rows, []columnAlignment{alignLeft, alignRight})
	}

	if len(s.Largest) > 0 {
		rows := make([][]string, 0, len(s.Largest))
		for _, f := range s.Largest {
			rows = append(rows, []string{f.Path, humanize.Bytes(uint64(f.Size))})
		}
		out += "\n" + renderTable([]string{"Largest files", "Size"}, rows, []columnAlignment{alignLeft, alignRight})
	}

	return out
}
