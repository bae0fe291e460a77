// Package format renders terminal tables for bard's human-facing output.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders rows under headers as a light-bordered terminal table.
// Cell content wider than maxWidth wraps; 0 means unlimited.
func Table(header []string, rows [][]string, maxWidth int) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)

	h := make(table.Row, len(header))
	for i, c := range header {
		h[i] = c
	}
	w.AppendHeader(h)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = c
		}
		w.AppendRow(row)
	}

	if maxWidth > 0 {
		cfgs := make([]table.ColumnConfig, len(header))
		for i := range header {
			cfgs[i] = table.ColumnConfig{
				Number:   i + 1,
				Align:    text.AlignLeft,
				WidthMax: maxWidth,
			}
		}
		w.SetColumnConfigs(cfgs)
	}

	return w.Render()
}
