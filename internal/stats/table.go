package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

const tableGap = "  "

type column struct {
	title string
	right bool
}

// textTable lays rows out under a header and a rule line. Widths are counted
// in terminal cells so accented rule names line up.
func textTable(cols []column, rows [][]string) []string {
	widths := lo.Map(cols, func(c column, _ int) int { return runewidth.StringWidth(c.title) })
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}
	header := lo.Map(cols, func(c column, _ int) string { return c.title })
	rule := lo.Map(widths, func(w int, _ int) string { return strings.Repeat("─", w) })

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, joinCells(cols, widths, header), strings.Join(rule, tableGap))
	for _, row := range rows {
		lines = append(lines, joinCells(cols, widths, row))
	}
	return lines
}

func joinCells(cols []column, widths []int, cells []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if c.right {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, tableGap), " ")
}
