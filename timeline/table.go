package timeline

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dylan/timewar/style"
)

// SummaryTable renders s as a table with one row per hour, one column per tag
// and a closing row of day totals. Zero cells are left blank.
func SummaryTable(s Summary, r *lipgloss.Renderer, p Palette) string {
	if len(s) == 0 {
		return ""
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	tags := s.Tags()
	headers := append([]string{"Hour"}, tags...)
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(s)+1)
	for _, b := range s {
		row := []string{b.Label()}
		for _, tag := range tags {
			row = append(row, minutesCell(b.Minutes[tag]))
		}
		rows = append(rows, append(row, strconv.Itoa(b.Total())))
	}

	totals := s.Totals()
	day := []string{"Day"}
	sum := 0
	for _, tag := range tags {
		day = append(day, minutesCell(totals[tag]))
		sum += totals[tag]
	}
	rows = append(rows, append(day, strconv.Itoa(sum)))

	cell := r.NewStyle().Padding(0, 1)
	border := r.NewStyle()
	if p.Empty != "" {
		border = border.Foreground(style.TerminalColor(p.Empty))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cs := cell
			if col > 0 {
				cs = cs.Align(lipgloss.Right)
			}
			switch {
			case row == table.HeaderRow:
				cs = cs.Bold(true)
				if col > 0 && col <= len(tags) && tags[col-1] != Untracked {
					cs = cs.Foreground(style.TerminalColor(p.ColorFor(tags[col-1])))
				}
			case row == len(rows)-1:
				cs = cs.Bold(true)
			}
			return cs
		})
	return t.String()
}

func minutesCell(m int) string {
	if m == 0 {
		return ""
	}
	return strconv.Itoa(m)
}
