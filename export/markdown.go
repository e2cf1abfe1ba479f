package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/dylan/timewar/timeline"
)

// Markdown renders a day summary as a markdown document: a per-hour table of
// minutes by tag followed by the day totals.
func Markdown(day time.Time, s timeline.Summary) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("no events on %s", day.Format("2006-01-02"))
	}

	tags := s.Tags()
	totals := s.Totals()

	var b strings.Builder
	fmt.Fprintf(&b, "# Day summary (%s)\n\n", day.Format("Mon 2006-01-02"))
	fmt.Fprintf(&b, "<!-- %d hours, %s tracked -->\n\n", len(s), Minutes(tracked(totals)))

	b.WriteString(markdownTable(s, tags))
	b.WriteString("\n")

	b.WriteString("\n## Totals\n")
	for _, tag := range tags {
		fmt.Fprintf(&b, "- %s: %s\n", tag, Minutes(totals[tag]))
	}

	return b.String(), nil
}

// markdownTable renders minutes per tag per hour as a markdown table. Zero
// cells are left blank.
func markdownTable(s timeline.Summary, tags []string) string {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	rows := make([][]string, 0, len(s))
	for _, bucket := range s {
		row := []string{bucket.Label()}
		for _, tag := range tags {
			cell := ""
			if m := bucket.Minutes[tag]; m > 0 {
				cell = strconv.Itoa(m)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	cell := r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers(append([]string{"Hour"}, tags...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col > 0 && row != table.HeaderRow {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
	return t.String()
}

// Minutes formats a minute count as 1h05m, 45m or 2h.
func Minutes(m int) string {
	h, m := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}

func tracked(totals map[string]int) int {
	sum := 0
	for tag, m := range totals {
		if tag != timeline.Untracked {
			sum += m
		}
	}
	return sum
}
