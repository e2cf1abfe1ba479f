package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dylan/timewar/timeline"
	"github.com/dylan/timewar/tui/shared"
)

var groupNames = []string{"Views", "Scrolling", "Events", "General"}

// Model is the help overlay: key bindings on the left and a key to reading
// the timeline on the right.
type Model struct {
	width  int
	height int

	glyphs     timeline.Glyphs
	labelWidth int
	wrapWidth  int
	tags       []string
}

func New(glyphs timeline.Glyphs, labelWidth, wrapWidth int) Model {
	return Model{glyphs: glyphs, labelWidth: labelWidth, wrapWidth: wrapWidth}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetTags sets the tags listed under "Tags today".
func (m *Model) SetTags(tags []string) {
	m.tags = tags
}

func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.keysColumn(), "    ", m.timelineColumn())
	content := shared.HelpOverlayStyle.Render(shared.HelpTitleStyle.Render("timewar help") + "\n\n" + body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) keysColumn() string {
	var b strings.Builder
	for i, group := range shared.Keys.FullHelp() {
		if i < len(groupNames) {
			b.WriteString(shared.HelpGroupStyle.Render(groupNames[i]))
			b.WriteString("\n")
		}
		for _, k := range group {
			h := k.Help()
			b.WriteString(row(h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) timelineColumn() string {
	var b strings.Builder
	b.WriteString(shared.HelpGroupStyle.Render("Reading the timeline"))
	b.WriteString("\n")
	b.WriteString(row(m.glyphs.Fill, "tracked minute, colored by tag"))
	b.WriteString(row(m.glyphs.Empty, "untracked minute"))
	b.WriteString(row("09:00", "one row per hour, 60 cells"))
	b.WriteString(row("Label", fmt.Sprintf("labels cover up to %d minutes", m.labelWidth)))
	b.WriteString(row(fmt.Sprint(m.wrapWidth), "minutes per wrapped line"))

	b.WriteString("\n")
	b.WriteString(shared.HelpGroupStyle.Render("Tags today"))
	b.WriteString("\n")
	if len(m.tags) == 0 {
		b.WriteString(row("", "none"))
	}
	for _, tag := range m.tags {
		b.WriteString("  " + shared.RenderLegend([]string{tag}) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func row(key, desc string) string {
	k := shared.HelpKeyStyle.Render(key)
	return "  " + k + "  " + shared.HelpDescStyle.Render(desc) + "\n"
}
