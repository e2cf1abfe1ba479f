package timelineview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dylan/timewar/tui/shared"
)

// Model is a scrollable pane over pre-rendered timeline output.
type Model struct {
	viewport viewport.Model
	title    string
	footer   string
	content  string
	ready    bool
	width    int
	height   int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	headerHeight := 1
	footerHeight := 1
	contentHeight := h - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	offset := m.viewport.YOffset
	m.viewport = viewport.New(w, contentHeight)
	m.viewport.YPosition = headerHeight
	m.viewport.SetContent(m.content)
	m.viewport.SetYOffset(offset)
	m.ready = true
}

// SetContent replaces the pane's content. The scroll position is kept when
// keepOffset is set, e.g. after a reload of the same view.
func (m *Model) SetContent(title, content, footer string, keepOffset bool) {
	m.title = title
	m.footer = footer
	m.content = content
	m.viewport.SetContent(content)
	if !keepOffset {
		m.viewport.GotoTop()
	}
}

func (m *Model) GotoTop()    { m.viewport.GotoTop() }
func (m *Model) GotoBottom() { m.viewport.GotoBottom() }

// Content returns the pane's current content.
func (m Model) Content() string {
	return m.content
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := shared.HeaderStyle.Width(m.width).MaxWidth(m.width).Render(m.title)
	footer := m.footer
	if pct := m.viewport.ScrollPercent(); m.viewport.TotalLineCount() > m.viewport.Height {
		footer = fmt.Sprintf("%s  %3.0f%%", footer, pct*100)
	}
	footer = shared.FooterStyle.Width(m.width).MaxWidth(m.width).Render(footer)

	return fmt.Sprintf("%s\n%s\n%s", header, m.viewport.View(), footer)
}
