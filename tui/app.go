package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dylan/timewar/config"
	"github.com/dylan/timewar/editor"
	"github.com/dylan/timewar/event"
	"github.com/dylan/timewar/export"
	"github.com/dylan/timewar/timeline"
	"github.com/dylan/timewar/tui/help"
	"github.com/dylan/timewar/tui/shared"
	"github.com/dylan/timewar/tui/timelineview"
)

type ActiveView int

const (
	HourlyView ActiveView = iota
	WrappedView
	SummaryView
	numViews
)

var viewNames = [numViews]string{"Hourly", "Wrapped", "Summary"}

func (v ActiveView) String() string {
	return viewNames[v]
}

// Source is where the viewer's events come from. Without a Path the events
// are fixed, and reload and edit are unavailable.
type Source struct {
	Path   string
	Day    time.Time
	Events []event.Event
}

type App struct {
	cfg        config.Config
	src        Source
	renderer   *timeline.Renderer
	table      *lipgloss.Renderer
	events     []event.Event
	activeView ActiveView
	showHelp   bool
	feedback   shared.Feedback

	pane     timelineview.Model
	helpView help.Model

	width  int
	height int
}

// NewApp builds the viewer. r draws the timelines and table draws the
// summary table; both must target the same terminal.
func NewApp(cfg config.Config, r *timeline.Renderer, table *lipgloss.Renderer, src Source) App {
	shared.InitStyles(cfg.ResolvedTheme())

	return App{
		cfg:        cfg,
		src:        src,
		renderer:   r,
		table:      table,
		events:     src.Events,
		activeView: viewForMode(cfg.ResolvedMode()),
		pane:       timelineview.New(),
		helpView:   help.New(r.Glyphs, r.LabelWidth, cfg.ResolvedWrapWidth()),
	}
}

func viewForMode(mode string) ActiveView {
	switch mode {
	case config.ModeWrapped:
		return WrappedView
	case config.ModeSummary:
		return SummaryView
	}
	return HourlyView
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.pane.SetSize(msg.Width, a.contentHeight())
		a.helpView.SetSize(msg.Width, msg.Height)
		a.refresh(true)
		return a, nil

	case shared.EventsLoadedMsg:
		if msg.Err != nil {
			cmd := a.setFeedback(shared.FeedbackError, "Reload failed: "+msg.Err.Error())
			return a, cmd
		}
		a.events = msg.Events
		a.refresh(true)
		if n := countErrors(msg.Invalid); n > 0 {
			cmd := a.setFeedback(shared.FeedbackWarning, fmt.Sprintf("Reloaded, skipped %d invalid events", n))
			return a, cmd
		}
		cmd := a.setFeedback(shared.FeedbackSuccess, fmt.Sprintf("Reloaded %d events", len(msg.Events)))
		return a, cmd

	case editor.EditorFinishedMsg:
		if msg.Err != nil {
			cmd := a.setFeedback(shared.FeedbackError, "Editor: "+msg.Err.Error())
			return a, cmd
		}
		return a, loadEventsCmd(a.src.Path, a.src.Day)

	case shared.SummaryCopiedMsg:
		if msg.Err != nil {
			cmd := a.setFeedback(shared.FeedbackError, "Error: "+msg.Err.Error())
			return a, cmd
		}
		cmd := a.setFeedback(shared.FeedbackSuccess, fmt.Sprintf("Summary copied to clipboard (%d hours)", msg.Hours))
		return a, cmd

	case shared.ClearFeedbackMsg:
		if msg.Timestamp.Equal(a.feedback.Timestamp) {
			a.feedback = shared.Feedback{}
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Mouse wheel and the like go to the pane
	var cmd tea.Cmd
	a.pane, cmd = a.pane.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help toggle is global
	if key.Matches(msg, shared.Keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}

	// If help is shown, any key closes it
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, shared.Keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, shared.Keys.Escape):
		a.feedback = shared.Feedback{}
		a = a.switchView(HourlyView)
		a.pane.GotoTop()
		return a, nil

	case key.Matches(msg, shared.Keys.NextView):
		return a.switchView((a.activeView + 1) % numViews), nil

	case key.Matches(msg, shared.Keys.PrevView):
		return a.switchView((a.activeView + numViews - 1) % numViews), nil

	case key.Matches(msg, shared.Keys.Hourly):
		return a.switchView(HourlyView), nil

	case key.Matches(msg, shared.Keys.Wrapped):
		return a.switchView(WrappedView), nil

	case key.Matches(msg, shared.Keys.Summary):
		return a.switchView(SummaryView), nil

	case key.Matches(msg, shared.Keys.Top):
		a.pane.GotoTop()
		return a, nil

	case key.Matches(msg, shared.Keys.Bottom):
		a.pane.GotoBottom()
		return a, nil

	case key.Matches(msg, shared.Keys.Reload):
		if a.src.Path == "" {
			cmd := a.setFeedback(shared.FeedbackWarning, "Showing the sample day, nothing to reload")
			return a, cmd
		}
		a.feedback = shared.Feedback{Level: shared.FeedbackInfo, Message: "Reloading...", Timestamp: time.Now()}
		return a, loadEventsCmd(a.src.Path, a.src.Day)

	case key.Matches(msg, shared.Keys.Edit):
		if a.src.Path == "" {
			cmd := a.setFeedback(shared.FeedbackWarning, "Showing the sample day, no events file to edit")
			return a, cmd
		}
		return a, editor.OpenFile(a.src.Path)

	case key.Matches(msg, shared.Keys.Copy):
		a.feedback = shared.Feedback{Level: shared.FeedbackInfo, Message: "Copying summary...", Timestamp: time.Now()}
		return a, copySummaryCmd(a.src.Day, a.events)
	}

	// Pass through to viewport for scrolling
	var cmd tea.Cmd
	a.pane, cmd = a.pane.Update(msg)
	return a, cmd
}

func (a App) switchView(v ActiveView) App {
	if v == a.activeView {
		return a
	}
	a.activeView = v
	a.refresh(false)
	return a
}

// refresh re-renders the active view into the pane.
func (a *App) refresh(keepOffset bool) {
	var title, body string
	day := a.src.Day.Format("Mon 2006-01-02")

	switch a.activeView {
	case WrappedView:
		width := a.cfg.ResolvedWrapWidth()
		lines := a.renderer.RenderWrapped(a.events, width, a.cfg.ResolvedPadLastLine())
		body = strings.Join(lines, "\n")
		title = fmt.Sprintf("%s · %d minutes per line", day, width)
	case SummaryView:
		body = timeline.SummaryTable(timeline.HourlySummary(a.events), a.table, a.renderer.Palette)
		if body == "" {
			body = a.renderer.NoEvents()
		}
		title = day + " · minutes per tag"
	default:
		body = strings.Join(a.renderer.RenderHours(a.events), "\n")
		title = day + " · one cell per minute"
	}

	tags := legendTags(a.events)
	a.helpView.SetTags(tags)
	a.pane.SetContent(title, body, shared.RenderLegend(tags), keepOffset)
}

func legendTags(events []event.Event) []string {
	var tags []string
	for _, tag := range timeline.HourlySummary(events).Tags() {
		if tag != timeline.Untracked {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (a *App) setFeedback(level shared.FeedbackLevel, msg string) tea.Cmd {
	ts := time.Now()
	a.feedback = shared.Feedback{Level: level, Message: msg, Timestamp: ts}
	return tea.Tick(shared.FeedbackTTL(level), func(time.Time) tea.Msg {
		return shared.ClearFeedbackMsg{Timestamp: ts}
	})
}

func (a App) contentHeight() int {
	h := a.height - 3 // 2 for tabs, 1 for status bar
	if h < 3 {
		h = 3
	}
	return h
}

func (a App) View() string {
	if a.showHelp {
		return a.helpView.View()
	}
	return a.renderTabs() + "\n" + a.pane.View() + a.renderStatusBar()
}

func (a App) renderTabs() string {
	tabs := make([]string, 0, numViews)
	for v := HourlyView; v < numViews; v++ {
		label := fmt.Sprintf("%d %s", v+1, v)
		if v == a.activeView {
			tabs = append(tabs, shared.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, shared.TabInactiveStyle.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	if gap := a.width - lipgloss.Width(row); gap > 0 {
		row = lipgloss.JoinHorizontal(lipgloss.Bottom, row, shared.TabGapStyle.Render(strings.Repeat(" ", gap)))
	}
	return row
}

func (a App) renderStatusBar() string {
	source := "sample day"
	if a.src.Path != "" {
		source = filepath.Base(a.src.Path)
	}

	parts := []string{"timewar", source, fmt.Sprintf("%d events", len(a.events))}
	if a.feedback.Message != "" {
		parts = append(parts, shared.FeedbackStyle(a.feedback.Level).Render(a.feedback.Message))
	}
	parts = append(parts, "? for help")

	return "\n" + shared.StatusBarStyle.Width(a.width).Render(strings.Join(parts, " │ "))
}

func countErrors(err error) int {
	if err == nil {
		return 0
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return len(joined.Unwrap())
	}
	return 1
}

// --- Commands ---

func loadEventsCmd(path string, day time.Time) tea.Cmd {
	return func() tea.Msg {
		events, err := event.Load(path, day)
		if err != nil {
			return shared.EventsLoadedMsg{Err: err}
		}
		valid, invalid := event.Check(events)
		return shared.EventsLoadedMsg{Events: valid, Invalid: invalid}
	}
}

func copySummaryCmd(day time.Time, events []event.Event) tea.Cmd {
	return func() tea.Msg {
		summary := timeline.HourlySummary(events)
		text, err := export.Markdown(day, summary)
		if err != nil {
			return shared.SummaryCopiedMsg{Err: err}
		}
		if err := export.CopyToClipboard(text); err != nil {
			return shared.SummaryCopiedMsg{Err: err}
		}
		return shared.SummaryCopiedMsg{Hours: len(summary)}
	}
}
