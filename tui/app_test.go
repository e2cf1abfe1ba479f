package tui

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/dylan/timewar/config"
	"github.com/dylan/timewar/event"
	"github.com/dylan/timewar/style"
	"github.com/dylan/timewar/timeline"
	"github.com/dylan/timewar/tui/shared"
)

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)

func newTestApp(cfg config.Config, src Source) App {
	r := lipgloss.NewRenderer(io.Discard)
	tr := timeline.NewRenderer(style.NewLipgloss(r), cfg.Palette())
	return NewApp(cfg, tr, r, src)
}

func sized(t *testing.T, a App) App {
	t.Helper()
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(App)
}

func press(t *testing.T, a App, msg tea.KeyMsg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func view(a App) string {
	return ansi.Strip(a.View())
}

func TestApp_Views(t *testing.T) {
	a := sized(t, newTestApp(config.Config{}, Source{Day: day, Events: event.SampleDay(day)}))

	out := view(a)
	for _, want := range []string{"1 Hourly", "2 Wrapped", "3 Summary", "09:00 Standup", "17:00", "sample day", "4 events", "meeting"} {
		if !strings.Contains(out, want) {
			t.Errorf("hourly view missing %q:\n%s", want, out)
		}
	}

	a, _ = press(t, a, runes("2"))
	if a.activeView != WrappedView {
		t.Fatalf("view = %s, want Wrapped", a.activeView)
	}
	out = view(a)
	if !strings.Contains(out, "60 minutes per line") || !strings.Contains(out, "\nStandup█") {
		t.Errorf("wrapped view:\n%s", out)
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeView != SummaryView {
		t.Fatalf("tab: view = %s, want Summary", a.activeView)
	}
	out = view(a)
	for _, want := range []string{"Hour", "untracked", "Day", "540"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary view missing %q:\n%s", want, out)
		}
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeView != HourlyView {
		t.Errorf("tab should wrap around to Hourly, got %s", a.activeView)
	}
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	if a.activeView != SummaryView {
		t.Errorf("shift+tab: view = %s, want Summary", a.activeView)
	}
}

func TestApp_StartsInConfiguredMode(t *testing.T) {
	cfg := config.Config{Display: config.DisplayConfig{Mode: config.ModeSummary}}
	a := newTestApp(cfg, Source{Day: day, Events: event.SampleDay(day)})
	if a.activeView != SummaryView {
		t.Errorf("view = %s, want Summary", a.activeView)
	}
}

func TestApp_NoEvents(t *testing.T) {
	a := sized(t, newTestApp(config.Config{}, Source{Day: day}))
	for _, v := range []string{"1", "2", "3"} {
		a, _ = press(t, a, runes(v))
		if out := view(a); !strings.Contains(out, timeline.NoEventsText) {
			t.Errorf("view %s without events:\n%s", a.activeView, out)
		}
	}
}

func TestApp_Help(t *testing.T) {
	a := sized(t, newTestApp(config.Config{}, Source{Day: day, Events: event.SampleDay(day)}))

	a, _ = press(t, a, runes("?"))
	if out := view(a); !strings.Contains(out, "timewar help") {
		t.Fatalf("help not shown:\n%s", out)
	}
	a, cmd := press(t, a, runes("q"))
	if cmd != nil {
		t.Error("a key while help is open should only close help")
	}
	if out := view(a); strings.Contains(out, "timewar help") {
		t.Errorf("help still shown:\n%s", out)
	}
}

func TestApp_EscapeReturnsToHourly(t *testing.T) {
	a := sized(t, newTestApp(config.Config{}, Source{Day: day, Events: event.SampleDay(day)}))
	a, _ = press(t, a, runes("3"))
	a, _ = press(t, a, runes("r"))
	if a.feedback.Message == "" {
		t.Fatal("want a warning before esc")
	}

	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("esc should not return a command")
	}
	if a.activeView != HourlyView {
		t.Errorf("view = %s, want Hourly", a.activeView)
	}
	if a.feedback.Message != "" {
		t.Errorf("esc should dismiss feedback, got %q", a.feedback.Message)
	}
}

func TestApp_HelpListsTodaysTags(t *testing.T) {
	a := sized(t, newTestApp(config.Config{}, Source{Day: day, Events: event.SampleDay(day)}))
	a, _ = press(t, a, runes("?"))
	out := view(a)
	for _, want := range []string{"Tags today", "■ meeting", "minutes per wrapped line"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}

func TestApp_SampleDayCannotReload(t *testing.T) {
	a := sized(t, newTestApp(config.Config{}, Source{Day: day, Events: event.SampleDay(day)}))

	for _, k := range []string{"r", "e"} {
		var cmd tea.Cmd
		a, cmd = press(t, a, runes(k))
		if a.feedback.Level != shared.FeedbackWarning {
			t.Errorf("%s: feedback = %+v, want a warning", k, a.feedback)
		}
		if cmd == nil {
			t.Errorf("%s: want a clear-feedback tick", k)
		}
	}
	if out := view(a); !strings.Contains(out, "no events file to edit") {
		t.Errorf("status bar should show the warning:\n%s", out)
	}
}

func TestApp_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day.yaml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(`
date: "2024-05-01"
events:
  - {start: "09:00", end: "10:00", tag: work, label: Planning}
`)
	events, err := event.Load(path, day)
	if err != nil {
		t.Fatal(err)
	}
	a := sized(t, newTestApp(config.Config{}, Source{Path: path, Day: day, Events: events}))
	if out := view(a); !strings.Contains(out, "09:00 Planning") || !strings.Contains(out, "day.yaml") {
		t.Fatalf("initial view:\n%s", out)
	}

	write(`
date: "2024-05-01"
events:
  - {start: "09:00", end: "10:00", tag: work, label: Planning}
  - {start: "11:00", end: "11:30", tag: meeting, label: Review}
  - {start: "12:00", end: "11:00", tag: broken}
`)
	a, cmd := press(t, a, runes("r"))
	if cmd == nil {
		t.Fatal("r should return a load command")
	}
	msg := cmd()
	loaded, ok := msg.(shared.EventsLoadedMsg)
	if !ok {
		t.Fatalf("load command returned %T", msg)
	}
	if len(loaded.Events) != 2 || loaded.Invalid == nil {
		t.Errorf("loaded = %+v", loaded)
	}

	m, _ := a.Update(loaded)
	a = m.(App)
	out := view(a)
	if !strings.Contains(out, "11:00 Review") || !strings.Contains(out, "2 events") {
		t.Errorf("reloaded view:\n%s", out)
	}
	if !strings.Contains(out, "skipped 1 invalid events") {
		t.Errorf("status bar should report the skipped event:\n%s", out)
	}

	m, _ = a.Update(shared.EventsLoadedMsg{Err: errors.New("boom")})
	a = m.(App)
	if a.feedback.Level != shared.FeedbackError || len(a.events) != 2 {
		t.Errorf("failed reload should keep events and report: %+v", a.feedback)
	}
}

func TestApp_ClearFeedback(t *testing.T) {
	a := sized(t, newTestApp(config.Config{}, Source{Day: day}))
	a, _ = press(t, a, runes("r"))
	stamp := a.feedback.Timestamp

	m, _ := a.Update(shared.ClearFeedbackMsg{Timestamp: stamp.Add(-time.Second)})
	if m.(App).feedback.Message == "" {
		t.Error("a stale clear should not drop newer feedback")
	}
	m, _ = a.Update(shared.ClearFeedbackMsg{Timestamp: stamp})
	if msg := m.(App).feedback.Message; msg != "" {
		t.Errorf("feedback = %q, want cleared", msg)
	}
}

func TestApp_Program(t *testing.T) {
	a := newTestApp(config.Config{}, Source{Day: day, Events: event.SampleDay(day)})
	tm := teatest.NewTestModel(t, a, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Standup"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(runes("3"))
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("untracked"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final, ok := tm.FinalModel(t).(App)
	if !ok {
		t.Fatalf("final model is %T", tm.FinalModel(t))
	}
	if final.activeView != SummaryView {
		t.Errorf("final view = %s, want Summary", final.activeView)
	}
}
