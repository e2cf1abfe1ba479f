package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/dylan/timewar/config"
	"github.com/dylan/timewar/event"
	"github.com/dylan/timewar/style"
	"github.com/dylan/timewar/timeline"
)

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)

func output(t *testing.T, cfg config.Config, events []event.Event) string {
	t.Helper()
	r, err := newRenderer(io.Discard, "never")
	if err != nil {
		t.Fatal(err)
	}
	tr := timeline.NewRenderer(style.NewLipgloss(r), cfg.Palette())
	tr.Glyphs = cfg.ResolvedGlyphs()

	var buf bytes.Buffer
	if err := writeOutput(&buf, cfg, tr, r, events); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestWriteOutput_Modes(t *testing.T) {
	events := event.SampleDay(day)

	tests := []struct {
		mode    string
		want    []string
		notWant []string
	}{
		{config.ModeHourly, []string{"09:00 Standup", "13:00 " + strings.Repeat("░", 60)}, []string{"Total"}},
		{config.ModeWrapped, []string{"Standup█"}, []string{"09:00", "Total"}},
		{config.ModeSummary, []string{"Hour", "Total", "540"}, []string{"█"}},
		{config.ModeAll, []string{"09:00 Standup", "\n\nStandup█", "540"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			out := output(t, config.Config{Display: config.DisplayConfig{Mode: tt.mode}}, events)
			if ansi.Strip(out) != out {
				t.Errorf("color never should print no escape codes: %q", out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("output should not contain %q:\n%s", nw, out)
				}
			}
		})
	}
}

func TestWriteOutput_WrapWidthAndASCII(t *testing.T) {
	cfg := config.Config{Display: config.DisplayConfig{Mode: config.ModeWrapped, WrapWidth: 100, ASCII: true}}
	lines := strings.Split(strings.TrimRight(output(t, cfg, event.SampleDay(day)), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 100 {
			t.Errorf("line %d is %d cells, want 100", i, w)
		}
	}
	if !strings.HasPrefix(lines[0], "Standup###") {
		t.Errorf("ascii glyphs not used: %q", lines[0])
	}
}

func TestWriteOutput_NoEvents(t *testing.T) {
	cfg := config.Config{Display: config.DisplayConfig{Mode: config.ModeAll}}
	if got := output(t, cfg, nil); got != timeline.NoEventsText+"\n" {
		t.Errorf("output = %q, want a single no-events line", got)
	}
}

func TestLoadEvents(t *testing.T) {
	events, err := loadEvents("", day)
	if err != nil || len(events) != 4 {
		t.Fatalf("sample day = %d events, %v", len(events), err)
	}

	path := filepath.Join(t.TempDir(), "day.toml")
	body := `
date = "2024-05-01"

[[event]]
start = "09:00"
end = "09:30"
tag = "work"

[[event]]
start = "10:00"
end = "09:00"
tag = "broken"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	events, err = loadEvents(path, day)
	if err != nil {
		t.Fatalf("loadEvents: %v", err)
	}
	if len(events) != 1 || events[0].Tag != "work" {
		t.Errorf("events = %+v, want only the valid one", events)
	}

	if _, err := loadEvents(filepath.Join(t.TempDir(), "none.yaml"), day); err == nil {
		t.Error("missing events file: want an error")
	}
}

func TestNewRenderer(t *testing.T) {
	for _, mode := range []string{"auto", "always", "never"} {
		if _, err := newRenderer(io.Discard, mode); err != nil {
			t.Errorf("newRenderer(%q): %v", mode, err)
		}
	}
	if _, err := newRenderer(io.Discard, "sometimes"); err == nil {
		t.Error("unknown color mode: want an error")
	}
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	t.Chdir(dir)

	cfg := config.Config{
		Events:  "today.yaml",
		Display: config.DisplayConfig{Mode: config.ModeWrapped, WrapWidth: 45},
	}
	if err := saveConfig(path, cfg); err != nil {
		t.Fatalf("saveConfig: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ResolvedMode() != config.ModeWrapped || got.ResolvedWrapWidth() != 45 {
		t.Errorf("display = %+v", got.Display)
	}
	if want := filepath.Join(dir, "today.yaml"); got.Events != want {
		t.Errorf("Events = %q, want %q", got.Events, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `events = "today.yaml"`) {
		t.Errorf("events path should be stored relative to the config:\n%s", data)
	}
}
