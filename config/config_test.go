package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dylan/timewar/style"
	"github.com/dylan/timewar/timeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
events = "today.yaml"

[theme]
label_fg = "white"
empty = "8"

[theme.tag_colors]
Deep = "#ff00ff"
work = "cyan"

[display]
mode = "wrapped"
wrap_width = 40
ascii = true
pad_last_line = false

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := cfg.Events, filepath.Join(filepath.Dir(path), "today.yaml"); got != want {
		t.Errorf("Events = %q, want %q", got, want)
	}
	if cfg.ResolvedMode() != ModeWrapped {
		t.Errorf("mode = %q", cfg.ResolvedMode())
	}
	if cfg.ResolvedWrapWidth() != 40 {
		t.Errorf("wrap width = %d", cfg.ResolvedWrapWidth())
	}
	if cfg.ResolvedLabelWidth() != timeline.DefaultLabelWidth {
		t.Errorf("label width = %d, want default", cfg.ResolvedLabelWidth())
	}
	if cfg.ResolvedPadLastLine() {
		t.Error("pad_last_line = false was ignored")
	}
	if cfg.ResolvedGlyphs() != timeline.ASCIIGlyphs {
		t.Errorf("glyphs = %+v, want ascii", cfg.ResolvedGlyphs())
	}
	if cfg.ResolvedLogLevel() != "debug" {
		t.Errorf("log level = %q", cfg.ResolvedLogLevel())
	}

	p := cfg.Palette()
	tests := []struct {
		tag  string
		want style.Color
	}{
		{"deep", "#ff00ff"},
		{"DEEP", "#ff00ff"},
		{"work", "cyan"},
		{"meeting", "green"},
		{"unknown", "white"},
	}
	for _, tt := range tests {
		if got := p.ColorFor(tt.tag); got != tt.want {
			t.Errorf("ColorFor(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
	if p.LabelFG != "white" || p.Empty != "8" || p.NoEvents != "red" {
		t.Errorf("palette = %+v", p)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}

	if _, err := Load(writeConfig(t, "[display\nmode =")); err == nil {
		t.Error("malformed TOML: want an error")
	}
	if _, err := Load(writeConfig(t, "[display]\nmode = \"sideways\"\n")); err == nil {
		t.Error("unknown mode: want an error")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.ResolvedMode() != ModeHourly {
		t.Errorf("mode = %q", cfg.ResolvedMode())
	}
	if cfg.ResolvedWrapWidth() != 60 || cfg.ResolvedLabelWidth() != 12 {
		t.Errorf("widths = %d, %d", cfg.ResolvedWrapWidth(), cfg.ResolvedLabelWidth())
	}
	if !cfg.ResolvedPadLastLine() {
		t.Error("pad_last_line should default to true")
	}
	if cfg.ResolvedGlyphs() != timeline.BlockGlyphs {
		t.Errorf("glyphs = %+v", cfg.ResolvedGlyphs())
	}

	got, want := cfg.Palette(), timeline.DefaultPalette()
	for _, tag := range []string{"work", "meeting", "coding", "break", "other"} {
		if got.ColorFor(tag) != want.ColorFor(tag) {
			t.Errorf("ColorFor(%q) = %q, want %q", tag, got.ColorFor(tag), want.ColorFor(tag))
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	pad := false
	cfg := Config{
		Events:  filepath.Join(dir, "nested", "day.toml"),
		Theme:   ThemeConfig{TagColors: map[string]string{"deep": "5"}},
		Display: DisplayConfig{Mode: ModeSummary, PadLastLine: &pad},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := `events = "day.toml"`; !strings.Contains(string(data), want) {
		t.Errorf("saved config should store a relative events path:\n%s", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Events != cfg.Events {
		t.Errorf("Events = %q, want %q", got.Events, cfg.Events)
	}
	if got.ResolvedMode() != ModeSummary || got.ResolvedPadLastLine() {
		t.Errorf("display = %+v", got.Display)
	}
	if got.Palette().ColorFor("deep") != "5" {
		t.Errorf("tag color lost: %+v", got.Theme.TagColors)
	}
}
