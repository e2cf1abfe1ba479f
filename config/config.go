package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dylan/timewar/style"
	"github.com/dylan/timewar/timeline"
)

// Display modes.
const (
	ModeHourly  = "hourly"
	ModeWrapped = "wrapped"
	ModeSummary = "summary"
	ModeAll     = "all"
)

type Config struct {
	Theme   ThemeConfig   `toml:"theme"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
	Events  string        `toml:"events,omitempty"` // default events file
}

type ThemeConfig struct {
	LabelFG    string            `toml:"label_fg,omitempty"`
	Empty      string            `toml:"empty,omitempty"`
	HourLabel  string            `toml:"hour_label,omitempty"`
	DefaultTag string            `toml:"default_tag,omitempty"`
	NoEvents   string            `toml:"no_events,omitempty"`
	TagColors  map[string]string `toml:"tag_colors,omitempty"`

	// Viewer chrome
	Accent      string `toml:"accent,omitempty"`
	Muted       string `toml:"muted,omitempty"`
	StatusBarBG string `toml:"status_bar_bg,omitempty"`
	StatusBarFG string `toml:"status_bar_fg,omitempty"`
	Success     string `toml:"success,omitempty"`
	Error       string `toml:"error,omitempty"`
}

type DisplayConfig struct {
	Mode        string `toml:"mode,omitempty"`
	WrapWidth   int    `toml:"wrap_width,omitempty"`
	LabelWidth  int    `toml:"label_width,omitempty"`
	ASCII       bool   `toml:"ascii,omitempty"`
	PadLastLine *bool  `toml:"pad_last_line,omitempty"`
}

type LogConfig struct {
	Level string `toml:"level,omitempty"`
}

// DefaultConfigPath returns ~/.config/timewar/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timewar", "config.toml")
}

func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if mode := cfg.Display.Mode; mode != "" && !ValidMode(mode) {
		return cfg, fmt.Errorf("display mode %q: want hourly, wrapped, summary or all", mode)
	}

	// Relative events paths are resolved against the config directory.
	if cfg.Events != "" {
		cfg.Events = expandHome(cfg.Events)
		if !filepath.IsAbs(cfg.Events) {
			absConfigDir, err := filepath.Abs(filepath.Dir(path))
			if err != nil {
				return cfg, fmt.Errorf("resolving config directory: %w", err)
			}
			cfg.Events = filepath.Join(absConfigDir, cfg.Events)
		}
	}

	return cfg, nil
}

// ValidMode reports whether mode names a display mode.
func ValidMode(mode string) bool {
	switch mode {
	case ModeHourly, ModeWrapped, ModeSummary, ModeAll:
		return true
	}
	return false
}

// DefaultTheme returns the stock terminal palette.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		LabelFG:    "black",
		DefaultTag: "white",
		NoEvents:   "red",

		Accent:      "#ffc799",
		Muted:       "#505050",
		StatusBarBG: "#1a1a1a",
		StatusBarFG: "#a0a0a0",
		Success:     "#99ffe4",
		Error:       "#ff8080",
	}
}

// DefaultTagColors returns the built-in tag → color map.
func DefaultTagColors() map[string]string {
	m := map[string]string{}
	for tag, c := range timeline.DefaultTagColors() {
		m[tag] = string(c)
	}
	return m
}

// ResolvedTheme merges config theme with defaults for any unset fields.
func (c Config) ResolvedTheme() ThemeConfig {
	d := DefaultTheme()
	t := ThemeConfig{
		LabelFG:    pick(c.Theme.LabelFG, d.LabelFG),
		Empty:      pick(c.Theme.Empty, d.Empty),
		HourLabel:  pick(c.Theme.HourLabel, d.HourLabel),
		DefaultTag: pick(c.Theme.DefaultTag, d.DefaultTag),
		NoEvents:   pick(c.Theme.NoEvents, d.NoEvents),

		Accent:      pick(c.Theme.Accent, d.Accent),
		Muted:       pick(c.Theme.Muted, d.Muted),
		StatusBarBG: pick(c.Theme.StatusBarBG, d.StatusBarBG),
		StatusBarFG: pick(c.Theme.StatusBarFG, d.StatusBarFG),
		Success:     pick(c.Theme.Success, d.Success),
		Error:       pick(c.Theme.Error, d.Error),
	}

	// Merge tag colors: defaults first, then config overrides per-key
	t.TagColors = DefaultTagColors()
	for k, v := range c.Theme.TagColors {
		t.TagColors[strings.ToLower(k)] = v
	}

	return t
}

// Palette builds the timeline palette from the resolved theme.
func (c Config) Palette() timeline.Palette {
	t := c.ResolvedTheme()
	p := timeline.Palette{
		Tags:     make(map[string]style.Color, len(t.TagColors)),
		Default:  style.Color(t.DefaultTag),
		LabelFG:  style.Color(t.LabelFG),
		Empty:    style.Color(t.Empty),
		Hour:     style.Color(t.HourLabel),
		NoEvents: style.Color(t.NoEvents),
	}
	for tag, color := range t.TagColors {
		p.Tags[tag] = style.Color(color)
	}
	return p
}

// ResolvedMode returns the configured display mode or hourly as default.
func (c Config) ResolvedMode() string {
	if ValidMode(c.Display.Mode) {
		return c.Display.Mode
	}
	return ModeHourly
}

// ResolvedWrapWidth returns the configured wrap width or 60 as default.
func (c Config) ResolvedWrapWidth() int {
	if c.Display.WrapWidth > 0 {
		return c.Display.WrapWidth
	}
	return timeline.DefaultWrapWidth
}

// ResolvedLabelWidth returns the configured label width or 12 as default.
func (c Config) ResolvedLabelWidth() int {
	if c.Display.LabelWidth > 0 {
		return c.Display.LabelWidth
	}
	return timeline.DefaultLabelWidth
}

// ResolvedPadLastLine returns the configured pad_last_line or true as default.
func (c Config) ResolvedPadLastLine() bool {
	if c.Display.PadLastLine != nil {
		return *c.Display.PadLastLine
	}
	return true
}

// ResolvedGlyphs returns the glyph set for the ascii setting.
func (c Config) ResolvedGlyphs() timeline.Glyphs {
	if c.Display.ASCII {
		return timeline.ASCIIGlyphs
	}
	return timeline.BlockGlyphs
}

// ResolvedLogLevel returns the configured log level or info as default.
func (c Config) ResolvedLogLevel() string {
	return pick(c.Log.Level, "info")
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Save writes the config back to a TOML file, converting the events path to
// one relative to the config directory when possible.
func Save(path string, cfg Config) error {
	configDir := filepath.Dir(path)
	absConfigDir, err := filepath.Abs(configDir)
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}

	if cfg.Events != "" && filepath.IsAbs(cfg.Events) {
		if rel, err := filepath.Rel(absConfigDir, cfg.Events); err == nil && !strings.HasPrefix(rel, "..") {
			cfg.Events = rel
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
