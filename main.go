package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/dylan/timewar/config"
	"github.com/dylan/timewar/event"
	"github.com/dylan/timewar/export"
	"github.com/dylan/timewar/style"
	"github.com/dylan/timewar/timeline"
	"github.com/dylan/timewar/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/timewar/config.toml)")
	eventsPath := flag.String("events", "", "events file (.yaml, .toml or .ics); the sample day is shown when empty")
	dateFlag := flag.String("date", "", "day to show as YYYY-MM-DD (default: today)")
	mode := flag.String("mode", "", "output: hourly, wrapped, summary or all")
	width := flag.Int("width", 0, "cells per line in wrapped mode")
	color := flag.String("color", "auto", "color output: auto, always or never")
	interactive := flag.Bool("i", false, "open the interactive viewer")
	copySummary := flag.Bool("copy", false, "copy a markdown summary to the clipboard")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	save := flag.Bool("save", false, "write the effective settings to the config file and exit")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "timewar",
	})
	log.SetDefault(logger)

	path := *configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		// If using default path and file doesn't exist, use empty config
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = config.Config{}
		} else {
			log.Fatal("loading config", "err", err)
		}
	}

	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	level, err := log.ParseLevel(cfg.ResolvedLogLevel())
	if err != nil {
		log.Fatal("bad log level", "level", cfg.ResolvedLogLevel(), "err", err)
	}
	logger.SetLevel(level)

	if *mode != "" {
		if !config.ValidMode(*mode) {
			log.Fatal("bad mode", "mode", *mode)
		}
		cfg.Display.Mode = *mode
	}
	if *width > 0 {
		cfg.Display.WrapWidth = *width
	}
	if *eventsPath != "" {
		cfg.Events = *eventsPath
	}

	if *save {
		if err := saveConfig(path, cfg); err != nil {
			log.Fatal("saving config", "err", err)
		}
		log.Info("config saved", "path", path)
		return
	}

	day := time.Now()
	if *dateFlag != "" {
		day, err = time.ParseInLocation("2006-01-02", *dateFlag, time.Local)
		if err != nil {
			log.Fatal("bad date", "date", *dateFlag, "err", err)
		}
	}

	events, err := loadEvents(cfg.Events, day)
	if err != nil {
		log.Fatal("loading events", "err", err)
	}
	if len(events) > 0 {
		day = events[0].Start
	}

	renderer, err := newRenderer(os.Stdout, *color)
	if err != nil {
		log.Fatal("bad color mode", "err", err)
	}
	tr := timeline.NewRenderer(style.NewLipgloss(renderer), cfg.Palette())
	tr.Glyphs = cfg.ResolvedGlyphs()
	tr.LabelWidth = cfg.ResolvedLabelWidth()

	if *copySummary {
		text, err := export.Markdown(day, timeline.HourlySummary(events))
		if err == nil {
			err = export.CopyToClipboard(text)
		}
		if err != nil {
			log.Error("copying summary", "err", err)
		} else {
			log.Info("summary copied to clipboard")
		}
	}

	if *interactive {
		lipgloss.SetDefaultRenderer(renderer)
		app := tui.NewApp(cfg, tr, renderer, tui.Source{Path: cfg.Events, Day: day, Events: events})
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			log.Fatal("running viewer", "err", err)
		}
		return
	}

	if err := writeOutput(os.Stdout, cfg, tr, renderer, events); err != nil {
		log.Fatal("writing output", "err", err)
	}
}

// loadEvents reads the events file, or returns the sample day when path is
// empty. Invalid events are dropped with a warning.
func loadEvents(path string, day time.Time) ([]event.Event, error) {
	if path == "" {
		log.Debug("no events file, showing the sample day")
		return event.SampleDay(day), nil
	}

	events, err := event.Load(path, day)
	if err != nil {
		return nil, err
	}
	valid, err := event.Check(events)
	if err != nil {
		log.Warn("skipping invalid events", "count", len(events)-len(valid), "err", err)
	}
	return valid, nil
}

// saveConfig writes cfg to path. A relative events path is taken from the
// working directory.
func saveConfig(path string, cfg config.Config) error {
	if cfg.Events != "" && !filepath.IsAbs(cfg.Events) {
		abs, err := filepath.Abs(cfg.Events)
		if err != nil {
			return fmt.Errorf("resolving events path: %w", err)
		}
		cfg.Events = abs
	}
	return config.Save(path, cfg)
}

// newRenderer returns a lipgloss renderer for w with the color profile the
// -color flag asks for.
func newRenderer(w io.Writer, mode string) (*lipgloss.Renderer, error) {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "auto":
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("color %q: want auto, always or never", mode)
	}
	return r, nil
}

// writeOutput prints the views selected by the display mode, separated by
// blank lines. A day without valid events prints only the no-events line.
func writeOutput(w io.Writer, cfg config.Config, tr *timeline.Renderer, table *lipgloss.Renderer, events []event.Event) error {
	if _, _, ok := event.Span(events); !ok {
		_, err := fmt.Fprintln(w, tr.NoEvents())
		return err
	}

	mode := cfg.ResolvedMode()
	var sections []string

	if mode == config.ModeHourly || mode == config.ModeAll {
		sections = append(sections, strings.Join(tr.RenderHours(events), "\n"))
	}
	if mode == config.ModeWrapped || mode == config.ModeAll {
		lines := tr.RenderWrapped(events, cfg.ResolvedWrapWidth(), cfg.ResolvedPadLastLine())
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if mode == config.ModeSummary || mode == config.ModeAll {
		t := timeline.SummaryTable(timeline.HourlySummary(events), table, tr.Palette)
		if t == "" {
			t = tr.NoEvents()
		}
		sections = append(sections, t)
	}

	_, err := fmt.Fprintln(w, strings.Join(sections, "\n\n"))
	return err
}
