package event

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by Load for file extensions it cannot read.
var ErrUnknownFormat = errors.New("unknown events file format")

// dayFile is the on-disk shape shared by the YAML and TOML loaders.
type dayFile struct {
	Date   string      `yaml:"date" toml:"date"`
	Events []fileEntry `yaml:"events" toml:"event"`
}

type fileEntry struct {
	Start string `yaml:"start" toml:"start"`
	End   string `yaml:"end" toml:"end"`
	Tag   string `yaml:"tag" toml:"tag"`
	Label string `yaml:"label,omitempty" toml:"label,omitempty"`
}

// Load reads the events of one day from path. The format is chosen by
// extension: .yaml/.yml, .toml or .ics. Clock times without a date are placed
// on the file's date, or on day when the file has none.
func Load(path string, day time.Time) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	var events []Event
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		events, err = ParseYAML(data, day)
	case ".toml":
		events, err = ParseTOML(data, day)
	case ".ics", ".ical":
		events, err = ParseICS(bytes.NewReader(data), day)
	default:
		return nil, fmt.Errorf("events file %q: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing events %s: %w", path, err)
	}

	log.Debug("loaded events", "path", path, "count", len(events))
	return events, nil
}

func ParseYAML(data []byte, day time.Time) ([]Event, error) {
	var f dayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.resolve(day)
}

func ParseTOML(data []byte, day time.Time) ([]Event, error) {
	var f dayFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.resolve(day)
}

func (f dayFile) resolve(day time.Time) ([]Event, error) {
	date := dayStart(day)
	if f.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(f.Date), date.Location())
		if err != nil {
			return nil, fmt.Errorf("date %q: %w", f.Date, err)
		}
		date = d
	}

	events := make([]Event, 0, len(f.Events))
	for i, fe := range f.Events {
		start, err := parseClock(fe.Start, date)
		if err != nil {
			return nil, fmt.Errorf("event %d start: %w", i+1, err)
		}
		end, err := parseClock(fe.End, date)
		if err != nil {
			return nil, fmt.Errorf("event %d end: %w", i+1, err)
		}
		events = append(events, Event{Start: start, End: end, Tag: fe.Tag, Label: fe.Label})
	}
	return events, nil
}

var (
	clockLayouts = []string{"15:04", "15:04:05"}
	stampLayouts = []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
	}
)

// parseClock reads "HH:MM[:SS]" on date, or a full local timestamp.
// "24:00" means midnight at the end of date.
func parseClock(s string, date time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return date.AddDate(0, 0, 1), nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
		}
	}
	for _, layout := range stampLayouts {
		if t, err := time.ParseInLocation(layout, s, date.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}

func dayStart(day time.Time) time.Time {
	if day.IsZero() {
		day = time.Now()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}
