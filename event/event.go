package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidInterval is reported for events whose end is not after their start.
var ErrInvalidInterval = errors.New("event end is not after start")

// Event is a tagged time interval. Timestamps are naive local time.
type Event struct {
	Start time.Time
	End   time.Time
	Tag   string
	Label string
}

// Key is the case-insensitive identity of the event's tag.
func (e Event) Key() string {
	return strings.ToLower(e.Tag)
}

// Name is the text shown for the event: its label, or its tag when unlabeled.
func (e Event) Name() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Tag
}

func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Valid reports whether End is strictly after Start.
func (e Event) Valid() bool {
	return e.End.After(e.Start)
}

// Validate returns an error wrapping ErrInvalidInterval for malformed events.
func Validate(e Event) error {
	if e.Valid() {
		return nil
	}
	return fmt.Errorf("event %q %s-%s: %w", e.Tag, e.Start.Format("15:04"), e.End.Format("15:04"), ErrInvalidInterval)
}

// Check splits events into the valid ones, in input order, and a joined error
// describing every event that was dropped.
func Check(events []Event) ([]Event, error) {
	valid := make([]Event, 0, len(events))
	var errs []error
	for _, e := range events {
		if err := Validate(e); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, e)
	}
	return valid, errors.Join(errs...)
}

// Span returns the earliest start and the latest end of the valid events.
// ok is false when there are none.
func Span(events []Event) (start, end time.Time, ok bool) {
	for _, e := range events {
		if !e.Valid() {
			continue
		}
		if !ok || e.Start.Before(start) {
			start = e.Start
		}
		if !ok || e.End.After(end) {
			end = e.End
		}
		ok = true
	}
	return start, end, ok
}

// SampleDay returns a demo day on the date of day.
func SampleDay(day time.Time) []Event {
	at := func(h, m int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
	}
	return []Event{
		{Start: at(9, 0), End: at(10, 30), Tag: "meeting", Label: "Standup"},
		{Start: at(10, 30), End: at(11, 0), Tag: "break", Label: "Coffee"},
		{Start: at(11, 0), End: at(12, 30), Tag: "coding", Label: "Feature X"},
		{Start: at(14, 36), End: at(17, 12), Tag: "work", Label: "Project Y"},
	}
}
