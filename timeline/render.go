package timeline

import (
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/dylan/timewar/event"
	"github.com/dylan/timewar/style"
)

const (
	DefaultWrapWidth  = 60
	DefaultLabelWidth = 12
	NoEventsText      = "No events to display"
)

// Renderer draws events as one glyph per minute.
type Renderer struct {
	Styler  style.Styler
	Palette Palette
	Glyphs  Glyphs
	// LabelWidth caps how many minutes an event's label may cover at its
	// start. Values below 1 mean a single label cell.
	LabelWidth int
}

func NewRenderer(s style.Styler, p Palette) *Renderer {
	return &Renderer{
		Styler:     s,
		Palette:    p,
		Glyphs:     BlockGlyphs,
		LabelWidth: DefaultLabelWidth,
	}
}

// NoEvents is the line shown instead of a timeline when nothing is tracked.
func (r *Renderer) NoEvents() string {
	return r.Styler.Paint(NoEventsText, style.Style{FG: r.Palette.NoEvents})
}

// RenderHours returns one line per hour from the hour of the earliest start
// through the hour of the latest end: a bold "15:04" label, a space, then 60
// glyphs. Labels never carry over into the next hour's line.
func (r *Renderer) RenderHours(events []event.Event) []string {
	first, last, ok := event.Span(events)
	if !ok {
		return []string{r.NoEvents()}
	}
	valid, _ := event.Check(events)

	var lines []string
	for h := floorHour(first); !h.After(floorHour(last)); h = h.Add(time.Hour) {
		label := r.Styler.Paint(h.Format("15:04"), style.Style{FG: r.Palette.Hour, Bold: true})
		strip := style.Paint(r.Styler, r.spans(valid, h, h.Add(time.Hour))...)
		lines = append(lines, label+" "+strip)
	}
	return lines
}

// RenderStream returns the glyphs from the hour of the earliest start up to
// the minute of the latest end as a single unbroken string.
func (r *Renderer) RenderStream(events []event.Event) string {
	first, last, ok := event.Span(events)
	if !ok {
		return r.NoEvents()
	}
	return r.RenderWindow(events, floorHour(first), ceilMinute(last))
}

// RenderWindow renders the minutes in [from, to). A window in which no event
// is active renders as the no-events line.
func (r *Renderer) RenderWindow(events []event.Event, from, to time.Time) string {
	valid, _ := event.Check(events)
	from, to = floorMinute(from), ceilMinute(to)
	if !anyActive(valid, from, to) {
		return r.NoEvents()
	}
	return style.Paint(r.Styler, r.spans(valid, from, to)...)
}

// RenderWrapped renders the stream and re-flows it into lines of width cells.
func (r *Renderer) RenderWrapped(events []event.Event, width int, pad bool) []string {
	if _, _, ok := event.Span(events); !ok {
		return []string{r.NoEvents()}
	}
	return Wrap(r.RenderStream(events), width, pad)
}

func (r *Renderer) spans(events []event.Event, from, to time.Time) []style.Span {
	spans := make([]style.Span, 0, int(to.Sub(from)/time.Minute))
	for t := from; t.Before(to); {
		i := activeAt(events, t)
		if i < 0 {
			spans = append(spans, style.Span{
				Text:  r.Glyphs.Empty,
				Style: style.Style{FG: r.Palette.Empty, Faint: true},
			})
			t = t.Add(time.Minute)
			continue
		}

		e := events[i]
		color := r.Palette.ColorFor(e.Tag)
		if startsAt(e, t) {
			run := r.labelRun(events, i, t, to)
			label := style.Span{
				Text:  style.FixedWidth(e.Name(), run),
				Style: style.Style{FG: r.Palette.LabelFG, BG: color},
			}
			spans = append(spans, style.Fit(label, run)...)
			t = t.Add(time.Duration(run) * time.Minute)
			continue
		}

		spans = append(spans, style.Span{Text: r.Glyphs.Fill, Style: style.Style{FG: color}})
		t = t.Add(time.Minute)
	}
	return spans
}

// labelRun is how many cells the label of events[i] starting at from may use:
// bounded by the label's width, LabelWidth, the end of the window, and the
// minutes in which events[i] stays the active event.
func (r *Renderer) labelRun(events []event.Event, i int, from, to time.Time) int {
	limit := min(runewidth.StringWidth(events[i].Name()), r.LabelWidth)
	run := 1
	for run < limit {
		next := from.Add(time.Duration(run) * time.Minute)
		if !next.Before(to) || activeAt(events, next) != i {
			break
		}
		run++
	}
	return run
}

// activeAt returns the index of the first event whose [Start, End) contains t, or -1.
func activeAt(events []event.Event, t time.Time) int {
	for i, e := range events {
		if !t.Before(e.Start) && t.Before(e.End) {
			return i
		}
	}
	return -1
}

// startsAt reports whether e starts within the minute ending at t.
func startsAt(e event.Event, t time.Time) bool {
	return !e.Start.After(t) && t.Sub(e.Start) < time.Minute
}

func anyActive(events []event.Event, from, to time.Time) bool {
	for _, e := range events {
		if e.Start.Before(to) && e.End.After(from) {
			return true
		}
	}
	return false
}

func ceilMinute(t time.Time) time.Time {
	f := floorMinute(t)
	if f.Equal(t) {
		return f
	}
	return f.Add(time.Minute)
}
