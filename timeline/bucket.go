package timeline

import (
	"math"
	"time"

	"github.com/dylan/timewar/event"
)

// Untracked is the synthetic tag that fills an hour up to 60 minutes.
const Untracked = "untracked"

// Overlap is the part of an event that falls inside one hour.
type Overlap struct {
	Tag     string
	Label   string
	Start   time.Time
	End     time.Time
	Minutes int
}

// EventsInHour returns the events overlapping the hour containing hour, in
// input order, clipped to that hour. A non-empty overlap shorter than a
// minute still counts as one minute. Malformed events are skipped.
func EventsInHour(events []event.Event, hour time.Time) []Overlap {
	hourStart := floorHour(hour)
	hourEnd := hourStart.Add(time.Hour)

	out := []Overlap{}
	for _, e := range events {
		if !e.Valid() {
			continue
		}
		if !e.Start.Before(hourEnd) || !e.End.After(hourStart) {
			continue
		}
		start, end := clip(e, hourStart, hourEnd)
		out = append(out, Overlap{
			Tag:     e.Tag,
			Label:   e.Label,
			Start:   start,
			End:     end,
			Minutes: max(1, roundMinutes(end.Sub(start))),
		})
	}
	return out
}

// HourBucket holds the minutes per tag inside one hour.
type HourBucket struct {
	Hour    time.Time
	Minutes map[string]int
	order   []string
}

func newBucket(hour time.Time) HourBucket {
	return HourBucket{Hour: hour, Minutes: map[string]int{}}
}

func (b *HourBucket) add(tag string, minutes int) {
	if _, ok := b.Minutes[tag]; !ok {
		b.order = append(b.order, tag)
	}
	b.Minutes[tag] += minutes
}

// Label is the bucket's hour formatted as "15:04".
func (b HourBucket) Label() string {
	return b.Hour.Format("15:04")
}

// Tags lists the bucket's tags in the order they were first tallied;
// Untracked, when present, is last.
func (b HourBucket) Tags() []string {
	return append([]string(nil), b.order...)
}

func (b HourBucket) Total() int {
	total := 0
	for _, m := range b.Minutes {
		total += m
	}
	return total
}

// Summary is the chronological list of hour buckets for a day.
type Summary []HourBucket

// Bucket finds the bucket with the given "15:04" label.
func (s Summary) Bucket(label string) (HourBucket, bool) {
	for _, b := range s {
		if b.Label() == label {
			return b, true
		}
	}
	return HourBucket{}, false
}

// Totals sums minutes per tag across all buckets, Untracked included.
func (s Summary) Totals() map[string]int {
	totals := map[string]int{}
	for _, b := range s {
		for tag, m := range b.Minutes {
			totals[tag] += m
		}
	}
	return totals
}

// Tags lists every tag in the summary in first-seen order, Untracked last.
func (s Summary) Tags() []string {
	seen := map[string]bool{}
	var tags []string
	untracked := false
	for _, b := range s {
		for _, tag := range b.order {
			if tag == Untracked {
				untracked = true
				continue
			}
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	if untracked {
		tags = append(tags, Untracked)
	}
	return tags
}

// HourlySummary buckets events into every hour from the hour of the earliest
// start through the hour of the latest end. Overlaps are rounded to the
// nearest minute and may contribute zero. Each bucket is topped up to 60
// minutes with Untracked. Tags are keyed case-insensitively.
func HourlySummary(events []event.Event) Summary {
	first, last, ok := event.Span(events)
	if !ok {
		return Summary{}
	}
	rangeStart := floorHour(first)
	rangeEnd := floorHour(last)

	var summary Summary
	for h := rangeStart; !h.After(rangeEnd); h = h.Add(time.Hour) {
		summary = append(summary, newBucket(h))
	}

	for _, e := range events {
		if !e.Valid() {
			continue
		}
		for h := floorHour(e.Start); h.Before(e.End); h = h.Add(time.Hour) {
			start, end := clip(e, h, h.Add(time.Hour))
			minutes := roundMinutes(end.Sub(start))
			if minutes <= 0 {
				continue
			}
			idx := int(h.Sub(rangeStart) / time.Hour)
			summary[idx].add(e.Key(), minutes)
		}
	}

	for i := range summary {
		if rest := 60 - summary[i].Total(); rest > 0 {
			summary[i].add(Untracked, rest)
		}
	}
	return summary
}

func clip(e event.Event, from, to time.Time) (time.Time, time.Time) {
	start, end := e.Start, e.End
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	return start, end
}

// roundMinutes rounds half to even.
func roundMinutes(d time.Duration) int {
	return int(math.RoundToEven(d.Minutes()))
}

// floorHour drops minutes and below on t's local clock.
func floorHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func floorMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
