package event

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/charmbracelet/log"
	"github.com/teambition/rrule-go"
)

// ParseICS reads the VEVENTs that overlap day, expanding RRULE recurrences
// and clipping every occurrence to the day. The first CATEGORIES value becomes
// the tag ("event" when absent) and SUMMARY becomes the label.
func ParseICS(r io.Reader, day time.Time) ([]Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, err
	}

	from := dayStart(day)
	to := from.AddDate(0, 0, 1)
	loc := from.Location()

	vevents := cal.Events()
	moved := overriddenStarts(vevents, loc)

	var events []Event
	for _, ve := range vevents {
		start, err := ve.GetStartAt()
		if err != nil {
			log.Debug("skipping vevent without start", "err", err)
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil {
			log.Debug("skipping vevent without end", "err", err)
			continue
		}

		tag := "event"
		if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil && strings.TrimSpace(p.Value) != "" {
			tag = strings.TrimSpace(strings.Split(p.Value, ",")[0])
		}
		var label string
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			label = p.Value
		}

		for _, o := range occurrences(ve, start, end, from, to, moved[uid(ve)]) {
			s, e := o.start.In(loc), o.end.In(loc)
			if !s.Before(to) || !e.After(from) {
				continue
			}
			events = append(events, Event{Start: clamp(s, from, to), End: clamp(e, from, to), Tag: tag, Label: label})
		}
	}
	return events, nil
}

type occurrence struct {
	start, end time.Time
}

// occurrences returns the instances of ve that may touch [from, to). A
// VEVENT without RRULE has one instance. Recurring instances keep the base
// duration and skip EXDATEs and starts that another VEVENT overrides.
func occurrences(ve *ical.VEvent, start, end, from, to time.Time, moved []time.Time) []occurrence {
	base := []occurrence{{start, end}}

	p := ve.GetProperty(ical.ComponentPropertyRrule)
	if p == nil || ve.GetProperty(ical.ComponentPropertyRecurrenceId) != nil {
		return base
	}
	rule, err := rrule.StrToRRule(p.Value)
	if err != nil {
		log.Warn("bad RRULE, using the first instance only", "uid", uid(ve), "rrule", p.Value, "err", err)
		return base
	}
	rule.DTStart(start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(ex.Value, ",") {
			if t, err := parseICSTime(part, start.Location()); err == nil {
				set.ExDate(t)
			}
		}
	}
	for _, t := range moved {
		set.ExDate(t)
	}

	// An instance that starts up to one duration before the day still
	// runs into it.
	dur := end.Sub(start)
	if dur < 0 {
		dur = 0
	}
	starts := set.Between(from.Add(-dur).In(start.Location()), to.In(start.Location()), true)

	out := make([]occurrence, 0, len(starts))
	for _, s := range starts {
		out = append(out, occurrence{s, s.Add(dur)})
	}
	return out
}

// overriddenStarts maps each UID to the RECURRENCE-ID instants replaced by a
// separate VEVENT.
func overriddenStarts(vevents []*ical.VEvent, loc *time.Location) map[string][]time.Time {
	moved := map[string][]time.Time{}
	for _, ve := range vevents {
		p := ve.GetProperty(ical.ComponentPropertyRecurrenceId)
		if p == nil {
			continue
		}
		if t, err := parseICSTime(p.Value, loc); err == nil {
			moved[uid(ve)] = append(moved[uid(ve)], t)
		}
	}
	return moved
}

func uid(ve *ical.VEvent) string {
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		return p.Value
	}
	return ""
}

// parseICSTime reads a DATE or DATE-TIME value. Floating times are placed in
// loc.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	}
	return time.ParseInLocation("20060102", v, loc)
}

func clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
