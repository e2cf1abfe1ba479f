package shared

import "github.com/dylan/timewar/event"

// EventsLoadedMsg carries a fresh read of the events file. Invalid holds
// the joined validation errors of events that were dropped.
type EventsLoadedMsg struct {
	Events  []event.Event
	Invalid error
	Err     error
}

type SummaryCopiedMsg struct {
	Hours int
	Err   error
}
