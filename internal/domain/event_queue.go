package domain

import "slices"

// EventSource is an aggregate holding events that have not been published
// yet. The dispatcher drains it after the owning transaction commits.
type EventSource interface {
	PendingEvents() []Event
	ClearEvents()
}

// eventQueue is the append-only outbox embedded in every aggregate root.
type eventQueue struct {
	pending []Event
}

func (q *eventQueue) record(e Event) {
	q.pending = append(q.pending, e)
}

// PendingEvents returns the queued events in the order they were recorded.
func (q *eventQueue) PendingEvents() []Event {
	return slices.Clone(q.pending)
}

// ClearEvents empties the queue.
func (q *eventQueue) ClearEvents() {
	q.pending = nil
}
