// Package events delivers domain events to subscribers once the unit of
// work that produced them has committed.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/alexanderramin/neonboard/internal/domain"
)

// Handler receives published events. Handlers run synchronously on the
// dispatching goroutine and must tolerate redelivery.
type Handler interface {
	Handle(ctx context.Context, e domain.Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, e domain.Event) error

func (f HandlerFunc) Handle(ctx context.Context, e domain.Event) error {
	return f(ctx, e)
}

type subscription struct {
	name    string
	handler Handler
	kinds   []domain.EventType
}

func (s subscription) wants(t domain.EventType) bool {
	return len(s.kinds) == 0 || slices.Contains(s.kinds, t)
}

// Dispatcher fans events out to subscribers. It is safe for concurrent use.
type Dispatcher struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

// NewDispatcher returns a dispatcher logging subscriber failures to logger.
// A nil logger discards them.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{logger: logger.With("component", "event_dispatcher")}
}

// Subscribe registers h for the given kinds, or for every kind when none
// are given. Subscribers are invoked in registration order.
func (d *Dispatcher) Subscribe(name string, h Handler, kinds ...domain.EventType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, subscription{name: name, handler: h, kinds: slices.Clone(kinds)})
}

// Dispatch publishes the pending events of every source, FIFO per source and
// sources in argument order, then clears all of them. A source given more
// than once is read once. Subscriber errors and panics never stop delivery;
// they are logged and returned joined.
func (d *Dispatcher) Dispatch(ctx context.Context, sources ...domain.EventSource) error {
	sources = uniqueSources(sources)
	var pending []domain.Event
	for _, src := range sources {
		pending = append(pending, src.PendingEvents()...)
	}
	defer func() {
		for _, src := range sources {
			src.ClearEvents()
		}
	}()

	d.mu.RLock()
	subs := slices.Clone(d.subs)
	d.mu.RUnlock()

	var errs []error
	for _, e := range pending {
		for _, s := range subs {
			if !s.wants(e.EventType()) {
				continue
			}
			if err := d.deliver(ctx, s, e); err != nil {
				d.logger.Error("event subscriber failed",
					"subscriber", s.name,
					"event_type", string(e.EventType()),
					"aggregate_id", e.AggregateID(),
					"error", err.Error(),
				)
				errs = append(errs, fmt.Errorf("%s handling %s: %w", s.name, e.EventType(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) deliver(ctx context.Context, s subscription, e domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Debug("subscriber panic stack", "subscriber", s.name, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.handler.Handle(ctx, e)
}

// uniqueSources drops nil and repeated sources, keeping first occurrences.
// Sources are aggregate pointers, so identity comparison is safe.
func uniqueSources(sources []domain.EventSource) []domain.EventSource {
	out := make([]domain.EventSource, 0, len(sources))
	for _, src := range sources {
		if src == nil || slices.Contains(out, src) {
			continue
		}
		out = append(out, src)
	}
	return out
}
