package domain

import (
	"time"

	"github.com/google/uuid"
)

// Option customizes how an aggregate stamps time and allocates ids.
type Option func(*options)

type options struct {
	clock func() time.Time
	newID func() string
}

// WithClock overrides the time source used for timestamps and events.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithIDGenerator overrides the id allocator for the aggregate and its
// children.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		clock: func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
