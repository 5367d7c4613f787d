package service

import (
	"context"
	"time"

	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/events"
	"github.com/alexanderramin/neonboard/internal/repository"
)

// NewCacheInvalidator drops cached read models of boards that changed.
// Deleting a project cascades to boards whose ids the event does not carry,
// so it flushes the whole cache.
func NewCacheInvalidator(cache *BoardCache) events.Handler {
	return events.HandlerFunc(func(_ context.Context, e domain.Event) error {
		switch {
		case e.EventType() == domain.TypeProjectDeleted:
			cache.Flush()
		case events.IsBoardEvent(e.EventType()):
			cache.Invalidate(e.AggregateID())
		}
		return nil
	})
}

// NewActivityRecorder appends every board event to the activity log.
// Project events are ignored.
func NewActivityRecorder(repo repository.ActivityRepo) events.Handler {
	return &activityRecorder{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

type activityRecorder struct {
	repo repository.ActivityRepo
	now  func() time.Time
}

func (r *activityRecorder) Handle(ctx context.Context, e domain.Event) error {
	if !events.IsBoardEvent(e.EventType()) {
		return nil
	}
	env, err := events.NewEnvelope(e)
	if err != nil {
		return err
	}
	return r.repo.Append(ctx, repository.ActivityEntry{
		BoardID:    env.AggregateID,
		EventType:  string(env.Type),
		Payload:    string(env.Payload),
		OccurredAt: env.OccurredAt,
		RecordedAt: r.now(),
	})
}
