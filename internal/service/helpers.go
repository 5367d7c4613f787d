package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/repository"
)

// errUnchanged aborts a board mutation that would not change anything. The
// cycle then commits nothing and publishes nothing.
var errUnchanged = errors.New("unchanged")

// dispatchAfterCommit publishes the events of committed aggregates. A
// subscriber failure is reported to the observer and never fails the use
// case: the state change is already durable.
func dispatchAfterCommit(ctx context.Context, d EventDispatcher, observer UseCaseObserver, uc *useCase, sources ...domain.EventSource) {
	if d == nil {
		for _, src := range sources {
			if src != nil {
				src.ClearEvents()
			}
		}
		return
	}
	startedAt := time.Now().UTC()
	if err := d.Dispatch(ctx, sources...); err != nil {
		uc.span.AddEvent("dispatch_failed")
		observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      uc.name + ".dispatch",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Err:       err,
			Fields:    uc.fields,
		})
	}
}

func boardNotFound(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewError(domain.KindNotFound, "board %s not found", id)
	}
	return err
}
