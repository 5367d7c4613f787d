package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/alexanderramin/neonboard/internal/service"

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver reports use cases through logger: successes at
// info, failures at error.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, event.Fields[k])
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// useCase times one service call, reports it to the observer and records it
// as a span. Callers defer finish with a pointer to their named error.
type useCase struct {
	name      string
	startedAt time.Time
	fields    map[string]any
	span      trace.Span
	observer  UseCaseObserver
}

func startUseCase(ctx context.Context, tracer trace.Tracer, observer UseCaseObserver, name string, fields map[string]any) (context.Context, *useCase) {
	if fields == nil {
		fields = map[string]any{}
	}
	attrs := make([]attribute.KeyValue, 0, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			attrs = append(attrs, attribute.String(k, s))
		}
	}
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &useCase{
		name:      name,
		startedAt: time.Now().UTC(),
		fields:    fields,
		span:      span,
		observer:  observer,
	}
}

func (u *useCase) finish(ctx context.Context, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	if err != nil {
		u.span.RecordError(err)
		u.span.SetStatus(codes.Error, err.Error())
	}
	if attempts, ok := u.fields["attempts"].(int); ok {
		u.span.SetAttributes(attribute.Int("attempts", attempts))
	}
	u.span.End()
	u.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      u.name,
		StartedAt: u.startedAt,
		Duration:  time.Since(u.startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    u.fields,
	})
}

func tracerOrDefault(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(tracerName)
}
