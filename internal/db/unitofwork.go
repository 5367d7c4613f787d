package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UnitOfWork runs fn inside one transaction. fn builds tx-scoped
// repositories from the DBTX it receives; the transaction commits when fn
// returns nil and rolls back otherwise, panics included.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork is the database/sql UnitOfWork. Each transaction is
// traced as a "db.tx" span, a child of the calling use case's span.
type SQLiteUnitOfWork struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewSQLiteUnitOfWork uses the global tracer provider unless tp is given.
func NewSQLiteUnitOfWork(db *sql.DB, tp ...trace.TracerProvider) *SQLiteUnitOfWork {
	provider := otel.GetTracerProvider()
	if len(tp) > 0 && tp[0] != nil {
		provider = tp[0]
	}
	return &SQLiteUnitOfWork{db: db, tracer: provider.Tracer("github.com/alexanderramin/neonboard/internal/db")}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	ctx, span := u.tracer.Start(ctx, "db.tx")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			span.AddEvent("rollback")
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		span.AddEvent("rollback")
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
