package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/neonboard/internal/db"
)

// FailingUoW runs transactions like the SQLite unit of work but makes the
// FailOn-th write of each transaction return Err, counting from 1. Reads are
// not counted. Use it to check that a save failing halfway leaves the stored
// board untouched.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	mu       sync.Mutex
	executed []string
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Executed lists the first word pair of every write attempted so far, e.g.
// "UPDATE boards" or "INSERT INTO", the failed one included.
func (u *FailingUoW) Executed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.executed...)
}

type failingTx struct {
	db.DBTX
	uow    *FailingUoW
	writes int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	f.uow.mu.Lock()
	f.uow.executed = append(f.uow.executed, statementHead(query))
	f.uow.mu.Unlock()
	if f.writes == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func statementHead(query string) string {
	fields := strings.Fields(query)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.Join(fields, " ")
}
