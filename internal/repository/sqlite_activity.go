package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/neonboard/internal/db"
)

// SQLiteActivityRepo implements ActivityRepo.
type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

// Append records e. A zero RecordedAt is stamped with the current time.
func (r *SQLiteActivityRepo) Append(ctx context.Context, e ActivityEntry) error {
	recordedAt := nowUTC()
	if !e.RecordedAt.IsZero() {
		recordedAt = formatTime(e.RecordedAt)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO board_activity (board_id, event_type, payload, occurred_at, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		e.BoardID, e.EventType, e.Payload, formatTime(e.OccurredAt), recordedAt)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

// ListByBoard returns the newest limit entries for a board, newest first.
// A non-positive limit returns everything.
func (r *SQLiteActivityRepo) ListByBoard(ctx context.Context, boardID string, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, board_id, event_type, payload, occurred_at, recorded_at
		FROM board_activity WHERE board_id = ? ORDER BY id DESC LIMIT ?`, boardID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	var out []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		var occurredAtStr, recordedAtStr string
		if err := rows.Scan(&e.ID, &e.BoardID, &e.EventType, &e.Payload, &occurredAtStr, &recordedAtStr); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		if e.OccurredAt, err = parseTime("occurred_at", occurredAtStr); err != nil {
			return nil, err
		}
		if e.RecordedAt, err = parseTime("recorded_at", recordedAtStr); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity: %w", err)
	}
	return out, nil
}
