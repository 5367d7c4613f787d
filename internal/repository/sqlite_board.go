package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/neonboard/internal/db"
	"github.com/alexanderramin/neonboard/internal/domain"
)

// SQLiteBoardRepo implements BoardRepo. A board and all of its columns,
// cards and labels are written together; callers should run Create, Save
// and Delete inside a unit of work.
type SQLiteBoardRepo struct {
	db   db.DBTX
	opts []domain.Option
}

// NewSQLiteBoardRepo creates a new SQLiteBoardRepo. opts are applied to
// every rehydrated board.
func NewSQLiteBoardRepo(conn db.DBTX, opts ...domain.Option) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: conn, opts: opts}
}

func (r *SQLiteBoardRepo) LoadWithDetails(ctx context.Context, id string) (*domain.Board, error) {
	var s domain.BoardSnapshot
	var createdAtStr, updatedAtStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, version, created_at, updated_at FROM boards WHERE id = ?`, id,
	).Scan(&s.ID, &s.ProjectID, &s.Name, &s.Version, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("board %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("loading board: %w", err)
	}
	if s.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}

	if s.Columns, err = r.loadColumns(ctx, id); err != nil {
		return nil, err
	}
	if s.Labels, err = r.loadLabels(ctx, id); err != nil {
		return nil, err
	}
	if s.Cards, err = r.loadCards(ctx, id); err != nil {
		return nil, err
	}
	return domain.RehydrateBoard(s, r.opts...)
}

func (r *SQLiteBoardRepo) loadColumns(ctx context.Context, boardID string) ([]domain.ColumnSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, position, created_at FROM board_columns WHERE board_id = ? ORDER BY position`, boardID)
	if err != nil {
		return nil, fmt.Errorf("loading columns: %w", err)
	}
	defer rows.Close()

	var out []domain.ColumnSnapshot
	for rows.Next() {
		var c domain.ColumnSnapshot
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		if c.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	return out, nil
}

func (r *SQLiteBoardRepo) loadLabels(ctx context.Context, boardID string) ([]domain.LabelSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color FROM labels WHERE board_id = ? ORDER BY name, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("loading labels: %w", err)
	}
	defer rows.Close()

	var out []domain.LabelSnapshot
	for rows.Next() {
		var l domain.LabelSnapshot
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("scanning label row: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating labels: %w", err)
	}
	return out, nil
}

func (r *SQLiteBoardRepo) loadCards(ctx context.Context, boardID string) ([]domain.CardSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.column_id, c.title, c.description, c.position, c.label_ids, c.created_at, c.updated_at
		FROM cards c
		JOIN board_columns col ON col.id = c.column_id
		WHERE c.board_id = ?
		ORDER BY col.position, c.position`, boardID)
	if err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}
	defer rows.Close()

	var out []domain.CardSnapshot
	for rows.Next() {
		var c domain.CardSnapshot
		var labelIDs, createdAtStr, updatedAtStr string
		if err := rows.Scan(&c.ID, &c.ColumnID, &c.Title, &c.Description, &c.Position,
			&labelIDs, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		if c.LabelIDs, err = decodeIDs(labelIDs); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		if c.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return out, nil
}

// Create inserts a new board at version 1.
func (r *SQLiteBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	s := b.Snapshot()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (id, project_id, name, version, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?)`,
		s.ID, s.ProjectID, s.Name, formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}
	if err := r.writeChildren(ctx, s); err != nil {
		return err
	}
	b.MarkSaved(1)
	return nil
}

// Save replaces the stored board with b when the stored version still
// equals b.Version(), then bumps the version.
func (r *SQLiteBoardRepo) Save(ctx context.Context, b *domain.Board) error {
	s := b.Snapshot()
	res, err := r.db.ExecContext(ctx,
		`UPDATE boards SET name = ?, updated_at = ?, version = version + 1 WHERE id = ? AND version = ?`,
		s.Name, formatTime(s.UpdatedAt), s.ID, s.Version)
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	if err := r.checkVersioned(ctx, res, s.ID); err != nil {
		return err
	}

	if err := r.deleteChildren(ctx, s.ID); err != nil {
		return err
	}
	if err := r.writeChildren(ctx, s); err != nil {
		return err
	}
	b.MarkSaved(s.Version + 1)
	return nil
}

// Delete removes the board and, through cascades, its columns, cards and
// labels. The stored version must match.
func (r *SQLiteBoardRepo) Delete(ctx context.Context, b *domain.Board) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ? AND version = ?`, b.ID(), b.Version())
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return r.checkVersioned(ctx, res, b.ID())
}

func (r *SQLiteBoardRepo) ListByProject(ctx context.Context, projectID string) ([]BoardSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.project_id, b.name, b.version, b.created_at, b.updated_at,
			(SELECT COUNT(*) FROM board_columns col WHERE col.board_id = b.id),
			(SELECT COUNT(*) FROM cards c WHERE c.board_id = b.id)
		FROM boards b
		WHERE b.project_id = ?
		ORDER BY b.created_at, b.id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var out []BoardSummary
	for rows.Next() {
		var s BoardSummary
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Name, &s.Version, &createdAtStr, &updatedAtStr,
			&s.ColumnCount, &s.CardCount); err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}
		if s.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		if s.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}
	return out, nil
}

// checkVersioned distinguishes a missing board from a stale version when a
// version-guarded statement touched no rows.
func (r *SQLiteBoardRepo) checkVersioned(ctx context.Context, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}
	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM boards WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking board: %w", err)
	}
	return fmt.Errorf("board %s: %w", id, ErrConflict)
}

func (r *SQLiteBoardRepo) deleteChildren(ctx context.Context, boardID string) error {
	for _, table := range []string{"cards", "board_columns", "labels"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE board_id = ?`, boardID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

func (r *SQLiteBoardRepo) writeChildren(ctx context.Context, s domain.BoardSnapshot) error {
	for _, c := range s.Columns {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO board_columns (id, board_id, name, position, created_at) VALUES (?, ?, ?, ?, ?)`,
			c.ID, s.ID, c.Name, c.Position, formatTime(c.CreatedAt))
		if err != nil {
			return fmt.Errorf("inserting column: %w", err)
		}
	}
	for _, l := range s.Labels {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO labels (id, board_id, name, color) VALUES (?, ?, ?, ?)`,
			l.ID, s.ID, l.Name, l.Color)
		if err != nil {
			return fmt.Errorf("inserting label: %w", err)
		}
	}
	for _, c := range s.Cards {
		labelIDs, err := encodeIDs(c.LabelIDs)
		if err != nil {
			return fmt.Errorf("encoding label ids: %w", err)
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO cards (id, board_id, column_id, title, description, position, label_ids, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, s.ID, c.ColumnID, c.Title, c.Description, c.Position, labelIDs,
			formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
		if err != nil {
			return fmt.Errorf("inserting card: %w", err)
		}
	}
	return nil
}
