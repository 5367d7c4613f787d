package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS boards (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		version    INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_boards_project ON boards(project_id)`,

	`CREATE TABLE IF NOT EXISTS board_columns (
		id         TEXT PRIMARY KEY,
		board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		position   INTEGER NOT NULL CHECK(position >= 0),
		created_at TEXT NOT NULL,
		UNIQUE(board_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS labels (
		id       TEXT PRIMARY KEY,
		board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		name     TEXT NOT NULL,
		color    TEXT NOT NULL
		         CHECK(color IN ('red','orange','yellow','lime','cyan','blue','purple','violet','magenta','pink'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_labels_board ON labels(board_id)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id          TEXT PRIMARY KEY,
		board_id    TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		column_id   TEXT NOT NULL REFERENCES board_columns(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL CHECK(position >= 0),
		label_ids   TEXT NOT NULL DEFAULT '[]',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(column_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cards_board ON cards(board_id)`,

	// Activity rows outlive their board, so board_id carries no foreign key.
	`CREATE TABLE IF NOT EXISTS board_activity (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		board_id    TEXT NOT NULL,
		event_type  TEXT NOT NULL,
		payload     TEXT NOT NULL,
		occurred_at TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_board ON board_activity(board_id, id)`,

	// Boards created before optimistic locking have no version column.
	`ALTER TABLE boards ADD COLUMN version INTEGER NOT NULL DEFAULT 1`,
}
