package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// The ALTER TABLE at the end re-runs every time.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "boards", "board_columns", "cards", "labels", "board_activity"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_boards_project", "idx_labels_board", "idx_cards_board", "idx_activity_board"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func seedBoard(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO projects (id, name, created_at, updated_at) VALUES ('p1', 'P', '', '')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO boards (id, project_id, name, created_at, updated_at) VALUES ('b1', 'p1', 'B', '', '')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO board_columns (id, board_id, name, position, created_at) VALUES ('c1', 'b1', 'Todo', 0, '')`)
	require.NoError(t, err)
}

func TestSchema_EnforcesDensePositionsPerParent(t *testing.T) {
	db := openTestDB(t)
	seedBoard(t, db)

	_, err := db.Exec(`INSERT INTO board_columns (id, board_id, name, position, created_at) VALUES ('c2', 'b1', 'Dup', 0, '')`)
	require.Error(t, err, "two columns cannot share a position")

	_, err = db.Exec(`INSERT INTO cards (id, board_id, column_id, title, position, created_at, updated_at)
		VALUES ('k1', 'b1', 'c1', 'T', 0, '', ''), ('k2', 'b1', 'c1', 'U', 0, '', '')`)
	require.Error(t, err, "two cards cannot share a position in one column")
}

func TestSchema_RejectsUnknownLabelColor(t *testing.T) {
	db := openTestDB(t)
	seedBoard(t, db)

	_, err := db.Exec(`INSERT INTO labels (id, board_id, name, color) VALUES ('l1', 'b1', 'Bug', 'teal')`)
	require.Error(t, err)
}

func TestSchema_ProjectDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	seedBoard(t, db)
	_, err := db.Exec(`INSERT INTO cards (id, board_id, column_id, title, position, created_at, updated_at)
		VALUES ('k1', 'b1', 'c1', 'T', 0, '', '')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM projects WHERE id = 'p1'`)
	require.NoError(t, err)

	for _, table := range []string{"boards", "board_columns", "cards"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "table %s should be empty after cascade", table)
	}
}
