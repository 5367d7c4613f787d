package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_UnversionedBoards simulates a database created
// before boards carried a version column. Existing rows must survive and
// start at version 1.
func TestMigrate_UpgradePath_UnversionedBoards(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacyStatements := []string{
		`CREATE TABLE projects (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE boards (
			id         TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`INSERT INTO projects (id, name, created_at, updated_at) VALUES ('p1', 'Legacy', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
		`INSERT INTO boards (id, project_id, name, created_at, updated_at) VALUES ('b1', 'p1', 'Old board', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
	}
	for _, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var name string
	var version int
	require.NoError(t, db.QueryRow(`SELECT name, version FROM boards WHERE id = 'b1'`).Scan(&name, &version))
	assert.Equal(t, "Old board", name)
	assert.Equal(t, 1, version)

	require.NoError(t, Migrate(db), "re-running after upgrade is a no-op")
}
