package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/neonboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_ProjectToBoards verifies that deleting a project removes
// its boards and everything they own.
func TestCascadeDelete_ProjectToBoards(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	boardRepo := NewSQLiteBoardRepo(db)

	proj := testutil.NewTestProject("CascadeProj")
	require.NoError(t, projRepo.Create(ctx, proj))

	b := testutil.NewTestBoard(proj.ID(),
		testutil.WithColumns("Todo"),
		testutil.WithCards("Todo", "one"),
		testutil.WithLabel("Bug", "red"),
	)
	require.NoError(t, boardRepo.Create(ctx, b))

	require.NoError(t, projRepo.Delete(ctx, proj.ID()))

	_, err := boardRepo.LoadWithDetails(ctx, b.ID())
	require.ErrorIs(t, err, ErrNotFound, "board should be cascade-deleted with its project")

	for _, table := range []string{"board_columns", "cards", "labels"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "%s should be empty", table)
	}
}

// TestCascadeDelete_BoardRequiresProject verifies the foreign key from
// boards to projects.
func TestCascadeDelete_BoardRequiresProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	b := testutil.NewTestBoard("no-such-project")
	assert.Error(t, NewSQLiteBoardRepo(db).Create(context.Background(), b))
}
