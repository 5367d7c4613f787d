package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/neonboard/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoardDriver(t *testing.T, app *App, boardID string) (*teatest.Driver, *boardModel) {
	t.Helper()
	m := newBoardModel(context.Background(), app, boardID)
	d := teatest.New(t, m, teatest.WithSize(140, 40))
	d.DrainInit()
	return d, m
}

func TestBoardView_RendersWithFirstCardFocused(t *testing.T) {
	app := testApp(t)
	board := seedBoard(t, app)

	d, m := newBoardDriver(t, app, board.ID)

	require.True(t, m.loaded)
	d.AssertViewContains("Chores", "Todo", "Doing", "Done", "▸ Dishes", "refresh")
}

func TestBoardView_Navigation(t *testing.T) {
	app := testApp(t)
	board := seedBoard(t, app)
	d, m := newBoardDriver(t, app, board.ID)

	d.Press("j")
	assert.Equal(t, "Laundry", focusedTitle(m))
	d.AssertViewContains("▸ Laundry")

	// Past the last card the cursor stays put.
	d.Press("down")
	assert.Equal(t, 1, m.focus.Card)

	// Doing is empty.
	d.Press("l")
	assert.Equal(t, 1, m.focus.Column)
	assert.Empty(t, m.focusedCardID())

	d.Press("right", "right")
	assert.Equal(t, 2, m.focus.Column)

	d.Press("h", "h", "k")
	assert.Equal(t, "Dishes", focusedTitle(m))
}

func TestBoardView_MoveAcrossColumns(t *testing.T) {
	app := testApp(t)
	board := seedBoard(t, app)
	d, m := newBoardDriver(t, app, board.ID)

	d.Press("L")

	after := boardByName(t, app, "Chores")
	assert.Equal(t, []string{"Laundry"}, cardTitles(after, "Todo"))
	assert.Equal(t, []string{"Dishes"}, cardTitles(after, "Doing"))
	assert.Equal(t, 1, m.focus.Column, "cursor follows the moved card")
	assert.Equal(t, "Dishes", focusedTitle(m))

	d.Press("H")
	after = boardByName(t, app, "Chores")
	assert.Equal(t, []string{"Laundry", "Dishes"}, cardTitles(after, "Todo"))
	assert.Empty(t, cardTitles(after, "Doing"))

	// Nothing left of the first column.
	d.Press("h", "H")
	assert.Equal(t, 0, m.focus.Column)
	assert.Nil(t, m.err)
}

func TestBoardView_ReorderWithinColumn(t *testing.T) {
	app := testApp(t)
	board := seedBoard(t, app)
	d, m := newBoardDriver(t, app, board.ID)

	d.Press("J")

	after := boardByName(t, app, "Chores")
	assert.Equal(t, []string{"Laundry", "Dishes"}, cardTitles(after, "Todo"))
	assert.Equal(t, "Dishes", focusedTitle(m))
	d.AssertViewContains("▸ Dishes")

	// Already at the bottom.
	d.Press("J")
	assert.Equal(t, []string{"Laundry", "Dishes"}, cardTitles(boardByName(t, app, "Chores"), "Todo"))

	d.Press("K")
	assert.Equal(t, []string{"Dishes", "Laundry"}, cardTitles(boardByName(t, app, "Chores"), "Todo"))
}

func TestBoardView_RefreshPicksUpOutsideChanges(t *testing.T) {
	app := testApp(t)
	board := seedBoard(t, app)
	d, _ := newBoardDriver(t, app, board.ID)

	mustRun(t, app, "card", "add", "Chores", "Done", "Vacuum")
	d.Press("r")

	d.AssertViewContains("Vacuum")
}

func TestBoardView_LoadErrorIsShown(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	d, m := newBoardDriver(t, app, "missing-board")

	assert.False(t, m.loaded)
	d.AssertViewContains("Error:", "not found")
}

func TestBoardView_Quit(t *testing.T) {
	app := testApp(t)
	board := seedBoard(t, app)
	d, _ := newBoardDriver(t, app, board.ID)

	d.Press("q")
	assert.True(t, d.Quitting)
}

func focusedTitle(m *boardModel) string {
	id := m.focusedCardID()
	card, _, _ := findCard(m.details, id)
	return card.Title
}
