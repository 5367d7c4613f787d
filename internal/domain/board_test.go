package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
}

func fixedClock() time.Time { return testNow }

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := CreateBoard("Roadmap", "project-1", WithClock(fixedClock), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	b.ClearEvents()
	return b
}

func mustAddColumn(t *testing.T, b *Board, name string) string {
	t.Helper()
	id, err := b.AddColumn(name)
	require.NoError(t, err)
	return id
}

func mustAddCard(t *testing.T, b *Board, columnID, title string) string {
	t.Helper()
	id, err := b.AddCard(columnID, title, "")
	require.NoError(t, err)
	return id
}

// cardOrder returns the card ids of a column in position order and checks
// the positions are dense.
func cardOrder(t *testing.T, b *Board, columnID string) []string {
	t.Helper()
	var ids []string
	for i, c := range b.CardsInColumn(columnID) {
		require.Equal(t, i, c.Position(), "card %s", c.ID())
		require.Equal(t, columnID, c.ColumnID())
		ids = append(ids, c.ID())
	}
	return ids
}

func columnOrder(t *testing.T, b *Board) []string {
	t.Helper()
	var ids []string
	for i, c := range b.Columns() {
		require.Equal(t, i, c.Position(), "column %s", c.ID())
		ids = append(ids, c.ID())
	}
	return ids
}

func onlyEvent(t *testing.T, b *Board) Event {
	t.Helper()
	events := b.PendingEvents()
	require.Len(t, events, 1)
	return events[0]
}

// boardWithCards builds column A holding c1..cN and an empty column B.
func boardWithCards(t *testing.T, n int) (b *Board, colA, colB string, cards []string) {
	t.Helper()
	b = newTestBoard(t)
	colA = mustAddColumn(t, b, "A")
	colB = mustAddColumn(t, b, "B")
	for i := 1; i <= n; i++ {
		cards = append(cards, mustAddCard(t, b, colA, fmt.Sprintf("c%d", i)))
	}
	b.ClearEvents()
	return b, colA, colB, cards
}

func TestCreateBoard(t *testing.T) {
	b, err := CreateBoard("Roadmap", "project-1", WithClock(fixedClock), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)

	assert.Equal(t, "id-01", b.ID())
	assert.Equal(t, "Roadmap", b.Name())
	assert.Equal(t, "project-1", b.ProjectID())
	assert.Equal(t, testNow, b.CreatedAt())
	assert.Equal(t, testNow, b.UpdatedAt())
	assert.Zero(t, b.Version())
	assert.Empty(t, b.Columns())

	ev, ok := onlyEvent(t, b).(BoardCreated)
	require.True(t, ok)
	assert.Equal(t, "id-01", ev.AggregateID())
	assert.Equal(t, testNow, ev.OccurredAt())
	assert.Equal(t, "project-1", ev.ProjectID)
	assert.Equal(t, TypeBoardCreated, ev.EventType())
}

func TestCreateBoard_DefaultsToUUID(t *testing.T) {
	b, err := CreateBoard("Roadmap", "project-1")
	require.NoError(t, err)
	assert.Len(t, b.ID(), 36)
}

func TestCreateBoard_Validation(t *testing.T) {
	cases := []struct {
		name      string
		boardName string
		projectID string
	}{
		{"empty name", "", "p"},
		{"blank name", "  \t", "p"},
		{"name too long", strings.Repeat("x", 101), "p"},
		{"empty project", "Roadmap", ""},
		{"blank project", "Roadmap", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := CreateBoard(tc.boardName, tc.projectID)
			require.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, b)
		})
	}
}

func TestCreateBoard_NameLengthCountsRunes(t *testing.T) {
	_, err := CreateBoard(strings.Repeat("é", 100), "p")
	assert.NoError(t, err)
}

func TestRename(t *testing.T) {
	tick := testNow
	b, err := CreateBoard("Roadmap", "p", WithClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}))
	require.NoError(t, err)
	b.ClearEvents()
	created := b.UpdatedAt()

	require.NoError(t, b.Rename("Q3 Roadmap"))
	assert.Equal(t, "Q3 Roadmap", b.Name())
	assert.True(t, b.UpdatedAt().After(created))

	ev, ok := onlyEvent(t, b).(BoardRenamed)
	require.True(t, ok)
	assert.Equal(t, "Q3 Roadmap", ev.Name)
}

func TestRename_InvalidLeavesBoardUnchanged(t *testing.T) {
	b := newTestBoard(t)
	require.ErrorIs(t, b.Rename(""), ErrValidation)
	assert.Equal(t, "Roadmap", b.Name())
	assert.Empty(t, b.PendingEvents())
}

func TestAddColumn_AppendsAtEnd(t *testing.T) {
	b := newTestBoard(t)
	todo := mustAddColumn(t, b, "Todo")
	doing := mustAddColumn(t, b, "Doing")
	done := mustAddColumn(t, b, "Done")

	assert.Equal(t, []string{todo, doing, done}, columnOrder(t, b))

	events := b.PendingEvents()
	require.Len(t, events, 3)
	last, ok := events[2].(ColumnAdded)
	require.True(t, ok)
	assert.Equal(t, done, last.ColumnID)
	assert.Equal(t, "Done", last.Name)
	assert.Equal(t, 2, last.Position)
}

func TestAddColumn_Validation(t *testing.T) {
	b := newTestBoard(t)
	_, err := b.AddColumn(strings.Repeat("x", 51))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "cannot exceed 50")
	assert.Empty(t, b.Columns())
	assert.Empty(t, b.PendingEvents())
}

func TestRenameColumn(t *testing.T) {
	b := newTestBoard(t)
	col := mustAddColumn(t, b, "Todo")
	b.ClearEvents()

	require.NoError(t, b.RenameColumn(col, "Backlog"))
	c, ok := b.Column(col)
	require.True(t, ok)
	assert.Equal(t, "Backlog", c.Name())

	ev, ok := onlyEvent(t, b).(ColumnRenamed)
	require.True(t, ok)
	assert.Equal(t, col, ev.ColumnID)
}

func TestRenameColumn_NotFound(t *testing.T) {
	b := newTestBoard(t)
	err := b.RenameColumn("missing", "Backlog")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, b.PendingEvents())
}

func TestReorderColumns(t *testing.T) {
	b := newTestBoard(t)
	a := mustAddColumn(t, b, "A")
	bb := mustAddColumn(t, b, "B")
	c := mustAddColumn(t, b, "C")
	b.ClearEvents()

	require.NoError(t, b.ReorderColumns([]string{c, a, bb}))
	assert.Equal(t, []string{c, a, bb}, columnOrder(t, b))

	ev, ok := onlyEvent(t, b).(ColumnsReordered)
	require.True(t, ok)
	assert.Equal(t, map[string]int{c: 0, a: 1, bb: 2}, ev.Positions)
}

func TestReorderColumns_SetMismatch(t *testing.T) {
	b := newTestBoard(t)
	a := mustAddColumn(t, b, "A")
	bb := mustAddColumn(t, b, "B")
	c := mustAddColumn(t, b, "C")
	b.ClearEvents()

	cases := map[string][]string{
		"missing one": {c, a},
		"extra id":    {c, a, bb, "other"},
		"unknown id":  {c, a, "other"},
		"duplicate":   {c, a, a},
		"empty":       nil,
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			err := b.ReorderColumns(ids)
			require.ErrorIs(t, err, ErrStructural)
			assert.Equal(t, []string{a, bb, c}, columnOrder(t, b))
			assert.Empty(t, b.PendingEvents())
		})
	}
}

func TestDeleteColumn_WithCardsRequiresTarget(t *testing.T) {
	b, colA, colB, cards := boardWithCards(t, 2)
	d1 := mustAddCard(t, b, colB, "d1")
	colC := mustAddColumn(t, b, "C")
	b.ClearEvents()

	err := b.DeleteColumn(colA, "")
	require.ErrorIs(t, err, ErrStructural)
	assert.Len(t, b.Columns(), 3)
	assert.Equal(t, cards, cardOrder(t, b, colA))
	assert.Empty(t, b.PendingEvents())

	require.NoError(t, b.DeleteColumn(colA, colB))
	assert.Equal(t, []string{colB, colC}, columnOrder(t, b))
	assert.Equal(t, []string{d1, cards[0], cards[1]}, cardOrder(t, b, colB))
	_, ok := b.Column(colA)
	assert.False(t, ok)

	ev, ok := onlyEvent(t, b).(ColumnDeleted)
	require.True(t, ok)
	assert.Equal(t, colA, ev.ColumnID)
	assert.Equal(t, colB, ev.MovedCardsTo)
	assert.Equal(t, cards, ev.MovedCardIDs)
}

func TestDeleteColumn_PreservesRelativeOrderOfMovedCards(t *testing.T) {
	b, colA, colB, cards := boardWithCards(t, 3)
	require.NoError(t, b.MoveCard(cards[0], colA, 2))
	require.Equal(t, []string{cards[1], cards[2], cards[0]}, cardOrder(t, b, colA))

	require.NoError(t, b.DeleteColumn(colA, colB))
	assert.Equal(t, []string{cards[1], cards[2], cards[0]}, cardOrder(t, b, colB))
}

func TestDeleteColumn_EmptyColumn(t *testing.T) {
	b := newTestBoard(t)
	a := mustAddColumn(t, b, "A")
	bb := mustAddColumn(t, b, "B")
	c := mustAddColumn(t, b, "C")
	b.ClearEvents()

	require.NoError(t, b.DeleteColumn(bb, ""))
	assert.Equal(t, []string{a, c}, columnOrder(t, b))

	ev, ok := onlyEvent(t, b).(ColumnDeleted)
	require.True(t, ok)
	assert.Empty(t, ev.MovedCardsTo)
	assert.Empty(t, ev.MovedCardIDs)
}

func TestDeleteColumn_InvalidTarget(t *testing.T) {
	b, colA, _, _ := boardWithCards(t, 1)

	require.ErrorIs(t, b.DeleteColumn(colA, colA), ErrStructural)
	require.ErrorIs(t, b.DeleteColumn(colA, "missing"), ErrNotFound)
	require.ErrorIs(t, b.DeleteColumn("missing", ""), ErrNotFound)
	assert.Len(t, b.Columns(), 2)
	assert.Empty(t, b.PendingEvents())
}

func TestAddCard_AppendsToColumn(t *testing.T) {
	b, colA, colB, cards := boardWithCards(t, 2)
	c3, err := b.AddCard(colA, "c3", "details")
	require.NoError(t, err)

	assert.Equal(t, append(cards, c3), cardOrder(t, b, colA))
	assert.Empty(t, cardOrder(t, b, colB))

	card, ok := b.Card(c3)
	require.True(t, ok)
	assert.Equal(t, "details", card.Description())
	assert.Empty(t, card.LabelIDs())

	ev, ok := onlyEvent(t, b).(CardCreated)
	require.True(t, ok)
	assert.Equal(t, 2, ev.Position)
	assert.Equal(t, colA, ev.ColumnID)
}

func TestAddCard_Validation(t *testing.T) {
	b, colA, _, _ := boardWithCards(t, 0)

	_, err := b.AddCard("missing", "title", "")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = b.AddCard(colA, " ", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = b.AddCard(colA, "title", strings.Repeat("d", 5001))
	require.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, b.Cards())
	assert.Empty(t, b.PendingEvents())
}

func TestUpdateCard_ReplacesContent(t *testing.T) {
	b, _, _, cards := boardWithCards(t, 1)

	require.NoError(t, b.UpdateCard(cards[0], "Renamed", "New body"))
	card, _ := b.Card(cards[0])
	want, err := NewCardContent("Renamed", "New body")
	require.NoError(t, err)
	assert.True(t, card.Content().Equal(want))

	ev, ok := onlyEvent(t, b).(CardUpdated)
	require.True(t, ok)
	assert.Equal(t, "New body", ev.Description)

	require.ErrorIs(t, b.UpdateCard(cards[0], "", "x"), ErrValidation)
	require.ErrorIs(t, b.UpdateCard("missing", "t", ""), ErrNotFound)
	card, _ = b.Card(cards[0])
	assert.Equal(t, "Renamed", card.Title())
}

// Column A holds [c1@0, c2@1, c3@2]; deleting c2 leaves [c1@0, c3@1].
func TestDeleteCard_ResequencesColumn(t *testing.T) {
	b, colA, _, cards := boardWithCards(t, 3)

	require.NoError(t, b.DeleteCard(cards[1]))
	assert.Equal(t, []string{cards[0], cards[2]}, cardOrder(t, b, colA))

	ev, ok := onlyEvent(t, b).(CardDeleted)
	require.True(t, ok)
	assert.Equal(t, cards[1], ev.CardID)
	assert.Equal(t, colA, ev.ColumnID)

	require.ErrorIs(t, b.DeleteCard(cards[1]), ErrNotFound)
}

func TestMoveCard_ToEmptyColumn(t *testing.T) {
	b, colA, colB, cards := boardWithCards(t, 3)

	require.NoError(t, b.MoveCard(cards[2], colB, 0))
	assert.Equal(t, []string{cards[2]}, cardOrder(t, b, colB))
	assert.Equal(t, []string{cards[0], cards[1]}, cardOrder(t, b, colA))

	ev, ok := onlyEvent(t, b).(CardMoved)
	require.True(t, ok)
	assert.Equal(t, colA, ev.SourceColumnID)
	assert.Equal(t, colB, ev.TargetColumnID)
	assert.Equal(t, 0, ev.Position)
}

func TestMoveCard_WithinColumn(t *testing.T) {
	cases := []struct {
		name     string
		card     int
		target   int
		want     []int
		finalPos int
	}{
		{"down to end", 0, 2, []int{1, 2, 0}, 2},
		{"down one", 0, 1, []int{1, 0, 2}, 1},
		{"up to top", 2, 0, []int{2, 0, 1}, 0},
		{"up one", 2, 1, []int{0, 2, 1}, 1},
		{"same position", 1, 1, []int{0, 1, 2}, 1},
		{"past end appends", 0, 10, []int{1, 2, 0}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, colA, _, cards := boardWithCards(t, 3)
			require.NoError(t, b.MoveCard(cards[tc.card], colA, tc.target))

			var want []string
			for _, i := range tc.want {
				want = append(want, cards[i])
			}
			assert.Equal(t, want, cardOrder(t, b, colA))

			ev, ok := onlyEvent(t, b).(CardMoved)
			require.True(t, ok)
			assert.Equal(t, tc.target, ev.RequestedPosition)
			assert.Equal(t, tc.finalPos, ev.Position)
		})
	}
}

func TestMoveCard_AcrossColumnsTakesRequestedSlot(t *testing.T) {
	cases := []struct {
		name   string
		target int
		want   func(moved, d1, d2 string) []string
		final  int
	}{
		{"top", 0, func(m, d1, d2 string) []string { return []string{m, d1, d2} }, 0},
		{"between", 1, func(m, d1, d2 string) []string { return []string{d1, m, d2} }, 1},
		{"end", 2, func(m, d1, d2 string) []string { return []string{d1, d2, m} }, 2},
		{"past end appends", 9, func(m, d1, d2 string) []string { return []string{d1, d2, m} }, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, colA, colB, cards := boardWithCards(t, 2)
			d1 := mustAddCard(t, b, colB, "d1")
			d2 := mustAddCard(t, b, colB, "d2")
			b.ClearEvents()

			require.NoError(t, b.MoveCard(cards[0], colB, tc.target))
			assert.Equal(t, tc.want(cards[0], d1, d2), cardOrder(t, b, colB))
			assert.Equal(t, []string{cards[1]}, cardOrder(t, b, colA))

			ev := onlyEvent(t, b).(CardMoved)
			assert.Equal(t, tc.target, ev.RequestedPosition)
			assert.Equal(t, tc.final, ev.Position)
		})
	}
}

func TestMoveCard_Errors(t *testing.T) {
	b, colA, colB, cards := boardWithCards(t, 2)

	require.ErrorIs(t, b.MoveCard("missing", colB, 0), ErrNotFound)
	require.ErrorIs(t, b.MoveCard(cards[0], "missing", 0), ErrNotFound)
	err := b.MoveCard(cards[0], colB, -1)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "negative")

	assert.Equal(t, cards, cardOrder(t, b, colA))
	assert.Empty(t, b.PendingEvents())
}

func TestAddLabel(t *testing.T) {
	b := newTestBoard(t)

	_, err := b.AddLabel("Bug", "teal")
	require.ErrorIs(t, err, ErrValidation)
	_, err = b.AddLabel("Bug", "Red")
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, b.Labels())
	assert.Empty(t, b.PendingEvents())

	id, err := b.AddLabel("Bug", "red")
	require.NoError(t, err)
	l, ok := b.Label(id)
	require.True(t, ok)
	assert.Equal(t, "Bug", l.Name())
	assert.Equal(t, ColorRed, l.Color())

	ev, ok := onlyEvent(t, b).(LabelCreated)
	require.True(t, ok)
	assert.Equal(t, id, ev.LabelID)
}

func TestLabels_SortedByName(t *testing.T) {
	b := newTestBoard(t)
	_, err := b.AddLabel("ux", "pink")
	require.NoError(t, err)
	_, err = b.AddLabel("backend", "blue")
	require.NoError(t, err)

	labels := b.Labels()
	require.Len(t, labels, 2)
	assert.Equal(t, "backend", labels[0].Name())
	assert.Equal(t, "ux", labels[1].Name())
}

func TestUpdateLabel(t *testing.T) {
	b := newTestBoard(t)
	id, err := b.AddLabel("Bug", "red")
	require.NoError(t, err)
	b.ClearEvents()

	require.NoError(t, b.UpdateLabel(id, "Defect", "orange"))
	l, _ := b.Label(id)
	assert.Equal(t, "Defect", l.Name())
	assert.Equal(t, ColorOrange, l.Color())
	assert.IsType(t, LabelUpdated{}, onlyEvent(t, b))

	require.ErrorIs(t, b.UpdateLabel("missing", "x", "red"), ErrNotFound)
	require.ErrorIs(t, b.UpdateLabel(id, "x", "brown"), ErrValidation)
}

func TestCardLabels_Idempotency(t *testing.T) {
	b, _, _, cards := boardWithCards(t, 1)
	label, err := b.AddLabel("Bug", "red")
	require.NoError(t, err)
	b.ClearEvents()

	require.NoError(t, b.AddLabelToCard(cards[0], label))
	require.ErrorIs(t, b.AddLabelToCard(cards[0], label), ErrIdempotency)

	card, _ := b.Card(cards[0])
	assert.Equal(t, []string{label}, card.LabelIDs())

	require.NoError(t, b.RemoveLabelFromCard(cards[0], label))
	require.ErrorIs(t, b.RemoveLabelFromCard(cards[0], label), ErrIdempotency)

	events := b.PendingEvents()
	require.Len(t, events, 2)
	assert.IsType(t, CardLabelAdded{}, events[0])
	assert.IsType(t, CardLabelRemoved{}, events[1])
}

func TestAddLabelToCard_UnknownLabel(t *testing.T) {
	b, _, _, cards := boardWithCards(t, 1)
	require.ErrorIs(t, b.AddLabelToCard(cards[0], "missing"), ErrNotFound)
	require.ErrorIs(t, b.AddLabelToCard("missing", "missing"), ErrNotFound)
}

func TestCard_LabelIDsIsACopy(t *testing.T) {
	b, _, _, cards := boardWithCards(t, 1)
	label, err := b.AddLabel("Bug", "red")
	require.NoError(t, err)
	require.NoError(t, b.AddLabelToCard(cards[0], label))

	card, _ := b.Card(cards[0])
	ids := card.LabelIDs()
	ids[0] = "tampered"

	again, _ := b.Card(cards[0])
	assert.Equal(t, []string{label}, again.LabelIDs())
}

func TestRemoveLabel_CascadesToCards(t *testing.T) {
	b, _, _, cards := boardWithCards(t, 3)
	bug, err := b.AddLabel("Bug", "red")
	require.NoError(t, err)
	ux, err := b.AddLabel("UX", "pink")
	require.NoError(t, err)
	require.NoError(t, b.AddLabelToCard(cards[0], bug))
	require.NoError(t, b.AddLabelToCard(cards[2], bug))
	require.NoError(t, b.AddLabelToCard(cards[2], ux))
	b.ClearEvents()

	require.NoError(t, b.RemoveLabel(bug))
	_, ok := b.Label(bug)
	assert.False(t, ok)

	for _, c := range b.Cards() {
		assert.False(t, c.HasLabel(bug), "card %s", c.ID())
	}
	third, _ := b.Card(cards[2])
	assert.Equal(t, []string{ux}, third.LabelIDs())

	ev, ok := onlyEvent(t, b).(LabelRemoved)
	require.True(t, ok)
	assert.Equal(t, []string{cards[0], cards[2]}, ev.CardIDs)
	assert.NoError(t, b.CheckInvariants())

	require.ErrorIs(t, b.RemoveLabel(bug), ErrNotFound)
}

func TestDelete_BlocksFurtherMutations(t *testing.T) {
	b, colA, _, _ := boardWithCards(t, 1)

	require.NoError(t, b.Delete())
	assert.True(t, b.Deleted())
	ev, ok := onlyEvent(t, b).(BoardDeleted)
	require.True(t, ok)
	assert.Equal(t, "project-1", ev.ProjectID)

	_, err := b.AddCard(colA, "late", "")
	require.ErrorIs(t, err, ErrStructural)
	require.ErrorIs(t, b.Rename("Other"), ErrStructural)
	require.ErrorIs(t, b.Delete(), ErrStructural)
	assert.Len(t, b.PendingEvents(), 1)
}

func TestEvents_AccumulateInOrderUntilCleared(t *testing.T) {
	b, err := CreateBoard("Roadmap", "p")
	require.NoError(t, err)
	col, err := b.AddColumn("Todo")
	require.NoError(t, err)
	_, err = b.AddCard(col, "First", "")
	require.NoError(t, err)

	var types []EventType
	for _, e := range b.PendingEvents() {
		types = append(types, e.EventType())
		assert.Equal(t, b.ID(), e.AggregateID())
	}
	assert.Equal(t, []EventType{TypeBoardCreated, TypeColumnAdded, TypeCardCreated}, types)

	b.ClearEvents()
	assert.Empty(t, b.PendingEvents())
}
