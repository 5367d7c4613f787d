package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() BoardSnapshot {
	return BoardSnapshot{
		ID:        "b1",
		Name:      "Roadmap",
		ProjectID: "p1",
		CreatedAt: testNow,
		UpdatedAt: testNow,
		Version:   4,
		Columns: []ColumnSnapshot{
			{ID: "todo", Name: "Todo", Position: 0, CreatedAt: testNow},
			{ID: "done", Name: "Done", Position: 1, CreatedAt: testNow},
		},
		Cards: []CardSnapshot{
			{ID: "c1", ColumnID: "todo", Title: "One", Position: 0, LabelIDs: []string{"bug"}},
			{ID: "c2", ColumnID: "todo", Title: "Two", Position: 1},
		},
		Labels: []LabelSnapshot{{ID: "bug", Name: "Bug", Color: "red"}},
	}
}

func TestRehydrateBoard(t *testing.T) {
	b, err := RehydrateBoard(validSnapshot(), WithClock(fixedClock))
	require.NoError(t, err)

	assert.Equal(t, "b1", b.ID())
	assert.Equal(t, 4, b.Version())
	assert.Empty(t, b.PendingEvents())
	assert.Equal(t, []string{"c1", "c2"}, cardOrder(t, b, "todo"))

	card, ok := b.Card("c1")
	require.True(t, ok)
	assert.True(t, card.HasLabel("bug"))

	assert.Equal(t, validSnapshot(), b.Snapshot())
}

func TestRehydrateBoard_ColumnsOutOfOrder(t *testing.T) {
	s := validSnapshot()
	s.Columns[0], s.Columns[1] = s.Columns[1], s.Columns[0]

	b, err := RehydrateBoard(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"todo", "done"}, columnOrder(t, b))
}

func TestRehydrateBoard_RejectsBrokenState(t *testing.T) {
	cases := map[string]func(*BoardSnapshot){
		"gap in column positions": func(s *BoardSnapshot) { s.Columns[1].Position = 2 },
		"gap in card positions":   func(s *BoardSnapshot) { s.Cards[1].Position = 5 },
		"duplicate card position": func(s *BoardSnapshot) { s.Cards[1].Position = 0 },
		"unknown column":          func(s *BoardSnapshot) { s.Cards[0].ColumnID = "gone" },
		"unknown label":           func(s *BoardSnapshot) { s.Cards[1].LabelIDs = []string{"gone"} },
		"duplicate label":         func(s *BoardSnapshot) { s.Cards[0].LabelIDs = []string{"bug", "bug"} },
		"duplicate column":        func(s *BoardSnapshot) { s.Columns[1].ID = "todo" },
		"invalid color":           func(s *BoardSnapshot) { s.Labels[0].Color = "teal" },
		"blank name":              func(s *BoardSnapshot) { s.Name = "" },
		"missing id":              func(s *BoardSnapshot) { s.ID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := validSnapshot()
			mutate(&s)
			_, err := RehydrateBoard(s)
			require.Error(t, err)
			var de *Error
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestRehydrateBoard_MutationsContinueFromStoredState(t *testing.T) {
	b, err := RehydrateBoard(validSnapshot(), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)

	id, err := b.AddCard("todo", "Three", "")
	require.NoError(t, err)
	assert.Equal(t, "id-01", id)
	card, _ := b.Card(id)
	assert.Equal(t, 2, card.Position())
	assert.Len(t, b.PendingEvents(), 1)
}
