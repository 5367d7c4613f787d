package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// BoardSnapshot is the flat, persistence-facing form of a Board.
type BoardSnapshot struct {
	ID        string
	Name      string
	ProjectID string
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
	Columns   []ColumnSnapshot
	Cards     []CardSnapshot
	Labels    []LabelSnapshot
}

type ColumnSnapshot struct {
	ID        string
	Name      string
	Position  int
	CreatedAt time.Time
}

type CardSnapshot struct {
	ID          string
	ColumnID    string
	Title       string
	Description string
	Position    int
	LabelIDs    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type LabelSnapshot struct {
	ID    string
	Name  string
	Color string
}

// Snapshot copies the board's state. Columns and cards are ordered by
// position, labels by name.
func (b *Board) Snapshot() BoardSnapshot {
	s := BoardSnapshot{
		ID:        b.id,
		Name:      b.name,
		ProjectID: b.projectID,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
		Version:   b.version,
	}
	for _, c := range b.Columns() {
		s.Columns = append(s.Columns, ColumnSnapshot{
			ID: c.id, Name: c.name, Position: c.Position(), CreatedAt: c.createdAt,
		})
	}
	for _, c := range b.Cards() {
		s.Cards = append(s.Cards, CardSnapshot{
			ID:          c.id,
			ColumnID:    c.columnID,
			Title:       c.Title(),
			Description: c.Description(),
			Position:    c.Position(),
			LabelIDs:    slices.Clone(c.labelIDs),
			CreatedAt:   c.createdAt,
			UpdatedAt:   c.updatedAt,
		})
	}
	for _, l := range b.Labels() {
		s.Labels = append(s.Labels, LabelSnapshot{ID: l.id, Name: l.name, Color: string(l.color)})
	}
	return s
}

// RehydrateBoard rebuilds a Board from stored state. Every invariant is
// checked; the result has an empty event queue.
func RehydrateBoard(s BoardSnapshot, opts ...Option) (*Board, error) {
	b, err := rehydrateBoard(s, opts)
	if err != nil {
		return nil, fmt.Errorf("rehydrating board %s: %w", s.ID, err)
	}
	return b, nil
}

func rehydrateBoard(s BoardSnapshot, opts []Option) (*Board, error) {
	if strings.TrimSpace(s.ID) == "" {
		return nil, validationf("board id cannot be empty")
	}
	if err := validateBoard(s.Name, s.ProjectID); err != nil {
		return nil, err
	}
	b := &Board{
		id:        s.ID,
		name:      s.Name,
		projectID: s.ProjectID,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		version:   s.Version,
		opts:      buildOptions(opts),
	}

	for _, cs := range s.Columns {
		if b.findColumn(cs.ID) != nil {
			return nil, structuralf("duplicate column %s", cs.ID)
		}
		if err := validateColumnName(cs.Name); err != nil {
			return nil, err
		}
		pos, err := NewPosition(cs.Position)
		if err != nil {
			return nil, err
		}
		b.columns = append(b.columns, &Column{id: cs.ID, name: cs.Name, position: pos, createdAt: cs.CreatedAt})
	}
	b.sortColumns()
	for i, c := range b.columns {
		if c.Position() != i {
			return nil, structuralf("column positions are not dense: column %s at %d, want %d", c.id, c.Position(), i)
		}
	}

	for _, ls := range s.Labels {
		if b.findLabel(ls.ID) != nil {
			return nil, structuralf("duplicate label %s", ls.ID)
		}
		color, err := validateLabel(ls.Name, ls.Color)
		if err != nil {
			return nil, err
		}
		b.labels = append(b.labels, &Label{id: ls.ID, name: ls.Name, color: color})
	}

	for _, cs := range s.Cards {
		if b.findCard(cs.ID) != nil {
			return nil, structuralf("duplicate card %s", cs.ID)
		}
		if b.findColumn(cs.ColumnID) == nil {
			return nil, structuralf("card %s references unknown column %s", cs.ID, cs.ColumnID)
		}
		content, err := NewCardContent(cs.Title, cs.Description)
		if err != nil {
			return nil, err
		}
		pos, err := NewPosition(cs.Position)
		if err != nil {
			return nil, err
		}
		card := &Card{
			id:        cs.ID,
			columnID:  cs.ColumnID,
			content:   content,
			position:  pos,
			createdAt: cs.CreatedAt,
			updatedAt: cs.UpdatedAt,
		}
		for _, lid := range cs.LabelIDs {
			if b.findLabel(lid) == nil {
				return nil, structuralf("card %s references unknown label %s", cs.ID, lid)
			}
			if card.HasLabel(lid) {
				return nil, structuralf("card %s carries label %s twice", cs.ID, lid)
			}
			card.labelIDs = append(card.labelIDs, lid)
		}
		b.cards = append(b.cards, card)
	}
	for _, col := range b.columns {
		for i, c := range b.cardsIn(col.id) {
			if c.Position() != i {
				return nil, structuralf("card positions in column %s are not dense: card %s at %d, want %d",
					col.id, c.id, c.Position(), i)
			}
		}
	}
	return b, nil
}

// CheckInvariants reports the first structural invariant the board
// violates, or nil.
func (b *Board) CheckInvariants() error {
	for i, c := range b.columns {
		if c.Position() != i {
			return structuralf("column %s at position %d, want %d", c.id, c.Position(), i)
		}
	}
	for _, col := range b.columns {
		for i, c := range b.cardsIn(col.id) {
			if c.Position() != i {
				return structuralf("card %s at position %d in column %s, want %d", c.id, c.Position(), col.id, i)
			}
		}
	}
	for _, c := range b.cards {
		if b.findColumn(c.columnID) == nil {
			return structuralf("card %s references unknown column %s", c.id, c.columnID)
		}
		seen := make([]string, 0, len(c.labelIDs))
		for _, lid := range c.labelIDs {
			if slices.Contains(seen, lid) {
				return structuralf("card %s carries label %s twice", c.id, lid)
			}
			if b.findLabel(lid) == nil {
				return structuralf("card %s references unknown label %s", c.id, lid)
			}
			seen = append(seen, lid)
		}
	}
	return nil
}
