package service

import (
	"time"

	"github.com/alexanderramin/neonboard/internal/domain"
)

// BoardDetails is the read model of a board: columns by position, each with
// its cards by position and their labels resolved. It backs `board show`,
// the interactive view and exports. Values handed out by BoardQueries may be
// shared with the cache and must be treated as read-only.
type BoardDetails struct {
	ID        string          `json:"id" yaml:"id"`
	ProjectID string          `json:"project_id" yaml:"project_id"`
	Name      string          `json:"name" yaml:"name"`
	Version   int             `json:"version" yaml:"version"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" yaml:"updated_at"`
	Columns   []ColumnDetails `json:"columns" yaml:"columns"`
	Labels    []LabelDetails  `json:"labels" yaml:"labels"`
}

type ColumnDetails struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Position int           `json:"position" yaml:"position"`
	Cards    []CardDetails `json:"cards" yaml:"cards"`
}

type CardDetails struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Position    int            `json:"position" yaml:"position"`
	Labels      []LabelDetails `json:"labels,omitempty" yaml:"labels,omitempty"`
	CreatedAt   time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" yaml:"updated_at"`
}

type LabelDetails struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// NewBoardDetails projects b into its read model.
func NewBoardDetails(b *domain.Board) BoardDetails {
	labels := b.Labels()
	byID := make(map[string]LabelDetails, len(labels))
	d := BoardDetails{
		ID:        b.ID(),
		ProjectID: b.ProjectID(),
		Name:      b.Name(),
		Version:   b.Version(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
		Columns:   []ColumnDetails{},
		Labels:    make([]LabelDetails, 0, len(labels)),
	}
	for _, l := range labels {
		ld := LabelDetails{ID: l.ID(), Name: l.Name(), Color: string(l.Color())}
		byID[l.ID()] = ld
		d.Labels = append(d.Labels, ld)
	}

	for _, col := range b.Columns() {
		cd := ColumnDetails{ID: col.ID(), Name: col.Name(), Position: col.Position(), Cards: []CardDetails{}}
		for _, card := range b.CardsInColumn(col.ID()) {
			c := CardDetails{
				ID:          card.ID(),
				Title:       card.Title(),
				Description: card.Description(),
				Position:    card.Position(),
				CreatedAt:   card.CreatedAt(),
				UpdatedAt:   card.UpdatedAt(),
			}
			for _, id := range card.LabelIDs() {
				if l, ok := byID[id]; ok {
					c.Labels = append(c.Labels, l)
				}
			}
			cd.Cards = append(cd.Cards, c)
		}
		d.Columns = append(d.Columns, cd)
	}
	return d
}

// CardCount returns the number of cards across all columns.
func (d BoardDetails) CardCount() int {
	n := 0
	for _, c := range d.Columns {
		n += len(c.Cards)
	}
	return n
}
