package importer

import (
	"fmt"

	"github.com/alexanderramin/neonboard/internal/domain"
)

// Convert builds a new board in projectID from doc through the aggregate's
// own operations, so the board comes back with the full event history of
// its construction pending. Call ValidateBoardImport first; Convert stops at
// the first rejected operation.
func Convert(doc *BoardImport, projectID string, opts ...domain.Option) (*domain.Board, error) {
	b, err := domain.CreateBoard(doc.Name, projectID, opts...)
	if err != nil {
		return nil, err
	}

	labelIDs := make(map[string]string, len(doc.Labels))
	for _, l := range doc.Labels {
		id, err := b.AddLabel(l.Name, l.Color)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", l.Name, err)
		}
		labelIDs[l.Name] = id
	}

	for _, c := range doc.Columns {
		columnID, err := b.AddColumn(c.Name)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		for _, card := range c.Cards {
			cardID, err := b.AddCard(columnID, card.Title, card.Description)
			if err != nil {
				return nil, fmt.Errorf("card %q: %w", card.Title, err)
			}
			for _, ref := range card.Labels {
				labelID, ok := labelIDs[ref.Name]
				if !ok {
					return nil, fmt.Errorf("card %q: unknown label %q", card.Title, ref.Name)
				}
				if err := b.AddLabelToCard(cardID, labelID); err != nil {
					return nil, fmt.Errorf("card %q: %w", card.Title, err)
				}
			}
		}
	}
	return b, nil
}
