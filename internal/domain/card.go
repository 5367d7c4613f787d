package domain

import (
	"slices"
	"time"
)

// Card is a board-owned work item placed in one column.
type Card struct {
	id        string
	columnID  string
	content   CardContent
	position  Position
	labelIDs  []string
	createdAt time.Time
	updatedAt time.Time
}

func (c Card) ID() string           { return c.id }
func (c Card) ColumnID() string     { return c.columnID }
func (c Card) Content() CardContent { return c.content }
func (c Card) Title() string        { return c.content.Title() }
func (c Card) Description() string  { return c.content.Description() }
func (c Card) Position() int        { return c.position.Value() }
func (c Card) CreatedAt() time.Time { return c.createdAt }
func (c Card) UpdatedAt() time.Time { return c.updatedAt }

// LabelIDs returns the assigned label ids in assignment order.
func (c Card) LabelIDs() []string {
	return slices.Clone(c.labelIDs)
}

// HasLabel reports whether labelID is assigned to the card.
func (c Card) HasLabel(labelID string) bool {
	return slices.Contains(c.labelIDs, labelID)
}

func (c *Card) move(columnID string, pos Position, now time.Time) {
	c.columnID = columnID
	c.position = pos
	c.updatedAt = now
}

func (c *Card) replaceContent(content CardContent, now time.Time) {
	c.content = content
	c.updatedAt = now
}

func (c *Card) addLabel(labelID string, now time.Time) error {
	if c.HasLabel(labelID) {
		return idempotencyf("label %s is already assigned to card %s", labelID, c.id)
	}
	c.labelIDs = append(c.labelIDs, labelID)
	c.updatedAt = now
	return nil
}

func (c *Card) removeLabel(labelID string, now time.Time) error {
	i := slices.Index(c.labelIDs, labelID)
	if i < 0 {
		return idempotencyf("label %s is not assigned to card %s", labelID, c.id)
	}
	c.labelIDs = slices.Delete(c.labelIDs, i, i+1)
	c.updatedAt = now
	return nil
}
