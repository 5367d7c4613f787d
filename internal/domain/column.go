package domain

import "time"

const maxColumnNameLength = 50

// Column is a board-owned list of cards. Values returned by Board accessors
// are copies; mutate through the Board.
type Column struct {
	id        string
	name      string
	position  Position
	createdAt time.Time
}

func (c Column) ID() string           { return c.id }
func (c Column) Name() string         { return c.name }
func (c Column) Position() int        { return c.position.Value() }
func (c Column) CreatedAt() time.Time { return c.createdAt }

func validateColumnName(name string) error {
	return validateName("column", name, maxColumnNameLength)
}
