package domain

// Position is a dense ordinal inside a board (columns) or a column (cards).
// Only the Board assigns positions; the zero value is position 0.
type Position struct {
	value int
}

// NewPosition returns a Position for v, rejecting negative values.
func NewPosition(v int) (Position, error) {
	if v < 0 {
		return Position{}, validationf("position cannot be negative")
	}
	return Position{value: v}, nil
}

// Value returns the ordinal.
func (p Position) Value() int {
	return p.value
}

// positionAt is used for indexes the board derives itself (always >= 0).
func positionAt(i int) Position {
	return Position{value: i}
}
