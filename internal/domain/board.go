package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

const maxBoardNameLength = 100

// Board is the aggregate root for a kanban board. It is the only writer of
// its columns, cards and labels and the only component that assigns
// positions. A Board is not safe for concurrent use.
type Board struct {
	eventQueue

	id        string
	name      string
	projectID string
	createdAt time.Time
	updatedAt time.Time
	version   int
	deleted   bool

	columns []*Column // kept sorted by position
	cards   []*Card   // insertion order
	labels  []*Label

	opts options
}

func validateBoard(name, projectID string) error {
	if err := validateName("board", name, maxBoardNameLength); err != nil {
		return err
	}
	if strings.TrimSpace(projectID) == "" {
		return validationf("project id cannot be empty")
	}
	return nil
}

// CreateBoard returns a new, empty board belonging to projectID.
func CreateBoard(name, projectID string, opts ...Option) (*Board, error) {
	if err := validateBoard(name, projectID); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	now := o.clock()
	b := &Board{
		id:        o.newID(),
		name:      name,
		projectID: projectID,
		createdAt: now,
		updatedAt: now,
		opts:      o,
	}
	b.record(BoardCreated{EventMeta: b.meta(now), Name: name, ProjectID: projectID})
	return b, nil
}

func (b *Board) ID() string           { return b.id }
func (b *Board) Name() string         { return b.name }
func (b *Board) ProjectID() string    { return b.projectID }
func (b *Board) CreatedAt() time.Time { return b.createdAt }
func (b *Board) UpdatedAt() time.Time { return b.updatedAt }

// Version is the persisted concurrency token. Zero means never saved.
func (b *Board) Version() int { return b.version }

// Deleted reports whether Delete has been called.
func (b *Board) Deleted() bool { return b.deleted }

// MarkSaved records the version the repository stored.
func (b *Board) MarkSaved(version int) {
	b.version = version
}

// Columns returns copies of the columns ordered by position.
func (b *Board) Columns() []Column {
	out := make([]Column, len(b.columns))
	for i, c := range b.columns {
		out[i] = *c
	}
	return out
}

// Column returns a copy of the column with the given id.
func (b *Board) Column(id string) (Column, bool) {
	c := b.findColumn(id)
	if c == nil {
		return Column{}, false
	}
	return *c, true
}

// Cards returns copies of every card, ordered by column position then card
// position.
func (b *Board) Cards() []Card {
	out := make([]Card, 0, len(b.cards))
	for _, col := range b.columns {
		out = append(out, b.CardsInColumn(col.id)...)
	}
	return out
}

// CardsInColumn returns copies of the cards of a column ordered by position.
func (b *Board) CardsInColumn(columnID string) []Card {
	cards := b.cardsIn(columnID)
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = *c
		out[i].labelIDs = slices.Clone(c.labelIDs)
	}
	return out
}

// Card returns a copy of the card with the given id.
func (b *Board) Card(id string) (Card, bool) {
	c := b.findCard(id)
	if c == nil {
		return Card{}, false
	}
	out := *c
	out.labelIDs = slices.Clone(c.labelIDs)
	return out, true
}

// Labels returns copies of the label catalog ordered by name.
func (b *Board) Labels() []Label {
	out := make([]Label, len(b.labels))
	for i, l := range b.labels {
		out[i] = *l
	}
	slices.SortFunc(out, func(x, y Label) int {
		if d := cmp.Compare(x.name, y.name); d != 0 {
			return d
		}
		return cmp.Compare(x.id, y.id)
	})
	return out
}

// Label returns a copy of the catalog label with the given id.
func (b *Board) Label(id string) (Label, bool) {
	l := b.findLabel(id)
	if l == nil {
		return Label{}, false
	}
	return *l, true
}

// Rename changes the board name.
func (b *Board) Rename(newName string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if err := validateBoard(newName, b.projectID); err != nil {
		return err
	}
	now := b.touch()
	b.name = newName
	b.record(BoardRenamed{EventMeta: b.meta(now), Name: newName})
	return nil
}

// Delete marks the board as deleted. Every later mutation fails.
func (b *Board) Delete() error {
	if err := b.checkLive(); err != nil {
		return err
	}
	now := b.touch()
	b.deleted = true
	b.record(BoardDeleted{EventMeta: b.meta(now), ProjectID: b.projectID})
	return nil
}

// AddColumn appends a column after the existing ones and returns its id.
func (b *Board) AddColumn(name string) (string, error) {
	if err := b.checkLive(); err != nil {
		return "", err
	}
	if err := validateColumnName(name); err != nil {
		return "", err
	}
	now := b.touch()
	col := &Column{
		id:        b.opts.newID(),
		name:      name,
		position:  positionAt(len(b.columns)),
		createdAt: now,
	}
	b.columns = append(b.columns, col)
	b.record(ColumnAdded{EventMeta: b.meta(now), ColumnID: col.id, Name: name, Position: col.Position()})
	return col.id, nil
}

// RenameColumn renames an existing column in place.
func (b *Board) RenameColumn(columnID, newName string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	col, err := b.requireColumn(columnID)
	if err != nil {
		return err
	}
	if err := validateColumnName(newName); err != nil {
		return err
	}
	now := b.touch()
	col.name = newName
	b.record(ColumnRenamed{EventMeta: b.meta(now), ColumnID: columnID, Name: newName})
	return nil
}

// ReorderColumns assigns each column the index of its id in orderedIDs.
// The list must name every column exactly once.
func (b *Board) ReorderColumns(orderedIDs []string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if len(orderedIDs) != len(b.columns) {
		return structuralf("column count mismatch: got %d ids for %d columns; all columns must be included in the reorder",
			len(orderedIDs), len(b.columns))
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return structuralf("column %s appears more than once in the reorder", id)
		}
		seen[id] = true
		if b.findColumn(id) == nil {
			return structuralf("column %s not found", id)
		}
	}

	now := b.touch()
	positions := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		b.findColumn(id).position = positionAt(i)
		positions[id] = i
	}
	b.sortColumns()
	b.record(ColumnsReordered{EventMeta: b.meta(now), Positions: positions})
	return nil
}

// DeleteColumn removes a column. When the column still holds cards,
// moveCardsTo must name another column; the cards are appended to its end
// in their current order. An empty moveCardsTo means no target.
func (b *Board) DeleteColumn(columnID, moveCardsTo string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	col, err := b.requireColumn(columnID)
	if err != nil {
		return err
	}
	if moveCardsTo != "" {
		if moveCardsTo == columnID {
			return structuralf("cannot move cards to the column being deleted")
		}
		if _, err := b.requireColumn(moveCardsTo); err != nil {
			return err
		}
	}
	moving := b.cardsIn(columnID)
	if len(moving) > 0 && moveCardsTo == "" {
		return structuralf("cannot delete column with cards; specify a target column to move cards to")
	}

	now := b.touch()
	var movedIDs []string
	if len(moving) > 0 {
		base := len(b.cardsIn(moveCardsTo))
		for i, c := range moving {
			c.move(moveCardsTo, positionAt(base+i), now)
			movedIDs = append(movedIDs, c.id)
		}
		b.resequenceCards(moveCardsTo, nil)
	}

	b.columns = slices.DeleteFunc(b.columns, func(c *Column) bool { return c == col })
	b.resequenceColumns()

	ev := ColumnDeleted{EventMeta: b.meta(now), ColumnID: columnID}
	if len(movedIDs) > 0 {
		ev.MovedCardsTo = moveCardsTo
		ev.MovedCardIDs = movedIDs
	}
	b.record(ev)
	return nil
}

// AddCard appends a card to the end of a column and returns its id.
func (b *Board) AddCard(columnID, title, description string) (string, error) {
	if err := b.checkLive(); err != nil {
		return "", err
	}
	if _, err := b.requireColumn(columnID); err != nil {
		return "", err
	}
	content, err := NewCardContent(title, description)
	if err != nil {
		return "", err
	}
	now := b.touch()
	card := &Card{
		id:        b.opts.newID(),
		columnID:  columnID,
		content:   content,
		position:  positionAt(len(b.cardsIn(columnID))),
		createdAt: now,
		updatedAt: now,
	}
	b.cards = append(b.cards, card)
	b.record(CardCreated{
		EventMeta: b.meta(now),
		CardID:    card.id,
		ColumnID:  columnID,
		Title:     title,
		Position:  card.Position(),
	})
	return card.id, nil
}

// UpdateCard replaces a card's content.
func (b *Board) UpdateCard(cardID, title, description string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	card, err := b.requireCard(cardID)
	if err != nil {
		return err
	}
	content, err := NewCardContent(title, description)
	if err != nil {
		return err
	}
	now := b.touch()
	card.replaceContent(content, now)
	b.record(CardUpdated{EventMeta: b.meta(now), CardID: cardID, Title: title, Description: description})
	return nil
}

// MoveCard places a card at targetPosition of targetColumnID and closes the
// gap it left. The card takes the requested slot and the card holding it
// shifts down. Positions at or past the end append.
func (b *Board) MoveCard(cardID, targetColumnID string, targetPosition int) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	card, err := b.requireCard(cardID)
	if err != nil {
		return err
	}
	if _, err := b.requireColumn(targetColumnID); err != nil {
		return err
	}
	pos, err := NewPosition(targetPosition)
	if err != nil {
		return validationf("target position cannot be negative")
	}

	now := b.touch()
	source := card.columnID
	card.move(targetColumnID, pos, now)
	b.resequenceCards(source, card)
	if targetColumnID != source {
		b.resequenceCards(targetColumnID, card)
	}
	b.record(CardMoved{
		EventMeta:         b.meta(now),
		CardID:            cardID,
		SourceColumnID:    source,
		TargetColumnID:    targetColumnID,
		RequestedPosition: targetPosition,
		Position:          card.Position(),
	})
	return nil
}

// DeleteCard removes a card and resequences its column.
func (b *Board) DeleteCard(cardID string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	card, err := b.requireCard(cardID)
	if err != nil {
		return err
	}
	now := b.touch()
	b.cards = slices.DeleteFunc(b.cards, func(c *Card) bool { return c == card })
	b.resequenceCards(card.columnID, nil)
	b.record(CardDeleted{EventMeta: b.meta(now), CardID: cardID, ColumnID: card.columnID})
	return nil
}

// AddLabel adds a label to the board catalog and returns its id.
func (b *Board) AddLabel(name, color string) (string, error) {
	if err := b.checkLive(); err != nil {
		return "", err
	}
	c, err := validateLabel(name, color)
	if err != nil {
		return "", err
	}
	now := b.touch()
	l := &Label{id: b.opts.newID(), name: name, color: c}
	b.labels = append(b.labels, l)
	b.record(LabelCreated{EventMeta: b.meta(now), LabelID: l.id, Name: name, Color: c})
	return l.id, nil
}

// UpdateLabel changes a catalog label's name and color.
func (b *Board) UpdateLabel(labelID, name, color string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	l, err := b.requireLabel(labelID)
	if err != nil {
		return err
	}
	c, err := validateLabel(name, color)
	if err != nil {
		return err
	}
	now := b.touch()
	l.name = name
	l.color = c
	b.record(LabelUpdated{EventMeta: b.meta(now), LabelID: labelID, Name: name, Color: c})
	return nil
}

// RemoveLabel deletes a catalog label and strips it from every card.
func (b *Board) RemoveLabel(labelID string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	l, err := b.requireLabel(labelID)
	if err != nil {
		return err
	}
	now := b.touch()
	var stripped []string
	for _, c := range b.cards {
		if c.HasLabel(labelID) {
			_ = c.removeLabel(labelID, now)
			stripped = append(stripped, c.id)
		}
	}
	b.labels = slices.DeleteFunc(b.labels, func(x *Label) bool { return x == l })
	b.record(LabelRemoved{EventMeta: b.meta(now), LabelID: labelID, CardIDs: stripped})
	return nil
}

// AddLabelToCard assigns a catalog label to a card.
func (b *Board) AddLabelToCard(cardID, labelID string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	card, err := b.requireCard(cardID)
	if err != nil {
		return err
	}
	if _, err := b.requireLabel(labelID); err != nil {
		return err
	}
	if card.HasLabel(labelID) {
		return idempotencyf("label %s is already assigned to card %s", labelID, cardID)
	}
	now := b.touch()
	_ = card.addLabel(labelID, now)
	b.record(CardLabelAdded{EventMeta: b.meta(now), CardID: cardID, LabelID: labelID})
	return nil
}

// RemoveLabelFromCard unassigns a label from a card.
func (b *Board) RemoveLabelFromCard(cardID, labelID string) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	card, err := b.requireCard(cardID)
	if err != nil {
		return err
	}
	if !card.HasLabel(labelID) {
		return idempotencyf("label %s is not assigned to card %s", labelID, cardID)
	}
	now := b.touch()
	_ = card.removeLabel(labelID, now)
	b.record(CardLabelRemoved{EventMeta: b.meta(now), CardID: cardID, LabelID: labelID})
	return nil
}

func (b *Board) checkLive() error {
	if b.deleted {
		return structuralf("board %s has been deleted", b.id)
	}
	return nil
}

func (b *Board) touch() time.Time {
	now := b.opts.clock()
	b.updatedAt = now
	return now
}

func (b *Board) meta(at time.Time) EventMeta {
	return EventMeta{Aggregate: b.id, At: at}
}

func (b *Board) findColumn(id string) *Column {
	for _, c := range b.columns {
		if c.id == id {
			return c
		}
	}
	return nil
}

func (b *Board) findCard(id string) *Card {
	for _, c := range b.cards {
		if c.id == id {
			return c
		}
	}
	return nil
}

func (b *Board) findLabel(id string) *Label {
	for _, l := range b.labels {
		if l.id == id {
			return l
		}
	}
	return nil
}

func (b *Board) requireColumn(id string) (*Column, error) {
	if c := b.findColumn(id); c != nil {
		return c, nil
	}
	return nil, notFoundf("column %s not found", id)
}

func (b *Board) requireCard(id string) (*Card, error) {
	if c := b.findCard(id); c != nil {
		return c, nil
	}
	return nil, notFoundf("card %s not found", id)
}

func (b *Board) requireLabel(id string) (*Label, error) {
	if l := b.findLabel(id); l != nil {
		return l, nil
	}
	return nil, notFoundf("label %s not found", id)
}

// cardsIn returns the live cards of a column ordered by position.
func (b *Board) cardsIn(columnID string) []*Card {
	var out []*Card
	for _, c := range b.cards {
		if c.columnID == columnID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(x, y *Card) int {
		return cmp.Compare(x.position.Value(), y.position.Value())
	})
	return out
}

// resequenceCards stable-sorts a column's cards by position and reindexes
// them from zero. moved, when it belongs to the column, takes the slot its
// position asks for (clamped to the end) and the other cards close up around
// it.
func (b *Board) resequenceCards(columnID string, moved *Card) {
	var cards []*Card
	for _, c := range b.cards {
		if c.columnID == columnID && c != moved {
			cards = append(cards, c)
		}
	}
	slices.SortStableFunc(cards, func(x, y *Card) int {
		return cmp.Compare(x.position.Value(), y.position.Value())
	})
	if moved != nil && moved.columnID == columnID {
		slot := min(moved.position.Value(), len(cards))
		cards = slices.Insert(cards, slot, moved)
	}
	for i, c := range cards {
		c.position = positionAt(i)
	}
}

func (b *Board) sortColumns() {
	slices.SortStableFunc(b.columns, func(x, y *Column) int {
		return cmp.Compare(x.position.Value(), y.position.Value())
	})
}

func (b *Board) resequenceColumns() {
	b.sortColumns()
	for i, c := range b.columns {
		c.position = positionAt(i)
	}
}
