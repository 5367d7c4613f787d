package domain

import "time"

// EventType identifies a domain event.
type EventType string

// Board lifecycle events.
const (
	TypeBoardCreated EventType = "board.created"
	TypeBoardRenamed EventType = "board.renamed"
	TypeBoardDeleted EventType = "board.deleted"
)

// Column events.
const (
	TypeColumnAdded      EventType = "column.added"
	TypeColumnRenamed    EventType = "column.renamed"
	TypeColumnsReordered EventType = "column.reordered"
	TypeColumnDeleted    EventType = "column.deleted"
)

// Card events.
const (
	TypeCardCreated      EventType = "card.created"
	TypeCardUpdated      EventType = "card.updated"
	TypeCardMoved        EventType = "card.moved"
	TypeCardDeleted      EventType = "card.deleted"
	TypeCardLabelAdded   EventType = "card.label_added"
	TypeCardLabelRemoved EventType = "card.label_removed"
)

// Label catalog events.
const (
	TypeLabelCreated EventType = "label.created"
	TypeLabelUpdated EventType = "label.updated"
	TypeLabelRemoved EventType = "label.removed"
)

// Project events.
const (
	TypeProjectCreated EventType = "project.created"
	TypeProjectUpdated EventType = "project.updated"
	TypeProjectDeleted EventType = "project.deleted"
)

// Event is an immutable fact recorded by an aggregate.
type Event interface {
	EventType() EventType
	AggregateID() string
	OccurredAt() time.Time
}

// EventMeta carries the fields shared by every event.
type EventMeta struct {
	Aggregate string    `json:"aggregate_id"`
	At        time.Time `json:"occurred_at"`
}

func (m EventMeta) AggregateID() string   { return m.Aggregate }
func (m EventMeta) OccurredAt() time.Time { return m.At }

type BoardCreated struct {
	EventMeta
	Name      string `json:"name"`
	ProjectID string `json:"project_id"`
}

type BoardRenamed struct {
	EventMeta
	Name string `json:"name"`
}

type BoardDeleted struct {
	EventMeta
	ProjectID string `json:"project_id"`
}

type ColumnAdded struct {
	EventMeta
	ColumnID string `json:"column_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type ColumnRenamed struct {
	EventMeta
	ColumnID string `json:"column_id"`
	Name     string `json:"name"`
}

// ColumnsReordered carries the full id -> position map after the reorder.
type ColumnsReordered struct {
	EventMeta
	Positions map[string]int `json:"positions"`
}

// ColumnDeleted summarizes a column removal, including any card migration.
// MovedCardsTo is empty when the column held no cards.
type ColumnDeleted struct {
	EventMeta
	ColumnID     string   `json:"column_id"`
	MovedCardsTo string   `json:"moved_cards_to,omitempty"`
	MovedCardIDs []string `json:"moved_card_ids,omitempty"`
}

type CardCreated struct {
	EventMeta
	CardID   string `json:"card_id"`
	ColumnID string `json:"column_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type CardUpdated struct {
	EventMeta
	CardID      string `json:"card_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CardMoved records both the requested and the resulting position.
type CardMoved struct {
	EventMeta
	CardID            string `json:"card_id"`
	SourceColumnID    string `json:"source_column_id"`
	TargetColumnID    string `json:"target_column_id"`
	RequestedPosition int    `json:"requested_position"`
	Position          int    `json:"position"`
}

type CardDeleted struct {
	EventMeta
	CardID   string `json:"card_id"`
	ColumnID string `json:"column_id"`
}

type CardLabelAdded struct {
	EventMeta
	CardID  string `json:"card_id"`
	LabelID string `json:"label_id"`
}

type CardLabelRemoved struct {
	EventMeta
	CardID  string `json:"card_id"`
	LabelID string `json:"label_id"`
}

type LabelCreated struct {
	EventMeta
	LabelID string     `json:"label_id"`
	Name    string     `json:"name"`
	Color   LabelColor `json:"color"`
}

type LabelUpdated struct {
	EventMeta
	LabelID string     `json:"label_id"`
	Name    string     `json:"name"`
	Color   LabelColor `json:"color"`
}

// LabelRemoved lists the cards the label was stripped from.
type LabelRemoved struct {
	EventMeta
	LabelID string   `json:"label_id"`
	CardIDs []string `json:"card_ids,omitempty"`
}

type ProjectCreated struct {
	EventMeta
	Name string `json:"name"`
}

type ProjectUpdated struct {
	EventMeta
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectDeleted struct {
	EventMeta
}

func (BoardCreated) EventType() EventType     { return TypeBoardCreated }
func (BoardRenamed) EventType() EventType     { return TypeBoardRenamed }
func (BoardDeleted) EventType() EventType     { return TypeBoardDeleted }
func (ColumnAdded) EventType() EventType      { return TypeColumnAdded }
func (ColumnRenamed) EventType() EventType    { return TypeColumnRenamed }
func (ColumnsReordered) EventType() EventType { return TypeColumnsReordered }
func (ColumnDeleted) EventType() EventType    { return TypeColumnDeleted }
func (CardCreated) EventType() EventType      { return TypeCardCreated }
func (CardUpdated) EventType() EventType      { return TypeCardUpdated }
func (CardMoved) EventType() EventType        { return TypeCardMoved }
func (CardDeleted) EventType() EventType      { return TypeCardDeleted }
func (CardLabelAdded) EventType() EventType   { return TypeCardLabelAdded }
func (CardLabelRemoved) EventType() EventType { return TypeCardLabelRemoved }
func (LabelCreated) EventType() EventType     { return TypeLabelCreated }
func (LabelUpdated) EventType() EventType     { return TypeLabelUpdated }
func (LabelRemoved) EventType() EventType     { return TypeLabelRemoved }
func (ProjectCreated) EventType() EventType   { return TypeProjectCreated }
func (ProjectUpdated) EventType() EventType   { return TypeProjectUpdated }
func (ProjectDeleted) EventType() EventType   { return TypeProjectDeleted }
