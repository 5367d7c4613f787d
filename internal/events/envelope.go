package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/neonboard/internal/domain"
)

// Envelope is the wire form of an event used by the activity log and the
// redis publisher.
type Envelope struct {
	Type        domain.EventType `json:"type"`
	AggregateID string           `json:"aggregate_id"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Payload     json.RawMessage  `json:"payload"`
}

// NewEnvelope encodes e.
func NewEnvelope(e domain.Event) (Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, fmt.Errorf("encoding %s payload: %w", e.EventType(), err)
	}
	return Envelope{
		Type:        e.EventType(),
		AggregateID: e.AggregateID(),
		OccurredAt:  e.OccurredAt().UTC(),
		Payload:     payload,
	}, nil
}

// IsBoardEvent reports whether t belongs to a board aggregate.
func IsBoardEvent(t domain.EventType) bool {
	switch t {
	case domain.TypeProjectCreated, domain.TypeProjectUpdated, domain.TypeProjectDeleted:
		return false
	}
	return true
}
