package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/neonboard/internal/domain"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by BoardRepo.Save and Delete when the stored
	// version no longer matches the board's. Reload and retry.
	ErrConflict = errors.New("board was modified concurrently")
)

// BoardSummary is a list row for boards; it does not load the aggregate.
type BoardSummary struct {
	ID          string
	ProjectID   string
	Name        string
	Version     int
	ColumnCount int
	CardCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActivityEntry is one recorded board event.
type ActivityEntry struct {
	ID         int64
	BoardID    string
	EventType  string
	Payload    string
	OccurredAt time.Time
	RecordedAt time.Time
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type BoardRepo interface {
	LoadWithDetails(ctx context.Context, id string) (*domain.Board, error)
	Create(ctx context.Context, b *domain.Board) error
	Save(ctx context.Context, b *domain.Board) error
	Delete(ctx context.Context, b *domain.Board) error
	ListByProject(ctx context.Context, projectID string) ([]BoardSummary, error)
}

type ActivityRepo interface {
	Append(ctx context.Context, e ActivityEntry) error
	ListByBoard(ctx context.Context, boardID string, limit int) ([]ActivityEntry, error)
}
