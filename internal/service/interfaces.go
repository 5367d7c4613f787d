package service

import (
	"context"

	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/importer"
	"github.com/alexanderramin/neonboard/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, name, description string) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id, name, description string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// BoardService runs every board mutation as one load-mutate-save cycle in a
// unit of work, retrying on version conflicts, and publishes the resulting
// events once the transaction has committed.
type BoardService interface {
	CreateBoard(ctx context.Context, projectID, name string) (*domain.Board, error)
	ImportBoard(ctx context.Context, projectID string, doc *importer.BoardImport) (*domain.Board, error)
	RenameBoard(ctx context.Context, boardID, name string) error
	DeleteBoard(ctx context.Context, boardID string) error

	AddColumn(ctx context.Context, boardID, name string) (string, error)
	RenameColumn(ctx context.Context, boardID, columnID, name string) error
	ReorderColumns(ctx context.Context, boardID string, orderedIDs []string) error
	DeleteColumn(ctx context.Context, boardID, columnID, moveCardsTo string) error

	AddCard(ctx context.Context, boardID, columnID, title, description string) (string, error)
	UpdateCard(ctx context.Context, boardID, cardID, title, description string) error
	MoveCard(ctx context.Context, boardID, cardID, targetColumnID string, position int) error
	DeleteCard(ctx context.Context, boardID, cardID string) error

	AddLabel(ctx context.Context, boardID, name, color string) (string, error)
	UpdateLabel(ctx context.Context, boardID, labelID, name, color string) error
	RemoveLabel(ctx context.Context, boardID, labelID string) error
	AddLabelToCard(ctx context.Context, boardID, cardID, labelID string) error
	RemoveLabelFromCard(ctx context.Context, boardID, cardID, labelID string) error
}

type BoardQueries interface {
	GetBoard(ctx context.Context, boardID string) (BoardDetails, error)
	ListBoards(ctx context.Context, projectID string) ([]repository.BoardSummary, error)
	Activity(ctx context.Context, boardID string, limit int) ([]repository.ActivityEntry, error)
}

// EventDispatcher publishes and clears the pending events of aggregates.
type EventDispatcher interface {
	Dispatch(ctx context.Context, sources ...domain.EventSource) error
}
