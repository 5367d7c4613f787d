package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/neonboard/internal/db"
	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/importer"
	"github.com/alexanderramin/neonboard/internal/repository"
	"go.opentelemetry.io/otel/trace"
)

type boardService struct {
	uow        db.UnitOfWork
	dispatcher EventDispatcher
	cfg        serviceConfig
	tracer     trace.Tracer
}

func NewBoardService(uow db.UnitOfWork, dispatcher EventDispatcher, opts ...Option) BoardService {
	cfg := buildConfig(opts)
	return &boardService{
		uow:        uow,
		dispatcher: dispatcher,
		cfg:        cfg,
		tracer:     tracerOrDefault(cfg.tracer),
	}
}

func (s *boardService) CreateBoard(ctx context.Context, projectID, name string) (board *domain.Board, err error) {
	ctx, uc := startUseCase(ctx, s.tracer, s.cfg.observer, "board.create", map[string]any{"project_id": projectID})
	defer uc.finish(ctx, &err)

	board, err = domain.CreateBoard(name, projectID, s.cfg.domainOptions...)
	if err != nil {
		return nil, err
	}
	uc.fields["board_id"] = board.ID()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := loadProject(ctx, s.cfg.projects(tx), projectID); err != nil {
			return err
		}
		return s.cfg.boards(tx).Create(ctx, board)
	})
	if err != nil {
		return nil, err
	}
	dispatchAfterCommit(ctx, s.dispatcher, s.cfg.observer, uc, board)
	return board, nil
}

// ImportBoard creates a board in projectID from a board document. The
// document is validated as a whole first; nothing is stored when any part
// of it is rejected.
func (s *boardService) ImportBoard(ctx context.Context, projectID string, doc *importer.BoardImport) (board *domain.Board, err error) {
	ctx, uc := startUseCase(ctx, s.tracer, s.cfg.observer, "board.import", map[string]any{"project_id": projectID})
	defer uc.finish(ctx, &err)

	if errs := importer.ValidateBoardImport(doc); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, domain.NewError(domain.KindValidation, "invalid board document: %s", strings.Join(msgs, "; "))
	}
	board, err = importer.Convert(doc, projectID, s.cfg.domainOptions...)
	if err != nil {
		return nil, err
	}
	uc.fields["board_id"] = board.ID()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := loadProject(ctx, s.cfg.projects(tx), projectID); err != nil {
			return err
		}
		return s.cfg.boards(tx).Create(ctx, board)
	})
	if err != nil {
		return nil, err
	}
	dispatchAfterCommit(ctx, s.dispatcher, s.cfg.observer, uc, board)
	return board, nil
}

// RenameBoard is a no-op when name equals the current name.
func (s *boardService) RenameBoard(ctx context.Context, boardID, name string) error {
	return s.mutate(ctx, "board.rename", boardID, func(b *domain.Board) error {
		if b.Name() == name {
			return errUnchanged
		}
		return b.Rename(name)
	})
}

func (s *boardService) DeleteBoard(ctx context.Context, boardID string) error {
	return s.mutate(ctx, "board.delete", boardID, func(b *domain.Board) error {
		return b.Delete()
	})
}

func (s *boardService) AddColumn(ctx context.Context, boardID, name string) (id string, err error) {
	err = s.mutate(ctx, "column.add", boardID, func(b *domain.Board) error {
		id, err = b.AddColumn(name)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *boardService) RenameColumn(ctx context.Context, boardID, columnID, name string) error {
	return s.mutate(ctx, "column.rename", boardID, func(b *domain.Board) error {
		return b.RenameColumn(columnID, name)
	})
}

func (s *boardService) ReorderColumns(ctx context.Context, boardID string, orderedIDs []string) error {
	return s.mutate(ctx, "column.reorder", boardID, func(b *domain.Board) error {
		return b.ReorderColumns(orderedIDs)
	})
}

func (s *boardService) DeleteColumn(ctx context.Context, boardID, columnID, moveCardsTo string) error {
	return s.mutate(ctx, "column.delete", boardID, func(b *domain.Board) error {
		return b.DeleteColumn(columnID, moveCardsTo)
	})
}

func (s *boardService) AddCard(ctx context.Context, boardID, columnID, title, description string) (id string, err error) {
	err = s.mutate(ctx, "card.add", boardID, func(b *domain.Board) error {
		id, err = b.AddCard(columnID, title, description)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *boardService) UpdateCard(ctx context.Context, boardID, cardID, title, description string) error {
	return s.mutate(ctx, "card.update", boardID, func(b *domain.Board) error {
		return b.UpdateCard(cardID, title, description)
	})
}

func (s *boardService) MoveCard(ctx context.Context, boardID, cardID, targetColumnID string, position int) error {
	return s.mutate(ctx, "card.move", boardID, func(b *domain.Board) error {
		return b.MoveCard(cardID, targetColumnID, position)
	})
}

func (s *boardService) DeleteCard(ctx context.Context, boardID, cardID string) error {
	return s.mutate(ctx, "card.delete", boardID, func(b *domain.Board) error {
		return b.DeleteCard(cardID)
	})
}

func (s *boardService) AddLabel(ctx context.Context, boardID, name, color string) (id string, err error) {
	err = s.mutate(ctx, "label.add", boardID, func(b *domain.Board) error {
		id, err = b.AddLabel(name, color)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *boardService) UpdateLabel(ctx context.Context, boardID, labelID, name, color string) error {
	return s.mutate(ctx, "label.update", boardID, func(b *domain.Board) error {
		return b.UpdateLabel(labelID, name, color)
	})
}

func (s *boardService) RemoveLabel(ctx context.Context, boardID, labelID string) error {
	return s.mutate(ctx, "label.remove", boardID, func(b *domain.Board) error {
		return b.RemoveLabel(labelID)
	})
}

func (s *boardService) AddLabelToCard(ctx context.Context, boardID, cardID, labelID string) error {
	return s.mutate(ctx, "card.label", boardID, func(b *domain.Board) error {
		return b.AddLabelToCard(cardID, labelID)
	})
}

func (s *boardService) RemoveLabelFromCard(ctx context.Context, boardID, cardID, labelID string) error {
	return s.mutate(ctx, "card.unlabel", boardID, func(b *domain.Board) error {
		return b.RemoveLabelFromCard(cardID, labelID)
	})
}

// mutate loads the board, applies fn and saves it in one transaction. When
// the save loses a version race the whole cycle runs again on a fresh load,
// so events recorded by a failed attempt die with its board instance. Only
// the committed instance is dispatched.
func (s *boardService) mutate(ctx context.Context, name, boardID string, fn func(*domain.Board) error) (err error) {
	ctx, uc := startUseCase(ctx, s.tracer, s.cfg.observer, name, map[string]any{"board_id": boardID})
	defer uc.finish(ctx, &err)

	var committed *domain.Board
	for attempt := 1; ; attempt++ {
		uc.fields["attempts"] = attempt
		committed, err = s.attempt(ctx, boardID, fn)
		if err == nil || !errors.Is(err, repository.ErrConflict) || attempt >= s.cfg.attempts {
			break
		}
		uc.span.AddEvent("version_conflict")
	}
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return boardNotFound(err, boardID)
	}
	dispatchAfterCommit(ctx, s.dispatcher, s.cfg.observer, uc, committed)
	return nil
}

func (s *boardService) attempt(ctx context.Context, boardID string, fn func(*domain.Board) error) (*domain.Board, error) {
	var board *domain.Board
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.cfg.boards(tx)
		b, err := repo.LoadWithDetails(ctx, boardID)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
		if b.Deleted() {
			err = repo.Delete(ctx, b)
		} else {
			err = repo.Save(ctx, b)
		}
		if err != nil {
			return err
		}
		board = b
		return nil
	})
	return board, err
}
