package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/neonboard/internal/db"
	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/repository"
	"go.opentelemetry.io/otel/trace"
)

type projectService struct {
	uow        db.UnitOfWork
	dispatcher EventDispatcher
	cfg        serviceConfig
	tracer     trace.Tracer
}

func NewProjectService(uow db.UnitOfWork, dispatcher EventDispatcher, opts ...Option) ProjectService {
	cfg := buildConfig(opts)
	return &projectService{
		uow:        uow,
		dispatcher: dispatcher,
		cfg:        cfg,
		tracer:     tracerOrDefault(cfg.tracer),
	}
}

func (s *projectService) Create(ctx context.Context, name, description string) (project *domain.Project, err error) {
	ctx, uc := startUseCase(ctx, s.tracer, s.cfg.observer, "project.create", nil)
	defer uc.finish(ctx, &err)

	project, err = domain.CreateProject(name, description, s.cfg.domainOptions...)
	if err != nil {
		return nil, err
	}
	uc.fields["project_id"] = project.ID()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.cfg.projects(tx).Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	s.dispatch(ctx, uc, project)
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	var p *domain.Project
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		p, err = loadProject(ctx, s.cfg.projects(tx), id)
		return err
	})
	return p, err
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		projects, err = s.cfg.projects(tx).List(ctx)
		return err
	})
	return projects, err
}

func (s *projectService) Update(ctx context.Context, id, name, description string) (project *domain.Project, err error) {
	ctx, uc := startUseCase(ctx, s.tracer, s.cfg.observer, "project.update", map[string]any{"project_id": id})
	defer uc.finish(ctx, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.cfg.projects(tx)
		p, err := loadProject(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := p.Update(name, description); err != nil {
			return err
		}
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.dispatch(ctx, uc, project)
	return project, nil
}

// Delete removes the project together with all of its boards.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	ctx, uc := startUseCase(ctx, s.tracer, s.cfg.observer, "project.delete", map[string]any{"project_id": id})
	defer uc.finish(ctx, &err)

	var project *domain.Project
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.cfg.projects(tx)
		p, err := loadProject(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := p.Delete(); err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return err
	}
	s.dispatch(ctx, uc, project)
	return nil
}

func (s *projectService) dispatch(ctx context.Context, uc *useCase, sources ...domain.EventSource) {
	dispatchAfterCommit(ctx, s.dispatcher, s.cfg.observer, uc, sources...)
}

func loadProject(ctx context.Context, repo repository.ProjectRepo, id string) (*domain.Project, error) {
	p, err := repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewError(domain.KindNotFound, "project %s not found", id)
	}
	return p, err
}
