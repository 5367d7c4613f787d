package service

import (
	"github.com/alexanderramin/neonboard/internal/db"
	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/repository"
	"go.opentelemetry.io/otel/trace"
)

// DefaultSaveAttempts bounds the load-mutate-save cycle of a board mutation.
const DefaultSaveAttempts = 3

// BoardRepoFactory binds a board repository to a connection or transaction.
type BoardRepoFactory func(conn db.DBTX) repository.BoardRepo

// ProjectRepoFactory binds a project repository to a connection or transaction.
type ProjectRepoFactory func(conn db.DBTX) repository.ProjectRepo

type serviceConfig struct {
	attempts      int
	domainOptions []domain.Option
	boards        BoardRepoFactory
	projects      ProjectRepoFactory
	observer      UseCaseObserver
	tracer        trace.TracerProvider
}

// Option configures the project and board services.
type Option func(*serviceConfig)

// WithSaveAttempts sets how many times a board mutation is attempted when
// the stored version moved underneath it. Values below 1 are ignored.
func WithSaveAttempts(n int) Option {
	return func(c *serviceConfig) {
		if n >= 1 {
			c.attempts = n
		}
	}
}

// WithDomainOptions passes clock and id overrides to every aggregate the
// services create or load.
func WithDomainOptions(opts ...domain.Option) Option {
	return func(c *serviceConfig) {
		c.domainOptions = append(c.domainOptions, opts...)
	}
}

func WithBoardRepoFactory(f BoardRepoFactory) Option {
	return func(c *serviceConfig) {
		if f != nil {
			c.boards = f
		}
	}
}

func WithProjectRepoFactory(f ProjectRepoFactory) Option {
	return func(c *serviceConfig) {
		if f != nil {
			c.projects = f
		}
	}
}

func WithObserver(o UseCaseObserver) Option {
	return func(c *serviceConfig) {
		c.observer = useCaseObserverOrNoop([]UseCaseObserver{o})
	}
}

// WithTracerProvider sets the provider spans are recorded with. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *serviceConfig) {
		c.tracer = tp
	}
}

func buildConfig(opts []Option) serviceConfig {
	c := serviceConfig{
		attempts: DefaultSaveAttempts,
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.boards == nil {
		domainOpts := c.domainOptions
		c.boards = func(conn db.DBTX) repository.BoardRepo {
			return repository.NewSQLiteBoardRepo(conn, domainOpts...)
		}
	}
	if c.projects == nil {
		domainOpts := c.domainOptions
		c.projects = func(conn db.DBTX) repository.ProjectRepo {
			return repository.NewSQLiteProjectRepo(conn, domainOpts...)
		}
	}
	return c
}
