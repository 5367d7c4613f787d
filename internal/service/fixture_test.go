package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/neonboard/internal/db"
	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/events"
	"github.com/alexanderramin/neonboard/internal/repository"
	"github.com/alexanderramin/neonboard/internal/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// recorder is a subscriber that remembers every event it receives.
type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Handle(_ context.Context, e domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	db         *sql.DB
	uow        db.UnitOfWork
	dispatcher *events.Dispatcher
	rec        *recorder
	cache      *BoardCache
	spans      *tracetest.SpanRecorder
	projects   ProjectService
	boards     BoardService
	queries    BoardQueries
}

// newFixture wires the services over an in-memory database the way main
// does, with a recording subscriber and a span recorder attached.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &fixture{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		dispatcher: events.NewDispatcher(nil),
		rec:        &recorder{},
		cache:      NewBoardCache(time.Minute),
		spans:      tracetest.NewSpanRecorder(),
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(f.spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f.dispatcher.Subscribe("cache", NewCacheInvalidator(f.cache))
	f.dispatcher.Subscribe("activity", NewActivityRecorder(repository.NewSQLiteActivityRepo(database)))
	f.dispatcher.Subscribe("recorder", f.rec)

	all := append([]Option{
		WithDomainOptions(
			domain.WithClock(testutil.FixedClock(testNow)),
			domain.WithIDGenerator(testutil.SequentialIDs("id")),
		),
		WithTracerProvider(tp),
	}, opts...)
	f.projects = NewProjectService(f.uow, f.dispatcher, all...)
	f.boards = NewBoardService(f.uow, f.dispatcher, all...)
	f.queries = NewBoardQueries(database, f.cache, all...)
	return f
}

func (f *fixture) mustProject(t *testing.T, name string) *domain.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), name, "")
	if err != nil {
		t.Fatalf("creating project: %v", err)
	}
	return p
}

func (f *fixture) mustBoard(t *testing.T, projectID, name string, columns ...string) (*domain.Board, []string) {
	t.Helper()
	ctx := context.Background()
	b, err := f.boards.CreateBoard(ctx, projectID, name)
	if err != nil {
		t.Fatalf("creating board: %v", err)
	}
	ids := make([]string, 0, len(columns))
	for _, c := range columns {
		id, err := f.boards.AddColumn(ctx, b.ID(), c)
		if err != nil {
			t.Fatalf("adding column %q: %v", c, err)
		}
		ids = append(ids, id)
	}
	return b, ids
}

func (f *fixture) load(t *testing.T, boardID string) *domain.Board {
	t.Helper()
	b, err := repository.NewSQLiteBoardRepo(f.db).LoadWithDetails(context.Background(), boardID)
	if err != nil {
		t.Fatalf("loading board: %v", err)
	}
	return b
}

// contendedBoards simulates a writer that commits between our load and our
// save for the first n saves: it bumps the stored version inside the
// transaction so the versioned update matches nothing.
type contendedBoards struct {
	repository.BoardRepo
	conn  db.DBTX
	state *contention
}

type contention struct {
	mu        sync.Mutex
	remaining int
	saves     int
}

func (c contendedBoards) Save(ctx context.Context, b *domain.Board) error {
	c.state.mu.Lock()
	c.state.saves++
	bump := c.state.remaining > 0
	if bump {
		c.state.remaining--
	}
	c.state.mu.Unlock()
	if bump {
		if _, err := c.conn.ExecContext(ctx, `UPDATE boards SET version = version + 1 WHERE id = ?`, b.ID()); err != nil {
			return err
		}
	}
	return c.BoardRepo.Save(ctx, b)
}

func contendedFactory(state *contention, opts ...domain.Option) BoardRepoFactory {
	return func(conn db.DBTX) repository.BoardRepo {
		return contendedBoards{
			BoardRepo: repository.NewSQLiteBoardRepo(conn, opts...),
			conn:      conn,
			state:     state,
		}
	}
}
