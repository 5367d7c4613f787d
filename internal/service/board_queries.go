package service

import (
	"context"

	"github.com/alexanderramin/neonboard/internal/db"
	"github.com/alexanderramin/neonboard/internal/repository"
	"golang.org/x/sync/singleflight"
)

type boardQueries struct {
	conn     db.DBTX
	cfg      serviceConfig
	activity repository.ActivityRepo
	cache    *BoardCache
	loads    singleflight.Group
}

// NewBoardQueries serves reads from conn, which must not be a transaction.
// Concurrent cache misses for the same board share one load.
func NewBoardQueries(conn db.DBTX, cache *BoardCache, opts ...Option) BoardQueries {
	return &boardQueries{
		conn:     conn,
		cfg:      buildConfig(opts),
		activity: repository.NewSQLiteActivityRepo(conn),
		cache:    cache,
	}
}

func (q *boardQueries) GetBoard(ctx context.Context, boardID string) (BoardDetails, error) {
	if d, ok := q.cache.Get(boardID); ok {
		return d, nil
	}
	v, err, _ := q.loads.Do(boardID, func() (any, error) {
		tok := q.cache.Token(boardID)
		b, err := q.cfg.boards(q.conn).LoadWithDetails(ctx, boardID)
		if err != nil {
			return nil, boardNotFound(err, boardID)
		}
		d := NewBoardDetails(b)
		q.cache.SetIfCurrent(d, tok)
		return d, nil
	})
	if err != nil {
		return BoardDetails{}, err
	}
	return v.(BoardDetails), nil
}

func (q *boardQueries) ListBoards(ctx context.Context, projectID string) ([]repository.BoardSummary, error) {
	if _, err := loadProject(ctx, q.cfg.projects(q.conn), projectID); err != nil {
		return nil, err
	}
	return q.cfg.boards(q.conn).ListByProject(ctx, projectID)
}

// Activity returns the most recent limit entries of the board, newest
// first. A limit of zero or less returns everything.
func (q *boardQueries) Activity(ctx context.Context, boardID string, limit int) ([]repository.ActivityEntry, error) {
	return q.activity.ListByBoard(ctx, boardID, limit)
}
