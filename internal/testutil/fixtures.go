package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/neonboard/internal/domain"
)

var fixtureCounter atomic.Int64

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("invalid fixture: %v", err))
	}
}

// NewTestProject returns a project with no pending events.
func NewTestProject(name string, opts ...domain.Option) *domain.Project {
	p, err := domain.CreateProject(name, "", opts...)
	must(err)
	p.ClearEvents()
	return p
}

// Board options
type BoardOption func(*boardPlan)

type boardPlan struct {
	name    string
	columns []string
	cards   map[string][]string
	labels  [][2]string
	opts    []domain.Option
}

// WithColumns adds columns in the given order.
func WithColumns(names ...string) BoardOption {
	return func(s *boardPlan) {
		s.columns = append(s.columns, names...)
	}
}

// WithCards appends cards to the named column, which must also be given
// through WithColumns.
func WithCards(column string, titles ...string) BoardOption {
	return func(s *boardPlan) {
		s.cards[column] = append(s.cards[column], titles...)
	}
}

func WithLabel(name, color string) BoardOption {
	return func(s *boardPlan) {
		s.labels = append(s.labels, [2]string{name, color})
	}
}

func WithBoardName(name string) BoardOption {
	return func(s *boardPlan) {
		s.name = name
	}
}

func WithDomainOptions(opts ...domain.Option) BoardOption {
	return func(s *boardPlan) {
		s.opts = append(s.opts, opts...)
	}
}

// NewTestBoard builds a board for projectID with no pending events.
func NewTestBoard(projectID string, opts ...BoardOption) *domain.Board {
	plan := &boardPlan{
		name:  fmt.Sprintf("Board %d", fixtureCounter.Add(1)),
		cards: map[string][]string{},
	}
	for _, opt := range opts {
		opt(plan)
	}

	b, err := domain.CreateBoard(plan.name, projectID, plan.opts...)
	must(err)
	ids := map[string]string{}
	for _, name := range plan.columns {
		id, err := b.AddColumn(name)
		must(err)
		ids[name] = id
	}
	for _, name := range plan.columns {
		for _, title := range plan.cards[name] {
			_, err := b.AddCard(ids[name], title, "")
			must(err)
		}
	}
	for _, l := range plan.labels {
		_, err := b.AddLabel(l[0], l[1])
		must(err)
	}
	b.ClearEvents()
	return b
}

// ColumnID returns the id of the column named name, or "".
func ColumnID(b *domain.Board, name string) string {
	for _, c := range b.Columns() {
		if c.Name() == name {
			return c.ID()
		}
	}
	return ""
}

// CardID returns the id of the first card titled title, or "".
func CardID(b *domain.Board, title string) string {
	for _, c := range b.Cards() {
		if c.Title() == title {
			return c.ID()
		}
	}
	return ""
}

// LabelID returns the id of the label named name, or "".
func LabelID(b *domain.Board, name string) string {
	for _, l := range b.Labels() {
		if l.Name() == name {
			return l.ID()
		}
	}
	return ""
}

// CardTitles returns the titles of a column's cards in position order.
func CardTitles(b *domain.Board, columnID string) []string {
	var out []string
	for _, c := range b.CardsInColumn(columnID) {
		out = append(out, c.Title())
	}
	return out
}
