package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/service"
)

type candidate struct {
	id   string
	name string
}

// resolveAmong matches input against candidates, trying in order:
//  1. exact id
//  2. case-insensitive name, when unique
//  3. id prefix, when unique
func resolveAmong(kind, input string, candidates []candidate) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, c := range candidates {
		if c.id == input {
			return c.id, nil
		}
	}

	var byName []string
	for _, c := range candidates {
		if c.name != "" && strings.EqualFold(c.name, input) {
			byName = append(byName, c.id)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}

	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c.id, input) {
			matches = append(matches, c.id)
		}
	}

	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	case len(byName) > 1:
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches), use an ID", kind, input, len(byName))
	default:
		return "", domain.NewError(domain.KindNotFound, "%s not found: %q", kind, input)
	}
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	candidates := make([]candidate, 0, len(projects))
	for _, p := range projects {
		candidates = append(candidates, candidate{id: p.ID(), name: p.Name()})
	}
	return resolveAmong("project", input, candidates)
}

// resolveBoardID searches the boards of every project.
func resolveBoardID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	var candidates []candidate
	for _, p := range projects {
		boards, err := app.Queries.ListBoards(ctx, p.ID())
		if err != nil {
			return "", err
		}
		for _, b := range boards {
			candidates = append(candidates, candidate{id: b.ID, name: b.Name})
		}
	}
	return resolveAmong("board", input, candidates)
}

// loadBoard resolves input and returns the board's current details.
func loadBoard(ctx context.Context, app *App, input string) (service.BoardDetails, error) {
	id, err := resolveBoardID(ctx, app, input)
	if err != nil {
		return service.BoardDetails{}, err
	}
	return app.Queries.GetBoard(ctx, id)
}

func resolveColumnID(d service.BoardDetails, input string) (string, error) {
	candidates := make([]candidate, 0, len(d.Columns))
	for _, c := range d.Columns {
		candidates = append(candidates, candidate{id: c.ID, name: c.Name})
	}
	return resolveAmong("column", input, candidates)
}

func resolveCardID(d service.BoardDetails, input string) (string, error) {
	var candidates []candidate
	for _, col := range d.Columns {
		for _, c := range col.Cards {
			candidates = append(candidates, candidate{id: c.ID, name: c.Title})
		}
	}
	return resolveAmong("card", input, candidates)
}

func resolveLabelID(d service.BoardDetails, input string) (string, error) {
	candidates := make([]candidate, 0, len(d.Labels))
	for _, l := range d.Labels {
		candidates = append(candidates, candidate{id: l.ID, name: l.Name})
	}
	return resolveAmong("label", input, candidates)
}

// findCard returns the card with id and the name of its column.
func findCard(d service.BoardDetails, id string) (service.CardDetails, string, bool) {
	for _, col := range d.Columns {
		for _, c := range col.Cards {
			if c.ID == id {
				return c, col.Name, true
			}
		}
	}
	return service.CardDetails{}, "", false
}
