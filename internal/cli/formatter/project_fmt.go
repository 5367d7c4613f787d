package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/repository"
)

// FormatProjectList renders projects as a table inside a bordered box.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	headers := []string{"ID", "NAME", "DESCRIPTION", "CREATED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		desc := Dim("--")
		if strings.TrimSpace(p.Description()) != "" {
			desc = Truncate(p.Description(), 40)
		}
		rows = append(rows, []string{
			TruncID(p.ID()),
			Bold(p.Name()),
			desc,
			HumanDate(p.CreatedAt(), now),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProject renders one project with its boards.
func FormatProject(p *domain.Project, boards []repository.BoardSummary, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name()), TruncID(p.ID()))
	if p.Description() != "" {
		fmt.Fprintf(&b, "%s\n", StyleFg.Render(p.Description()))
	}
	fmt.Fprintf(&b, "%s\n\n", Dim("created "+HumanDate(p.CreatedAt(), now)+", updated "+HumanTimestamp(p.UpdatedAt(), now)))

	if len(boards) == 0 {
		b.WriteString(Dim("No boards yet."))
	} else {
		b.WriteString(boardTable(boards, now))
	}
	return RenderBox("Project", strings.TrimRight(b.String(), "\n"))
}

// FormatBoardList renders the board summaries of a project.
func FormatBoardList(boards []repository.BoardSummary, now time.Time) string {
	return RenderBox("Boards", boardTable(boards, now))
}

func boardTable(boards []repository.BoardSummary, now time.Time) string {
	headers := []string{"ID", "NAME", "COLUMNS", "CARDS", "UPDATED"}
	rows := make([][]string, 0, len(boards))
	for _, s := range boards {
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Name),
			strconv.Itoa(s.ColumnCount),
			strconv.Itoa(s.CardCount),
			HumanTimestamp(s.UpdatedAt, now),
		})
	}
	return RenderTable(headers, rows)
}
