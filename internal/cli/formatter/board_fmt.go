package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neonboard/internal/repository"
	"github.com/alexanderramin/neonboard/internal/service"
	"github.com/charmbracelet/lipgloss"
)

// ColumnWidth is the rendered width of one board column, borders included.
const ColumnWidth = 28

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1).
			Width(ColumnWidth - 2)
	focusedColumnStyle = columnStyle.BorderForeground(ColorHeader)
	cursorStyle        = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// Focus marks the selected card in a rendered board. Column and Card are
// positions; a negative Column renders nothing as focused.
type Focus struct {
	Column int
	Card   int
}

// NoFocus renders a board without a selection.
var NoFocus = Focus{Column: -1, Card: -1}

// FormatBoard renders the board as columns side by side, each listing its
// cards top to bottom.
func FormatBoard(d service.BoardDetails, focus Focus) string {
	title := fmt.Sprintf("%s  %s  %s", Bold(d.Name), TruncID(d.ID), Dim(Plural(d.CardCount(), "card")))
	if len(d.Columns) == 0 {
		return title + "\n\n" + Dim("No columns yet. Add one with `neonboard column add`.")
	}

	rendered := make([]string, 0, len(d.Columns))
	for i, col := range d.Columns {
		cardFocus := -1
		if i == focus.Column {
			cardFocus = focus.Card
		}
		rendered = append(rendered, renderColumn(col, i == focus.Column, cardFocus))
	}
	return title + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderColumn(col service.ColumnDetails, focused bool, cardFocus int) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(Truncate(col.Name, ColumnWidth-10)))
	b.WriteString(Dim(fmt.Sprintf(" (%d)", len(col.Cards))))
	b.WriteString("\n")
	b.WriteString(Dim(strings.Repeat("─", ColumnWidth-4)))

	if len(col.Cards) == 0 {
		b.WriteString("\n" + Dim("empty"))
	}
	for i, card := range col.Cards {
		b.WriteString("\n")
		line := Truncate(card.Title, ColumnWidth-6)
		if i == cardFocus {
			b.WriteString(cursorStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + StyleFg.Render(line))
		}
		if len(card.Labels) > 0 {
			chips := make([]string, 0, len(card.Labels))
			for _, l := range card.Labels {
				chips = append(chips, LabelChip(l.Name, l.Color))
			}
			b.WriteString("\n  " + strings.Join(chips, " "))
		}
	}

	style := columnStyle
	if focused {
		style = focusedColumnStyle
	}
	return style.Render(b.String())
}

// FormatCard renders the detail block of a single card.
func FormatCard(card service.CardDetails, column string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(card.Title), TruncID(card.ID))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("in %s at position %d, updated %s", column, card.Position, HumanTimestamp(card.UpdatedAt, now))))
	if card.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", StyleFg.Render(card.Description))
	}
	if len(card.Labels) > 0 {
		chips := make([]string, 0, len(card.Labels))
		for _, l := range card.Labels {
			chips = append(chips, LabelChip(l.Name, l.Color))
		}
		fmt.Fprintf(&b, "\n%s\n", strings.Join(chips, "  "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatLabels renders a board's label catalog.
func FormatLabels(labels []service.LabelDetails) string {
	if len(labels) == 0 {
		return Dim("No labels.")
	}
	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []string{TruncID(l.ID), LabelChip(l.Name, l.Color), Dim(l.Color)})
	}
	return RenderTable([]string{"ID", "LABEL", "COLOR"}, rows)
}

// FormatActivity renders activity entries as a table, newest first.
func FormatActivity(entries []repository.ActivityEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No activity recorded.")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			HumanTimestamp(e.OccurredAt, now),
			StyleBlue.Render(e.EventType),
			Truncate(e.Payload, 60),
		})
	}
	return RenderBox("Activity", RenderTable([]string{"WHEN", "EVENT", "DETAILS"}, rows))
}
