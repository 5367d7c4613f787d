package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// labelColors maps the label palette onto terminal colors.
var labelColors = map[domain.LabelColor]lipgloss.Color{
	domain.ColorRed:     ColorRed,
	domain.ColorOrange:  ColorHeader,
	domain.ColorYellow:  ColorYellow,
	domain.ColorLime:    lipgloss.Color("#b8bb26"),
	domain.ColorCyan:    ColorGreen,
	domain.ColorBlue:    ColorBlue,
	domain.ColorPurple:  ColorPurple,
	domain.ColorViolet:  lipgloss.Color("#b16286"),
	domain.ColorMagenta: lipgloss.Color("#d3869b"),
	domain.ColorPink:    lipgloss.Color("#f5a9b8"),
}

// LabelStyle returns the style a label of the given palette color renders with.
func LabelStyle(color string) lipgloss.Style {
	c, ok := labelColors[domain.LabelColor(color)]
	if !ok {
		return StyleDim
	}
	return lipgloss.NewStyle().Foreground(c)
}

// LabelChip renders a label name as a colored chip such as "● Bug".
func LabelChip(name, color string) string {
	return LabelStyle(color).Render("● " + name)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
