package domain

// LabelColor is one of the fixed palette colors a label may use.
type LabelColor string

const (
	ColorRed     LabelColor = "red"
	ColorOrange  LabelColor = "orange"
	ColorYellow  LabelColor = "yellow"
	ColorLime    LabelColor = "lime"
	ColorCyan    LabelColor = "cyan"
	ColorBlue    LabelColor = "blue"
	ColorPurple  LabelColor = "purple"
	ColorViolet  LabelColor = "violet"
	ColorMagenta LabelColor = "magenta"
	ColorPink    LabelColor = "pink"
)

var labelPalette = []LabelColor{
	ColorRed, ColorOrange, ColorYellow, ColorLime, ColorCyan,
	ColorBlue, ColorPurple, ColorViolet, ColorMagenta, ColorPink,
}

// LabelColors returns the palette in display order.
func LabelColors() []LabelColor {
	out := make([]LabelColor, len(labelPalette))
	copy(out, labelPalette)
	return out
}

// IsValid reports whether c is part of the palette. Matching is exact.
func (c LabelColor) IsValid() bool {
	for _, p := range labelPalette {
		if p == c {
			return true
		}
	}
	return false
}

// ParseLabelColor converts s to a palette color.
func ParseLabelColor(s string) (LabelColor, error) {
	if s == "" {
		return "", validationf("label color cannot be empty")
	}
	c := LabelColor(s)
	if !c.IsValid() {
		return "", validationf("%q is not a valid label color", s)
	}
	return c, nil
}
