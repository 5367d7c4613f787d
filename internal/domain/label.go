package domain

const maxLabelNameLength = 50

// Label is an entry of a board's label catalog.
type Label struct {
	id    string
	name  string
	color LabelColor
}

func (l Label) ID() string        { return l.id }
func (l Label) Name() string      { return l.name }
func (l Label) Color() LabelColor { return l.color }

func validateLabel(name, color string) (LabelColor, error) {
	if err := validateName("label", name, maxLabelNameLength); err != nil {
		return "", err
	}
	return ParseLabelColor(color)
}
