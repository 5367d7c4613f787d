package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDoc() *BoardImport {
	return &BoardImport{
		Name: "Chores",
		Labels: []LabelImport{
			{Name: "urgent", Color: "red"},
			{Name: "later", Color: "blue"},
		},
		Columns: []ColumnImport{
			{Name: "Todo", Cards: []CardImport{
				{Title: "Dishes", Labels: []LabelRef{{Name: "urgent"}}},
				{Title: "Laundry", Description: "whites first"},
			}},
			{Name: "Done"},
		},
	}
}

func TestValidateBoardImport_Valid(t *testing.T) {
	assert.Empty(t, ValidateBoardImport(validDoc()))
}

func TestValidateBoardImport_Empty(t *testing.T) {
	errs := ValidateBoardImport(&BoardImport{})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "name is required")
}

func TestValidateBoardImport_CollectsEveryProblem(t *testing.T) {
	doc := validDoc()
	doc.Name = " "
	doc.Labels = append(doc.Labels,
		LabelImport{Name: "urgent", Color: "green"},
		LabelImport{Name: "odd", Color: "chartreuse"},
	)
	doc.Columns[1].Name = ""
	doc.Columns[0].Cards[0].Labels = append(doc.Columns[0].Cards[0].Labels, LabelRef{Name: "urgent"}, LabelRef{Name: "missing"})
	doc.Columns[0].Cards[1].Title = ""

	msgs := errorStrings(ValidateBoardImport(doc))

	// "green" is outside the palette, so labels[2] fails twice.
	assert.Len(t, msgs, 8)
	assertAnyContains(t, msgs, "name is required")
	assertAnyContains(t, msgs, `labels[2].name "urgent" is used by another label`)
	assertAnyContains(t, msgs, "labels[2].color")
	assertAnyContains(t, msgs, "labels[3].color")
	assertAnyContains(t, msgs, "columns[1].name is required")
	assertAnyContains(t, msgs, `label "urgent" listed twice`)
	assertAnyContains(t, msgs, `unknown label "missing"`)
	assertAnyContains(t, msgs, "columns[0].cards[1]")
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

func assertAnyContains(t *testing.T, msgs []string, want string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, want) {
			return
		}
	}
	t.Errorf("no error contains %q in %v", want, msgs)
}
