package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neonboard/internal/domain"
)

// ValidateBoardImport checks a document before conversion and returns every
// problem found, not just the first.
func ValidateBoardImport(doc *BoardImport) []error {
	var errs []error

	if strings.TrimSpace(doc.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}

	labels := make(map[string]bool, len(doc.Labels))
	for i, l := range doc.Labels {
		field := fmt.Sprintf("labels[%d]", i)
		if strings.TrimSpace(l.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", field))
			continue
		}
		if labels[l.Name] {
			errs = append(errs, fmt.Errorf("%s.name %q is used by another label", field, l.Name))
		}
		labels[l.Name] = true
		if _, err := domain.ParseLabelColor(l.Color); err != nil {
			errs = append(errs, fmt.Errorf("%s.color: %w", field, err))
		}
	}

	for i, c := range doc.Columns {
		field := fmt.Sprintf("columns[%d]", i)
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", field))
		}
		for j, card := range c.Cards {
			errs = append(errs, validateCard(fmt.Sprintf("%s.cards[%d]", field, j), card, labels)...)
		}
	}

	return errs
}

func validateCard(field string, card CardImport, labels map[string]bool) []error {
	var errs []error
	if _, err := domain.NewCardContent(card.Title, card.Description); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", field, err))
	}
	seen := make(map[string]bool, len(card.Labels))
	for _, ref := range card.Labels {
		switch {
		case !labels[ref.Name]:
			errs = append(errs, fmt.Errorf("%s.labels: unknown label %q", field, ref.Name))
		case seen[ref.Name]:
			errs = append(errs, fmt.Errorf("%s.labels: label %q listed twice", field, ref.Name))
		}
		seen[ref.Name] = true
	}
	return errs
}
