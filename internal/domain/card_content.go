package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	maxCardTitleLength       = 200
	maxCardDescriptionLength = 5000
)

// CardContent is the immutable title/description pair of a card. Updating a
// card replaces its CardContent wholesale.
type CardContent struct {
	title       string
	description string
}

// NewCardContent validates title and description.
func NewCardContent(title, description string) (CardContent, error) {
	if strings.TrimSpace(title) == "" {
		return CardContent{}, validationf("card title cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxCardTitleLength {
		return CardContent{}, validationf("card title cannot exceed %d characters", maxCardTitleLength)
	}
	if utf8.RuneCountInString(description) > maxCardDescriptionLength {
		return CardContent{}, validationf("card description cannot exceed %d characters", maxCardDescriptionLength)
	}
	return CardContent{title: title, description: description}, nil
}

func (c CardContent) Title() string       { return c.title }
func (c CardContent) Description() string { return c.description }

// Equal reports value equality.
func (c CardContent) Equal(other CardContent) bool {
	return c == other
}
