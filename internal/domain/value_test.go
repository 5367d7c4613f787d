package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	p, err := NewPosition(3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Value())

	q, err := NewPosition(3)
	require.NoError(t, err)
	assert.Equal(t, p, q)

	_, err = NewPosition(-1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestNewCardContent(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		wantErr     string
	}{
		{"valid", "Ship it", "soon", ""},
		{"empty description", "Ship it", "", ""},
		{"blank title", "   ", "", "title cannot be empty"},
		{"title at limit", strings.Repeat("ü", 200), "", ""},
		{"title too long", strings.Repeat("t", 201), "", "title cannot exceed 200"},
		{"description at limit", "t", strings.Repeat("d", 5000), ""},
		{"description too long", "t", strings.Repeat("d", 5001), "description cannot exceed 5000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCardContent(tc.title, tc.description)
			if tc.wantErr != "" {
				require.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.title, c.Title())
			assert.Equal(t, tc.description, c.Description())
		})
	}
}

func TestCardContent_Equal(t *testing.T) {
	a, _ := NewCardContent("t", "d")
	b, _ := NewCardContent("t", "d")
	c, _ := NewCardContent("t", "other")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestParseLabelColor(t *testing.T) {
	for _, c := range LabelColors() {
		got, err := ParseLabelColor(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	assert.Len(t, LabelColors(), 10)

	_, err := ParseLabelColor("")
	require.ErrorIs(t, err, ErrValidation)
	_, err = ParseLabelColor("RED")
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `"RED"`)
}

func TestLabelColors_ReturnsCopy(t *testing.T) {
	colors := LabelColors()
	colors[0] = "teal"
	assert.Equal(t, ColorRed, LabelColors()[0])
}

func TestError_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", notFoundf("card %s not found", "c1"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)

	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, KindNotFound, de.Kind)
	assert.Equal(t, "card c1 not found", de.Message)
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "550e8400", DisplayID("550e8400-e29b-41d4-a716-446655440000"))
	assert.Equal(t, "abc", DisplayID("abc"))
}
