package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/scraper"
)

func TestDigitChallengeSelect(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		want   []string
	}{
		{"first three", []int{0, 1, 2}, []string{"5", "8", "2"}},
		{"second fourth fifth", []int{1, 3, 4}, []string{"8", "1", "4"}},
		{"first third fifth", []int{0, 2, 4}, []string{"5", "2", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseDigitChallenge(scraper.MustLoad(challengePage("tok", 5, tt.labels...)))
			require.NoError(t, err)
			assert.Equal(t, tt.labels, c.Positions())

			digits, err := c.Select("58214")
			require.NoError(t, err)
			assert.Equal(t, tt.want, digits)
		})
	}
}

func TestParseDigitChallenge_Errors(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no container", `<html><body><div class="other"></div></body></html>`},
		{"empty container", `<html><body><div class="secure-number-container"></div></body></html>`},
		{"four labels", challengePage("tok", 6, 0, 1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDigitChallenge(scraper.MustLoad(tt.page))
			assert.ErrorIs(t, err, common.ErrUnrecognizedDocument)
		})
	}
}

func TestDigitChallengeSelect_SecretTooShort(t *testing.T) {
	c := DigitChallenge{Boxes: []Box{Filler, Label, Filler, Label, Label}}
	_, err := c.Select("123")
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestDigitChallengeSelect_NonASCIIDigits(t *testing.T) {
	c := DigitChallenge{Boxes: []Box{Label, Label, Label}}
	_, err := c.Select("١٢٣")
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}
