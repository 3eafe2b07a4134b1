package locale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"£1.00", "1", false},
		{"£1,234.56", "1234.56", false},
		{" £25.99 ", "25.99", false},
		{"-£2.50", "-2.5", false},
		{"£-2.50", "-2.5", false},
		{"(£3.10)", "-3.1", false},
		{"£1,234,567.89", "1234567.89", false},
		{"£ 1.00", "1", false},
		{"12.00", "12", false},
		{"", "", true},
		{"£", "", true},
		{"n/a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2", "2", false},
		{"1,234.5678", "1234.5678", false},
		{"-12.30", "-12.3", false},
		{"12.30-", "-12.3", false},
		{".5", "0.5", false},
		{"£1.00", "", true},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseNumberKeepsPrecision(t *testing.T) {
	got, err := ParseNumber("0.10")
	require.NoError(t, err)
	sum := got.Add(got).Add(got)
	assert.Equal(t, "0.3", sum.String())
}

func TestParsePercentage(t *testing.T) {
	got, err := ParsePercentage("-4.25%")
	require.NoError(t, err)
	assert.Equal(t, "-4.25", got.String())
}

func TestParseNumberOrNull(t *testing.T) {
	assert.False(t, ParseNumberOrNull("").Valid)
	assert.False(t, ParseNumberOrNull("   ").Valid)
	assert.False(t, ParseNumberOrNull("n/a").Valid)

	got := ParseNumberOrNull("1,000.25")
	require.True(t, got.Valid)
	assert.Equal(t, "1000.25", got.Decimal.String())
}

func TestParseNumberOrDefault(t *testing.T) {
	def := decimal.NewFromInt(7)
	assert.True(t, def.Equal(ParseNumberOrDefault("", def)))
	assert.True(t, decimal.NewFromInt(3).Equal(ParseNumberOrDefault("3", def)))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"15/01/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"01/02/2024", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"01/02/2024 14:35", time.Date(2024, 2, 1, 14, 35, 0, 0, time.UTC)},
		{"\n 03 Mar 2021 ", time.Date(2021, 3, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}

	_, err := ParseDate("2024-01-15")
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a b c", Clean("\n  a\t b  c \r\n"))
}
