package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCLP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234567", "1234567"},
		{"1234567.50", "1234567.5"},
		{"1.234.567", "1234567"},
		{"$ 1.234.567", "1234567"},
		{"$1.234.567,50", "1234567.5"},
		{"1.234", "1234"},
		{"1.5", "1.5"},
		{"-$1.234", "-1234"},
		{" 990 ", "990"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCLP(tt.in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "$", "abc", "1,2,3", "12.34.5", "--5000", "-$-5000", "$-5000", "1e5", "+5000"} {
			_, err := ParseCLP(in)
			assert.ErrorIs(t, err, ErrInvalidAmount, in)
		}
	})
}

func TestFormatCLP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234567", "$1.234.567"},
		{"1234567.5", "$1.234.568"},
		{"0", "$0"},
		{"999", "$999"},
		{"1000", "$1.000"},
		{"-1234", "-$1.234"},
		{"-0.4", "$0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCLP(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, in := range []string{"$1.234.567", "$0", "$12", "-$45.000"} {
		d, err := ParseCLP(in)
		require.NoError(t, err)
		assert.Equal(t, in, FormatCLP(d))
	}
}
