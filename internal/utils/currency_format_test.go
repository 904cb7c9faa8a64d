package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		expected string
	}{
		{"zero", "0", "R$ 0,00"},
		{"small", "7.5", "R$ 7,50"},
		{"thousands grouping", "1234.5", "R$ 1.234,50"},
		{"millions grouping", "1234567.89", "R$ 1.234.567,89"},
		{"rounds half up", "10.005", "R$ 10,01"},
		{"negative", "-99.9", "R$ -99,90"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, FormatBRL(amount))
		})
	}
}

func TestFormatWithPrecision(t *testing.T) {
	amount := decimal.RequireFromString("12.3456")
	assert.Equal(t, "12.35", FormatWithPrecision(amount, 2))
	assert.Equal(t, "12", FormatWithPrecision(amount, 0))
}
