package entity

import (
	"math"
	"testing"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsFromFloat(t *testing.T) {
	testCases := []struct {
		input    float64
		expected int64
	}{
		{2, 200},
		{0.01, 1},
		{3.5, 350},
		{500, 50000},
		{19.99, 1999},
		{0.1 + 0.2, 30},
	}

	for _, tc := range testCases {
		cents, err := CentsFromFloat(tc.input)
		require.NoError(t, err, "input %v", tc.input)
		assert.Equal(t, tc.expected, cents, "input %v", tc.input)
	}

	_, err := CentsFromFloat(1.234)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = CentsFromFloat(-1)
	assert.ErrorIs(t, err, errs.ErrNegativeAmount)

	_, err = CentsFromFloat(math.NaN())
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = CentsFromFloat(math.Inf(1))
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = CentsFromFloat(1e17)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestAmountInCentsToString(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{10000, "100.00"},
		{1, "0.01"},
		{10, "0.10"},
		{0, "0.00"},
		{50800, "508.00"},
		{-250, "-2.50"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, AmountInCentsToString(tc.cents))
	}
}

func TestAmountInCentsToDisplay(t *testing.T) {
	assert.Equal(t, "10", AmountInCentsToDisplay(1000))
	assert.Equal(t, "2.50", AmountInCentsToDisplay(250))
	assert.Equal(t, "0", AmountInCentsToDisplay(0))
}
