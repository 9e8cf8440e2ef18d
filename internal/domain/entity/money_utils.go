package entity

import (
	"fmt"
	"math"
	"strconv"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// maxCents bounds amounts so that float conversion stays exact
const maxCents = int64(1) << 53

// CentsFromFloat converts a JSON number into cents, rejecting values with
// more than two decimal places
func CentsFromFloat(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: not a finite number", errs.ErrInvalidAmount)
	}
	if amount < 0 {
		return 0, errs.ErrNegativeAmount
	}

	scaled := amount * 100
	cents := math.Round(scaled)
	if math.Abs(scaled-cents) > 1e-6 {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if cents > float64(maxCents) {
		return 0, fmt.Errorf("%w: amount too large", errs.ErrInvalidAmount)
	}

	return int64(cents), nil
}

// AmountInCentsToString converts integer amount to a decimal string
// For example:
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
func AmountInCentsToString(amountInCents int64) string {
	isNegative := amountInCents < 0
	if isNegative {
		amountInCents = -amountInCents
	}

	amountStr := strconv.FormatInt(amountInCents, 10)

	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}

// AmountInCentsToDisplay renders whole amounts without a fraction ("10")
// and everything else with two decimals ("10.50"), the way operator
// messages show rupee values
func AmountInCentsToDisplay(amountInCents int64) string {
	if amountInCents%100 == 0 {
		return strconv.FormatInt(amountInCents/100, 10)
	}
	return AmountInCentsToString(amountInCents)
}
