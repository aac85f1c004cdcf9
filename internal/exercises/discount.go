package exercises

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinDiscountPercent is the smallest percentage that is actually applied.
const MinDiscountPercent = 20

// InvalidInputMessage is shown to the user when ParseDiscount fails.
const InvalidInputMessage = "Invalid input. Please enter numbers only."

// ErrInvalidInput is returned when a price or percentage is not a number.
var ErrInvalidInput = errors.New("invalid input: not a number")

// ApplyDiscount returns price reduced by percent, or price unchanged when
// percent is below MinDiscountPercent.
func ApplyDiscount(price, percent float64) float64 {
	if percent < MinDiscountPercent {
		return price
	}
	return price - (percent/100)*price
}

// ParseDiscount parses the two user inputs.
func ParseDiscount(price, percent string) (float64, float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return 0, 0, ErrInvalidInput
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(percent), 64)
	if err != nil {
		return 0, 0, ErrInvalidInput
	}
	return p, d, nil
}

// DescribeDiscount renders the user-facing result line.
func DescribeDiscount(price, percent float64) string {
	final := ApplyDiscount(price, percent)
	if percent >= MinDiscountPercent {
		return fmt.Sprintf("Final Price after %s%% discount: %s", num(percent), num(final))
	}
	return fmt.Sprintf("No discount applied. Final Price: %s", num(final))
}
