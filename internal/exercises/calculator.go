// Package exercises holds the small introductory programs exposed as
// irislab subcommands: a calculator, a discount check, an upper-casing file
// copy and a devices demo.
package exercises

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrDivisionByZero   = errors.New("division by zero is not allowed")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Calculate applies op (one of + - * /) to a and b.
func Calculate(a, b float64, op string) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*", "x":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperation, op)
	}
}

// FormatCalculation renders "a op b = result".
func FormatCalculation(a, b float64, op string, result float64) string {
	return fmt.Sprintf("%s %s %s = %s", num(a), op, num(b), num(result))
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
