package atmosphere

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for atmosphere and flight-helper evaluation.
var (
	// ErrInvalidInput indicates a non-numeric value or a negative height where
	// the physics requires a non-negative one.
	ErrInvalidInput = errors.New("atmosphere: invalid input")

	// ErrOutOfRange indicates an altitude outside the modeled band.
	ErrOutOfRange = errors.New("atmosphere: altitude out of modeled range")

	// ErrDivisionByZero indicates a ratio whose denominator is zero.
	ErrDivisionByZero = errors.New("atmosphere: division by zero")
)

func checkFinite(name string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: non-numeric argument %v: %w", name, v, ErrInvalidInput)
		}
	}
	return nil
}
