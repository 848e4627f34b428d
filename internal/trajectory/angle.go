package trajectory

import (
	"fmt"
	"math"
)

// Quadrant tags the velocity direction by the signs of its components.
type Quadrant int

const (
	QuadrantUndefined Quadrant = iota // vx == 0
	QuadrantI                         // vx > 0, vy >= 0
	QuadrantII                        // vx < 0, vy >= 0
	QuadrantIII                       // vx < 0, vy < 0
	QuadrantIV                        // vx > 0, vy < 0
)

func QuadrantOf(vx, vy float64) Quadrant {
	switch {
	case vx > 0 && vy >= 0:
		return QuadrantI
	case vx < 0 && vy >= 0:
		return QuadrantII
	case vx < 0 && vy < 0:
		return QuadrantIII
	case vx > 0 && vy < 0:
		return QuadrantIV
	default:
		return QuadrantUndefined
	}
}

// FlightPathAngle returns the angle of the velocity vector above the +x axis
// in (-pi, pi]. It fails with ErrDivisionByZero when vx is zero.
func FlightPathAngle(vx, vy float64) (float64, error) {
	if math.IsNaN(vx) || math.IsNaN(vy) {
		return 0, fmt.Errorf("flight path angle: vx=%g vy=%g: %w", vx, vy, ErrInvalidInput)
	}

	q := QuadrantOf(vx, vy)
	if q == QuadrantUndefined {
		return 0, fmt.Errorf("flight path angle: vx=0: %w", ErrDivisionByZero)
	}

	base := math.Atan(vy / vx)
	switch q {
	case QuadrantII:
		return base + math.Pi, nil
	case QuadrantIII:
		return base - math.Pi, nil
	default:
		return base, nil
	}
}
