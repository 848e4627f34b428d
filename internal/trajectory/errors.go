package trajectory

import (
	"fmt"

	"github.com/lia-aerospace/trajsim/internal/atmosphere"
)

var (
	ErrInvalidInput   = atmosphere.ErrInvalidInput
	ErrOutOfRange     = atmosphere.ErrOutOfRange
	ErrDivisionByZero = atmosphere.ErrDivisionByZero
)

// StepError wraps a failure with the step that produced it.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.2f s): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
