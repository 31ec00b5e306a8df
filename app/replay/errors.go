package replay

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrInvalidStep = errors.New("invalid step")
	ErrExpectation = errors.New("expectation failed")
)

// StepError is returned by Runner when a step cannot be run or its
// expectation does not hold.
type StepError struct {
	Index int // step index in the scenario, 0-based
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step #%d [%s]: %s", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func invalidStepf(format string, args ...any) error {
	return fmt.Errorf("%w, %s", ErrInvalidStep, fmt.Sprintf(format, args...))
}

func expectationf(format string, args ...any) error {
	return fmt.Errorf("%w, %s", ErrExpectation, fmt.Sprintf(format, args...))
}
