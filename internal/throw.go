package internal

import (
	"fmt"

	"github.com/pkg/errors"
)

// Threading errors up and down all the steps of validation, triangulation and
// skeleton construction would add a ton of complexity to the code. Instead, we
// use panics, and the public API recovers to convert to an error.

// The polygon cannot be processed as given: too few points, a zero length edge,
// zero area, or a self intersection. The engine never tries to repair it.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: " + e.Reason
}

// The triangulation came out inconsistent under the working epsilon. Retrying
// with the same input will give the same result.
type NumericInstabilityError struct {
	Reason string
}

func (e *NumericInstabilityError) Error() string {
	return "numeric instability: " + e.Reason
}

func IsDegenerate(err error) bool {
	var target *DegenerateInputError
	return errors.As(err, &target)
}

func IsNumericInstability(err error) bool {
	var target *NumericInstabilityError
	return errors.As(err, &target)
}

func degeneratef(format string, args ...interface{}) {
	panic(&DegenerateInputError{Reason: fmt.Sprintf(format, args...)})
}

func unstablef(format string, args ...interface{}) {
	panic(&NumericInstabilityError{Reason: fmt.Sprintf(format, args...)})
}

// For broken invariants that are neither the caller's fault nor a numeric
// problem. Wrapped so that runtime errors are never mistaken for it.
type engineError struct {
	err error
}

// Panic with an engine error.
func fatalf(format string, args ...interface{}) {
	panic(engineError{errors.Errorf(format, args...)})
}

// Convert a recovered panic value into an error. Anything that isn't one of
// our errors is a real bug, so it is re-panicked.
func HandlePanicRecover(r interface{}) error {
	if r == nil {
		return nil
	}
	switch err := r.(type) {
	case *DegenerateInputError:
		return err
	case *NumericInstabilityError:
		return err
	case engineError:
		return err.err
	}
	panic(r)
}
