package trends

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySeries    = errors.New("series has no points")
	ErrLengthMismatch = errors.New("years and counts differ in length")
	ErrUnorderedYears = errors.New("years are not strictly ascending")
	ErrNonFinite      = errors.New("fit produced a non-finite coefficient")
)

// FitError reports why the trend for a single tag could not be modeled.
type FitError struct {
	Tag string
	Err error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("fitting trend for tag %q: %v", e.Tag, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}
