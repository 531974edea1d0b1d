package check

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNotebook is returned when a notebook is not in the catalog.
	ErrUnknownNotebook = errors.New("notebook not in expectation catalog")
	// ErrExpectationMismatch is matched by every MismatchError.
	ErrExpectationMismatch = errors.New("notebook errors do not match expectations")
)

// MismatchError reports a notebook whose errors differ from the catalog.
type MismatchError struct {
	Notebook   string
	Comparison Comparison
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %d of %d error positions did not match", e.Notebook, len(e.Comparison.Mismatches), e.Comparison.Positions)
}

// Is makes errors.Is(err, ErrExpectationMismatch) hold.
func (e *MismatchError) Is(target error) bool {
	return target == ErrExpectationMismatch
}
