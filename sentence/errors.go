package sentence

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation error")

	// ErrBounds is matched by every *BoundsError.
	ErrBounds = errors.New("out of bounds")
)

// ValidationError reports malformed construction or mutation arguments.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("'%s' %s: %v", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// BoundsError reports a position outside [0, Size).
type BoundsError struct {
	Index int
	Size  int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("position is not in [0,%d): %d", e.Size, e.Index)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrBounds
}
