package planner

import (
	"errors"
	"fmt"
)

var (
	ErrLimitReached   = errors.New("credit limit reached")
	ErrInvalidRequest = errors.New("invalid plan request")
	ErrNotEligible    = errors.New("section not eligible")
	ErrTimeConflict   = errors.New("section conflicts with current registrations")
)

type LimitReachedError struct {
	HardLimit      int
	CurrentCredits int
	Target         int
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("credit limit reached: %d registered of %d allowed (target %d)",
		e.CurrentCredits, e.HardLimit, e.Target)
}

func (e *LimitReachedError) Is(target error) bool {
	return target == ErrLimitReached
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}
