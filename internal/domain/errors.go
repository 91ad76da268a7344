package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError lists every rule a record or input failed.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}
