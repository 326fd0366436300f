package question

import (
	"errors"
	"fmt"
)

// Difficulty bounds accepted on insert.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

var (
	// ErrNotFound is returned when an operation targets an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is the sentinel wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError names the offending insert field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Question is the record delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Answer     string `json:"answer"`
	CategoryID int64  `json:"category_id"`
	Difficulty int    `json:"difficulty"`
}

// Category groups questions under a display name.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries client-supplied fields for Insert.
type NewQuestion struct {
	Text       string
	Answer     string
	CategoryID int64
	Difficulty int
}
