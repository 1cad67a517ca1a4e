// Package id issues identifiers for graded attempts.
package id

import "github.com/google/uuid"

// NewAttemptID returns a random UUID grouping the submission rows of one
// grading call.
func NewAttemptID() string {
	return uuid.NewString()
}

// Valid reports whether s parses as an attempt id.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
