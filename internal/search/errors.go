package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/cinesearch/pkg/omdb"
)

// ErrUnexpected marks failures that are neither invalid input nor an API error.
var ErrUnexpected = errors.New("unexpected error")

// Op names the user-facing operation an error came from.
type Op int

const (
	OpSearch Op = iota
	OpSuggestions
	OpDetails
)

var unexpectedMessages = map[Op]string{
	OpSearch:      "An unexpected error occurred while searching for movies.",
	OpSuggestions: "Failed to load suggested movies",
	OpDetails:     "An unexpected error occurred while fetching movie details.",
}

// Classify returns err unchanged when it is invalid input, an API error or
// a cancellation, and wraps anything else with ErrUnexpected.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *omdb.APIError
	switch {
	case errors.Is(err, omdb.ErrInvalidInput),
		errors.As(err, &apiErr),
		errors.Is(err, context.Canceled),
		errors.Is(err, ErrUnexpected):
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnexpected, err)
}

// IsUnexpected reports whether err falls outside the known taxonomy.
func IsUnexpected(err error) bool {
	return errors.Is(Classify(err), ErrUnexpected)
}

// Describe returns the message shown to the user for err.
func Describe(err error, op Op) string {
	if err == nil {
		return ""
	}
	if IsUnexpected(err) {
		return unexpectedMessages[op]
	}
	return err.Error()
}
