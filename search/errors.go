package search

import "github.com/cockroachdb/errors"

// Error values for search operations.
var (
	// ErrInvalidInput is returned by MatchInput for values that are not text.
	ErrInvalidInput = errors.New("invalid query input")

	// ErrInvalidOptions is returned by New for unusable options.
	ErrInvalidOptions = errors.New("invalid matcher options")
)
