package catalog

import "github.com/cockroachdb/errors"

// Error values for catalog operations.
var (
	ErrMalformedEntry  = errors.New("malformed entry field")
	ErrDuplicateKey    = errors.New("duplicate registry key")
	ErrInvalidKey      = errors.New("invalid registry key")
	ErrInvalidRegistry = errors.New("invalid registry document")
	ErrInvalidSource   = errors.New("invalid extension source")
	ErrSourceNotFound  = errors.New("extension source not found")
)
