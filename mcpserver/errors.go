package mcpserver

import "github.com/cockroachdb/errors"

// Sentinel errors for consistent error handling.
var (
	ErrNilFinder     = errors.New("finder is required")
	ErrSearchFailed  = errors.New("settings search failed")
	ErrInvalidConfig = errors.New("invalid server config")
)

// Tool names.
const (
	ToolSearch = "search_settings"
	ToolList   = "list_settings"
)
