package search

import "github.com/jonwraymond/settingsearch/catalog"

// SearchState is the presentation state a caller derives from a result.
type SearchState int

const (
	// StateMuted means no search is active.
	StateMuted SearchState = iota
	// StateActive means a non-empty query is being searched.
	StateActive
)

// String returns "muted" or "active".
func (s SearchState) String() string {
	if s == StateActive {
		return "active"
	}
	return "muted"
}

// QueryResult is the outcome of one Match call.
type QueryResult struct {
	// SanitizedQuery is the query actually searched; callers echo it back
	// into their input field.
	SanitizedQuery string

	// Results lists exact identifier matches followed by fuzzy matches.
	Results []catalog.Entry

	// Exact is the number of leading Results that matched by identifier.
	Exact int
}

// State reports StateActive when the sanitized query is non-empty.
func (r QueryResult) State() SearchState {
	if r.SanitizedQuery == "" {
		return StateMuted
	}
	return StateActive
}

// ExactResults returns the identifier-match block.
func (r QueryResult) ExactResults() []catalog.Entry {
	return r.Results[:r.Exact]
}

// FuzzyResults returns the ranked fuzzy block.
func (r QueryResult) FuzzyResults() []catalog.Entry {
	return r.Results[r.Exact:]
}

// Routes returns the Route of every result, in order.
func (r QueryResult) Routes() []string {
	routes := make([]string, len(r.Results))
	for i, e := range r.Results {
		routes[i] = e.Route
	}
	return routes
}
