package search

import (
	"golang.org/x/text/cases"

	"github.com/jonwraymond/settingsearch/catalog"
)

// exactMatches returns the catalog positions whose identifier equals query
// after case folding. Entries without an identifier never match.
func exactMatches(query string, cat catalog.Catalog) []int {
	if query == "" {
		return nil
	}

	fold := cases.Fold()
	want := fold.String(query)

	var out []int
	for i, e := range cat {
		if e.Identifier == "" {
			continue
		}
		if fold.String(e.Identifier) == want {
			out = append(out, i)
		}
	}
	return out
}
