// Package search matches a raw keystroke string against a settings catalog.
//
// A [Matcher] runs four steps on every call:
//
//  1. [Sanitize] drops every character that is not an ASCII letter, digit,
//     ASCII whitespace or '&'. The sanitized string is echoed back and drives
//     both match stages.
//  2. Exact: entries whose identifier equals the query under Unicode case
//     folding, in catalog order.
//  3. Fuzzy: the configured fields of every entry are resolved once and ranked
//     by a [Ranker] (by default a bitap [fuzzy.Searcher]).
//  4. Merge: exact matches first, fuzzy matches after in ranked order.
//
// # Usage
//
//	m, err := search.New(search.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := m.Match(input, cat, t)
//	render(res.Results)
//	setSearchIcon(res.State())
//
// An empty sanitized query is the "clear search" state: the result list is
// empty and [QueryResult.State] reports [StateMuted].
//
// # Merge Policy
//
// With [MergeDedupe] (the default) an entry matched both exactly and fuzzily is
// listed once, in the exact block. [MergePreserveDuplicates] lists it in both
// blocks.
//
// # Rankers
//
// Any type with a Rank method can replace the default fuzzy stage.
// [BleveRanker] indexes the resolved fields in an in-memory bleve index and
// reuses it while the resolved catalog content is unchanged.
//
// # Thread Safety
//
// Matcher keeps no state between calls and is safe for concurrent use when its
// Ranker is. BleveRanker serializes access to its cached index.
package search
