// Package fuzzy ranks short documents against an incrementally typed query.
//
// The default [Scorer] is a bitap matcher with the tuning knobs of the Fuse
// family of client-side search engines: a match threshold on a 0.0 (exact) to
// 1.0 (no match) scale, an expected match location, a distance over which the
// location penalty grows to a full mismatch, and a maximum pattern length past
// which the query is truncated.
//
//	s := fuzzy.NewSearcher(fuzzy.NewBitap(fuzzy.DefaultOptions()))
//	hits, err := s.Rank("gen", []fuzzy.Document{
//	    {ID: 0, Fields: []string{"General", "Currency conversion"}},
//	    {ID: 1, Fields: []string{"Advanced"}},
//	})
//
// [Searcher] scores every non-empty field of every document independently. A
// document is a hit when any field matches; its score is the best field
// score. Hits are ordered by ascending score with input order as tie-break.
//
// Two alternative scorers share the same options: [NewLevenshtein] compares the
// query against word-aligned windows by edit distance, and [NewSubsequence]
// accepts any in-order subsequence.
//
// All scorers and Searcher are stateless after construction and safe for
// concurrent use.
package fuzzy
