package fuzzy

import "sort"

// Document is one rankable item. Fields hold resolved text; empty strings are
// treated as absent.
type Document struct {
	ID     int
	Fields []string
}

// Hit is a matched document with its best field score.
type Hit struct {
	ID    int
	Score float64
}

// Searcher ranks documents with a Scorer.
type Searcher struct {
	scorer Scorer
}

// NewSearcher creates a Searcher. A nil scorer uses NewBitap(DefaultOptions()).
func NewSearcher(scorer Scorer) *Searcher {
	if scorer == nil {
		scorer = NewBitap(DefaultOptions())
	}
	return &Searcher{scorer: scorer}
}

// Rank returns the matching documents ordered by ascending score. Documents
// with equal scores keep their input order. An empty query matches nothing.
func (s *Searcher) Rank(query string, docs []Document) ([]Hit, error) {
	if query == "" || len(docs) == 0 {
		return nil, nil
	}

	pattern := s.scorer.Prepare(query)
	hits := make([]Hit, 0, len(docs))
	for _, doc := range docs {
		best, matched := 1.0, false
		for _, text := range doc.Fields {
			if text == "" {
				continue
			}
			r := pattern.Match(text)
			if !r.IsMatch {
				continue
			}
			if !matched || r.Score < best {
				best = r.Score
			}
			matched = true
		}
		if matched {
			hits = append(hits, Hit{ID: doc.ID, Score: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score < hits[j].Score
	})
	return hits, nil
}
