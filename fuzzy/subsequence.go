package fuzzy

import (
	"unicode/utf8"

	sahilm "github.com/sahilm/fuzzy"
)

// Subsequence accepts any text containing the query characters in order. The
// score grows with the gaps between matched characters and with the distance
// of the first matched character from Options.Location.
type Subsequence struct {
	opts Options
}

// NewSubsequence creates a subsequence scorer. Invalid options fall back to
// defaults.
func NewSubsequence(opts Options) *Subsequence {
	if opts.Validate() != nil {
		opts = DefaultOptions()
	}
	return &Subsequence{opts: opts}
}

// Prepare normalizes and truncates the query.
func (s *Subsequence) Prepare(query string) Pattern {
	pattern := s.opts.truncate([]rune(s.opts.normalize(query)))
	if len(pattern) == 0 {
		return noMatch{}
	}
	return &subsequencePattern{opts: s.opts, pattern: string(pattern), length: len(pattern)}
}

type subsequencePattern struct {
	opts    Options
	pattern string
	length  int
}

func (p *subsequencePattern) Match(text string) Result {
	text = p.opts.normalize(text)
	if text == p.pattern {
		return Result{IsMatch: true, Score: 0}
	}

	matches := sahilm.Find(p.pattern, []string{text})
	if len(matches) == 0 || len(matches[0].MatchedIndexes) == 0 {
		return Result{Score: 1}
	}
	idx := matches[0].MatchedIndexes

	// MatchedIndexes are byte offsets; convert to rune offsets.
	first := utf8.RuneCountInString(text[:idx[0]])
	last := utf8.RuneCountInString(text[:idx[len(idx)-1]])
	gaps := (last - first + 1) - p.length
	if gaps < 0 {
		gaps = 0
	}

	score := p.opts.locationScore(gaps, p.length, first)
	if score > p.opts.Threshold {
		return Result{Score: 1}
	}
	if score == 0 {
		score = 0.001
	}
	return Result{IsMatch: true, Score: score}
}
