package fuzzy

import (
	"unicode"

	"github.com/hbollon/go-edlib"
)

// Levenshtein scores a query by its edit distance to the best word-aligned
// window of the text. Windows range from one rune shorter to one rune longer
// than the query, so a dropped or doubled letter costs a single edit. The
// score is the distance divided by the query length plus the location penalty.
type Levenshtein struct {
	opts Options
}

// NewLevenshtein creates an edit-distance scorer. Invalid options fall back to
// defaults.
func NewLevenshtein(opts Options) *Levenshtein {
	if opts.Validate() != nil {
		opts = DefaultOptions()
	}
	return &Levenshtein{opts: opts}
}

// Prepare normalizes and truncates the query.
func (l *Levenshtein) Prepare(query string) Pattern {
	pattern := l.opts.truncate([]rune(l.opts.normalize(query)))
	if len(pattern) == 0 {
		return noMatch{}
	}
	return &levenshteinPattern{opts: l.opts, pattern: string(pattern), length: len(pattern)}
}

type levenshteinPattern struct {
	opts    Options
	pattern string
	length  int
}

func (p *levenshteinPattern) Match(text string) Result {
	text = p.opts.normalize(text)
	if text == p.pattern {
		return Result{IsMatch: true, Score: 0}
	}

	runes := []rune(text)
	best := 1.0
	for _, start := range wordStarts(runes) {
		for width := p.length - 1; width <= p.length+1; width++ {
			if width < 1 {
				continue
			}
			end := min(start+width, len(runes))
			window := string(runes[start:end])

			d := edlib.LevenshteinDistance(p.pattern, window)
			s := p.opts.locationScore(d, p.length, start)
			if s < best {
				best = s
			}
			if end == len(runes) {
				break
			}
		}
	}

	if best > p.opts.Threshold {
		return Result{Score: 1}
	}
	if best == 0 {
		best = 0.001
	}
	return Result{IsMatch: true, Score: best}
}

// wordStarts returns the offsets of every word beginning in runes.
func wordStarts(runes []rune) []int {
	var starts []int
	inWord := false
	for i, r := range runes {
		space := unicode.IsSpace(r)
		if !space && !inWord {
			starts = append(starts, i)
		}
		inWord = !space
	}
	return starts
}
