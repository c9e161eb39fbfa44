package fuzzy

// Result is the outcome of matching one text.
type Result struct {
	IsMatch bool
	// Score is 0 for an exact match and grows toward 1 as the match degrades.
	Score float64
}

// Pattern is a query prepared for repeated matching.
type Pattern interface {
	Match(text string) Result
}

// Scorer prepares queries. Preparation happens once per search pass.
type Scorer interface {
	Prepare(query string) Pattern
}

// noMatch is the prepared form of an empty query.
type noMatch struct{}

func (noMatch) Match(string) Result { return Result{Score: 1} }

// longestRun returns the longest run of true values in mask.
func longestRun(mask []bool) int {
	best, run := 0, 0
	for _, m := range mask {
		if m {
			run++
			if run > best {
				best = run
			}
			continue
		}
		run = 0
	}
	return best
}
