package fuzzy

import "math"

// Bitap is the default Scorer. It finds the query inside the text allowing up
// to Threshold*len(query) errors, penalising matches that start far from
// Options.Location.
type Bitap struct {
	opts Options
}

// NewBitap creates a bitap scorer. Invalid options fall back to defaults.
func NewBitap(opts Options) *Bitap {
	if opts.Validate() != nil {
		opts = DefaultOptions()
	}
	return &Bitap{opts: opts}
}

// Options returns the effective options.
func (b *Bitap) Options() Options {
	return b.opts
}

// Prepare compiles the query alphabet.
func (b *Bitap) Prepare(query string) Pattern {
	pattern := b.opts.truncate([]rune(b.opts.normalize(query)))
	if len(pattern) == 0 {
		return noMatch{}
	}

	alphabet := make(map[rune]uint64, len(pattern))
	for i, r := range pattern {
		alphabet[r] |= 1 << uint(len(pattern)-i-1)
	}

	return &bitapPattern{
		opts:     b.opts,
		pattern:  pattern,
		literal:  string(pattern),
		alphabet: alphabet,
	}
}

type bitapPattern struct {
	opts     Options
	pattern  []rune
	literal  string
	alphabet map[rune]uint64
}

func (p *bitapPattern) Match(text string) Result {
	text = p.opts.normalize(text)
	if text == p.literal {
		return Result{IsMatch: true, Score: 0}
	}
	return p.search([]rune(text))
}

func (p *bitapPattern) score(errCount, location int) float64 {
	return p.opts.locationScore(errCount, len(p.pattern), location)
}

func (p *bitapPattern) search(text []rune) Result {
	patternLen := len(p.pattern)
	textLen := len(text)
	expected := p.opts.Location
	threshold := p.opts.Threshold

	// An exact occurrence near the expected location tightens the threshold
	// before the approximate scan.
	if loc := indexRunes(text, p.pattern, expected); loc != -1 {
		threshold = math.Min(p.score(0, loc), threshold)
		if loc = lastIndexRunes(text, p.pattern, expected+patternLen); loc != -1 {
			threshold = math.Min(p.score(0, loc), threshold)
		}
	}

	bestLocation := -1
	binMax := patternLen + textLen
	mask := uint64(1) << uint(patternLen-1)
	matchMask := make([]bool, textLen)
	var lastBitArr []uint64

	for i := 0; i < patternLen; i++ {
		// Widest window in which i errors can still beat the threshold.
		binMin, binMid := 0, binMax
		for binMin < binMid {
			if p.score(i, expected+binMid) <= threshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid

		start := max(1, expected-binMid+1)
		finish := min(expected+binMid, textLen) + patternLen

		bitArr := make([]uint64, finish+2)
		bitArr[finish+1] = (uint64(1) << uint(i)) - 1

		for j := finish; j >= start; j-- {
			loc := j - 1
			var charMatch uint64
			if loc < textLen {
				charMatch = p.alphabet[text[loc]]
				if charMatch != 0 {
					matchMask[loc] = true
				}
			}

			bitArr[j] = ((bitArr[j+1] << 1) | 1) & charMatch
			if i != 0 {
				prevNext, prev := at(lastBitArr, j+1), at(lastBitArr, j)
				bitArr[j] |= ((prevNext|prev)<<1 | 1) | prevNext
			}

			if bitArr[j]&mask != 0 {
				s := p.score(i, loc)
				if s <= threshold {
					threshold = s
					bestLocation = loc
					if bestLocation <= expected {
						break
					}
					start = max(1, 2*expected-bestLocation)
				}
			}
		}

		// No match with one more error can beat the current best.
		if p.score(i+1, expected) > threshold {
			break
		}
		lastBitArr = bitArr
	}

	if bestLocation < 0 {
		return Result{Score: 1}
	}
	if p.opts.MinMatchCharLength > 1 && longestRun(matchMask) < p.opts.MinMatchCharLength {
		return Result{Score: 1}
	}

	score := threshold
	if score == 0 {
		// Reserve 0 for whole-text equality.
		score = 0.001
	}
	return Result{IsMatch: true, Score: score}
}

func at(arr []uint64, i int) uint64 {
	if i < 0 || i >= len(arr) {
		return 0
	}
	return arr[i]
}

// indexRunes returns the first occurrence of sub in s at or after from.
func indexRunes(s, sub []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(sub) <= len(s); i++ {
		if hasPrefixAt(s, sub, i) {
			return i
		}
	}
	return -1
}

// lastIndexRunes returns the last occurrence of sub in s starting at or before from.
func lastIndexRunes(s, sub []rune, from int) int {
	i := len(s) - len(sub)
	if from < i {
		i = from
	}
	for ; i >= 0; i-- {
		if hasPrefixAt(s, sub, i) {
			return i
		}
	}
	return -1
}

func hasPrefixAt(s, sub []rune, i int) bool {
	for k, r := range sub {
		if s[i+k] != r {
			return false
		}
	}
	return true
}
