package fuzzy

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidOptions is returned by Options.Validate.
var ErrInvalidOptions = errors.New("invalid fuzzy options")

// maxBitapPattern is the widest pattern a uint64 bit vector can track.
const maxBitapPattern = 64

// Options tunes approximate matching.
type Options struct {
	// Threshold is the highest score still accepted as a match.
	// 0.0 requires a perfect match, 1.0 matches anything.
	Threshold float64

	// Location is the rune offset where a match is expected.
	Location int

	// Distance is how far from Location a perfect match may sit before its
	// score reaches 1.0. Zero requires matches exactly at Location.
	Distance int

	// MaxPatternLength truncates longer queries.
	MaxPatternLength int

	// MinMatchCharLength is the shortest run of matched characters a field
	// needs to count as a match.
	MinMatchCharLength int

	// CaseSensitive disables lowercasing of query and text.
	CaseSensitive bool
}

// DefaultOptions returns the settings-search tuning.
func DefaultOptions() Options {
	return Options{
		Threshold:          0.2,
		Location:           0,
		Distance:           100,
		MaxPatternLength:   32,
		MinMatchCharLength: 1,
	}
}

// Validate reports the first out-of-range option.
func (o Options) Validate() error {
	switch {
	case o.Threshold < 0 || o.Threshold > 1:
		return errors.Wrapf(ErrInvalidOptions, "threshold %v outside [0,1]", o.Threshold)
	case o.Location < 0:
		return errors.Wrapf(ErrInvalidOptions, "negative location %d", o.Location)
	case o.Distance < 0:
		return errors.Wrapf(ErrInvalidOptions, "negative distance %d", o.Distance)
	case o.MaxPatternLength < 1 || o.MaxPatternLength > maxBitapPattern:
		return errors.Wrapf(ErrInvalidOptions, "max pattern length %d outside [1,%d]", o.MaxPatternLength, maxBitapPattern)
	case o.MinMatchCharLength < 1:
		return errors.Wrapf(ErrInvalidOptions, "min match char length %d below 1", o.MinMatchCharLength)
	}
	return nil
}

// locationScore is the Fuse score of a candidate with the given error count
// found at location.
func (o Options) locationScore(errCount, patternLen, location int) float64 {
	accuracy := float64(errCount) / float64(patternLen)
	proximity := o.Location - location
	if proximity < 0 {
		proximity = -proximity
	}
	if o.Distance == 0 {
		if proximity != 0 {
			return 1
		}
		return accuracy
	}
	return accuracy + float64(proximity)/float64(o.Distance)
}

// normalize lowercases s unless the options are case sensitive.
func (o Options) normalize(s string) string {
	if o.CaseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// truncate cuts a query to MaxPatternLength runes.
func (o Options) truncate(pattern []rune) []rune {
	if len(pattern) > o.MaxPatternLength {
		return pattern[:o.MaxPatternLength]
	}
	return pattern
}
