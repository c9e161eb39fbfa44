package search

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/jonwraymond/settingsearch/catalog"
	"github.com/jonwraymond/settingsearch/fuzzy"
)

// Ranker orders resolved documents by relevance to a sanitized, non-empty
// query. Hits must be sorted best first and reference document IDs.
type Ranker interface {
	Rank(query string, docs []fuzzy.Document) ([]fuzzy.Hit, error)
}

// MergePolicy controls how entries matched by both stages are listed.
type MergePolicy int

const (
	// MergeDedupe lists an entry once, in the exact block.
	MergeDedupe MergePolicy = iota
	// MergePreserveDuplicates lists an entry in both blocks.
	MergePreserveDuplicates
)

// String returns the configuration name of the policy.
func (p MergePolicy) String() string {
	switch p {
	case MergeDedupe:
		return "dedupe"
	case MergePreserveDuplicates:
		return "preserve"
	default:
		return fmt.Sprintf("MergePolicy(%d)", int(p))
	}
}

// ParseMergePolicy parses "dedupe" or "preserve". Empty selects MergeDedupe.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dedupe":
		return MergeDedupe, nil
	case "preserve":
		return MergePreserveDuplicates, nil
	default:
		return 0, errors.Wrapf(ErrInvalidOptions, "unknown merge policy %q", s)
	}
}

// Options configures a Matcher.
type Options struct {
	// Keys are the entry fields searched fuzzily.
	// Default: catalog.DefaultKeys
	Keys []string

	// Fuzzy tunes the default bitap ranker. The zero value selects
	// fuzzy.DefaultOptions(). Ignored when Ranker is set.
	Fuzzy fuzzy.Options

	// Ranker replaces the default fuzzy stage.
	Ranker Ranker

	// Merge selects the duplicate policy. Default: MergeDedupe.
	Merge MergePolicy

	// Logger receives debug diagnostics. Default: no-op.
	Logger *zap.Logger
}

// Matcher runs sanitize, exact match, fuzzy match and merge for one query.
type Matcher struct {
	keys   []string
	ranker Ranker
	merge  MergePolicy
	logger *zap.Logger
}

// New creates a Matcher.
func New(opts Options) (*Matcher, error) {
	m := &Matcher{
		keys:   append([]string(nil), opts.Keys...),
		ranker: opts.Ranker,
		merge:  opts.Merge,
		logger: opts.Logger,
	}

	if len(m.keys) == 0 {
		m.keys = append([]string(nil), catalog.DefaultKeys...)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.merge != MergeDedupe && m.merge != MergePreserveDuplicates {
		return nil, errors.Wrapf(ErrInvalidOptions, "unknown merge policy %d", int(m.merge))
	}

	if m.ranker == nil {
		fo := opts.Fuzzy
		if fo == (fuzzy.Options{}) {
			fo = fuzzy.DefaultOptions()
		}
		if err := fo.Validate(); err != nil {
			return nil, errors.Mark(err, ErrInvalidOptions)
		}
		m.ranker = fuzzy.NewSearcher(fuzzy.NewBitap(fo))
	}

	return m, nil
}

// Keys returns the searched field keys.
func (m *Matcher) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Match searches cat for raw. t resolves computed fields.
//
// The only error source is the Ranker; on a ranking failure the returned
// result still carries the sanitized query and the exact block.
func (m *Matcher) Match(raw string, cat catalog.Catalog, t catalog.Localizer) (QueryResult, error) {
	query := Sanitize(raw)
	if query == "" {
		return QueryResult{}, nil
	}

	exact := exactMatches(query, cat)
	res := QueryResult{
		SanitizedQuery: query,
		Results:        make([]catalog.Entry, 0, len(exact)),
		Exact:          len(exact),
	}
	for _, i := range exact {
		res.Results = append(res.Results, cat[i])
	}

	docs := resolveDocuments(cat, m.keys, t, m.logger)
	hits, err := m.ranker.Rank(query, docs)
	if err != nil {
		return res, errors.Wrapf(err, "rank %d entries", len(cat))
	}

	var seen map[int]bool
	if m.merge == MergeDedupe && len(exact) > 0 {
		seen = make(map[int]bool, len(exact))
		for _, i := range exact {
			seen[i] = true
		}
	}

	for _, h := range hits {
		if h.ID < 0 || h.ID >= len(cat) {
			m.logger.Debug("ranker returned unknown entry", zap.Int("entry", h.ID))
			continue
		}
		if seen[h.ID] {
			continue
		}
		res.Results = append(res.Results, cat[h.ID])
	}

	return res, nil
}

// MatchInput is Match for an untyped input value. Strings, byte slices and
// fmt.Stringer values are accepted; anything else yields an empty result and
// ErrInvalidInput.
func (m *Matcher) MatchInput(raw any, cat catalog.Catalog, t catalog.Localizer) (QueryResult, error) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case fmt.Stringer:
		str, err := stringOf(v)
		if err != nil {
			return QueryResult{}, err
		}
		s = str
	default:
		return QueryResult{}, errors.Wrapf(ErrInvalidInput, "query of type %T", raw)
	}
	return m.Match(s, cat, t)
}

// stringOf calls v.String, reporting a panic (typically a nil pointer
// receiver) as ErrInvalidInput.
func stringOf(v fmt.Stringer) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = ""
			err = errors.Wrapf(ErrInvalidInput, "query of type %T: String panicked: %v", v, r)
		}
	}()
	return v.String(), nil
}
