package search

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonwraymond/settingsearch/catalog"
	"github.com/jonwraymond/settingsearch/fuzzy"
)

var testMessages = map[string]string{
	"general":            "General",
	"advanced":           "Advanced",
	"currencyConversion": "Currency conversion",
}

func settingsEntry(id, tabKey string) catalog.Entry {
	return catalog.Entry{
		Identifier: id,
		Route:      "/settings/" + id,
		Fields: map[string]catalog.Field{
			catalog.KeyTab:         catalog.Message(tabKey),
			catalog.KeySection:     catalog.Literal(""),
			catalog.KeyDescription: catalog.Literal(""),
		},
	}
}

func baseCatalog() catalog.Catalog {
	reg := catalog.NewRegistry()
	_ = reg.Add("general", settingsEntry("general", "general"))
	_ = reg.Add("advanced", settingsEntry("advanced", "advanced"))
	return catalog.Build(reg, nil)
}

func newMatcher(t *testing.T, opts Options) *Matcher {
	t.Helper()
	m, err := New(opts)
	require.NoError(t, err)
	return m
}

func TestMatch_ExactIdentifierDedupe(t *testing.T) {
	m := newMatcher(t, Options{})

	res, err := m.Match("General", baseCatalog(), catalog.MapLocalizer(testMessages))
	require.NoError(t, err)

	assert.Equal(t, "General", res.SanitizedQuery)
	assert.Equal(t, []string{"/settings/general"}, res.Routes())
	assert.Equal(t, 1, res.Exact)
	assert.Equal(t, StateActive, res.State())
}

func TestMatch_PreserveDuplicates(t *testing.T) {
	m := newMatcher(t, Options{Merge: MergePreserveDuplicates})

	res, err := m.Match("General", baseCatalog(), catalog.MapLocalizer(testMessages))
	require.NoError(t, err)

	assert.Equal(t, []string{"/settings/general", "/settings/general"}, res.Routes())
	assert.Len(t, res.ExactResults(), 1)
	assert.Len(t, res.FuzzyResults(), 1)
}

func TestMatch_PrefixIsFuzzyOnly(t *testing.T) {
	m := newMatcher(t, Options{})

	res, err := m.Match("Gen", baseCatalog(), catalog.MapLocalizer(testMessages))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Exact)
	assert.Equal(t, []string{"/settings/general"}, res.Routes())
}

func TestMatch_SanitizesQuery(t *testing.T) {
	m := newMatcher(t, Options{})

	res, err := m.Match(`a\b`, baseCatalog(), catalog.MapLocalizer(testMessages))
	require.NoError(t, err)
	assert.Equal(t, "ab", res.SanitizedQuery)

	res, err = m.Match(`gen[eral]!`, baseCatalog(), catalog.MapLocalizer(testMessages))
	require.NoError(t, err)
	assert.Equal(t, "general", res.SanitizedQuery)
	assert.Equal(t, 1, res.Exact)
}

func TestMatch_EmptyQuery(t *testing.T) {
	m := newMatcher(t, Options{})

	for _, raw := range []string{"", `\\`, "!!!", "é"} {
		res, err := m.Match(raw, baseCatalog(), catalog.MapLocalizer(testMessages))
		require.NoError(t, err)
		assert.Equal(t, "", res.SanitizedQuery, "raw %q", raw)
		assert.Empty(t, res.Results, "raw %q", raw)
		assert.Equal(t, StateMuted, res.State(), "raw %q", raw)
	}
}

func TestMatch_ExactBlockPrecedesFuzzy(t *testing.T) {
	cat := catalog.Catalog{
		{
			Identifier: "display",
			Route:      "/settings/display",
			Fields:     map[string]catalog.Field{catalog.KeyTab: catalog.Literal("General settings")},
		},
		{
			Identifier: "general",
			Route:      "/settings/general",
			Fields:     map[string]catalog.Field{catalog.KeyTab: catalog.Literal("Zzz")},
		},
	}

	m := newMatcher(t, Options{})
	res, err := m.Match("GENERAL", cat, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"/settings/general", "/settings/display"}, res.Routes())
	assert.Equal(t, 1, res.Exact)
}

func TestMatch_ExactRequiresFullEquality(t *testing.T) {
	cat := catalog.Catalog{
		{Identifier: "general", Route: "/general"},
		{Identifier: "", Route: "/plugin"},
	}

	m := newMatcher(t, Options{})
	res, err := m.Match("gener", cat, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Exact)
	assert.Empty(t, res.Results)
}

func TestMatch_DynamicEntries(t *testing.T) {
	reg := catalog.NewRegistry()
	_ = reg.Add("general", settingsEntry("general", "general"))
	_ = reg.Add("advanced", settingsEntry("advanced", "advanced"))

	snaps := []catalog.Entry{
		{
			Route: "/snaps/notifier",
			Fields: map[string]catalog.Field{
				catalog.KeyTab:     catalog.Literal("Snaps"),
				catalog.KeySection: catalog.Literal("Snap notifications"),
			},
		},
	}
	cat := catalog.Build(reg, snaps)
	require.Equal(t, reg.Len()+len(snaps), cat.Len())

	m := newMatcher(t, Options{})
	res, err := m.Match("notif", cat, catalog.MapLocalizer(testMessages))
	require.NoError(t, err)
	assert.Equal(t, []string{"/snaps/notifier"}, res.Routes())
}

func TestMatch_StableTieBreak(t *testing.T) {
	var cat catalog.Catalog
	for _, r := range []string{"/a", "/b", "/c"} {
		cat = append(cat, catalog.Entry{
			Route:  r,
			Fields: map[string]catalog.Field{catalog.KeyTab: catalog.Literal("Security")},
		})
	}

	m := newMatcher(t, Options{})
	res, err := m.Match("sec", cat, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b", "/c"}, res.Routes())
}

func TestMatch_RankedByDistance(t *testing.T) {
	cat := catalog.Catalog{
		{Route: "/conversion", Fields: map[string]catalog.Field{catalog.KeyTab: catalog.Literal("Currency conversion")}},
		{Route: "/contacts", Fields: map[string]catalog.Field{catalog.KeyTab: catalog.Literal("Contacts")}},
		{Route: "/alerts", Fields: map[string]catalog.Field{catalog.KeyTab: catalog.Literal("Alerts")}},
	}

	m := newMatcher(t, Options{})
	res, err := m.Match("con", cat, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/contacts", "/conversion"}, res.Routes())
}

func TestMatch_MalformedFieldSkipped(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := newMatcher(t, Options{Logger: zap.New(core)})

	cat := catalog.Catalog{
		{
			Identifier: "broken",
			Route:      "/broken",
			Fields: map[string]catalog.Field{
				catalog.KeyTab: catalog.Computed(func(catalog.Localizer) string {
					panic("missing translation bundle")
				}),
				catalog.KeyDescription: catalog.Literal("Backup phrase"),
			},
		},
		settingsEntry("general", "general"),
	}

	res, err := m.Match("gen", cat, catalog.MapLocalizer(testMessages))
	require.NoError(t, err)
	assert.Equal(t, []string{"/settings/general"}, res.Routes())

	res, err = m.Match("backup", cat, catalog.MapLocalizer(testMessages))
	require.NoError(t, err)
	assert.Equal(t, []string{"/broken"}, res.Routes(), "healthy fields of a malformed entry still match")

	entries := logs.FilterMessage("skipping malformed field").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "broken", entries[0].ContextMap()["identifier"])
}

func TestMatch_NilLocalizer(t *testing.T) {
	m := newMatcher(t, Options{})

	res, err := m.Match("gen", baseCatalog(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Results, "computed fields cannot resolve without a localizer")

	res, err = m.Match("general", baseCatalog(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/settings/general"}, res.Routes(), "exact match does not need a localizer")
}

func TestMatch_Keys(t *testing.T) {
	cat := catalog.Catalog{
		{
			Route: "/x",
			Fields: map[string]catalog.Field{
				catalog.KeyTab:         catalog.Literal("Advanced"),
				catalog.KeyDescription: catalog.Literal("Reset account"),
			},
		},
	}

	m := newMatcher(t, Options{Keys: []string{catalog.KeyTab}})
	assert.Equal(t, []string{catalog.KeyTab}, m.Keys())

	res, err := m.Match("reset", cat, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Results)

	res, err = m.Match("adv", cat, nil)
	require.NoError(t, err)
	assert.Len(t, res.Results, 1)
}

func TestMatch_EmptyCatalog(t *testing.T) {
	m := newMatcher(t, Options{})
	res, err := m.Match("general", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "general", res.SanitizedQuery)
	assert.Empty(t, res.Results)
}

type failingRanker struct{}

func (failingRanker) Rank(string, []fuzzy.Document) ([]fuzzy.Hit, error) {
	return nil, errors.New("index unavailable")
}

func TestMatch_RankerError(t *testing.T) {
	m := newMatcher(t, Options{Ranker: failingRanker{}})

	res, err := m.Match("general", baseCatalog(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index unavailable")
	assert.Equal(t, "general", res.SanitizedQuery)
	assert.Equal(t, []string{"/settings/general"}, res.Routes())
}

type fixedRanker []fuzzy.Hit

func (r fixedRanker) Rank(string, []fuzzy.Document) ([]fuzzy.Hit, error) {
	return r, nil
}

func TestMatch_IgnoresUnknownHits(t *testing.T) {
	m := newMatcher(t, Options{Ranker: fixedRanker{{ID: 9}, {ID: 1}, {ID: -1}}})

	res, err := m.Match("x", baseCatalog(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/settings/advanced"}, res.Routes())
}

type stringer string

func (s stringer) String() string { return string(s) }

type ptrStringer struct{ s string }

func (p *ptrStringer) String() string { return p.s }

func TestMatchInput(t *testing.T) {
	m := newMatcher(t, Options{})
	loc := catalog.MapLocalizer(testMessages)

	for _, raw := range []any{"gen", []byte("gen"), stringer("gen")} {
		res, err := m.MatchInput(raw, baseCatalog(), loc)
		require.NoError(t, err)
		assert.Equal(t, []string{"/settings/general"}, res.Routes())
	}

	for _, raw := range []any{nil, 42, struct{}{}, (*ptrStringer)(nil)} {
		res, err := m.MatchInput(raw, baseCatalog(), loc)
		assert.True(t, errors.Is(err, ErrInvalidInput), "input %v", raw)
		assert.Equal(t, QueryResult{}, res)
	}
}

func TestMatch_NoStateBetweenCalls(t *testing.T) {
	m := newMatcher(t, Options{})
	loc := catalog.MapLocalizer(testMessages)

	first, err := m.Match("adv", baseCatalog(), loc)
	require.NoError(t, err)
	_, _ = m.Match("", baseCatalog(), loc)
	_, _ = m.Match("general", baseCatalog(), loc)
	again, err := m.Match("adv", baseCatalog(), loc)
	require.NoError(t, err)

	assert.Equal(t, first.SanitizedQuery, again.SanitizedQuery)
	assert.Equal(t, first.Routes(), again.Routes())
	assert.Equal(t, first.Exact, again.Exact)
}

func TestNew_Options(t *testing.T) {
	m := newMatcher(t, Options{})
	assert.Equal(t, catalog.DefaultKeys, m.Keys())

	_, err := New(Options{Fuzzy: fuzzy.Options{Threshold: 3, MaxPatternLength: 32, MinMatchCharLength: 1}})
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	assert.True(t, errors.Is(err, fuzzy.ErrInvalidOptions))

	_, err = New(Options{Merge: MergePolicy(7)})
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestParseMergePolicy(t *testing.T) {
	tests := map[string]MergePolicy{
		"":          MergeDedupe,
		"dedupe":    MergeDedupe,
		" Preserve": MergePreserveDuplicates,
	}
	for in, want := range tests {
		got, err := ParseMergePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		if in != "" {
			assert.Equal(t, strings.ToLower(strings.TrimSpace(in)), got.String())
		}
	}

	_, err := ParseMergePolicy("union")
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	assert.Equal(t, "MergePolicy(4)", MergePolicy(4).String())
}
