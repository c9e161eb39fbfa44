package finder

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jonwraymond/settingsearch/catalog"
	"github.com/jonwraymond/settingsearch/search"
)

// Options configures a Finder.
type Options struct {
	// Registry holds the static entries. If nil, the static set is empty.
	// The catalog is cached; call Finder.Invalidate after adding to it.
	Registry *catalog.Registry

	// Extensions holds plugin entries. If nil, no extension entries are
	// searched.
	Extensions catalog.ExtensionStore

	// Localizer resolves computed fields. If nil, computed fields are
	// skipped as malformed.
	Localizer catalog.Localizer

	// Matcher runs the queries. If nil, created from MatcherOptions.
	Matcher *search.Matcher

	// MatcherOptions configures the default Matcher.
	MatcherOptions search.Options

	// Logger receives debug diagnostics. Default: no-op.
	Logger *zap.Logger
}

// Finder searches a static registry plus extension entries.
type Finder struct {
	mu        sync.RWMutex
	registry  *catalog.Registry
	exts      catalog.ExtensionStore
	localizer catalog.Localizer
	matcher   *search.Matcher
	logger    *zap.Logger

	cached      catalog.Catalog
	valid       bool
	generation  uint64
	unsubscribe func()
}

// New creates a Finder.
func New(opts Options) (*Finder, error) {
	f := &Finder{
		registry:    opts.Registry,
		exts:        opts.Extensions,
		localizer:   opts.Localizer,
		matcher:     opts.Matcher,
		logger:      opts.Logger,
		unsubscribe: func() {},
	}

	if f.logger == nil {
		f.logger = zap.NewNop()
	}

	if f.matcher == nil {
		mo := opts.MatcherOptions
		if mo.Logger == nil {
			mo.Logger = f.logger
		}
		m, err := search.New(mo)
		if err != nil {
			return nil, err
		}
		f.matcher = m
	}

	if f.exts != nil {
		f.unsubscribe = f.exts.OnChange(f.Invalidate)
	}

	return f, nil
}

// Search runs one query against the current catalog.
func (f *Finder) Search(raw string) (search.QueryResult, error) {
	cat := f.Catalog()

	f.mu.RLock()
	t := f.localizer
	f.mu.RUnlock()

	return f.matcher.Match(raw, cat, t)
}

// SearchInput is Search for an untyped input value.
func (f *Finder) SearchInput(raw any) (search.QueryResult, error) {
	cat := f.Catalog()

	f.mu.RLock()
	t := f.localizer
	f.mu.RUnlock()

	return f.matcher.MatchInput(raw, cat, t)
}

// Catalog returns the current catalog, rebuilding it if extensions changed.
func (f *Finder) Catalog() catalog.Catalog {
	f.mu.RLock()
	if f.valid {
		cat := f.cached
		f.mu.RUnlock()
		return cat
	}
	gen := f.generation
	f.mu.RUnlock()

	var dynamic []catalog.Entry
	if f.exts != nil {
		dynamic = f.exts.Entries()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.valid {
		return f.cached
	}

	cat := catalog.Build(f.registry, dynamic)
	// Extensions changed while we were reading them; serve this build but
	// let the next call rebuild.
	if f.generation != gen {
		return cat
	}
	f.cached = cat
	f.valid = true
	f.logger.Debug("catalog rebuilt",
		zap.Int("static", f.registry.Len()),
		zap.Int("extensions", len(dynamic)),
	)
	return cat
}

// SetLocalizer replaces the localizer, for example after a language change.
func (f *Finder) SetLocalizer(t catalog.Localizer) {
	f.mu.Lock()
	f.localizer = t
	f.mu.Unlock()
}

// Localizer returns the current localizer, or nil.
func (f *Finder) Localizer() catalog.Localizer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.localizer
}

// Extensions returns the extension store, or nil.
func (f *Finder) Extensions() catalog.ExtensionStore {
	return f.exts
}

// Matcher returns the underlying matcher.
func (f *Finder) Matcher() *search.Matcher {
	return f.matcher
}

// Close stops listening for extension changes.
func (f *Finder) Close() error {
	f.unsubscribe()
	return nil
}

// Invalidate drops the cached catalog so the next search rebuilds it from the
// registry and extension store. Extension changes invalidate automatically.
func (f *Finder) Invalidate() {
	f.mu.Lock()
	f.valid = false
	f.cached = nil
	f.generation++
	f.mu.Unlock()
}
