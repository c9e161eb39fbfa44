package catalog

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Catalog is the ordered entry set searched by one query pass.
// An entry's position is its identity and the fuzzy ranking tie-break.
type Catalog []Entry

// Len returns the number of entries.
func (c Catalog) Len() int {
	return len(c)
}

// Registry is the static entry mapping. Keys are unique and iteration follows
// insertion order.
type Registry struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: orderedmap.New[string, Entry]()}
}

// Add appends an entry under key.
func (r *Registry) Add(key string, e Entry) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if r.entries == nil {
		r.entries = orderedmap.New[string, Entry]()
	}
	if _, exists := r.entries.Get(key); exists {
		return errors.Wrapf(ErrDuplicateKey, "key %q", key)
	}
	r.entries.Set(key, e)
	return nil
}

// Get returns the entry stored under key.
func (r *Registry) Get(key string) (Entry, bool) {
	if r == nil || r.entries == nil {
		return Entry{}, false
	}
	return r.entries.Get(key)
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	if r == nil || r.entries == nil {
		return 0
	}
	return r.entries.Len()
}

// Keys returns the registry keys in insertion order.
func (r *Registry) Keys() []string {
	if r == nil || r.entries == nil {
		return nil
	}
	keys := make([]string, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Entries returns the registry values in insertion order.
func (r *Registry) Entries() []Entry {
	if r == nil || r.entries == nil {
		return nil
	}
	out := make([]Entry, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Build concatenates the static registry values with the dynamic entries.
// Either input may be nil. The returned catalog never aliases dynamic.
func Build(static *Registry, dynamic []Entry) Catalog {
	out := make(Catalog, 0, static.Len()+len(dynamic))
	out = append(out, static.Entries()...)
	out = append(out, dynamic...)
	return out
}

// BuildFromMap is Build for a plain map. Go maps have no iteration order, so
// the static values are taken in ascending key order.
func BuildFromMap(static map[string]Entry, dynamic []Entry) Catalog {
	keys := make([]string, 0, len(static))
	for k := range static {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Catalog, 0, len(static)+len(dynamic))
	for _, k := range keys {
		out = append(out, static[k])
	}
	out = append(out, dynamic...)
	return out
}
