package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ChangeListener is called after the extension set changes.
type ChangeListener func()

// ExtensionStore holds entries contributed by plugins at runtime.
type ExtensionStore interface {
	// Register replaces the entries contributed by source.
	Register(source string, entries []Entry) error
	// Unregister removes every entry contributed by source.
	Unregister(source string) error
	// Entries returns all contributed entries, grouped by source in
	// ascending source order, each group in registration order.
	Entries() []Entry
	// OnChange subscribes to changes and returns an unsubscribe function.
	OnChange(listener ChangeListener) func()
}

// InMemoryExtensions stores extension entries in memory.
type InMemoryExtensions struct {
	mu        sync.RWMutex
	sources   map[string][]Entry
	listeners map[int]ChangeListener
	nextID    int
}

// NewInMemoryExtensions creates an empty extension store.
func NewInMemoryExtensions() *InMemoryExtensions {
	return &InMemoryExtensions{
		sources:   make(map[string][]Entry),
		listeners: make(map[int]ChangeListener),
	}
}

// Register replaces the entries contributed by source.
func (s *InMemoryExtensions) Register(source string, entries []Entry) error {
	if strings.TrimSpace(source) == "" {
		return ErrInvalidSource
	}

	clone := make([]Entry, len(entries))
	copy(clone, entries)

	s.mu.Lock()
	s.sources[source] = clone
	s.mu.Unlock()

	s.notify()
	return nil
}

// Unregister removes every entry contributed by source.
func (s *InMemoryExtensions) Unregister(source string) error {
	s.mu.Lock()
	if _, ok := s.sources[source]; !ok {
		s.mu.Unlock()
		return errors.Wrapf(ErrSourceNotFound, "source %q", source)
	}
	delete(s.sources, source)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Sources returns the registered source IDs in ascending order.
func (s *InMemoryExtensions) Sources() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sources))
	for id := range s.sources {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Entries returns all contributed entries in stable order.
func (s *InMemoryExtensions) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sources))
	total := 0
	for id, entries := range s.sources {
		ids = append(ids, id)
		total += len(entries)
	}
	sort.Strings(ids)

	out := make([]Entry, 0, total)
	for _, id := range ids {
		out = append(out, s.sources[id]...)
	}
	return out
}

// OnChange subscribes listener to change notifications.
func (s *InMemoryExtensions) OnChange(listener ChangeListener) func() {
	if listener == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// notify runs listeners outside the lock so they may read the store.
func (s *InMemoryExtensions) notify() {
	s.mu.RLock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]ChangeListener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
