package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hugr-lab/mysqlcat-go/mysql"
)

// ErrEmptyName is returned when an entry without a name is created.
var ErrEmptyName = errors.New("catalog entry name must not be empty")

// LoadFunc fetches the full entry list from the remote database.
// It runs at most once per loaded generation.
type LoadFunc[T Entry] func(ctx context.Context) ([]T, error)

// Set is a lazily loaded collection of catalog entries of one kind.
//
// The first lookup triggers the load; a single mutex guards both the
// loaded flag and the entry maps, so concurrent first lookups block
// until exactly one load completes. A failed load leaves the set empty
// and unloaded, and the next lookup retries.
//
// Lookups are exact first and fall back to a case-insensitive alias
// match, mirroring MySQL's own identifier behavior on case-insensitive
// file systems.
type Set[T Entry] struct {
	mu      sync.Mutex
	entries map[string]T
	aliases map[string]string // lower-cased name -> canonical name
	loaded  bool

	load    LoadFunc[T]
	session mysql.Session
}

// NewSet creates an unloaded set. session is used for drop DDL when the
// context carries no transaction; load fetches the entries on first
// use.
func NewSet[T Entry](session mysql.Session, load LoadFunc[T]) *Set[T] {
	return &Set[T]{
		load:    load,
		session: session,
	}
}

// ensureLoaded populates the set on first use. Caller must hold mu.
// Entries are staged into fresh maps and committed only when the load
// succeeds, so a partial load never becomes visible.
func (s *Set[T]) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	list, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog entries: %w", err)
	}
	entries := make(map[string]T, len(list))
	aliases := make(map[string]string, len(list))
	for _, e := range list {
		entries[e.Name()] = e
		aliases[strings.ToLower(e.Name())] = e.Name()
	}
	s.entries = entries
	s.aliases = aliases
	s.loaded = true
	return nil
}

// GetEntry returns the entry with the given name. The exact name wins;
// otherwise the name is matched case-insensitively. Returns found=false
// (not an error) when no entry matches.
func (s *Set[T]) GetEntry(ctx context.Context, name string) (entry T, found bool, err error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	if e, ok := s.entries[name]; ok {
		return e, true, nil
	}
	canonical, ok := s.aliases[strings.ToLower(name)]
	if !ok {
		return zero, false, nil
	}
	e, ok := s.entries[canonical]
	return e, ok, nil
}

// Scan calls fn for every entry in name order, stopping early when fn
// returns false. The set stays locked for the duration of the scan.
func (s *Set[T]) Scan(ctx context.Context, fn func(T) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	for _, name := range s.sortedNames() {
		if !fn(s.entries[name]) {
			return nil
		}
	}
	return nil
}

// Entries returns all entries sorted by name.
func (s *Set[T]) Entries(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	result := make([]T, 0, len(s.entries))
	for _, name := range s.sortedNames() {
		result = append(result, s.entries[name])
	}
	return result, nil
}

// Names returns all canonical entry names sorted.
func (s *Set[T]) Names(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.sortedNames(), nil
}

// sortedNames returns the canonical names in order. Caller must hold mu.
func (s *Set[T]) sortedNames() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateEntry records a new entry in the loaded set. The remote object
// must already exist; this only updates the cache.
func (s *Set[T]) CreateEntry(ctx context.Context, entry T) error {
	if entry.Name() == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	s.entries[entry.Name()] = entry
	s.aliases[strings.ToLower(entry.Name())] = entry.Name()
	return nil
}

// DropEntry executes the drop DDL on the remote database and, only on
// success, removes the entry from the cache. A failed remote drop
// leaves the cache unchanged so the entry stays visible.
func (s *Set[T]) DropEntry(ctx context.Context, info DropInfo) error {
	sess := s.sessionFor(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := sess.Exec(ctx, info.SQL()); err != nil {
		return fmt.Errorf("failed to drop %s %q: %w", strings.ToLower(string(info.Type)), info.Name, err)
	}
	s.removeLocked(info.Name)
	return nil
}

// removeLocked erases an entry and its alias. Caller must hold mu.
func (s *Set[T]) removeLocked(name string) {
	canonical := name
	if _, ok := s.entries[canonical]; !ok {
		canonical = s.aliases[strings.ToLower(name)]
	}
	if canonical == "" {
		return
	}
	delete(s.entries, canonical)
	if s.aliases[strings.ToLower(canonical)] == canonical {
		delete(s.aliases, strings.ToLower(canonical))
	}
}

// CacheEntries forces the load so later lookups are served from the
// cache without a remote round trip.
func (s *Set[T]) CacheEntries(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoaded(ctx)
}

// ClearEntries discards the loaded generation. The next lookup reloads
// from the remote database.
func (s *Set[T]) ClearEntries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.aliases = nil
	s.loaded = false
}

// Loaded reports whether the set holds a loaded generation.
func (s *Set[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// sessionFor prefers the session attached to the context (an open
// transaction) over the set's own connection.
func (s *Set[T]) sessionFor(ctx context.Context) mysql.Session {
	if sess, ok := mysql.SessionFromContext(ctx); ok {
		return sess
	}
	return s.session
}
