package memory

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/stash/internal/domain"
)

// Entity is satisfied by pointers to record types embedding domain.Record.
type Entity[T any] interface {
	*T
	Meta() *domain.Record
}

// Patch is a partial update applied to a copy of a stored record.
type Patch[T any] interface {
	Apply(*T)
}

// Order selects the timestamp results are sorted by, newest first.
type Order int

const (
	ByUpdatedAt Order = iota
	ByCreatedAt
)

// Field reads one searchable text field from a record.
// Absent optional fields return "".
type Field[T any] func(*T) string

// Kind is the per-kind configuration of a store.
// Tags are always searched and need no Field.
type Kind[T any] struct {
	Name   string
	Fields []Field[T]
	Order  Order
}

// Option configures a Store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Store is an in-memory, id-indexed collection of one record kind.
// Every operation is serialized behind a single RWMutex; all reads return
// fresh, sorted copies rather than live views.
type Store[T any, P Entity[T]] struct {
	mu      sync.RWMutex
	kind    Kind[T]
	now     func() time.Time
	lastID  int64       // last allocated id, never reset
	records map[int64]T // ID -> record
}

// New creates an empty store for the given kind.
func New[T any, P Entity[T]](kind Kind[T], opts ...Option) *Store[T, P] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, P]{
		kind:    kind,
		now:     o.now,
		records: make(map[int64]T),
	}
}

// Kind returns the store's kind name (e.g. "notes").
func (s *Store[T, P]) Kind() string { return s.kind.Name }

// Create assigns the next id, defaults tags and stamps both timestamps.
// Any id or timestamps already set on rec are overwritten.
func (s *Store[T, P]) Create(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.lastID++

	m := P(&rec).Meta()
	m.ID = s.lastID
	m.Tags = cloneTags(m.Tags)
	m.CreatedAt = now
	m.UpdatedAt = now

	s.records[m.ID] = rec
	return snapshot[T, P](rec)
}

// Get returns the record with the given id.
func (s *Store[T, P]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	return snapshot[T, P](rec), true
}

// Update applies patch to the record with the given id and bumps UpdatedAt.
// ID and CreatedAt are preserved whatever the patch does.
func (s *Store[T, P]) Update(id int64, patch Patch[T]) (T, bool) {
	return s.UpdateIf(id, nil, patch)
}

// UpdateIf is Update guarded by cond, evaluated under the write lock on the
// current record. A nil cond always holds. It reports false when the record
// is missing or cond rejects it.
func (s *Store[T, P]) UpdateIf(id int64, cond func(T) bool, patch Patch[T]) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || (cond != nil && !cond(snapshot[T, P](rec))) {
		var zero T
		return zero, false
	}

	m := P(&rec).Meta()
	m.Tags = cloneTags(m.Tags)
	createdAt := m.CreatedAt

	patch.Apply(&rec)

	now := s.now()
	if now.Before(createdAt) {
		now = createdAt
	}
	m.ID = id
	m.CreatedAt = createdAt
	m.UpdatedAt = now
	if m.Tags == nil {
		m.Tags = []string{}
	}

	s.records[id] = rec
	return snapshot[T, P](rec), true
}

// Delete removes the record and reports whether it existed.
func (s *Store[T, P]) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

// Count returns the number of records.
func (s *Store[T, P]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// List returns every record.
func (s *Store[T, P]) List() []T {
	return s.query(nil)
}

// Search returns records where query is a case-insensitive substring of any
// kind field or any tag. A blank query lists everything.
func (s *Store[T, P]) Search(query string) []T {
	if strings.TrimSpace(query) == "" {
		return s.List()
	}

	fold := cases.Lower(language.Und)
	q := fold.String(query)

	return s.query(func(rec P) bool {
		for _, field := range s.kind.Fields {
			if strings.Contains(fold.String(field(rec)), q) {
				return true
			}
		}
		for _, tag := range rec.Meta().Tags {
			if strings.Contains(fold.String(tag), q) {
				return true
			}
		}
		return false
	})
}

// FilterByTag returns records carrying tag, compared case-insensitively
// and exactly (no substring matching).
func (s *Store[T, P]) FilterByTag(tag string) []T {
	fold := cases.Lower(language.Und)
	want := fold.String(tag)

	return s.query(func(rec P) bool {
		for _, t := range rec.Meta().Tags {
			if fold.String(t) == want {
				return true
			}
		}
		return false
	})
}

// Favorites returns records marked as favorite.
func (s *Store[T, P]) Favorites() []T {
	return s.query(func(rec P) bool {
		return rec.Meta().IsFavorite
	})
}

// query collects matching snapshots under the read lock, then sorts them
// outside of it.
func (s *Store[T, P]) query(match func(P) bool) []T {
	s.mu.RLock()
	out := make([]T, 0, len(s.records))
	for _, rec := range s.records {
		if match == nil || match(P(&rec)) {
			out = append(out, snapshot[T, P](rec))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, s.compare)
	return out
}

// compare orders newest first on the kind's timestamp, then by insertion
// order. Ids are allocated monotonically so they encode insertion order.
func (s *Store[T, P]) compare(a, b T) int {
	ma, mb := P(&a).Meta(), P(&b).Meta()

	ka, kb := ma.UpdatedAt, mb.UpdatedAt
	if s.kind.Order == ByCreatedAt {
		ka, kb = ma.CreatedAt, mb.CreatedAt
	}
	if c := kb.Compare(ka); c != 0 {
		return c
	}
	return cmp.Compare(ma.ID, mb.ID)
}

// snapshot detaches the tag slice so callers cannot mutate stored state.
func snapshot[T any, P Entity[T]](rec T) T {
	m := P(&rec).Meta()
	m.Tags = cloneTags(m.Tags)
	return rec
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}
