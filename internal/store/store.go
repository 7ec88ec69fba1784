package store

import (
	"cmp"
	"fmt"
	"sort"
)

// Capacity is the fixed record ceiling per store.
//
// The snapshot format validates loaded counts against this value, so it is
// part of the on-disk contract, not just a sizing hint.
const Capacity = 100

// Config describes one record store.
//
// K is the record key type (int32 ids, string transaction ids). Key may be
// nil for append-only stores with no identity (the financial log); such
// stores skip duplicate checks and never maintain order.
type Config[T any, K cmp.Ordered] struct {
	// Entity names the store in errors ("product", "customer", ...).
	Entity string

	// Capacity overrides the default record ceiling. Zero means Capacity.
	Capacity int

	// Codec encodes and decodes records for snapshots.
	Codec Codec[T]

	// Key extracts the unique key of a record. Nil for unkeyed stores.
	Key func(T) K

	// Ordered keeps records sorted by key ascending across all mutations.
	// Requires Key. Ordered stores use binary search for lookups.
	Ordered bool
}

// Store is a fixed-capacity collection of records of one entity kind.
//
// The store exclusively owns its backing slice; callers only ever see
// copies. All operations are linear (or logarithmic for ordered lookups)
// which is fine at the declared scale.
//
// Store is not safe for concurrent use. The tool is single-user and
// single-threaded end to end.
type Store[T any, K cmp.Ordered] struct {
	cfg  Config[T, K]
	recs []T
}

// New creates an empty store.
func New[T any, K cmp.Ordered](cfg Config[T, K]) *Store[T, K] {
	if cfg.Capacity <= 0 {
		cfg.Capacity = Capacity
	}
	if cfg.Ordered && cfg.Key == nil {
		panic("store: Ordered requires a Key function")
	}
	return &Store[T, K]{
		cfg:  cfg,
		recs: make([]T, 0, cfg.Capacity),
	}
}

// Entity returns the store's entity name.
func (s *Store[T, K]) Entity() string {
	return s.cfg.Entity
}

// Len returns the live record count.
func (s *Store[T, K]) Len() int {
	return len(s.recs)
}

// Records returns a copy of the live records in store order.
func (s *Store[T, K]) Records() []T {
	out := make([]T, len(s.recs))
	copy(out, s.recs)
	return out
}

// Get returns the record at index i.
func (s *Store[T, K]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(s.recs) {
		return zero, NewNotFoundError(s.cfg.Entity, fmt.Sprintf("index %d", i))
	}
	return s.recs[i], nil
}

// Insert adds a record.
//
// Keyed stores reject duplicates (DUPLICATE_KEY). Ordered stores place the
// record at its sorted position directly instead of re-sorting the whole
// collection after the append. Fails with STORE_FULL at capacity.
func (s *Store[T, K]) Insert(rec T) error {
	if len(s.recs) >= s.cfg.Capacity {
		return NewStoreFullError(s.cfg.Entity, s.cfg.Capacity)
	}
	if s.cfg.Key != nil {
		key := s.cfg.Key(rec)
		if _, ok := s.FindByKey(key); ok {
			return NewDuplicateKeyError(s.cfg.Entity, fmt.Sprint(key))
		}
	}
	if !s.cfg.Ordered {
		s.recs = append(s.recs, rec)
		return nil
	}
	key := s.cfg.Key(rec)
	at := sort.Search(len(s.recs), func(i int) bool {
		return s.cfg.Key(s.recs[i]) >= key
	})
	s.recs = append(s.recs, rec)
	copy(s.recs[at+1:], s.recs[at:])
	s.recs[at] = rec
	return nil
}

// FindByKey returns the index of the record with the given key.
//
// Ordered stores use binary search; unordered keyed stores fall back to a
// linear scan. Unkeyed stores never match.
func (s *Store[T, K]) FindByKey(key K) (int, bool) {
	if s.cfg.Key == nil {
		return -1, false
	}
	if s.cfg.Ordered {
		i := sort.Search(len(s.recs), func(i int) bool {
			return s.cfg.Key(s.recs[i]) >= key
		})
		if i < len(s.recs) && s.cfg.Key(s.recs[i]) == key {
			return i, true
		}
		return -1, false
	}
	for i, rec := range s.recs {
		if s.cfg.Key(rec) == key {
			return i, true
		}
	}
	return -1, false
}

// Update replaces the record at index i in place.
//
// Changing the key of a live record is rejected (INVALID_INPUT): no caller
// legitimately re-keys a record, so the store refuses rather than trusting
// callers to re-validate uniqueness.
func (s *Store[T, K]) Update(i int, rec T) error {
	if i < 0 || i >= len(s.recs) {
		return NewNotFoundError(s.cfg.Entity, fmt.Sprintf("index %d", i))
	}
	if s.cfg.Key != nil && s.cfg.Key(rec) != s.cfg.Key(s.recs[i]) {
		return NewInvalidInputError(s.cfg.Entity, "record keys are immutable")
	}
	s.recs[i] = rec
	return nil
}

// DeleteAt removes the record at index i, shifting later records down one
// slot. Store order is preserved. Side effects the record caused elsewhere
// (reserved inventory, cross-references) are the caller's to reverse first.
func (s *Store[T, K]) DeleteAt(i int) error {
	if i < 0 || i >= len(s.recs) {
		return NewNotFoundError(s.cfg.Entity, fmt.Sprintf("index %d", i))
	}
	copy(s.recs[i:], s.recs[i+1:])
	s.recs = s.recs[:len(s.recs)-1]
	return nil
}

// Reset discards all records.
func (s *Store[T, K]) Reset() {
	s.recs = s.recs[:0]
}

// replaceAll swaps in a freshly loaded record set. Used by Load only; the
// snapshot is trusted to respect capacity because Load validated the count.
func (s *Store[T, K]) replaceAll(recs []T) {
	s.recs = recs
}
