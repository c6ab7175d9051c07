// Package memory provides the ephemeral key/value store used to hand state
// between pipeline stages within one run. Nothing stored here outlives the
// process.
package memory

// Store is a per-run scratchpad. It is not safe for concurrent writes; the
// pipeline has a single writer (the coordinator) and a strictly sequential
// flow of control, so no locking is needed.
type Store struct {
	entries map[string]any
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]any)}
}

// Store inserts or overwrites the value under key.
func (s *Store) Store(key string, value any) {
	s.entries[key] = value
}

// Retrieve returns the value under key, or nil if absent.
func (s *Store) Retrieve(key string) any {
	return s.entries[key]
}

// RetrieveDefault returns the value under key, or def if absent.
func (s *Store) RetrieveDefault(key string, def any) any {
	if v, ok := s.entries[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.entries = make(map[string]any)
}

// Snapshot returns a copy of the current contents. Mutating the returned
// map does not affect the store. Values are shared, not deep-copied.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}
