package registry

// Keyed is implemented by values held in a UniqueStore: they carry their
// own key and can merge another value's fields into themselves.
type Keyed[K comparable, V any] interface {
	Key() K
	SetKey(K)
	Update(V)
}

// UniqueStore holds at most one live value per key. Inserting under an
// occupied key merges the incoming fields into the stored value instead
// of replacing it, so long-lived references held elsewhere (itineraries,
// booking lists) keep pointing at the canonical instance.
//
// Every operation is total: nothing here returns an error or panics for
// a missing or colliding key. Iteration order is unspecified.
type UniqueStore[K comparable, V Keyed[K, V]] struct {
	m map[K]V
}

// NewUniqueStore creates an empty store.
func NewUniqueStore[K comparable, V Keyed[K, V]]() *UniqueStore[K, V] {
	return &UniqueStore[K, V]{m: map[K]V{}}
}

// Get returns the value under k, if any.
func (s *UniqueStore[K, V]) Get(k K) (V, bool) {
	v, ok := s.m[k]
	return v, ok
}

// Contains reports whether k is occupied.
func (s *UniqueStore[K, V]) Contains(k K) bool {
	_, ok := s.m[k]
	return ok
}

// Put inserts v, or merges v's fields into the value already stored under
// v's key. The returned value is the canonical live instance for that
// key.
func (s *UniqueStore[K, V]) Put(v V) V {
	if held, ok := s.m[v.Key()]; ok {
		held.Update(v)
		return held
	}
	s.m[v.Key()] = v
	return v
}

// Remove deletes the value under k. Absent keys are ignored.
func (s *UniqueStore[K, V]) Remove(k K) {
	delete(s.m, k)
}

// Rename moves v to newKey, rewriting v's own key field. If newKey is
// already occupied nothing happens and Rename reports false; callers that
// need to distinguish collision from success check the return.
func (s *UniqueStore[K, V]) Rename(v V, newKey K) bool {
	if _, ok := s.m[newKey]; ok {
		return false
	}
	delete(s.m, v.Key())
	v.SetKey(newKey)
	s.m[newKey] = v
	return true
}

// Values returns all stored values in unspecified order.
func (s *UniqueStore[K, V]) Values() []V {
	out := make([]V, 0, len(s.m))
	for _, v := range s.m {
		out = append(out, v)
	}
	return out
}

// Len returns the number of stored values.
func (s *UniqueStore[K, V]) Len() int { return len(s.m) }

// Clear drops every value.
func (s *UniqueStore[K, V]) Clear() {
	s.m = map[K]V{}
}
