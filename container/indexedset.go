// Package container provides the generic semantic containers the rest of
// the simulator is built on: a set indexed by a user-supplied key function,
// and a mapping from key to an ordered multiset ("bag") of values.
//
// Both are adapted from processorSim's container_utils.py (IndexedSet,
// BagValDict), which the pipeline loader and simulator core depend on to
// stay agnostic of how identity or grouping is derived from an element.
package container

// IndexedSet is a set of elements of type T, keyed by a caller-supplied
// function rather than T's own identity. It is used to deduplicate units
// and capabilities by their case-folded name while keeping the original
// (possibly differently-cased) element around for reporting.
type IndexedSet[K comparable, T any] struct {
	keyFunc func(T) K
	byKey   map[K]T
}

// NewIndexedSet creates an empty set that indexes elements with keyFunc.
func NewIndexedSet[K comparable, T any](keyFunc func(T) K) *IndexedSet[K, T] {
	return &IndexedSet[K, T]{keyFunc: keyFunc, byKey: make(map[K]T)}
}

// Get retrieves the element in this set matching the given one's key, and
// reports whether one was found.
func (s *IndexedSet[K, T]) Get(elem T) (T, bool) {
	v, ok := s.byKey[s.keyFunc(elem)]
	return v, ok
}

// Add inserts elem into the set, overwriting any existing element with the
// same key.
func (s *IndexedSet[K, T]) Add(elem T) {
	s.byKey[s.keyFunc(elem)] = elem
}

// Len reports the number of elements currently in the set.
func (s *IndexedSet[K, T]) Len() int {
	return len(s.byKey)
}

// GetOrAdd returns the element in the set matching elem's key if one
// exists; otherwise it adds elem and returns it.
func GetOrAdd[K comparable, T any](s *IndexedSet[K, T], elem T) T {
	if existing, ok := s.Get(elem); ok {
		return existing
	}

	s.Add(elem)
	return elem
}
