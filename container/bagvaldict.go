package container

// BagValDict is a dictionary whose values are unsorted lists ("bags") of
// elements, as used for the per-cycle unit utilization table: each key is a
// unit name and each value is the (unordered, for equality purposes) list
// of instructions currently hosted by that unit.
//
// A missing key behaves as an empty bag rather than an error, mirroring
// processorSim's UtilizationReg/BagValDict, which deliberately never
// raises on lookup of a unit with no instructions.
type BagValDict[K comparable, V any] struct {
	m map[K][]V
}

// NewBagValDict creates an empty bag-valued dictionary.
func NewBagValDict[K comparable, V any]() *BagValDict[K, V] {
	return &BagValDict[K, V]{m: make(map[K][]V)}
}

// Get returns the (possibly empty) bag of values stored under key. The
// returned slice must not be mutated directly by callers; use Append/
// RemoveAt/Delete instead.
func (d *BagValDict[K, V]) Get(key K) []V {
	return d.m[key]
}

// Append adds v to the bag stored under key.
func (d *BagValDict[K, V]) Append(key K, v V) {
	d.m[key] = append(d.m[key], v)
}

// RemoveAt removes the element at position idx from the bag stored under
// key, deleting the key entirely if the bag becomes empty.
func (d *BagValDict[K, V]) RemoveAt(key K, idx int) {
	lst := d.m[key]
	lst = append(lst[:idx], lst[idx+1:]...)

	if len(lst) == 0 {
		delete(d.m, key)
		return
	}

	d.m[key] = lst
}

// Delete removes every value stored under key.
func (d *BagValDict[K, V]) Delete(key K) {
	delete(d.m, key)
}

// Has reports whether key currently has a non-empty bag.
func (d *BagValDict[K, V]) Has(key K) bool {
	_, ok := d.m[key]
	return ok
}

// Keys returns the keys currently holding a non-empty bag, in unspecified
// order. Callers needing a deterministic traversal (as the simulator core
// does) must sort the result themselves.
func (d *BagValDict[K, V]) Keys() []K {
	keys := make([]K, 0, len(d.m))
	for k := range d.m {
		keys = append(keys, k)
	}

	return keys
}

// Len reports the number of keys with a non-empty bag.
func (d *BagValDict[K, V]) Len() int {
	return len(d.m)
}

// Clone returns a deep copy of this dictionary: the key set, the bags, and
// the elements within them (via copyVal) are all independent of the
// original, so mutating the copy never affects d.
func (d *BagValDict[K, V]) Clone(copyVal func(V) V) *BagValDict[K, V] {
	out := NewBagValDict[K, V]()

	for k, lst := range d.m {
		cloned := make([]V, len(lst))
		for i, v := range lst {
			cloned[i] = copyVal(v)
		}

		out.m[k] = cloned
	}

	return out
}

// Equal reports whether d and other hold, for every key, the same multiset
// of values under eq — list order within a bag does not matter, matching
// processorSim's BagValDict.__eq__, which compares sorted value lists.
func (d *BagValDict[K, V]) Equal(other *BagValDict[K, V], eq func(a, b V) bool) bool {
	if d.Len() != other.Len() {
		return false
	}

	for k, lst := range d.m {
		if !other.Has(k) {
			return false
		}

		if !bagEqual(lst, other.m[k], eq) {
			return false
		}
	}

	return true
}

// bagEqual reports whether two value lists contain the same elements with
// the same multiplicities, ignoring order.
func bagEqual[V any](a, b []V, eq func(a, b V) bool) bool {
	if len(a) != len(b) {
		return false
	}

	used := make([]bool, len(b))

	for _, av := range a {
		matched := false

		for i, bv := range b {
			if used[i] {
				continue
			}

			if eq(av, bv) {
				used[i] = true
				matched = true
				break
			}
		}

		if !matched {
			return false
		}
	}

	return true
}
