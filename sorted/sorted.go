package sorted

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/amp-labs/sortedslice/assert"
	"github.com/amp-labs/sortedslice/optional"
	"github.com/amp-labs/sortedslice/sortable"
	"github.com/amp-labs/sortedslice/zero"
)

// ErrIndexOutOfRange is returned by positional operations when the given
// index does not refer to a stored element. It signals stale index
// bookkeeping on the caller's side, which is a different condition from a
// key that is simply absent.
var ErrIndexOutOfRange = errors.New("index out of range")

// KeyFunc derives the sort key for an element. It must be pure: the same
// element must always yield the same key for as long as the element is
// stored in a container.
type KeyFunc[T any, K sortable.Sortable[K]] func(element T) K

// Slice is an array-backed container whose elements stay sorted by a derived
// key. It holds the elements and a parallel, index-aligned cache of their
// keys; searches compare against the cache and never re-derive a key.
//
// The zero value is not usable. Create a Slice with New or FromSlice.
type Slice[T any, K sortable.Sortable[K]] struct {
	elements []T
	keys     []K
	keyOf    KeyFunc[T, K]
}

// New creates an empty container that keys elements with keyOf.
// It does not allocate until elements are inserted.
func New[T any, K sortable.Sortable[K]](keyOf KeyFunc[T, K]) *Slice[T, K] {
	return &Slice[T, K]{keyOf: keyOf}
}

// FromSlice creates a container holding every element of elems, sorted by
// derived key. The key function is invoked exactly once per element, which
// matters when it is expensive. The sort is stable: elements with equal keys
// keep their relative order from elems. The input slice is copied, not
// retained.
func FromSlice[T any, K sortable.Sortable[K]](elems []T, keyOf KeyFunc[T, K]) *Slice[T, K] {
	s := &Slice[T, K]{
		elements: slices.Clone(elems),
		keys:     make([]K, len(elems)),
		keyOf:    keyOf,
	}

	for i, elem := range s.elements {
		s.keys[i] = keyOf(elem)
	}

	s.sortByKey()
	s.checkInvariants()

	return s
}

// Len returns the number of stored elements.
func (s *Slice[T, K]) Len() int {
	return len(s.elements)
}

// IsEmpty returns true if the container holds no elements.
func (s *Slice[T, K]) IsEmpty() bool {
	return len(s.elements) == 0
}

// Find returns the element whose derived key equals key, or the zero value
// and false if no such element exists. When several elements share the key,
// the first of the equal-key run (the earliest inserted) is returned. The
// lookup is O(log n) key comparisons and never calls the key function.
func (s *Slice[T, K]) Find(key K) (T, bool) {
	idx, found := s.Position(key)
	if !found {
		return zero.Value[T](), false
	}

	return s.elements[idx], true
}

// Position returns the index, in sorted order, of the element whose derived
// key equals key, or false if no such element exists. Ties resolve to the
// first element of the equal-key run, same as Find.
//
// A returned index is only valid until the next mutation; Insert and the
// removal operations shift positions.
func (s *Slice[T, K]) Position(key K) (int, bool) {
	idx := s.lowerBound(key)
	if idx < len(s.keys) && s.keys[idx].Equals(key) {
		return idx, true
	}

	return 0, false
}

// Contains returns true if an element with the given derived key is stored.
func (s *Slice[T, K]) Contains(key K) bool {
	_, found := s.Position(key)

	return found
}

// At returns the element at the given index in sorted order.
// Returns ErrIndexOutOfRange if the index does not refer to an element.
func (s *Slice[T, K]) At(index int) (T, error) {
	if index < 0 || index >= len(s.elements) {
		return zero.Value[T](), fmt.Errorf("%w: index %d with length %d",
			ErrIndexOutOfRange, index, len(s.elements))
	}

	return s.elements[index], nil
}

// KeyAt returns the cached derived key at the given index in sorted order.
// Returns ErrIndexOutOfRange if the index does not refer to an element.
func (s *Slice[T, K]) KeyAt(index int) (K, error) {
	if index < 0 || index >= len(s.keys) {
		return zero.Value[K](), fmt.Errorf("%w: index %d with length %d",
			ErrIndexOutOfRange, index, len(s.keys))
	}

	return s.keys[index], nil
}

// Min returns the element with the smallest derived key, or None when empty.
func (s *Slice[T, K]) Min() optional.Value[T] {
	if len(s.elements) == 0 {
		return optional.None[T]()
	}

	return optional.Some(s.elements[0])
}

// Max returns the element with the greatest derived key, or None when empty.
func (s *Slice[T, K]) Max() optional.Value[T] {
	if len(s.elements) == 0 {
		return optional.None[T]()
	}

	return optional.Some(s.elements[len(s.elements)-1])
}

// Insert adds an element, keeping the container sorted. The element's key is
// derived once and cached. When elements with an equal key already exist, the
// new element is placed after them, so the earlier insertion keeps winning
// Find and RemoveByKey. Locating the position is O(log n); shifting the
// backing arrays is O(n) worst case.
func (s *Slice[T, K]) Insert(elem T) {
	key := s.keyOf(elem)
	idx := s.upperBound(key)

	s.elements = slices.Insert(s.elements, idx, elem)
	s.keys = slices.Insert(s.keys, idx, key)

	s.checkInvariants()
}

// Extend adds all given elements and restores sort order with a single
// stable re-sort. For a batch of m insertions into n elements this costs
// O((n+m) log(n+m)) instead of Insert's O(m*n), and it preserves the same
// equal-key placement: new elements land after existing ones.
func (s *Slice[T, K]) Extend(elems ...T) {
	for _, elem := range elems {
		s.elements = append(s.elements, elem)
		s.keys = append(s.keys, s.keyOf(elem))
	}

	s.sortByKey()
	s.checkInvariants()
}

// RemoveByKey removes the first element whose derived key equals key and
// returns it, or returns None and leaves the container untouched when no
// element matches. An absent key is a normal outcome, not an error.
func (s *Slice[T, K]) RemoveByKey(key K) optional.Value[T] {
	idx, found := s.Position(key)
	if !found {
		return optional.None[T]()
	}

	elem := s.elements[idx]
	s.elements = slices.Delete(s.elements, idx, idx+1)
	s.keys = slices.Delete(s.keys, idx, idx+1)

	s.checkInvariants()

	return optional.Some(elem)
}

// RemoveAt removes and returns the element at the given index in sorted
// order. Returns ErrIndexOutOfRange, without mutating the container, if the
// index does not refer to an element.
func (s *Slice[T, K]) RemoveAt(index int) (T, error) {
	if index < 0 || index >= len(s.elements) {
		return zero.Value[T](), fmt.Errorf("%w: index %d with length %d",
			ErrIndexOutOfRange, index, len(s.elements))
	}

	elem := s.elements[index]
	s.elements = slices.Delete(s.elements, index, index+1)
	s.keys = slices.Delete(s.keys, index, index+1)

	s.checkInvariants()

	return elem, nil
}

// Pop removes and returns the element with the greatest derived key, or None
// when the container is empty. This is an O(1) operation.
func (s *Slice[T, K]) Pop() optional.Value[T] {
	if len(s.elements) == 0 {
		return optional.None[T]()
	}

	last := len(s.elements) - 1
	elem := s.elements[last]
	s.elements = s.elements[:last]
	s.keys = s.keys[:last]

	return optional.Some(elem)
}

// Truncate keeps the first n elements in sorted order and drops the rest.
// It has no effect when n is at least the current length.
func (s *Slice[T, K]) Truncate(n int) {
	if n < 0 {
		n = 0
	}

	if n >= len(s.elements) {
		return
	}

	s.elements = s.elements[:n]
	s.keys = s.keys[:n]
}

// SplitOff splits the container in two at the given index. The receiver
// keeps elements [0, at) and the returned container holds elements
// [at, len), both still sorted and sharing the same key function. Returns
// ErrIndexOutOfRange when at exceeds the current length; at == Len() is
// allowed and yields an empty second container.
func (s *Slice[T, K]) SplitOff(at int) (*Slice[T, K], error) {
	if at < 0 || at > len(s.elements) {
		return nil, fmt.Errorf("%w: index %d with length %d",
			ErrIndexOutOfRange, at, len(s.elements))
	}

	other := &Slice[T, K]{
		elements: slices.Clone(s.elements[at:]),
		keys:     slices.Clone(s.keys[at:]),
		keyOf:    s.keyOf,
	}

	s.elements = s.elements[:at]
	s.keys = s.keys[:at]

	s.checkInvariants()
	other.checkInvariants()

	return other, nil
}

// DedupByKey removes all but the first element of every equal-key run.
func (s *Slice[T, K]) DedupByKey() {
	if len(s.elements) < 2 {
		return
	}

	kept := 1
	for i := 1; i < len(s.elements); i++ {
		if s.keys[i].Equals(s.keys[kept-1]) {
			continue
		}

		s.elements[kept] = s.elements[i]
		s.keys[kept] = s.keys[i]
		kept++
	}

	s.elements = s.elements[:kept]
	s.keys = s.keys[:kept]

	s.checkInvariants()
}

// Clear removes all elements from the container.
func (s *Slice[T, K]) Clear() {
	s.elements = nil
	s.keys = nil
}

// Clone creates a shallow copy of the container. The elements themselves are
// not deep-copied; they are copied as values.
func (s *Slice[T, K]) Clone() *Slice[T, K] {
	return &Slice[T, K]{
		elements: slices.Clone(s.elements),
		keys:     slices.Clone(s.keys),
		keyOf:    s.keyOf,
	}
}

// Entries returns all elements in sorted order as a freshly allocated slice.
// Mutating the returned slice does not affect the container.
func (s *Slice[T, K]) Entries() []T {
	return slices.Clone(s.elements)
}

// Seq returns an iterator over the elements in sorted-by-key order. The
// iterator is restartable: ranging over it again yields the elements again.
// The container must not be mutated during iteration. This method is
// compatible with Go 1.23+ range-over-func syntax:
// for elem := range s.Seq() { ... }
func (s *Slice[T, K]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, elem := range s.elements {
			if !yield(elem) {
				return
			}
		}
	}
}

// SeqKeys returns an iterator over (key, element) pairs in sorted-by-key
// order. Keys come from the cache, so iterating does not call the key
// function.
func (s *Slice[T, K]) SeqKeys() iter.Seq2[K, T] {
	return func(yield func(K, T) bool) {
		for i, elem := range s.elements {
			if !yield(s.keys[i], elem) {
				return
			}
		}
	}
}

// lowerBound returns the index of the first key that is not less than key,
// or len(keys) when every key is less.
func (s *Slice[T, K]) lowerBound(key K) int {
	return sort.Search(len(s.keys), func(i int) bool {
		return !s.keys[i].LessThan(key)
	})
}

// upperBound returns the index of the first key strictly greater than key,
// or len(keys) when no key is greater.
func (s *Slice[T, K]) upperBound(key K) int {
	return sort.Search(len(s.keys), func(i int) bool {
		return key.LessThan(s.keys[i])
	})
}

// keyed pairs an element with its derived key while re-sorting.
type keyed[T any, K sortable.Sortable[K]] struct {
	key  K
	elem T
}

// sortByKey stable-sorts elements and keys together by key, using the
// already-derived keys. It never calls the key function.
func (s *Slice[T, K]) sortByKey() {
	pairs := make([]keyed[T, K], len(s.elements))
	for i, elem := range s.elements {
		pairs[i] = keyed[T, K]{key: s.keys[i], elem: elem}
	}

	slices.SortStableFunc(pairs, func(a, b keyed[T, K]) int {
		return sortable.Compare(a.key, b.key)
	})

	for i, pair := range pairs {
		s.elements[i] = pair.elem
		s.keys[i] = pair.key
	}
}

func (s *Slice[T, K]) checkInvariants() {
	if !assert.Enabled {
		return
	}

	assert.True(len(s.keys) == len(s.elements),
		"key cache misaligned: %d keys for %d elements", len(s.keys), len(s.elements))
	assert.True(s.isSorted(), "sort invariant broken")
}

func (s *Slice[T, K]) isSorted() bool {
	for i := 1; i < len(s.keys); i++ {
		if s.keys[i].LessThan(s.keys[i-1]) {
			return false
		}
	}

	return true
}
