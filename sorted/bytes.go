package sorted

import (
	"bytes"
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/amp-labs/sortedslice/assert"
	"github.com/amp-labs/sortedslice/optional"
	"github.com/amp-labs/sortedslice/zero"
)

// BytesKeyFunc derives the byte-sequence sort key for an element. Like
// KeyFunc it must be pure for as long as the element is stored. The returned
// slice is copied into the container, so it may alias the element's memory.
type BytesKeyFunc[T any] func(element T) []byte

// BytesSlice is the byte-sequence-keyed specialization of Slice. Keys are
// ordered lexicographically, with a shorter key sorting before any longer
// key it prefixes. The binary search tracks the prefix the probe key shares
// with the keys bracketing the search window and skips it on every
// comparison, which matters when keys are long and clustered under common
// prefixes (paths, hierarchical names). Invariants, tie-breaking, and
// complexity are the same as Slice: only the comparator differs.
//
// The zero value is not usable. Create a BytesSlice with NewBytes or
// BytesFromSlice.
type BytesSlice[T any] struct {
	elements []T
	keys     [][]byte
	keyOf    BytesKeyFunc[T]
}

// NewBytes creates an empty byte-keyed container that keys elements with
// keyOf. It does not allocate until elements are inserted.
func NewBytes[T any](keyOf BytesKeyFunc[T]) *BytesSlice[T] {
	return &BytesSlice[T]{keyOf: keyOf}
}

// BytesFromSlice creates a byte-keyed container holding every element of
// elems, sorted by derived key. The key function runs exactly once per
// element and each key is copied into the container. The sort is stable.
func BytesFromSlice[T any](elems []T, keyOf BytesKeyFunc[T]) *BytesSlice[T] {
	s := &BytesSlice[T]{
		elements: slices.Clone(elems),
		keys:     make([][]byte, len(elems)),
		keyOf:    keyOf,
	}

	for i, elem := range s.elements {
		s.keys[i] = bytes.Clone(keyOf(elem))
	}

	s.sortByKey()
	s.checkInvariants()

	return s
}

// Len returns the number of stored elements.
func (s *BytesSlice[T]) Len() int {
	return len(s.elements)
}

// IsEmpty returns true if the container holds no elements.
func (s *BytesSlice[T]) IsEmpty() bool {
	return len(s.elements) == 0
}

// Find returns the element whose derived key equals key, or the zero value
// and false if no such element exists. Ties resolve to the first element of
// the equal-key run.
func (s *BytesSlice[T]) Find(key []byte) (T, bool) {
	idx, found := s.Position(key)
	if !found {
		return zero.Value[T](), false
	}

	return s.elements[idx], true
}

// Position returns the index, in sorted order, of the first element whose
// derived key equals key, or false if no such element exists. A returned
// index is only valid until the next mutation.
func (s *BytesSlice[T]) Position(key []byte) (int, bool) {
	idx := s.lowerBound(key)
	if idx < len(s.keys) && bytes.Equal(s.keys[idx], key) {
		return idx, true
	}

	return 0, false
}

// Contains returns true if an element with the given derived key is stored.
func (s *BytesSlice[T]) Contains(key []byte) bool {
	_, found := s.Position(key)

	return found
}

// KeyAt returns a copy of the cached derived key at the given index in
// sorted order. Returns ErrIndexOutOfRange if the index does not refer to
// an element.
func (s *BytesSlice[T]) KeyAt(index int) ([]byte, error) {
	if index < 0 || index >= len(s.keys) {
		return nil, fmt.Errorf("%w: index %d with length %d",
			ErrIndexOutOfRange, index, len(s.keys))
	}

	return bytes.Clone(s.keys[index]), nil
}

// Insert adds an element, keeping the container sorted. The derived key is
// copied and cached. A new element with a key equal to stored ones lands
// after them, so the earliest insertion wins Find and RemoveByKey.
func (s *BytesSlice[T]) Insert(elem T) {
	key := bytes.Clone(s.keyOf(elem))
	idx := s.upperBound(key)

	s.elements = slices.Insert(s.elements, idx, elem)
	s.keys = slices.Insert(s.keys, idx, key)

	s.checkInvariants()
}

// RemoveByKey removes the first element whose derived key equals key and
// returns it, or returns None and leaves the container untouched when no
// element matches.
func (s *BytesSlice[T]) RemoveByKey(key []byte) optional.Value[T] {
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
func (s *BytesSlice[T]) RemoveAt(index int) (T, error) {
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
// when the container is empty.
func (s *BytesSlice[T]) Pop() optional.Value[T] {
	if len(s.elements) == 0 {
		return optional.None[T]()
	}

	last := len(s.elements) - 1
	elem := s.elements[last]
	s.elements = s.elements[:last]
	s.keys = s.keys[:last]

	return optional.Some(elem)
}

// Clear removes all elements from the container.
func (s *BytesSlice[T]) Clear() {
	s.elements = nil
	s.keys = nil
}

// Entries returns all elements in sorted order as a freshly allocated slice.
func (s *BytesSlice[T]) Entries() []T {
	return slices.Clone(s.elements)
}

// Seq returns a restartable iterator over the elements in sorted-by-key
// order. The container must not be mutated during iteration.
func (s *BytesSlice[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, elem := range s.elements {
			if !yield(elem) {
				return
			}
		}
	}
}

// lowerBound returns the index of the first key that is not less than key.
// Both bound searches keep track of how many leading bytes the probe key is
// known to share with the keys bracketing the remaining window. Any key
// inside the window shares at least the smaller of the two prefixes with the
// probe, so each comparison resumes after it instead of starting at byte
// zero.
func (s *BytesSlice[T]) lowerBound(key []byte) int {
	base, size := 0, len(s.keys)
	if size == 0 {
		return 0
	}

	lowerShared, upperShared := 0, 0

	for size > 1 {
		half := size / 2
		mid := base + half
		skip := min(lowerShared, upperShared)

		shared, order := comparePrefix(s.keys[mid], key, skip)
		if order < 0 {
			lowerShared = skip + shared
			base = mid
		} else {
			upperShared = skip + shared
		}

		size -= half
	}

	if _, order := comparePrefix(s.keys[base], key, min(lowerShared, upperShared)); order < 0 {
		base++
	}

	return base
}

// upperBound returns the index of the first key strictly greater than key.
func (s *BytesSlice[T]) upperBound(key []byte) int {
	base, size := 0, len(s.keys)
	if size == 0 {
		return 0
	}

	lowerShared, upperShared := 0, 0

	for size > 1 {
		half := size / 2
		mid := base + half
		skip := min(lowerShared, upperShared)

		shared, order := comparePrefix(s.keys[mid], key, skip)
		if order <= 0 {
			lowerShared = skip + shared
			base = mid
		} else {
			upperShared = skip + shared
		}

		size -= half
	}

	if _, order := comparePrefix(s.keys[base], key, min(lowerShared, upperShared)); order <= 0 {
		base++
	}

	return base
}

// comparePrefix lexicographically compares a[skip:] against b[skip:]. It
// returns how many further leading bytes the two share and the order of a
// relative to b (-1, 0, or 1). Callers guarantee skip never exceeds either
// length: it is always a prefix length both keys are known to share.
func comparePrefix(a, b []byte, skip int) (shared int, order int) {
	a, b = a[skip:], b[skip:]
	limit := min(len(a), len(b))

	for i := range limit {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return i, -1
			}

			return i, 1
		}
	}

	return limit, cmp.Compare(len(a), len(b))
}

// bytesKeyed pairs an element with its derived key while re-sorting.
type bytesKeyed[T any] struct {
	key  []byte
	elem T
}

// sortByKey stable-sorts elements and keys together by key. Bulk sorting
// compares keys from byte zero; prefix tracking only helps bound searches.
func (s *BytesSlice[T]) sortByKey() {
	pairs := make([]bytesKeyed[T], len(s.elements))
	for i, elem := range s.elements {
		pairs[i] = bytesKeyed[T]{key: s.keys[i], elem: elem}
	}

	slices.SortStableFunc(pairs, func(a, b bytesKeyed[T]) int {
		return bytes.Compare(a.key, b.key)
	})

	for i, p := range pairs {
		s.elements[i] = p.elem
		s.keys[i] = p.key
	}
}

func (s *BytesSlice[T]) checkInvariants() {
	if !assert.Enabled {
		return
	}

	assert.True(len(s.keys) == len(s.elements),
		"key cache misaligned: %d keys for %d elements", len(s.keys), len(s.elements))

	for i := 1; i < len(s.keys); i++ {
		assert.True(bytes.Compare(s.keys[i-1], s.keys[i]) <= 0, "sort invariant broken at %d", i)
	}
}
