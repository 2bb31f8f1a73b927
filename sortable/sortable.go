// Package sortable provides sortable wrapper types for primitive types to implement comparison interfaces.
package sortable

import (
	"github.com/amp-labs/sortedslice/compare"
)

type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Compare orders two sortable values, returning -1 when a sorts before b,
// 1 when a sorts after b, and 0 when neither is less than the other.
// It is the bridge between the LessThan capability and APIs that expect a
// three-way comparison function, such as slices.SortStableFunc.
func Compare[T Sortable[T]](a, b T) int {
	switch {
	case a.LessThan(b):
		return -1
	case b.LessThan(a):
		return 1
	default:
		return 0
	}
}
