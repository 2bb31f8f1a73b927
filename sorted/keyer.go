package sorted

import "github.com/amp-labs/sortedslice/sortable"

// Keyer is the capability-interface flavor of KeyFunc. Implement it with a
// small named struct when a container should be a plain, nameable field of
// another type instead of carrying a function-typed parameter around:
//
//	type byUserID struct{}
//
//	func (byUserID) Key(u User) sortable.Int { return sortable.Int(u.ID) }
//
//	type Directory struct {
//	    users *sorted.Slice[User, sortable.Int]
//	}
//
//	func NewDirectory() *Directory {
//	    return &Directory{users: sorted.NewFromKeyer[User, sortable.Int](byUserID{})}
//	}
//
// Both type arguments must be spelled out: the compiler cannot infer K from
// a concrete type implementing the interface.
type Keyer[T any, K sortable.Sortable[K]] interface {
	Key(element T) K
}

// NewFromKeyer creates an empty container that derives keys with the given
// Keyer. Equivalent to New with the Keyer's Key method.
func NewFromKeyer[T any, K sortable.Sortable[K]](keyer Keyer[T, K]) *Slice[T, K] {
	return New[T, K](keyer.Key)
}

// FromSliceKeyer creates a container from an existing slice, deriving keys
// with the given Keyer. Equivalent to FromSlice with the Keyer's Key method.
func FromSliceKeyer[T any, K sortable.Sortable[K]](elems []T, keyer Keyer[T, K]) *Slice[T, K] {
	return FromSlice(elems, keyer.Key)
}
