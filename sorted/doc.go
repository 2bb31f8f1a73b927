// Package sorted provides array-backed associative containers that keep their
// elements ordered by a derived key.
//
// # Overview
//
// A [Slice] stores elements of any type T contiguously, sorted by a key of a
// [github.com/amp-labs/sortedslice/sortable.Sortable] type K that a key
// function derives from each element. Keys are derived once, when an element
// enters the container, and cached in a parallel slice so that searches never
// re-invoke the key function. Lookups are binary searches over the cached
// keys: O(log n) comparisons. Insertions and removals shift the backing
// arrays: O(n) worst case.
//
// This trades mutation cost for a compact memory representation, fast
// iteration, and lookups that beat linear scans without hash-table overhead.
// The sweet spot is small-to-moderate lookup tables that are read far more
// often than they are changed. It is not a general sorted map: one key per
// container, no range queries, no internal locking.
//
// # Example
//
//	type User struct {
//	    ID   int
//	    Name string
//	}
//
//	users := sorted.FromSlice(loaded, func(u User) sortable.Int {
//	    return sortable.Int(u.ID)
//	})
//
//	if u, ok := users.Find(sortable.Int(42)); ok {
//	    fmt.Println(u.Name)
//	}
//
// # Equal keys
//
// Multiple elements may share a key. Insert places a new element after the
// existing elements with an equal key, and Find, Position, and RemoveByKey
// resolve to the first element of an equal-key run, so among duplicates the
// first-inserted element wins. FromSlice is stable: elements that compare
// equal keep their relative order from the input.
//
// # Key immutability
//
// The key derived from an element must not change while the element is
// stored. The container cannot detect a drifting key; searches would silently
// miss. If part of an element that feeds its key must change, remove the
// element, change it, and insert it again.
//
// # Byte-sequence keys
//
// [BytesSlice] is a specialization for keys that are byte sequences (paths,
// names, encoded IDs). It orders keys lexicographically and its binary search
// skips the prefix shared by the probe key and the bracketing keys, which
// pays off when keys are long and share long prefixes. Everything else -
// invariants, tie-breaking, complexity - matches Slice.
//
// # Thread Safety
//
// Containers in this package are not safe for concurrent use. Callers sharing
// a container across goroutines must synchronize externally; a sync.RWMutex
// permitting concurrent Find/Position and exclusive Insert/Remove is the
// usual arrangement.
package sorted
