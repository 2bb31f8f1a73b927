// Package sortable provides wrapper types for primitive types that implement
// the Sortable interface, enabling their use as keys in sorted data structures.
//
// # Overview
//
// The sortable package defines the [Sortable] interface and provides ready-to-use
// implementations for common primitive types: [Int], [Uint64], [Byte], [String],
// and [NaturalString]. These types are designed to work with the sorted containers
// in [github.com/amp-labs/sortedslice/sorted], which derive a key of a Sortable
// type from every stored element.
//
// The Sortable interface extends [github.com/amp-labs/sortedslice/compare.Comparable]
// by adding a LessThan method, providing both equality comparison and ordering.
//
// # Usage
//
// Use the provided wrapper types when declaring a key function:
//
//	// Key users by their numeric ID
//	users := sorted.New(func(u User) sortable.Int {
//	    return sortable.Int(u.ID)
//	})
//	users.Insert(User{ID: 42, Name: "amelia"})
//
//	// Elements are returned in key order
//	for u := range users.Seq() {
//	    fmt.Println(u.Name)
//	}
//
// # Creating Custom Sortable Types
//
// To create a custom sortable type, implement the Sortable interface:
//
//	type Version struct {
//	    Major, Minor int
//	}
//
//	func (v Version) Equals(other Version) bool {
//	    return v.Major == other.Major && v.Minor == other.Minor
//	}
//
//	func (v Version) LessThan(other Version) bool {
//	    if v.Major != other.Major {
//	        return v.Major < other.Major
//	    }
//	    return v.Minor < other.Minor
//	}
//
// LessThan must describe a strict weak ordering that is consistent with Equals:
// two values are equal exactly when neither is less than the other. The sorted
// containers rely on this agreement when searching for keys.
//
// # Thread Safety
//
// The wrapper types in this package are value types and are inherently thread-safe
// for read operations. However, containers keyed by these types are not thread-safe
// and require external synchronization for concurrent access.
package sortable
