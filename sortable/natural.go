package sortable

import "facette.io/natsort"

// NaturalString is a sortable wrapper type for strings that orders them
// naturally rather than lexicographically: digit runs embedded in the string
// are compared numerically, so "file2" sorts before "file10".
//
// Use it as a key type whenever the keys are human-facing names with
// numeric suffixes (file names, host names, version-ish labels).
type NaturalString string

// Compile-time check that NaturalString implements Sortable[NaturalString].
var _ Sortable[NaturalString] = (*NaturalString)(nil)

// Equals returns true if both strings are byte-for-byte identical.
// Natural ordering only affects relative order, not equality.
func (s NaturalString) Equals(other NaturalString) bool {
	return string(s) == string(other)
}

// LessThan returns true if this string precedes the other in natural order.
func (s NaturalString) LessThan(other NaturalString) bool {
	return natsort.Compare(string(s), string(other))
}
