//go:build !assertions_disabled

package assert

import "fmt"

// Enabled reports whether assertions are compiled into this build.
// Guard expensive checks with it so they cost nothing when the
// assertions_disabled build tag is set:
//
//	if assert.Enabled {
//	    assert.True(s.isSorted(), "sort invariant broken after insert")
//	}
const Enabled = true

// True asserts that the given value is true.
// If the assertion fails, it panics with a message.
// The optional args can be used to provide a formatted panic message:
// - If the first arg is a string, it's used as a format string with remaining args.
// - Otherwise, all args are included in the panic message.
func True(value bool, args ...any) {
	if value {
		return
	}

	if len(args) == 0 {
		panic("assertion failed")
	}

	first := args[0]
	remaining := args[1:]

	if firstStr, ok := first.(string); ok {
		panic(fmt.Sprintf(firstStr, remaining...))
	}

	panic(fmt.Sprintf("assertion failed: %v", args))
}

// False asserts that the given value is false.
// If the assertion fails, it panics with a message.
// The optional args are passed to True and follow the same formatting rules.
func False(value bool, args ...any) {
	True(!value, args...)
}
