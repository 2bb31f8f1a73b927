//go:build assertions_disabled

package assert

// Enabled reports whether assertions are compiled into this build.
const Enabled = false

// True asserts that the given value is true.
// If the assertion fails, it panics with a message.
// The optional args can be used to provide a formatted panic message:
// - If the first arg is a string, it's used as a format string with remaining args.
// - Otherwise, all args are included in the panic message.
func True(value bool, args ...any) {
	// Intentionally left blank
}

// False asserts that the given value is false.
// If the assertion fails, it panics with a message.
// The optional args are passed to True and follow the same formatting rules.
func False(value bool, args ...any) {
	// Intentionally left blank
}
