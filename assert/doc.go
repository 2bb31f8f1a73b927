// Package assert provides internal development-time assertions.
//
// Assertions panic on failure and are meant to catch invariant violations
// during development and testing, not to validate caller input. Building
// with the assertions_disabled tag compiles them out:
//
//	go build -tags assertions_disabled ./...
//
// Note that arguments to an assertion are still evaluated in disabled
// builds. Wrap expensive checks in an Enabled guard:
//
//	if assert.Enabled {
//	    assert.True(expensiveCheck())
//	}
package assert
