// hal/assert_release.go

//go:build !bspdebug

package hal

// DebugAsserts reports whether caller-contract checks panic.
const DebugAsserts = false

func assertf(bool, string, ...interface{}) {}
