// hal/assert_debug.go

//go:build bspdebug

package hal

import "fmt"

// DebugAsserts reports whether caller-contract checks panic.
const DebugAsserts = true

func assertf(ok bool, format string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(format, args...))
	}
}
