// hal/errors.go

package hal

import "fmt"

// Errno is the category of a checked error. Every checked error is a caller
// mistake: nothing here is transient and nothing should be retried.
type Errno uint8

const (
	// InvalidParameter reports an out-of-range port, pin, source or
	// exception id.
	InvalidParameter Errno = iota + 1
	// NoSuchDevice reports an invalid or unconfigured UART id.
	NoSuchDevice
	// InvalidArgument reports a nil buffer or an empty device name.
	InvalidArgument
)

var errnoNames = [...]string{
	InvalidParameter: "invalid parameter",
	NoSuchDevice:     "no such device",
	InvalidArgument:  "invalid argument",
}

// Error implements error.
func (e Errno) Error() string {
	if int(e) < len(errnoNames) && errnoNames[e] != "" {
		return errnoNames[e]
	}
	return fmt.Sprintf("errno %d", uint8(e))
}
