// mmio/mmio_tinygo.go

//go:build tinygo && mc1322x

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// At returns the register located at addr.
func At(addr uintptr) Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}
