// uartx/debug_types.go

package uartx

// Stats holds per-port counters since the last Init or DebugReset. They
// are only maintained in builds with the uartxdebug tag.
type Stats struct {
	// ISR-level
	ISRCount   uint32 // ISR entries
	RxBytes    uint32 // bytes moved FIFO -> RX ring
	TxBytes    uint32 // bytes written to UDATA
	RxMaxDrain uint32 // most bytes drained in one ISR

	// Flow control
	Backpressure uint32 // times RX was masked on a full ring
	TxIdle       uint32 // times TX was masked on an empty ring
	RxHighWater  uint32 // highest RX ring occupancy seen by the ISR

	// Sticky USTAT errors observed at ISR entry
	ErrRxOverrun  uint32 // ROE
	ErrTxOverrun  uint32 // TOE
	ErrRxUnderrun uint32 // RUE
}

// DebugStats returns a copy of the counters of id.
func (d *Driver) DebugStats(id ID) Stats {
	if id >= MaxID || d.ports[id] == nil {
		return Stats{}
	}
	return d.ports[id].loadStats()
}

// DebugReset zeroes the counters of id.
func (d *Driver) DebugReset(id ID) {
	if id < MaxID && d.ports[id] != nil {
		d.ports[id].resetStats()
	}
}
