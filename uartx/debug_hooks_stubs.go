// uartx/debug_hooks_stubs.go

//go:build !uartxdebug

package uartx

// DebugEnabled reports whether Stats are maintained.
const DebugEnabled = false

func (p *port) resetStats()      {}
func (p *port) loadStats() Stats { return Stats{} }
func (p *port) dbgISR(uint32)    {}
func (p *port) dbgRx(int)        {}
func (p *port) dbgTx(int)        {}
func (p *port) dbgBackpressure() {}
func (p *port) dbgTxIdle()       {}
