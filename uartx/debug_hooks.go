// uartx/debug_hooks.go

//go:build uartxdebug

package uartx

import "sync/atomic"

// DebugEnabled reports whether Stats are maintained.
const DebugEnabled = true

func (p *port) resetStats() {
	p.stats = Stats{}
}

func (p *port) loadStats() Stats {
	return Stats{
		ISRCount:   atomic.LoadUint32(&p.stats.ISRCount),
		RxBytes:    atomic.LoadUint32(&p.stats.RxBytes),
		TxBytes:    atomic.LoadUint32(&p.stats.TxBytes),
		RxMaxDrain: atomic.LoadUint32(&p.stats.RxMaxDrain),

		Backpressure: atomic.LoadUint32(&p.stats.Backpressure),
		TxIdle:       atomic.LoadUint32(&p.stats.TxIdle),
		RxHighWater:  atomic.LoadUint32(&p.stats.RxHighWater),

		ErrRxOverrun:  atomic.LoadUint32(&p.stats.ErrRxOverrun),
		ErrTxOverrun:  atomic.LoadUint32(&p.stats.ErrTxOverrun),
		ErrRxUnderrun: atomic.LoadUint32(&p.stats.ErrRxUnderrun),
	}
}

func storeMax(addr *uint32, v uint32) {
	for {
		max := atomic.LoadUint32(addr)
		if v <= max || atomic.CompareAndSwapUint32(addr, max, v) {
			return
		}
	}
}

// Called at ISR entry with the USTAT value just read.
func (p *port) dbgISR(ustat uint32) {
	atomic.AddUint32(&p.stats.ISRCount, 1)
	if ROE.Extract(ustat) != 0 {
		atomic.AddUint32(&p.stats.ErrRxOverrun, 1)
	}
	if TOE.Extract(ustat) != 0 {
		atomic.AddUint32(&p.stats.ErrTxOverrun, 1)
	}
	if RUE.Extract(ustat) != 0 {
		atomic.AddUint32(&p.stats.ErrRxUnderrun, 1)
	}
}

func (p *port) dbgRx(n int) {
	atomic.AddUint32(&p.stats.RxBytes, uint32(n))
	storeMax(&p.stats.RxMaxDrain, uint32(n))
	storeMax(&p.stats.RxHighWater, uint32(p.rx.Len()))
}

func (p *port) dbgTx(n int) {
	atomic.AddUint32(&p.stats.TxBytes, uint32(n))
}

func (p *port) dbgBackpressure() {
	atomic.AddUint32(&p.stats.Backpressure, 1)
}

func (p *port) dbgTxIdle() {
	atomic.AddUint32(&p.stats.TxIdle, 1)
}
