// hal/guard.go

package hal

// Guard releases a single-level critical section. Use it with defer so the
// saved state is restored on every exit path:
//
//	g := x.Critical()
//	defer g.Release()
type Guard struct {
	state   *guardState
	owner   string
	restore func()
	done    bool
}

type guardState struct {
	held bool
}

func newGuard(s *guardState, owner string, restore func()) *Guard {
	return &Guard{state: s, owner: owner, restore: restore}
}

// Release restores the state saved when the guard was taken. Only the first
// call has an effect.
func (g *Guard) Release() {
	if g.done {
		assertf(false, "%s: critical section released twice", g.owner)
		return
	}
	g.done = true
	g.restore()
	g.state.held = false
}

func (s *guardState) acquire(owner string) {
	assertf(!s.held, "%s: nested critical section", owner)
	s.held = true
}

// SingleLevel tracks a save/restore pair that does not count nesting. Other
// packages use it to get the same debug checking as Exceptions.Critical.
type SingleLevel struct {
	state guardState
	owner string
}

// NewSingleLevel returns a tracker reporting problems under owner.
func NewSingleLevel(owner string) *SingleLevel {
	return &SingleLevel{owner: owner}
}

// Acquire marks the section as held. Debug builds panic if it already is.
func (l *SingleLevel) Acquire() { l.state.acquire(l.owner) }

// Release marks the section as free. Debug builds panic if it was not held,
// which catches a restore with no matching disable.
func (l *SingleLevel) Release() {
	assertf(l.state.held, "%s: restore without a matching disable", l.owner)
	l.state.held = false
}

// Wrap returns a guard running restore on release for a section the caller
// has already acquired.
func (l *SingleLevel) Wrap(restore func()) *Guard {
	return newGuard(&l.state, l.owner, restore)
}

// Enter acquires the section and returns a guard running restore on release.
func (l *SingleLevel) Enter(restore func()) *Guard {
	l.Acquire()
	return l.Wrap(restore)
}

// Held reports whether the section is currently held.
func (l *SingleLevel) Held() bool { return l.state.held }
