package service

import "sync"

type guardState int

const (
	guardIdle guardState = iota
	guardRelocating
)

// MoveGuard is the single in-flight-relocation lock. A relocation holds it
// across its write-then-reread sequence; reactive layout re-resolution
// checks Active and no-ops while a relocation is in flight. There is no
// queuing: a caller that fails TryAcquire abandons the attempt.
type MoveGuard struct {
	mu    sync.Mutex
	state guardState
}

func NewMoveGuard() *MoveGuard {
	return &MoveGuard{}
}

// TryAcquire transitions Idle → Relocating. Returns false when already held.
func (g *MoveGuard) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != guardIdle {
		return false
	}
	g.state = guardRelocating
	return true
}

// Release transitions back to Idle. Safe to call once per acquired attempt
// on every outcome path.
func (g *MoveGuard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = guardIdle
}

// Active reports whether a relocation is in flight.
func (g *MoveGuard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == guardRelocating
}
