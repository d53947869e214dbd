package sensor

import "sync"

type target struct {
	zoneID string
	itemID string
}

// Guard suppresses focus-in notifications caused by the kernel itself.
//
// Run marks a kernel-driven focus call. A notification arriving while Run
// is executing, or the first notification afterwards for the same target,
// is suppressed. Any other notification clears the expectation.
type Guard struct {
	mu       sync.Mutex
	depth    int
	expected *target
}

// Run calls fn as a kernel-driven focus of zoneID/itemID.
func (g *Guard) Run(zoneID, itemID string, fn func()) {
	g.mu.Lock()
	g.depth++
	g.expected = &target{zoneID: zoneID, itemID: itemID}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.depth--
		g.mu.Unlock()
	}()
	fn()
}

// Suppress reports whether a focus-in notification for zoneID/itemID
// was caused by Run and must not be dispatched.
func (g *Guard) Suppress(zoneID, itemID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	match := g.expected != nil && *g.expected == target{zoneID: zoneID, itemID: itemID}
	if match || g.depth == 0 {
		g.expected = nil
	}
	return match || g.depth > 0
}

// Active reports whether a kernel-driven focus is in progress.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.depth > 0
}
