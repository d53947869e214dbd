package gesture

import (
	"math"
	"time"

	"github.com/dshills/focuskit/internal/geom"
)

// clickTracker tracks click patterns for double/triple click detection.
type clickTracker struct {
	maxTime     time.Duration
	maxDistance float64

	lastPos   geom.Point
	lastItem  string
	lastTime  time.Time
	lastCount int
}

func newClickTracker(maxTime time.Duration, maxDistance float64) *clickTracker {
	return &clickTracker{
		maxTime:     maxTime,
		maxDistance: maxDistance,
	}
}

// recordClick records a click and returns the click count (1, 2, or 3).
// Click count wraps back to 1 after 3.
// If timestamp is zero, uses time.Now() as fallback.
func (t *clickTracker) recordClick(pos geom.Point, itemID string, timestamp time.Time) int {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if t.isPartOfSequence(pos, itemID, timestamp) {
		t.lastCount++
		if t.lastCount > 3 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastPos = pos
	t.lastItem = itemID
	t.lastTime = timestamp
	return t.lastCount
}

// isPartOfSequence checks if a click continues the current sequence.
// Clicks on a different item always start a new sequence.
func (t *clickTracker) isPartOfSequence(pos geom.Point, itemID string, timestamp time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() || itemID != t.lastItem {
		return false
	}

	// Negative elapsed time means clock skew; start over.
	elapsed := timestamp.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}

	return manhattan(pos, t.lastPos) <= t.maxDistance
}

func (t *clickTracker) reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
	t.lastPos = geom.Point{}
	t.lastItem = ""
}

func manhattan(a, b geom.Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}
