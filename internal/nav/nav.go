// Package nav implements the navigation algorithms.
//
// All functions are pure: they read item ids, zone metadata and geometry and
// return a target, leaving state changes to the caller. Geometry comes from a
// geom.Viewport so the algorithms run without a live UI tree.
package nav

// Tuned geometry constants. Downstream behavior depends on the exact values.
const (
	// DefaultEdgeEntryTolerance is the band, in pixels, next to a zone's
	// entry edge from which seamless entry picks its target item.
	DefaultEdgeEntryTolerance = 50.0

	// DefaultAxisTieTolerance is the axis distance, in pixels, under which
	// two spatial candidates count as equally near.
	DefaultAxisTieTolerance = 1.0

	// DefaultSideTolerance is the edge overlap, in pixels, still accepted
	// when deciding that a rectangle lies on the requested side.
	DefaultSideTolerance = 1.0
)

// Tolerances are the pixel tolerances used by spatial and seamless navigation.
type Tolerances struct {
	EdgeEntry float64
	AxisTie   float64
	Side      float64
}

// DefaultTolerances returns the default tolerances.
func DefaultTolerances() Tolerances {
	return Tolerances{
		EdgeEntry: DefaultEdgeEntryTolerance,
		AxisTie:   DefaultAxisTieTolerance,
		Side:      DefaultSideTolerance,
	}
}

// Result is the outcome of a navigation move.
type Result struct {
	// ID is the target item. It equals the current item when the move holds.
	ID string

	// Blocked reports that the move could not be satisfied inside the zone,
	// either at a boundary or because the direction does not apply. A seamless
	// zone hands blocked moves to a sibling.
	Blocked bool

	// Cross is the cross-axis reference coordinate used by a spatial move.
	// Callers keep it as the sticky coordinate.
	Cross    float64
	HasCross bool
}

func hold(id string) Result {
	return Result{ID: id, Blocked: true}
}
