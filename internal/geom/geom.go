// Package geom provides the geometry types consumed by navigation.
//
// Navigation never queries a live UI tree. Hosts expose item and zone
// rectangles through a Viewport and the navigation algorithms treat them as
// plain data.
package geom

import "math"

// Direction is a navigation direction.
type Direction uint8

const (
	// DirNone indicates no direction.
	DirNone Direction = iota
	// DirUp moves toward the top.
	DirUp
	// DirDown moves toward the bottom.
	DirDown
	// DirLeft moves toward the left.
	DirLeft
	// DirRight moves toward the right.
	DirRight
	// DirHome jumps to the first item.
	DirHome
	// DirEnd jumps to the last item.
	DirEnd
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirHome:
		return "home"
	case DirEnd:
		return "end"
	default:
		return "none"
	}
}

// ParseDirection parses a direction name. Unknown names return DirNone.
func ParseDirection(s string) Direction {
	switch s {
	case "up":
		return DirUp
	case "down":
		return DirDown
	case "left":
		return DirLeft
	case "right":
		return DirRight
	case "home":
		return DirHome
	case "end":
		return DirEnd
	default:
		return DirNone
	}
}

// IsVertical reports whether d moves along the vertical axis.
func (d Direction) IsVertical() bool {
	return d == DirUp || d == DirDown
}

// IsHorizontal reports whether d moves along the horizontal axis.
func (d Direction) IsHorizontal() bool {
	return d == DirLeft || d == DirRight
}

// IsBackward reports whether d moves toward the start of the reading order.
func (d Direction) IsBackward() bool {
	return d == DirUp || d == DirLeft || d == DirHome
}

// Point is a 2-D coordinate in pixels.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its edges.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether p lies within r.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Equal reports whether two rectangles are identical.
func (r Rect) Equal(other Rect) bool {
	return r == other
}

// Beyond reports whether other lies on the dir side of r. An edge may
// overlap by at most tolerance pixels.
func (r Rect) Beyond(other Rect, dir Direction, tolerance float64) bool {
	switch dir {
	case DirRight:
		return other.Left >= r.Right()-tolerance
	case DirLeft:
		return other.Right() <= r.Left+tolerance
	case DirDown:
		return other.Top >= r.Bottom()-tolerance
	case DirUp:
		return other.Bottom() <= r.Top+tolerance
	default:
		return false
	}
}

// AxisDistance returns the gap between r and other along dir's axis.
// Overlapping edges yield zero.
func (r Rect) AxisDistance(other Rect, dir Direction) float64 {
	var d float64
	switch dir {
	case DirRight:
		d = other.Left - r.Right()
	case DirLeft:
		d = r.Left - other.Right()
	case DirDown:
		d = other.Top - r.Bottom()
	case DirUp:
		d = r.Top - other.Bottom()
	}
	return math.Max(d, 0)
}

// CrossCenter returns the coordinate of the center perpendicular to dir.
func (r Rect) CrossCenter(dir Direction) float64 {
	c := r.Center()
	if dir.IsVertical() {
		return c.X
	}
	return c.Y
}

// Viewport answers geometry queries for registered items and zones.
// The second return value is false when the id has no known geometry.
type Viewport interface {
	ItemRect(id string) (Rect, bool)
	ZoneRect(id string) (Rect, bool)
}

// MapViewport is a Viewport backed by maps. It is used by hosts that
// compute layout up front and by tests.
type MapViewport struct {
	Items map[string]Rect
	Zones map[string]Rect
}

// NewMapViewport creates an empty MapViewport.
func NewMapViewport() *MapViewport {
	return &MapViewport{
		Items: make(map[string]Rect),
		Zones: make(map[string]Rect),
	}
}

// ItemRect implements Viewport.
func (v *MapViewport) ItemRect(id string) (Rect, bool) {
	if v == nil {
		return Rect{}, false
	}
	r, ok := v.Items[id]
	return r, ok
}

// ZoneRect implements Viewport.
func (v *MapViewport) ZoneRect(id string) (Rect, bool) {
	if v == nil {
		return Rect{}, false
	}
	r, ok := v.Zones[id]
	return r, ok
}

// SetItem records an item rectangle.
func (v *MapViewport) SetItem(id string, r Rect) {
	v.Items[id] = r
}

// SetZone records a zone rectangle.
func (v *MapViewport) SetZone(id string, r Rect) {
	v.Zones[id] = r
}

// NoViewport is a Viewport with no geometry.
type NoViewport struct{}

// ItemRect implements Viewport.
func (NoViewport) ItemRect(string) (Rect, bool) { return Rect{}, false }

// ZoneRect implements Viewport.
func (NoViewport) ZoneRect(string) (Rect, bool) { return Rect{}, false }
