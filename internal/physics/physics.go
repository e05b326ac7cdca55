// Package physics provides axis-aligned box geometry for collision checks.
package physics

// Rect is an axis-aligned box with its origin at the top-left corner.
// Y grows downward, matching the play field.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Size
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center of the box.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func Overlaps(a, b Rect) bool {
	return a.Left() < b.Right() &&
		a.Right() > b.Left() &&
		a.Top() < b.Bottom() &&
		a.Bottom() > b.Top()
}

// Clamp restricts v to [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
