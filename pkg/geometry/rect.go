// Package geometry provides the rectangle arithmetic shared by the
// classifier, safe-area calculator, layout generator, and render sinks.
//
// All coordinates are in inches with the origin at the top-left corner of
// the slide canvas. Rect is a value type: every operation returns a new
// rectangle and never mutates its receiver.
package geometry

const eps = 1e-9

// Rect is an axis-aligned rectangle. Left/Top locate the top-left corner;
// Width and Height extend right and down.
type Rect struct {
	Left   float64 `json:"left" bson:"left"`
	Top    float64 `json:"top" bson:"top"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// NewRect constructs a rectangle from its top-left corner and size.
func NewRect(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Area returns width × height, treating degenerate rectangles as zero.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// IsDegenerate reports whether the rectangle has no usable area.
func (r Rect) IsDegenerate() bool { return r.Width <= eps || r.Height <= eps }

// Intersects reports whether r and o share interior area. Rectangles that
// only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.IsDegenerate() || o.IsDegenerate() {
		return false
	}
	return r.Left < o.Right()-eps && o.Left < r.Right()-eps &&
		r.Top < o.Bottom()-eps && o.Top < r.Bottom()-eps
}

// Contains reports whether o lies entirely inside r, edges included.
// A small tolerance absorbs float rounding from ratio arithmetic.
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left-eps && o.Top >= r.Top-eps &&
		o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

// Inset returns r shrunk by margin on all four sides. If the margin
// exceeds half a dimension the result collapses to a zero-size rectangle
// at the center.
func (r Rect) Inset(margin float64) Rect {
	out := Rect{
		Left:   r.Left + margin,
		Top:    r.Top + margin,
		Width:  r.Width - 2*margin,
		Height: r.Height - 2*margin,
	}
	if out.Width < 0 {
		out.Left = r.CenterX()
		out.Width = 0
	}
	if out.Height < 0 {
		out.Top = r.CenterY()
		out.Height = 0
	}
	return out
}

// Clamp returns r with negative dimensions raised to zero, keeping the
// top-left corner in place. Used to normalize malformed template geometry
// before classification.
func (r Rect) Clamp() Rect {
	out := r
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// ZeroAt returns a zero-size rectangle positioned at the center of r.
// The safe-area calculator uses this as its degenerate fallback result.
func (r Rect) ZeroAt() Rect {
	return Rect{Left: r.CenterX(), Top: r.CenterY()}
}

// Scale maps a fractional sub-rectangle (coordinates and sizes in [0,1]
// relative to r) into absolute coordinates within r.
func (r Rect) Scale(frac Rect) Rect {
	return Rect{
		Left:   r.Left + frac.Left*r.Width,
		Top:    r.Top + frac.Top*r.Height,
		Width:  frac.Width * r.Width,
		Height: frac.Height * r.Height,
	}
}
