package geometry

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	if got := r.Right(); got != 4 {
		t.Errorf("Right() = %v, want 4", got)
	}
	if got := r.Bottom(); got != 6 {
		t.Errorf("Bottom() = %v, want 6", got)
	}
	if got := r.CenterX(); got != 2.5 {
		t.Errorf("CenterX() = %v, want 2.5", got)
	}
	if got := r.CenterY(); got != 4 {
		t.Errorf("CenterY() = %v, want 4", got)
	}
}

func TestRectArea(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want float64
	}{
		{
			name: "positive",
			rect: NewRect(0, 0, 3, 4),
			want: 12,
		},
		{
			name: "zero width",
			rect: NewRect(0, 0, 0, 4),
			want: 0,
		},
		{
			name: "negative dimensions",
			rect: NewRect(0, 0, -3, 4),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Area(); got != tt.want {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{
			name: "overlapping",
			a:    NewRect(0, 0, 2, 2),
			b:    NewRect(1, 1, 2, 2),
			want: true,
		},
		{
			name: "disjoint",
			a:    NewRect(0, 0, 1, 1),
			b:    NewRect(5, 5, 1, 1),
			want: false,
		},
		{
			name: "edge touching only",
			a:    NewRect(0, 0, 1, 1),
			b:    NewRect(1, 0, 1, 1),
			want: false,
		},
		{
			name: "contained",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(2, 2, 1, 1),
			want: true,
		},
		{
			name: "degenerate never intersects",
			a:    NewRect(0, 0, 0, 10),
			b:    NewRect(0, 0, 10, 10),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("reverse Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 10, 7.5)

	tests := []struct {
		name  string
		inner Rect
		want  bool
	}{
		{
			name:  "fully inside",
			inner: NewRect(1, 1, 3, 3),
			want:  true,
		},
		{
			name:  "exact match",
			inner: outer,
			want:  true,
		},
		{
			name:  "overflow right",
			inner: NewRect(8, 1, 3, 3),
			want:  false,
		},
		{
			name:  "rounding tolerance",
			inner: NewRect(0, 0, 10+1e-12, 7.5),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 7.5).Inset(0.5)
	want := NewRect(0.5, 0.5, 9, 6.5)
	if r != want {
		t.Errorf("Inset() = %+v, want %+v", r, want)
	}

	// Over-inset collapses to the center rather than going negative.
	collapsed := NewRect(0, 0, 1, 1).Inset(2)
	if !collapsed.IsDegenerate() {
		t.Errorf("over-inset should be degenerate, got %+v", collapsed)
	}
	if collapsed.Left != 0.5 || collapsed.Top != 0.5 {
		t.Errorf("collapsed rect should sit at center, got %+v", collapsed)
	}
}

func TestRectClamp(t *testing.T) {
	r := NewRect(1, 1, -2, 3).Clamp()
	if r.Width != 0 || r.Height != 3 {
		t.Errorf("Clamp() = %+v, want width 0 height 3", r)
	}
}

func TestRectScale(t *testing.T) {
	target := NewRect(1, 1, 8, 4)
	got := target.Scale(NewRect(0.25, 0.5, 0.5, 0.5))
	want := NewRect(3, 3, 4, 2)

	const tol = 1e-9
	if math.Abs(got.Left-want.Left) > tol || math.Abs(got.Top-want.Top) > tol ||
		math.Abs(got.Width-want.Width) > tol || math.Abs(got.Height-want.Height) > tol {
		t.Errorf("Scale() = %+v, want %+v", got, want)
	}
}
