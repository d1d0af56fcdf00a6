package layout

import (
	"reflect"
	"testing"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

var target = geometry.NewRect(0.5, 1.5, 12.333, 5.3)

func contentItems(n int) []deck.ContentItem {
	items := make([]deck.ContentItem, n)
	for i := range items {
		items[i] = deck.ContentItem{Kind: deck.BoxContent, Payload: "item"}
	}
	return items
}

func assertWithinTarget(t *testing.T, boxes []deck.ElementBox) {
	t.Helper()
	for i, b := range boxes {
		if b.Bounds.Width < 0 || b.Bounds.Height < 0 {
			t.Errorf("box %d has negative dimensions: %+v", i, b.Bounds)
		}
		if !target.Contains(b.Bounds) {
			t.Errorf("box %d %+v leaves target %+v", i, b.Bounds, target)
		}
	}
}

func assertNonOverlapping(t *testing.T, boxes []deck.ElementBox) {
	t.Helper()
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].Bounds.Intersects(boxes[j].Bounds) {
				t.Errorf("boxes %d and %d overlap: %+v vs %+v", i, j, boxes[i].Bounds, boxes[j].Bounds)
			}
		}
	}
}

func TestGenerateSingle(t *testing.T) {
	items := []deck.ContentItem{
		{Kind: deck.BoxTitle, Payload: "Results"},
		{Kind: deck.BoxTable, Payload: "q3-table"},
	}

	boxes, err := Generate(target, PatternSingle, Params{}, items, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(boxes))
	}
	if boxes[0].Kind != deck.BoxTitle || boxes[0].Payload != "Results" {
		t.Errorf("title box = %+v", boxes[0])
	}
	if boxes[1].Kind != deck.BoxTable || boxes[1].Payload != "q3-table" {
		t.Errorf("content box = %+v", boxes[1])
	}
	if boxes[0].Bounds.Width != target.Width {
		t.Errorf("title width = %g, want full target width %g", boxes[0].Bounds.Width, target.Width)
	}
	assertWithinTarget(t, boxes)
	assertNonOverlapping(t, boxes)
}

func TestGenerateTwoColumnRatio(t *testing.T) {
	for _, ratio := range []float64{0.3, 0.5, 0.7} {
		boxes, err := Generate(target, PatternTwoColumn, Params{Ratio: ratio}, contentItems(2), DefaultConfig())
		if err != nil {
			t.Fatalf("Generate(ratio=%g) error = %v", ratio, err)
		}
		if len(boxes) != 3 {
			t.Fatalf("got %d boxes, want 3", len(boxes))
		}

		left, right := boxes[1].Bounds, boxes[2].Bounds
		got := left.Width / (left.Width + right.Width)
		if diff := got - ratio; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("left share = %g, want %g", got, ratio)
		}
		if gutter := right.Left - left.Right(); gutter < 0 {
			t.Errorf("gutter = %g, want >= 0", gutter)
		}
		assertWithinTarget(t, boxes)
		assertNonOverlapping(t, boxes)
	}
}

func TestGenerateTwoColumnClampsRatio(t *testing.T) {
	boxes, err := Generate(target, PatternTwoColumn, Params{Ratio: 1.7}, contentItems(2), DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	left, right := boxes[1].Bounds, boxes[2].Bounds
	if right.Width <= 0 {
		t.Errorf("clamped ratio must leave the right column non-degenerate, got width %g", right.Width)
	}
	if left.Width <= right.Width {
		t.Errorf("ratio above 1 should clamp high, got left %g <= right %g", left.Width, right.Width)
	}
}

func TestGenerateGrid(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		items      int
		wantBoxes  int // including title
		wantCode   errors.Code
	}{
		{"exact fit", 2, 3, 6, 7, ""},
		{"partial fill omits trailing cells", 2, 3, 4, 5, ""},
		{"single cell", 1, 1, 1, 2, ""},
		{"zero items yields title only", 2, 2, 0, 1, ""},
		{"over capacity", 2, 3, 7, 0, errors.ErrCodeLayoutCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes, err := Generate(target, PatternGrid, Params{Rows: tt.rows, Cols: tt.cols}, contentItems(tt.items), DefaultConfig())
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(boxes) != tt.wantBoxes {
				t.Fatalf("got %d boxes, want %d", len(boxes), tt.wantBoxes)
			}
			assertWithinTarget(t, boxes)
			assertNonOverlapping(t, boxes)
		})
	}
}

func TestGenerateGridCellsEqualSize(t *testing.T) {
	boxes, err := Generate(target, PatternGrid, Params{Rows: 2, Cols: 2}, contentItems(4), DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	first := boxes[1].Bounds
	for i, b := range boxes[2:] {
		if b.Bounds.Width != first.Width || b.Bounds.Height != first.Height {
			t.Errorf("cell %d size %gx%g differs from %gx%g", i+1, b.Bounds.Width, b.Bounds.Height, first.Width, first.Height)
		}
	}
}

func TestGenerateImageText(t *testing.T) {
	items := []deck.ContentItem{
		{Kind: deck.BoxImage, Payload: "chart.png"},
		{Kind: deck.BoxContent, Payload: "analysis"},
	}
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		side  Side
		size  deck.SizeHint
		share float64
	}{
		{"small left", SideLeft, deck.SizeSmall, cfg.ImageSmall},
		{"medium defaulted", SideLeft, "", cfg.ImageMedium},
		{"large right", SideRight, deck.SizeLarge, cfg.ImageLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes, err := Generate(target, PatternImageText, Params{ImageSide: tt.side, ImageSize: tt.size}, items, cfg)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(boxes) != 3 {
				t.Fatalf("got %d boxes, want 3", len(boxes))
			}

			img, txt := boxes[1], boxes[2]
			if img.Kind != deck.BoxImage || img.Payload != "chart.png" {
				t.Errorf("image box = %+v", img)
			}
			if txt.Payload != "analysis" {
				t.Errorf("text box = %+v", txt)
			}

			got := img.Bounds.Width / (img.Bounds.Width + txt.Bounds.Width)
			if diff := got - tt.share; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("image share = %g, want %g", got, tt.share)
			}
			if tt.side == SideRight && img.Bounds.Left <= txt.Bounds.Left {
				t.Error("image requested on the right but placed on the left")
			}
			assertWithinTarget(t, boxes)
			assertNonOverlapping(t, boxes)
		})
	}
}

func TestGenerateImageTextZeroItems(t *testing.T) {
	boxes, err := Generate(target, PatternImageText, Params{}, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(boxes) != 1 || boxes[0].Kind != deck.BoxTitle {
		t.Errorf("got %+v, want only the title band", boxes)
	}
}

func TestGenerateStack(t *testing.T) {
	items := contentItems(3)
	boxes, err := Generate(target, PatternStack, Params{Weights: []float64{2, 1, 1}}, items, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(boxes) != 4 {
		t.Fatalf("got %d boxes, want 4", len(boxes))
	}

	first, second := boxes[1].Bounds, boxes[2].Bounds
	if got := first.Height / second.Height; got < 1.99 || got > 2.01 {
		t.Errorf("weighted height ratio = %g, want 2", got)
	}
	assertWithinTarget(t, boxes)
	assertNonOverlapping(t, boxes)

	// Mismatched weights fall back to an even stack.
	boxes, err = Generate(target, PatternStack, Params{Weights: []float64{1}}, items, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if boxes[1].Bounds.Height != boxes[2].Bounds.Height {
		t.Errorf("even fallback heights differ: %g vs %g", boxes[1].Bounds.Height, boxes[2].Bounds.Height)
	}
}

func TestGenerateCustom(t *testing.T) {
	params := Params{Boxes: []geometry.Rect{
		geometry.NewRect(0, 0, 1, 0.2),
		geometry.NewRect(0, 0.25, 0.48, 0.75),
		geometry.NewRect(0.52, 0.25, 0.48, 0.75),
	}}
	items := []deck.ContentItem{
		{Kind: deck.BoxTitle, Payload: "Side by side"},
		{Kind: deck.BoxImage, Payload: "left.png"},
		{Kind: deck.BoxImage, Payload: "right.png"},
	}

	boxes, err := Generate(target, PatternCustom, params, items, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(boxes) != 3 {
		t.Fatalf("got %d boxes, want 3", len(boxes))
	}
	if boxes[0].Kind != deck.BoxTitle {
		t.Errorf("box 0 kind = %v, want title", boxes[0].Kind)
	}
	if boxes[0].Bounds.Width != target.Width {
		t.Errorf("full-width fraction scaled to %g, want %g", boxes[0].Bounds.Width, target.Width)
	}
	assertWithinTarget(t, boxes)
	assertNonOverlapping(t, boxes)
}

func TestGenerateCustomOutOfBounds(t *testing.T) {
	params := Params{Boxes: []geometry.Rect{
		geometry.NewRect(0.8, 0, 0.3, 0.5), // right edge 1.1
	}}

	_, err := Generate(target, PatternCustom, params, nil, DefaultConfig())
	if !errors.Is(err, errors.ErrCodeCustomOutOfBounds) {
		t.Fatalf("error = %v, want code %v", err, errors.ErrCodeCustomOutOfBounds)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	params := Params{Rows: 2, Cols: 2}
	items := contentItems(4)

	a, err := Generate(target, PatternGrid, params, items, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(target, PatternGrid, params, items, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different box lists")
	}
}

func TestGenerateDegenerateTarget(t *testing.T) {
	_, err := Generate(geometry.NewRect(1, 1, 0, 0), PatternSingle, Params{}, nil, DefaultConfig())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want code %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestParsePattern(t *testing.T) {
	for _, p := range Patterns() {
		got, err := ParsePattern(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePattern(%q) = %v, %v", p, got, err)
		}
	}
	if _, err := ParsePattern("spiral"); !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Errorf("ParsePattern(spiral) error = %v, want code %v", err, errors.ErrCodeInvalidPattern)
	}
}

func TestRegionRect(t *testing.T) {
	canvas := deck.Canvas(deck.CanvasWide16x9Width, deck.CanvasWide16x9Height)

	got := RegionBottomRight.Rect(canvas)
	want := geometry.NewRect(canvas.Width/2, canvas.Height/2, canvas.Width/2, canvas.Height/2)
	if got != want {
		t.Errorf("bottom_right = %+v, want %+v", got, want)
	}

	if _, err := ParseRegion("top_half"); err != nil {
		t.Errorf("ParseRegion(top_half) error = %v", err)
	}
	if _, err := ParseRegion("middle_out"); err == nil {
		t.Error("ParseRegion(middle_out) should fail")
	}
}
