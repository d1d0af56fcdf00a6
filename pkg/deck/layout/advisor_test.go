package layout

import (
	"testing"

	"github.com/mkessler/deckplan/pkg/deck"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name  string
		shape deck.ContentShape
		want  Recommendation
	}{
		{
			name:  "comparison wins over images",
			shape: deck.ContentShape{IsComparison: true, ImageCount: 3},
			want:  Recommendation{Pattern: PatternTwoColumn, Params: Params{Ratio: 0.5}},
		},
		{
			name:  "four images",
			shape: deck.ContentShape{HasImage: true, ImageCount: 4},
			want:  Recommendation{Pattern: PatternGrid, Params: Params{Rows: 2, Cols: 2}},
		},
		{
			name:  "two images",
			shape: deck.ContentShape{HasImage: true, ImageCount: 2},
			want:  Recommendation{Pattern: PatternGrid, Params: Params{Rows: 1, Cols: 2}},
		},
		{
			name:  "five images",
			shape: deck.ContentShape{HasImage: true, ImageCount: 5},
			want:  Recommendation{Pattern: PatternGrid, Params: Params{Rows: 2, Cols: 3}},
		},
		{
			name:  "one image with substantial text",
			shape: deck.ContentShape{HasImage: true, ImageCount: 1, TextLength: 400},
			want:  Recommendation{Pattern: PatternImageText, Params: Params{ImageSide: SideLeft, ImageSize: deck.SizeLarge}},
		},
		{
			name:  "one image with a caption only",
			shape: deck.ContentShape{HasImage: true, ImageCount: 1, TextLength: 20},
			want:  Recommendation{Pattern: PatternSingle},
		},
		{
			name:  "plain text",
			shape: deck.ContentShape{HasTitle: true, ItemCount: 3, TextLength: 500},
			want:  Recommendation{Pattern: PatternSingle},
		},
		{
			name:  "empty shape",
			shape: deck.ContentShape{},
			want:  Recommendation{Pattern: PatternSingle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.shape)
			if got.Pattern != tt.want.Pattern {
				t.Fatalf("Pattern = %v, want %v", got.Pattern, tt.want.Pattern)
			}
			if got.Params.Ratio != tt.want.Params.Ratio ||
				got.Params.Rows != tt.want.Params.Rows ||
				got.Params.Cols != tt.want.Params.Cols ||
				got.Params.ImageSide != tt.want.Params.ImageSide ||
				got.Params.ImageSize != tt.want.Params.ImageSize {
				t.Errorf("Params = %+v, want %+v", got.Params, tt.want.Params)
			}
		})
	}
}

func TestGridShapeNeverOverflows(t *testing.T) {
	for n := 1; n <= 24; n++ {
		rows, cols := gridShape(n)
		if rows*cols < n {
			t.Errorf("gridShape(%d) = %dx%d, capacity %d too small", n, rows, cols, rows*cols)
		}
		if rows > cols {
			t.Errorf("gridShape(%d) = %dx%d, rows exceed cols", n, rows, cols)
		}
		if rows < 1 || cols < 1 {
			t.Errorf("gridShape(%d) = %dx%d, dimensions below 1", n, rows, cols)
		}
	}
}
