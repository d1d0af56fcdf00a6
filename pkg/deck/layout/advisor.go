package layout

import (
	"math"

	"github.com/mkessler/deckplan/pkg/deck"
)

// substantialText is the text length above which a lone image gets a
// side-by-side image_text arrangement instead of a plain single column.
const substantialText = 100

// Recommendation is the advisor's output: a pattern plus the parameters
// it should be generated with.
type Recommendation struct {
	Pattern Pattern `json:"pattern"`
	Params  Params  `json:"params"`
}

// Suggest maps a content shape to a recommended pattern. The decision is
// an ordered first-match list and involves no state or external calls.
func Suggest(shape deck.ContentShape) Recommendation {
	switch {
	case shape.IsComparison:
		return Recommendation{
			Pattern: PatternTwoColumn,
			Params:  Params{Ratio: 0.5},
		}

	case shape.ImageCount >= 2:
		rows, cols := gridShape(shape.ImageCount)
		return Recommendation{
			Pattern: PatternGrid,
			Params:  Params{Rows: rows, Cols: cols},
		}

	case shape.ImageCount == 1 && shape.TextLength >= substantialText:
		return Recommendation{
			Pattern: PatternImageText,
			Params:  Params{ImageSide: SideLeft, ImageSize: deck.SizeLarge},
		}

	default:
		return Recommendation{Pattern: PatternSingle}
	}
}

// gridShape picks the smallest near-square grid holding n items, with
// rows never exceeding columns so wide canvases stay wide.
func gridShape(n int) (rows, cols int) {
	if n < 1 {
		return 1, 1
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return rows, cols
}
