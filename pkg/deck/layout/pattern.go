// Package layout turns a target rectangle, an arrangement pattern, and a
// list of content items into positioned element boxes, and recommends a
// pattern when the caller only knows the shape of its content.
//
// Generation is deterministic and stateless: identical inputs always yield
// identical geometry. Failures are scoped to one call and reported as
// structured errors so a caller can paginate, switch patterns, or skip the
// slide.
package layout

import (
	"fmt"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// Pattern names an arrangement strategy for subdividing a rectangle.
type Pattern string

// Supported patterns.
const (
	// PatternSingle is a title band over one full-width content band.
	PatternSingle Pattern = "single"

	// PatternTwoColumn splits the content area into two side-by-side
	// columns at a configurable ratio.
	PatternTwoColumn Pattern = "two_column"

	// PatternGrid divides the content area into rows × cols equal cells.
	PatternGrid Pattern = "grid"

	// PatternImageText places an image column beside a text column.
	PatternImageText Pattern = "image_text"

	// PatternStack stacks content bands vertically with relative heights.
	PatternStack Pattern = "vertical_stack"

	// PatternCustom scales caller-supplied fractional rectangles into the
	// target rectangle.
	PatternCustom Pattern = "custom"
)

// Side selects which side of the content area the image column occupies.
type Side string

// Image sides for PatternImageText.
const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ParsePattern converts a string into a Pattern, for CLI and API input.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case PatternSingle, PatternTwoColumn, PatternGrid, PatternImageText, PatternStack, PatternCustom:
		return Pattern(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidPattern, "unknown layout pattern: %q", s)
	}
}

// Patterns returns all supported pattern names in display order.
func Patterns() []Pattern {
	return []Pattern{
		PatternSingle,
		PatternTwoColumn,
		PatternGrid,
		PatternImageText,
		PatternStack,
		PatternCustom,
	}
}

// Params carries the pattern-specific parameters. Only the fields for the
// requested pattern are read; the rest are ignored.
type Params struct {
	// Ratio is the two_column left-column share of the content width,
	// exclusive of 0 and 1. Out-of-range values are clamped.
	Ratio float64 `json:"ratio,omitempty"`

	// Rows and Cols shape the grid. Values below 1 are raised to 1.
	Rows int `json:"rows,omitempty"`
	Cols int `json:"cols,omitempty"`

	// ImageSide and ImageSize shape the image_text split.
	ImageSide Side          `json:"image_side,omitempty"`
	ImageSize deck.SizeHint `json:"image_size,omitempty"`

	// Weights are the relative band heights for vertical_stack. Empty
	// weights stack the items evenly.
	Weights []float64 `json:"weights,omitempty"`

	// Boxes are the custom fractional sub-rectangles, each coordinate and
	// dimension in [0,1] of the target rectangle.
	Boxes []geometry.Rect `json:"boxes,omitempty"`
}

// String implements fmt.Stringer for log output.
func (p Params) String() string {
	return fmt.Sprintf("{ratio:%g grid:%dx%d image:%s/%s weights:%d boxes:%d}",
		p.Ratio, p.Rows, p.Cols, p.ImageSide, p.ImageSize, len(p.Weights), len(p.Boxes))
}

// Config holds the layout tuning constants. All ratios are fractions of
// the target rectangle, not absolute inches, so one configuration serves
// every canvas size.
type Config struct {
	// TitleRatio is the share of the target height given to the title band.
	TitleRatio float64 `toml:"title_ratio"`

	// GutterRatio is the gap between boxes as a share of the target width.
	GutterRatio float64 `toml:"gutter_ratio"`

	// ImageSmall, ImageMedium and ImageLarge map size hints to the share
	// of the content width the image column occupies.
	ImageSmall  float64 `toml:"image_small"`
	ImageMedium float64 `toml:"image_medium"`
	ImageLarge  float64 `toml:"image_large"`
}

// DefaultConfig returns the documented default tuning constants.
func DefaultConfig() Config {
	return Config{
		TitleRatio:  0.14,
		GutterRatio: 0.04,
		ImageSmall:  0.30,
		ImageMedium: 0.45,
		ImageLarge:  0.60,
	}
}

// imageShare maps a size hint to the configured width share. Unknown hints
// fall back to medium.
func (c Config) imageShare(hint deck.SizeHint) float64 {
	switch hint {
	case deck.SizeSmall:
		return c.ImageSmall
	case deck.SizeLarge:
		return c.ImageLarge
	default:
		return c.ImageMedium
	}
}

// clampRatio pulls a split ratio into the open interval the patterns can
// actually use. Extremes would produce a zero-width column.
func clampRatio(r float64) float64 {
	const lo, hi = 0.05, 0.95
	if r < lo {
		return lo
	}
	if r > hi {
		return hi
	}
	return r
}
