// Package classify labels template elements as branding, content, or
// decoration so the safe-area calculator knows what new content must avoid.
//
// Classification is a pure function over an element list and the canvas it
// sits on: it derives a parallel mapping and never touches the elements
// themselves. The heuristics are an ordered rule list; the first matching
// rule wins. Anything no rule claims falls through to content, so an
// unrecognized element can shrink the safe area but is never dropped.
package classify

import (
	"strings"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// Config holds the tuning constants for the classification heuristics.
// The defaults match common branded templates; decks with unusually large
// logos or deep footer bands may need to widen the corner margin or edge
// bands.
type Config struct {
	// LogoMaxSize is the size (inches) below which an element in a corner
	// is treated as a logo or watermark. An element qualifies only when
	// both dimensions are under this value.
	LogoMaxSize float64 `toml:"logo_max_size"`

	// CornerMargin is the distance (inches) from a canvas corner within
	// which small images and groups count as branding.
	CornerMargin float64 `toml:"corner_margin"`

	// TopBand is the height (inches) of the band at the top edge in which
	// short text is treated as a persistent header.
	TopBand float64 `toml:"top_band"`

	// BottomBand is the height (inches) of the band at the bottom edge in
	// which short text is treated as a persistent footer.
	BottomBand float64 `toml:"bottom_band"`

	// HeaderTextMax is the maximum text length for the edge-band rule;
	// longer text near an edge is assumed to be real content.
	HeaderTextMax int `toml:"header_text_max"`

	// DecorationMax is the thickness (inches) below which a non-branding
	// element in either dimension is treated as decoration (thin rules,
	// accent bars).
	DecorationMax float64 `toml:"decoration_max"`

	// Keywords are lowercase substrings whose presence in element text
	// marks it as organization branding.
	Keywords []string `toml:"keywords"`
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		LogoMaxSize:   2.0,
		CornerMargin:  1.5,
		TopBand:       0.75,
		BottomBand:    1.0,
		HeaderTextMax: 100,
		DecorationMax: 0.5,
		Keywords: []string{
			"company", "inc", "llc", "corp", "ltd",
			"copyright", "©", "®", "™", "confidential",
			"proprietary", "all rights reserved",
		},
	}
}

// Classification is the result of classifying one element set. Elements
// and Classes are parallel slices; every element gets exactly one class.
type Classification struct {
	Elements []deck.Element
	Classes  []deck.Class
}

// Class returns the class of the i-th element.
func (c Classification) Class(i int) deck.Class { return c.Classes[i] }

// Select returns the elements carrying the given class, in input order.
func (c Classification) Select(class deck.Class) []deck.Element {
	var out []deck.Element
	for i, e := range c.Elements {
		if c.Classes[i] == class {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many elements carry the given class.
func (c Classification) Count(class deck.Class) int {
	n := 0
	for _, cl := range c.Classes {
		if cl == class {
			n++
		}
	}
	return n
}

// Obstacles returns the union of branding and decoration elements: the
// set the safe-area calculator must route content around.
func (c Classification) Obstacles() []deck.Element {
	var out []deck.Element
	for i, e := range c.Elements {
		if c.Classes[i] == deck.ClassBranding || c.Classes[i] == deck.ClassDecoration {
			out = append(out, e)
		}
	}
	return out
}

// Classify derives a class for every element on the given canvas.
// Malformed geometry (negative width or height) is clamped to zero area
// and classified as decoration rather than rejected.
func Classify(canvas geometry.Rect, elems []deck.Element, cfg Config) Classification {
	out := Classification{
		Elements: elems,
		Classes:  make([]deck.Class, len(elems)),
	}
	for i, e := range elems {
		out.Classes[i] = classifyOne(canvas, e, cfg)
	}
	return out
}

// classifyOne applies the ordered rule list to a single element.
func classifyOne(canvas geometry.Rect, e deck.Element, cfg Config) deck.Class {
	b := e.Bounds.Clamp()

	// Degenerate geometry cannot host content and must not anchor the
	// safe-area shrink, so it is filed under decoration.
	if b.IsDegenerate() {
		return deck.ClassDecoration
	}

	// Rule 1: small element in a corner is a logo or watermark.
	if b.Width < cfg.LogoMaxSize && b.Height < cfg.LogoMaxSize && inCorner(canvas, b, cfg.CornerMargin) {
		return deck.ClassBranding
	}

	// Rule 2: organization-identifying text.
	if isTextual(e) && containsKeyword(e.Text, cfg.Keywords) {
		return deck.ClassBranding
	}

	// Rule 3: footer/date/slide-number roles, or short text pinned to the
	// top or bottom edge band.
	if e.Role == deck.RoleFooter || e.Role == deck.RoleDate || e.Role == deck.RoleSlideNumber {
		return deck.ClassBranding
	}
	// Title and body placeholders are exempt: a title band legitimately
	// sits at the very top of the canvas.
	if isTextual(e) && e.Role != deck.RoleTitle && e.Role != deck.RoleBody &&
		len(e.Text) > 0 && len(e.Text) < cfg.HeaderTextMax {
		if b.Top < cfg.TopBand || b.Bottom() > canvas.Bottom()-cfg.BottomBand {
			return deck.ClassBranding
		}
	}

	// Rule 4: a grouped logo+wordmark combination sitting in a corner.
	if e.Kind == deck.KindGroup && inCorner(canvas, b, cfg.CornerMargin) {
		return deck.ClassBranding
	}

	// Rule 5: thin non-branding elements are decoration.
	if b.Width < cfg.DecorationMax || b.Height < cfg.DecorationMax {
		return deck.ClassDecoration
	}
	if e.Kind == deck.KindLine {
		return deck.ClassDecoration
	}

	// Rules 6-7: title/body placeholders, sizable images, tables, charts,
	// and everything else are content. Failing open toward content keeps
	// unclassified elements inside the safe-area calculation.
	return deck.ClassContent
}

// inCorner reports whether the element sits entirely within margin of one
// of the four canvas corners.
func inCorner(canvas, b geometry.Rect, margin float64) bool {
	nearLeft := b.Left < canvas.Left+margin
	nearRight := b.Right() > canvas.Right()-margin
	nearTop := b.Top < canvas.Top+margin
	nearBottom := b.Bottom() > canvas.Bottom()-margin
	return (nearLeft || nearRight) && (nearTop || nearBottom)
}

func isTextual(e deck.Element) bool {
	return e.Kind == deck.KindText || e.Kind == deck.KindPlaceholder
}

func containsKeyword(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
