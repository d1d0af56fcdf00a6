package deck

import (
	"github.com/mkessler/deckplan/pkg/geometry"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Standard canvas sizes in inches.
const (
	// CanvasWide16x9Width and CanvasWide16x9Height describe the default
	// widescreen canvas (13.333" × 7.5").
	CanvasWide16x9Width  = 13.333
	CanvasWide16x9Height = 7.5

	// CanvasClassic4x3Width and CanvasClassic4x3Height describe the legacy
	// 4:3 canvas (10" × 7.5").
	CanvasClassic4x3Width  = 10.0
	CanvasClassic4x3Height = 7.5
)

// ElementKind identifies what a template element is.
type ElementKind string

// Element kinds found on template slides.
const (
	KindImage       ElementKind = "image"
	KindText        ElementKind = "text"
	KindTable       ElementKind = "table"
	KindChart       ElementKind = "chart"
	KindPlaceholder ElementKind = "placeholder"
	KindGroup       ElementKind = "group"
	KindLine        ElementKind = "line"
	KindShape       ElementKind = "shape"
	KindUnknown     ElementKind = "unknown"
)

// PlaceholderRole tags placeholder elements with their template role.
type PlaceholderRole string

// Placeholder roles.
const (
	RoleNone        PlaceholderRole = ""
	RoleTitle       PlaceholderRole = "title"
	RoleBody        PlaceholderRole = "body"
	RoleFooter      PlaceholderRole = "footer"
	RoleSlideNumber PlaceholderRole = "slide_number"
	RoleDate        PlaceholderRole = "date"
)

// Class is the derived label the classifier attaches to an element.
// It is kept separate from Element so classification stays a pure mapping.
type Class string

// Classification labels.
const (
	ClassBranding   Class = "branding"
	ClassContent    Class = "content"
	ClassDecoration Class = "decoration"
)

// BoxKind identifies what a generated box is meant to hold.
type BoxKind string

// Box kinds produced by the layout generator.
const (
	BoxTitle   BoxKind = "title"
	BoxContent BoxKind = "content"
	BoxImage   BoxKind = "image"
	BoxChart   BoxKind = "chart"
	BoxTable   BoxKind = "table"
)

// SizeHint is a coarse relative size for content items.
type SizeHint string

// Size hints.
const (
	SizeSmall  SizeHint = "small"
	SizeMedium SizeHint = "medium"
	SizeLarge  SizeHint = "large"
)

// =============================================================================
// Element - Template Element Snapshot
// =============================================================================

// Element is an immutable snapshot of an item found on a template slide or
// layout. The classifier reads it; nothing in this module mutates it.
type Element struct {
	ID     int             `json:"id" bson:"id"`
	Kind   ElementKind     `json:"kind" bson:"kind"`
	Bounds geometry.Rect   `json:"bounds" bson:"bounds"`
	Text   string          `json:"text,omitempty" bson:"text,omitempty"`
	Role   PlaceholderRole `json:"role,omitempty" bson:"role,omitempty"`
	Name   string          `json:"name,omitempty" bson:"name,omitempty"`
	ZIndex int             `json:"z_index,omitempty" bson:"z_index,omitempty"`
}

// IsPlaceholder reports whether the element is a template placeholder.
func (e Element) IsPlaceholder() bool { return e.Kind == KindPlaceholder }

// =============================================================================
// ElementBox - Positioned Region Awaiting Content
// =============================================================================

// ElementBox is a to-be-created positioned region: the layout generator
// produces them, the downstream renderer fills them. Boxes normally do not
// overlap; ZIndex controls stacking for intentional overlays.
type ElementBox struct {
	Kind    BoxKind       `json:"kind" bson:"kind"`
	Bounds  geometry.Rect `json:"bounds" bson:"bounds"`
	Payload string        `json:"payload,omitempty" bson:"payload,omitempty"`
	ZIndex  int           `json:"z_index,omitempty" bson:"z_index,omitempty"`
}

// =============================================================================
// ContentItem - Per-Slide Content Descriptor
// =============================================================================

// ContentItem describes one piece of content to be placed on a slide.
// The layout generator consumes the kind and size hint; Payload is carried
// through to the resulting box untouched.
type ContentItem struct {
	Kind    BoxKind  `json:"kind" bson:"kind"`
	Size    SizeHint `json:"size,omitempty" bson:"size,omitempty"`
	Payload string   `json:"payload,omitempty" bson:"payload,omitempty"`
}

// ContentShape summarizes a slide's content for the layout advisor.
type ContentShape struct {
	HasTitle     bool `json:"has_title" bson:"has_title"`
	HasImage     bool `json:"has_image" bson:"has_image"`
	ImageCount   int  `json:"image_count" bson:"image_count"`
	IsComparison bool `json:"is_comparison" bson:"is_comparison"`
	ItemCount    int  `json:"item_count" bson:"item_count"`
	TextLength   int  `json:"text_length,omitempty" bson:"text_length,omitempty"`
}

// Canvas returns the rectangle covering a full slide of the given size.
func Canvas(width, height float64) geometry.Rect {
	return geometry.NewRect(0, 0, width, height)
}
