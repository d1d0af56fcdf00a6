// Package compose is the facade over the layout engine: it combines the
// classifier, the safe-area calculator, the layout advisor, and the layout
// generator into per-slide plans ready for a downstream renderer.
//
// A Composer is bound to one canvas, either a parsed template layout or a
// blank canvas of explicit dimensions. It is stateless beyond that binding;
// the same Composer can plan many slides concurrently.
package compose

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/deck/classify"
	"github.com/mkessler/deckplan/pkg/deck/layout"
	"github.com/mkessler/deckplan/pkg/deck/safearea"
	"github.com/mkessler/deckplan/pkg/deck/tuning"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// Options configure a Composer.
type Options struct {
	// Template is the parsed template document, or nil for a blank canvas.
	Template *deck.Template

	// LayoutIndex selects which template layout new slides are based on.
	// Ignored when Template is nil.
	LayoutIndex int

	// Width and Height set the blank canvas size in inches when Template
	// is nil. Zero values default to the widescreen canvas.
	Width  float64
	Height float64

	// Tuning holds the heuristic constants. The zero value is replaced by
	// the documented defaults.
	Tuning tuning.Config

	// FallbackToBlank makes slide planning retry on a blank canvas when a
	// template leaves no usable safe area, instead of failing the slide.
	FallbackToBlank bool

	// Logger receives per-slide planning logs. Nil discards them.
	Logger *log.Logger
}

// Composer plans slides against one canvas.
type Composer struct {
	template    *deck.Template
	layoutIndex int
	canvas      geometry.Rect
	elements    []deck.Element
	tuning      tuning.Config
	fallback    bool
	logger      *log.Logger
}

// New creates a Composer for the given options.
func New(opts Options) (*Composer, error) {
	cfg := opts.Tuning
	// Keywords makes the full config non-comparable; the all-float
	// sections are enough to detect an unset tuning value.
	if cfg.SafeArea == (safearea.Config{}) && cfg.Layout == (layout.Config{}) {
		cfg = tuning.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	c := &Composer{
		template:    opts.Template,
		layoutIndex: opts.LayoutIndex,
		tuning:      cfg,
		fallback:    opts.FallbackToBlank,
		logger:      logger,
	}

	if opts.Template != nil {
		tl, err := opts.Template.Layout(opts.LayoutIndex)
		if err != nil {
			return nil, err
		}
		c.canvas = opts.Template.Canvas()
		c.elements = tl.Elements
		return c, nil
	}

	width, height := opts.Width, opts.Height
	if width == 0 && height == 0 {
		width, height = deck.CanvasWide16x9Width, deck.CanvasWide16x9Height
	}
	if err := errors.ValidateCanvas(width, height); err != nil {
		return nil, err
	}
	c.canvas = deck.Canvas(width, height)
	return c, nil
}

// Canvas returns the canvas rectangle the Composer plans against.
func (c *Composer) Canvas() geometry.Rect { return c.canvas }

// Classify returns the classification of the bound template layout's
// elements. On a blank canvas the result is empty.
func (c *Composer) Classify() classify.Classification {
	return classify.Classify(c.canvas, c.elements, c.tuning.Classify)
}

// SafeArea computes the content-safe rectangle for the bound canvas,
// independent of any layout generation. Callers can use it to reason about
// available space before choosing a pattern.
func (c *Composer) SafeArea() safearea.Result {
	cls := c.Classify()
	return safearea.Compute(c.canvas, cls.Obstacles(), c.tuning.SafeArea)
}

// Branding returns the template elements that must be preserved untouched
// by the renderer.
func (c *Composer) Branding() []deck.Element {
	return c.Classify().Select(deck.ClassBranding)
}

// SlideRequest describes one slide to plan. Either Pattern or Shape must
// be set: an empty Pattern consults the layout advisor with Shape.
type SlideRequest struct {
	Title   string             `json:"title,omitempty"`
	Pattern layout.Pattern     `json:"pattern,omitempty"`
	Params  layout.Params      `json:"params,omitempty"`
	Items   []deck.ContentItem `json:"items,omitempty"`
	Shape   deck.ContentShape  `json:"shape,omitempty"`
}

// PlanSlide produces the plan for one slide: the safe area, the generated
// boxes, and the branding elements the renderer must leave alone.
//
// When the template leaves no usable safe area the slide fails with
// SAFE_AREA_UNAVAILABLE, unless FallbackToBlank was set, in which case the
// slide is planned on the blank canvas instead and marked accordingly.
func (c *Composer) PlanSlide(index int, req SlideRequest) (SlidePlan, error) {
	pattern := req.Pattern
	params := req.Params
	if pattern == "" {
		rec := layout.Suggest(req.Shape)
		pattern = rec.Pattern
		params = rec.Params
		c.logger.Debug("advisor selected pattern",
			"slide", index,
			"pattern", pattern,
			"images", req.Shape.ImageCount,
			"comparison", req.Shape.IsComparison)
	}

	cls := c.Classify()
	area := safearea.Compute(c.canvas, cls.Obstacles(), c.tuning.SafeArea)
	branding := cls.Select(deck.ClassBranding)
	fellBack := false

	if !area.Usable {
		if !c.fallback {
			return SlidePlan{}, errors.New(errors.ErrCodeSafeArea,
				"no usable safe area on layout %d for slide %d", c.layoutIndex, index)
		}
		// Blank-canvas retry drops the template obstacles but still keeps
		// the branding list so the renderer preserves those elements.
		area = safearea.Compute(c.canvas, nil, c.tuning.SafeArea)
		fellBack = true
		c.logger.Warn("safe area unavailable, falling back to blank canvas",
			"slide", index, "layout", c.layoutIndex)
	}

	items := req.Items
	if req.Title != "" && !hasTitleItem(items) {
		items = append([]deck.ContentItem{{Kind: deck.BoxTitle, Payload: req.Title}}, items...)
	}

	boxes, err := layout.Generate(area.Area, pattern, params, items, c.tuning.Layout)
	if err != nil {
		return SlidePlan{}, err
	}

	c.logger.Debug("planned slide",
		"slide", index,
		"pattern", pattern,
		"boxes", len(boxes),
		"branding", len(branding))

	return SlidePlan{
		Index:    index,
		Title:    req.Title,
		Pattern:  pattern,
		SafeArea: area,
		Boxes:    boxes,
		Branding: branding,
		FellBack: fellBack,
	}, nil
}

func hasTitleItem(items []deck.ContentItem) bool {
	for _, it := range items {
		if it.Kind == deck.BoxTitle {
			return true
		}
	}
	return false
}
