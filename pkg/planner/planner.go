// Package planner produces deck outlines: the per-slide titles, bullets,
// and content shapes the layout engine turns into positioned plans.
//
// Two implementations exist. [Client] calls a remote language-model
// service with caching and retry; [Static] derives a deterministic outline
// locally and is used as the offline fallback and in tests. Both satisfy
// [Planner], so the pipeline does not care where outlines come from.
package planner

import (
	"context"
	"strings"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/deck/layout"
	"github.com/mkessler/deckplan/pkg/errors"
)

// DefaultSlideCount is used when a request does not specify one.
const DefaultSlideCount = 5

// Planner generates deck outlines.
type Planner interface {
	// Outline produces an outline for the requested topic.
	Outline(ctx context.Context, req OutlineRequest) (*Outline, error)
}

// OutlineRequest describes the deck to outline.
type OutlineRequest struct {
	Topic      string `json:"topic"`
	SlideCount int    `json:"slide_count,omitempty"`
	Audience   string `json:"audience,omitempty"`

	// Reference is optional source material (report text, notes) the
	// planner should draw content from.
	Reference string `json:"reference,omitempty"`

	// Refresh bypasses the outline cache.
	Refresh bool `json:"refresh,omitempty"`
}

// Validate checks the request and applies defaults.
func (r *OutlineRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "outline topic is required")
	}
	if err := errors.ValidateSlideCount(r.SlideCount); err != nil {
		return err
	}
	if r.SlideCount == 0 {
		r.SlideCount = DefaultSlideCount
	}
	return nil
}

// Outline is a planned deck: an ordered list of slide outlines.
type Outline struct {
	Topic  string         `json:"topic"`
	Slides []SlideOutline `json:"slides"`
}

// SlideOutline is the content description of one slide, before any
// geometry exists.
type SlideOutline struct {
	Title        string   `json:"title"`
	Bullets      []string `json:"bullets,omitempty"`
	Images       []string `json:"images,omitempty"`
	IsComparison bool     `json:"is_comparison,omitempty"`

	// Pattern optionally pins a layout pattern; empty means the layout
	// advisor decides from the content shape.
	Pattern string `json:"pattern,omitempty"`
}

// Shape summarizes the slide for the layout advisor.
func (s SlideOutline) Shape() deck.ContentShape {
	textLen := 0
	for _, b := range s.Bullets {
		textLen += len(b)
	}
	return deck.ContentShape{
		HasTitle:     s.Title != "",
		HasImage:     len(s.Images) > 0,
		ImageCount:   len(s.Images),
		IsComparison: s.IsComparison,
		ItemCount:    len(s.Bullets) + len(s.Images),
		TextLength:   textLen,
	}
}

// Items converts the outline content into layout content items: images
// first, then the bullet text joined into one content block.
func (s SlideOutline) Items() []deck.ContentItem {
	var items []deck.ContentItem
	for _, img := range s.Images {
		items = append(items, deck.ContentItem{Kind: deck.BoxImage, Payload: img})
	}
	if len(s.Bullets) > 0 {
		items = append(items, deck.ContentItem{
			Kind:    deck.BoxContent,
			Payload: strings.Join(s.Bullets, "\n"),
		})
	}
	return items
}

// SlideRequests converts the outline into the composition facade's input.
func (o *Outline) SlideRequests() []compose.SlideRequest {
	reqs := make([]compose.SlideRequest, 0, len(o.Slides))
	for _, s := range o.Slides {
		reqs = append(reqs, compose.SlideRequest{
			Title:   s.Title,
			Pattern: parsePatternOrEmpty(s.Pattern),
			Items:   s.Items(),
			Shape:   s.Shape(),
		})
	}
	return reqs
}

// parsePatternOrEmpty tolerates unknown pattern names from the remote
// planner: an unrecognized name defers to the advisor instead of failing
// the slide.
func parsePatternOrEmpty(s string) layout.Pattern {
	if s == "" {
		return ""
	}
	p, err := layout.ParsePattern(s)
	if err != nil {
		return ""
	}
	return p
}
