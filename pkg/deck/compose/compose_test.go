package compose

import (
	"testing"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/deck/layout"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// brandedTemplate is a widescreen template with a corner logo, a footer
// band, and a body placeholder.
func brandedTemplate() *deck.Template {
	return &deck.Template{
		Name:   "acme-brand",
		Width:  13.333,
		Height: 7.5,
		Layouts: []deck.Layout{
			{
				Index: 0,
				Name:  "Title and Content",
				Elements: []deck.Element{
					{ID: 0, Kind: deck.KindImage, Bounds: geometry.NewRect(0.3, 0.3, 1.0, 1.0)},
					{ID: 1, Kind: deck.KindText, Bounds: geometry.NewRect(0, 7.0, 13.333, 0.4), Text: "© Acme Corp"},
					{ID: 2, Kind: deck.KindPlaceholder, Role: deck.RoleBody, Bounds: geometry.NewRect(0.5, 1.8, 12, 4.5)},
				},
			},
		},
	}
}

func TestNewBlankCanvasDefaults(t *testing.T) {
	c, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := deck.Canvas(deck.CanvasWide16x9Width, deck.CanvasWide16x9Height)
	if c.Canvas() != want {
		t.Errorf("Canvas() = %+v, want %+v", c.Canvas(), want)
	}
}

func TestNewRejectsBadCanvas(t *testing.T) {
	if _, err := New(Options{Width: -1, Height: 7.5}); !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Errorf("New() error = %v, want code %v", err, errors.ErrCodeInvalidCanvas)
	}
}

func TestNewRejectsBadLayoutIndex(t *testing.T) {
	if _, err := New(Options{Template: brandedTemplate(), LayoutIndex: 7}); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("New() error = %v, want code %v", err, errors.ErrCodeLayoutNotFound)
	}
}

func TestSafeAreaAvoidsTemplateBranding(t *testing.T) {
	c, err := New(Options{Template: brandedTemplate()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	area := c.SafeArea()
	if !area.Usable {
		t.Fatal("expected a usable safe area")
	}

	for _, b := range c.Branding() {
		if area.Area.Intersects(b.Bounds) {
			t.Errorf("safe area intersects branding element %d", b.ID)
		}
	}
}

func TestPlanSlideWithExplicitPattern(t *testing.T) {
	c, err := New(Options{Template: brandedTemplate()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	slide, err := c.PlanSlide(0, SlideRequest{
		Title:   "Quarterly Results",
		Pattern: layout.PatternTwoColumn,
		Params:  layout.Params{Ratio: 0.5},
		Items: []deck.ContentItem{
			{Kind: deck.BoxContent, Payload: "before"},
			{Kind: deck.BoxContent, Payload: "after"},
		},
	})
	if err != nil {
		t.Fatalf("PlanSlide() error = %v", err)
	}

	if slide.Pattern != layout.PatternTwoColumn {
		t.Errorf("Pattern = %v", slide.Pattern)
	}
	if len(slide.Boxes) != 3 {
		t.Fatalf("got %d boxes, want title plus two columns", len(slide.Boxes))
	}
	if slide.Boxes[0].Kind != deck.BoxTitle || slide.Boxes[0].Payload != "Quarterly Results" {
		t.Errorf("title box = %+v", slide.Boxes[0])
	}
	if len(slide.Branding) != 2 {
		t.Errorf("got %d branding elements, want 2", len(slide.Branding))
	}
	for i, box := range slide.Boxes {
		if !slide.SafeArea.Area.Contains(box.Bounds) {
			t.Errorf("box %d leaves the safe area", i)
		}
		for _, b := range slide.Branding {
			if box.Bounds.Intersects(b.Bounds) {
				t.Errorf("box %d overlaps branding element %d", i, b.ID)
			}
		}
	}
}

func TestPlanSlideConsultsAdvisor(t *testing.T) {
	c, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	slide, err := c.PlanSlide(0, SlideRequest{
		Shape: deck.ContentShape{IsComparison: true},
		Items: []deck.ContentItem{
			{Kind: deck.BoxContent, Payload: "left"},
			{Kind: deck.BoxContent, Payload: "right"},
		},
	})
	if err != nil {
		t.Fatalf("PlanSlide() error = %v", err)
	}
	if slide.Pattern != layout.PatternTwoColumn {
		t.Errorf("advisor pattern = %v, want two_column", slide.Pattern)
	}
}

func TestPlanSlideSafeAreaUnavailable(t *testing.T) {
	// A template whose layout is fully covered by a branding group.
	tpl := &deck.Template{
		Name:   "wall",
		Width:  10,
		Height: 7.5,
		Layouts: []deck.Layout{
			{Elements: []deck.Element{
				{Kind: deck.KindGroup, Bounds: geometry.NewRect(0, 0, 10, 7.5)},
			}},
		},
	}

	c, err := New(Options{Template: tpl})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = c.PlanSlide(0, SlideRequest{Pattern: layout.PatternSingle})
	if !errors.Is(err, errors.ErrCodeSafeArea) {
		t.Fatalf("PlanSlide() error = %v, want code %v", err, errors.ErrCodeSafeArea)
	}

	// With fallback enabled the slide plans on a blank canvas instead.
	c, err = New(Options{Template: tpl, FallbackToBlank: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	slide, err := c.PlanSlide(0, SlideRequest{Pattern: layout.PatternSingle})
	if err != nil {
		t.Fatalf("PlanSlide() with fallback error = %v", err)
	}
	if !slide.FellBack {
		t.Error("FellBack flag not set")
	}
	if !slide.SafeArea.Usable {
		t.Error("fallback safe area should be usable")
	}
}

func TestPlanDeck(t *testing.T) {
	c, err := New(Options{Template: brandedTemplate()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	reqs := []SlideRequest{
		{Title: "Intro", Pattern: layout.PatternSingle, Items: []deck.ContentItem{{Kind: deck.BoxContent, Payload: "agenda"}}},
		{Title: "Gallery", Pattern: layout.PatternGrid, Params: layout.Params{Rows: 2, Cols: 2}, Items: []deck.ContentItem{
			{Kind: deck.BoxImage, Payload: "a.png"},
			{Kind: deck.BoxImage, Payload: "b.png"},
			{Kind: deck.BoxImage, Payload: "c.png"},
		}},
	}

	plan, err := c.PlanDeck(reqs)
	if err != nil {
		t.Fatalf("PlanDeck() error = %v", err)
	}
	if plan.ID == "" {
		t.Error("plan ID not assigned")
	}
	if plan.Template != "acme-brand" {
		t.Errorf("Template = %q", plan.Template)
	}
	if len(plan.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(plan.Slides))
	}
	if plan.Slides[1].Index != 1 {
		t.Errorf("slide index = %d, want 1", plan.Slides[1].Index)
	}
}

func TestPlanDeckFailsAtomically(t *testing.T) {
	c, err := New(Options{Template: brandedTemplate()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	reqs := []SlideRequest{
		{Pattern: layout.PatternSingle},
		{Pattern: layout.PatternGrid, Params: layout.Params{Rows: 1, Cols: 2}, Items: []deck.ContentItem{
			{Kind: deck.BoxImage}, {Kind: deck.BoxImage}, {Kind: deck.BoxImage},
		}},
	}

	if _, err := c.PlanDeck(reqs); !errors.Is(err, errors.ErrCodeLayoutCapacity) {
		t.Fatalf("PlanDeck() error = %v, want code %v", err, errors.ErrCodeLayoutCapacity)
	}
}

func TestPlanRoundTrip(t *testing.T) {
	c, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	plan, err := c.PlanDeck([]SlideRequest{{Title: "Only", Pattern: layout.PatternSingle}})
	if err != nil {
		t.Fatalf("PlanDeck() error = %v", err)
	}

	data, err := MarshalPlan(plan)
	if err != nil {
		t.Fatalf("MarshalPlan() error = %v", err)
	}
	got, err := UnmarshalPlan(data)
	if err != nil {
		t.Fatalf("UnmarshalPlan() error = %v", err)
	}
	if got.ID != plan.ID || len(got.Slides) != len(plan.Slides) {
		t.Errorf("round trip changed the plan: %+v", got)
	}
}
