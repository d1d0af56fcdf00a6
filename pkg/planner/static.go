package planner

import (
	"context"
	"fmt"
	"strings"
)

// Static is the offline planner: it derives a deterministic outline from
// the topic alone. It backs `deckplan plan --offline`, keeps the pipeline
// testable without network access, and serves as the fallback when no API
// key is configured.
type Static struct{}

// NewStatic creates the offline planner.
func NewStatic() *Static {
	return &Static{}
}

// sectionTitles are the stock section headings the offline outline cycles
// through after the title slide.
var sectionTitles = []string{
	"Overview",
	"Key Points",
	"Details",
	"Comparison",
	"Next Steps",
}

// Outline derives an outline without any external calls. The same request
// always yields the same outline.
func (s *Static) Outline(_ context.Context, req OutlineRequest) (*Outline, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	topic := strings.TrimSpace(req.Topic)
	outline := &Outline{
		Topic:  topic,
		Slides: make([]SlideOutline, 0, req.SlideCount),
	}

	outline.Slides = append(outline.Slides, SlideOutline{
		Title:   topic,
		Bullets: []string{"Agenda", "Scope", "Expected outcomes"},
		Pattern: "single",
	})

	for i := 1; i < req.SlideCount; i++ {
		title := sectionTitles[(i-1)%len(sectionTitles)]
		slide := SlideOutline{
			Title: fmt.Sprintf("%s: %s", topic, title),
			Bullets: []string{
				fmt.Sprintf("First point on %s", strings.ToLower(title)),
				fmt.Sprintf("Second point on %s", strings.ToLower(title)),
			},
		}
		if title == "Comparison" {
			slide.IsComparison = true
			slide.Bullets = []string{"Current state", "Proposed state"}
		}
		outline.Slides = append(outline.Slides, slide)
	}

	return outline, nil
}

// Ensure Static implements Planner.
var _ Planner = (*Static)(nil)
