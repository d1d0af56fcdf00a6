package compose

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/deck/layout"
	"github.com/mkessler/deckplan/pkg/deck/safearea"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// SlidePlan is the declarative plan for one slide: where content may go,
// the boxes to fill, and the template elements to leave untouched.
type SlidePlan struct {
	Index    int               `json:"index" bson:"index"`
	Title    string            `json:"title,omitempty" bson:"title,omitempty"`
	Pattern  layout.Pattern    `json:"pattern" bson:"pattern"`
	SafeArea safearea.Result   `json:"safe_area" bson:"safe_area"`
	Boxes    []deck.ElementBox `json:"boxes" bson:"boxes"`
	Branding []deck.Element    `json:"branding,omitempty" bson:"branding,omitempty"`

	// FellBack marks slides planned on a blank canvas because the
	// template left no usable safe area.
	FellBack bool `json:"fell_back,omitempty" bson:"fell_back,omitempty"`
}

// DeckPlan is the plan for a whole deck. The ID is assigned at planning
// time and is the handle the store and the HTTP API use.
type DeckPlan struct {
	ID        string        `json:"id" bson:"_id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Canvas    geometry.Rect `json:"canvas" bson:"canvas"`
	Template  string        `json:"template,omitempty" bson:"template,omitempty"`
	LayoutIdx int           `json:"layout_index" bson:"layout_index"`
	Slides    []SlidePlan   `json:"slides" bson:"slides"`
}

// PlanDeck plans every requested slide against the bound canvas and wraps
// the results in a DeckPlan with a fresh ID.
//
// A failing slide fails the whole call: partial decks are never returned,
// so callers retry with different parameters rather than render half a
// deck.
func (c *Composer) PlanDeck(reqs []SlideRequest) (*DeckPlan, error) {
	plan := &DeckPlan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Canvas:    c.canvas,
		LayoutIdx: c.layoutIndex,
		Slides:    make([]SlidePlan, 0, len(reqs)),
	}
	if c.template != nil {
		plan.Template = c.template.Name
	}

	for i, req := range reqs {
		slide, err := c.PlanSlide(i, req)
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "plan slide %d", i)
		}
		plan.Slides = append(plan.Slides, slide)
	}

	c.logger.Info("planned deck",
		"id", plan.ID,
		"slides", len(plan.Slides),
		"template", plan.Template)
	return plan, nil
}

// MarshalPlan serializes a plan to indented JSON, the canonical exchange
// format between the planner and a renderer.
func MarshalPlan(p *DeckPlan) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal deck plan")
	}
	return data, nil
}

// UnmarshalPlan parses a JSON deck plan.
func UnmarshalPlan(data []byte) (*DeckPlan, error) {
	var p DeckPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse deck plan")
	}
	return &p, nil
}
