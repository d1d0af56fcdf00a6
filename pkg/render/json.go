package render

import (
	"encoding/json"

	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact  bool
	branding bool
	payloads bool
}

// WithJSONCompact emits the document without indentation, for machine
// consumers that do not need a readable file.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONBranding includes the preserved branding elements per slide.
// Without this only the generated boxes are exported.
func WithJSONBranding() JSONOption { return func(r *jsonRenderer) { r.branding = true } }

// WithJSONPayloads carries box payloads (bullet text, image descriptions)
// into the output. Off by default so exported geometry stays small.
func WithJSONPayloads() JSONOption { return func(r *jsonRenderer) { r.payloads = true } }

type jsonOutput struct {
	ID       string      `json:"id,omitempty"`
	Template string      `json:"template,omitempty"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Slides   []jsonSlide `json:"slides"`
}

type jsonSlide struct {
	Index    int           `json:"index"`
	Title    string        `json:"title,omitempty"`
	Pattern  string        `json:"pattern"`
	SafeArea geometry.Rect `json:"safe_area"`
	Usable   bool          `json:"usable"`
	FellBack bool          `json:"fell_back,omitempty"`
	Boxes    []jsonBox     `json:"boxes"`
	Branding []jsonBox     `json:"branding,omitempty"`
}

type jsonBox struct {
	Kind    string  `json:"kind"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Payload string  `json:"payload,omitempty"`
}

// RenderJSON exports the plan as a JSON document: per-slide safe areas,
// generated boxes, and optionally the preserved branding. This is the
// interchange format between the planner and slide-authoring tools.
func RenderJSON(p *compose.DeckPlan, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:       p.ID,
		Template: p.Template,
		Width:    p.Canvas.Width,
		Height:   p.Canvas.Height,
		Slides:   make([]jsonSlide, 0, len(p.Slides)),
	}

	for _, s := range p.Slides {
		js := jsonSlide{
			Index:    s.Index,
			Title:    s.Title,
			Pattern:  string(s.Pattern),
			SafeArea: s.SafeArea.Area,
			Usable:   s.SafeArea.Usable,
			FellBack: s.FellBack,
			Boxes:    make([]jsonBox, 0, len(s.Boxes)),
		}
		for _, b := range s.Boxes {
			js.Boxes = append(js.Boxes, r.box(string(b.Kind), b.Bounds, b.Payload))
		}
		if r.branding {
			for _, e := range s.Branding {
				js.Branding = append(js.Branding, r.box(string(e.Kind), e.Bounds, ""))
			}
		}
		out.Slides = append(out.Slides, js)
	}

	var data []byte
	var err error
	if r.compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal plan export")
	}
	return data, nil
}

func (r *jsonRenderer) box(kind string, bounds geometry.Rect, payload string) jsonBox {
	b := jsonBox{
		Kind:   kind,
		Left:   bounds.Left,
		Top:    bounds.Top,
		Width:  bounds.Width,
		Height: bounds.Height,
	}
	if r.payloads {
		b.Payload = payload
	}
	return b
}
