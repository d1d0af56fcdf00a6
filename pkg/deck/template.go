package deck

import (
	"encoding/json"
	"os"

	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// Template is the read-only representation of a branded template document:
// a canvas size plus the element inventory of each slide layout. It is the
// in-memory form handed over by the presentation-document library; this
// module never mutates it.
type Template struct {
	Name    string   `json:"name,omitempty" bson:"name,omitempty"`
	Width   float64  `json:"width" bson:"width"`
	Height  float64  `json:"height" bson:"height"`
	Layouts []Layout `json:"layouts" bson:"layouts"`
}

// Layout is one slide layout of a template.
type Layout struct {
	Index    int       `json:"index" bson:"index"`
	Name     string    `json:"name,omitempty" bson:"name,omitempty"`
	Elements []Element `json:"elements" bson:"elements"`
}

// Canvas returns the template's full slide rectangle.
func (t *Template) Canvas() geometry.Rect {
	return geometry.NewRect(0, 0, t.Width, t.Height)
}

// Layout returns the layout with the given index.
func (t *Template) Layout(index int) (Layout, error) {
	if index < 0 || index >= len(t.Layouts) {
		return Layout{}, errors.New(errors.ErrCodeLayoutNotFound,
			"layout index %d out of range (template has %d layouts)", index, len(t.Layouts))
	}
	return t.Layouts[index], nil
}

// UnmarshalTemplate deserializes JSON bytes to a Template and validates the
// canvas dimensions.
func UnmarshalTemplate(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "parse template document")
	}
	if t.Width <= 0 || t.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidCanvas, "template canvas %gx%g is not positive", t.Width, t.Height)
	}
	return &t, nil
}

// LoadTemplate reads a template JSON file from disk.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template %s", path)
		}
		return nil, err
	}
	t, err := UnmarshalTemplate(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "template %s", path)
	}
	return t, nil
}

// MarshalTemplate serializes a Template to pretty-printed JSON.
func MarshalTemplate(t *Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}
