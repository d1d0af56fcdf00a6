package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkessler/deckplan/pkg/errors"
)

const templateJSON = `{
  "name": "acme-brand",
  "width": 13.333,
  "height": 7.5,
  "layouts": [
    {
      "index": 0,
      "name": "Title and Content",
      "elements": [
        {"id": 0, "kind": "image", "bounds": {"left": 0.3, "top": 0.3, "width": 1.0, "height": 1.0}},
        {"id": 1, "kind": "placeholder", "role": "title", "bounds": {"left": 0.5, "top": 0.4, "width": 12, "height": 1.2}}
      ]
    }
  ]
}`

func TestUnmarshalTemplate(t *testing.T) {
	tpl, err := UnmarshalTemplate([]byte(templateJSON))
	if err != nil {
		t.Fatalf("UnmarshalTemplate() error = %v", err)
	}
	if tpl.Name != "acme-brand" {
		t.Errorf("Name = %q", tpl.Name)
	}
	if got := tpl.Canvas(); got.Width != 13.333 || got.Height != 7.5 {
		t.Errorf("Canvas() = %+v", got)
	}

	layout, err := tpl.Layout(0)
	if err != nil {
		t.Fatalf("Layout(0) error = %v", err)
	}
	if len(layout.Elements) != 2 {
		t.Fatalf("got %d elements", len(layout.Elements))
	}
	if layout.Elements[1].Role != RoleTitle {
		t.Errorf("Role = %q, want title", layout.Elements[1].Role)
	}

	if _, err := tpl.Layout(3); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("Layout(3) error = %v, want code %v", err, errors.ErrCodeLayoutNotFound)
	}
}

func TestUnmarshalTemplateRejectsBadCanvas(t *testing.T) {
	_, err := UnmarshalTemplate([]byte(`{"width": 0, "height": 7.5, "layouts": []}`))
	if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidCanvas)
	}

	_, err = UnmarshalTemplate([]byte(`not json`))
	if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidTemplate)
	}
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.json")
	if err := os.WriteFile(path, []byte(templateJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	tpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if len(tpl.Layouts) != 1 {
		t.Errorf("got %d layouts", len(tpl.Layouts))
	}

	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want code %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestMarshalTemplateRoundTrip(t *testing.T) {
	tpl, err := UnmarshalTemplate([]byte(templateJSON))
	if err != nil {
		t.Fatal(err)
	}
	data, err := MarshalTemplate(tpl)
	if err != nil {
		t.Fatalf("MarshalTemplate() error = %v", err)
	}
	again, err := UnmarshalTemplate(data)
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if again.Name != tpl.Name || len(again.Layouts) != len(tpl.Layouts) {
		t.Error("round trip changed the template")
	}
}
