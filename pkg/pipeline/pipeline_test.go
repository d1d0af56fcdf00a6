package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkessler/deckplan/pkg/cache"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/planner"
)

const testTemplate = `{
  "name": "acme-brand",
  "width": 13.333,
  "height": 7.5,
  "layouts": [
    {
      "index": 0,
      "name": "Title and Content",
      "elements": [
        {"id": 0, "kind": "image", "bounds": {"left": 0.3, "top": 0.3, "width": 1.0, "height": 1.0}},
        {"id": 1, "kind": "text", "text": "© Acme Corp", "bounds": {"left": 0, "top": 7.0, "width": 13.333, "height": 0.4}}
      ]
    }
  ]
}`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, planner.NewStatic(), nil)
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brand.json")
	if err := os.WriteFile(path, []byte(testTemplate), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Topic:        "platform migration",
		TemplatePath: writeTemplate(t),
		Formats:      []string{"svg", "json", "dot"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.SlideCount != DefaultSlideCount {
		t.Errorf("SlideCount = %d, want %d", result.Stats.SlideCount, DefaultSlideCount)
	}
	if result.Plan == nil || result.Plan.ID == "" {
		t.Fatal("plan missing or has no ID")
	}
	if result.Plan.Template != "acme-brand" {
		t.Errorf("Template = %q", result.Plan.Template)
	}
	if result.OutlineHash == "" || result.PlanHash == "" {
		t.Error("content hashes should be set")
	}
	for _, format := range []string{"svg", "json", "dot"} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("artifact %q is empty", format)
		}
	}
	if result.CacheInfo.OutlineHit || result.CacheInfo.PlanHit || result.CacheInfo.RenderHit {
		t.Errorf("first run should miss all caches: %+v", result.CacheInfo)
	}
}

func TestExecuteSecondRunHitsCaches(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	opts := Options{Topic: "platform migration", Formats: []string{"svg", "json"}}
	ctx := context.Background()

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, Options{Topic: "platform migration", Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatal(err)
	}

	if !second.CacheInfo.OutlineHit || !second.CacheInfo.PlanHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit all caches: %+v", second.CacheInfo)
	}
	if second.Plan.ID != first.Plan.ID {
		t.Error("cached plan should keep its original ID")
	}
	if string(second.Artifacts["svg"]) != string(first.Artifacts["svg"]) {
		t.Error("cached artifact differs from original")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Topic: "t"}); err != nil {
		t.Fatal(err)
	}
	result, err := r.Execute(ctx, Options{Topic: "t", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.OutlineHit || result.CacheInfo.PlanHit {
		t.Errorf("refresh should bypass caches: %+v", result.CacheInfo)
	}
}

func TestExecuteRequiresTopic(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Topic: "t", Formats: []string{"pptx"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Topic: "t"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.SlideCount != DefaultSlideCount {
		t.Errorf("SlideCount = %d", opts.SlideCount)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}
}

func TestPlanStandaloneWithOutline(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	ctx := context.Background()

	outline, err := r.Outline(ctx, Options{Topic: "quarterly results", SlideCount: 3})
	if err != nil {
		t.Fatal(err)
	}
	plan, err := r.Plan(ctx, outline, Options{Topic: "quarterly results"})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.Slides) != 3 {
		t.Errorf("got %d slides", len(plan.Slides))
	}
	for _, s := range plan.Slides {
		if !s.SafeArea.Usable {
			t.Errorf("slide %d has unusable safe area on a blank canvas", s.Index)
		}
	}
}

func TestPlanKeyVariesWithLayoutParams(t *testing.T) {
	a := Options{Topic: "t", Width: 13.333, Height: 7.5}
	b := Options{Topic: "t", Width: 10, Height: 7.5}

	keyer := cache.NewDefaultKeyer()
	ka := keyer.PlanKey("h", a.PlanKeyOpts("", "tune"))
	kb := keyer.PlanKey("h", b.PlanKeyOpts("", "tune"))
	if ka == kb {
		t.Error("different canvas sizes must produce different plan keys")
	}
}
