package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkessler/deckplan/pkg/cache"
	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/deck/tuning"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/observability"
	"github.com/mkessler/deckplan/pkg/planner"
	"github.com/mkessler/deckplan/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Planner planner.Planner
	Logger  *log.Logger
}

// NewRunner creates a runner with the given collaborators.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If p is nil, the offline Static planner is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, p planner.Planner, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if p == nil {
		p = planner.NewStatic()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Planner: p,
		Logger:  logger,
	}
}

// Execute runs the complete outline → plan → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Outline
	outlineStart := time.Now()
	observability.Pipeline().OnOutlineStart(ctx, opts.Topic)
	outline, outlineHit, err := r.OutlineWithCacheInfo(ctx, opts)
	observability.Pipeline().OnOutlineComplete(ctx, opts.Topic, opts.SlideCount, time.Since(outlineStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "outline")
	}
	result.Outline = outline
	result.Stats.OutlineTime = time.Since(outlineStart)
	result.Stats.SlideCount = len(outline.Slides)
	result.CacheInfo.OutlineHit = outlineHit
	result.OutlineHash = outlineHash(outline)

	r.Logger.Info("generated outline",
		"topic", outline.Topic,
		"slides", len(outline.Slides),
		"duration", result.Stats.OutlineTime)

	// Stage 2: Plan
	planStart := time.Now()
	observability.Pipeline().OnPlanStart(ctx, opts.TemplatePath, len(outline.Slides))
	plan, planHit, err := r.PlanWithCacheInfo(ctx, outline, opts)
	observability.Pipeline().OnPlanComplete(ctx, opts.TemplatePath, time.Since(planStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "plan")
	}
	result.Plan = plan
	result.Stats.PlanTime = time.Since(planStart)
	result.CacheInfo.PlanHit = planHit
	if data, err := compose.MarshalPlan(plan); err == nil {
		result.PlanHash = cache.Hash(data)
	}

	r.Logger.Info("composed plan",
		"id", plan.ID,
		"slides", len(plan.Slides),
		"duration", result.Stats.PlanTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, plan, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// OutlineWithCacheInfo generates an outline with caching and returns cache
// hit info.
func (r *Runner) OutlineWithCacheInfo(ctx context.Context, opts Options) (*planner.Outline, bool, error) {
	if err := opts.ValidateForOutline(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.OutlineKey(opts.Topic, opts.OutlineKeyOpts(r.plannerModel()))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached planner.Outline
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil // Cache hit
			}
		}
	}

	outline, err := r.Planner.Outline(ctx, opts.OutlineRequest())
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(outline); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLOutline)
	}

	return outline, false, nil // Cache miss
}

// Outline is a convenience wrapper that calls OutlineWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Outline(ctx context.Context, opts Options) (*planner.Outline, error) {
	outline, _, err := r.OutlineWithCacheInfo(ctx, opts)
	return outline, err
}

// PlanWithCacheInfo composes a deck plan with caching and returns cache
// hit info.
//
// Plan IDs are assigned at composition time, so a cache hit returns the
// plan with its original ID. Callers that need a fresh ID should set
// opts.Refresh.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, outline *planner.Outline, opts Options) (*compose.DeckPlan, bool, error) {
	if err := opts.ValidateForPlan(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	tpl, templateHash, err := r.loadTemplate(opts)
	if err != nil {
		return nil, false, err
	}
	cfg, err := r.loadTuning(opts)
	if err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.PlanKey(outlineHash(outline), opts.PlanKeyOpts(templateHash, cfg.Hash()))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := compose.UnmarshalPlan(data); err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompose
		}
	}

	composer, err := compose.New(compose.Options{
		Template:        tpl,
		LayoutIndex:     opts.LayoutIndex,
		Width:           opts.Width,
		Height:          opts.Height,
		Tuning:          cfg,
		FallbackToBlank: opts.FallbackToBlank,
		Logger:          opts.Logger,
	})
	if err != nil {
		return nil, false, err
	}

	plan, err := composer.PlanDeck(outline.SlideRequests())
	if err != nil {
		return nil, false, err
	}

	if data, err := compose.MarshalPlan(plan); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan)
	}

	return plan, false, nil // Cache miss
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Plan(ctx context.Context, outline *planner.Outline, opts Options) (*compose.DeckPlan, error) {
	plan, _, err := r.PlanWithCacheInfo(ctx, outline, opts)
	return plan, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, plan *compose.DeckPlan, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	planData, err := compose.MarshalPlan(plan)
	if err != nil {
		return nil, false, err
	}
	planHash := cache.Hash(planData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := r.renderFormats(ctx, plan, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, plan *compose.DeckPlan, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, plan, opts)
	return artifacts, err
}

func (r *Runner) renderFormats(ctx context.Context, plan *compose.DeckPlan, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch render.Format(format) {
		case render.FormatSVG:
			artifacts[format] = render.RenderSVG(plan, r.svgOptions(opts)...)
		case render.FormatJSON:
			data, err := render.RenderJSON(plan, r.jsonOptions(opts)...)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case render.FormatDOT:
			artifacts[format] = []byte(render.ToDOT(plan, render.DiagramOptions{Detailed: opts.ShowLabels}))
		case render.FormatPNG:
			dot := render.ToDOT(plan, render.DiagramOptions{Detailed: opts.ShowLabels})
			data, err := render.RenderDiagram(ctx, dot, render.FormatPNG)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
		}
	}
	return artifacts, nil
}

func (r *Runner) svgOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.ShowLabels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	if opts.ShowGrid {
		svgOpts = append(svgOpts, render.WithGrid())
	}
	if opts.Branding {
		svgOpts = append(svgOpts, render.WithBranding())
	}
	return svgOpts
}

func (r *Runner) jsonOptions(opts Options) []render.JSONOption {
	jsonOpts := []render.JSONOption{render.WithJSONPayloads()}
	if opts.Branding {
		jsonOpts = append(jsonOpts, render.WithJSONBranding())
	}
	return jsonOpts
}

// loadTemplate reads the template named in the options. A blank canvas
// yields a nil template and an empty hash.
func (r *Runner) loadTemplate(opts Options) (*deck.Template, string, error) {
	if opts.TemplatePath == "" {
		return nil, "", nil
	}
	tpl, err := deck.LoadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, "", err
	}
	data, err := deck.MarshalTemplate(tpl)
	if err != nil {
		return nil, "", err
	}
	return tpl, cache.Hash(data), nil
}

func (r *Runner) loadTuning(opts Options) (tuning.Config, error) {
	if opts.TuningPath == "" {
		return tuning.Default(), nil
	}
	return tuning.Load(opts.TuningPath)
}

// plannerModel reports the model backing the planner, for cache keys.
// Offline planners have no model and key on the empty string.
func (r *Runner) plannerModel() string {
	if m, ok := r.Planner.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}

func outlineHash(o *planner.Outline) string {
	data, err := json.Marshal(o)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
