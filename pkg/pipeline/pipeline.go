// Package pipeline provides the core planning pipeline for Deckplan.
//
// This package implements the complete outline → plan → render pipeline
// used by the CLI and the HTTP API. By centralizing this logic, every
// entry point behaves identically and caching works the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Outline: Generate the per-slide content outline for a topic
//  2. Plan: Compose positioned slide plans against the template canvas
//  3. Render: Generate artifacts in various formats (SVG, JSON, DOT, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	opts := pipeline.Options{
//	    Topic:   "quarterly results",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Outline only
//	outline, err := runner.Outline(ctx, opts)
//
//	// Plan with an existing outline
//	plan, err := runner.Plan(ctx, outline, opts)
//
//	// Render with an existing plan
//	artifacts, err := runner.Render(ctx, plan, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkessler/deckplan/pkg/cache"
	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/planner"
	"github.com/mkessler/deckplan/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSlideCount matches the planner default.
	DefaultSlideCount = planner.DefaultSlideCount

	// DefaultFormat is the artifact format produced when none is requested.
	DefaultFormat = string(render.FormatSVG)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the planning pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Outline options
	Topic      string `json:"topic"`
	SlideCount int    `json:"slide_count,omitempty"`
	Audience   string `json:"audience,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// Plan options
	TemplatePath    string  `json:"template_path,omitempty"`
	LayoutIndex     int     `json:"layout_index,omitempty"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	TuningPath      string  `json:"tuning_path,omitempty"`
	FallbackToBlank bool    `json:"fallback_to_blank,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`
	ShowGrid   bool     `json:"show_grid,omitempty"`
	Branding   bool     `json:"branding,omitempty"` // Include preserved branding in SVG/JSON artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Outline is the generated deck outline.
	Outline *planner.Outline

	// OutlineHash is the content hash of the outline.
	OutlineHash string

	// Plan is the composed deck plan.
	Plan *compose.DeckPlan

	// PlanHash is the content hash of the plan.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SlideCount  int
	OutlineTime time.Duration
	PlanTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	OutlineHit bool // Whether the outline came from cache
	PlanHit    bool // Whether the plan came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForOutline(); err != nil {
		return err
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForOutline checks required fields for outline generation.
func (o *Options) ValidateForOutline() error {
	if strings.TrimSpace(o.Topic) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "topic is required")
	}
	if err := errors.ValidateSlideCount(o.SlideCount); err != nil {
		return err
	}
	if o.SlideCount == 0 {
		o.SlideCount = DefaultSlideCount
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForPlan checks fields used during plan composition. Zero width
// and height fall through to the composer's widescreen default.
func (o *Options) ValidateForPlan() error {
	if o.LayoutIndex < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout index must not be negative")
	}
	if o.Width != 0 || o.Height != 0 {
		if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// OutlineRequest converts the options into a planner request.
func (o *Options) OutlineRequest() planner.OutlineRequest {
	return planner.OutlineRequest{
		Topic:      o.Topic,
		SlideCount: o.SlideCount,
		Audience:   o.Audience,
		Reference:  o.Reference,
		Refresh:    o.Refresh,
	}
}

// OutlineKeyOpts returns cache key options for outline generation.
func (o *Options) OutlineKeyOpts(model string) cache.OutlineKeyOpts {
	return cache.OutlineKeyOpts{
		SlideCount: o.SlideCount,
		Audience:   o.Audience,
		Model:      model,
	}
}

// PlanKeyOpts returns cache key options for plan composition.
func (o *Options) PlanKeyOpts(templateHash, tuningHash string) cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		TemplateHash: templateHash,
		LayoutIndex:  o.LayoutIndex,
		Width:        o.Width,
		Height:       o.Height,
		TuningHash:   tuningHash,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ShowLabels: o.ShowLabels,
		ShowGrid:   o.ShowGrid,
		Branding:   o.Branding,
	}
}
