package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/pipeline"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	output    string  // output base path (default derived from topic)
	template  string  // template JSON file, empty for a blank canvas
	layout    int     // template layout index
	slides    int     // number of slides
	audience  string  // audience hint for the planner
	reference string  // source material file
	tuning    string  // tuning TOML file
	width     float64 // blank canvas width in inches
	height    float64 // blank canvas height in inches
	formats   string  // comma-separated output formats
	labels    bool    // annotate boxes with kind names
	grid      bool    // draw an inch grid in wireframes
	branding  bool    // include branding in artifacts
	fallback  bool    // retry on a blank canvas when the safe area is blocked
	offline   bool    // force the offline planner
	apiKey    string  // planner API key (overrides env)
	noCache   bool    // disable caching
	refresh   bool    // bypass caches
	planOnly  bool    // write the plan JSON and skip artifacts
}

// newPlanCmd creates the plan command: topic in, deck plan and artifacts out.
func newPlanCmd() *cobra.Command {
	opts := planOpts{slides: pipeline.DefaultSlideCount}

	cmd := &cobra.Command{
		Use:   "plan [topic]",
		Short: "Plan a slide deck for a topic",
		Long: `Plan generates a deck outline for the topic, composes positioned slide
plans against the template (or a blank canvas), and writes the plan plus
any requested artifacts.

Without an API key in ` + apiKeyEnv + ` the offline planner is used, which
derives a deterministic outline from the topic alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: derived from topic)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template JSON file (default: blank canvas)")
	cmd.Flags().IntVar(&opts.layout, "layout", 0, "template layout index")
	cmd.Flags().IntVarP(&opts.slides, "slides", "n", opts.slides, "number of slides")
	cmd.Flags().StringVar(&opts.audience, "audience", "", "audience hint for the planner")
	cmd.Flags().StringVar(&opts.reference, "reference", "", "file with source material for the planner")
	cmd.Flags().StringVar(&opts.tuning, "tuning", "", "tuning TOML file overriding the layout heuristics")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "blank canvas width in inches")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "blank canvas height in inches")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, dot, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "annotate boxes with their kind")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw a one-inch grid in wireframes")
	cmd.Flags().BoolVar(&opts.branding, "branding", true, "include preserved branding in artifacts")
	cmd.Flags().BoolVar(&opts.fallback, "fallback-to-blank", false, "plan on a blank canvas when the template leaves no room")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "use the offline planner even when an API key is set")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "planner API key (default: $"+apiKeyEnv+")")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches and recompute")
	cmd.Flags().BoolVar(&opts.planOnly, "plan-only", false, "write the plan JSON only, no artifacts")

	return cmd
}

func runPlan(cmd *cobra.Command, topic string, opts *planOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	reference, err := readReference(opts.reference)
	if err != nil {
		return err
	}

	runner, err := newRunner(cmd, runnerOpts{
		noCache: opts.noCache,
		offline: opts.offline,
		apiKey:  opts.apiKey,
	})
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Topic:           topic,
		SlideCount:      opts.slides,
		Audience:        opts.audience,
		Reference:       reference,
		Refresh:         opts.refresh,
		TemplatePath:    opts.template,
		LayoutIndex:     opts.layout,
		Width:           opts.width,
		Height:          opts.height,
		TuningPath:      opts.tuning,
		FallbackToBlank: opts.fallback,
		Formats:         parseFormats(opts.formats),
		ShowLabels:      opts.labels,
		ShowGrid:        opts.grid,
		Branding:        opts.branding,
		Logger:          logger,
	}
	if opts.planOnly {
		pipeOpts.Formats = nil
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Planning %q...", topic))
	spinner.Start()

	result, err := runPipeline(ctx, runner, pipeOpts, opts.planOnly)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Planning failed: %v", err))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Planned %d slides", len(result.Plan.Slides)))

	printPlanStats(result)

	base := basePath(opts.output, sanitizeBase(topic)+".plan")
	planPath := base + ".plan.json"
	planData, err := compose.MarshalPlan(result.Plan)
	if err != nil {
		return err
	}
	if err := os.WriteFile(planPath, planData, 0o644); err != nil {
		return err
	}
	printFile(planPath)

	if !opts.planOnly {
		if err := writeArtifacts(result.Artifacts, pipeOpts.Formats, base); err != nil {
			return err
		}
	}

	printNewline()
	printNextStep("Re-render later", fmt.Sprintf("%s render %s", appName, planPath))
	return nil
}

// runPipeline executes the full pipeline, or just outline+plan when no
// artifacts are wanted.
func runPipeline(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, planOnly bool) (*pipeline.Result, error) {
	if !planOnly {
		return runner.Execute(ctx, opts)
	}

	outline, err := runner.Outline(ctx, opts)
	if err != nil {
		return nil, err
	}
	plan, err := runner.Plan(ctx, outline, opts)
	if err != nil {
		return nil, err
	}
	return &pipeline.Result{Outline: outline, Plan: plan}, nil
}

// printPlanStats summarizes the run: slide count, fallbacks, cache hits.
func printPlanStats(result *pipeline.Result) {
	fellBack := 0
	for _, s := range result.Plan.Slides {
		if s.FellBack {
			fellBack++
		}
	}
	printStats(len(result.Plan.Slides), fellBack, result.CacheInfo.PlanHit)
	if fellBack > 0 {
		printWarning("%d slide(s) fell back to a blank canvas", fellBack)
	}
}

// readReference reads the optional source material file.
func readReference(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sanitizeBase turns a topic into a usable file name.
func sanitizeBase(topic string) string {
	out := make([]rune, 0, len(topic))
	for _, r := range topic {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ', r == '/', r == '\\':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "deck"
	}
	return string(out)
}
