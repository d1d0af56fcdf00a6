package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output base path (default derived from the plan file)
	formats  string // comma-separated output formats
	labels   bool   // annotate boxes with kind names
	grid     bool   // draw an inch grid in wireframes
	branding bool   // include branding in artifacts
	noCache  bool   // disable caching
	refresh  bool   // bypass caches
}

// newRenderCmd creates the render command: stored plan in, artifacts out.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{branding: true}

	cmd := &cobra.Command{
		Use:   "render [plan]",
		Short: "Render artifacts from a stored plan file",
		Long: `Render reads a plan JSON file written by the plan command and produces
review artifacts from it without re-running the planner.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: derived from the plan file)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, dot, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "annotate boxes with their kind")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw a one-inch grid in wireframes")
	cmd.Flags().BoolVar(&opts.branding, "branding", opts.branding, "include preserved branding in artifacts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches and re-render")

	return cmd
}

func runRender(cmd *cobra.Command, planPath string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(planPath)
	if err != nil {
		return err
	}
	plan, err := compose.UnmarshalPlan(data)
	if err != nil {
		return err
	}

	// Rendering never talks to the planner, so force the offline one.
	runner, err := newRunner(cmd, runnerOpts{noCache: opts.noCache, offline: true})
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Refresh:    opts.refresh,
		Formats:    parseFormats(opts.formats),
		ShowLabels: opts.labels,
		ShowGrid:   opts.grid,
		Branding:   opts.branding,
		Logger:     logger,
	}

	tracker := newProgress(logger)
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, plan, pipeOpts)
	if err != nil {
		printError("Rendering failed: %v", err)
		return err
	}
	tracker.done(fmt.Sprintf("Rendered %d slides", len(plan.Slides)))

	printStats(len(plan.Slides), 0, hit)

	base := basePath(opts.output, planPath)
	if err := writeArtifacts(artifacts, pipeOpts.Formats, base); err != nil {
		return err
	}
	return nil
}
