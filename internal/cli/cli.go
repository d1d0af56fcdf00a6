// Package cli implements the deckplan command-line interface.
//
// This package provides commands for planning slide decks from topics or
// outlines, inspecting template layouts, rendering plans to review
// artifacts, serving the HTTP API, and managing the local cache. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - plan: Generate a deck plan from a topic, optionally against a template
//   - inspect: Classify a template layout and show its safe area
//   - render: Generate artifacts from a stored plan file
//   - serve: Run the HTTP API server
//   - cache: Manage the local artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkessler/deckplan/pkg/cache"
	"github.com/mkessler/deckplan/pkg/httputil"
	"github.com/mkessler/deckplan/pkg/pipeline"
	"github.com/mkessler/deckplan/pkg/planner"
	"github.com/mkessler/deckplan/pkg/render"
)

// appName is the application name used for directories and display.
const appName = "deckplan"

// apiKeyEnv is the environment variable holding the planner API key.
const apiKeyEnv = "DECKPLAN_API_KEY"

// =============================================================================
// Runner Factory
// =============================================================================

// runnerOpts select the collaborators for a pipeline runner.
type runnerOpts struct {
	noCache bool // disable the file cache
	offline bool // force the offline planner even when a key is set
	apiKey  string
}

// newRunner creates a pipeline runner for CLI use. Without an API key (or
// with --offline) the deterministic offline planner is used.
func newRunner(cmd *cobra.Command, opts runnerOpts) (*pipeline.Runner, error) {
	logger := loggerFromContext(cmd.Context())

	c, err := newCache(opts.noCache)
	if err != nil {
		return nil, err
	}

	p, err := newPlanner(opts, logger)
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(c, nil, p, logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func newPlanner(opts runnerOpts, logger *log.Logger) (planner.Planner, error) {
	key := opts.apiKey
	if key == "" {
		key = os.Getenv(apiKeyEnv)
	}
	if opts.offline || key == "" {
		return planner.NewStatic(), nil
	}

	httpCache, err := httputil.NewCache("", cache.TTLHTTP)
	if err != nil {
		httpCache = nil
	}
	return planner.NewClient(planner.ClientConfig{
		APIKey: key,
		Cache:  httpCache,
		Logger: logger,
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/deckplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends in
// a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered artifact next to base, one file per
// format, and prints the paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) error {
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
