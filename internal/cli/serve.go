package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mkessler/deckplan/pkg/cache"
	"github.com/mkessler/deckplan/pkg/httpapi"
	"github.com/mkessler/deckplan/pkg/pipeline"
	"github.com/mkessler/deckplan/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redisURL string // redis cache URL, empty for the file cache
	mongoURI string // mongodb plan store URI, empty for in-memory
	mongoDB  string // mongodb database name
	offline  bool   // force the offline planner
	apiKey   string // planner API key (overrides env)
	noCache  bool   // disable caching
}

// newServeCmd creates the serve command running the HTTP API.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve exposes the planning pipeline over HTTP. Plans are stored in
MongoDB when --mongo is given, otherwise in process memory; artifacts are
cached in Redis when --redis is given, otherwise on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for the artifact cache (default: file cache)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "mongodb URI for the plan store (default: in-memory)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "mongodb database name")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "use the offline planner even when an API key is set")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "planner API key (default: $"+apiKeyEnv+")")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	c, err := newServeCache(ctx, opts)
	if err != nil {
		return err
	}

	p, err := newPlanner(runnerOpts{offline: opts.offline, apiKey: opts.apiKey}, logger)
	if err != nil {
		return err
	}

	st, err := newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()

	runner := pipeline.NewRunner(c, nil, p, logger)
	defer runner.Close()

	srv, err := httpapi.New(httpapi.Config{
		Addr:   opts.addr,
		Runner: runner,
		Store:  st,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return srv.Shutdown(context.Background())
}

// newServeCache picks the server-side cache backend: Redis when a URL is
// given, the local file cache otherwise.
func newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		return cache.NewRedisCache(ctx, opts.redisURL)
	}
	return newCache(false)
}

// newStore picks the plan store backend: MongoDB when a URI is given, an
// in-memory store otherwise.
func newStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI != "" {
		return store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
	}
	return store.NewMemoryStore(), nil
}
