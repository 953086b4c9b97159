package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/api"
	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/store"
)

const (
	defaultAddr           = ":8080"
	serverShutdownTimeout = 10 * time.Second
	serverReadHeaderLimit = 5 * time.Second
	storeConnectTimeout   = 10 * time.Second
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		datasetDir string
		noCache    bool
		redisAddr  string
		mongoURI   string
		mongoDB    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

Serves layouts and rendered charts over HTTP. Saved charts are kept in memory
unless a MongoDB URI is configured; cached layouts and artifacts live on disk
unless a Redis address is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), serveConfig{
				addr:       addr,
				datasetDir: datasetDir,
				noCache:    noCache,
				redisAddr:  redisAddr,
				mongoURI:   mongoURI,
				mongoDB:    mongoDB,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&datasetDir, "datasets", "", "directory with additional TOML data sets")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for the layout cache (default: file cache)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for saved charts (default: in-memory)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "MongoDB database name")

	return cmd
}

// serveConfig collects the serve command flags.
type serveConfig struct {
	addr       string
	datasetDir string
	noCache    bool
	redisAddr  string
	mongoURI   string
	mongoDB    string
}

// runServe wires up the runner, store, and HTTP server, then blocks until
// the context is cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, cfg serveConfig) error {
	cc, err := c.newServeCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	if cfg.datasetDir != "" {
		if err := dataset.LoadDir(runner.Registry, cfg.datasetDir); err != nil {
			return fmt.Errorf("load data sets from %s: %w", cfg.datasetDir, err)
		}
	}

	st, err := c.newServeStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()
		_ = st.Close(closeCtx)
	}()

	server := api.NewServer(runner, st, c.Logger)
	httpServer := &http.Server{
		Addr:              cfg.addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: serverReadHeaderLimit,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("API server listening", "addr", cfg.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newServeCache picks the cache backend for the server: Redis when an
// address is configured, the local file cache otherwise.
func (c *CLI) newServeCache(ctx context.Context, cfg serveConfig) (cache.Cache, error) {
	if cfg.noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.redisAddr != "" {
		connectCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
		defer cancel()
		return cache.NewRedisCache(connectCtx, cache.RedisConfig{Addr: cfg.redisAddr})
	}
	return newCache(false)
}

// newServeStore picks the chart store for the server: MongoDB when a URI is
// configured, an in-memory store otherwise.
func (c *CLI) newServeStore(ctx context.Context, cfg serveConfig) (store.Store, error) {
	if cfg.mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
	defer cancel()
	return store.NewMongoStore(connectCtx, store.MongoConfig{
		URI:      cfg.mongoURI,
		Database: cfg.mongoDB,
	})
}
