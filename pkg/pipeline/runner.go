package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/chart"
	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, registry and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Registry *dataset.Registry
	Logger   *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The registry defaults to the built-in data sets.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Registry: dataset.BuiltIn(),
		Logger:   logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Dataset)
	c, err := r.Load(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.Dataset, len(c.Nodes), time.Since(loadStart), err)
	if err != nil {
		return nil, err
	}
	result.Chart = c
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(c.Nodes)

	if chartData, err := chart.MarshalChart(c); err == nil {
		result.ChartHash = cache.Hash(chartData)
	}

	opts.Logger.Info("loaded chart",
		"dataset", c.Name,
		"nodes", len(c.Nodes),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, c.Name, len(c.Nodes))
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, c, opts)
	observability.Pipeline().OnLayoutComplete(ctx, c.Name, time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ConnectionCount = len(l.Connections)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"positions", len(l.Positions),
		"connections", len(l.Connections),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load resolves the chart for the run: an explicit chart when one is set,
// otherwise the named data set from the registry.
func (r *Runner) Load(ctx context.Context, opts Options) (chart.Chart, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return chart.Chart{}, err
	}

	if opts.Chart != nil {
		if _, err := chart.ToTree(*opts.Chart); err != nil {
			return chart.Chart{}, errors.Wrap(errors.ErrCodeInvalidChart, err, "invalid chart")
		}
		return *opts.Chart, nil
	}

	ds, err := r.Registry.Get(opts.Dataset)
	if err != nil {
		return chart.Chart{}, errors.Wrap(errors.ErrCodeDataSetNotFound, err, "unknown data set: %s", opts.Dataset)
	}
	return ds.Chart(), nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, c chart.Chart, opts Options) (chart.Layout, bool, error) {
	r.applyLogger(&opts)

	chartData, err := chart.MarshalChart(c)
	if err != nil {
		return chart.Layout{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize chart for cache key")
	}
	chartHash := cache.Hash(chartData)
	cacheKey := r.Keyer.LayoutKey(chartHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := chart.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	l, err := ComputeLayout(c, opts)
	if err != nil {
		return chart.Layout{}, false, err
	}

	if data, err := chart.MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultTTL)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, c chart.Chart, opts Options) (chart.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, c, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l chart.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := chart.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := RenderLayout(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultTTL)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l chart.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
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

// =============================================================================
// Stage Functions
// =============================================================================

// ComputeLayout builds the layout for a chart without caching.
func ComputeLayout(c chart.Chart, opts Options) (chart.Layout, error) {
	t, err := chart.ToTree(c)
	if err != nil {
		return chart.Layout{}, errors.Wrap(errors.ErrCodeInvalidChart, err, "invalid chart")
	}

	res := layout.Build(t, opts.SpacingOptions()...)
	l := chart.FromResult(res, c.Name)
	l.Style = opts.Style

	l.Labels = make(map[string]chart.Label, len(c.Nodes))
	for _, n := range c.Nodes {
		l.Labels[n.ID] = chart.Label{Name: n.Name, Role: n.Role}
	}
	return l, nil
}

// RenderLayout renders a layout in every requested format without caching.
func RenderLayout(ctx context.Context, l chart.Layout, opts Options) (map[string][]byte, error) {
	style, err := render.ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, name := range opts.Formats {
		format, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		data, err := render.Render(ctx, l, format, style)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}
