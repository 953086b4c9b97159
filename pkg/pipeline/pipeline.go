// Package pipeline provides the core visualization pipeline for Orgchart.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Resolve the chart from a registered data set or a chart file
//  2. Layout: Compute box positions and connector geometry
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Dataset: "Test-data-1",
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
//	// Load only
//	c, err := runner.Load(ctx, opts)
//
//	// Layout with an existing chart
//	l, err := runner.ComputeLayout(ctx, c, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/chart"
	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is the output format used when none is requested.
	DefaultFormat = string(render.FormatSVG)

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Dataset string       `json:"dataset,omitempty"`
	Chart   *chart.Chart `json:"chart,omitempty"` // Explicit chart; overrides Dataset

	// Layout options (zero values fall back to the engine defaults)
	NodeWidth  float64 `json:"node_width,omitempty"`
	NodeHeight float64 `json:"node_height,omitempty"`
	GapX       float64 `json:"gap_x,omitempty"`
	GapY       float64 `json:"gap_y,omitempty"`
	Margin     float64 `json:"margin,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`

	// Refresh bypasses the cache and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the loaded chart.
	Chart chart.Chart

	// ChartHash is the content hash of the chart.
	ChartHash string

	// Layout contains the computed layout (positions, connections, labels).
	Layout chart.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int
	ConnectionCount int
	LoadTime        time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	_, err := render.ParseFormat(format)
	return err
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := render.ParseStyle(style)
	return err
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
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Chart == nil {
		if o.Dataset == "" {
			return errors.New(errors.ErrCodeInvalidInput, "dataset or chart is required")
		}
		if err := errors.ValidateDataSetName(o.Dataset); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	o.setLoggerDefault()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SpacingOptions converts the spacing overrides to layout engine options.
// Zero values keep the engine defaults.
func (o *Options) SpacingOptions() []layout.Option {
	var opts []layout.Option
	if o.NodeWidth > 0 || o.NodeHeight > 0 {
		w, h := o.NodeWidth, o.NodeHeight
		if w <= 0 {
			w = layout.DefaultNodeWidth
		}
		if h <= 0 {
			h = layout.DefaultNodeHeight
		}
		opts = append(opts, layout.WithNodeSize(w, h))
	}
	if o.GapX > 0 || o.GapY > 0 {
		gx, gy := o.GapX, o.GapY
		if gx <= 0 {
			gx = layout.DefaultGapX
		}
		if gy <= 0 {
			gy = layout.DefaultGapY
		}
		opts = append(opts, layout.WithGaps(gx, gy))
	}
	if o.Margin > 0 {
		opts = append(opts, layout.WithMargin(o.Margin))
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := layout.DefaultConfig()
	for _, opt := range o.SpacingOptions() {
		opt(&cfg)
	}
	return cache.LayoutKeyOpts{
		NodeWidth:  cfg.NodeWidth,
		NodeHeight: cfg.NodeHeight,
		GapX:       cfg.GapX,
		GapY:       cfg.GapY,
		Margin:     cfg.Margin,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
	}
}
