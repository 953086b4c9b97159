package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/chart"
	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file (single format) or base path (multiple)
	layoutFile string // pre-computed layout.json to render directly
	chartFile  string // chart.json to run through the full pipeline
	datasetDir string // directory with additional TOML data sets
	noCache    bool   // disable caching
}

// renderCommand creates the render command for generating chart diagrams.
// It runs the full load, layout, and render pipeline for a data set or chart
// file, or renders a pre-computed layout.json directly.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var ropts renderOpts
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [dataset|layout.json]",
		Short: "Render an organisation chart to SVG, PNG, DOT, or JSON",
		Long: `Render an organisation chart to SVG, PNG, DOT, or JSON.

The positional argument is either a data set name (see 'orgchart datasets list')
or a layout.json file produced by 'orgchart layout'. A chart.json file can be
supplied with --chart instead.

Multiple formats can be produced in one run (comma-separated).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if looksLikeLayoutFile(args[0]) {
					ropts.layoutFile = args[0]
				} else {
					opts.Dataset = args[0]
				}
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(withLogger(cmd.Context(), c.Logger), opts, ropts)
		},
	}

	cmd.Flags().StringVarP(&ropts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, nodelink, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", pipeline.DefaultStyle, "visual style: simple (default), outline")
	cmd.Flags().StringVar(&ropts.chartFile, "chart", "", "chart.json file to render instead of a data set")
	cmd.Flags().StringVar(&ropts.datasetDir, "datasets", "", "directory with additional TOML data sets")
	cmd.Flags().BoolVar(&ropts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached results exist")

	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "box width in pixels")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", 0, "box height in pixels")
	cmd.Flags().Float64Var(&opts.GapX, "gap-x", 0, "horizontal gap between boxes")
	cmd.Flags().Float64Var(&opts.GapY, "gap-y", 0, "vertical gap between levels")
	cmd.Flags().Float64Var(&opts.Margin, "margin", 0, "outer margin around the chart")

	return cmd
}

// looksLikeLayoutFile reports whether the positional argument refers to a
// layout file rather than a data set name.
func looksLikeLayoutFile(arg string) bool {
	if strings.HasSuffix(arg, ".json") {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}

// runRender produces the requested artifacts and writes them to disk.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, ropts renderOpts) error {
	runner, err := c.newRunner(ropts.noCache, ropts.datasetDir)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	var (
		artifacts map[string][]byte
		l         chart.Layout
		cacheHit  bool
		base      string
	)

	spinner := newSpinnerWithContext(ctx, "Rendering chart...")
	spinner.Start()

	switch {
	case ropts.layoutFile != "":
		l, err = chart.ReadLayoutFile(ropts.layoutFile)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load layout %s: %w", ropts.layoutFile, err)
		}
		artifacts, err = runner.Render(ctx, l, opts)
		base = strings.TrimSuffix(ropts.layoutFile, ".layout.json")
		base = strings.TrimSuffix(base, ".json")
	case ropts.chartFile != "":
		var ch chart.Chart
		ch, err = chart.ReadChartFile(ropts.chartFile)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load chart %s: %w", ropts.chartFile, err)
		}
		opts.Chart = &ch
		var res *pipeline.Result
		res, err = runner.Execute(ctx, opts)
		if res != nil {
			artifacts, l, cacheHit = res.Artifacts, res.Layout, res.CacheInfo.RenderHit
		}
		base = strings.TrimSuffix(ropts.chartFile, filepath.Ext(ropts.chartFile))
	default:
		if opts.Dataset == "" {
			opts.Dataset = dataset.Default
		}
		var res *pipeline.Result
		res, err = runner.Execute(ctx, opts)
		if res != nil {
			artifacts, l, cacheHit = res.Artifacts, res.Layout, res.CacheInfo.RenderHit
		}
		base = strings.ToLower(strings.ReplaceAll(opts.Dataset, " ", "-"))
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, ropts.output, base)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(l.Positions), len(l.Connections), cacheHit)

	return nil
}

// writeArtifacts writes each rendered artifact to its output path.
// A single format honors --output verbatim; multiple formats treat it as a
// base path and append the format extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, base string) ([]string, error) {
	if output != "" && len(formats) == 1 {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", output, err)
		}
		return []string{output}, nil
	}

	if output != "" {
		base = output
	}

	paths := make([]string, 0, len(formats))
	for _, name := range formats {
		f, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		path := fmt.Sprintf("%s.%s", base, f.Extension())
		if err := os.WriteFile(path, artifacts[name], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
