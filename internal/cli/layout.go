package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/chart"
	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		chartFile  string
		datasetDir string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute box positions and connections for a data set or chart file",
		Long: `Compute box positions and connections for a data set or chart file.

The layout command takes a built-in data set name (see 'orgchart datasets list')
or a chart.json file (--chart) and computes box positions level by level, each
level centered on the widest one. The output is a layout.json file that can be
rendered to SVG/PNG/DOT using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Dataset = args[0]
			}
			return c.runLayout(withLogger(cmd.Context(), c.Logger), opts, chartFile, datasetDir, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dataset>.layout.json)")
	cmd.Flags().StringVar(&chartFile, "chart", "", "chart.json file to lay out instead of a data set")
	cmd.Flags().StringVar(&datasetDir, "datasets", "", "directory with additional TOML data sets")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached layout exists")

	// Spacing flags (zero keeps the engine defaults)
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "box width in pixels")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", 0, "box height in pixels")
	cmd.Flags().Float64Var(&opts.GapX, "gap-x", 0, "horizontal gap between boxes")
	cmd.Flags().Float64Var(&opts.GapY, "gap-y", 0, "vertical gap between levels")
	cmd.Flags().Float64Var(&opts.Margin, "margin", 0, "outer margin around the chart")

	return cmd
}

// runLayout loads the chart, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, chartFile, datasetDir, output string, noCache bool) error {
	if chartFile != "" {
		ch, err := chart.ReadChartFile(chartFile)
		if err != nil {
			return fmt.Errorf("load chart %s: %w", chartFile, err)
		}
		opts.Chart = &ch
		opts.Dataset = ""
	}
	if opts.Chart == nil && opts.Dataset == "" {
		opts.Dataset = dataset.Default
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(noCache, datasetDir)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger
	if err := opts.ValidateForLoad(); err != nil {
		return err
	}

	ch, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load chart: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, ch, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutOutputPath(opts.Dataset, chartFile)
	}

	if err := chart.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done(fmt.Sprintf("Placed %d boxes", len(l.Positions)))

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Positions), len(l.Connections), cacheHit)
	printNewline()
	printNextStep("Render", "orgchart render "+outputPath)

	return nil
}

// layoutOutputPath derives the default output path for a layout.
func layoutOutputPath(dataset, chartFile string) string {
	if chartFile != "" {
		base := strings.TrimSuffix(chartFile, filepath.Ext(chartFile))
		return base + ".layout.json"
	}
	name := strings.ToLower(strings.ReplaceAll(dataset, " ", "-"))
	return name + ".layout.json"
}
