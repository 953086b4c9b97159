// Package render provides visualization rendering for org-chart layouts.
//
// # Overview
//
// This package contains the sinks that transform a computed [chart.Layout]
// into visual outputs. It performs no layout computation of its own: every
// position, dimension and connector angle comes from the layout engine.
// It provides:
//
//   - SVG output with pluggable visual styles
//   - PNG output via direct raster drawing
//   - DOT/Graphviz output as an alternative node-link export
//   - JSON output (the layout serialization itself)
//
// # SVG Rendering
//
// [RenderSVG] draws each node as an absolutely positioned box carrying the
// name and role labels, and each reporting line as a horizontal segment
// rotated about its start anchor by the connector angle. Connections whose
// endpoints have no position are skipped.
//
//	svg := render.RenderSVG(l, render.WithStyle(render.Outline{}))
//
// # Visual Styles
//
// The [Style] interface controls how boxes, connectors and labels are drawn.
// Two styles ship with the package:
//   - [Simple]: filled boxes with solid connectors (the default)
//   - [Outline]: stroke-only boxes with dashed connectors
//
// # Other Formats
//
// [RenderPNG] rasterizes the same geometry. [ToDOT] plus [RenderDOT] export
// a classic top-down node-link diagram through the Graphviz engine, which
// applies its own layout. [Render] dispatches on a [Format] value.
//
// [chart.Layout]: github.com/matzehuels/orgchart/pkg/chart
package render
