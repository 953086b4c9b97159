// Package pkg provides the core libraries for Orgchart layout and rendering.
//
// # Overview
//
// Orgchart turns flat lists of people with parent references into level-based
// chart layouts and rendered diagrams. The pkg directory is organized into
// four main areas:
//
//  1. [tree], [layout] - Domain logic (hierarchy resolution, box placement, arrow geometry)
//  2. [cache], [store] - Infrastructure (layout/artifact caching, saved charts)
//  3. [chart], [dataset], [render] - Serialization, data sets, and output formats
//  4. [pipeline], [api] - Orchestration (load → layout → render) and the HTTP surface
//
// # Architecture
//
// The typical data flow through Orgchart:
//
//	Data Set / chart.json
//	         ↓
//	tree.New (parent resolution, level assignment)
//	         ↓
//	layout.Build (per-level centering, connections)
//	         ↓
//	render (SVG / PNG / DOT / JSON)
//
// The [pipeline] package drives this flow with per-stage content-hash
// caching; the [api] package exposes it over HTTP and the internal/cli
// package over the command line.
package pkg
