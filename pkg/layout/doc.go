// Package layout computes 2D positions for org-chart trees.
//
// # Overview
//
// The layout engine is the algorithmic core of orgchart: given a
// [tree.Tree], [Build] produces a pixel position per node, the list of
// parent-to-child connections, and the canvas dimensions that contain them.
// Rendering sinks (SVG, PNG, DOT) consume this output without any layout
// logic of their own.
//
// The algorithm is a single-pass grouping by hierarchy level:
//
//  1. Partition nodes into levels (roots at 0, children below parents).
//  2. Keep input order within a level as the sibling ordering.
//  3. Place boxes on a fixed pitch: rank times cell width horizontally,
//     level times cell height vertically, each level centered against the
//     widest level.
//  4. Emit one connection per node with a resolvable parent.
//
// Spacing is fixed configuration ([Config], overridable with [Option]
// values), never derived from content, so every box has uniform size.
//
// # Geometry
//
// [Arrow] gives the length and rotation angle of the straight connector
// between two positions, for renderers that draw connectors as rotated
// horizontal segments around a left-center anchor.
//
// # Purity
//
// Build has no side effects, no hidden state and no randomness. Identical
// input produces an identical Result, so results can be memoized by content
// hash (see the pipeline package) without affecting correctness.
package layout
