// Package tree provides the strict-tree data structure behind org-chart
// layouts.
//
// # Overview
//
// An org chart is a hierarchy of employee nodes, each with at most one
// parent (the manager). This package holds that hierarchy in insertion
// order and partitions it into levels for the layout engine: roots at
// level 0, every other node one level below its parent.
//
// # Basic Usage
//
// Create a tree with [New] or [FromNodes], add nodes with [Tree.AddNode],
// and query structure with [Tree.Children], [Tree.Parent] and [Tree.Levels]:
//
//	t := tree.New()
//	t.AddNode(tree.Node{ID: "ceo", Name: "Avery", Role: "CEO"})
//	t.AddNode(tree.Node{ID: "cto", Name: "Sam", Role: "CTO", Parent: "ceo"})
//	levels := t.Levels() // [[ceo] [cto]]
//
// # Degradation Policy
//
// Input data is trusted but not assumed perfect. A node whose parent
// reference does not resolve - or whose parent chain cycles - is laid out
// as a root instead of failing the whole chart. No connection is emitted
// for such nodes. Callers that prefer strictness can run [Tree.Validate]
// first and reject the input on [ErrDanglingParent] or [ErrParentCycle].
//
// # Ordering
//
// Insertion order is the only ordering key the data provides, so it is the
// sibling tie-break everywhere: [Tree.Nodes], [Tree.Children] and the level
// slices of [Tree.Levels] all preserve it. This makes every downstream
// computation deterministic for a given input sequence.
//
// # Concurrency
//
// Tree instances are not safe for concurrent mutation. A fully built tree
// is effectively immutable and can be read from multiple goroutines.
package tree
