package tree

import (
	"errors"
)

var (
	// ErrInvalidNodeID is returned by [Tree.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Tree.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique within a tree.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDanglingParent is returned by [Tree.Validate] when a node references
	// a parent ID that does not exist in the tree. Layout treats such nodes
	// as roots; Validate exists for callers that want strict input instead.
	ErrDanglingParent = errors.New("parent reference does not resolve")

	// ErrParentCycle is returned by [Tree.Validate] when following parent
	// references from some node leads back to itself. A strict tree has no
	// cycles; layout degrades cycle members to roots.
	ErrParentCycle = errors.New("parent references form a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
// It is used to carry display hints or enrichment data through the pipeline.
// Metadata maps are never nil - they are initialized to empty maps when needed.
type Metadata map[string]any

// Node represents a single organizational entity (an employee) with an
// optional reference to its manager.
//
// Parent is the ID of the node's manager; the empty string marks a root.
// The serialized field name is "prev", matching the org-chart data format.
//
// The zero value is not usable - ID must be set before adding to a Tree.
type Node struct {
	ID     string   `json:"id" bson:"id" toml:"id"`
	Name   string   `json:"name,omitempty" bson:"name,omitempty" toml:"name"`
	Role   string   `json:"role,omitempty" bson:"role,omitempty" toml:"role"`
	Parent string   `json:"prev,omitempty" bson:"prev,omitempty" toml:"prev"`
	Meta   Metadata `json:"meta,omitempty" bson:"meta,omitempty" toml:"-"`
}

// IsRoot reports whether the node declares no parent at all.
// Note that a node with a dangling parent reference is not a declared root,
// but is still laid out at level 0. Use [Tree.Resolvable] to distinguish.
func (n Node) IsRoot() bool { return n.Parent == "" }

// DisplayName returns the name if set, otherwise the ID.
func (n Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Tree is an ordered collection of nodes with single-parent references.
// Insertion order is preserved and serves as the sibling ordering key during
// layout, since the data carries no other ordering information.
//
// The zero value is not usable - use New to create a valid Tree instance.
// Tree is not safe for concurrent mutation without external synchronization;
// a fully built tree can be read from multiple goroutines.
type Tree struct {
	nodes    map[string]*Node
	order    []*Node             // insertion order
	children map[string][]string // parentID -> child IDs, insertion order
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
	}
}

// FromNodes builds a tree from an ordered node list.
// Returns ErrInvalidNodeID or ErrDuplicateNodeID on malformed input.
// Dangling parent references are accepted - they degrade to roots at layout
// time - so FromNodes never fails on them.
func FromNodes(nodes []Node) (*Tree, error) {
	t := New()
	for _, n := range nodes {
		if err := t.AddNode(n); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddNode appends a node to the tree, preserving insertion order.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. The node's Meta field is
// initialized to an empty map if nil.
func (t *Tree) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := t.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	t.nodes[node.ID] = node
	t.order = append(t.order, node)
	if node.Parent != "" {
		t.children[node.Parent] = append(t.children[node.Parent], node.ID)
	}
	return nil
}

// Node returns the node with the given ID and true, or nil and false if
// not found. The returned pointer refers to the actual node in the tree.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
// The returned slice contains pointers to the actual node structs.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, len(t.order))
	copy(nodes, t.order)
	return nodes
}

// Children returns the IDs of nodes that declare the given node as parent,
// in insertion order. The returned slice should not be modified.
func (t *Tree) Children(id string) []string { return t.children[id] }

// Parent returns the resolved parent node, or nil and false when the node
// is a root or its parent reference does not resolve.
func (t *Tree) Parent(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	if !ok || n.Parent == "" {
		return nil, false
	}
	p, ok := t.nodes[n.Parent]
	return p, ok
}

// Resolvable reports whether the node's parent reference resolves to
// another node in the tree. Roots and unknown IDs report false.
func (t *Tree) Resolvable(id string) bool {
	_, ok := t.Parent(id)
	return ok
}

// Roots returns all nodes without a declared parent, in insertion order.
// Nodes with dangling parent references are not included; they only become
// roots for layout purposes.
func (t *Tree) Roots() []*Node {
	var roots []*Node
	for _, n := range t.order {
		if n.Parent == "" {
			roots = append(roots, n)
		}
	}
	return roots
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Validate checks that the tree is strictly well-formed and returns nil if
// every parent reference resolves and no reference chain cycles.
//
// Returns ErrDanglingParent or ErrParentCycle. Layout does not require a
// valid tree - malformed nodes degrade to roots - so Validate is opt-in
// strictness for callers that ingest untrusted data.
func (t *Tree) Validate() error {
	for _, n := range t.order {
		if n.Parent == "" {
			continue
		}
		if _, ok := t.nodes[n.Parent]; !ok {
			return ErrDanglingParent
		}
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(t.nodes))
	for _, n := range t.order {
		id := n.ID
		for color[id] == white {
			color[id] = gray
			p := t.nodes[id].Parent
			if p == "" {
				break
			}
			if color[p] == gray {
				return ErrParentCycle
			}
			id = p
		}
		// Mark the visited chain as settled.
		id = n.ID
		for color[id] == gray {
			color[id] = black
			id = t.nodes[id].Parent
			if id == "" {
				break
			}
		}
	}
	return nil
}
