package tree

// Levels partitions the tree's nodes into hierarchy levels.
//
// A node's level is its depth below the nearest root: declared roots are at
// level 0, every other node is one level below its parent. Two degradation
// policies apply, both deliberate and both covered by tests:
//
//   - A node whose parent reference does not resolve is treated as a root
//     and placed at level 0.
//   - A node whose parent chain cycles back to itself is treated as a root;
//     the remaining cycle members hang off it as usual.
//
// Within each level, nodes keep their original insertion order. That order
// is the only sibling ordering key the data provides, so it is preserved
// rather than re-sorted.
//
// The result is a slice of levels indexed by depth; level indices are always
// contiguous. An empty tree yields an empty slice.
func (t *Tree) Levels() [][]*Node {
	if len(t.order) == 0 {
		return nil
	}

	depth := make(map[string]int, len(t.order))
	walking := make(map[string]bool)

	var resolve func(id string) int
	resolve = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		if walking[id] {
			// Parent chain cycled back; degrade to root.
			depth[id] = 0
			return 0
		}
		n := t.nodes[id]
		if n.Parent == "" {
			depth[id] = 0
			return 0
		}
		p, ok := t.nodes[n.Parent]
		if !ok {
			// Dangling reference; degrade to root.
			depth[id] = 0
			return 0
		}
		walking[id] = true
		d := resolve(p.ID) + 1
		delete(walking, id)
		if settled, ok := depth[id]; ok {
			// A cycle assigned this node a depth during the recursive walk.
			return settled
		}
		depth[id] = d
		return d
	}

	maxDepth := 0
	for _, n := range t.order {
		if d := resolve(n.ID); d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([][]*Node, maxDepth+1)
	for _, n := range t.order {
		d := depth[n.ID]
		levels[d] = append(levels[d], n)
	}
	return levels
}

// Level returns the depth of a single node as computed by [Tree.Levels],
// and false if the ID is unknown.
func (t *Tree) Level(id string) (int, bool) {
	if _, ok := t.nodes[id]; !ok {
		return 0, false
	}
	for d, level := range t.Levels() {
		for _, n := range level {
			if n.ID == id {
				return d, true
			}
		}
	}
	return 0, false
}
