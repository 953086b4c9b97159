package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/orgchart/pkg/tree"
)

func buildTree(t *testing.T, nodes []tree.Node) *tree.Tree {
	t.Helper()
	tr, err := tree.FromNodes(nodes)
	if err != nil {
		t.Fatalf("FromNodes: %v", err)
	}
	return tr
}

func TestBuildEmpty(t *testing.T) {
	res := Build(tree.New())

	if len(res.Positions) != 0 {
		t.Errorf("positions = %v, want empty", res.Positions)
	}
	if len(res.Connections) != 0 {
		t.Errorf("connections = %v, want empty", res.Connections)
	}
	if res.Dimensions.Width != 0 || res.Dimensions.Height != 0 {
		t.Errorf("dimensions = %+v, want zero", res.Dimensions)
	}
}

func TestBuildNil(t *testing.T) {
	res := Build(nil)
	if len(res.Positions) != 0 || len(res.Connections) != 0 {
		t.Errorf("nil tree should produce an empty layout, got %+v", res)
	}
}

func TestBuildSimpleFanOut(t *testing.T) {
	tr := buildTree(t, []tree.Node{
		{ID: "a"},
		{ID: "b", Parent: "a"},
		{ID: "c", Parent: "a"},
	})

	res := Build(tr)

	if len(res.Positions) != 3 {
		t.Fatalf("positions = %d, want 3", len(res.Positions))
	}

	a, b, c := res.Positions["a"], res.Positions["b"], res.Positions["c"]

	// "a" is at level 0, "b" and "c" one level below.
	if a.Top >= b.Top || b.Top != c.Top {
		t.Errorf("tops: a=%v b=%v c=%v, want a above b == c", a.Top, b.Top, c.Top)
	}

	// Siblings have distinct horizontal offsets, in input order.
	if b.Left >= c.Left {
		t.Errorf("lefts: b=%v c=%v, want b left of c", b.Left, c.Left)
	}

	want := []Connection{{From: "a", To: "b"}, {From: "a", To: "c"}}
	if !reflect.DeepEqual(res.Connections, want) {
		t.Errorf("connections = %v, want %v", res.Connections, want)
	}
}

func TestBuildEveryNodePositionedOnce(t *testing.T) {
	nodes := []tree.Node{
		{ID: "ceo"},
		{ID: "cto", Parent: "ceo"},
		{ID: "cfo", Parent: "ceo"},
		{ID: "dev1", Parent: "cto"},
		{ID: "dev2", Parent: "cto"},
		{ID: "acct", Parent: "cfo"},
	}
	res := Build(buildTree(t, nodes))

	if len(res.Positions) != len(nodes) {
		t.Fatalf("positions = %d, want %d", len(res.Positions), len(nodes))
	}
	for _, n := range nodes {
		if _, ok := res.Positions[n.ID]; !ok {
			t.Errorf("missing position for %s", n.ID)
		}
	}
}

func TestBuildOrphanGetsNoConnection(t *testing.T) {
	tr := buildTree(t, []tree.Node{
		{ID: "a"},
		{ID: "orphan", Parent: "ghost"},
		{ID: "b", Parent: "a"},
	})

	res := Build(tr)

	// The orphan sits at level 0 alongside "a".
	if res.Positions["orphan"].Top != res.Positions["a"].Top {
		t.Errorf("orphan top = %v, want level 0 alongside a (%v)",
			res.Positions["orphan"].Top, res.Positions["a"].Top)
	}

	for _, c := range res.Connections {
		if c.To == "orphan" || c.From == "ghost" {
			t.Errorf("unexpected connection %v for orphan", c)
		}
	}
	if len(res.Connections) != 1 {
		t.Errorf("connections = %v, want exactly [{a b}]", res.Connections)
	}
}

func TestBuildConnectionsMatchResolvableParents(t *testing.T) {
	nodes := []tree.Node{
		{ID: "r"},
		{ID: "x", Parent: "r"},
		{ID: "y", Parent: "r"},
		{ID: "z", Parent: "y"},
		{ID: "stray", Parent: "nowhere"},
	}
	res := Build(buildTree(t, nodes))

	seen := make(map[string]int)
	for _, c := range res.Connections {
		seen[c.To]++
	}
	for _, n := range nodes {
		want := 0
		if n.Parent != "" && n.Parent != "nowhere" {
			want = 1
		}
		if seen[n.ID] != want {
			t.Errorf("node %s has %d incoming connections, want %d", n.ID, seen[n.ID], want)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	nodes := []tree.Node{
		{ID: "a"},
		{ID: "b", Parent: "a"},
		{ID: "c", Parent: "a"},
		{ID: "d", Parent: "b"},
	}

	first := Build(buildTree(t, nodes))
	for i := 0; i < 20; i++ {
		again := Build(buildTree(t, nodes))
		if !reflect.DeepEqual(first.Positions, again.Positions) {
			t.Fatalf("run %d: positions differ", i)
		}
		if !reflect.DeepEqual(first.Connections, again.Connections) {
			t.Fatalf("run %d: connections differ", i)
		}
		if first.Dimensions != again.Dimensions {
			t.Fatalf("run %d: dimensions differ", i)
		}
	}
}

func TestBuildSpacing(t *testing.T) {
	tr := buildTree(t, []tree.Node{
		{ID: "a"},
		{ID: "b", Parent: "a"},
		{ID: "c", Parent: "a"},
	})
	cfg := Config{NodeWidth: 100, NodeHeight: 50, GapX: 20, GapY: 30, Margin: 10}
	res := Build(tr, WithConfig(cfg))

	b, c := res.Positions["b"], res.Positions["c"]
	if got := c.Left - b.Left; got != cfg.CellWidth() {
		t.Errorf("sibling pitch = %v, want %v", got, cfg.CellWidth())
	}

	a := res.Positions["a"]
	if got := b.Top - a.Top; got != cfg.CellHeight() {
		t.Errorf("level pitch = %v, want %v", got, cfg.CellHeight())
	}

	// Level 0 (one node) is centered against level 1 (two nodes).
	wantLeft := cfg.Margin + cfg.CellWidth()/2
	if a.Left != wantLeft {
		t.Errorf("root left = %v, want centered at %v", a.Left, wantLeft)
	}

	wantW := 2*cfg.CellWidth() + 2*cfg.Margin
	wantH := 2*cfg.CellHeight() + 2*cfg.Margin
	if res.Dimensions.Width != wantW || res.Dimensions.Height != wantH {
		t.Errorf("dimensions = %+v, want %vx%v", res.Dimensions, wantW, wantH)
	}
}

func TestBuildOptions(t *testing.T) {
	tr := buildTree(t, []tree.Node{{ID: "solo"}})

	res := Build(tr, WithNodeSize(80, 40), WithGaps(10, 10), WithMargin(5))
	p := res.Positions["solo"]
	if p.Left != 5 || p.Top != 5 {
		t.Errorf("position = %+v, want {5 5}", p)
	}
	if res.Dimensions.Width != 80+10+2*5 {
		t.Errorf("width = %v, want %v", res.Dimensions.Width, 80+10+2*5.0)
	}
}

func TestBuildPositionsAreFinite(t *testing.T) {
	tr := buildTree(t, []tree.Node{
		{ID: "a"},
		{ID: "b", Parent: "a"},
	})
	res := Build(tr)
	for id, p := range res.Positions {
		if math.IsNaN(p.Left) || math.IsInf(p.Left, 0) || math.IsNaN(p.Top) || math.IsInf(p.Top, 0) {
			t.Errorf("node %s has non-finite position %+v", id, p)
		}
	}
}
