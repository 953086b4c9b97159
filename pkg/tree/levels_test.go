package tree

import "testing"

func levelIDs(levels [][]*Node) [][]string {
	out := make([][]string, len(levels))
	for i, level := range levels {
		for _, n := range level {
			out[i] = append(out[i], n.ID)
		}
	}
	return out
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  [][]string
	}{
		{
			name:  "Empty",
			nodes: nil,
			want:  nil,
		},
		{
			name:  "SingleRoot",
			nodes: []Node{{ID: "a"}},
			want:  [][]string{{"a"}},
		},
		{
			name: "RootWithTwoChildren",
			nodes: []Node{
				{ID: "a"},
				{ID: "b", Parent: "a"},
				{ID: "c", Parent: "a"},
			},
			want: [][]string{{"a"}, {"b", "c"}},
		},
		{
			name: "ChildDeclaredBeforeParent",
			nodes: []Node{
				{ID: "b", Parent: "a"},
				{ID: "a"},
			},
			want: [][]string{{"a"}, {"b"}},
		},
		{
			name: "DanglingParentBecomesRoot",
			nodes: []Node{
				{ID: "a"},
				{ID: "orphan", Parent: "ghost"},
				{ID: "b", Parent: "a"},
			},
			want: [][]string{{"a", "orphan"}, {"b"}},
		},
		{
			name: "ChildOfOrphanStillDescends",
			nodes: []Node{
				{ID: "orphan", Parent: "ghost"},
				{ID: "kid", Parent: "orphan"},
			},
			want: [][]string{{"orphan"}, {"kid"}},
		},
		{
			name: "ThreeDeep",
			nodes: []Node{
				{ID: "ceo"},
				{ID: "cto", Parent: "ceo"},
				{ID: "dev1", Parent: "cto"},
				{ID: "dev2", Parent: "cto"},
				{ID: "cfo", Parent: "ceo"},
			},
			want: [][]string{{"ceo"}, {"cto", "cfo"}, {"dev1", "dev2"}},
		},
		{
			name: "CycleDegradesToRoot",
			nodes: []Node{
				{ID: "a", Parent: "b"},
				{ID: "b", Parent: "a"},
			},
			want: [][]string{{"a"}, {"b"}},
		},
		{
			name: "SelfCycleDegradesToRoot",
			nodes: []Node{
				{ID: "a", Parent: "a"},
			},
			want: [][]string{{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			for _, n := range tt.nodes {
				if err := tr.AddNode(n); err != nil {
					t.Fatalf("AddNode: %v", err)
				}
			}

			got := levelIDs(tr.Levels())
			if len(got) != len(tt.want) {
				t.Fatalf("levels = %v, want %v", got, tt.want)
			}
			for i := range got {
				if len(got[i]) != len(tt.want[i]) {
					t.Fatalf("level %d = %v, want %v", i, got[i], tt.want[i])
				}
				for j := range got[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("level %d = %v, want %v", i, got[i], tt.want[i])
						break
					}
				}
			}
		})
	}
}

func TestLevelsDeterministic(t *testing.T) {
	nodes := []Node{
		{ID: "r"},
		{ID: "x", Parent: "r"},
		{ID: "y", Parent: "r"},
		{ID: "z", Parent: "x"},
	}
	build := func() [][]string {
		tr := New()
		for _, n := range nodes {
			tr.AddNode(n)
		}
		return levelIDs(tr.Levels())
	}

	first := build()
	for i := 0; i < 10; i++ {
		again := build()
		for l := range first {
			for j := range first[l] {
				if first[l][j] != again[l][j] {
					t.Fatalf("run %d: levels differ: %v vs %v", i, first, again)
				}
			}
		}
	}
}

func TestLevel(t *testing.T) {
	tr := New()
	tr.AddNode(Node{ID: "a"})
	tr.AddNode(Node{ID: "b", Parent: "a"})

	if d, ok := tr.Level("b"); !ok || d != 1 {
		t.Errorf("Level(b) = %d, %v, want 1, true", d, ok)
	}
	if _, ok := tr.Level("missing"); ok {
		t.Error("Level(missing) should report false")
	}
}
