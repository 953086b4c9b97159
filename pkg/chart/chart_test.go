package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/tree"
)

func TestChartRoundTrip(t *testing.T) {
	tr := tree.New()
	tr.AddNode(tree.Node{ID: "ceo", Name: "Avery", Role: "CEO"})
	tr.AddNode(tree.Node{ID: "cto", Name: "Sam", Role: "CTO", Parent: "ceo"})

	c := FromTree(tr)
	data, err := MarshalChart(c)
	if err != nil {
		t.Fatalf("MarshalChart: %v", err)
	}

	back, err := UnmarshalChart(data)
	if err != nil {
		t.Fatalf("UnmarshalChart: %v", err)
	}
	if !reflect.DeepEqual(c, back) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", c, back)
	}

	tr2, err := ToTree(back)
	if err != nil {
		t.Fatalf("ToTree: %v", err)
	}
	if tr2.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", tr2.NodeCount())
	}
	if kids := tr2.Children("ceo"); len(kids) != 1 || kids[0] != "cto" {
		t.Errorf("Children(ceo) = %v, want [cto]", kids)
	}
}

func TestChartWireFormat(t *testing.T) {
	// The parent field serializes as "prev", matching the org data format.
	c := Chart{Nodes: []tree.Node{{ID: "b", Parent: "a"}}}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(data, []byte(`"prev":"a"`)) {
		t.Errorf("serialized chart missing prev field: %s", data)
	}
}

func TestToTreeErrors(t *testing.T) {
	tests := []struct {
		name    string
		chart   Chart
		wantErr error
	}{
		{
			name:    "EmptyID",
			chart:   Chart{Nodes: []tree.Node{{Name: "nameless"}}},
			wantErr: tree.ErrInvalidNodeID,
		},
		{
			name:    "Duplicate",
			chart:   Chart{Nodes: []tree.Node{{ID: "a"}, {ID: "a"}}},
			wantErr: tree.ErrDuplicateNodeID,
		},
		{
			name:  "DanglingParentOK",
			chart: Chart{Nodes: []tree.Node{{ID: "a", Parent: "ghost"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToTree(tt.chart)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ToTree error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChartFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.json")
	c := Chart{Name: "team", Nodes: []tree.Node{{ID: "a"}, {ID: "b", Parent: "a"}}}

	if err := WriteChartFile(c, path); err != nil {
		t.Fatalf("WriteChartFile: %v", err)
	}
	back, err := ReadChartFile(path)
	if err != nil {
		t.Fatalf("ReadChartFile: %v", err)
	}
	if !reflect.DeepEqual(c, back) {
		t.Errorf("file round trip mismatch:\n%+v\n%+v", c, back)
	}

	tr, err := ReadTreeFile(path)
	if err != nil {
		t.Fatalf("ReadTreeFile: %v", err)
	}
	if tr.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", tr.NodeCount())
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	tr := tree.New()
	tr.AddNode(tree.Node{ID: "a"})
	tr.AddNode(tree.Node{ID: "b", Parent: "a"})

	res := layout.Build(tr)
	l := FromResult(res, "Test-data-1")
	l.Labels = map[string]Label{"a": {Name: "Avery", Role: "CEO"}}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if !reflect.DeepEqual(l, back) {
		t.Errorf("layout round trip mismatch:\n%+v\n%+v", l, back)
	}
}

func TestLayoutArrowSkipsMissingEndpoints(t *testing.T) {
	l := Layout{
		Positions: map[string]layout.Position{
			"a": {Left: 0, Top: 0},
			"b": {Left: 0, Top: 100},
		},
		Spacing: layout.Config{NodeWidth: 0, NodeHeight: 0},
	}

	if _, ok := l.Arrow(layout.Connection{From: "a", To: "b"}); !ok {
		t.Error("arrow for resolvable connection should exist")
	}
	if _, ok := l.Arrow(layout.Connection{From: "a", To: "removed"}); ok {
		t.Error("arrow with missing endpoint should be skipped")
	}
	if _, ok := l.Arrow(layout.Connection{From: "removed", To: "b"}); ok {
		t.Error("arrow with missing start should be skipped")
	}
}

func TestUnmarshalLayoutDefaults(t *testing.T) {
	l, err := UnmarshalLayout([]byte(`{"width": 0, "height": 0}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if l.Positions == nil {
		t.Error("Positions should never be nil after unmarshal")
	}
}
