package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/orgchart/pkg/tree"
)

// =============================================================================
// Chart - Org Chart Serialization
// =============================================================================

// Chart is the canonical serialization format for org charts.
// Used for API requests and responses, storage, caching, and data-set files.
//
// The format is human-readable and round-trips exactly: import → layout →
// export → re-import produces identical results. Node order is preserved
// because it is the sibling ordering key.
type Chart struct {
	Name  string      `json:"name,omitempty" bson:"name,omitempty"`
	Nodes []tree.Node `json:"nodes" bson:"nodes"`
}

// FromTree converts a tree to its serialization format.
// Nodes appear in insertion order for round-trip fidelity.
func FromTree(t *tree.Tree) Chart {
	nodes := t.Nodes()
	out := Chart{Nodes: make([]tree.Node, len(nodes))}
	for i, n := range nodes {
		out.Nodes[i] = *n
		if len(n.Meta) == 0 {
			out.Nodes[i].Meta = nil
		}
	}
	return out
}

// ToTree converts a Chart to a tree.
// Returns an error for empty or duplicate node IDs. Dangling parent
// references are accepted; they degrade to roots at layout time.
func ToTree(c Chart) (*tree.Tree, error) {
	t := tree.New()
	for _, n := range c.Nodes {
		if err := t.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}
	return t, nil
}

// =============================================================================
// Chart Serialization API
// =============================================================================

// MarshalChart serializes a Chart to pretty-printed JSON bytes.
// The output is deterministic for a given chart, so it can double as
// content-hash input for caching.
func MarshalChart(c Chart) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// UnmarshalChart deserializes JSON bytes to a Chart.
func UnmarshalChart(data []byte) (Chart, error) {
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return Chart{}, fmt.Errorf("unmarshal chart: %w", err)
	}
	return c, nil
}

// WriteChart writes a Chart as JSON to an io.Writer.
func WriteChart(c Chart, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadChart decodes a JSON chart from an io.Reader.
func ReadChart(r io.Reader) (Chart, error) {
	var c Chart
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Chart{}, fmt.Errorf("decode: %w", err)
	}
	return c, nil
}

// WriteChartFile writes a Chart to a JSON file with 0644 permissions.
func WriteChartFile(c Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteChart(c, f)
}

// ReadChartFile reads a Chart from a JSON file.
func ReadChartFile(path string) (Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return Chart{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadChart(f)
}

// ReadTreeFile reads a chart file and converts it straight to a tree.
func ReadTreeFile(path string) (*tree.Tree, error) {
	c, err := ReadChartFile(path)
	if err != nil {
		return nil, err
	}
	return ToTree(c)
}
