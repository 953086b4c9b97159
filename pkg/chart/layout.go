package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/orgchart/pkg/layout"
)

// =============================================================================
// Layout - Computed Diagram Serialization
// =============================================================================

// Layout is the serialization format for a computed org-chart layout.
//
// It captures everything the rendering layer needs: a position per node ID,
// the parent-to-child connections, canvas dimensions, and the spacing that
// produced them. Positions are derived data - recomputed whenever the node
// list changes - so a Layout is a snapshot, not a source of truth.
type Layout struct {
	Dataset string `json:"dataset,omitempty" bson:"dataset,omitempty"`
	Style   string `json:"style,omitempty" bson:"style,omitempty"`

	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Positions   map[string]layout.Position `json:"positions" bson:"positions"`
	Connections []layout.Connection        `json:"connections" bson:"connections"`
	Spacing     layout.Config              `json:"spacing" bson:"spacing"`

	// Labels carries display name and role per node ID so sinks can label
	// boxes without re-reading the chart.
	Labels map[string]Label `json:"labels,omitempty" bson:"labels,omitempty"`
}

// Label is the display text for one node box.
type Label struct {
	Name string `json:"name,omitempty" bson:"name,omitempty"`
	Role string `json:"role,omitempty" bson:"role,omitempty"`
}

// FromResult converts a layout engine result to its serialization format.
func FromResult(res layout.Result, dataset string) Layout {
	return Layout{
		Dataset:     dataset,
		Width:       res.Dimensions.Width,
		Height:      res.Dimensions.Height,
		Positions:   res.Positions,
		Connections: res.Connections,
		Spacing:     res.Config,
	}
}

// Arrow returns the connector geometry for a connection and true, or false
// when either endpoint has no position (for instance a stale connection
// referencing a removed node). Renderers skip such connections instead of
// failing.
func (l Layout) Arrow(c layout.Connection) (layout.ArrowProperties, bool) {
	from, okFrom := l.Positions[c.From]
	to, okTo := l.Positions[c.To]
	if !okFrom || !okTo {
		return layout.ArrowProperties{}, false
	}
	return layout.Arrow(l.Spacing.BottomCenter(from), l.Spacing.TopCenter(to)), true
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A layout with nodes must carry a position map; connections may legally
// reference IDs without positions (they are skipped at render time).
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Positions == nil {
		l.Positions = map[string]layout.Position{}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
