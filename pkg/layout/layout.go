package layout

import (
	"github.com/matzehuels/orgchart/pkg/tree"
)

// Default spacing constants in pixels. Spacing is fixed configuration and is
// never derived from node content.
const (
	DefaultNodeWidth  = 120.0
	DefaultNodeHeight = 60.0
	DefaultGapX       = 30.0
	DefaultGapY       = 40.0
	DefaultMargin     = 20.0
)

// Config holds the fixed spacing used when positioning nodes.
type Config struct {
	NodeWidth  float64 `json:"node_width" toml:"node_width"`
	NodeHeight float64 `json:"node_height" toml:"node_height"`
	GapX       float64 `json:"gap_x" toml:"gap_x"`
	GapY       float64 `json:"gap_y" toml:"gap_y"`
	Margin     float64 `json:"margin" toml:"margin"`
}

// DefaultConfig returns the package default spacing.
func DefaultConfig() Config {
	return Config{
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		GapX:       DefaultGapX,
		GapY:       DefaultGapY,
		Margin:     DefaultMargin,
	}
}

// CellWidth returns the horizontal pitch between sibling slots.
func (c Config) CellWidth() float64 { return c.NodeWidth + c.GapX }

// CellHeight returns the vertical pitch between levels.
func (c Config) CellHeight() float64 { return c.NodeHeight + c.GapY }

// Option configures the layout engine.
type Option func(*Config)

// WithNodeSize overrides the fixed node box dimensions.
func WithNodeSize(w, h float64) Option {
	return func(c *Config) { c.NodeWidth, c.NodeHeight = w, h }
}

// WithGaps overrides the horizontal and vertical gaps between boxes.
func WithGaps(x, y float64) Option {
	return func(c *Config) { c.GapX, c.GapY = x, y }
}

// WithMargin overrides the outer margin around the diagram.
func WithMargin(m float64) Option {
	return func(c *Config) { c.Margin = m }
}

// WithConfig replaces the whole spacing configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// Position is the pixel offset of a node box's top-left corner.
type Position struct {
	Left float64 `json:"left" bson:"left"`
	Top  float64 `json:"top" bson:"top"`
}

// Connection is a directed parent-to-child edge, rendered as an arrow.
type Connection struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Dimensions is the bounding box needed to contain all positioned nodes.
type Dimensions struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Result holds everything the rendering layer needs: a position per node,
// the parent-to-child connections, and the overall canvas dimensions.
type Result struct {
	Positions   map[string]Position
	Connections []Connection
	Dimensions  Dimensions
	Config      Config
}

// Build computes the layout for the given tree.
//
// Nodes are partitioned into hierarchy levels ([tree.Tree.Levels]); within a
// level, nodes keep their input order and are placed on a fixed horizontal
// pitch. Each level is centered relative to the widest level. Vertical
// position is a fixed pitch per level. The canvas spans the widest level
// horizontally and all levels vertically, padded by the margin on each side.
//
// One connection is emitted per node whose parent reference resolves to a
// node exactly one level above it; nodes with absent, dangling or cyclic
// parent references produce no connection. An empty tree yields an empty
// position map, no connections and zero dimensions - never an error.
//
// Build is a pure function of the input tree and options: no hidden state,
// no randomness. Identical input yields an identical Result, which makes
// the output safe to cache by content hash.
func Build(t *tree.Tree, opts ...Option) Result {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	res := Result{
		Positions:   make(map[string]Position),
		Connections: []Connection{},
		Config:      cfg,
	}
	if t == nil || t.NodeCount() == 0 {
		return res
	}

	levels := t.Levels()

	maxCount := 0
	for _, level := range levels {
		if len(level) > maxCount {
			maxCount = len(level)
		}
	}

	depth := make(map[string]int, t.NodeCount())
	cw, ch := cfg.CellWidth(), cfg.CellHeight()
	for d, level := range levels {
		// Center this level relative to the widest one.
		offset := float64(maxCount-len(level)) * cw / 2
		for rank, n := range level {
			depth[n.ID] = d
			res.Positions[n.ID] = Position{
				Left: cfg.Margin + offset + float64(rank)*cw,
				Top:  cfg.Margin + float64(d)*ch,
			}
		}
	}

	for _, n := range t.Nodes() {
		p, ok := t.Parent(n.ID)
		if !ok {
			continue
		}
		// A resolvable parent that is not one level up means the node was
		// degraded to a root (cyclic reference); skip its connection too.
		if depth[n.ID] != depth[p.ID]+1 {
			continue
		}
		res.Connections = append(res.Connections, Connection{From: p.ID, To: n.ID})
	}

	res.Dimensions = Dimensions{
		Width:  float64(maxCount)*cw + 2*cfg.Margin,
		Height: float64(len(levels))*ch + 2*cfg.Margin,
	}
	return res
}
