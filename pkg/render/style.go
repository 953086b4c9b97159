package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/orgchart/pkg/errors"
)

// Style defines the visual appearance for SVG rendering.
// Implementations control how boxes, connectors and labels are drawn.
type Style interface {
	// Name returns the style identifier used in cache keys and CLI flags.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the SVG for a single node box.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderConnector writes the SVG for a reporting-line connector.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderText writes the SVG for a box's name and role labels.
	RenderText(buf *bytes.Buffer, b Box)
}

// Box contains all data needed to render a single node box.
type Box struct {
	ID         string  // Node identifier
	Name       string  // Display name
	Role       string  // Role label (may be empty)
	X, Y, W, H float64 // Position and dimensions
	CX, CY     float64 // Center coordinates (for text)
}

// Connector contains positioning data for one reporting line: a horizontal
// segment of the given length anchored at (X, Y) and rotated by Angle
// degrees about that anchor.
type Connector struct {
	FromID, ToID string  // Connected node IDs
	X, Y         float64 // Anchor point (parent bottom center)
	Length       float64 // Segment length
	Angle        float64 // Rotation in degrees, clockwise from east
}

// ParseStyle resolves a style name to its implementation.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", "simple":
		return Simple{}, nil
	case "outline":
		return Outline{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style: %s", name)
	}
}

// StyleNames lists the available style identifiers.
func StyleNames() []string { return []string{"simple", "outline"} }

// Simple is the default style: filled boxes with solid connectors.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf,
		`  <rect id="box-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="#f5f7fa" stroke="#2b3a4a" stroke-width="1.5"/>`+"\n",
		escapeXML(b.ID), b.X, b.Y, b.W, b.H)
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf,
		`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#2b3a4a" stroke-width="1.5" transform="rotate(%.2f %.1f %.1f)"/>`+"\n",
		c.X, c.Y, c.X+c.Length, c.Y, c.Angle, c.X, c.Y)
}

func (Simple) RenderText(buf *bytes.Buffer, b Box) {
	nameY := b.CY
	if b.Role != "" {
		nameY = b.CY - 7
	}
	fmt.Fprintf(buf,
		`  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="13" font-weight="bold" fill="#1a2633">%s</text>`+"\n",
		b.CX, nameY, escapeXML(truncateLabel(b.Name, b.W, 13)))
	if b.Role != "" {
		fmt.Fprintf(buf,
			`  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="11" fill="#51606f">%s</text>`+"\n",
			b.CX, b.CY+9, escapeXML(truncateLabel(b.Role, b.W, 11)))
	}
}

// Outline is a minimal style: stroke-only boxes with dashed connectors.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(buf *bytes.Buffer) {}

func (Outline) RenderBox(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf,
		`  <rect id="box-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#000" stroke-width="1"/>`+"\n",
		escapeXML(b.ID), b.X, b.Y, b.W, b.H)
}

func (Outline) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf,
		`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000" stroke-width="1" stroke-dasharray="4 3" transform="rotate(%.2f %.1f %.1f)"/>`+"\n",
		c.X, c.Y, c.X+c.Length, c.Y, c.Angle, c.X, c.Y)
}

func (Outline) RenderText(buf *bytes.Buffer, b Box) {
	nameY := b.CY
	if b.Role != "" {
		nameY = b.CY - 7
	}
	fmt.Fprintf(buf,
		`  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="monospace" font-size="12" fill="#000">%s</text>`+"\n",
		b.CX, nameY, escapeXML(truncateLabel(b.Name, b.W, 12)))
	if b.Role != "" {
		fmt.Fprintf(buf,
			`  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="monospace" font-size="10" fill="#444">%s</text>`+"\n",
			b.CX, b.CY+9, escapeXML(truncateLabel(b.Role, b.W, 10)))
	}
}

const labelCharWidth = 0.55

// truncateLabel shortens a label so it fits the box width at the given
// font size, adding ".." when it had to cut.
func truncateLabel(label string, boxWidth, fontSize float64) string {
	maxChars := int((boxWidth - 8) / (fontSize * labelCharWidth))
	if maxChars < 3 {
		maxChars = 3
	}
	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
