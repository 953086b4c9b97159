package render

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/orgchart/pkg/chart"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style          Style
	showConnectors bool
}

// WithStyle selects the visual style. Defaults to [Simple].
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithoutConnectors suppresses reporting-line connectors, drawing boxes only.
func WithoutConnectors() SVGOption { return func(r *svgRenderer) { r.showConnectors = false } }

// RenderSVG renders a layout to SVG. Boxes are drawn at the exact positions
// the layout engine computed; connectors are horizontal segments rotated by
// the connector angle about the parent's bottom-center anchor. Connections
// with a missing endpoint position are skipped.
func RenderSVG(l chart.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: Simple{}, showConnectors: true}
	for _, opt := range opts {
		opt(&r)
	}

	boxes := buildBoxes(l)
	slices.SortFunc(boxes, func(a, b Box) int {
		return cmp.Compare(a.ID, b.ID)
	})

	var connectors []Connector
	if r.showConnectors {
		connectors = buildConnectors(l)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.style.RenderDefs(&buf)
	for _, c := range connectors {
		r.style.RenderConnector(&buf, c)
	}
	for _, b := range boxes {
		r.style.RenderBox(&buf, b)
	}
	for _, b := range boxes {
		r.style.RenderText(&buf, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBoxes(l chart.Layout) []Box {
	boxes := make([]Box, 0, len(l.Positions))
	for id, pos := range l.Positions {
		center := l.Spacing.Center(pos)
		b := Box{
			ID: id,
			X:  pos.Left, Y: pos.Top,
			W: l.Spacing.NodeWidth, H: l.Spacing.NodeHeight,
			CX: center.Left, CY: center.Top,
		}
		if label, ok := l.Labels[id]; ok {
			b.Name = label.Name
			b.Role = label.Role
		}
		if b.Name == "" {
			b.Name = id
		}
		boxes = append(boxes, b)
	}
	return boxes
}

func buildConnectors(l chart.Layout) []Connector {
	connectors := make([]Connector, 0, len(l.Connections))
	for _, conn := range l.Connections {
		arrow, ok := l.Arrow(conn)
		if !ok {
			continue
		}
		anchor := l.Spacing.BottomCenter(l.Positions[conn.From])
		connectors = append(connectors, Connector{
			FromID: conn.From, ToID: conn.To,
			X: anchor.Left, Y: anchor.Top,
			Length: arrow.Length, Angle: arrow.Angle,
		})
	}
	return connectors
}
