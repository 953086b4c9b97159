package render

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orgchart/pkg/chart"
)

// ToDOT converts a layout to Graphviz DOT format for node-link
// visualization. Graphviz applies its own top-down layout; only the
// hierarchy and labels carry over. The resulting DOT string can be
// rendered with [RenderDOT].
func ToDOT(l chart.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph orgchart {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, b := range sortedBoxes(l) {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", b.ID, dotLabel(b))
	}

	buf.WriteString("\n")
	for _, conn := range l.Connections {
		if _, ok := l.Arrow(conn); !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", conn.From, conn.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func sortedBoxes(l chart.Layout) []Box {
	boxes := buildBoxes(l)
	slices.SortFunc(boxes, func(a, b Box) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return boxes
}

func dotLabel(b Box) string {
	if b.Role == "" {
		return b.Name
	}
	return b.Name + "\n" + b.Role
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz <svg> tag so the viewBox starts at
// the origin and width/height match it, which keeps browser scaling sane.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
