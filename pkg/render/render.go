package render

import (
	"context"
	"strings"

	"github.com/matzehuels/orgchart/pkg/chart"
	"github.com/matzehuels/orgchart/pkg/errors"
)

// Format identifies an output format.
type Format string

// Supported output formats.
const (
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
	FormatDOT      Format = "dot"
	FormatNodeLink Format = "nodelink"
	FormatJSON     Format = "json"
)

// Formats lists all supported output formats.
func Formats() []Format {
	return []Format{FormatSVG, FormatPNG, FormatDOT, FormatNodeLink, FormatJSON}
}

// ParseFormat resolves a format name, accepting any case.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if Format(strings.ToLower(name)) == f {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", name)
}

// ContentType returns the MIME type the API serves this format as.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG, FormatNodeLink:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatNodeLink {
		return "svg"
	}
	return string(f)
}

// Render produces the bytes for a layout in the given format and style.
// The style only affects SVG output. The "dot" format returns the DOT
// source; "nodelink" runs it through the Graphviz engine, which applies
// its own layout.
func Render(ctx context.Context, l chart.Layout, format Format, style Style) ([]byte, error) {
	if style == nil {
		style = Simple{}
	}
	switch format {
	case FormatSVG:
		return RenderSVG(l, WithStyle(style)), nil
	case FormatPNG:
		return RenderPNG(l, 2.0)
	case FormatDOT:
		return []byte(ToDOT(l)), nil
	case FormatNodeLink:
		return RenderDOT(ctx, ToDOT(l))
	case FormatJSON:
		return chart.MarshalLayout(l)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}
