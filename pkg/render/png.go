package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/orgchart/pkg/chart"
)

var (
	pngBackground = color.White
	pngBoxFill    = color.RGBA{R: 0xf5, G: 0xf7, B: 0xfa, A: 0xff}
	pngStroke     = color.RGBA{R: 0x2b, G: 0x3a, B: 0x4a, A: 0xff}
	pngNameColor  = color.RGBA{R: 0x1a, G: 0x26, B: 0x33, A: 0xff}
	pngRoleColor  = color.RGBA{R: 0x51, G: 0x60, B: 0x6f, A: 0xff}
)

// RenderPNG rasterizes a layout to PNG bytes. A scale of 2.0 produces a 2x
// resolution image suitable for high-DPI displays; scales below 1 are
// clamped to 1.
func RenderPNG(l chart.Layout, scale float64) ([]byte, error) {
	if scale < 1 {
		scale = 1
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("nothing to render: canvas is %gx%g", l.Width, l.Height)
	}

	dc := gg.NewContext(int(l.Width*scale), int(l.Height*scale))
	dc.Scale(scale, scale)
	dc.SetColor(pngBackground)
	dc.Clear()

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	nameFace := truetype.NewFace(ttf, &truetype.Options{Size: 13, DPI: 72, Hinting: font.HintingFull})
	roleFace := truetype.NewFace(ttf, &truetype.Options{Size: 11, DPI: 72, Hinting: font.HintingFull})

	// Connectors first so boxes sit on top of the line joints.
	for _, c := range buildConnectors(l) {
		dc.Push()
		dc.RotateAbout(gg.Radians(c.Angle), c.X, c.Y)
		dc.SetColor(pngStroke)
		dc.SetLineWidth(1.5)
		dc.DrawLine(c.X, c.Y, c.X+c.Length, c.Y)
		dc.Stroke()
		dc.Pop()
	}

	for _, b := range buildBoxes(l) {
		dc.SetColor(pngBoxFill)
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, 4)
		dc.Fill()
		dc.SetColor(pngStroke)
		dc.SetLineWidth(1.5)
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, 4)
		dc.Stroke()

		nameY := b.CY
		if b.Role != "" {
			nameY = b.CY - 7
		}
		dc.SetFontFace(nameFace)
		dc.SetColor(pngNameColor)
		dc.DrawStringAnchored(truncateLabel(b.Name, b.W, 13), b.CX, nameY, 0.5, 0.35)
		if b.Role != "" {
			dc.SetFontFace(roleFace)
			dc.SetColor(pngRoleColor)
			dc.DrawStringAnchored(truncateLabel(b.Role, b.W, 11), b.CX, b.CY+9, 0.5, 0.35)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
