package texture

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LabelRenderer draws one label glyph centered on a pixel. Implementations
// must only ever write ink: a pixel is either left alone or set to ink, so
// the classifier never sees blended colors.
type LabelRenderer interface {
	DrawLabel(dst *image.RGBA, clip image.Rectangle, label rune, center image.Point, ink color.RGBA)
}

// FontLabels rasterizes labels from an OpenType face with a hard coverage
// threshold. Not safe for concurrent use.
type FontLabels struct {
	Face font.Face
}

func NewFontLabels(fontBytes []byte, size float64) (*FontLabels, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return &FontLabels{Face: face}, nil
}

// DefaultLabels renders labels in Go Bold.
func DefaultLabels(size float64) (*FontLabels, error) {
	return NewFontLabels(gobold.TTF, size)
}

func (fl *FontLabels) DrawLabel(dst *image.RGBA, clip image.Rectangle, label rune, center image.Point, ink color.RGBA) {
	if fl == nil || fl.Face == nil {
		return
	}

	// Center the ink bounds, not the advance box.
	bounds, _ := font.BoundString(fl.Face, string(label))
	mid := fixed.Point26_6{
		X: (bounds.Min.X + bounds.Max.X) / 2,
		Y: (bounds.Min.Y + bounds.Max.Y) / 2,
	}
	dot := fixed.P(center.X, center.Y).Sub(mid)

	dr, mask, maskp, _, ok := fl.Face.Glyph(dot, label)
	if !ok {
		return
	}

	area := dr.Intersect(clip).Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				dst.SetRGBA(x, y, ink)
			}
		}
	}
}
