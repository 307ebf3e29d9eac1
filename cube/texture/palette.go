package texture

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// FaceColor names a slot of the fixed six-entry face palette.
type FaceColor uint8

const (
	Yellow FaceColor = iota
	Blue
	Green
	Red
	White
	Purple
)

const ColorCount = 6

var colorNames = [ColorCount]string{"yellow", "blue", "green", "red", "white", "purple"}

func (c FaceColor) String() string {
	if c.Valid() {
		return colorNames[c]
	}
	return fmt.Sprintf("FaceColor(%d)", uint8(c))
}

func (c FaceColor) Valid() bool {
	return c < ColorCount
}

func ParseFaceColor(name string) (FaceColor, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range colorNames {
		if cn == n {
			return FaceColor(i), nil
		}
	}
	return 0, fmt.Errorf("%w: face color %q", ErrUnknownName, name)
}

// Palette maps each FaceColor slot to the RGBA written into the raster.
type Palette [ColorCount]color.RGBA

// DefaultPalette uses the CSS named colors of the same names.
var DefaultPalette = Palette{
	Yellow: {R: 255, G: 255, B: 0, A: 255},
	Blue:   {R: 0, G: 0, B: 255, A: 255},
	Green:  {R: 0, G: 128, B: 0, A: 255},
	Red:    {R: 255, G: 0, B: 0, A: 255},
	White:  {R: 255, G: 255, B: 255, A: 255},
	Purple: {R: 128, G: 0, B: 128, A: 255},
}

var (
	DefaultBorder = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	// DefaultInk differs from DefaultBorder so label pixels stay decodable.
	DefaultInk = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 255}
)

func (p Palette) RGBA(c FaceColor) color.RGBA {
	if !c.Valid() {
		return color.RGBA{}
	}
	return p[c]
}

// With returns a copy of the palette with slot c replaced.
func (p Palette) With(c FaceColor, rgba color.RGBA) Palette {
	if c.Valid() {
		p[c] = rgba
	}
	return p
}

// ParseHex parses "#rrggbb" (or "#rgb") into an opaque RGBA.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("texture: bad hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats an RGBA as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
