package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gekko3d/gridcube/cube/core"
)

// Options configures the grid texture generator. Zero values are not
// defaulted; start from DefaultOptions.
type Options struct {
	Size         int // square raster side in pixels
	CornerRadius int // outer corner radius of each cell, ignored for CornerSquare
	BorderWidth  int // stroke width inside each cell edge
	LabelSize    float64
	LabelScheme  LabelScheme
	CornerStyle  CornerStyle
	Palette      Palette
	Border       color.RGBA
	Ink          color.RGBA
	Interactive  FaceColor     // only faces of this color are labeled and selectable
	Labels       LabelRenderer // nil selects Go Bold at LabelSize
}

func DefaultOptions() Options {
	return Options{
		Size:         256,
		CornerRadius: 10,
		BorderWidth:  2,
		LabelSize:    40,
		LabelScheme:  LabelAlphabetic,
		CornerStyle:  CornerRounded,
		Palette:      DefaultPalette,
		Border:       DefaultBorder,
		Ink:          DefaultInk,
		Interactive:  White,
	}
}

func (o Options) Validate() error {
	if o.Size < GridSize {
		return fmt.Errorf("%w: size %d is smaller than the %dx%d grid", ErrInvalidOptions, o.Size, GridSize, GridSize)
	}
	step := o.Size / GridSize
	if o.BorderWidth < 0 || 2*o.BorderWidth >= step {
		return fmt.Errorf("%w: border width %d leaves no interior in a %dpx cell", ErrInvalidOptions, o.BorderWidth, step)
	}
	if o.CornerStyle == CornerRounded && (o.CornerRadius < 0 || 2*o.CornerRadius > step) {
		return fmt.Errorf("%w: corner radius %d does not fit a %dpx cell", ErrInvalidOptions, o.CornerRadius, step)
	}
	if o.LabelScheme != LabelAlphabetic && o.LabelScheme != LabelNumeric {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.LabelScheme)
	}
	if o.CornerStyle != CornerRounded && o.CornerStyle != CornerSquare {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.CornerStyle)
	}
	if !o.Interactive.Valid() {
		return fmt.Errorf("%w: interactive color %s", ErrInvalidOptions, o.Interactive)
	}
	if o.Labels == nil && o.LabelSize <= 0 {
		return fmt.Errorf("%w: label size %g", ErrInvalidOptions, o.LabelSize)
	}

	selectable := o.Palette.RGBA(o.Interactive)
	if selectable == o.Border || selectable == o.Ink || o.Ink == o.Border {
		return fmt.Errorf("%w: selectable %s, ink %s and border %s must differ",
			ErrInvalidOptions, Hex(selectable), Hex(o.Ink), Hex(o.Border))
	}
	for c := FaceColor(0); c < ColorCount; c++ {
		if c == o.Interactive {
			continue
		}
		if rgba := o.Palette.RGBA(c); rgba == selectable || rgba == o.Ink {
			return fmt.Errorf("%w: %s (%s) collides with the selectable colors", ErrInvalidOptions, c, Hex(rgba))
		}
	}
	return nil
}

// Generator produces grid face textures. It is deterministic: the same
// color, face and options always yield the same pixels.
type Generator struct {
	opts   Options
	labels LabelRenderer
}

func New(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	labels := opts.Labels
	if labels == nil {
		fl, err := DefaultLabels(opts.LabelSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
		labels = fl
	}
	return &Generator{opts: opts, labels: labels}, nil
}

// MustNew is New for options known to be valid; bad options are a
// programming error.
func MustNew(opts Options) *Generator {
	g, err := New(opts)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Generator) Options() Options {
	return g.opts
}

// Generate renders the texture for one face.
func (g *Generator) Generate(c FaceColor, face core.Face) *FaceTexture {
	o := g.opts
	size := o.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Everything outside a cell interior, rounded corners included, is stroke.
	draw.Draw(img, img.Bounds(), image.NewUniform(o.Border), image.Point{}, draw.Src)

	base := o.Palette.RGBA(c)
	radius := 0
	if o.CornerStyle == CornerRounded {
		radius = o.CornerRadius - o.BorderWidth
		if radius < 0 {
			radius = 0
		}
	}
	labeled := c == o.Interactive

	tex := &FaceTexture{
		face:        face,
		color:       c,
		base:        base,
		size:        size,
		img:         img,
		interactive: labeled,
		selectable:  o.Palette.RGBA(o.Interactive),
		ink:         o.Ink,
	}

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := GridCell{
				Row:             row,
				Col:             col,
				Label:           o.LabelScheme.Label(row, col),
				BackgroundColor: c,
			}
			tex.cells[row*GridSize+col] = cell

			interior := CellBounds(size, row, col).Inset(o.BorderWidth)
			fillRoundedRect(img, interior, float64(radius), base)

			if labeled {
				center := image.Pt((interior.Min.X+interior.Max.X)/2, (interior.Min.Y+interior.Max.Y)/2)
				g.labels.DrawLabel(img, interior, cell.Label, center, o.Ink)
			}
		}
	}
	return tex
}

// CellBounds returns the raster rectangle of cell (row, col). Boundaries use
// floor division; the last row and column absorb the remainder when size is
// not a multiple of three.
func CellBounds(size, row, col int) image.Rectangle {
	step := size / GridSize
	x0, y0 := col*step, row*step
	x1, y1 := x0+step, y0+step
	if col == GridSize-1 {
		x1 = size
	}
	if row == GridSize-1 {
		y1 = size
	}
	return image.Rect(x0, y0, x1, y1)
}

// CellAt buckets a raster pixel into its grid cell, clamping to [0, 2].
func CellAt(size, x, y int) (row, col int) {
	step := size / GridSize
	if step <= 0 {
		return 0, 0
	}
	return clampIndex(y / step), clampIndex(x / step)
}

func clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > GridSize-1 {
		return GridSize - 1
	}
	return i
}

// fillRoundedRect sets every pixel whose center lies inside the rounded
// rectangle r with corner radius radius. No coverage blending.
func fillRoundedRect(img *image.RGBA, r image.Rectangle, radius float64, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if insideRounded(float64(x)+0.5, float64(y)+0.5, r, radius) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func insideRounded(px, py float64, r image.Rectangle, radius float64) bool {
	if radius <= 0 {
		return true
	}
	cx := clampF(px, float64(r.Min.X)+radius, float64(r.Max.X)-radius)
	cy := clampF(py, float64(r.Min.Y)+radius, float64(r.Max.Y)-radius)
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= radius*radius
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
