package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridcube/cube/core"
)

// FaceTexture is the generated raster of one face plus the cells it encodes.
// It is never mutated after creation and may be read from any goroutine.
type FaceTexture struct {
	face        core.Face
	color       FaceColor
	base        color.RGBA
	size        int
	img         *image.RGBA
	cells       [GridSize * GridSize]GridCell
	interactive bool
	selectable  color.RGBA
	ink         color.RGBA
}

func (t *FaceTexture) Face() core.Face       { return t.face }
func (t *FaceTexture) Color() FaceColor      { return t.color }
func (t *FaceTexture) BaseColor() color.RGBA { return t.base }
func (t *FaceTexture) Size() int             { return t.size }

// Interactive reports whether this is the labeled, selectable face.
func (t *FaceTexture) Interactive() bool { return t.interactive }

// Cells returns the nine cells in row-major order.
func (t *FaceTexture) Cells() [GridSize * GridSize]GridCell { return t.cells }

func (t *FaceTexture) Cell(row, col int) (GridCell, bool) {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return GridCell{}, false
	}
	return t.cells[row*GridSize+col], true
}

// Image returns a copy of the raster.
func (t *FaceTexture) Image() *image.RGBA {
	cp := image.NewRGBA(t.img.Rect)
	copy(cp.Pix, t.img.Pix)
	return cp
}

// ColorAt samples raster pixel (x, y), clamped to the texture.
func (t *FaceTexture) ColorAt(x, y int) color.RGBA {
	return t.img.RGBAAt(clampPixel(x, t.size), clampPixel(y, t.size))
}

// PixelAt maps a texture coordinate to a raster pixel. v = 1 is the top row.
func (t *FaceTexture) PixelAt(uv mgl32.Vec2) (x, y int) {
	s := float32(t.size)
	x = int(math32.Floor(uv.X() * s))
	y = int(math32.Floor((1 - uv.Y()) * s))
	return clampPixel(x, t.size), clampPixel(y, t.size)
}

func (t *FaceTexture) ColorAtUV(uv mgl32.Vec2) color.RGBA {
	return t.ColorAt(t.PixelAt(uv))
}

// Selectable reports whether c belongs to a selectable cell interior: the
// interactive face's background or its label ink.
func (t *FaceTexture) Selectable(c color.RGBA) bool {
	return c == t.selectable || c == t.ink
}

// CellCenterUV returns the texture coordinate of the center pixel of a cell.
func (t *FaceTexture) CellCenterUV(row, col int) mgl32.Vec2 {
	r := CellBounds(t.size, row, col)
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	s := float32(t.size)
	return mgl32.Vec2{(float32(cx) + 0.5) / s, 1 - (float32(cy)+0.5)/s}
}

// Resample re-renders the raster at another resolution with nearest
// neighbour filtering. Each cell is scaled into its own CellBounds rectangle
// at the new size, so every pixel stays in the cell it was drawn for. Cell
// metadata and the selection gate carry over.
func (t *FaceTexture) Resample(size int) (*FaceTexture, error) {
	if size < GridSize {
		return nil, fmt.Errorf("%w: resample size %d", ErrInvalidOptions, size)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			from := CellBounds(t.size, row, col)
			to := CellBounds(size, row, col)
			cell := transform.Resize(t.img.SubImage(from), to.Dx(), to.Dy(), transform.NearestNeighbor)
			draw.Draw(dst, to, cell, image.Point{}, draw.Src)
		}
	}
	cp := *t
	cp.img = dst
	cp.size = size
	return &cp, nil
}

func clampPixel(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}
