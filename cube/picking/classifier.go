package picking

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridcube/cube/texture"
)

// Classify resolves a texture coordinate to the grid cell under it. The
// sampled color is checked first: anything that is not a selectable cell
// interior (border stroke, clipped corners, other faces) is no cell. Only
// then is the pixel bucketed into a row and column.
func Classify(tex *texture.FaceTexture, uv mgl32.Vec2) (texture.GridCell, bool) {
	if tex == nil {
		return texture.GridCell{}, false
	}
	x, y := tex.PixelAt(uv)
	if !tex.Selectable(tex.ColorAt(x, y)) {
		return texture.GridCell{}, false
	}
	row, col := texture.CellAt(tex.Size(), x, y)
	return tex.Cell(row, col)
}
