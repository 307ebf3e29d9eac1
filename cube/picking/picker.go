package picking

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/texture"
)

type PickResult struct {
	Hit     bool
	Face    core.Face
	UV      mgl32.Vec2
	T       float32
	Cell    texture.GridCell
	HasCell bool
}

// Picker chains projector, resolver and classifier over one face set.
type Picker struct {
	Faces *texture.FaceSet
}

func NewPicker(faces *texture.FaceSet) *Picker {
	return &Picker{Faces: faces}
}

// Pick resolves an element-local pointer. A miss is a zero PickResult with a
// nil error; only an out-of-bounds pointer (or a broken camera) is an error.
func (p *Picker) Pick(ptr core.Pointer, rect core.ElementRect, cam core.CameraState, pose core.Transform) (PickResult, error) {
	ray, err := ScreenToRay(ptr, rect, cam)
	if err != nil {
		return PickResult{}, err
	}
	return p.PickRay(ray, pose), nil
}

func (p *Picker) PickRay(ray core.Ray, pose core.Transform) PickResult {
	hit, ok := Intersect(ray, pose)
	if !ok {
		return PickResult{}
	}
	res := PickResult{Hit: true, Face: hit.Face, UV: hit.UV, T: hit.T}
	if p.Faces != nil {
		res.Cell, res.HasCell = Classify(p.Faces.Texture(hit.Face), hit.UV)
	}
	return res
}

// Shade returns the texel seen along ray, for software renderers.
func (p *Picker) Shade(ray core.Ray, pose core.Transform) (color.RGBA, core.Face, bool) {
	hit, ok := Intersect(ray, pose)
	if !ok || p.Faces == nil {
		return color.RGBA{}, 0, false
	}
	tex := p.Faces.Texture(hit.Face)
	if tex == nil {
		return color.RGBA{}, 0, false
	}
	return tex.ColorAtUV(hit.UV), hit.Face, true
}
