package texture

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gekko3d/gridcube/cube/core"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// DefaultFaceColors assigns the palette to the faces in box material order;
// the white +Z face points at the default camera.
var DefaultFaceColors = [core.FaceCount]FaceColor{Yellow, Blue, Green, Red, White, Purple}

// FaceSet binds one generated texture to each face of the cube. Built once,
// read-only afterwards.
type FaceSet struct {
	textures    [core.FaceCount]*FaceTexture
	ids         [core.FaceCount]AssetId
	interactive core.Face
}

// BuildFaceSet generates all six textures. Exactly one face must carry the
// generator's interactive color; other colors may repeat.
func BuildFaceSet(gen *Generator, colors [core.FaceCount]FaceColor) (*FaceSet, error) {
	if gen == nil {
		return nil, fmt.Errorf("%w: nil generator", ErrFaceSet)
	}
	want := gen.opts.Interactive
	interactive := -1
	for i, c := range colors {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: face %s has %s", ErrFaceSet, core.Face(i), c)
		}
		if c != want {
			continue
		}
		if interactive >= 0 {
			return nil, fmt.Errorf("%w: faces %s and %s are both %s", ErrFaceSet, core.Face(interactive), core.Face(i), want)
		}
		interactive = i
	}
	if interactive < 0 {
		return nil, fmt.Errorf("%w: no face is %s", ErrFaceSet, want)
	}

	set := &FaceSet{interactive: core.Face(interactive)}
	for i, c := range colors {
		set.textures[i] = gen.Generate(c, core.Face(i))
		set.ids[i] = makeAssetId()
	}
	return set, nil
}

func MustBuildFaceSet(gen *Generator, colors [core.FaceCount]FaceColor) *FaceSet {
	set, err := BuildFaceSet(gen, colors)
	if err != nil {
		panic(err)
	}
	return set
}

// Texture returns the texture bound to face f, or nil for an invalid face.
func (s *FaceSet) Texture(f core.Face) *FaceTexture {
	if !f.Valid() {
		return nil
	}
	return s.textures[f]
}

func (s *FaceSet) AssetId(f core.Face) AssetId {
	if !f.Valid() {
		return ""
	}
	return s.ids[f]
}

func (s *FaceSet) Lookup(id AssetId) (*FaceTexture, bool) {
	for i, tid := range s.ids {
		if tid == id {
			return s.textures[i], true
		}
	}
	return nil, false
}

func (s *FaceSet) Interactive() core.Face {
	return s.interactive
}

// WritePNGs encodes every face into dir as face<N>_<color>.png and returns
// the written paths in face order.
func (s *FaceSet) WritePNGs(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, core.FaceCount)
	for i, tex := range s.textures {
		path := filepath.Join(dir, fmt.Sprintf("face%d_%s.png", i, tex.Color()))
		if err := tex.WritePNG(path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WritePNG encodes the raster to path.
func (t *FaceTexture) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, t.img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
