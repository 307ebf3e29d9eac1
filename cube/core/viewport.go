package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pointer is a position in element-local pixels; Y grows downward.
type Pointer struct {
	X, Y float64
}

func (p Pointer) Sub(o Pointer) Pointer {
	return Pointer{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Pointer) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Finite reports whether both coordinates are real numbers.
func (p Pointer) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// ElementRect is the displayed bounding rectangle of the render surface.
// Left/Top locate it in client coordinates; picking only uses Width/Height.
type ElementRect struct {
	Left, Top     float64
	Width, Height float64
}

func (r ElementRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether an element-local pointer lies on the element,
// edges included.
func (r ElementRect) Contains(p Pointer) bool {
	if r.Empty() {
		return false
	}
	return p.X >= 0 && p.X <= r.Width && p.Y >= 0 && p.Y <= r.Height
}

// Local converts client coordinates into element-local coordinates.
func (r ElementRect) Local(clientX, clientY float64) Pointer {
	return Pointer{X: clientX - r.Left, Y: clientY - r.Top}
}

func (r ElementRect) Aspect() float32 {
	if r.Empty() {
		return 1.0
	}
	return float32(r.Width / r.Height)
}

// NDC maps an element-local pointer to normalized device coordinates.
// Screen Y grows downward while NDC Y grows upward.
func (r ElementRect) NDC(p Pointer) mgl32.Vec2 {
	x := (p.X/r.Width)*2 - 1
	y := -(p.Y/r.Height)*2 + 1
	return mgl32.Vec2{float32(x), float32(y)}
}
