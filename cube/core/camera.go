package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraState is a perspective camera orbiting Target on the +Z axis at
// Distance, looking back at Target with Y up.
type CameraState struct {
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Distance float32
	FovY     float32 // degrees
	Near     float32
	Far      float32
}

func NewCameraState() CameraState {
	return CameraState{
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Distance: 6,
		FovY:     75,
		Near:     0.1,
		Far:      1000,
	}
}

// WithDistance returns a copy of the camera moved to distance d.
func (c CameraState) WithDistance(d float64) CameraState {
	c.Distance = float32(d)
	return c
}

func (c CameraState) Position() mgl32.Vec3 {
	return c.Target.Add(mgl32.Vec3{0, 0, c.Distance})
}

func (c CameraState) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, c.Up)
}

func (c CameraState) GetProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1.0
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func (c CameraState) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.GetProjectionMatrix(aspect).Mul4(c.GetViewMatrix())
}

// Project maps a world position to element-local pixels. ok is false when the
// point is behind the camera or lands outside the element.
func (c CameraState) Project(pos mgl32.Vec3, rect ElementRect) (x, y float64, ok bool) {
	if rect.Empty() {
		return 0, 0, false
	}
	clip := c.ViewProjection(rect.Aspect()).Mul4x1(pos.Vec4(1.0))

	// Points behind or on the near plane
	if clip.W() < c.Near {
		return 0, 0, false
	}

	ndc := clip.Vec3().Mul(1.0 / clip.W())

	x = (float64(ndc.X())*0.5 + 0.5) * rect.Width
	y = (1.0 - (float64(ndc.Y())*0.5 + 0.5)) * rect.Height

	if x < 0 || x > rect.Width || y < 0 || y > rect.Height {
		return x, y, false
	}
	return x, y, true
}
