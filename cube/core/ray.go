package core

import "github.com/go-gl/mathgl/mgl32"

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // normalized
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
