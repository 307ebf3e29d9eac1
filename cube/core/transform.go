package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// CubePose is the transform of a cube with the given edge length centered at
// the origin and rotated by the accumulated drag angles.
func CubePose(angleX, angleY float64, edge float32) Transform {
	t := NewTransform()
	t.Rotation = EulerXY(angleX, angleY)
	t.Scale = mgl32.Vec3{edge, edge, edge}
	return t
}

// EulerXY composes a rotation about X followed by a rotation about Y
// (intrinsic XYZ order with no Z component). The two angles are accumulated
// independently by the caller; no gimbal correction is applied.
func EulerXY(angleX, angleY float64) mgl32.Quat {
	qx := mgl32.QuatRotate(float32(angleX), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(float32(angleY), mgl32.Vec3{0, 1, 0})
	return qx.Mul(qy).Normalize()
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

func (t Transform) WorldToObject() mgl32.Mat4 {
	// inv(M) = inv(S) * inv(R) * inv(T)
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())

	// Conjugate is the inverse for a unit quaternion
	invRotate := t.Rotation.Conjugate().Mat4()

	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}
