package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridcube/cube/core"
)

// Hit is the nearest surface point of the cube along a ray.
type Hit struct {
	Face  core.Face
	UV    mgl32.Vec2
	T     float32    // world distance from the ray origin
	Point mgl32.Vec3 // world space
	Local mgl32.Vec3 // unit cube space
}

var faceByAxis = [3][2]core.Face{
	{core.FaceNegX, core.FacePosX},
	{core.FaceNegY, core.FacePosY},
	{core.FaceNegZ, core.FacePosZ},
}

// Intersect finds where ray first enters the cube described by pose (a unit
// cube scaled to its edge length). Rays that start inside the cube or point
// away from it miss. When the entry point lies on an edge or corner the
// lowest axis (X, then Y, then Z) wins, so equal inputs give equal results.
func Intersect(ray core.Ray, pose core.Transform) (Hit, bool) {
	// Transform ray to object space
	w2o := pose.WorldToObject()
	ro := w2o.Mul4x1(ray.Origin.Vec4(1.0)).Vec3()
	rd := w2o.Mul4x1(ray.Direction.Vec4(0.0)).Vec3()
	if rd.Len() < 1e-12 {
		return Hit{}, false
	}

	tEnter := math32.Inf(-1)
	tExit := math32.Inf(1)
	enterAxis, enterSide := -1, 0

	for axis := 0; axis < 3; axis++ {
		o, d := ro[axis], rd[axis]
		if d == 0 {
			if o < -0.5 || o > 0.5 {
				return Hit{}, false
			}
			continue
		}
		near := (-0.5 - o) / d
		far := (0.5 - o) / d
		side := 0 // entering through the negative face
		if near > far {
			near, far = far, near
			side = 1
		}
		if near > tEnter {
			tEnter, enterAxis, enterSide = near, axis, side
		}
		if far < tExit {
			tExit = far
		}
	}

	if enterAxis < 0 || tEnter > tExit || tEnter < 0 {
		return Hit{}, false
	}

	local := ro.Add(rd.Mul(tEnter))
	// Snap onto the face plane to drop rounding error.
	local[enterAxis] = float32(enterSide) - 0.5
	face := faceByAxis[enterAxis][enterSide]

	world := pose.ObjectToWorld().Mul4x1(local.Vec4(1.0)).Vec3()

	return Hit{
		Face:  face,
		UV:    core.FaceUV(face, local),
		T:     world.Sub(ray.Origin).Len(),
		Point: world,
		Local: local,
	}, true
}
