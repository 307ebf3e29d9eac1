package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Face indexes the six sides of the cube in box-geometry material order.
type Face uint8

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

const FaceCount = 6

var faceNames = [FaceCount]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (f Face) String() string {
	if f.Valid() {
		return faceNames[f]
	}
	return fmt.Sprintf("Face(%d)", uint8(f))
}

func (f Face) Valid() bool {
	return f < FaceCount
}

// Normal returns the outward unit normal of the face in object space.
func (f Face) Normal() mgl32.Vec3 {
	switch f {
	case FacePosX:
		return mgl32.Vec3{1, 0, 0}
	case FaceNegX:
		return mgl32.Vec3{-1, 0, 0}
	case FacePosY:
		return mgl32.Vec3{0, 1, 0}
	case FaceNegY:
		return mgl32.Vec3{0, -1, 0}
	case FacePosZ:
		return mgl32.Vec3{0, 0, 1}
	case FaceNegZ:
		return mgl32.Vec3{0, 0, -1}
	}
	return mgl32.Vec3{}
}

// FaceUV maps a point on the surface of the unit cube ([-0.5, 0.5]^3, object
// space) to the texture coordinate of the given face. Seen from outside the
// cube, u grows to the right and v grows upward; v = 1 is the top raster row.
func FaceUV(f Face, p mgl32.Vec3) mgl32.Vec2 {
	var u, v float32
	switch f {
	case FacePosX:
		u, v = 0.5-p.Z(), p.Y()+0.5
	case FaceNegX:
		u, v = p.Z()+0.5, p.Y()+0.5
	case FacePosY:
		u, v = p.X()+0.5, 0.5-p.Z()
	case FaceNegY:
		u, v = p.X()+0.5, p.Z()+0.5
	case FacePosZ:
		u, v = p.X()+0.5, p.Y()+0.5
	case FaceNegZ:
		u, v = 0.5-p.X(), p.Y()+0.5
	}
	return mgl32.Vec2{mgl32.Clamp(u, 0, 1), mgl32.Clamp(v, 0, 1)}
}

// FacePoint is the inverse of FaceUV: it returns the object-space point on the
// unit cube surface addressed by uv on face f.
func FacePoint(f Face, uv mgl32.Vec2) mgl32.Vec3 {
	u, v := uv.X(), uv.Y()
	switch f {
	case FacePosX:
		return mgl32.Vec3{0.5, v - 0.5, 0.5 - u}
	case FaceNegX:
		return mgl32.Vec3{-0.5, v - 0.5, u - 0.5}
	case FacePosY:
		return mgl32.Vec3{u - 0.5, 0.5, 0.5 - v}
	case FaceNegY:
		return mgl32.Vec3{u - 0.5, -0.5, v - 0.5}
	case FacePosZ:
		return mgl32.Vec3{u - 0.5, v - 0.5, 0.5}
	case FaceNegZ:
		return mgl32.Vec3{0.5 - u, v - 0.5, -0.5}
	}
	return mgl32.Vec3{}
}
