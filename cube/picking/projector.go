package picking

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridcube/cube/core"
)

// ErrDegenerateCamera is returned when the camera basis cannot be built,
// e.g. when Up is parallel to the view direction.
var ErrDegenerateCamera = errors.New("picking: degenerate camera basis")

// OutOfBoundsError reports a pointer outside the element's rectangle.
type OutOfBoundsError struct {
	Pointer core.Pointer
	Rect    core.ElementRect
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("picking: pointer (%.1f, %.1f) outside %gx%g element",
		e.Pointer.X, e.Pointer.Y, e.Rect.Width, e.Rect.Height)
}

// ScreenToRay turns an element-local pointer into a world-space ray from the
// camera eye. Coordinates are normalized against the element's own
// rectangle, so an offset or non-fullscreen surface picks correctly.
func ScreenToRay(p core.Pointer, rect core.ElementRect, cam core.CameraState) (core.Ray, error) {
	if !rect.Contains(p) {
		return core.Ray{}, &OutOfBoundsError{Pointer: p, Rect: rect}
	}

	ndc := rect.NDC(p)

	eye := cam.Position()
	forward := cam.Target.Sub(eye)
	if forward.Len() == 0 {
		return core.Ray{}, ErrDegenerateCamera
	}
	forward = forward.Normalize()
	right := forward.Cross(cam.Up)
	if right.Len() < 1e-6 {
		return core.Ray{}, ErrDegenerateCamera
	}
	right = right.Normalize()
	up := right.Cross(forward)

	aspect := rect.Aspect()
	tanHalfFov := math32.Tan(mgl32.DegToRad(cam.FovY) / 2.0)

	dir := forward.
		Add(right.Mul(ndc.X() * aspect * tanHalfFov)).
		Add(up.Mul(ndc.Y() * tanHalfFov)).
		Normalize()

	return core.Ray{Origin: eye, Direction: dir}, nil
}
