package manip

import (
	"fmt"

	"github.com/gekko3d/gridcube/cube/core"
)

type Phase uint8

const (
	Idle Phase = iota
	Dragging
	AutoRotating // idle with a running auto rotation
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case AutoRotating:
		return "auto-rotating"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// CubeState is everything the machine knows about one interactive cube. It
// is a plain value: handlers take one and return the next.
type CubeState struct {
	AngleX, AngleY float64
	Distance       float64

	Dragging  bool
	DragMoved bool // set once the current (or last) press wandered past the threshold

	Press       core.Pointer
	LastPointer core.Pointer
	BaseAngleX  float64 // angles at press time
	BaseAngleY  float64
}

// NewState returns the resting state at the configured start distance.
func NewState(cfg Config) CubeState {
	return CubeState{Distance: cfg.ClampDistance(cfg.StartDistance)}
}

// Pose is the cube transform for the current angles.
func (s CubeState) Pose(edge float32) core.Transform {
	return core.CubePose(s.AngleX, s.AngleY, edge)
}

func (s CubeState) String() string {
	return fmt.Sprintf("angles=(%.4f, %.4f) distance=%.3f dragging=%t moved=%t",
		s.AngleX, s.AngleY, s.Distance, s.Dragging, s.DragMoved)
}
