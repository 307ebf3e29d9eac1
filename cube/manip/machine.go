package manip

import (
	"math"
	"time"

	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/picking"
)

// Picker resolves an element-local pointer against the cube.
type Picker interface {
	Pick(p core.Pointer, rect core.ElementRect, cam core.CameraState, pose core.Transform) (picking.PickResult, error)
}

// Machine turns pointer and wheel events into cube state transitions. It
// holds no state of its own; every handler maps a CubeState to the next.
type Machine struct {
	Config Config
	Picker Picker
}

func NewMachine(cfg Config, picker Picker) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Machine{Config: cfg, Picker: picker}, nil
}

func (m *Machine) Phase(s CubeState) Phase {
	if s.Dragging {
		return Dragging
	}
	if m.Config.AutoRotateSpeed != 0 {
		return AutoRotating
	}
	return Idle
}

// PointerDown starts a gesture. Whether it becomes a drag or a click is
// decided by the moves that follow. Non-finite pointers are ignored.
func (m *Machine) PointerDown(s CubeState, p core.Pointer) CubeState {
	if !p.Finite() {
		return s
	}
	s.Dragging = true
	s.DragMoved = false
	s.Press = p
	s.LastPointer = p
	s.BaseAngleX = s.AngleX
	s.BaseAngleY = s.AngleY
	return s
}

// PointerMove rotates the cube while dragging. Angles are always derived
// from the total displacement since the press, so the result does not
// depend on how many moves carried it. Moves inside the dead zone rotate
// nothing; the first move past it catches up on the whole displacement.
func (m *Machine) PointerMove(s CubeState, p core.Pointer) CubeState {
	if !s.Dragging || !p.Finite() {
		return s
	}
	s.LastPointer = p
	d := p.Sub(s.Press)
	if !s.DragMoved && d.Len() <= m.Config.DragThreshold {
		return s
	}
	s.DragMoved = true
	k := m.Config.RotateSensitivity
	s.AngleY = s.BaseAngleY + d.X*k
	s.AngleX = s.BaseAngleX + d.Y*k
	return s
}

func (m *Machine) PointerUp(s CubeState) CubeState {
	s.Dragging = false
	return s
}

// Wheel zooms in any phase. Rotation is left alone.
func (m *Machine) Wheel(s CubeState, deltaY float64) CubeState {
	if math.IsNaN(deltaY) || math.IsInf(deltaY, 0) {
		return s
	}
	s.Distance = m.Config.ClampDistance(s.Distance + deltaY*m.Config.ZoomSensitivity)
	return s
}

// Click selects the cell under p. Nothing is selected while a press is
// held or when the last press turned into a drag. Out-of-bounds pointers,
// misses and border pixels all yield nil.
func (m *Machine) Click(s CubeState, p core.Pointer, rect core.ElementRect, cam core.CameraState) *CellSelected {
	if s.Dragging || s.DragMoved || m.Picker == nil {
		return nil
	}
	res, err := m.Picker.Pick(p, rect, cam.WithDistance(s.Distance), s.Pose(m.Config.CubeEdge))
	if err != nil || !res.HasCell {
		return nil
	}
	return &CellSelected{Face: res.Face, Row: res.Cell.Row, Col: res.Cell.Col, Label: res.Cell.Label}
}

// Advance applies auto rotation for dt. It is a pure function of its inputs
// and does nothing while dragging.
func (m *Machine) Advance(s CubeState, dt time.Duration) CubeState {
	if s.Dragging || dt <= 0 {
		return s
	}
	step := m.Config.AutoRotateSpeed * dt.Seconds()
	s.AngleX += step
	s.AngleY += step
	return s
}
