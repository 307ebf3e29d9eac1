package manip

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/picking"
	"github.com/gekko3d/gridcube/cube/texture"
)

var testRect = core.ElementRect{Width: 800, Height: 600}

// stubPicker reports the same cell for every pointer.
type stubPicker struct {
	calls int
	last  core.CameraState
}

func (p *stubPicker) Pick(_ core.Pointer, _ core.ElementRect, cam core.CameraState, _ core.Transform) (picking.PickResult, error) {
	p.calls++
	p.last = cam
	return picking.PickResult{
		Hit:     true,
		Face:    core.FacePosZ,
		Cell:    texture.GridCell{Row: 2, Col: 0, Label: 'G'},
		HasCell: true,
	}, nil
}

func newMachine(t *testing.T, picker Picker) *Machine {
	t.Helper()
	m, err := NewMachine(DefaultConfig(), picker)
	require.NoError(t, err)
	return m
}

func realPicker(t *testing.T) *picking.Picker {
	t.Helper()
	gen, err := texture.New(texture.DefaultOptions())
	require.NoError(t, err)
	faces, err := texture.BuildFaceSet(gen, texture.DefaultFaceColors)
	require.NoError(t, err)
	return picking.NewPicker(faces)
}

func TestNewState(t *testing.T) {
	s := NewState(DefaultConfig())
	assert.Equal(t, 6.0, s.Distance)
	assert.False(t, s.Dragging)
	assert.Zero(t, s.AngleX)
	assert.Zero(t, s.AngleY)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	mutations := map[string]func(*Config){
		"zero min":       func(c *Config) { c.MinDistance = 0 },
		"inverted range": func(c *Config) { c.MaxDistance = 2 },
		"start outside":  func(c *Config) { c.StartDistance = 11 },
		"negative k":     func(c *Config) { c.RotateSensitivity = -1 },
		"negative k2":    func(c *Config) { c.ZoomSensitivity = -1 },
		"threshold":      func(c *Config) { c.DragThreshold = -1 },
		"edge":           func(c *Config) { c.CubeEdge = 0 },
	}
	for name, mutate := range mutations {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}

	_, err := NewMachine(Config{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWheelClampsAndIsIdempotent(t *testing.T) {
	m := newMachine(t, nil)
	s := NewState(m.Config)

	s = m.Wheel(s, -10000)
	assert.Equal(t, 3.0, s.Distance)
	s = m.Wheel(s, -10000)
	assert.Equal(t, 3.0, s.Distance)

	s = m.Wheel(s, 10000)
	assert.Equal(t, 10.0, s.Distance)
	s = m.Wheel(s, 10000)
	assert.Equal(t, 10.0, s.Distance)

	s = m.Wheel(s, -200)
	assert.InDelta(t, 9.0, s.Distance, 1e-12)
}

func TestWheelLeavesRotationAlone(t *testing.T) {
	m := newMachine(t, nil)
	s := NewState(m.Config)
	s = m.PointerDown(s, core.Pointer{X: 10, Y: 10})
	s = m.PointerMove(s, core.Pointer{X: 60, Y: 30})
	before := s

	s = m.Wheel(s, 120)
	assert.Equal(t, before.AngleX, s.AngleX)
	assert.Equal(t, before.AngleY, s.AngleY)
	assert.True(t, s.Dragging)

	// Garbage deltas are dropped.
	s = m.Wheel(s, math.NaN())
	assert.InDelta(t, 6.6, s.Distance, 1e-12)
}

func TestPressReleaseWithoutMotion(t *testing.T) {
	picker := &stubPicker{}
	m := newMachine(t, picker)
	s := NewState(m.Config)

	s = m.PointerDown(s, core.Pointer{X: 100, Y: 100})
	assert.Equal(t, Dragging, m.Phase(s))
	s = m.PointerUp(s)

	assert.Zero(t, s.AngleX)
	assert.Zero(t, s.AngleY)
	assert.False(t, s.DragMoved)
	assert.Equal(t, AutoRotating, m.Phase(s))
}

func TestDragIsAdditive(t *testing.T) {
	m := newMachine(t, nil)
	k := m.Config.RotateSensitivity
	start := core.Pointer{X: 100, Y: 100}
	dx, dy := 73.0, -41.0

	one := m.PointerDown(NewState(m.Config), start)
	one = m.PointerMove(one, core.Pointer{X: start.X + dx, Y: start.Y + dy})
	one = m.PointerUp(one)

	many := m.PointerDown(NewState(m.Config), start)
	for i := 1; i <= 17; i++ {
		f := float64(i) / 17
		many = m.PointerMove(many, core.Pointer{X: start.X + dx*f, Y: start.Y + dy*f})
	}
	many = m.PointerUp(many)

	assert.Equal(t, dx*k, one.AngleY)
	assert.Equal(t, dy*k, one.AngleX)
	assert.InDelta(t, one.AngleY, many.AngleY, 1e-12)
	assert.InDelta(t, one.AngleX, many.AngleX, 1e-12)

	// Back and forth nets out.
	s := m.PointerDown(NewState(m.Config), start)
	s = m.PointerMove(s, core.Pointer{X: 300, Y: 20})
	s = m.PointerMove(s, start)
	assert.Zero(t, s.AngleX)
	assert.Zero(t, s.AngleY)
	assert.True(t, s.DragMoved)
}

func TestDragAccumulatesAcrossGestures(t *testing.T) {
	m := newMachine(t, nil)
	k := m.Config.RotateSensitivity

	s := m.PointerDown(NewState(m.Config), core.Pointer{X: 0, Y: 0})
	s = m.PointerMove(s, core.Pointer{X: 40, Y: 0})
	s = m.PointerUp(s)
	s = m.PointerDown(s, core.Pointer{X: 500, Y: 500})
	s = m.PointerMove(s, core.Pointer{X: 520, Y: 530})
	s = m.PointerUp(s)

	assert.InDelta(t, 60*k, s.AngleY, 1e-12)
	assert.InDelta(t, 30*k, s.AngleX, 1e-12)
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	m := newMachine(t, nil)
	s := m.PointerMove(NewState(m.Config), core.Pointer{X: 400, Y: 400})
	assert.Zero(t, s.AngleY)
	assert.False(t, s.DragMoved)
}

func TestNonFinitePointerIsIgnored(t *testing.T) {
	m := newMachine(t, &stubPicker{})
	k := m.Config.RotateSensitivity
	nan := math.NaN()

	s := m.PointerDown(NewState(m.Config), core.Pointer{X: nan, Y: 0})
	assert.False(t, s.Dragging)

	s = m.PointerDown(s, core.Pointer{X: 100, Y: 100})
	for _, p := range []core.Pointer{
		{X: nan, Y: 100},
		{X: 100, Y: nan},
		{X: math.Inf(1), Y: 100},
		{X: 100, Y: math.Inf(-1)},
	} {
		s = m.PointerMove(s, p)
		assert.False(t, s.DragMoved, "pointer %v", p)
		assert.Zero(t, s.AngleX)
		assert.Zero(t, s.AngleY)
		assert.Equal(t, core.Pointer{X: 100, Y: 100}, s.LastPointer)
	}

	// The gesture carries on normally afterwards.
	s = m.PointerMove(s, core.Pointer{X: 150, Y: 100})
	assert.True(t, s.DragMoved)
	assert.InDelta(t, 50*k, s.AngleY, 1e-12)
	assert.False(t, math.IsNaN(s.AngleX))
}

func TestDeadZone(t *testing.T) {
	picker := &stubPicker{}
	m := newMachine(t, picker)
	k := m.Config.RotateSensitivity

	s := m.PointerDown(NewState(m.Config), core.Pointer{X: 100, Y: 100})
	s = m.PointerMove(s, core.Pointer{X: 103, Y: 100})
	assert.Zero(t, s.AngleY)
	assert.False(t, s.DragMoved)
	s = m.PointerUp(s)

	// Jitter inside the dead zone still clicks.
	assert.NotNil(t, m.Click(s, core.Pointer{X: 103, Y: 100}, testRect, core.NewCameraState()))

	// Leaving the dead zone catches up on the whole displacement.
	s = m.PointerDown(s, core.Pointer{X: 100, Y: 100})
	s = m.PointerMove(s, core.Pointer{X: 103, Y: 100})
	s = m.PointerMove(s, core.Pointer{X: 106, Y: 100})
	assert.True(t, s.DragMoved)
	assert.Equal(t, 6*k, s.AngleY)

	// Once dragging, coming back inside the dead zone still rotates.
	s = m.PointerMove(s, core.Pointer{X: 102, Y: 100})
	assert.Equal(t, 2*k, s.AngleY)
}

func TestZeroThresholdTreatsAnyMotionAsDrag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DragThreshold = 0
	m, err := NewMachine(cfg, &stubPicker{})
	require.NoError(t, err)

	s := m.PointerDown(NewState(cfg), core.Pointer{X: 100, Y: 100})
	s = m.PointerMove(s, core.Pointer{X: 100.5, Y: 100})
	assert.True(t, s.DragMoved)
	s = m.PointerUp(s)
	assert.Nil(t, m.Click(s, core.Pointer{X: 100.5, Y: 100}, testRect, core.NewCameraState()))
}

func TestDragSuppressesClick(t *testing.T) {
	picker := &stubPicker{}
	m := newMachine(t, picker)

	s := m.PointerDown(NewState(m.Config), core.Pointer{X: 100, Y: 100})
	s = m.PointerMove(s, core.Pointer{X: 150, Y: 100})
	s = m.PointerUp(s)

	assert.Nil(t, m.Click(s, core.Pointer{X: 150, Y: 100}, testRect, core.NewCameraState()))
	assert.Zero(t, picker.calls)

	// The next clean press clears the suppression.
	s = m.PointerDown(s, core.Pointer{X: 150, Y: 100})
	s = m.PointerUp(s)
	sel := m.Click(s, core.Pointer{X: 150, Y: 100}, testRect, core.NewCameraState())
	require.NotNil(t, sel)
	assert.Equal(t, CellSelected{Face: core.FacePosZ, Row: 2, Col: 0, Label: 'G'}, *sel)
}

func TestClickWhileHeldIsIgnored(t *testing.T) {
	picker := &stubPicker{}
	m := newMachine(t, picker)

	s := m.PointerDown(NewState(m.Config), core.Pointer{X: 1, Y: 1})
	assert.Nil(t, m.Click(s, core.Pointer{X: 1, Y: 1}, testRect, core.NewCameraState()))
	assert.Zero(t, picker.calls)
}

func TestClickUsesStateDistance(t *testing.T) {
	picker := &stubPicker{}
	m := newMachine(t, picker)

	s := m.Wheel(NewState(m.Config), 400)
	require.NotNil(t, m.Click(s, core.Pointer{X: 1, Y: 1}, testRect, core.NewCameraState()))
	assert.InDelta(t, 8, picker.last.Distance, 1e-6)
}

// centerOf returns the pointer over the center pixel of a cell on the
// white face at rest.
func centerOf(t *testing.T, picker *picking.Picker, m *Machine, s CubeState, row, col int) core.Pointer {
	t.Helper()
	tex := picker.Faces.Texture(core.FacePosZ)
	local := core.FacePoint(core.FacePosZ, tex.CellCenterUV(row, col))
	world := s.Pose(m.Config.CubeEdge).ObjectToWorld().Mul4x1(local.Vec4(1)).Vec3()
	x, y, ok := core.NewCameraState().WithDistance(s.Distance).Project(world, testRect)
	require.True(t, ok)
	return core.Pointer{X: x, Y: y}
}

func TestClickSelectsCell(t *testing.T) {
	picker := realPicker(t)
	m := newMachine(t, picker)
	s := NewState(m.Config)
	cam := core.NewCameraState()

	p := centerOf(t, picker, m, s, 1, 2)
	s = m.PointerDown(s, p)
	s = m.PointerUp(s)
	sel := m.Click(s, p, testRect, cam)
	require.NotNil(t, sel)
	assert.Equal(t, CellSelected{Face: core.FacePosZ, Row: 1, Col: 2, Label: 'F'}, *sel)
	assert.Equal(t, "+Z (1,2) F", sel.String())

	// Zoomed in, the same cell sits elsewhere on screen but still picks.
	s = m.Wheel(s, -400)
	p = centerOf(t, picker, m, s, 1, 2)
	sel = m.Click(s, p, testRect, cam)
	require.NotNil(t, sel)
	assert.Equal(t, 'F', sel.Label)
}

func TestClickOnBorderOrMissSelectsNothing(t *testing.T) {
	picker := realPicker(t)
	m := newMachine(t, picker)
	s := NewState(m.Config)
	cam := core.NewCameraState()

	// Outer corner of cell (0,0).
	world := s.Pose(m.Config.CubeEdge).ObjectToWorld().Mul4x1(core.FacePoint(core.FacePosZ, mgl32.Vec2{1.5 / 256, 1 - 1.5/256}).Vec4(1)).Vec3()
	x, y, ok := cam.Project(world, testRect)
	require.True(t, ok)
	assert.Nil(t, m.Click(s, core.Pointer{X: x, Y: y}, testRect, cam))

	// Empty space and off the element.
	assert.Nil(t, m.Click(s, core.Pointer{X: 3, Y: 3}, testRect, cam))
	assert.Nil(t, m.Click(s, core.Pointer{X: -3, Y: 3}, testRect, cam))
}

func TestAdvance(t *testing.T) {
	m := newMachine(t, nil)
	s := NewState(m.Config)

	s = m.Advance(s, 2*time.Second)
	assert.InDelta(t, 0.6, s.AngleX, 1e-12)
	assert.InDelta(t, 0.6, s.AngleY, 1e-12)
	assert.Equal(t, 6.0, s.Distance)

	held := m.PointerDown(s, core.Pointer{})
	assert.Equal(t, held, m.Advance(held, time.Second))

	assert.Equal(t, s, m.Advance(s, 0))
	assert.Equal(t, s, m.Advance(s, -time.Second))
}

func TestPhaseWithoutAutoRotate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoRotateSpeed = 0
	m, err := NewMachine(cfg, nil)
	require.NoError(t, err)

	s := NewState(cfg)
	assert.Equal(t, Idle, m.Phase(s))
	assert.Equal(t, "idle", m.Phase(s).String())
	assert.Equal(t, s, m.Advance(s, time.Minute))
}

