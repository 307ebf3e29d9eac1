package gridcube

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/manip"
	"github.com/gekko3d/gridcube/cube/picking"
)

type fakeSource struct {
	sink     EventSink
	attaches int
	detaches int
	fail     error
}

func (f *fakeSource) Attach(sink EventSink) error {
	if f.fail != nil {
		return f.fail
	}
	f.attaches++
	f.sink = sink
	return nil
}

func (f *fakeSource) Detach() {
	f.detaches++
	f.sink = nil
}

type fakeScene struct {
	orientations [][2]float64
	distances    []float64
}

func (f *fakeScene) ApplyOrientation(ax, ay float64) {
	f.orientations = append(f.orientations, [2]float64{ax, ay})
}

func (f *fakeScene) ApplyCameraDistance(d float64) {
	f.distances = append(f.distances, d)
}

var element = core.ElementRect{Left: 40, Top: 20, Width: 800, Height: 600}

func newTestSession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()
	opts = append([]SessionOption{WithElement(element)}, opts...)
	s, err := NewSession(DefaultConfig(), opts...)
	require.NoError(t, err)
	return s
}

// clientPoint returns the client coordinates of a texel on a face.
func clientPoint(t *testing.T, s *Session, face core.Face, uv mgl32.Vec2) (float64, float64) {
	t.Helper()
	world := s.Pose().ObjectToWorld().Mul4x1(core.FacePoint(face, uv).Vec4(1)).Vec3()
	x, y, ok := s.Camera().Project(world, s.Element())
	require.True(t, ok)
	return x + s.Element().Left, y + s.Element().Top
}

func cellCenter(t *testing.T, s *Session, row, col int) (float64, float64) {
	t.Helper()
	tex := s.Faces().Texture(s.Faces().Interactive())
	return clientPoint(t, s, tex.Face(), tex.CellCenterUV(row, col))
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, core.FacePosZ, s.Faces().Interactive())
	assert.Equal(t, 6.0, s.State().Distance)
	assert.Equal(t, manip.AutoRotating, s.Phase())
	assert.False(t, s.Started())

	other := newTestSession(t)
	assert.NotEqual(t, s.ID(), other.ID())

	cfg := DefaultConfig()
	cfg.Camera.Fov = -1
	_, err := NewSession(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStartStop(t *testing.T) {
	scene := &fakeScene{}
	s := newTestSession(t, WithScene(scene))
	src := &fakeSource{}

	require.NoError(t, s.Start(src))
	assert.True(t, s.Started())
	assert.Same(t, s, src.sink)
	assert.Equal(t, [][2]float64{{0, 0}}, scene.orientations)
	assert.Equal(t, []float64{6}, scene.distances)

	assert.ErrorIs(t, s.Start(&fakeSource{}), ErrAlreadyStarted)
	assert.Equal(t, 1, src.attaches)

	s.Stop()
	s.Stop()
	assert.Equal(t, 1, src.detaches)
	assert.Nil(t, src.sink)

	// Restartable.
	require.NoError(t, s.Start(src))
	assert.Equal(t, 2, src.attaches)

	assert.ErrorIs(t, newTestSession(t).Start(nil), ErrNilSource)

	boom := errors.New("boom")
	err := newTestSession(t).Start(&fakeSource{fail: boom})
	assert.ErrorIs(t, err, boom)
}

func TestStopEndsDrag(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start(&fakeSource{}))
	s.PointerDown(100, 100)
	s.Stop()
	assert.False(t, s.State().Dragging)
}

func TestClickSelectsCell(t *testing.T) {
	s := newTestSession(t)
	var got []manip.CellSelected
	s.OnCellSelected(func(e manip.CellSelected) { got = append(got, e) })

	x, y := cellCenter(t, s, 1, 2)
	s.PointerDown(x, y)
	s.PointerUp()
	s.Click(x, y)

	require.Len(t, got, 1)
	assert.Equal(t, manip.CellSelected{Face: core.FacePosZ, Row: 1, Col: 2, Label: 'F'}, got[0])
}

func TestEveryCellSelectsItself(t *testing.T) {
	s := newTestSession(t)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			x, y := cellCenter(t, s, row, col)
			sel, ok := s.Select(x, y)
			require.True(t, ok, "cell (%d,%d)", row, col)
			assert.Equal(t, row, sel.Row)
			assert.Equal(t, col, sel.Col)
			assert.Equal(t, 'A'+rune(row*3+col), sel.Label)
		}
	}
}

func TestBorderAndMissSelectNothing(t *testing.T) {
	s := newTestSession(t)
	calls := 0
	s.OnCellSelected(func(manip.CellSelected) { calls++ })

	x, y := clientPoint(t, s, core.FacePosZ, mgl32.Vec2{1.5 / 256, 1 - 1.5/256})
	s.Click(x, y)
	s.Click(element.Left+2, element.Top+2)
	s.Click(0, 0) // outside the element
	assert.Zero(t, calls)
}

func TestDragSuppressesClick(t *testing.T) {
	scene := &fakeScene{}
	s := newTestSession(t, WithScene(scene))
	calls := 0
	s.OnCellSelected(func(manip.CellSelected) { calls++ })

	ox, oy := element.Left, element.Top
	s.PointerDown(ox+100, oy+100)
	s.PointerMove(ox+150, oy+100)
	s.PointerUp()
	s.Click(ox+150, oy+100)

	assert.Zero(t, calls)
	assert.InDelta(t, 50*0.005, s.State().AngleY, 1e-12)
	require.NotEmpty(t, scene.orientations)
	assert.InDelta(t, 0.25, scene.orientations[len(scene.orientations)-1][1], 1e-12)
}

func TestPressReleaseLeavesOrientation(t *testing.T) {
	scene := &fakeScene{}
	s := newTestSession(t, WithScene(scene))

	s.PointerDown(300, 300)
	s.PointerUp()
	assert.Zero(t, s.State().AngleX)
	assert.Zero(t, s.State().AngleY)
	assert.Empty(t, scene.orientations)

	// Moves without a press do nothing either.
	s.PointerMove(500, 500)
	assert.Zero(t, s.State().AngleY)
}

func TestWheelClamps(t *testing.T) {
	scene := &fakeScene{}
	s := newTestSession(t, WithScene(scene))

	s.Wheel(-10000)
	assert.Equal(t, 3.0, s.State().Distance)
	s.Wheel(-10000)
	assert.Equal(t, 3.0, s.State().Distance)
	assert.Equal(t, []float64{3}, scene.distances)
	assert.Equal(t, float32(3), s.Camera().Distance)
}

func TestUnsubscribe(t *testing.T) {
	s := newTestSession(t)
	var first, second int
	sub := s.OnCellSelected(func(manip.CellSelected) { first++ })
	s.OnCellSelected(func(manip.CellSelected) { second++ })

	x, y := cellCenter(t, s, 0, 0)
	s.Click(x, y)
	sub.Unsubscribe()
	sub.Unsubscribe()
	s.Click(x, y)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	Subscription{}.Unsubscribe()
}

func TestTickAutoRotates(t *testing.T) {
	scene := &fakeScene{}
	s := newTestSession(t, WithScene(scene))

	s.Tick(time.Second)
	assert.InDelta(t, 0.3, s.State().AngleX, 1e-12)
	assert.InDelta(t, 0.3, s.State().AngleY, 1e-12)
	assert.Len(t, scene.orientations, 1)

	s.PointerDown(100, 100)
	s.Tick(time.Second)
	assert.InDelta(t, 0.3, s.State().AngleY, 1e-12)
}

func TestResizeKeepsPickingElementRelative(t *testing.T) {
	s := newTestSession(t)
	s.Resize(core.ElementRect{Left: 500, Top: 300, Width: 400, Height: 400})

	x, y := cellCenter(t, s, 2, 1)
	sel, ok := s.Select(x, y)
	require.True(t, ok)
	assert.Equal(t, 'H', sel.Label)
}

func TestPickAt(t *testing.T) {
	s := newTestSession(t)

	res, err := s.PickAt(element.Left+400, element.Top+300)
	require.NoError(t, err)
	assert.True(t, res.Hit)
	assert.Equal(t, core.FacePosZ, res.Face)

	_, err = s.PickAt(0, 0)
	var oob *picking.OutOfBoundsError
	assert.True(t, errors.As(err, &oob))
}

func TestSessionLogs(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLogger("cube", true, &out, &errOut)
	s := newTestSession(t, WithLogger(logger))

	x, y := cellCenter(t, s, 1, 1)
	s.Click(x, y)
	s.Click(0, 0)

	log := out.String()
	assert.Contains(t, log, "[cube] INFO: session "+s.ID())
	assert.Contains(t, log, "INFO: selected +Z (1,1) E")
	assert.Contains(t, log, "DEBUG: click ignored")
	assert.Empty(t, errOut.String())

	logger.SetDebug(false)
	out.Reset()
	s.Wheel(1)
	assert.False(t, strings.Contains(out.String(), "DEBUG"))
}

func TestClickBeforeResizeWarnsOnce(t *testing.T) {
	var out, errOut bytes.Buffer
	s, err := NewSession(DefaultConfig(), WithLogger(NewLogger("cube", false, &out, &errOut)))
	require.NoError(t, err)

	var got []manip.CellSelected
	s.OnCellSelected(func(sel manip.CellSelected) { got = append(got, sel) })

	s.Click(400, 300)
	s.Click(410, 300)
	_, ok := s.Select(400, 300)
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.Equal(t, 1, strings.Count(errOut.String(), "WARN: click at (400.0, 300.0) dropped"))
	assert.Equal(t, 1, strings.Count(errOut.String(), "WARN"))

	s.Resize(element)
	x, y := cellCenter(t, s, 1, 1)
	sel, ok := s.Select(x, y)
	require.True(t, ok)
	assert.Equal(t, 'E', sel.Label)
	require.Len(t, got, 1)

	s.Resize(core.ElementRect{})
	s.Click(x, y)
	assert.Equal(t, 2, strings.Count(errOut.String(), "WARN"))
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("ignored %d", 1)

	assert.IsType(t, &nopLogger{}, NewConfigLogger(LogConfig{Discard: true}, nil, nil))
	assert.IsType(t, &DefaultLogger{}, NewConfigLogger(LogConfig{Prefix: "x"}, &bytes.Buffer{}, &bytes.Buffer{}))
}
