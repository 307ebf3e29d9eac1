package gridcube

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/manip"
	"github.com/gekko3d/gridcube/cube/picking"
	"github.com/gekko3d/gridcube/cube/texture"
)

var (
	ErrAlreadyStarted = errors.New("gridcube: session already started")
	ErrNilSource      = errors.New("gridcube: nil event source")
)

// EventSink receives raw input. Pointer positions are client coordinates;
// the session converts them against the element rectangle.
type EventSink interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp()
	Wheel(deltaY float64)
	Click(x, y float64)
	Resize(rect core.ElementRect)
}

// EventSource delivers input to a sink between Attach and Detach.
type EventSource interface {
	Attach(sink EventSink) error
	Detach()
}

// Scene is told about every orientation or zoom change so it can update
// whatever it renders.
type Scene interface {
	ApplyOrientation(angleX, angleY float64)
	ApplyCameraDistance(distance float64)
}

type SessionOption func(*Session)

func WithLogger(l Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithScene(scene Scene) SessionOption {
	return func(s *Session) { s.scene = scene }
}

func WithElement(rect core.ElementRect) SessionOption {
	return func(s *Session) { s.rect = rect }
}

// WithLabels replaces the font used for cell labels.
func WithLabels(labels texture.LabelRenderer) SessionOption {
	return func(s *Session) { s.labels = labels }
}

type selectionHandler struct {
	id int
	fn func(manip.CellSelected)
}

// Session owns one interactive cube: its textures, its camera and the
// manipulation state. Events must be delivered from a single goroutine.
type Session struct {
	id      string
	log     Logger
	scene   Scene
	labels  texture.LabelRenderer
	faces   *texture.FaceSet
	picker  *picking.Picker
	machine *manip.Machine
	camera  core.CameraState
	rect    core.ElementRect
	state   manip.CubeState
	source  EventSource

	handlers    []selectionHandler
	nextHandler int

	warnedNoElement bool
}

// NewSession builds the textures and picking pipeline described by cfg.
// Without WithElement the element rectangle is empty until the first
// Resize, and clicks are dropped until then.
func NewSession(cfg *Config, opts ...SessionOption) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Session{
		id:  uuid.NewString(),
		log: NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	genOpts, err := cfg.GeneratorOptions()
	if err != nil {
		return nil, err
	}
	genOpts.Labels = s.labels
	gen, err := texture.New(genOpts)
	if err != nil {
		return nil, err
	}
	colors, err := cfg.FaceColors()
	if err != nil {
		return nil, err
	}
	faces, err := texture.BuildFaceSet(gen, colors)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	s.faces = faces
	s.picker = picking.NewPicker(faces)
	s.machine, err = manip.NewMachine(cfg.ManipConfig(), s.picker)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.camera = cfg.CameraState()
	s.state = manip.NewState(s.machine.Config)

	s.log.Infof("session %s: %dpx textures, interactive face %s", s.id, genOpts.Size, faces.Interactive())
	return s, nil
}

func (s *Session) ID() string                { return s.id }
func (s *Session) State() manip.CubeState    { return s.state }
func (s *Session) Faces() *texture.FaceSet   { return s.faces }
func (s *Session) Element() core.ElementRect { return s.rect }
func (s *Session) Machine() *manip.Machine   { return s.machine }
func (s *Session) Phase() manip.Phase        { return s.machine.Phase(s.state) }
func (s *Session) Pose() core.Transform      { return s.state.Pose(s.machine.Config.CubeEdge) }
func (s *Session) Camera() core.CameraState  { return s.camera.WithDistance(s.state.Distance) }
func (s *Session) Picker() *picking.Picker   { return s.picker }
func (s *Session) Started() bool             { return s.source != nil }

// Start attaches the session to src. A session listens to one source at a
// time.
func (s *Session) Start(src EventSource) error {
	if src == nil {
		return ErrNilSource
	}
	if s.source != nil {
		return ErrAlreadyStarted
	}
	if err := src.Attach(s); err != nil {
		return fmt.Errorf("attach event source: %w", err)
	}
	s.source = src
	s.log.Infof("session %s: started", s.id)
	s.notify(manip.CubeState{}, true)
	return nil
}

// Stop detaches from the current source. Stopping an idle session is a no-op.
func (s *Session) Stop() {
	if s.source == nil {
		return
	}
	s.source.Detach()
	s.source = nil
	if s.state.Dragging {
		s.state = s.machine.PointerUp(s.state)
	}
	s.log.Infof("session %s: stopped", s.id)
}

// Subscription cancels an OnCellSelected registration.
type Subscription struct {
	s  *Session
	id int
}

func (sub Subscription) Unsubscribe() {
	if sub.s == nil {
		return
	}
	hs := sub.s.handlers
	for i, h := range hs {
		if h.id == sub.id {
			sub.s.handlers = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

// OnCellSelected registers fn for every selection, in registration order.
func (s *Session) OnCellSelected(fn func(manip.CellSelected)) Subscription {
	s.nextHandler++
	s.handlers = append(s.handlers, selectionHandler{id: s.nextHandler, fn: fn})
	return Subscription{s: s, id: s.nextHandler}
}

func (s *Session) PointerDown(x, y float64) {
	p := s.rect.Local(x, y)
	s.apply(s.machine.PointerDown(s.state, p))
	s.log.Debugf("pointer down at (%.1f, %.1f)", p.X, p.Y)
}

func (s *Session) PointerMove(x, y float64) {
	if !s.state.Dragging {
		return
	}
	s.apply(s.machine.PointerMove(s.state, s.rect.Local(x, y)))
}

func (s *Session) PointerUp() {
	if !s.state.Dragging {
		return
	}
	s.apply(s.machine.PointerUp(s.state))
	s.log.Debugf("pointer up, drag=%t", s.state.DragMoved)
}

func (s *Session) Wheel(deltaY float64) {
	s.apply(s.machine.Wheel(s.state, deltaY))
	s.log.Debugf("wheel %.1f, distance %.3f", deltaY, s.state.Distance)
}

// Click selects the cell under the pointer, if any, and notifies subscribers.
func (s *Session) Click(x, y float64) {
	s.click(x, y)
}

func (s *Session) click(x, y float64) *manip.CellSelected {
	if s.rect.Empty() {
		if !s.warnedNoElement {
			s.log.Warnf("click at (%.1f, %.1f) dropped: element has no size, call Resize first", x, y)
			s.warnedNoElement = true
		}
		return nil
	}
	p := s.rect.Local(x, y)
	if !s.rect.Contains(p) {
		s.log.Debugf("click ignored: %v", &picking.OutOfBoundsError{Pointer: p, Rect: s.rect})
		return nil
	}
	sel := s.machine.Click(s.state, p, s.rect, s.camera)
	if sel == nil {
		s.log.Debugf("click at (%.1f, %.1f): no selection", p.X, p.Y)
		return nil
	}
	s.log.Infof("selected %s", sel)
	for _, h := range append([]selectionHandler(nil), s.handlers...) {
		h.fn(*sel)
	}
	return sel
}

// Select is Click returning the selection.
func (s *Session) Select(x, y float64) (manip.CellSelected, bool) {
	sel := s.click(x, y)
	if sel == nil {
		return manip.CellSelected{}, false
	}
	return *sel, true
}

func (s *Session) Resize(rect core.ElementRect) {
	s.rect = rect
	s.warnedNoElement = false
	s.log.Debugf("element resized to %gx%g at (%g, %g)", rect.Width, rect.Height, rect.Left, rect.Top)
}

// Tick advances auto rotation by dt. Hosts call it from their frame loop.
func (s *Session) Tick(dt time.Duration) {
	s.apply(s.machine.Advance(s.state, dt))
}

// PickAt runs the full pick pipeline at a client position without touching
// the manipulation state.
func (s *Session) PickAt(x, y float64) (picking.PickResult, error) {
	return s.picker.Pick(s.rect.Local(x, y), s.rect, s.Camera(), s.Pose())
}

func (s *Session) apply(next manip.CubeState) {
	prev := s.state
	s.state = next
	s.notify(prev, false)
}

func (s *Session) notify(prev manip.CubeState, force bool) {
	if s.scene == nil {
		return
	}
	if force || prev.AngleX != s.state.AngleX || prev.AngleY != s.state.AngleY {
		s.scene.ApplyOrientation(s.state.AngleX, s.state.AngleY)
	}
	if force || prev.Distance != s.state.Distance {
		s.scene.ApplyCameraDistance(s.state.Distance)
	}
}
