package platform

import (
	"errors"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/gridcube"
	"github.com/gekko3d/gridcube/cube/core"
)

var ErrAttached = errors.New("platform: window source already attached")

// DefaultScrollScale converts one scroll notch into wheel delta units.
const DefaultScrollScale = 100.0

// WindowSource feeds a window's mouse input into an event sink. Only the
// left button drives gestures; a release also emits the click.
type WindowSource struct {
	window      *Window
	ScrollScale float64
	router      *router
}

func NewWindowSource(w *Window) *WindowSource {
	return &WindowSource{window: w, ScrollScale: DefaultScrollScale}
}

func (s *WindowSource) Attach(sink gridcube.EventSink) error {
	if s.router != nil {
		return ErrAttached
	}
	r := &router{sink: sink, scrollScale: s.ScrollScale}
	r.x, r.y = s.window.glfw.GetCursorPos()
	s.router = r

	win := s.window.glfw
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		r.cursor(x, y)
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			r.press()
		case glfw.Release:
			r.release()
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		r.scroll(yoff)
	})
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		r.resize(width, height)
	})

	width, height := win.GetSize()
	r.resize(width, height)
	return nil
}

// Detach clears every callback Attach installed.
func (s *WindowSource) Detach() {
	if s.router == nil {
		return
	}
	win := s.window.glfw
	win.SetCursorPosCallback(nil)
	win.SetMouseButtonCallback(nil)
	win.SetScrollCallback(nil)
	win.SetSizeCallback(nil)
	s.router = nil
}

// router translates raw window callbacks into sink events.
type router struct {
	sink        gridcube.EventSink
	scrollScale float64
	x, y        float64
	down        bool
}

func (r *router) cursor(x, y float64) {
	r.x, r.y = x, y
	if r.down {
		r.sink.PointerMove(x, y)
	}
}

func (r *router) press() {
	r.down = true
	r.sink.PointerDown(r.x, r.y)
}

func (r *router) release() {
	if !r.down {
		return
	}
	r.down = false
	r.sink.PointerUp()
	r.sink.Click(r.x, r.y)
}

// scroll maps GLFW's up-is-positive offset to a wheel delta where positive
// zooms out.
func (r *router) scroll(yoff float64) {
	r.sink.Wheel(-yoff * r.scrollScale)
}

func (r *router) resize(width, height int) {
	r.sink.Resize(core.ElementRect{Width: float64(width), Height: float64(height)})
}
