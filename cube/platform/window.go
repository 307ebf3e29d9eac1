package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/gridcube/cube/core"
)

// Window is a native window that only delivers input; nothing is drawn
// into it by this package.
type Window struct {
	glfw  *glfw.Window
	title string
}

// NewWindow initializes GLFW and opens a window. It must be called from the
// main goroutine; the OS thread stays locked for the window's lifetime.
func NewWindow(width, height int, title string) (*Window, error) {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	if title == "" {
		title = "gridcube"
	}

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &Window{glfw: win, title: title}, nil
}

func (w *Window) ShouldClose() bool { return w.glfw.ShouldClose() }

func (w *Window) SetTitle(title string) {
	w.title = title
	w.glfw.SetTitle(title)
}

// Element reports the client area as the picking element.
func (w *Window) Element() core.ElementRect {
	width, height := w.glfw.GetSize()
	return core.ElementRect{Width: float64(width), Height: float64(height)}
}

// PollEvents dispatches pending input to the attached callbacks.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Destroy() {
	w.glfw.Destroy()
	glfw.Terminate()
}
