package termview

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gekko3d/gridcube"
	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/manip"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const statusLines = 2

// WheelStep is the wheel delta sent for one terminal scroll event.
const WheelStep = 100.0

type tickMsg time.Time

// Model is a bubbletea program that renders a session and feeds it mouse
// input. It is the session's event source while the program runs.
type Model struct {
	session  *gridcube.Session
	sink     gridcube.EventSink
	fps      int
	clock    gridcube.Clock
	cols     int
	rows     int
	selected *manip.CellSelected
	history  []manip.CellSelected
	sub      gridcube.Subscription
}

// New wires a model to s and starts the session with it.
func New(s *gridcube.Session, fps int) (*Model, error) {
	if fps <= 0 {
		fps = 30
	}
	m := &Model{session: s, fps: fps}
	if err := s.Start(m); err != nil {
		return nil, err
	}
	m.sub = s.OnCellSelected(func(e manip.CellSelected) {
		m.selected = &e
		m.history = append(m.history, e)
	})
	return m, nil
}

func (m *Model) Attach(sink gridcube.EventSink) error {
	m.sink = sink
	return nil
}

func (m *Model) Detach() {
	m.sink = nil
}

// Close stops the session and drops the selection subscription.
func (m *Model) Close() {
	m.sub.Unsubscribe()
	m.session.Stop()
}

// Selected returns the most recent selection.
func (m *Model) Selected() (manip.CellSelected, bool) {
	if m.selected == nil {
		return manip.CellSelected{}, false
	}
	return *m.selected, true
}

func (m *Model) History() []manip.CellSelected { return m.history }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.wheel(-WheelStep)
		case "-":
			m.wheel(WheelStep)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	case tickMsg:
		if dt := m.clock.Advance(time.Time(msg)); dt > 0 {
			m.session.Tick(dt)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	m.cols, m.rows = cols, rows
	h := rows - statusLines
	if h < 1 {
		h = 1
	}
	if m.sink != nil {
		m.sink.Resize(core.ElementRect{Width: float64(cols), Height: float64(h * 2)})
	}
}

// pixel maps a terminal cell to the element pixel at its center.
func pixel(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y*2) + 1
}

func (m *Model) mouse(msg tea.MouseMsg) {
	if m.sink == nil {
		return
	}
	x, y := pixel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.sink.PointerDown(x, y)
		case tea.MouseButtonWheelUp:
			m.sink.Wheel(-WheelStep)
		case tea.MouseButtonWheelDown:
			m.sink.Wheel(WheelStep)
		}
	case tea.MouseActionMotion:
		m.sink.PointerMove(x, y)
	case tea.MouseActionRelease:
		if !m.session.State().Dragging {
			return
		}
		m.sink.PointerUp()
		m.sink.Click(x, y)
	}
}

func (m *Model) wheel(delta float64) {
	if m.sink != nil {
		m.sink.Wheel(delta)
	}
}

func (m *Model) View() string {
	if m.cols == 0 {
		return "starting..."
	}
	var sb strings.Builder
	sb.WriteString(Render(m.session).String())
	sb.WriteByte('\n')

	st := m.session.State()
	sb.WriteString(dim.Render(fmt.Sprintf("rot %6.1f° %6.1f°  dist %5.2f  %s",
		degrees(st.AngleX), degrees(st.AngleY), st.Distance, m.session.Phase())))
	sb.WriteByte('\n')
	if sel, ok := m.Selected(); ok {
		sb.WriteString(cyan.Render("selected ") + yellow.Render(string(sel.Label)) +
			dim.Render(fmt.Sprintf("  row %d col %d  (%d picks)", sel.Row, sel.Col, len(m.history))))
	} else {
		sb.WriteString(dim.Render("click a cell on the white face · drag to rotate · scroll to zoom · q quits"))
	}
	return sb.String()
}

func degrees(rad float64) float64 {
	return math.Mod(rad*180/math.Pi, 360)
}

// Run starts an alt-screen program with mouse tracking.
func Run(s *gridcube.Session, fps int) error {
	m, err := New(s, fps)
	if err != nil {
		return err
	}
	defer m.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
