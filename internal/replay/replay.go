// Package replay drives a session from a recorded event script.
package replay

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gekko3d/gridcube"
	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/manip"
)

var ErrBadEvent = errors.New("replay: bad event")

type Element struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Event is one scripted input. Type is down, move, up, click, wheel,
// tick or resize.
type Event struct {
	Type    string        `yaml:"type"`
	X       float64       `yaml:"x,omitempty"`
	Y       float64       `yaml:"y,omitempty"`
	DeltaY  float64       `yaml:"dy,omitempty"`
	Dt      time.Duration `yaml:"dt,omitempty"`
	Element *Element      `yaml:"element,omitempty"`
}

type Script struct {
	Element Element `yaml:"element"`
	Events  []Event `yaml:"events"`
}

func Parse(data []byte) (*Script, error) {
	s := &Script{Element: Element{Width: 800, Height: 600}}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	for i, ev := range s.Events {
		if err := ev.validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return s, nil
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (e Event) validate() error {
	switch e.Type {
	case "down", "move", "up", "click", "wheel":
	case "tick":
		if e.Dt <= 0 {
			return fmt.Errorf("%w: tick needs a positive dt", ErrBadEvent)
		}
	case "resize":
		if e.Element == nil {
			return fmt.Errorf("%w: resize needs an element", ErrBadEvent)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadEvent, e.Type)
	}
	return nil
}

// Step records the state after one event and any selection it caused.
type Step struct {
	Event    Event
	State    manip.CubeState
	Selected *manip.CellSelected
}

type Result struct {
	Steps      []Step
	Selections []manip.CellSelected
	Final      manip.CubeState
}

// Run plays the script into s and collects what happened.
func Run(s *gridcube.Session, script *Script) *Result {
	res := &Result{}
	var last *manip.CellSelected
	sub := s.OnCellSelected(func(e manip.CellSelected) {
		last = &e
		res.Selections = append(res.Selections, e)
	})
	defer sub.Unsubscribe()

	s.Resize(script.Element.rect())
	for _, ev := range script.Events {
		last = nil
		switch ev.Type {
		case "down":
			s.PointerDown(ev.X, ev.Y)
		case "move":
			s.PointerMove(ev.X, ev.Y)
		case "up":
			s.PointerUp()
		case "click":
			s.Click(ev.X, ev.Y)
		case "wheel":
			s.Wheel(ev.DeltaY)
		case "tick":
			s.Tick(ev.Dt)
		case "resize":
			s.Resize(ev.Element.rect())
		}
		res.Steps = append(res.Steps, Step{Event: ev, State: s.State(), Selected: last})
	}
	res.Final = s.State()
	return res
}

func (e Element) rect() core.ElementRect {
	return core.ElementRect{Left: e.Left, Top: e.Top, Width: e.Width, Height: e.Height}
}
