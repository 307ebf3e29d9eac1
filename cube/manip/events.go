package manip

import (
	"fmt"

	"github.com/gekko3d/gridcube/cube/core"
)

// CellSelected is emitted when a click lands on a selectable cell.
type CellSelected struct {
	Face  core.Face
	Row   int
	Col   int
	Label rune
}

func (e CellSelected) String() string {
	return fmt.Sprintf("%s (%d,%d) %c", e.Face, e.Row, e.Col, e.Label)
}
