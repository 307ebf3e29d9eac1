package texture

import (
	"fmt"
	"strings"
)

// GridSize is the number of rows and columns on every face.
const GridSize = 3

// GridCell is one of the nine labeled regions of a face texture.
type GridCell struct {
	Row             int
	Col             int
	Label           rune
	BackgroundColor FaceColor
}

func (c GridCell) String() string {
	return fmt.Sprintf("%c(%d,%d)", c.Label, c.Row, c.Col)
}

type LabelScheme uint8

const (
	LabelAlphabetic LabelScheme = iota // A..I
	LabelNumeric                       // 1..9
)

// Label returns the label of the cell at (row, col), row-major.
func (s LabelScheme) Label(row, col int) rune {
	n := rune(row*GridSize + col)
	if s == LabelNumeric {
		return '1' + n
	}
	return 'A' + n
}

func (s LabelScheme) String() string {
	switch s {
	case LabelAlphabetic:
		return "alphabetic"
	case LabelNumeric:
		return "numeric"
	}
	return fmt.Sprintf("LabelScheme(%d)", uint8(s))
}

func ParseLabelScheme(name string) (LabelScheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "alphabetic", "letters":
		return LabelAlphabetic, nil
	case "numeric", "numbers":
		return LabelNumeric, nil
	}
	return 0, fmt.Errorf("%w: label scheme %q", ErrUnknownName, name)
}

type CornerStyle uint8

const (
	CornerRounded CornerStyle = iota
	CornerSquare
)

func (s CornerStyle) String() string {
	switch s {
	case CornerRounded:
		return "rounded"
	case CornerSquare:
		return "square"
	}
	return fmt.Sprintf("CornerStyle(%d)", uint8(s))
}

func ParseCornerStyle(name string) (CornerStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rounded":
		return CornerRounded, nil
	case "square":
		return CornerSquare, nil
	}
	return 0, fmt.Errorf("%w: corner style %q", ErrUnknownName, name)
}
