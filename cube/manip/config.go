package manip

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("manip: invalid config")

// Config holds the interaction constants. Angles are radians, distances
// world units, pointer values element pixels.
type Config struct {
	RotateSensitivity float64 // radians per pixel of drag
	ZoomSensitivity   float64 // world units per wheel delta unit
	MinDistance       float64
	MaxDistance       float64
	StartDistance     float64
	DragThreshold     float64 // pixels a press may wander before it counts as a drag
	AutoRotateSpeed   float64 // radians per second on both axes while idle
	CubeEdge          float32
}

func DefaultConfig() Config {
	return Config{
		RotateSensitivity: 0.005,
		ZoomSensitivity:   0.005,
		MinDistance:       3,
		MaxDistance:       10,
		StartDistance:     6,
		DragThreshold:     4,
		AutoRotateSpeed:   0.3,
		CubeEdge:          2,
	}
}

func (c Config) Validate() error {
	if c.MinDistance <= 0 || c.MaxDistance < c.MinDistance {
		return fmt.Errorf("%w: distance range [%g, %g]", ErrInvalidConfig, c.MinDistance, c.MaxDistance)
	}
	if c.StartDistance < c.MinDistance || c.StartDistance > c.MaxDistance {
		return fmt.Errorf("%w: start distance %g outside [%g, %g]", ErrInvalidConfig, c.StartDistance, c.MinDistance, c.MaxDistance)
	}
	if c.RotateSensitivity < 0 || c.ZoomSensitivity < 0 {
		return fmt.Errorf("%w: negative sensitivity", ErrInvalidConfig)
	}
	if c.DragThreshold < 0 {
		return fmt.Errorf("%w: drag threshold %g", ErrInvalidConfig, c.DragThreshold)
	}
	if c.CubeEdge <= 0 {
		return fmt.Errorf("%w: cube edge %g", ErrInvalidConfig, c.CubeEdge)
	}
	return nil
}

// ClampDistance limits d to the configured camera range.
func (c Config) ClampDistance(d float64) float64 {
	if d < c.MinDistance {
		return c.MinDistance
	}
	if d > c.MaxDistance {
		return c.MaxDistance
	}
	return d
}
