package gridcube

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/manip"
	"github.com/gekko3d/gridcube/cube/texture"
)

var ErrInvalidConfig = errors.New("gridcube: invalid config")

const (
	DefaultTextureSize  = 256
	DefaultCornerRadius = 10
	DefaultBorderWidth  = 2
	DefaultLabelSize    = 40.0
	DefaultCubeEdge     = 2.0
	DefaultFov          = 75.0
	DefaultNear         = 0.1
	DefaultFar          = 1000.0
	DefaultDistance     = 6.0
	DefaultMinDistance  = 3.0
	DefaultMaxDistance  = 10.0
)

type Config struct {
	Texture  TextureConfig  `yaml:"texture"`
	Palette  PaletteConfig  `yaml:"palette"`
	Cube     CubeConfig     `yaml:"cube"`
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Log      LogConfig      `yaml:"log"`
}

type TextureConfig struct {
	Size         int     `yaml:"size"`
	CornerRadius int     `yaml:"corner_radius"`
	BorderWidth  int     `yaml:"border_width"`
	LabelScheme  string  `yaml:"label_scheme"`
	CornerStyle  string  `yaml:"corner_style"`
	LabelSize    float64 `yaml:"label_size"`
}

// PaletteConfig assigns colors to faces in +X, -X, +Y, -Y, +Z, -Z order.
// Overrides replace palette entries by name with hex colors.
type PaletteConfig struct {
	Faces       []string          `yaml:"faces"`
	Interactive string            `yaml:"interactive"`
	Overrides   map[string]string `yaml:"overrides,omitempty"`
	Border      string            `yaml:"border"`
	Ink         string            `yaml:"ink"`
}

type CubeConfig struct {
	Edge float64 `yaml:"edge"`
}

type CameraConfig struct {
	Fov         float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

type ControlsConfig struct {
	RotateSensitivity float64 `yaml:"rotate_sensitivity"`
	ZoomSensitivity   float64 `yaml:"zoom_sensitivity"`
	DragThreshold     float64 `yaml:"drag_threshold"`
	AutoRotateSpeed   float64 `yaml:"auto_rotate_speed"`
}

type LogConfig struct {
	Prefix  string `yaml:"prefix"`
	Debug   bool   `yaml:"debug"`
	Discard bool   `yaml:"discard,omitempty"`
}

func DefaultConfig() *Config {
	faces := make([]string, 0, core.FaceCount)
	for _, c := range texture.DefaultFaceColors {
		faces = append(faces, c.String())
	}
	mc := manip.DefaultConfig()
	return &Config{
		Texture: TextureConfig{
			Size:         DefaultTextureSize,
			CornerRadius: DefaultCornerRadius,
			BorderWidth:  DefaultBorderWidth,
			LabelScheme:  texture.LabelAlphabetic.String(),
			CornerStyle:  texture.CornerRounded.String(),
			LabelSize:    DefaultLabelSize,
		},
		Palette: PaletteConfig{
			Faces:       faces,
			Interactive: texture.White.String(),
			Border:      texture.Hex(texture.DefaultBorder),
			Ink:         texture.Hex(texture.DefaultInk),
		},
		Cube: CubeConfig{Edge: DefaultCubeEdge},
		Camera: CameraConfig{
			Fov:         DefaultFov,
			Near:        DefaultNear,
			Far:         DefaultFar,
			Distance:    DefaultDistance,
			MinDistance: DefaultMinDistance,
			MaxDistance: DefaultMaxDistance,
		},
		Controls: ControlsConfig{
			RotateSensitivity: mc.RotateSensitivity,
			ZoomSensitivity:   mc.ZoomSensitivity,
			DragThreshold:     mc.DragThreshold,
			AutoRotateSpeed:   mc.AutoRotateSpeed,
		},
		Log: LogConfig{Prefix: "gridcube"},
	}
}

// Load reads a YAML config. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every derived component config.
func (c *Config) Validate() error {
	opts, err := c.GeneratorOptions()
	if err != nil {
		return err
	}
	colors, err := c.FaceColors()
	if err != nil {
		return err
	}
	interactive := 0
	for _, fc := range colors {
		if fc == opts.Interactive {
			interactive++
		}
	}
	if interactive != 1 {
		return fmt.Errorf("%w: %d faces are %s, want exactly one", ErrInvalidConfig, interactive, opts.Interactive)
	}
	if err := c.ManipConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cam := c.Camera
	if cam.Fov <= 0 || cam.Fov >= 180 {
		return fmt.Errorf("%w: fov %g", ErrInvalidConfig, cam.Fov)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalidConfig, cam.Near, cam.Far)
	}
	return nil
}

// GeneratorOptions converts the texture and palette sections.
func (c *Config) GeneratorOptions() (texture.Options, error) {
	opts := texture.DefaultOptions()
	opts.Size = c.Texture.Size
	opts.CornerRadius = c.Texture.CornerRadius
	opts.BorderWidth = c.Texture.BorderWidth
	opts.LabelSize = c.Texture.LabelSize

	var err error
	if opts.LabelScheme, err = texture.ParseLabelScheme(c.Texture.LabelScheme); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if opts.CornerStyle, err = texture.ParseCornerStyle(c.Texture.CornerStyle); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if opts.Interactive, err = texture.ParseFaceColor(c.Palette.Interactive); err != nil {
		return opts, fmt.Errorf("%w: interactive: %v", ErrInvalidConfig, err)
	}
	for name, hex := range c.Palette.Overrides {
		fc, err := texture.ParseFaceColor(name)
		if err != nil {
			return opts, fmt.Errorf("%w: override: %v", ErrInvalidConfig, err)
		}
		rgba, err := texture.ParseHex(hex)
		if err != nil {
			return opts, fmt.Errorf("%w: override %s: %v", ErrInvalidConfig, name, err)
		}
		opts.Palette = opts.Palette.With(fc, rgba)
	}
	if c.Palette.Border != "" {
		if opts.Border, err = texture.ParseHex(c.Palette.Border); err != nil {
			return opts, fmt.Errorf("%w: border: %v", ErrInvalidConfig, err)
		}
	}
	if c.Palette.Ink != "" {
		if opts.Ink, err = texture.ParseHex(c.Palette.Ink); err != nil {
			return opts, fmt.Errorf("%w: ink: %v", ErrInvalidConfig, err)
		}
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return opts, nil
}

func (c *Config) FaceColors() ([core.FaceCount]texture.FaceColor, error) {
	var colors [core.FaceCount]texture.FaceColor
	if len(c.Palette.Faces) != core.FaceCount {
		return colors, fmt.Errorf("%w: palette lists %d faces, want %d", ErrInvalidConfig, len(c.Palette.Faces), core.FaceCount)
	}
	for i, name := range c.Palette.Faces {
		fc, err := texture.ParseFaceColor(name)
		if err != nil {
			return colors, fmt.Errorf("%w: face %s: %v", ErrInvalidConfig, core.Face(i), err)
		}
		colors[i] = fc
	}
	return colors, nil
}

func (c *Config) ManipConfig() manip.Config {
	return manip.Config{
		RotateSensitivity: c.Controls.RotateSensitivity,
		ZoomSensitivity:   c.Controls.ZoomSensitivity,
		MinDistance:       c.Camera.MinDistance,
		MaxDistance:       c.Camera.MaxDistance,
		StartDistance:     c.Camera.Distance,
		DragThreshold:     c.Controls.DragThreshold,
		AutoRotateSpeed:   c.Controls.AutoRotateSpeed,
		CubeEdge:          float32(c.Cube.Edge),
	}
}

// CameraState is the camera at the configured start distance.
func (c *Config) CameraState() core.CameraState {
	cam := core.NewCameraState()
	cam.FovY = float32(c.Camera.Fov)
	cam.Near = float32(c.Camera.Near)
	cam.Far = float32(c.Camera.Far)
	return cam.WithDistance(c.Camera.Distance)
}
