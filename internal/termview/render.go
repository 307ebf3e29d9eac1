package termview

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gekko3d/gridcube"
	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/picking"
)

const halfBlock = "▀"

var background = color.RGBA{R: 0x12, G: 0x12, B: 0x18, A: 0xff}

// Frame is a ray-cast image of the session's cube, one sample per pixel.
// Each terminal cell shows two vertically stacked pixels.
type Frame struct {
	Width, Height int
	Pix           []color.RGBA
}

func (f *Frame) At(x, y int) color.RGBA {
	return f.Pix[y*f.Width+x]
}

// Render samples every pixel center of the session's element.
func Render(s *gridcube.Session) *Frame {
	rect := s.Element()
	w, h := int(rect.Width), int(rect.Height)
	f := &Frame{Width: w, Height: h, Pix: make([]color.RGBA, w*h)}
	if w <= 0 || h <= 0 {
		return f
	}

	cam := s.Camera()
	pose := s.Pose()
	picker := s.Picker()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Pix[y*w+x] = shade(picker, cam, pose, rect, core.Pointer{X: float64(x) + 0.5, Y: float64(y) + 0.5})
		}
	}
	return f
}

func shade(p *picking.Picker, cam core.CameraState, pose core.Transform, rect core.ElementRect, ptr core.Pointer) color.RGBA {
	ray, err := picking.ScreenToRay(ptr, rect, cam)
	if err != nil {
		return background
	}
	c, face, ok := p.Shade(ray, pose)
	if !ok {
		return background
	}
	// Faces turned away from the eye get darker.
	n := pose.Rotation.Rotate(face.Normal())
	facing := float64(-n.Dot(ray.Direction))
	if facing < 0 {
		facing = 0
	}
	lit, _ := colorful.MakeColor(c)
	dark := colorful.Color{}
	return toRGBA(dark.BlendRgb(lit, 0.45+0.55*facing))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// String draws the frame with half blocks. Styles are cached per color pair.
func (f *Frame) String() string {
	styles := map[[2]color.RGBA]lipgloss.Style{}
	var sb strings.Builder
	for y := 0; y+1 < f.Height; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < f.Width; x++ {
			key := [2]color.RGBA{f.At(x, y), f.At(x, y+1)}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(hexOf(key[0]))).
					Background(lipgloss.Color(hexOf(key[1])))
				styles[key] = st
			}
			sb.WriteString(st.Render(halfBlock))
		}
	}
	return sb.String()
}

func hexOf(c color.RGBA) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
