package system

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/milk9111/skyscape/ecs/component"
)

// GradientImage renders stops into a 1 x height vertical strip. Colors are
// blended in plain sRGB, the way a 2D canvas linear gradient blends them.
func GradientImage(stops []component.GradientStop, height int) *image.RGBA {
	if height <= 0 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, height))
	for y := 0; y < height; y++ {
		t := (float64(y) + 0.5) / float64(height)
		img.Set(0, y, GradientAt(stops, t))
	}
	return img
}

// GradientAt samples the gradient at t in [0,1]. Before the first stop and
// after the last one the end colors hold.
func GradientAt(stops []component.GradientStop, t float64) color.Color {
	if len(stops) == 0 {
		return color.Transparent
	}
	t = clamp01(t)
	if t <= stops[0].Offset {
		return opaque(stops[0].Color)
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return opaque(b.Color)
		}
		ca, _ := colorful.MakeColor(opaque(a.Color))
		cb, _ := colorful.MakeColor(opaque(b.Color))
		r, g, bl := ca.BlendRgb(cb, (t-a.Offset)/span).Clamped().RGB255()
		return color.RGBA{R: r, G: g, B: bl, A: 0xff}
	}
	return opaque(stops[len(stops)-1].Color)
}

func opaque(c color.Color) color.Color {
	if c == nil {
		return color.Black
	}
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}
