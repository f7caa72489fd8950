package system

import (
	"image"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
)

// Draw paints this frame's plan onto screen.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.painter == nil {
		r.painter = newPainter()
	}
	for _, op := range r.Plan(w) {
		r.painter.paint(screen, op)
	}
}

// painter owns the GPU-side images the plan refers to.
type painter struct {
	pixel    *ebiten.Image
	textures map[component.Texture]*ebiten.Image

	gradStops  []component.GradientStop
	gradHeight int
	gradient   *ebiten.Image
}

// Release frees every GPU image the painter created. The render system can
// keep drawing afterwards; textures are re-uploaded on demand.
func (r *RenderSystem) Release() {
	if r == nil || r.painter == nil {
		return
	}
	r.painter.release()
}

func newPainter() *painter {
	return &painter{textures: make(map[component.Texture]*ebiten.Image)}
}

func (p *painter) paint(screen *ebiten.Image, op DrawOp) {
	var img *ebiten.Image
	opts := &ebiten.DrawImageOptions{}
	opts.Filter = ebiten.FilterLinear

	switch op.Layer {
	case LayerSky:
		img = p.solid()
		opts.GeoM.Scale(op.ScaleX, op.ScaleY)
		opts.ColorScale.ScaleWithColor(op.Color)
	case LayerGradient:
		img = p.gradientStrip(op.Stops, int(op.ScaleY))
		opts.GeoM.Scale(op.ScaleX, 1)
	default:
		img = p.texture(op.Image)
		opts.GeoM.Scale(op.ScaleX, op.ScaleY)
		opts.GeoM.Translate(op.X, op.Y)
	}
	if img == nil {
		return
	}
	opts.ColorScale.ScaleAlpha(float32(op.Alpha))
	screen.DrawImage(img, opts)
}

func (p *painter) solid() *ebiten.Image {
	if p.pixel == nil {
		p.pixel = ebiten.NewImage(1, 1)
		p.pixel.Fill(color.White)
	}
	return p.pixel
}

func (p *painter) gradientStrip(stops []component.GradientStop, height int) *ebiten.Image {
	if height <= 0 {
		return nil
	}
	if p.gradient != nil && p.gradHeight == height && sameStops(p.gradStops, stops) {
		return p.gradient
	}
	if p.gradient != nil {
		p.gradient.Deallocate()
	}
	p.gradient = ebiten.NewImageFromImage(GradientImage(stops, height))
	p.gradHeight = height
	p.gradStops = slices.Clone(stops)
	return p.gradient
}

func (p *painter) texture(t component.Texture) *ebiten.Image {
	switch v := t.(type) {
	case nil:
		return nil
	case *ebiten.Image:
		return v
	case image.Image:
		if img, ok := p.textures[t]; ok {
			return img
		}
		img := ebiten.NewImageFromImage(v)
		p.textures[t] = img
		return img
	default:
		return nil
	}
}

func (p *painter) release() {
	for key, img := range p.textures {
		img.Deallocate()
		delete(p.textures, key)
	}
	if p.gradient != nil {
		p.gradient.Deallocate()
		p.gradient = nil
		p.gradStops = nil
		p.gradHeight = 0
	}
}

func sameStops(a, b []component.GradientStop) bool {
	return slices.EqualFunc(a, b, func(x, y component.GradientStop) bool {
		if x.Offset != y.Offset {
			return false
		}
		xr, xg, xb, xa := x.Color.RGBA()
		yr, yg, yb, ya := y.Color.RGBA()
		return xr == yr && xg == yg && xb == yb && xa == ya
	})
}
