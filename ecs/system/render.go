package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
)

// DrawLayer tags what a draw op paints.
type DrawLayer uint8

const (
	LayerSky DrawLayer = iota
	LayerGradient
	LayerBackdrop
	LayerGalaxySprite
	LayerCloud
)

func (l DrawLayer) String() string {
	switch l {
	case LayerSky:
		return "sky"
	case LayerGradient:
		return "gradient"
	case LayerBackdrop:
		return "backdrop"
	case LayerGalaxySprite:
		return "galaxy_sprite"
	case LayerCloud:
		return "cloud"
	default:
		return "unknown"
	}
}

// DrawOp is one paint call in back-to-front order. Fills use Color or Stops
// over a ScaleX x ScaleY rectangle at the origin; image ops scale Image by
// ScaleX/ScaleY and place its top-left corner at X,Y.
type DrawOp struct {
	Layer  DrawLayer
	Color  color.Color
	Stops  []component.GradientStop
	Image  component.Texture
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
	Alpha  float64
}

// RenderSystem turns the world into draw ops and paints them.
type RenderSystem struct {
	painter *painter
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{painter: newPainter()}
}

// Plan returns this frame's draw ops without touching the GPU.
func (r *RenderSystem) Plan(w *ecs.World) []DrawOp {
	if w == nil {
		return nil
	}
	ent, ok := w.First(component.BackgroundTransitionComponent.Kind(), component.ViewportComponent.Kind())
	if !ok {
		return nil
	}
	tr, _ := ecs.Get(w, ent, component.BackgroundTransitionComponent)
	p := planner{w: w}
	p.vp, _ = ecs.Get(w, ent, component.ViewportComponent)
	p.inputs, _ = ecs.Get(w, ent, component.BackgroundInputsComponent)
	p.images, _ = ecs.Get(w, ent, component.SceneImagesComponent)
	if p.settings, ok = ecs.Get(w, ent, component.SceneSettingsComponent); !ok {
		p.settings = component.DefaultSceneSettings()
	}
	if p.vp.Empty() {
		return nil
	}

	if tr.Done() {
		p.state(tr.To, 1)
	} else {
		p.state(tr.From, 1)
		if tr.To == component.BackgroundGalaxy {
			backdrop, sprites := GalaxyReveal(tr.Progress, p.settings.GalaxyBackdropFrac, p.settings.GalaxySpriteDelayFrac)
			p.backdrop(backdrop)
			p.sprites(sprites)
		} else {
			p.state(tr.To, Smoothstep(tr.Progress))
		}
	}
	if tr.To != component.BackgroundGalaxy {
		p.clouds()
	}
	return p.ops
}

type planner struct {
	w        *ecs.World
	vp       component.Viewport
	inputs   component.BackgroundInputs
	images   component.SceneImages
	settings component.SceneSettings
	ops      []DrawOp
}

func (p *planner) push(op DrawOp) {
	if op.Alpha <= 0 {
		return
	}
	p.ops = append(p.ops, op)
}

func (p *planner) state(s component.BackgroundState, alpha float64) {
	switch s {
	case component.BackgroundGalaxy:
		p.backdrop(alpha)
		p.sprites(alpha)
	case component.BackgroundGradient:
		p.push(DrawOp{Layer: LayerGradient, Stops: p.settings.Gradient, ScaleX: p.vp.Width, ScaleY: p.vp.Height, Alpha: alpha})
	default:
		p.push(DrawOp{Layer: LayerSky, Color: p.settings.SkyFill(p.inputs), ScaleX: p.vp.Width, ScaleY: p.vp.Height, Alpha: alpha})
	}
}

// backdrop cover-fits the starfield image and centers it.
func (p *planner) backdrop(alpha float64) {
	iw, ih := component.TextureSize(p.images.Backdrop)
	if iw <= 0 || ih <= 0 {
		return
	}
	scale := math.Max(p.vp.Width/iw, p.vp.Height/ih)
	p.push(DrawOp{
		Layer:  LayerBackdrop,
		Image:  p.images.Backdrop,
		X:      (p.vp.Width - iw*scale) / 2,
		Y:      (p.vp.Height - ih*scale) / 2,
		ScaleX: scale,
		ScaleY: scale,
		Alpha:  alpha,
	})
}

func (p *planner) sprites(alpha float64) {
	if alpha <= 0 {
		return
	}
	type placed struct {
		s component.GalaxySprite
		t component.Transform
	}
	var list []placed
	for _, e := range p.w.Query(component.GalaxySpriteComponent.Kind(), component.TransformComponent.Kind()) {
		s, _ := ecs.Get(p.w, e, component.GalaxySpriteComponent)
		t, _ := ecs.Get(p.w, e, component.TransformComponent)
		if s.Image == nil {
			continue
		}
		list = append(list, placed{s: s, t: t})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].s.Index < list[j].s.Index })
	for _, it := range list {
		p.push(DrawOp{
			Layer:  LayerGalaxySprite,
			Image:  it.s.Image,
			X:      it.t.X,
			Y:      it.t.Y,
			ScaleX: it.s.Scale,
			ScaleY: it.s.Scale,
			Alpha:  alpha * it.s.Opacity,
		})
	}
}

func (p *planner) clouds() {
	iw, ih := component.TextureSize(p.images.Cloud)
	if iw <= 0 || ih <= 0 {
		return
	}
	type placed struct {
		c component.Cloud
		t component.Transform
	}
	var list []placed
	for _, e := range p.w.Query(component.CloudComponent.Kind(), component.TransformComponent.Kind()) {
		c, _ := ecs.Get(p.w, e, component.CloudComponent)
		t, _ := ecs.Get(p.w, e, component.TransformComponent)
		list = append(list, placed{c: c, t: t})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].c.Row != list[j].c.Row {
			return list[i].c.Row < list[j].c.Row
		}
		return list[i].c.Col < list[j].c.Col
	})
	cw, ch := p.settings.Cloud.Width, p.settings.Cloud.Height
	for _, it := range list {
		scale := it.c.Scale
		if scale == 0 {
			scale = 1
		}
		p.push(DrawOp{
			Layer:  LayerCloud,
			Image:  p.images.Cloud,
			X:      it.t.X,
			Y:      it.t.Y,
			ScaleX: cw * scale / iw,
			ScaleY: ch * scale / ih,
			Alpha:  1,
		})
	}
}
