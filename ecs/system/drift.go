package system

import (
	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
)

// CloudDriftSystem moves clouds sideways and wraps them at the viewport edge.
// Clouds hold still while the galaxy is the target; they are not drawn then.
type CloudDriftSystem struct{}

func NewCloudDriftSystem() *CloudDriftSystem { return &CloudDriftSystem{} }

func (cs *CloudDriftSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ent, ok := w.First(component.BackgroundTransitionComponent.Kind(), component.ViewportComponent.Kind())
	if !ok {
		return
	}
	tr, _ := ecs.Get(w, ent, component.BackgroundTransitionComponent)
	if tr.To == component.BackgroundGalaxy {
		return
	}
	vp, _ := ecs.Get(w, ent, component.ViewportComponent)
	settings, ok := ecs.Get(w, ent, component.SceneSettingsComponent)
	if !ok {
		settings = component.DefaultSceneSettings()
	}

	ecs.ForEach2(w, component.CloudComponent, component.TransformComponent, func(_ ecs.Entity, c *component.Cloud, t *component.Transform) {
		t.X += c.Speed
		t.X = WrapCloudX(t.X, settings.Cloud.Width*c.Scale, vp.Width, c.Reverse)
	})
}

// WrapCloudX re-enters a cloud on the far side once it has fully left the
// surface in its direction of travel.
func WrapCloudX(x, cloudWidth, viewportWidth float64, reverse bool) float64 {
	if reverse {
		if x < -cloudWidth {
			return viewportWidth
		}
		return x
	}
	if x > viewportWidth {
		return -cloudWidth
	}
	return x
}

// GalaxyDriftSystem moves the starfield sprites whenever the galaxy scene is
// on screen, as the destination or as the state being faded out.
type GalaxyDriftSystem struct{}

func NewGalaxyDriftSystem() *GalaxyDriftSystem { return &GalaxyDriftSystem{} }

func (gs *GalaxyDriftSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ent, ok := w.First(component.BackgroundTransitionComponent.Kind(), component.ViewportComponent.Kind())
	if !ok {
		return
	}
	tr, _ := ecs.Get(w, ent, component.BackgroundTransitionComponent)
	if !tr.Shows(component.BackgroundGalaxy) {
		return
	}
	vp, _ := ecs.Get(w, ent, component.ViewportComponent)
	settings, ok := ecs.Get(w, ent, component.SceneSettingsComponent)
	if !ok {
		settings = component.DefaultSceneSettings()
	}
	g := settings.Galaxy

	ecs.ForEach2(w, component.GalaxySpriteComponent, component.TransformComponent, func(_ ecs.Entity, s *component.GalaxySprite, t *component.Transform) {
		t.X += s.Speed * g.DriftMultiplier
		t.X = WrapGalaxyX(t.X, vp.Width, g.WrapMargin)
	})
}

// WrapGalaxyX wraps a sprite once it is margin pixels past either edge, so it
// never pops at the visible boundary.
func WrapGalaxyX(x, viewportWidth, margin float64) float64 {
	if x > viewportWidth+margin {
		return -margin
	}
	if x < -margin {
		return viewportWidth + margin
	}
	return x
}
