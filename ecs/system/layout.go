package system

import (
	"math/rand/v2"

	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
	"github.com/milk9111/skyscape/ecs/entity"
)

// LayoutSystem builds the cloud grid once the cloud image is in and rebuilds
// the galaxy field whenever the viewport changes or the sprite set settles.
// It never touches the transition.
type LayoutSystem struct {
	rng *rand.Rand
}

func NewLayoutSystem(rng *rand.Rand) *LayoutSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &LayoutSystem{rng: rng}
}

func (ls *LayoutSystem) Update(w *ecs.World) {
	if ls == nil || w == nil {
		return
	}
	ent, ok := w.First(component.LayoutStateComponent.Kind(), component.ViewportComponent.Kind())
	if !ok {
		return
	}
	vp, _ := ecs.Get(w, ent, component.ViewportComponent)
	if vp.Empty() {
		return
	}
	state, _ := ecs.Get(w, ent, component.LayoutStateComponent)
	images, _ := ecs.Get(w, ent, component.SceneImagesComponent)
	settings, ok := ecs.Get(w, ent, component.SceneSettingsComponent)
	if !ok {
		settings = component.DefaultSceneSettings()
	}

	changed := false
	if !state.CloudsBuilt && images.Cloud != nil {
		placements := entity.LayoutClouds(vp.Width, vp.Height, settings.Cloud, ls.rng)
		if _, err := entity.BuildClouds(w, placements); err == nil {
			state.CloudsBuilt = true
			changed = true
			w.Events().Push(ecs.Event{Type: ecs.EventLayoutGenerated, Data: LayoutEvent{Kind: "clouds", Count: len(placements)}})
		}
	}

	if images.Status.Ready() && (!state.GalaxyBuilt || state.GalaxyViewportGen != vp.Generation) {
		placements := entity.LayoutGalaxies(vp.Width, vp.Height, images.Galaxy, settings.Galaxy, ls.rng)
		if _, err := entity.BuildGalaxies(w, placements); err == nil {
			state.GalaxyBuilt = true
			state.GalaxyViewportGen = vp.Generation
			changed = true
			w.Events().Push(ecs.Event{Type: ecs.EventLayoutGenerated, Data: LayoutEvent{Kind: "galaxy", Count: len(placements)}})
		}
	}

	if changed {
		_ = ecs.Add(w, ent, component.LayoutStateComponent, state)
	}
}

// LayoutEvent reports a regenerated layout.
type LayoutEvent struct {
	Kind  string
	Count int
}
