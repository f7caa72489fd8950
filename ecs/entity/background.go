package entity

import (
	"fmt"

	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
)

// BuildBackground creates the singleton entity that carries the background's
// frame state: transition, inputs, settings, viewport, layout bookkeeping and
// the images loaded so far.
func BuildBackground(w *ecs.World, settings component.SceneSettings, viewport component.Viewport) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("entity: build background: nil world")
	}
	e := w.CreateEntity()
	steps := []func() error{
		func() error {
			return ecs.Add(w, e, component.BackgroundTransitionComponent, component.NewBackgroundTransition())
		},
		func() error {
			return ecs.Add(w, e, component.BackgroundInputsComponent, component.BackgroundInputs{})
		},
		func() error { return ecs.Add(w, e, component.SceneSettingsComponent, settings) },
		func() error { return ecs.Add(w, e, component.ViewportComponent, viewport) },
		func() error { return ecs.Add(w, e, component.LayoutStateComponent, component.LayoutState{}) },
		func() error { return ecs.Add(w, e, component.SceneImagesComponent, component.SceneImages{}) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("entity: build background: %w", err)
		}
	}
	return e, nil
}
