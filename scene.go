package main

import (
	"fmt"

	"github.com/milk9111/skyscape/designsystem"
	"github.com/milk9111/skyscape/ecs/component"
	"github.com/milk9111/skyscape/prefabs"
)

// loadSceneSettings resolves prefabs/scene.yaml against the design tokens.
func loadSceneSettings() (component.SceneSettings, error) {
	doc, err := designsystem.Load()
	if err != nil {
		return component.SceneSettings{}, err
	}
	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return component.SceneSettings{}, err
	}
	settings, err := spec.Settings(doc)
	if err != nil {
		return component.SceneSettings{}, fmt.Errorf("scene settings: %w", err)
	}
	return settings, nil
}
