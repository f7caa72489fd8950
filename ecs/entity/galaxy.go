package entity

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
)

// GalaxyPlacement is one starfield sprite before it becomes an entity.
type GalaxyPlacement struct {
	Transform component.Transform
	Sprite    component.GalaxySprite
}

// LayoutGalaxies spreads the loaded sprites over a grid of roughly CellSize
// cells, with jitter, random scale, opacity and a slow signed drift. Sprites
// keep their load index so the grid slot does not depend on which neighbours
// failed to load.
func LayoutGalaxies(width, height float64, images []component.Texture, cfg component.GalaxySettings, rng *rand.Rand) []GalaxyPlacement {
	if width <= 0 || height <= 0 || cfg.CellSize <= 0 {
		return nil
	}
	cols := int(math.Ceil(width / cfg.CellSize))
	rows := int(math.Ceil(height / cfg.CellSize))

	out := make([]GalaxyPlacement, 0, len(images))
	for i, img := range images {
		if img == nil {
			continue
		}
		col := i % cols
		row := (i / cols) % rows

		baseX := float64(col) / float64(cols) * width
		baseY := float64(row) / float64(rows) * height
		out = append(out, GalaxyPlacement{
			Transform: component.Transform{
				X: baseX + (rng.Float64()-0.5)*cfg.Jitter,
				Y: baseY + (rng.Float64()-0.5)*cfg.Jitter,
			},
			Sprite: component.GalaxySprite{
				Index:   i,
				Image:   img,
				Scale:   cfg.MinScale + rng.Float64()*cfg.ScaleJitter,
				Opacity: cfg.MinOpacity + rng.Float64()*cfg.OpacityJitter,
				Speed:   (rng.Float64() - 0.5) * cfg.SpeedRange,
			},
		})
	}
	return out
}

// BuildGalaxies replaces every galaxy sprite entity with the new placements.
func BuildGalaxies(w *ecs.World, placements []GalaxyPlacement) ([]ecs.Entity, error) {
	DestroyGalaxies(w)
	out := make([]ecs.Entity, 0, len(placements))
	for _, p := range placements {
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.TransformComponent, p.Transform); err != nil {
			return out, err
		}
		if err := ecs.Add(w, e, component.GalaxySpriteComponent, p.Sprite); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

// DestroyGalaxies removes every galaxy sprite entity.
func DestroyGalaxies(w *ecs.World) int {
	ents := w.Query(component.GalaxySpriteComponent.Kind())
	for _, e := range ents {
		w.DestroyEntity(e)
	}
	return len(ents)
}
