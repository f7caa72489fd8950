package entity

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/skyscape/ecs"
	"github.com/milk9111/skyscape/ecs/component"
)

// CloudPlacement is one cloud before it becomes an entity.
type CloudPlacement struct {
	Transform component.Transform
	Cloud     component.Cloud
}

// CloudColumns returns how many clouds go in each row for a surface width.
func CloudColumns(width float64, cfg component.CloudSettings) int {
	if cfg.Width <= 0 {
		return cfg.ExtraColumns
	}
	return int(math.Ceil(width/cfg.Width*cfg.ColumnDensity)) + cfg.ExtraColumns
}

// LayoutClouds lays clouds on a rows x columns grid. Each row is shifted by half
// a column per row index so the grid never lines up vertically, and reversed
// rows drift left.
func LayoutClouds(width, height float64, cfg component.CloudSettings, rng *rand.Rand) []CloudPlacement {
	rows := cfg.Rows
	cols := CloudColumns(width, cfg)
	if rows <= 0 || cols <= 0 || width <= 0 || height <= 0 {
		return nil
	}

	hSpacing := width / float64(cols)
	vSpacing := height / float64(rows)

	out := make([]CloudPlacement, 0, rows*cols)
	for row := 0; row < rows; row++ {
		rowOffset := math.Mod(float64(row)*hSpacing*0.5, hSpacing)
		reverse := cfg.Reversed(row)
		dir := 1.0
		if reverse {
			dir = -1
		}
		for col := 0; col < cols; col++ {
			speed := (cfg.MinSpeed + rng.Float64()*cfg.SpeedJitter) * cfg.SpeedFactor * dir
			out = append(out, CloudPlacement{
				Transform: component.Transform{
					X: float64(col)*hSpacing - cfg.Width/2 + rowOffset,
					Y: float64(row) * vSpacing,
				},
				Cloud: component.Cloud{
					Row:     row,
					Col:     col,
					Speed:   speed,
					Scale:   1,
					Reverse: reverse,
				},
			})
		}
	}
	return out
}

// BuildClouds spawns one entity per placement.
func BuildClouds(w *ecs.World, placements []CloudPlacement) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(placements))
	for _, p := range placements {
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.TransformComponent, p.Transform); err != nil {
			return out, err
		}
		if err := ecs.Add(w, e, component.CloudComponent, p.Cloud); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

// DestroyClouds removes every cloud entity.
func DestroyClouds(w *ecs.World) int {
	ents := w.Query(component.CloudComponent.Kind())
	for _, e := range ents {
		w.DestroyEntity(e)
	}
	return len(ents)
}
