package ecs

import "github.com/milk9111/skyscape/ecs/component"

// First returns the first live entity carrying every kind. Singletons
// (transition, inputs, viewport) are looked up this way.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	if w == nil || len(kinds) == 0 {
		return 0, false
	}
	base, rest := w.smallest(kinds)
	if base == nil {
		return 0, false
	}
	for _, e := range base.Entities() {
		if w.hasAll(e, rest) {
			return e, true
		}
	}
	return 0, false
}

// Query returns every live entity carrying all of kinds, ordered by the dense
// order of the smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	base, rest := w.smallest(kinds)
	if base == nil {
		return nil
	}
	out := make([]Entity, 0, base.Len())
	for _, e := range base.Entities() {
		if w.hasAll(e, rest) {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) smallest(kinds []component.Kind) (*SparseSet, []*SparseSet) {
	sets := make([]*SparseSet, 0, len(kinds))
	bestIdx := -1
	for _, k := range kinds {
		set := w.stores[k.ID()]
		if set == nil {
			return nil, nil
		}
		sets = append(sets, set)
		if bestIdx < 0 || set.Len() < sets[bestIdx].Len() {
			bestIdx = len(sets) - 1
		}
	}
	base := sets[bestIdx]
	rest := append(sets[:bestIdx:bestIdx], sets[bestIdx+1:]...)
	return base, rest
}

func (w *World) hasAll(e Entity, sets []*SparseSet) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range sets {
		if !s.Has(e) {
			return false
		}
	}
	return true
}
