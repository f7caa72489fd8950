package ecs

import "github.com/milk9111/skyscape/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.AddComponent(e, handle.Kind().ID(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.Kind().ID())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.Kind().ID())
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.GetComponent(e, handle.Kind().ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// Singleton returns the value of the first entity carrying handle.
func Singleton[T any](w *World, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	e, ok := w.First(handle.Kind())
	if !ok {
		return zero, false
	}
	return Get(w, e, handle)
}

// ForEach calls fn for every entity carrying handle. Changes made through the
// pointer are written back after fn returns.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(handle.Kind()) {
		v, ok := Get(w, e, handle)
		if !ok {
			continue
		}
		fn(e, &v)
		if w.IsAlive(e) {
			_ = Add(w, e, handle, v)
		}
	}
}

// ForEach2 is ForEach over entities carrying both handles.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(e Entity, a *A, b *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ha.Kind(), hb.Kind()) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		if !okA || !okB {
			continue
		}
		fn(e, &a, &b)
		if w.IsAlive(e) {
			_ = Add(w, e, ha, a)
			_ = Add(w, e, hb, b)
		}
	}
}
