package ecs

import (
	"testing"

	"github.com/milk9111/skyscape/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("destroying twice should return false")
				}
				if len(w.Entities()) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(w.Entities()))
				}
			}
		})
	}
}

func TestStaleHandleAfterRecycle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	if err := Add(w, old, h, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be recycled, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled handle must differ by generation")
	}
	if w.IsAlive(old) {
		t.Fatalf("stale handle reported alive")
	}
	if Has(w, fresh, h) {
		t.Fatalf("recycled entity inherited a component")
	}
	if err := Add(w, old, h, 2); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	hInt := component.NewComponent[int]()
	hStr := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hInt, 42) },
			check: func(t *testing.T) {
				if v, ok := Get(w, e1, hInt); !ok || v != 42 {
					t.Fatalf("expected 42, got %v (ok=%v)", v, ok)
				}
				if Has(w, e2, hInt) {
					t.Fatalf("e2 should not have int")
				}
			},
		},
		{
			name:  "replace_int_on_e1",
			setup: func() error { return Add(w, e1, hInt, 7) },
			check: func(t *testing.T) {
				if v, _ := Get(w, e1, hInt); v != 7 {
					t.Fatalf("expected replaced value 7, got %v", v)
				}
			},
		},
		{
			name:  "add_string_to_both",
			setup: func() error {
				if err := Add(w, e1, hStr, "a"); err != nil {
					return err
				}
				return Add(w, e2, hStr, "b")
			},
			check: func(t *testing.T) {
				got := w.Query(hInt.Kind(), hStr.Kind())
				if len(got) != 1 || got[0] != e1 {
					t.Fatalf("expected only e1 to carry int+string, got %v", got)
				}
				if len(w.Query(hStr.Kind())) != 2 {
					t.Fatalf("expected two string carriers")
				}
			},
		},
		{
			name: "remove_string_from_e1",
			setup: func() error {
				if !Remove(w, e1, hStr) {
					t.Fatalf("remove should report true")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e1, hStr) {
					t.Fatalf("e1 still has string")
				}
				if v, ok := Get(w, e2, hStr); !ok || v != "b" {
					t.Fatalf("e2 string lost after swap-remove: %q", v)
				}
				if _, ok := w.First(hInt.Kind(), hStr.Kind()); ok {
					t.Fatalf("no entity should carry both")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.setup(); err != nil {
				t.Fatalf("setup: %v", err)
			}
			tt.check(t)
		})
	}
}

func TestAddComponentErrors(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	if err := w.AddComponent(e, 0, 1); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := w.AddComponent(e, component.NewComponent[int]().Kind().ID(), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := w.AddComponent(Entity(0), component.NewComponent[int]().Kind().ID(), 1); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestSingletonAndForEach(t *testing.T) {
	w := NewWorld()
	hPos := component.NewComponent[float64]()
	hVel := component.NewComponent[int]()

	if _, ok := Singleton(w, hPos); ok {
		t.Fatalf("empty world has no singleton")
	}

	var ents []Entity
	for i := 0; i < 3; i++ {
		e := w.CreateEntity()
		_ = Add(w, e, hPos, float64(i))
		if i != 1 {
			_ = Add(w, e, hVel, 10)
		}
		ents = append(ents, e)
	}

	if v, ok := Singleton(w, hPos); !ok || v != 0 {
		t.Fatalf("expected first position 0, got %v", v)
	}

	ForEach2(w, hPos, hVel, func(_ Entity, p *float64, v *int) {
		*p += float64(*v)
	})
	want := []float64{10, 1, 12}
	for i, e := range ents {
		if got, _ := Get(w, e, hPos); got != want[i] {
			t.Fatalf("entity %d: expected %v, got %v", i, want[i], got)
		}
	}

	count := 0
	ForEach(w, hPos, func(e Entity, p *float64) {
		count++
		*p = 0
	})
	if count != 3 {
		t.Fatalf("expected 3 visits, got %d", count)
	}
	for _, e := range ents {
		if got, _ := Get(w, e, hPos); got != 0 {
			t.Fatalf("ForEach write-back missing: %v", got)
		}
	}
}

func TestClearAndEvents(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := w.CreateEntity()
	_ = Add(w, e, h, 1)
	w.Events().Push(Event{Type: EventLayoutGenerated})

	if evts := w.Events().Drain(); len(evts) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evts))
	}
	if evts := w.Events().Drain(); evts != nil {
		t.Fatalf("drain should empty the queue")
	}

	w.Events().Push(Event{Type: EventTransitionStarted})
	w.Clear()
	if len(w.Entities()) != 0 {
		t.Fatalf("clear left entities behind")
	}
	if len(w.Query(h.Kind())) != 0 {
		t.Fatalf("clear left components behind")
	}
	if evts := w.Events().Drain(); evts != nil {
		t.Fatalf("clear left events behind")
	}
}

type countingSystem struct{ n *int }

func (s countingSystem) Update(w *World) { *s.n++ }

func TestSchedulerSkipsNilAndIgnoresNilWorld(t *testing.T) {
	a, b := 0, 0
	s := NewScheduler(countingSystem{&a}, nil, countingSystem{&b})
	s.Add(nil)
	if len(s.Systems()) != 2 {
		t.Fatalf("nil systems should be skipped, got %d", len(s.Systems()))
	}
	s.Update(NewWorld())
	s.Update(nil)
	if a != 1 || b != 1 {
		t.Fatalf("expected each system to run once, got %d and %d", a, b)
	}
}
