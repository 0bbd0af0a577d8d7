package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/instanced/ecs/component"
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
					t.Fatalf("second DestroyEntity should return false")
				}
				if w.Len() != c.create-1 {
					t.Fatalf("expected %d live entities, got %d", c.create-1, w.Len())
				}
			}
		})
	}
}

func TestRecycledIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	if err := Add(w, old, h, 1); err != nil {
		t.Fatal(err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %v after %v", fresh, old)
	}
	if fresh == old {
		t.Fatalf("recycled entity kept its generation")
	}
	if Has(w, fresh, h) {
		t.Fatalf("recycled entity inherited a component")
	}
	if err := Add(w, old, h, 2); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_and_get",
			setup: func() error { return Add(w, e1, h1, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "write_through_pointer",
			setup: func() error {
				v, ok := Get(w, e1, h1)
				if !ok {
					return errors.New("missing")
				}
				*v = 11
				return nil
			},
			check: func(t *testing.T) {
				if v, _ := Get(w, e1, h1); *v != 11 {
					t.Fatalf("expected 11, got %d", *v)
				}
			},
		},
		{
			name: "query_intersection",
			setup: func() error {
				if err := Add(w, e2, h1, 20); err != nil {
					return err
				}
				if err := Add(w, e2, h2, "b"); err != nil {
					return err
				}
				return Add(w, e3, h2, "c")
			},
			check: func(t *testing.T) {
				got := w.Query(h1.Kind(), h2.Kind())
				if len(got) != 1 || got[0] != e2 {
					t.Fatalf("expected only e2, got %v", got)
				}
				if first, ok := w.First(h2.Kind()); !ok || first != e2 {
					t.Fatalf("expected First to return e2, got %v", first)
				}
			},
		},
		{
			name: "remove",
			setup: func() error {
				if !Remove(w, e2, h2) {
					return errors.New("remove failed")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e2, h2) {
					t.Fatalf("e2 still has string component")
				}
				if got := w.Query(h2.Kind()); len(got) != 1 || got[0] != e3 {
					t.Fatalf("expected only e3, got %v", got)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestQueryOrderIsStable(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	var ents []Entity
	for i := 0; i < 6; i++ {
		ents = append(ents, w.CreateEntity())
	}
	// add in reverse so the dense order differs from id order
	for i := len(ents) - 1; i >= 0; i-- {
		if err := Add(w, ents[i], h, i); err != nil {
			t.Fatal(err)
		}
	}
	Remove(w, ents[4], h)

	var seen []int
	ForEach(w, h.Kind(), func(_ Entity, v *int) { seen = append(seen, *v) })
	want := []int{0, 1, 2, 3, 5}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := w.CreateEntity()
				e2 := w.CreateEntity()

				ka := component.NewComponent[int]()
				kb := component.NewComponent[float64]()
				kc := component.NewComponent[string]()

				_ = Add(w, e1, ka, 1)
				_ = Add(w, e2, ka, 2)
				_ = Add(w, e2, kb, 3.5)
				_ = Add(w, e2, kc, "x")

				var res []Entity
				ForEach3(w, ka.Kind(), kb.Kind(), kc.Kind(), func(e Entity, a *int, b *float64, c *string) {
					if *a != 2 || *b != 3.5 || *c != "x" {
						t.Fatalf("unexpected values %d %v %q", *a, *b, *c)
					}
					res = append(res, e)
				})
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := w.CreateEntity()

				ka := component.NewComponent[int]()
				kb := component.NewComponent[int]()
				kc := component.NewComponent[int]()

				_ = Add(w, e, ka, 1)
				_ = Add(w, e, kb, 2)
				_ = Add(w, e, kc, 3)

				if !w.DestroyEntity(e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka.Kind(), kb.Kind(), kc.Kind(), func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := w.CreateEntity()

				ka := component.NewComponent[int]()
				kb := component.NewComponent[int]()
				kc := component.NewComponent[int]()

				_ = Add(w, e, ka, 1)

				var res []Entity
				ForEach3(w, ka.Kind(), kb.Kind(), kc.Kind(), func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

type countingSystem struct {
	calls *[]string
	name  string
}

func (s countingSystem) Update(w *World) {
	*s.calls = append(*s.calls, s.name)
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var calls []string
	s := NewScheduler(countingSystem{&calls, "a"}, nil, countingSystem{&calls, "b"})
	s.Add(countingSystem{&calls, "c"})
	s.Update(NewWorld())
	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Fatalf("unexpected order %v", calls)
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("nil system should be skipped")
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventToggleDebug})
	w.Events().Push(Event{Type: EventBodyRemoved, Data: 3})
	got := w.Events().Drain()
	if len(got) != 2 || got[0].Type != EventToggleDebug || got[1].Data != 3 {
		t.Fatalf("unexpected events %v", got)
	}
	if w.Events().Drain() != nil {
		t.Fatalf("queue not cleared")
	}
}
