package system

import (
	"math"
	"testing"

	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
	"github.com/milk9111/instanced/instance"
)

func TestBatchSystemRebuildsEachTick(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: 1})
	_ = ecs.Add(w, e, component.VisualComponent, component.Visual{Parts: []instance.Component{
		{Model: testSquare},
		{Model: testTriangle},
		{Model: testSquare, Transform: instance.Transform{X: 1}},
	}})

	bs := NewBatchSystem()
	if bs.Latest() != nil {
		t.Fatal("expected no batch before the first update")
	}
	bs.Update(w)
	first := bs.Latest()
	if first.Instances() != 3 {
		t.Fatalf("expected 3 instances, got %d", first.Instances())
	}
	r, ok := first.Range(testSquare)
	if !ok || r.BaseOffset != 0 || r.Count != 2 {
		t.Fatalf("unexpected square range %+v", r)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	tr.X = 10
	bs.Update(w)
	second := bs.Latest()
	if first == second {
		t.Fatal("expected a fresh batch")
	}
	if got := first.Transforms(testTriangle)[0].X; got != 1 {
		t.Fatalf("previous batch changed: triangle x=%v", got)
	}
	if got := second.Transforms(testTriangle)[0].X; got != 10 {
		t.Fatalf("expected triangle x=10, got %v", got)
	}
}

func TestBatchSystemAfterPhysics(t *testing.T) {
	w := ecs.NewWorld()
	spawnBody(t, w, component.Transform{}, component.PhysicsBody{Density: 1, AngularVelocity: math.Pi},
		instance.Component{Model: testSquare, Transform: instance.Transform{X: 1}},
	)
	ps := NewPhysicsSystem(0.5, 1)
	bs := NewBatchSystem()

	ps.Update(w)
	bs.Update(w)

	got := bs.Latest().Transforms(testSquare)[0]
	// A quarter turn carries the part from +x to +y.
	if math.Abs(got.X) > 1e-5 || math.Abs(got.Y-1) > 1e-5 || math.Abs(got.Angle-math.Pi/2) > 1e-5 {
		t.Fatalf("unexpected world transform %+v", got)
	}
}

func TestCameraSystemEases(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: 10, Y: -4})
	_ = ecs.Add(w, e, component.CameraComponent, component.Camera{Zoom: 32, Smoothness: 0.5})

	cs := NewCameraSystem()
	cs.Update(w)
	cam, _ := ecs.Get(w, e, component.CameraComponent)
	if cam.X != 5 || cam.Y != -2 {
		t.Fatalf("expected half way, got (%v, %v)", cam.X, cam.Y)
	}
	cs.Update(w)
	if cam.X != 7.5 || cam.Y != -3 {
		t.Fatalf("expected three quarters, got (%v, %v)", cam.X, cam.Y)
	}
}
