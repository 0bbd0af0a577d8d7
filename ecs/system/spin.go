package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
	"github.com/milk9111/instanced/prefabs"
)

// SpinSystem evaluates each Spin entity's motion script once per tick. The
// script sees index, tick and angle and must set velocity in radians per
// second.
type SpinSystem struct {
	dt      float64
	tick    int
	scripts map[string]*tengo.Compiled
	// broken holds load and compile errors until Reload.
	broken  map[string]error
	failed  map[string]bool
}

func NewSpinSystem(dt float64) *SpinSystem {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	return &SpinSystem{
		dt:      dt,
		scripts: make(map[string]*tengo.Compiled),
		broken:  make(map[string]error),
		failed:  make(map[string]bool),
	}
}

// Reload forgets compiled scripts so edited files are picked up.
func (s *SpinSystem) Reload() {
	s.scripts = make(map[string]*tengo.Compiled)
	s.broken = make(map[string]error)
	s.failed = make(map[string]bool)
}

func (s *SpinSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.tick++

	ecs.ForEach2(w, component.SpinComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, spin *component.Spin, transform *component.Transform) {
		body, hasBody := ecs.Get(w, e, component.PhysicsBodyComponent)
		dynamic := hasBody && body.Body != nil && !body.Static

		rate, err := s.eval(spin, transform.Rotation)
		if err != nil {
			if !s.failed[spin.ScriptPath] {
				log.Printf("spin: entity=%v script %s: %v", e, spin.ScriptPath, err)
				s.failed[spin.ScriptPath] = true
			}
			// The body keeps whatever velocity physics gave it.
			if dynamic {
				return
			}
		} else {
			spin.Rate = rate
		}

		if dynamic {
			body.Body.SetAngularVelocity(spin.Rate)
			return
		}
		transform.Rotation += spin.Rate * s.dt
	})
}

func (s *SpinSystem) eval(spin *component.Spin, angle float64) (float64, error) {
	compiled, err := s.compiled(spin.ScriptPath)
	if err != nil {
		return 0, err
	}

	run := compiled.Clone()
	if err := run.Set("index", spin.Index); err != nil {
		return 0, err
	}
	if err := run.Set("tick", s.tick); err != nil {
		return 0, err
	}
	if err := run.Set("angle", angle); err != nil {
		return 0, err
	}
	if err := run.Run(); err != nil {
		return 0, err
	}
	if !run.IsDefined("velocity") {
		return 0, fmt.Errorf("script does not define velocity")
	}
	return run.Get("velocity").Float(), nil
}

func (s *SpinSystem) compiled(path string) (*tengo.Compiled, error) {
	if c, ok := s.scripts[path]; ok {
		return c, nil
	}
	if err, ok := s.broken[path]; ok {
		return nil, err
	}

	src, err := prefabs.LoadScript(path)
	if err != nil {
		s.broken[path] = err
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("index", 0)
	_ = script.Add("tick", 0)
	_ = script.Add("angle", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		err = fmt.Errorf("compile: %w", err)
		s.broken[path] = err
		return nil, err
	}
	s.scripts[path] = compiled
	return compiled, nil
}
