package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
	"github.com/milk9111/instanced/instance"
	"github.com/milk9111/instanced/prefabs"
)

// SceneOptions overrides scene file values. A zero Seed keeps the file's;
// OverrideCount replaces every group's count with DrifterCount.
type SceneOptions struct {
	Seed          int64
	DrifterCount  int
	OverrideCount bool
}

// Scene is what SpawnScene created.
type Scene struct {
	Player   ecs.Entity
	Drifters []ecs.Entity
}

// SpawnScene builds the player and every drifter group into w. Drifters get
// a random pose within their group's spread; the same seed always yields the
// same layout.
func SpawnScene(w *ecs.World, reg *instance.Registry, spec *prefabs.SceneSpec, opts SceneOptions) (Scene, error) {
	var scene Scene
	if spec == nil {
		return scene, fmt.Errorf("spawn scene: spec is nil")
	}

	seed := spec.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	if spec.Player != "" {
		player, err := BuildEntity(w, reg, spec.Player)
		if err != nil {
			return scene, fmt.Errorf("spawn scene %q: player: %w", spec.Name, err)
		}
		if cam, ok := ecs.Get(w, player, component.CameraComponent); ok {
			if cam.Zoom <= 0 {
				cam.Zoom = spec.Camera.Zoom
			}
			if cam.Smoothness <= 0 {
				cam.Smoothness = spec.Camera.Smoothness
			}
		}
		scene.Player = player
	}

	index := 0
	for _, group := range spec.Drifters {
		count := group.Count
		if opts.OverrideCount {
			count = opts.DrifterCount
		}
		if count <= 0 {
			continue
		}

		prefab, err := prefabs.LoadEntityBuildSpec(group.Prefab)
		if err != nil {
			return scene, fmt.Errorf("spawn scene %q: load %q: %w", spec.Name, group.Prefab, err)
		}
		for i := 0; i < count; i++ {
			e, err := BuildEntityFromSpec(w, reg, group.Prefab, prefab)
			if err != nil {
				return scene, fmt.Errorf("spawn scene %q: drifter %d: %w", spec.Name, index, err)
			}
			x := (rng.Float64()*2 - 1) * group.Spread
			y := (rng.Float64()*2 - 1) * group.Spread
			angle := rng.Float64() * 2 * math.Pi
			if err := SetEntityTransform(w, e, x, y, angle); err != nil {
				return scene, err
			}
			if spin, ok := ecs.Get(w, e, component.SpinComponent); ok {
				spin.Index = index + 1
			}
			scene.Drifters = append(scene.Drifters, e)
			index++
		}
	}

	return scene, nil
}

// Clear destroys every entity in w.
func Clear(w *ecs.World) {
	for _, e := range w.Entities() {
		w.DestroyEntity(e)
	}
}
