package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
	"github.com/milk9111/instanced/instance"
	"github.com/milk9111/instanced/prefabs"
)

type buildContext struct {
	PrefabPath string
	Models     *instance.Registry
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"drifter_tag":  addDrifterTag,
	"input":        addInput,
	"transform":    addTransform,
	"visual":       addVisual,
	"physics_body": addPhysicsBody,
	"controller":   addController,
	"spin":         addSpin,
	"camera":       addCamera,
}

// visual must precede physics_body: body shapes are built from visual parts.
var componentBuildOrder = []string{
	"player_tag",
	"drifter_tag",
	"input",
	"transform",
	"visual",
	"physics_body",
	"controller",
	"spin",
	"camera",
}

// BuildEntity creates an entity from a prefab file. Visual parts must name
// models in reg; an unknown model fails the build and leaves no entity behind.
func BuildEntity(w *ecs.World, reg *instance.Registry, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, reg, prefabPath, spec)
}

func BuildEntityFromSpec(w *ecs.World, reg *instance.Registry, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := w.CreateEntity()
	ctx := &buildContext{PrefabPath: prefabPath, Models: reg}

	names := make([]string, 0, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityTransform places an entity, creating its Transform if needed.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	return ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y, Rotation: rotation})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{})
}

func addDrifterTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.DrifterTagComponent, component.DrifterTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent, component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return SetEntityTransform(w, e, spec.X, spec.Y, spec.Rotation)
}

func addVisual(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VisualComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode visual spec: %w", err)
	}
	parts := make([]instance.Component, 0, len(spec.Parts))
	for i, p := range spec.Parts {
		m, ok := ctx.Models.Lookup(p.Model)
		if !ok {
			return fmt.Errorf("part %d: %w: %q", i, instance.ErrUnregisteredModel, p.Model)
		}
		parts = append(parts, instance.Component{
			Model:     m,
			Transform: instance.Transform{X: p.X, Y: p.Y, Angle: p.Rotation},
		})
	}
	return ecs.Add(w, e, component.VisualComponent, component.Visual{Parts: parts})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if !ecs.Has(w, e, component.VisualComponent) {
		return fmt.Errorf("physics_body requires visual on the same entity")
	}
	density := spec.Density
	if density <= 0 {
		density = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Density:         density,
		Friction:        spec.Friction,
		Elasticity:      spec.Elasticity,
		Static:          spec.Static,
		VelocityX:       spec.VelocityX,
		VelocityY:       spec.VelocityY,
		AngularVelocity: spec.AngularVelocity,
	})
}

func addController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode controller spec: %w", err)
	}
	return ecs.Add(w, e, component.ControllerComponent, component.Controller{
		ForceGain:  spec.ForceGain,
		TorqueGain: spec.TorqueGain,
	})
}

func addSpin(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpinComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spin spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("spin requires a script")
	}
	return ecs.Add(w, e, component.SpinComponent, component.Spin{ScriptPath: spec.Script})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraComponent, component.Camera{
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}
