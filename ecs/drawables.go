package ecs

import (
	"github.com/milk9111/instanced/ecs/component"
	"github.com/milk9111/instanced/instance"
)

// Drawables returns one instance.Drawable per entity holding both Transform
// and Visual, in ascending entity order. Each value snapshots the entity's
// pose at call time.
func Drawables(w *World) []instance.Drawable {
	return AppendDrawables(nil, w)
}

// AppendDrawables is Drawables appending into dst.
func AppendDrawables(dst []instance.Drawable, w *World) []instance.Drawable {
	ForEach2(w, component.TransformComponent.Kind(), component.VisualComponent.Kind(), func(_ Entity, t *component.Transform, v *component.Visual) {
		if len(v.Parts) == 0 {
			return
		}
		dst = append(dst, instance.Body{
			Pose:       instance.Transform{X: t.X, Y: t.Y, Angle: t.Rotation},
			Components: v.Parts,
		})
	})
	return dst
}
