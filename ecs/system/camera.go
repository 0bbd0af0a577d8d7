package system

import (
	"github.com/milk9111/instanced/common"
	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
)

// CameraSystem eases each camera toward its entity's position.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, cam *component.Camera, t *component.Transform) {
		s := cam.Smoothness
		if s <= 0 || s > 1 {
			s = 1
		}
		cam.X = common.Lerp(cam.X, t.X, s)
		cam.Y = common.Lerp(cam.Y, t.Y, s)
	})
}
