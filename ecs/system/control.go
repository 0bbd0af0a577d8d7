package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
)

// ControlSystem pushes controlled bodies with their input. Chipmunk clears
// forces after every step, so this must run before PhysicsSystem each tick.
type ControlSystem struct{}

func NewControlSystem() *ControlSystem {
	return &ControlSystem{}
}

func (c *ControlSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.InputComponent.Kind(),
		component.ControllerComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(_ ecs.Entity, input *component.Input, ctrl *component.Controller, body *component.PhysicsBody) {
			if body.Body == nil || body.Static {
				return
			}
			if input.MoveX == 0 && input.MoveY == 0 && input.Turn == 0 {
				return
			}
			force := cp.Vector{X: input.MoveX * ctrl.ForceGain, Y: input.MoveY * ctrl.ForceGain}
			body.Body.SetForce(body.Body.Force().Add(force))
			body.Body.SetTorque(body.Body.Torque() + input.Turn*ctrl.TorqueGain)
		})
}
