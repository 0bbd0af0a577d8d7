package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and body configuration.
// Shapes are derived from the entity's Visual parts.
type PhysicsBody struct {
	Body       *cp.Body
	Shapes     []*cp.Shape
	Density    float64
	Friction   float64
	Elasticity float64
	Static     bool

	VelocityX       float64
	VelocityY       float64
	AngularVelocity float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
