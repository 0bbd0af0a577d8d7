package component

// Controller turns Input into forces on the entity's physics body.
type Controller struct {
	ForceGain  float64
	TorqueGain float64
}

var ControllerComponent = NewComponent[Controller]()
