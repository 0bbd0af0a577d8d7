package component

import "github.com/milk9111/instanced/instance"

// Visual lists the models drawn for an entity, each placed relative to the
// entity's Transform.
type Visual struct {
	Parts []instance.Component
}

var VisualComponent = NewComponent[Visual]()
