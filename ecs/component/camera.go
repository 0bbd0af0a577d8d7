package component

// Camera follows its entity. X and Y are the smoothed view centre in world
// units and are owned by the camera system.
type Camera struct {
	// Zoom is screen pixels per world unit.
	Zoom       float64
	Smoothness float64

	X, Y float64
}

var CameraComponent = NewComponent[Camera]()
