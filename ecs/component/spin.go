package component

// Spin drives an entity's angular velocity from a motion script.
type Spin struct {
	ScriptPath string
	// Index is passed to the script so entities can spin at different rates.
	Index int
	// Rate is the last angular velocity the script returned.
	Rate float64
}

var SpinComponent = NewComponent[Spin]()
