package instance

var (
	testTriangle = MustModel("triangle", TopologyTriangles, []float32{
		+0.0, +2.0, 1, 0, 0,
		-1.0, -1.0, 1, 0, 0,
		+1.0, -1.0, 1, 0, 0,
	})
	testSquareA = MustModel("square_a", TopologyTriangleFan, []float32{
		-0.5, -0.5, 0, 1, 0,
		+0.5, -0.5, 0, 1, 0,
		+0.5, +0.5, 0, 1, 0,
		-0.5, +0.5, 0, 1, 0,
	})
	testSquareB = MustModel("square_b", TopologyTriangleFan, []float32{
		-0.5, -0.5, 0, 1, 1,
		+0.5, -0.5, 0, 1, 1,
		+0.5, +0.5, 0, 1, 1,
		-0.5, +0.5, 0, 1, 1,
	})
)

const epsilon = 1e-5

func near(a, b float64) bool {
	d := a - b
	return d < epsilon && d > -epsilon
}

func nearTransform(a, b Transform) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Angle, b.Angle)
}
