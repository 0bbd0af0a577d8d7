package instance

import (
	"errors"
	"fmt"
)

// VertexStride is the number of floats per vertex: x, y, r, g, b.
const VertexStride = 5

// Topology tells a renderer how to assemble a model's vertices.
type Topology int

const (
	TopologyTriangles Topology = iota + 1
	TopologyTriangleFan
)

func (t Topology) String() string {
	switch t {
	case TopologyTriangles:
		return "triangles"
	case TopologyTriangleFan:
		return "triangle_fan"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// ParseTopology maps a prefab topology name to a Topology.
func ParseTopology(name string) (Topology, error) {
	switch name {
	case "triangles", "":
		return TopologyTriangles, nil
	case "triangle_fan", "fan":
		return TopologyTriangleFan, nil
	default:
		return 0, fmt.Errorf("%w: unknown topology %q", ErrInvalidModel, name)
	}
}

var (
	ErrInvalidModel      = errors.New("instance: invalid model")
	ErrDuplicateModel    = errors.New("instance: duplicate model")
	ErrUnregisteredModel = errors.New("instance: unregistered model")
)

// Model is an immutable shape shared by every instance drawn with it.
type Model struct {
	name     string
	topology Topology
	vertices []float32
}

// NewModel copies vertexData, which must hold VertexStride floats per vertex.
func NewModel(name string, topology Topology, vertexData []float32) (*Model, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidModel)
	}
	if topology != TopologyTriangles && topology != TopologyTriangleFan {
		return nil, fmt.Errorf("%w: model %q: %v", ErrInvalidModel, name, topology)
	}
	if len(vertexData) == 0 || len(vertexData)%VertexStride != 0 {
		return nil, fmt.Errorf("%w: model %q: %d floats is not a multiple of %d", ErrInvalidModel, name, len(vertexData), VertexStride)
	}
	n := len(vertexData) / VertexStride
	if topology == TopologyTriangles && n%3 != 0 {
		return nil, fmt.Errorf("%w: model %q: %d vertices do not form triangles", ErrInvalidModel, name, n)
	}
	if topology == TopologyTriangleFan && n < 3 {
		return nil, fmt.Errorf("%w: model %q: fan needs at least 3 vertices", ErrInvalidModel, name)
	}
	return &Model{
		name:     name,
		topology: topology,
		vertices: append([]float32(nil), vertexData...),
	}, nil
}

// MustModel is NewModel for static tables. It panics on invalid data.
func MustModel(name string, topology Topology, vertexData []float32) *Model {
	m, err := NewModel(name, topology, vertexData)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) Name() string       { return m.name }
func (m *Model) Topology() Topology { return m.topology }

// VertexCount returns the number of vertices in the model.
func (m *Model) VertexCount() int {
	return len(m.vertices) / VertexStride
}

// VertexData returns a copy of the raw attribute array.
func (m *Model) VertexData() []float32 {
	return append([]float32(nil), m.vertices...)
}

// Position returns the local position of vertex i.
func (m *Model) Position(i int) (x, y float64) {
	base := i * VertexStride
	return float64(m.vertices[base]), float64(m.vertices[base+1])
}

// Color returns the colour of vertex i.
func (m *Model) Color(i int) (r, g, b float32) {
	base := i * VertexStride
	return m.vertices[base+2], m.vertices[base+3], m.vertices[base+4]
}

func (m *Model) String() string {
	if m == nil {
		return "<nil model>"
	}
	return m.name
}
