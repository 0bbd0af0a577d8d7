package prefabs

import (
	"fmt"

	"github.com/milk9111/instanced/instance"
)

// ModelSpec is one shape in models.yaml. Vertices are [x, y] pairs using the
// model colour, or [x, y, r, g, b] with a per-vertex colour in 0..1.
type ModelSpec struct {
	Name     string      `yaml:"name"`
	Topology string      `yaml:"topology"`
	Color    *YAMLColor  `yaml:"color"`
	Vertices [][]float32 `yaml:"vertices"`
}

type ModelsSpec struct {
	Models []ModelSpec `yaml:"models"`
}

// LoadRegistry builds the fixed model registry from a models file.
func LoadRegistry(filename string) (*instance.Registry, error) {
	spec, err := LoadSpec[ModelsSpec](filename)
	if err != nil {
		return nil, err
	}
	return spec.Registry()
}

// Registry converts the specs to models, in file order.
func (s ModelsSpec) Registry() (*instance.Registry, error) {
	models := make([]*instance.Model, 0, len(s.Models))
	for _, ms := range s.Models {
		m, err := ms.Model()
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	reg, err := instance.NewRegistry(models...)
	if err != nil {
		return nil, fmt.Errorf("prefabs: build registry: %w", err)
	}
	return reg, nil
}

func (s ModelSpec) Model() (*instance.Model, error) {
	topology, err := instance.ParseTopology(s.Topology)
	if err != nil {
		return nil, fmt.Errorf("prefabs: model %q: %w", s.Name, err)
	}
	r, g, b := float32(1), float32(1), float32(1)
	if s.Color != nil && s.Color.Color != nil {
		cr, cg, cb, _ := s.Color.RGBA()
		r, g, b = float32(cr)/0xffff, float32(cg)/0xffff, float32(cb)/0xffff
	}
	data := make([]float32, 0, len(s.Vertices)*instance.VertexStride)
	for i, v := range s.Vertices {
		switch len(v) {
		case 2:
			data = append(data, v[0], v[1], r, g, b)
		case 5:
			data = append(data, v...)
		default:
			return nil, fmt.Errorf("prefabs: model %q vertex %d: want 2 or 5 values, got %d", s.Name, i, len(v))
		}
	}
	m, err := instance.NewModel(s.Name, topology, data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: model %q: %w", s.Name, err)
	}
	return m, nil
}
