package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes what the demo spawns.
type SceneSpec struct {
	Name     string  `yaml:"name"`
	Seed     int64   `yaml:"seed"`
	TickRate int     `yaml:"tick_rate"`
	Damping  float64 `yaml:"damping"`
	Player   string  `yaml:"player"`
	Drifters []struct {
		Prefab string  `yaml:"prefab"`
		Count  int     `yaml:"count"`
		Spread float64 `yaml:"spread"`
	} `yaml:"drifters"`
	Camera struct {
		Zoom       float64 `yaml:"zoom"`
		Smoothness float64 `yaml:"smoothness"`
	} `yaml:"camera"`
	Background *YAMLColor `yaml:"background"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.TickRate <= 0 {
		spec.TickRate = 60
	}
	if spec.Camera.Zoom <= 0 {
		spec.Camera.Zoom = 32
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	nrgba, err := parseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = nrgba
	return nil
}

func parseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(v, "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
