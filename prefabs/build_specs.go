package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type VisualPartSpec struct {
	Model    string  `yaml:"model"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type VisualComponentSpec struct {
	Parts []VisualPartSpec `yaml:"parts"`
}

type PhysicsBodyComponentSpec struct {
	Density         float64 `yaml:"density"`
	Friction        float64 `yaml:"friction"`
	Elasticity      float64 `yaml:"elasticity"`
	Static          bool    `yaml:"static"`
	VelocityX       float64 `yaml:"velocity_x"`
	VelocityY       float64 `yaml:"velocity_y"`
	AngularVelocity float64 `yaml:"angular_velocity"`
}

type ControllerComponentSpec struct {
	ForceGain  float64 `yaml:"force_gain"`
	TorqueGain float64 `yaml:"torque_gain"`
}

type SpinComponentSpec struct {
	Script string `yaml:"script"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}
