package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/instanced/instance"
	"gopkg.in/yaml.v3"
)

func TestLoadRegistryEmbedded(t *testing.T) {
	reg, err := LoadRegistry("models.yaml")
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	want := []string{"triangle", "square", "square_teal", "dart"}
	models := reg.Models()
	if len(models) != len(want) {
		t.Fatalf("expected %d models, got %d", len(want), len(models))
	}
	for i, name := range want {
		if models[i].Name() != name {
			t.Fatalf("model %d: got %q, want %q", i, models[i].Name(), name)
		}
	}

	square := reg.MustLookup("square")
	if square.Topology() != instance.TopologyTriangleFan || square.VertexCount() != 4 {
		t.Fatalf("unexpected square %v", square)
	}
	if r, g, b := square.Color(0); r != 0 || g != 1 || b != 0 {
		t.Fatalf("expected green square, got (%v, %v, %v)", r, g, b)
	}
	if r, _, _ := reg.MustLookup("dart").Color(0); r != 1 {
		t.Fatalf("expected per-vertex colour on dart, got r=%v", r)
	}
}

func TestModelSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		spec ModelSpec
		want error
	}{
		{
			name: "bad topology",
			spec: ModelSpec{Name: "x", Topology: "strip", Vertices: [][]float32{{0, 0}, {1, 0}, {0, 1}}},
			want: instance.ErrInvalidModel,
		},
		{
			name: "short vertex",
			spec: ModelSpec{Name: "x", Vertices: [][]float32{{0}}},
		},
		{
			name: "not a triangle list",
			spec: ModelSpec{Name: "x", Vertices: [][]float32{{0, 0}, {1, 0}}},
			want: instance.ErrInvalidModel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.Model()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestModelsSpecDuplicate(t *testing.T) {
	tri := ModelSpec{Name: "tri", Vertices: [][]float32{{0, 0}, {1, 0}, {0, 1}}}
	_, err := ModelsSpec{Models: []ModelSpec{tri, tri}}.Registry()
	if !errors.Is(err, instance.ErrDuplicateModel) {
		t.Fatalf("expected ErrDuplicateModel, got %v", err)
	}
}

func TestLoadSceneSpec(t *testing.T) {
	scene, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	if scene.Player != "player.yaml" || len(scene.Drifters) != 2 {
		t.Fatalf("unexpected scene %+v", scene)
	}
	if scene.Drifters[0].Count != 10 || scene.Drifters[0].Spread != 10 {
		t.Fatalf("unexpected drifter group %+v", scene.Drifters[0])
	}
	want := color.NRGBA{R: 0x00, G: 0x54, B: 0xa8, A: 0xff}
	if scene.Background == nil || scene.Background.Color != want {
		t.Fatalf("unexpected background %v", scene.Background)
	}
}

func TestSceneDefaults(t *testing.T) {
	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })

	if err := os.WriteFile(filepath.Join(dir, "bare.yaml"), []byte("name: bare\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	scene, err := LoadSceneSpec("bare.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	if scene.TickRate != 60 || scene.Camera.Zoom != 32 {
		t.Fatalf("defaults not applied: %+v", scene)
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })

	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "steady.tengo"), []byte("velocity := 2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadScript("steady.tengo")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "velocity := 2.0\n" {
		t.Fatalf("expected on-disk script, got %q", got)
	}

	// Files missing on disk fall back to the embedded copy.
	if _, err := Load("player.yaml"); err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff8000"`, want: color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
		{in: `"00ff0080"`, want: color.NRGBA{R: 0x00, G: 0xff, B: 0x00, A: 0x80}},
		{in: `"#fff"`, wantErr: true},
		{in: `[1, 2, 3]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if c.Color != tt.want {
				t.Fatalf("got %v, want %v", c.Color, tt.want)
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("pinwheel.yaml")
	if err != nil {
		t.Fatal(err)
	}
	visual, err := DecodeComponentSpec[VisualComponentSpec](spec.Components["visual"])
	if err != nil {
		t.Fatal(err)
	}
	if len(visual.Parts) != 3 || visual.Parts[1].Model != "square_teal" || visual.Parts[1].X != -0.5 {
		t.Fatalf("unexpected visual %+v", visual)
	}
	spin, err := DecodeComponentSpec[SpinComponentSpec](spec.Components["spin"])
	if err != nil || spin.Script != "spin.tengo" {
		t.Fatalf("unexpected spin %+v (%v)", spin, err)
	}
	empty, err := DecodeComponentSpec[TransformComponentSpec](nil)
	if err != nil || empty != (TransformComponentSpec{}) {
		t.Fatalf("nil spec should decode to zero value, got %+v (%v)", empty, err)
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(target, []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("expected event for %s, got %s", target, name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal("second close should be a no-op")
	}
}
