package render

import (
	"errors"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/instanced/instance"
)

var (
	tri = instance.MustModel("triangle", instance.TopologyTriangles, []float32{
		0, 2, 1, 0, 0,
		-1, -1, 1, 0, 0,
		1, -1, 1, 0, 0,
	})
	square = instance.MustModel("square", instance.TopologyTriangleFan, []float32{
		-0.5, -0.5, 0, 1, 0,
		0.5, -0.5, 0, 1, 0,
		0.5, 0.5, 0, 1, 0,
		-0.5, 0.5, 0, 1, 0,
	})
)

func testLayout(t *testing.T) *instance.VertexLayout {
	t.Helper()
	reg, err := instance.NewRegistry(tri, square)
	if err != nil {
		t.Fatal(err)
	}
	return instance.NewVertexLayout(reg)
}

func TestTriangleIndices(t *testing.T) {
	tests := []struct {
		name  string
		model *instance.Model
		want  []int
	}{
		{"triangles", tri, []int{0, 1, 2}},
		{"fan", square, []int{0, 1, 2, 0, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TriangleIndices(tt.model)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestViewToScreen(t *testing.T) {
	v := View{CenterX: 1, CenterY: 1, Zoom: 10, Width: 200, Height: 100}
	tests := []struct {
		x, y   float64
		sx, sy float32
	}{
		{1, 1, 100, 50},
		{2, 1, 110, 50},
		{1, 2, 100, 40},
		{0, 0, 90, 60},
	}
	for _, tt := range tests {
		sx, sy := v.ToScreen(tt.x, tt.y)
		if sx != tt.sx || sy != tt.sy {
			t.Errorf("ToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, sx, sy, tt.sx, tt.sy)
		}
	}
}

func TestExpandRange(t *testing.T) {
	layout := testLayout(t)
	batch := instance.NewBatcher().Build([]instance.Drawable{
		instance.Body{Components: []instance.Component{
			{Model: square, Transform: instance.Transform{X: 1}},
			{Model: tri, Transform: instance.Transform{Angle: math.Pi}},
			{Model: square},
		}},
	})
	view := View{Zoom: 1}

	r, _ := batch.Range(square)
	vs, is, err := ExpandRange(nil, nil, layout, batch, r, view)
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 8 || len(is) != 12 {
		t.Fatalf("expected 8 vertices and 12 indices, got %d and %d", len(vs), len(is))
	}
	// The second instance's indices point at its own vertices.
	for _, idx := range is[6:] {
		if idx < 4 {
			t.Fatalf("second instance index %d points into the first", idx)
		}
	}
	// First corner of the square at x=1, y flipped onto screen.
	if vs[0].DstX != 0.5 || vs[0].DstY != 0.5 {
		t.Fatalf("unexpected first vertex (%v, %v)", vs[0].DstX, vs[0].DstY)
	}
	if vs[0].ColorG != 1 || vs[0].ColorR != 0 {
		t.Fatalf("vertex colour not carried: %+v", vs[0])
	}

	r, _ = batch.Range(tri)
	vs, _, err = ExpandRange(vs[:0], nil, layout, batch, r, view)
	if err != nil {
		t.Fatal(err)
	}
	// Apex (0, 2) rotated half a turn lands at (0, -2), screen y = 2.
	if math.Abs(float64(vs[0].DstX)) > 1e-5 || math.Abs(float64(vs[0].DstY)-2) > 1e-5 {
		t.Fatalf("unexpected rotated apex (%v, %v)", vs[0].DstX, vs[0].DstY)
	}
}

func TestExpandRangeUnregistered(t *testing.T) {
	layout := testLayout(t)
	stray := instance.MustModel("stray", instance.TopologyTriangles, []float32{0, 0, 1, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 1})
	batch := instance.NewBatcher().Build([]instance.Drawable{
		instance.Body{Components: []instance.Component{{Model: stray}}},
	})

	r, _ := batch.Range(stray)
	_, _, err := ExpandRange([]ebiten.Vertex{}, nil, layout, batch, r, View{Zoom: 1})
	if !errors.Is(err, instance.ErrUnregisteredModel) {
		t.Fatalf("expected ErrUnregisteredModel, got %v", err)
	}
}

func TestStatsString(t *testing.T) {
	s := Stats{Tick: 3, FPS: 59.9, Instances: 12, Models: 2, DrawCalls: 2}
	want := "tick 3  fps 60\ninstances 12  models 2  draws 2"
	if got := s.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	s.Debug = true
	if got := s.String(); got != want+"\nphysics debug (F1)" {
		t.Fatalf("debug line missing: %q", got)
	}
}

func TestViewOrthoMatchesToScreen(t *testing.T) {
	v := View{CenterX: 3, CenterY: -2, Zoom: 16, Width: 640, Height: 480}
	m := v.Ortho()
	points := [][2]float64{{3, -2}, {0, 0}, {10, 5}, {-7, 1.5}}
	for _, p := range points {
		cx := float64(m[0])*p[0] + float64(m[12])
		cy := float64(m[5])*p[1] + float64(m[13])
		// Clip space to pixels, y down.
		px := (cx + 1) / 2 * float64(v.Width)
		py := (1 - cy) / 2 * float64(v.Height)
		sx, sy := v.ToScreen(p[0], p[1])
		if math.Abs(px-float64(sx)) > 1e-3 || math.Abs(py-float64(sy)) > 1e-3 {
			t.Fatalf("point %v: ortho gives (%v, %v), ToScreen gives (%v, %v)", p, px, py, sx, sy)
		}
	}
}
