package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/instanced/instance"
)

// maxVerticesPerDraw bounds one DrawTriangles call; indices are uint16.
const maxVerticesPerDraw = math.MaxUint16 + 1

// View maps world units (y up) to screen pixels (y down).
type View struct {
	CenterX, CenterY float64
	Zoom             float64
	Width, Height    int
}

func (v View) ToScreen(x, y float64) (float32, float32) {
	sx := (x-v.CenterX)*v.Zoom + float64(v.Width)/2
	sy := float64(v.Height)/2 - (y-v.CenterY)*v.Zoom
	return float32(sx), float32(sy)
}

// Ortho returns the column-major matrix taking world units to clip space for
// this view.
func (v View) Ortho() [16]float32 {
	sx, sy := 1.0, 1.0
	if v.Width > 0 && v.Height > 0 {
		sx = 2 * v.Zoom / float64(v.Width)
		sy = 2 * v.Zoom / float64(v.Height)
	}
	return [16]float32{
		float32(sx), 0, 0, 0,
		0, float32(sy), 0, 0,
		0, 0, -1, 0,
		float32(-v.CenterX * sx), float32(-v.CenterY * sy), 0, 1,
	}
}

// TriangleIndices lists m's vertices as independent triangles. Fans become
// (0, i, i+1) triples.
func TriangleIndices(m *instance.Model) []int {
	n := m.VertexCount()
	switch m.Topology() {
	case instance.TopologyTriangleFan:
		out := make([]int, 0, (n-2)*3)
		for i := 1; i+1 < n; i++ {
			out = append(out, 0, i, i+1)
		}
		return out
	default:
		out := make([]int, n-n%3)
		for i := range out {
			out[i] = i
		}
		return out
	}
}

// appendInstance writes one instance of a model into vs and is. data holds
// the model's vertices, instance.VertexStride floats each.
func appendInstance(vs []ebiten.Vertex, is []uint16, data []float32, tris []int, t instance.Transform, view View) ([]ebiten.Vertex, []uint16) {
	base := len(vs)
	sin, cos := math.Sincos(t.Angle)
	for i := 0; i+instance.VertexStride <= len(data); i += instance.VertexStride {
		lx, ly := float64(data[i]), float64(data[i+1])
		wx := t.X + lx*cos - ly*sin
		wy := t.Y + lx*sin + ly*cos
		sx, sy := view.ToScreen(wx, wy)
		vs = append(vs, ebiten.Vertex{
			DstX:   sx,
			DstY:   sy,
			SrcX:   1,
			SrcY:   1,
			ColorR: data[i+2],
			ColorG: data[i+3],
			ColorB: data[i+4],
			ColorA: 1,
		})
	}
	for _, idx := range tris {
		is = append(is, uint16(base+idx))
	}
	return vs, is
}

// ExpandRange expands every instance in r into one triangle list. The
// returned slices reuse vs and is.
func ExpandRange(vs []ebiten.Vertex, is []uint16, layout *instance.VertexLayout, b *instance.Batch, r instance.Range, view View) ([]ebiten.Vertex, []uint16, error) {
	first, count, err := layout.Locate(r.Model)
	if err != nil {
		return vs, is, err
	}
	data := layout.Data()[first*instance.VertexStride : (first+count)*instance.VertexStride]
	tris := TriangleIndices(r.Model)
	for i := r.BaseOffset; i < r.End(); i++ {
		vs, is = appendInstance(vs, is, data, tris, b.At(i), view)
	}
	return vs, is, nil
}
