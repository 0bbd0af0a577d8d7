package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/instanced/instance"
)

// whiteSource returns a 1x1 white source taken from the middle of a 3x3
// image so filtering never samples an edge.
func whiteSource() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Renderer draws a batch with one DrawTriangles call per model. A model with
// more vertices than one call can index is split across calls.
type Renderer struct {
	layout *instance.VertexLayout
	tris   map[*instance.Model][]int
	white  *ebiten.Image

	spans    []instance.Span
	vertices []ebiten.Vertex
	indices  []uint16
	calls    int
}

func NewRenderer(layout *instance.VertexLayout) *Renderer {
	return &Renderer{
		layout: layout,
		tris:   make(map[*instance.Model][]int),
	}
}

// DrawCalls reports how many DrawTriangles calls the last Draw issued.
func (r *Renderer) DrawCalls() int {
	return r.calls
}

// Draw renders b onto screen. A batch naming a model missing from the
// layout is rejected before anything is drawn.
func (r *Renderer) Draw(screen *ebiten.Image, b *instance.Batch, view View) error {
	r.calls = 0
	if b == nil {
		return nil
	}
	spans, err := r.layout.Resolve(b, r.spans[:0])
	r.spans = spans
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	for j, rg := range b.Ranges {
		first, count := spans[j].First, spans[j].Count
		data := r.layout.Data()[first*instance.VertexStride : (first+count)*instance.VertexStride]
		tris := r.triangles(rg.Model)

		r.vertices, r.indices = r.vertices[:0], r.indices[:0]
		for i := rg.BaseOffset; i < rg.End(); i++ {
			if len(r.vertices)+count > maxVerticesPerDraw {
				r.flush(screen)
			}
			r.vertices, r.indices = appendInstance(r.vertices, r.indices, data, tris, b.At(i), view)
		}
		r.flush(screen)
	}
	return nil
}

func (r *Renderer) triangles(m *instance.Model) []int {
	if t, ok := r.tris[m]; ok {
		return t
	}
	t := TriangleIndices(m)
	r.tris[m] = t
	return t
}

func (r *Renderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	if r.white == nil {
		r.white = whiteSource()
	}
	screen.DrawTriangles(r.vertices, r.indices, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	r.calls++
	r.vertices, r.indices = r.vertices[:0], r.indices[:0]
}
