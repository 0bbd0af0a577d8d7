package instance

import "fmt"

// VertexLayout is every registered model's vertex data packed into one
// static buffer, with each model's first vertex recorded.
type VertexLayout struct {
	data  []float32
	first map[*Model]int
}

func NewVertexLayout(reg *Registry) *VertexLayout {
	l := &VertexLayout{first: make(map[*Model]int, reg.Len())}
	marker := 0
	for _, m := range reg.Models() {
		l.first[m] = marker
		l.data = append(l.data, m.vertices...)
		marker += m.VertexCount()
	}
	return l
}

// Data returns the packed vertex attributes, VertexStride floats per vertex.
func (l *VertexLayout) Data() []float32 {
	return l.data
}

// Vertices returns the total vertex count across all models.
func (l *VertexLayout) Vertices() int {
	return len(l.data) / VertexStride
}

// Locate returns the vertex range of m. A model that was not registered is a
// configuration error: there is no vertex data to draw it with.
func (l *VertexLayout) Locate(m *Model) (first, count int, err error) {
	first, ok := l.first[m]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnregisteredModel, m)
	}
	return first, m.VertexCount(), nil
}

// Span is a model's vertex range in the layout.
type Span struct {
	First int
	Count int
}

// Resolve appends the span of every range in b to dst, in range order. It
// fails on the first model that has no vertex data, before a caller has drawn
// anything.
func (l *VertexLayout) Resolve(b *Batch, dst []Span) ([]Span, error) {
	if b == nil {
		return dst, nil
	}
	for _, r := range b.Ranges {
		first, count, err := l.Locate(r.Model)
		if err != nil {
			return dst, fmt.Errorf("instance: validate batch: %w", err)
		}
		dst = append(dst, Span{First: first, Count: count})
	}
	return dst, nil
}

// Validate checks that every model in b has vertex data in the layout.
func (l *VertexLayout) Validate(b *Batch) error {
	_, err := l.Resolve(b, nil)
	return err
}
