package instance

// Batcher groups drawables' components by model once per frame.
//
// A Batcher is not safe for concurrent use, and the drawables passed to
// Build must not be mutated by another goroutine while it runs.
type Batcher struct {
	order  []*Model
	groups map[*Model][]Transform
}

func NewBatcher() *Batcher {
	return &Batcher{groups: make(map[*Model][]Transform)}
}

// Build computes every drawable's world components and packs them into a new
// Batch. Models are laid out in the order they are first encountered, and
// each model's instances keep the order of the drawables that produced them.
func (b *Batcher) Build(drawables []Drawable) *Batch {
	if b.groups == nil {
		b.groups = make(map[*Model][]Transform)
	}
	b.reset()

	total := 0
	for _, d := range drawables {
		if d == nil {
			continue
		}
		for _, c := range d.WorldComponents() {
			list := b.groups[c.Model]
			if len(list) == 0 {
				b.order = append(b.order, c.Model)
			}
			b.groups[c.Model] = append(list, c.Transform)
			total++
		}
	}

	batch := &Batch{
		Buffer: make([]float32, 0, total*FloatsPerInstance),
		Ranges: make([]Range, 0, len(b.order)),
		index:  make(map[*Model]int, len(b.order)),
	}
	offset := 0
	for _, m := range b.order {
		transforms := b.groups[m]
		batch.index[m] = len(batch.Ranges)
		batch.Ranges = append(batch.Ranges, Range{Model: m, BaseOffset: offset, Count: len(transforms)})
		for _, t := range transforms {
			batch.Buffer = append(batch.Buffer, float32(t.X), float32(t.Y), float32(t.Angle))
		}
		offset += len(transforms)
	}
	return batch
}

// reset empties the scratch lists but keeps their capacity for the next frame.
func (b *Batcher) reset() {
	for _, m := range b.order {
		b.groups[m] = b.groups[m][:0]
	}
	b.order = b.order[:0]
}
