package system

import (
	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/instance"
)

// BatchSystem packs every drawable entity into a fresh instance batch each
// tick. Renderers read the result through Latest.
type BatchSystem struct {
	batcher   *instance.Batcher
	drawables []instance.Drawable
	latest    *instance.Batch
}

func NewBatchSystem() *BatchSystem {
	return &BatchSystem{batcher: instance.NewBatcher()}
}

func (b *BatchSystem) Update(w *ecs.World) {
	if b == nil || w == nil {
		return
	}
	b.drawables = ecs.AppendDrawables(b.drawables[:0], w)
	b.latest = b.batcher.Build(b.drawables)
}

// Latest returns the batch built by the last Update, or nil before the first.
func (b *BatchSystem) Latest() *instance.Batch {
	if b == nil {
		return nil
	}
	return b.latest
}
