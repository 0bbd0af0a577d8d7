package instance

import (
	"encoding/binary"
	"math"
)

// FloatsPerInstance is the number of buffer slots per instance: x, y, angle.
const FloatsPerInstance = 3

// BytesPerInstance is the encoded size of one instance.
const BytesPerInstance = FloatsPerInstance * 4

// Range addresses one model's contiguous slice of the instance buffer.
// BaseOffset and Count are measured in instances, not floats.
type Range struct {
	Model      *Model
	BaseOffset int
	Count      int
}

// End returns the first instance index past the range.
func (r Range) End() int {
	return r.BaseOffset + r.Count
}

// Batch is one frame's instance data grouped by model.
type Batch struct {
	// Buffer holds FloatsPerInstance floats per instance, grouped by model.
	Buffer []float32
	// Ranges lists models in the order their instances appear in Buffer.
	Ranges []Range

	index map[*Model]int
}

// Range returns the directory entry for m.
func (b *Batch) Range(m *Model) (Range, bool) {
	if b == nil {
		return Range{}, false
	}
	i, ok := b.index[m]
	if !ok {
		return Range{}, false
	}
	return b.Ranges[i], true
}

// Instances returns the total number of instances in the batch.
func (b *Batch) Instances() int {
	if b == nil {
		return 0
	}
	return len(b.Buffer) / FloatsPerInstance
}

// Transforms unpacks m's range back into transforms.
func (b *Batch) Transforms(m *Model) []Transform {
	r, ok := b.Range(m)
	if !ok {
		return nil
	}
	out := make([]Transform, 0, r.Count)
	for i := r.BaseOffset; i < r.End(); i++ {
		out = append(out, b.At(i))
	}
	return out
}

// At decodes instance i.
func (b *Batch) At(i int) Transform {
	base := i * FloatsPerInstance
	return Transform{
		X:     float64(b.Buffer[base]),
		Y:     float64(b.Buffer[base+1]),
		Angle: float64(b.Buffer[base+2]),
	}
}

// AppendBytes appends the buffer to dst as little-endian float32 values,
// the layout GPU instance attributes expect.
func (b *Batch) AppendBytes(dst []byte) []byte {
	if b == nil {
		return dst
	}
	for _, f := range b.Buffer {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
