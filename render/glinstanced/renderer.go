// Package glinstanced draws instance batches with one
// glDrawArraysInstancedBaseInstance call per model.
package glinstanced

import (
	"fmt"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/milk9111/instanced/instance"
	"github.com/milk9111/instanced/render"
)

const (
	attribPosition = 0
	attribColor    = 1
	attribInstance = 2
)

const vertexShaderSource = `
#version 420 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in vec3 aInstance;

uniform mat4 projection;

out vec3 vColor;

void main() {
    float s = sin(aInstance.z);
    float c = cos(aInstance.z);
    vec2 world = vec2(aPos.x * c - aPos.y * s, aPos.x * s + aPos.y * c) + aInstance.xy;
    gl_Position = projection * vec4(world, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 420 core
in vec3 vColor;

out vec4 FragColor;

void main() {
    FragColor = vec4(vColor, 1.0);
}
` + "\x00"

// Renderer owns the static vertex buffer built from a VertexLayout and a
// streaming instance buffer refilled every frame.
type Renderer struct {
	layout *instance.VertexLayout

	program     uint32
	projLoc     int32
	vao         uint32
	vertexVBO   uint32
	instanceVBO uint32

	spans   []instance.Span
	scratch []byte
	calls   int
}

// NewRenderer uploads the layout's vertices. A GL 4.2 context must be current.
func NewRenderer(layout *instance.VertexLayout) (*Renderer, error) {
	r := &Renderer{layout: layout}

	var err error
	r.program, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("glinstanced: create shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.program, gl.Str("projection\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	data := layout.Data()
	gl.GenBuffers(1, &r.vertexVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vertexVBO)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	stride := int32(instance.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(attribPosition, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribColor, 3, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(attribColor)

	gl.GenBuffers(1, &r.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	gl.VertexAttribPointerWithOffset(attribInstance, 3, gl.FLOAT, false, instance.BytesPerInstance, 0)
	gl.EnableVertexAttribArray(attribInstance)
	gl.VertexAttribDivisor(attribInstance, 1)

	gl.BindVertexArray(0)
	return r, nil
}

// DrawCalls reports how many instanced draws the last Draw issued.
func (r *Renderer) DrawCalls() int {
	return r.calls
}

// Draw uploads b's instance buffer and issues one draw per model range.
func (r *Renderer) Draw(b *instance.Batch, view render.View) error {
	r.calls = 0
	if b == nil || b.Instances() == 0 {
		return nil
	}
	spans, err := r.layout.Resolve(b, r.spans[:0])
	r.spans = spans
	if err != nil {
		return fmt.Errorf("glinstanced: %w", err)
	}

	gl.UseProgram(r.program)
	proj := view.Ortho()
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)
	r.scratch = b.AppendBytes(r.scratch[:0])
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.scratch), gl.Ptr(r.scratch), gl.STREAM_DRAW)

	for j, rg := range b.Ranges {
		sp := spans[j]
		gl.DrawArraysInstancedBaseInstance(drawMode(rg.Model.Topology()), int32(sp.First), int32(sp.Count), int32(rg.Count), uint32(rg.BaseOffset))
		r.calls++
	}

	gl.BindVertexArray(0)
	return nil
}

// Delete releases GL resources.
func (r *Renderer) Delete() {
	if r.instanceVBO != 0 {
		gl.DeleteBuffers(1, &r.instanceVBO)
	}
	if r.vertexVBO != 0 {
		gl.DeleteBuffers(1, &r.vertexVBO)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func drawMode(t instance.Topology) uint32 {
	if t == instance.TopologyTriangleFan {
		return gl.TRIANGLE_FAN
	}
	return gl.TRIANGLES
}
