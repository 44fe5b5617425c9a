package gldevice

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/shadelab/internal/engine/model"
	"github.com/Faultbox/shadelab/internal/engine/renderer"
)

var vertexStride = int32(unsafe.Sizeof(model.Vertex{}))

// meshBuffers is an uploaded mesh: interleaved position/normal VBO plus a
// uint32 index buffer.
type meshBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

// UploadMesh creates the VAO for m.
func (d *Device) UploadMesh(m *model.Mesh) (renderer.MeshBuffers, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil, model.ErrEmptyMesh
	}

	b := &meshBuffers{count: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(vertexStride), gl.Ptr(&m.Vertices[0]), gl.STATIC_DRAW)

	// position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	// normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 12)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return b, nil
}

func (b *meshBuffers) IndexCount() int32 {
	return b.count
}

func (b *meshBuffers) Release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}

func (b *meshBuffers) draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}
