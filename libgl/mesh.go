package libgl

import (
	"fmt"
	"getting-started-gl/libscn"

	"github.com/go-gl/gl/v3.3-core/gl"
)

const PositionAttribute = 0

// Mesh owns the device copy of a libscn.Mesh. The vertex array alone
// restores the full vertex and index binding for a draw.
type Mesh struct {
	Name          string
	Mode          libscn.DrawMode
	Count         int
	VertexArray   UnboundVertexArray
	VertexBuffer  UnboundBuffer
	ElementBuffer UnboundBuffer
}

func UploadMesh(src *libscn.Mesh) (*Mesh, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	mesh := &Mesh{
		Name:  src.Name,
		Mode:  src.Mode,
		Count: src.Count(),
	}

	mesh.VertexArray = NewVertexArray()
	vao := mesh.VertexArray.Bind()

	mesh.VertexBuffer = NewBuffer(gl.ARRAY_BUFFER)
	if err := mesh.VertexBuffer.Allocate(src.Vertices, gl.STATIC_DRAW); err != nil {
		vao.Unbind()
		mesh.Delete()
		return nil, fmt.Errorf("uploading %v vertices: %w", src.Name, err)
	}

	if src.Mode == libscn.DrawElements {
		mesh.ElementBuffer = NewBuffer(gl.ELEMENT_ARRAY_BUFFER)
		if err := mesh.ElementBuffer.Allocate(src.Indices, gl.STATIC_DRAW); err != nil {
			vao.Unbind()
			mesh.Delete()
			return nil, fmt.Errorf("uploading %v indices: %w", src.Name, err)
		}
		vao.BindElementBuffer(mesh.ElementBuffer)
	}

	vao.Layout(mesh.VertexBuffer, PositionAttribute, libscn.PositionComponents, gl.FLOAT, false, libscn.PositionSize, 0)

	// The element buffer stays bound, it is part of the vertex array state.
	GlState.BindArrayBuffer(0)
	vao.Unbind()

	return mesh, nil
}

// Draw issues exactly one draw call for the whole mesh.
func (mesh *Mesh) Draw() {
	vao := mesh.VertexArray.Bind()
	switch mesh.Mode {
	case libscn.DrawArrays:
		gl.DrawArrays(gl.TRIANGLES, 0, int32(mesh.Count))
	case libscn.DrawElements:
		gl.DrawElements(gl.TRIANGLES, int32(mesh.Count), gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	vao.Unbind()
}

func (mesh *Mesh) Delete() {
	if mesh.VertexArray != nil {
		mesh.VertexArray.Delete()
	}
	if mesh.VertexBuffer != nil {
		mesh.VertexBuffer.Delete()
	}
	if mesh.ElementBuffer != nil {
		mesh.ElementBuffer.Delete()
	}
}
