package libscn

import (
	"errors"
	"fmt"
	"getting-started-gl/libutil"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

// DrawMode selects how a mesh is submitted to the device.
type DrawMode int

const (
	// DrawArrays draws the vertex list directly, three vertices per triangle.
	DrawArrays DrawMode = iota
	// DrawElements draws through the index list.
	DrawElements
)

func (mode DrawMode) String() string {
	switch mode {
	case DrawArrays:
		return "arrays"
	case DrawElements:
		return "elements"
	}
	return fmt.Sprintf("DrawMode(%d)", int(mode))
}

const PositionComponents = 3
const PositionSize = int(unsafe.Sizeof(mgl32.Vec3{}))
const ElementIndexSize = int(unsafe.Sizeof(uint32(0)))

var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an immutable position-only triangle list.
type Mesh struct {
	Name     string
	Mode     DrawMode
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// Count is the number of vertices (DrawArrays) or indices (DrawElements) one draw call consumes.
func (mesh *Mesh) Count() int {
	if mesh.Mode == DrawElements {
		return len(mesh.Indices)
	}
	return len(mesh.Vertices)
}

func (mesh *Mesh) Validate() error {
	if len(mesh.Vertices) == 0 {
		return fmt.Errorf("%w: %q has no vertices", ErrInvalidMesh, mesh.Name)
	}
	switch mesh.Mode {
	case DrawArrays:
		if len(mesh.Indices) != 0 {
			return fmt.Errorf("%w: %q draws arrays but has %d indices", ErrInvalidMesh, mesh.Name, len(mesh.Indices))
		}
	case DrawElements:
		if len(mesh.Indices) == 0 {
			return fmt.Errorf("%w: %q draws elements but has no indices", ErrInvalidMesh, mesh.Name)
		}
		if last := slices.Max(mesh.Indices); int(last) >= len(mesh.Vertices) {
			return fmt.Errorf("%w: %q index %d out of range, %d vertices", ErrInvalidMesh, mesh.Name, last, len(mesh.Vertices))
		}
	default:
		return fmt.Errorf("%w: %q has unknown draw mode %v", ErrInvalidMesh, mesh.Name, mesh.Mode)
	}
	if mesh.Count()%3 != 0 {
		return fmt.Errorf("%w: %q count %d is not a multiple of 3", ErrInvalidMesh, mesh.Name, mesh.Count())
	}
	return nil
}

// Triangles calls fn for every triangle in draw order.
func (mesh *Mesh) Triangles(fn func(a, b, c mgl32.Vec3)) {
	if mesh.Mode == DrawElements {
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			fn(mesh.Vertices[mesh.Indices[i]], mesh.Vertices[mesh.Indices[i+1]], mesh.Vertices[mesh.Indices[i+2]])
		}
		return
	}
	for i := 0; i+2 < len(mesh.Vertices); i += 3 {
		fn(mesh.Vertices[i], mesh.Vertices[i+1], mesh.Vertices[i+2])
	}
}

// TileArea sums the xy area of every triangle.
func (mesh *Mesh) TileArea() float32 {
	var sum float32
	mesh.Triangles(func(a, b, c mgl32.Vec3) {
		sum += libutil.Area2D(a, b, c)
	})
	return sum
}

// Bounds returns the xy bounding rectangle as min and max corners.
func (mesh *Mesh) Bounds() (lo, hi mgl32.Vec2) {
	if len(mesh.Vertices) == 0 {
		return
	}
	lo = mesh.Vertices[0].Vec2()
	hi = lo
	for _, v := range mesh.Vertices[1:] {
		for c := 0; c < 2; c++ {
			if v[c] < lo[c] {
				lo[c] = v[c]
			}
			if v[c] > hi[c] {
				hi[c] = v[c]
			}
		}
	}
	return
}

// Contains reports whether p lies inside or on the edge of any triangle.
func (mesh *Mesh) Contains(p mgl32.Vec2) bool {
	found := false
	point := p.Vec3(0)
	mesh.Triangles(func(a, b, c mgl32.Vec3) {
		if found {
			return
		}
		d1 := libutil.SignedArea2D(point, a, b)
		d2 := libutil.SignedArea2D(point, b, c)
		d3 := libutil.SignedArea2D(point, c, a)
		neg := d1 < 0 || d2 < 0 || d3 < 0
		pos := d1 > 0 || d2 > 0 || d3 > 0
		found = !(neg && pos)
	})
	return found
}
