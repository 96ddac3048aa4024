package libscn

import "github.com/go-gl/mathgl/mgl32"

func Triangle() *Mesh {
	return &Mesh{
		Name: "triangle",
		Mode: DrawArrays,
		Vertices: []mgl32.Vec3{
			{-0.5, -0.5, 0.0}, // bottom left
			{0.5, -0.5, 0.0},  // bottom right
			{0.0, 0.5, 0.0},   // top
		},
	}
}

// Quad is a rectangle made of two triangles sharing the 1-3 diagonal.
func Quad() *Mesh {
	return &Mesh{
		Name: "quad",
		Mode: DrawElements,
		Vertices: []mgl32.Vec3{
			{0.5, 0.5, 0.0},   // top right
			{0.5, -0.5, 0.0},  // bottom right
			{-0.5, -0.5, 0.0}, // bottom left
			{-0.5, 0.5, 0.0},  // top left
		},
		Indices: []uint32{
			0, 1, 3,
			1, 2, 3,
		},
	}
}

// ClipPosition is what the vertex stage computes for a position.
func ClipPosition(position mgl32.Vec3) mgl32.Vec4 {
	return position.Vec4(1.0)
}
