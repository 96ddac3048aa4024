package launch

import (
	"fmt"
	"getting-started-gl/libapp"
	"getting-started-gl/libgl"
	"getting-started-gl/libscn"
	"getting-started-gl/libutil"
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeScene clears the screen and draws one mesh with the shape program.
type ShapeScene struct {
	ClearColor mgl32.Vec4
	Mesh       *libgl.Mesh
	Program    *libgl.Program
	res        libutil.Releaser
}

// NewShapeScene uploads mesh and builds the shape program. A nil scene means
// the upload failed. Shader failures return the scene together with a
// *libgl.BuildError, cfg decides whether that is fatal.
func NewShapeScene(cfg libapp.Config, mesh *libscn.Mesh) (*ShapeScene, error) {
	scene := &ShapeScene{
		ClearColor: cfg.ClearColor,
	}

	gpuMesh, err := libgl.UploadMesh(mesh)
	if err != nil {
		return nil, fmt.Errorf("uploading %v: %w", mesh.Name, err)
	}
	scene.Mesh = gpuMesh
	scene.res.Add(gpuMesh)
	logGlError("upload")

	prog, buildErr := libgl.BuildProgram("shape", nil, shapeShaders(cfg)...)
	scene.Program = prog
	scene.res.Add(prog)
	logGlError("program build")

	log.Printf("Uploaded %v: %d vertices, draws %d with %v\n", mesh.Name, len(mesh.Vertices), gpuMesh.Count, mesh.Mode)

	return scene, buildErr
}

func (scene *ShapeScene) Draw() {
	c := scene.ClearColor
	libgl.GlState.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	scene.Program.Use()
	scene.Mesh.Draw()
}

// Delete releases the program and the mesh. Later calls do nothing.
func (scene *ShapeScene) Delete() {
	scene.res.Release()
}

func logGlError(stage string) {
	if err := libgl.CheckError(); err != nil {
		log.Printf("After %v: %v\n", stage, err)
	}
}

func shapeShaders(cfg libapp.Config) []*libgl.ShaderSource {
	vsh := libgl.NewShaderSource(Res_ShapeVshSrc, gl.VERTEX_SHADER)
	fsh := libgl.NewShaderSource(Res_ShapeFshSrc, gl.FRAGMENT_SHADER)
	fsh.Defines = map[string]string{
		"SHAPE_COLOR": glslVec4(cfg.ShapeColor),
	}
	return []*libgl.ShaderSource{vsh, fsh}
}

func glslVec4(v mgl32.Vec4) string {
	return fmt.Sprintf("vec4(%f, %f, %f, %f)", v[0], v[1], v[2], v[3])
}
