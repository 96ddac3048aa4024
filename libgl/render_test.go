package libgl_test

import (
	"getting-started-gl/libapp"
	"getting-started-gl/libgl"
	"getting-started-gl/libio"
	"getting-started-gl/libscn"
	"getting-started-gl/libwin"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var shapeColor = mgl32.Vec4{1.0, 0.5, 0.2, 1.0}
var backgroundColor = mgl32.Vec4{0.0, 0.34, 0.57, 1.0}

// one step of an 8 bit channel
const colorEpsilon = 1.0/255 + 1e-4

func render(mesh *libscn.Mesh) (frame *libio.Frame, err error) {
	libgl.GlState = libgl.NewGlStateManager()

	fb, err := libgl.NewFramebuffer(testWidth, testHeight)
	if err != nil {
		return nil, err
	}
	defer fb.Delete()

	gpuMesh, err := libgl.UploadMesh(mesh)
	if err != nil {
		return nil, err
	}
	defer gpuMesh.Delete()

	prog, err := libgl.BuildProgram("test", nil,
		libgl.NewShaderSource(testVertexSource, gl.VERTEX_SHADER),
		libgl.NewShaderSource(testFragmentSource, gl.FRAGMENT_SHADER),
	)
	defer prog.Delete()
	if err != nil {
		return nil, err
	}

	fb.Bind()
	libgl.GlState.Viewport(0, 0, testWidth, testHeight)
	libgl.GlState.ClearColor(backgroundColor[0], backgroundColor[1], backgroundColor[2], backgroundColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	prog.Use()
	gpuMesh.Draw()
	frame = libgl.ReadFrame(0, 0, testWidth, testHeight)
	fb.Unbind()

	return frame, libgl.CheckError()
}

// pixel returns the pixel covering the normalized device coordinate p.
func pixel(frame *libio.Frame, p mgl32.Vec2) mgl32.Vec4 {
	x := int((p[0] + 1) / 2 * float32(frame.Width))
	y := int((p[1] + 1) / 2 * float32(frame.Height))
	return frame.At(x, y)
}

func TestRenderTriangle(t *testing.T) {
	var frame *libio.Frame
	var err error
	onGl(t, func() {
		frame, err = render(libscn.Triangle())
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []mgl32.Vec2{{0, 0}, {0, 0.4}, {-0.4, -0.45}, {0.4, -0.45}} {
		if is := pixel(frame, p); !is.ApproxEqualThreshold(shapeColor, colorEpsilon) {
			t.Errorf("pixel at %v should be %v but is %v", p, shapeColor, is)
		}
	}
	for _, p := range []mgl32.Vec2{{-0.9, -0.9}, {0.4, 0.4}, {0, -0.6}} {
		if is := pixel(frame, p); !is.ApproxEqualThreshold(backgroundColor, colorEpsilon) {
			t.Errorf("pixel at %v should be background %v but is %v", p, backgroundColor, is)
		}
	}

	// the triangle covers 0.5 of the 2x2 clip square
	should := float32(frame.Count()) * 0.5 / 4
	is := float32(frame.Coverage(shapeColor, colorEpsilon))
	if math32.Abs(is-should)/should > 0.005 {
		t.Errorf("triangle should cover about %.0f pixels but covers %.0f", should, is)
	}
}

func TestRenderQuad(t *testing.T) {
	var frame *libio.Frame
	var err error
	onGl(t, func() {
		frame, err = render(libscn.Quad())
	})
	if err != nil {
		t.Fatal(err)
	}

	// the shared diagonal runs from vertex 1 (0.5,-0.5) to vertex 3 (-0.5,0.5)
	for i := 1; i < 100; i++ {
		f := float32(i) / 100
		p := mgl32.Vec2{0.5 - f, -0.5 + f}
		if is := pixel(frame, p); !is.ApproxEqualThreshold(shapeColor, colorEpsilon) {
			t.Fatalf("gap on the diagonal at %v: %v", p, is)
		}
	}

	should := frame.Count() / 4
	if is := frame.Coverage(shapeColor, colorEpsilon); is != should {
		t.Errorf("quad should cover %d pixels but covers %d", should, is)
	}
	if is := pixel(frame, mgl32.Vec2{0.75, 0.75}); !is.ApproxEqualThreshold(backgroundColor, colorEpsilon) {
		t.Errorf("pixel outside the quad should be background but is %v", is)
	}
}

// loopSurface keeps the shared test window alive when the loop tears down.
type loopSurface struct {
	*libwin.Window
}

func (loopSurface) Terminate() {}

type clearScene struct{}

func (clearScene) Draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (clearScene) Delete() {}

func TestViewportIgnoresResize(t *testing.T) {
	var viewport [4]int32
	var cached [4]int
	var resizes int
	onGl(t, func() {
		cfg := libapp.DefaultConfig("test")
		cfg.MaxFrames = 4
		libgl.GlState = libgl.NewGlStateManager()
		libgl.GlState.Viewport(0, 0, cfg.Width, cfg.Height)

		win := &libwin.Window{Window: context, Config: cfg}
		loop := libapp.NewLoop(cfg, loopSurface{win}, clearScene{})
		loop.OnFrame = func(frame int) {
			if frame == 1 {
				context.SetSize(640, 480)
			}
		}
		loop.Run()
		resizes = loop.IgnoredResizes()

		gl.GetIntegerv(gl.VIEWPORT, &viewport[0])
		cached = libgl.GlState.ViewportRect

		context.SetFramebufferSizeCallback(nil)
		context.SetSize(testWidth, testHeight)
		glfw.PollEvents()
	})
	// hidden windows on some platforms never report a size change
	t.Logf("%d resize notifications ignored", resizes)

	if viewport != [4]int32{0, 0, testWidth, testHeight} {
		t.Errorf("viewport should stay %dx%d but is %v", testWidth, testHeight, viewport)
	}
	if cached != [4]int{0, 0, testWidth, testHeight} {
		t.Errorf("cached viewport changed to %v", cached)
	}
}
