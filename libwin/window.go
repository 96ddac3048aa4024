package libwin

import (
	"fmt"
	"getting-started-gl/libapp"
	"getting-started-gl/libgl"
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is the single window of the process together with its context.
type Window struct {
	*glfw.Window
	Config     libapp.Config
	terminated bool
}

// Bootstrap creates the window and context described by cfg and loads the GL
// functions. The returned error wraps libapp.ErrBootstrap when no window
// exists; in that case the window system has already been terminated.
// A loader failure returns the usable window together with an error wrapping
// libapp.ErrLoader.
func Bootstrap(cfg libapp.Config) (*Window, error) {
	runtime.LockOSThread()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", libapp.ErrBootstrap, err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.ContextMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.ContextMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	ctx, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: failed to create %d.%d core context: %v", libapp.ErrBootstrap, cfg.ContextMajor, cfg.ContextMinor, err)
	}
	ctx.MakeContextCurrent()
	if cfg.SwapInterval >= 0 {
		glfw.SwapInterval(cfg.SwapInterval)
	}

	win := &Window{
		Window: ctx,
		Config: cfg,
	}

	// A partial function table is kept, what loaded is still usable.
	loadErr := loadGl()
	if loadErr != nil {
		log.Println(loadErr)
	}

	libgl.GlEnv = libgl.GetGlEnv()
	libgl.GlState = libgl.NewGlStateManager()
	libgl.GlState.Viewport(0, 0, cfg.Width, cfg.Height)
	log.Printf("Context %v, GLSL %v on %v (%v)\n", libgl.GlEnv.Version, libgl.GlEnv.Glsl, libgl.GlEnv.Renderer, libgl.GlEnv.Vendor)

	return win, loadErr
}

func loadGl() error {
	if err := gl.InitWithProcAddrFunc(glfw.GetProcAddress); err != nil {
		return fmt.Errorf("%w: %v", libapp.ErrLoader, err)
	}
	return nil
}

func (win *Window) PollEvents() {
	glfw.PollEvents()
}

// SetResizeHandler reports framebuffer size changes. The window is not
// resizable, so this only fires on changes made by the window manager.
func (win *Window) SetResizeHandler(fn func(width, height int)) {
	win.Window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

func (win *Window) Terminate() {
	if win.terminated {
		return
	}
	win.terminated = true
	win.Window.Destroy()
	glfw.Terminate()
}
