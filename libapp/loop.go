package libapp

import (
	"log"
)

// Surface is the window and its context as seen by the frame loop.
type Surface interface {
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
	SetResizeHandler(fn func(width, height int))
	Terminate()
}

// Scene draws one frame and owns the device resources it draws with.
type Scene interface {
	Draw()
	Delete()
}

// LoopState is Running until the first close request, then Closed for good.
type LoopState int

const (
	Running LoopState = iota
	Closed
)

func (state LoopState) String() string {
	if state == Running {
		return "running"
	}
	return "closed"
}

// Loop presents frames of one scene on one surface until the surface is
// closed or Config.MaxFrames is reached.
type Loop struct {
	Config  Config
	Surface Surface
	Scene   Scene
	// OnFrame runs after the frame is drawn and before it is presented.
	OnFrame func(frame int)
	state   LoopState
	frames  int
	resizes int
	closed  bool
}

// NewLoop registers the loop's resize handler on surface.
func NewLoop(cfg Config, surface Surface, scene Scene) *Loop {
	loop := &Loop{
		Config:  cfg,
		Surface: surface,
		Scene:   scene,
		state:   Running,
	}
	surface.SetResizeHandler(loop.ignoreResize)
	return loop
}

func (loop *Loop) ignoreResize(width, height int) {
	loop.resizes++
	log.Printf("Ignoring resize to %dx%d, viewport stays %dx%d\n", width, height, loop.Config.Width, loop.Config.Height)
}

func (loop *Loop) State() LoopState {
	return loop.state
}

func (loop *Loop) Frames() int {
	return loop.frames
}

// IgnoredResizes counts the resize notifications the surface delivered.
func (loop *Loop) IgnoredResizes() int {
	return loop.resizes
}

// Run renders until the surface asks to close or the frame limit is reached,
// then tears everything down. It returns the number of presented frames.
func (loop *Loop) Run() int {
	defer loop.Close()

	for loop.state == Running {
		if loop.Surface.ShouldClose() {
			loop.state = Closed
			break
		}
		if loop.Config.MaxFrames > 0 && loop.frames >= loop.Config.MaxFrames {
			loop.state = Closed
			break
		}

		loop.Scene.Draw()
		loop.frames++
		if loop.OnFrame != nil {
			loop.OnFrame(loop.frames)
		}
		loop.Surface.SwapBuffers()
		loop.Surface.PollEvents()
	}

	log.Printf("Closing after %d frames\n", loop.frames)
	return loop.frames
}

// Close releases the scene, then the surface. Only the first call has an effect.
func (loop *Loop) Close() {
	if loop.closed {
		return
	}
	loop.closed = true
	loop.state = Closed
	loop.Scene.Delete()
	loop.Surface.Terminate()
}
