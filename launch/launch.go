package launch

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"getting-started-gl/libapp"
	"getting-started-gl/libgl"
	"getting-started-gl/libio"
	"getting-started-gl/libscn"
	"getting-started-gl/libutil"
	"getting-started-gl/libwin"
	"io"
	"log"
	"os"
)

//go:embed shaders/shape.vert
var Res_ShapeVshSrc string

//go:embed shaders/shape.frag
var Res_ShapeFshSrc string

// ParseArguments maps the command line onto the default config for title.
func ParseArguments(title string, args []string, output io.Writer) (libapp.Config, error) {
	cfg := libapp.DefaultConfig(title)

	flags := flag.NewFlagSet(title, flag.ContinueOnError)
	flags.SetOutput(output)
	flags.BoolVar(&cfg.Strict, "strict", cfg.Strict, "treat gl loader and shader failures as fatal")
	flags.IntVar(&cfg.MaxFrames, "frames", cfg.MaxFrames, "stop after this many frames, 0 runs until the window is closed")
	flags.StringVar(&cfg.CapturePath, "capture", cfg.CapturePath, "write a rendered frame to this .png or .f32 file")
	flags.IntVar(&cfg.CaptureFrame, "capture-frame", cfg.CaptureFrame, "frame number to capture, starting at 1")
	flags.IntVar(&cfg.SwapInterval, "vsync", cfg.SwapInterval, "swap interval, -1 keeps the default")

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() != 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %v", libapp.ErrConfig, flags.Args())
	}
	return cfg, cfg.Validate()
}

// Main runs one shape program and returns the process exit code.
func Main(title string, mesh *libscn.Mesh) int {
	log.SetPrefix(fmt.Sprintf("[%s] ", mesh.Name))

	cfg, err := ParseArguments(title, os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return libapp.ExitOk
	}
	if err != nil {
		log.Println(err)
		return libapp.ExitFailure
	}

	return Run(cfg, mesh)
}

// Run bootstraps the window, draws mesh until the window is closed and
// releases everything it acquired. It returns the process exit code.
func Run(cfg libapp.Config, mesh *libscn.Mesh) int {
	res := &libutil.Releaser{}
	defer res.Release()

	win, err := libwin.Bootstrap(cfg)
	if win == nil {
		log.Println(err)
		return libapp.ExitFailure
	}
	res.AddFunc(win.Terminate)
	if cfg.Fatal(err) {
		return libapp.ExitFailure
	}

	scene, err := NewShapeScene(cfg, mesh)
	if scene == nil {
		log.Println(err)
		return libapp.ExitFailure
	}
	res.Add(scene)
	if cfg.Fatal(err) {
		return libapp.ExitFailure
	}

	loop := libapp.NewLoop(cfg, win, scene)
	if cfg.CapturePath != "" {
		loop.OnFrame = captureHook(cfg)
	}
	loop.Run()

	return libapp.ExitOk
}

func captureHook(cfg libapp.Config) func(frame int) {
	return func(frame int) {
		if frame != cfg.CaptureFrame {
			return
		}
		img := libgl.ReadFrame(0, 0, cfg.Width, cfg.Height)
		if err := libio.SaveFrame(cfg.CapturePath, img); err != nil {
			log.Printf("Could not save frame %d: %v\n", frame, err)
			return
		}
		// 8 bit color targets round to the nearest step
		covered := img.Coverage(cfg.ShapeColor, 1.0/255+1e-4)
		log.Printf("Saved frame %d to %v, shape covers %d of %d pixels\n", frame, cfg.CapturePath, covered, img.Count())
	}
}
