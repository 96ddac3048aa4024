package libapp

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrBootstrap is returned when the window system or the window cannot be created.
	ErrBootstrap = errors.New("bootstrap failed")
	// ErrLoader is returned when the GL function table could not be loaded.
	ErrLoader = errors.New("loading gl functions failed")
	// ErrConfig is returned for command line or config values that cannot be used.
	ErrConfig = errors.New("invalid config")
)

// Process exit codes.
const (
	ExitOk      = 0
	ExitFailure = -1
)

// Config is fixed at startup and passed by value.
type Config struct {
	Title        string
	Width        int
	Height       int
	ContextMajor int
	ContextMinor int
	// -1 keeps the window system default
	SwapInterval int
	ClearColor   mgl32.Vec4
	ShapeColor   mgl32.Vec4
	// Strict makes loader and shader failures fatal.
	Strict       bool
	MaxFrames    int
	CapturePath  string
	CaptureFrame int
}

// DefaultConfig is the 1280x720, GL 3.3 core configuration both programs
// run with when no flags are given.
func DefaultConfig(title string) Config {
	return Config{
		Title:        title,
		Width:        1280,
		Height:       720,
		ContextMajor: 3,
		ContextMinor: 3,
		SwapInterval: -1,
		ClearColor:   mgl32.Vec4{0.0, 0.34, 0.57, 1.0},
		ShapeColor:   mgl32.Vec4{1.0, 0.5, 0.2, 1.0},
		CaptureFrame: 1,
	}
}

func (cfg Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrConfig, cfg.Width, cfg.Height)
	}
	if cfg.ContextMajor < 3 || (cfg.ContextMajor == 3 && cfg.ContextMinor < 2) {
		return fmt.Errorf("%w: core profile needs at least 3.2, got %d.%d", ErrConfig, cfg.ContextMajor, cfg.ContextMinor)
	}
	if cfg.MaxFrames < 0 {
		return fmt.Errorf("%w: negative frame limit %d", ErrConfig, cfg.MaxFrames)
	}
	if cfg.CapturePath != "" && cfg.CaptureFrame < 1 {
		return fmt.Errorf("%w: capture frame must be at least 1, got %d", ErrConfig, cfg.CaptureFrame)
	}
	if cfg.CapturePath != "" && cfg.MaxFrames > 0 && cfg.CaptureFrame > cfg.MaxFrames {
		return fmt.Errorf("%w: capture frame %d is after the last frame %d", ErrConfig, cfg.CaptureFrame, cfg.MaxFrames)
	}
	return nil
}

// Fatal reports whether err has to abort startup. Bootstrap and config
// errors always do, anything else only under the strict policy.
func (cfg Config) Fatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBootstrap) || errors.Is(err, ErrConfig) {
		return true
	}
	return cfg.Strict
}
