// Package surface provides the window, GL context, input and frame clock
// the renderer runs on.
package surface

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/lumensocial/lumen/internal/models"
)

// Error reports a failure to bring up the window or its context.
type Error struct {
	msg string
	err error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

type Options struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Window is a glfw window with a current OpenGL 4.1 core context. All methods
// must be called from the main thread.
type Window struct {
	window   *glfw.Window
	lastTime float64
	started  bool
	running  bool
}

// New creates the window and makes its context current.
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &Error{"failed to initialize glfw", err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &Error{"failed to create window", err}
	}
	window.MakeContextCurrent()

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return &Window{window: window, running: true}, nil
}

// PollAndIsRunning processes pending events and reports whether the loop
// should keep going. Closing the window or pressing Escape requests a quit.
func (w *Window) PollAndIsRunning() bool {
	glfw.PollEvents()
	if w.window.ShouldClose() || w.window.GetKey(glfw.KeyEscape) == glfw.Press {
		w.running = false
	}
	return w.running
}

// ElapsedSinceLastFrame returns the seconds since the previous call. The
// first call returns 0.
func (w *Window) ElapsedSinceLastFrame() float32 {
	now := glfw.GetTime()
	if !w.started {
		w.started = true
		w.lastTime = now
		return 0
	}
	dt := now - w.lastTime
	w.lastTime = now
	return float32(dt)
}

// Present swaps the back buffer; with vsync on this blocks until the next
// refresh.
func (w *Window) Present() {
	w.window.SwapBuffers()
}

// Pointer returns the cursor in window coordinates together with the window
// size it is measured against.
func (w *Window) Pointer() models.RawPointer {
	x, y := w.window.GetCursorPos()
	width, height := w.window.GetSize()
	return models.RawPointer{
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		ButtonHeld: w.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press,
	}
}

// FramebufferSize is the drawable size in pixels, which differs from the
// window size on high-density displays.
func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *Window) Shutdown() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
}
