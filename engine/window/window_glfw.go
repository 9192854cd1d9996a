package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/halcyon-gfx/halcyon/common"
)

// glfwWindow implements Window over a GLFW window. The wgpuglfw bridge
// supplies the per-platform surface descriptor.
type glfwWindow struct {
	win     *glfw.Window
	running bool

	width  int
	height int

	onResize  func(width, height int)
	onKeyDown func(key uint32)
	onKeyUp   func(key uint32)
	onScroll  func(delta float32)
}

var _ Window = &glfwWindow{}

// NewWindow creates and opens a platform window.
//
// Defaults: title "halcyon", 1280x720, escape closes the window. GLFW
// requires the calling goroutine to be the main thread; NewWindow locks it.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: an error if GLFW or the window could not be initialized
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	cfg := windowConfig{
		title:  "halcyon",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: glfw init: %w", err)
	}

	// WebGPU brings its own graphics API; no OpenGL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if cfg.fixedSize {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.width, cfg.height, cfg.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create: %w", err)
	}

	w := &glfwWindow{
		win:     win,
		running: true,
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if uint32(key) == common.KeyEsc && action == glfw.Press {
			w.running = false
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	// The renderer needs pixel dimensions, so resize events come from the
	// framebuffer size callback rather than the window size callback.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	w.width, w.height = win.GetFramebufferSize()

	return w, nil
}

func (w *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func (w *glfwWindow) Width() int {
	return w.width
}

func (w *glfwWindow) Height() int {
	return w.height
}

func (w *glfwWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *glfwWindow) SetKeyDownCallback(callback func(key uint32)) {
	w.onKeyDown = callback
}

func (w *glfwWindow) SetKeyUpCallback(callback func(key uint32)) {
	w.onKeyUp = callback
}

func (w *glfwWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *glfwWindow) Run(update func()) {
	for w.IsRunning() {
		glfw.PollEvents()
		if !w.IsRunning() {
			break
		}
		if update != nil {
			update()
		}
		runtime.Gosched()
	}
}

func (w *glfwWindow) IsRunning() bool {
	return w.win != nil && w.running && !w.win.ShouldClose()
}

func (w *glfwWindow) Close() error {
	if w.win == nil {
		return fmt.Errorf("window: not open")
	}
	w.running = false
	w.win.SetShouldClose(true)
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	return nil
}
