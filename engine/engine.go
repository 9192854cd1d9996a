// package engine ties the window, the renderer and the profiler together
// into a run loop: a fixed-rate logic tick on its own goroutine and a render
// callback driven by the window's event loop on the main thread.
package engine

import (
	"sync"
	"time"

	"github.com/halcyon-gfx/halcyon/engine/profiler"
	"github.com/halcyon-gfx/halcyon/engine/renderer"
	"github.com/halcyon-gfx/halcyon/engine/window"
)

// engine implements the Engine interface.
type engine struct {
	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate         time.Duration
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32) error

	wg          sync.WaitGroup
	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Engine is the main entry point: it owns the window and the renderer and
// coordinates the logic and render loops.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the underlying renderer.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// SetTickCallback registers the function called at the configured tick
	// rate on the logic goroutine. Use it for input handling, animation state
	// and object updates.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each frame on the main
	// thread. It should submit render passes and return the render error, if
	// any; a fatal frame error shuts the engine down.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32) error)

	// Run starts the logic goroutine and drives the render loop. Blocks until
	// the window closes or Quit is called, then destroys the renderer.
	Run()

	// Quit stops the loops and closes the window. Safe to call multiple
	// times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine with the provided options. A window and a
// renderer are created with defaults unless supplied via options.
//
// Defaults: 60Hz logic tick, uncapped render rate, profiling off.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the window could not be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		tickRate:    time.Second / 60,
		profiler:    profiler.NewProfiler(),
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		w, err := window.NewWindow()
		if err != nil {
			return nil, err
		}
		e.window = w
	}
	if e.renderer == nil {
		e.renderer = renderer.NewRenderer(renderer.BackendTypeWGPU, e.window)
	}

	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.ResizeCanvas(width, height)
	})

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32) error) {
	e.renderCallback = callback
}

func (e *engine) Run() {
	e.wg.Add(1)
	go e.runTickLoop()

	lastFrame := time.Now()
	e.window.Run(func() {
		now := time.Now()
		delta := now.Sub(lastFrame)
		if e.renderFrameLimit > 0 && delta < e.renderFrameLimit {
			time.Sleep(e.renderFrameLimit - delta)
			now = time.Now()
			delta = now.Sub(lastFrame)
		}
		lastFrame = now

		if e.renderCallback != nil {
			err := e.renderCallback(float32(delta.Seconds()))
			if renderer.ClassifyFrameError(err) == renderer.FrameErrorFatal {
				renderer.Logger().Error("fatal frame error, shutting down", "error", err)
				e.Quit()
				return
			}
		}
		if e.profilingEnabled {
			e.profiler.Tick()
		}
	})

	e.signalQuit()
	e.wg.Wait()
	e.renderer.Destroy(true)
}

// runTickLoop calls the tick callback at the configured rate until quit.
func (e *engine) runTickLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			if e.tickCallback != nil {
				e.tickCallback(float32(now.Sub(last).Seconds()))
			}
			last = now
		}
	}
}

func (e *engine) Quit() {
	e.signalQuit()
	if e.window.IsRunning() {
		_ = e.window.Close()
	}
}

// signalQuit closes the quit channel exactly once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}
