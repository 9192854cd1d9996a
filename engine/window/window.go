// package window provides the platform window the renderer draws into: the
// WebGPU surface descriptor, the current framebuffer size and the event loop.
// Input events are forwarded to caller-registered callbacks; the package does
// no input mapping of its own.
package window

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the platform window and event source consumed by the renderer.
type Window interface {
	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating
	// a WebGPU surface for this window. The descriptor is platform-appropriate
	// (Windows HWND, X11 Xlib, Wayland, macOS Metal).
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the current framebuffer width in pixels. On high-DPI
	// displays this differs from the window size.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// SetResizeCallback sets the function called when the framebuffer size
	// changes. The renderer reconfigures its surface from this callback.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common key constants)
	SetKeyDownCallback(callback func(key uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(key uint32))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the scroll delta (positive = up)
	SetScrollCallback(callback func(delta float32))

	// Run drives the event loop until the window closes, calling update once
	// per iteration. Must be called from the main goroutine.
	//
	// Parameters:
	//   - update: function called each loop iteration, or nil
	Run(update func())

	// IsRunning returns true while the window is open.
	//
	// Returns:
	//   - bool: true if the window has not been closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: an error if the window was never opened
	Close() error
}
