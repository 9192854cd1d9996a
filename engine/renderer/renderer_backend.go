package renderer

import (
	"errors"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyon-gfx/halcyon/common"
	"github.com/halcyon-gfx/halcyon/engine/renderer/bind_group_provider"
	"github.com/halcyon-gfx/halcyon/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// Frame acquisition errors. RenderFrame wraps surface errors with one of
// these sentinels so callers can branch with errors.Is, or classify them
// with ClassifyFrameError.
var (
	// ErrSurfaceLost indicates the surface was lost and must be reconfigured
	// before the next frame.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrSurfaceOutdated indicates the surface no longer matches the window,
	// typically mid-resize. The frame is skipped and the next one will succeed
	// once the surface is reconfigured.
	ErrSurfaceOutdated = errors.New("surface outdated")

	// ErrFrameTimeout indicates the swapchain image was not acquired in time.
	ErrFrameTimeout = errors.New("frame acquire timeout")

	// ErrOutOfMemory indicates the GPU is out of memory. Not recoverable.
	ErrOutOfMemory = errors.New("gpu out of memory")
)

// FrameErrorKind classifies a frame error by how the caller should react.
type FrameErrorKind int

const (
	// FrameErrorNone means the error is nil.
	FrameErrorNone FrameErrorKind = iota

	// FrameErrorTransient means the frame was dropped but the next attempt
	// should succeed without intervention.
	FrameErrorTransient

	// FrameErrorRecoverable means the surface must be reconfigured before
	// rendering can continue.
	FrameErrorRecoverable

	// FrameErrorFatal means rendering cannot continue on this device.
	FrameErrorFatal
)

// ClassifyFrameError maps a frame error to the reaction it requires: lost
// surfaces need a reconfigure, timeouts and outdated surfaces resolve on
// their own, and out-of-memory is fatal.
//
// Parameters:
//   - err: the error returned by Render, or nil
//
// Returns:
//   - FrameErrorKind: the classification
func ClassifyFrameError(err error) FrameErrorKind {
	if err == nil {
		return FrameErrorNone
	}
	switch {
	case errors.Is(err, ErrOutOfMemory):
		return FrameErrorFatal
	case errors.Is(err, ErrSurfaceLost):
		return FrameErrorRecoverable
	case errors.Is(err, ErrSurfaceOutdated), errors.Is(err, ErrFrameTimeout):
		return FrameErrorTransient
	}
	return FrameErrorFatal
}

// wrapSurfaceError attaches the matching sentinel to a raw surface error
// coming out of the swapchain. wgpu-native reports these as plain message
// strings, so matching is on the message text.
func wrapSurfaceError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "out of memory") || strings.Contains(msg, "outofmemory"):
		return errors.Join(ErrOutOfMemory, err)
	case strings.Contains(msg, "lost"):
		return errors.Join(ErrSurfaceLost, err)
	case strings.Contains(msg, "outdated"):
		return errors.Join(ErrSurfaceOutdated, err)
	case strings.Contains(msg, "timeout"):
		return errors.Join(ErrFrameTimeout, err)
	}
	return err
}

// DrawCommand is one object draw within a render pass. The renderer builds a
// draw list from its pipelines and objects; the backend replays it against
// the pass encoder.
type DrawCommand struct {
	// Pipeline supplies the compiled GPU pipeline and the bind group providers.
	Pipeline pipeline.Pipeline

	// Mesh holds the object's vertex and optional index buffers.
	Mesh bind_group_provider.BindGroupProvider

	// VertexCount is the vertex count for non-indexed draws. Ignored when the
	// mesh has an index buffer.
	VertexCount uint32

	// Instances is the instance count.
	Instances uint32

	// DynamicOffset addresses the object's slice of the pipeline's
	// dynamic-offset uniform buffers: uniform stride times the object's slot.
	DynamicOffset uint32
}

// wgpuRendererBackend is the contract the Renderer depends on from the
// WebGPU backend: surface and device management, resource creation, and
// render pass execution. Tests substitute a recording implementation.
type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// It also (re)creates the MSAA and depth textures sized to the new surface.
	//
	// Parameters:
	//   - width: the canvas width in pixels
	//   - height: the canvas height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect on the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SurfaceFormat returns the texture format of the configured surface.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format
	SurfaceFormat() wgpu.TextureFormat

	// UniformStride returns the aligned byte stride between per-object slices
	// of the dynamic-offset uniform buffers, from the device's minimum uniform
	// buffer offset alignment.
	//
	// Returns:
	//   - uint32: the aligned stride in bytes
	UniformStride() uint32

	// CreateTexture creates a sampleable, writable texture that can also serve
	// as a render target.
	//
	// Parameters:
	//   - width: the texture width in pixels
	//   - height: the texture height in pixels
	//   - useSurfaceFormat: true to use the surface format (required for
	//     render targets), false for RGBA8 unorm
	//
	// Returns:
	//   - *wgpu.Texture: the created texture
	//   - error: an error if creation failed
	CreateTexture(width, height uint32, useSurfaceFormat bool) (*wgpu.Texture, error)

	// WriteTextureRegion writes RGBA pixel data into a rectangular region of a texture.
	//
	// Parameters:
	//   - tex: the target texture
	//   - pixels: the pixel data, 4 bytes per pixel, row-major
	//   - x: the region's left edge in pixels
	//   - y: the region's top edge in pixels
	//   - width: the region width in pixels
	//   - height: the region height in pixels
	WriteTextureRegion(tex *wgpu.Texture, pixels []byte, x, y, width, height uint32)

	// ReleaseTexture releases a texture created with CreateTexture.
	//
	// Parameters:
	//   - tex: the texture to release, nil is ignored
	ReleaseTexture(tex *wgpu.Texture)

	// CompileRenderPipeline compiles the GPU pipeline for a pipeline record:
	// shader module, bind group layouts, vertex layout and render state. The
	// created layouts are stored on the record's bind group providers and the
	// compiled pipeline on the record itself.
	//
	// Parameters:
	//   - p: the pipeline record to compile
	//   - shaderSource: the WGSL source to compile
	//
	// Returns:
	//   - error: an error if compilation failed
	CompileRenderPipeline(p pipeline.Pipeline, shaderSource string) error

	// BuildTransformBindGroup allocates the transform buffer, sampler and
	// joint buffer for bind group 0 (reusing them on rebuild) and creates the
	// bind group with the given texture views. Pass nil textures to bind the
	// blank fallback.
	//
	// Parameters:
	//   - p: the pipeline record
	//   - first: the texture for binding 2, or nil
	//   - second: the texture for binding 3, or nil
	//
	// Returns:
	//   - error: an error if a resource could not be created
	BuildTransformBindGroup(p pipeline.Pipeline, first, second *wgpu.Texture) error

	// BuildUniformBindGroup allocates one dynamic-offset buffer per declared
	// custom uniform and creates bind group 1 on the pipeline's uniform
	// provider. No-op when the pipeline declares no uniforms.
	//
	// Parameters:
	//   - p: the pipeline record
	//
	// Returns:
	//   - error: an error if a resource could not be created
	BuildUniformBindGroup(p pipeline.Pipeline) error

	// InitMeshBuffers creates vertex/index buffers on the provider and uploads the given data.
	//
	// Parameters:
	//   - provider: the mesh provider to populate
	//   - vertexData: the raw vertex data
	//   - indexData: the raw index data, empty for non-indexed meshes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation failed
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// WriteBuffers flushes a batch of staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: the buffer writes to perform
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// RenderToTexture executes one render pass with the given texture as the
	// resolve target instead of the swapchain. The target must use the surface
	// format and match the canvas size.
	//
	// Parameters:
	//   - target: the destination texture
	//   - clear: the clear color
	//   - draws: the draw list
	//
	// Returns:
	//   - error: an error if the pass could not be encoded
	RenderToTexture(target *wgpu.Texture, clear common.Color, draws []DrawCommand) error

	// RenderFrame acquires the next swapchain image, executes one render pass
	// with the draw list and presents the result.
	//
	// Parameters:
	//   - clear: the clear color
	//   - draws: the draw list
	//
	// Returns:
	//   - error: a sentinel-wrapped surface error if the frame could not be acquired
	RenderFrame(clear common.Color, draws []DrawCommand) error

	// Destroy releases the MSAA and depth textures and, when requested, the
	// device itself.
	//
	// Parameters:
	//   - destroyDevice: true to also destroy the GPU device
	Destroy(destroyDevice bool)

	// Device returns the GPU device.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue returns the GPU queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// Adapter returns the GPU adapter.
	//
	// Returns:
	//   - *wgpu.Adapter: the adapter
	Adapter() *wgpu.Adapter

	// Surface returns the window surface.
	//
	// Returns:
	//   - *wgpu.Surface: the surface
	Surface() *wgpu.Surface
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
