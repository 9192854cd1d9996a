package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyon-gfx/halcyon/common"
	"github.com/halcyon-gfx/halcyon/engine/camera"
	"github.com/halcyon-gfx/halcyon/engine/primitives"
	"github.com/halcyon-gfx/halcyon/engine/renderer/bind_group_provider"
	"github.com/halcyon-gfx/halcyon/engine/renderer/pipeline"
	"github.com/halcyon-gfx/halcyon/engine/renderer/text"
	"github.com/halcyon-gfx/halcyon/engine/window"
)

var (
	// ErrStaleHandle indicates a texture, pipeline or object handle that no
	// longer resolves to a live resource.
	ErrStaleHandle = errors.New("renderer: stale resource handle")

	// ErrPipelineFull indicates a pipeline is at its object capacity. The
	// capacity sizes the dynamic-offset buffers and is fixed at creation.
	ErrPipelineFull = errors.New("renderer: pipeline at max object count")

	// ErrTextureSizeMismatch indicates an image whose dimensions do not match
	// the target texture. Use UpdateTextureSize first.
	ErrTextureSizeMismatch = errors.New("renderer: image does not match texture size")

	// ErrNoVertexData indicates an ObjectSetup without mesh data for the
	// pipeline's vertex type.
	ErrNoVertexData = errors.New("renderer: object setup has no vertex data for the pipeline's vertex type")
)

// textureRecord tracks one texture the renderer owns along with the metadata
// needed for writes and bind group rebuilds.
type textureRecord struct {
	texture       *wgpu.Texture
	width         uint32
	height        uint32
	surfaceFormat bool
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	textures  arena[*textureRecord]
	pipelines arena[pipeline.Pipeline]

	width  int
	height int

	clearColor    common.Color
	defaultCamera camera.Camera

	// updatePool runs the CPU transform phase of UpdateObjects in parallel.
	// Workers persist across calls, avoiding per-call goroutine spawn overhead.
	updatePool worker.DynamicWorkerPool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *common.Color
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages textures, pipelines and their objects behind generational handles, writes
// per-object state into shared dynamic-offset uniform buffers, and executes render passes against
// the swapchain or offscreen textures. The Renderer also implements a backend which allows for
// multiple backend API implementations to exist.
type Renderer interface {
	// AddTexture creates a texture. When imagePath is non-empty the image is
	// decoded and uploaded, and its dimensions replace the given size; if
	// decoding fails a warning is logged and a blank texture of the given
	// size is created instead.
	//
	// Parameters:
	//   - width: the texture width in pixels, used when no image is given
	//   - height: the texture height in pixels, used when no image is given
	//   - imagePath: the path of an image file to upload, or empty
	//   - useSurfaceFormat: true to use the surface format, required for
	//     textures used as render targets
	//
	// Returns:
	//   - common.TextureID: the handle of the new texture
	//   - error: an error if the texture could not be created
	AddTexture(width, height uint32, imagePath string, useSurfaceFormat bool) (common.TextureID, error)

	// UpdateTexture decodes an image file and writes it into an existing
	// texture. The image dimensions must match the texture.
	//
	// Parameters:
	//   - id: the texture to update
	//   - imagePath: the path of the image file
	//
	// Returns:
	//   - error: ErrStaleHandle, a decode error, or ErrTextureSizeMismatch
	UpdateTexture(id common.TextureID, imagePath string) error

	// UpdateTextureSize replaces a texture with a new one of the given size.
	// The handle stays valid and now resolves to the new texture. When owner
	// names a pipeline, its bind group is rebuilt so both of its texture
	// slots keep pointing at live textures.
	//
	// Parameters:
	//   - id: the texture to resize
	//   - owner: the pipeline whose bind group references the texture, or nil
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: ErrStaleHandle or a creation error
	UpdateTextureSize(id common.TextureID, owner *common.PipelineID, width, height uint32) error

	// AddPipeline creates a pipeline record, compiles its GPU pipeline and
	// allocates its bind groups and dynamic-offset buffers.
	//
	// Parameters:
	//   - opts: a variadic list of pipeline.Option functions to configure the pipeline
	//
	// Returns:
	//   - common.PipelineID: the handle of the new pipeline
	//   - error: an error if compilation or allocation failed
	AddPipeline(opts ...pipeline.Option) (common.PipelineID, error)

	// AddObject adds an object to a pipeline: uploads its mesh buffers,
	// assigns it the next slot and writes an identity transform so the
	// object is drawable before its first update.
	//
	// Parameters:
	//   - setup: the object's mesh data and initial draw state
	//
	// Returns:
	//   - common.ObjectID: the handle of the new object
	//   - error: ErrStaleHandle, ErrPipelineFull or ErrNoVertexData
	AddObject(setup ObjectSetup) (common.ObjectID, error)

	// UpdateObject writes one object's transform block, visibility, joint
	// matrices and custom uniform values.
	//
	// Parameters:
	//   - update: the update to apply
	//
	// Returns:
	//   - error: ErrStaleHandle if the object's pipeline is gone
	UpdateObject(update ObjectUpdate) error

	// UpdateObjects applies a batch of object updates. Transform blocks are
	// computed in parallel and all buffer writes are flushed in one batch.
	//
	// Parameters:
	//   - updates: the updates to apply
	//
	// Returns:
	//   - error: the joined errors of any updates that failed
	UpdateObjects(updates []ObjectUpdate) error

	// RenderToTexture draws the given pipelines into a texture instead of the
	// swapchain. The target must have been created with useSurfaceFormat and
	// match the canvas size.
	//
	// Parameters:
	//   - pipelineIDs: the pipelines to draw, in order
	//   - target: the destination texture
	//   - clear: an override clear color, or nil for the renderer's clear color
	//
	// Returns:
	//   - error: ErrStaleHandle or a pass encoding error
	RenderToTexture(pipelineIDs []common.PipelineID, target common.TextureID, clear *common.Color) error

	// Render draws the given pipelines to the swapchain and presents the
	// frame. On a recoverable surface error the surface is reconfigured
	// before returning; classify the error with ClassifyFrameError.
	//
	// Parameters:
	//   - pipelineIDs: the pipelines to draw, in order
	//
	// Returns:
	//   - error: a sentinel-wrapped surface error, or nil
	Render(pipelineIDs []common.PipelineID) error

	// RenderStringOnTexture rasterizes a string onto a texture. Nothing is
	// written when any glyph would fall outside the texture.
	//
	// Parameters:
	//   - id: the target texture
	//   - input: the string draw request
	//
	// Returns:
	//   - error: ErrStaleHandle or a text layout error
	RenderStringOnTexture(id common.TextureID, input text.StringInput) error

	// ResizeCanvas reconfigures the surface for a new canvas size. Zero sizes
	// are ignored so minimized windows don't tear down the swapchain.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ResizeCanvas(width, height int)

	// SetClearColor sets the color render passes clear to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// SetPresentMode sets the surface present mode. Takes effect on the next
	// surface configure.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// AddOverlayPipeline creates a canvas-sized surface-format texture, a
	// pipeline that composites it over the scene as a full-screen quad, and
	// the quad object. Draw the overlay pipeline last; write HUD text onto
	// its texture with RenderStringOnTexture.
	//
	// Returns:
	//   - common.PipelineID: the overlay pipeline handle
	//   - common.TextureID: the overlay texture handle
	//   - error: an error if any resource could not be created
	AddOverlayPipeline() (common.PipelineID, common.TextureID, error)

	// Destroy releases every texture, every pipeline with its objects and
	// buffers, and finally the backend's render targets. Pass true to also
	// destroy the GPU device.
	//
	// Parameters:
	//   - destroyDevice: true to also destroy the GPU device
	Destroy(destroyDevice bool)
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given window.
//
// Defaults: MSAA4x, uncapped present mode, clear color (0.01, 0.01, 0.02, 1)
// and a default orthographic camera at (0, 0, 100) looking at the origin.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - w: the window supplying the surface
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType:   backendType,
		clearColor:    common.Color{R: 0.01, G: 0.01, B: 0.02, A: 1.0},
		defaultCamera: camera.NewCamera(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.clearColor = *r.pendingClearColor
	}

	r.width = w.Width()
	r.height = w.Height()
	r.backend.ConfigureSurface(r.width, r.height)

	// Queue size of 256 accommodates typical batch update sizes with headroom.
	r.updatePool = worker.NewDynamicWorkerPool(runtime.NumCPU(), 256, 1*time.Second)

	return r
}

func (r *renderer) AddTexture(width, height uint32, imagePath string, useSurfaceFormat bool) (common.TextureID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addTextureLocked(width, height, imagePath, useSurfaceFormat)
}

func (r *renderer) addTextureLocked(width, height uint32, imagePath string, useSurfaceFormat bool) (common.TextureID, error) {
	var pixels []byte
	if imagePath != "" {
		data, imgWidth, imgHeight, err := common.DecodeImage(imagePath)
		if err != nil {
			// Degrade to a blank texture of the requested size so the handle
			// stays usable; the caller can retry with UpdateTexture.
			Logger().Warn("could not decode image, creating blank texture",
				"path", imagePath,
				"error", err,
			)
		} else {
			pixels = data
			width = imgWidth
			height = imgHeight
		}
	}

	tex, err := r.backend.CreateTexture(width, height, useSurfaceFormat)
	if err != nil {
		return common.TextureID{}, err
	}
	if pixels != nil {
		r.backend.WriteTextureRegion(tex, pixels, 0, 0, width, height)
	}

	index, generation := r.textures.insert(&textureRecord{
		texture:       tex,
		width:         width,
		height:        height,
		surfaceFormat: useSurfaceFormat,
	})
	return common.TextureID{Index: index, Generation: generation}, nil
}

func (r *renderer) UpdateTexture(id common.TextureID, imagePath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.textures.get(id.Index, id.Generation)
	if !ok {
		return fmt.Errorf("%w: texture %d", ErrStaleHandle, id.Index)
	}

	pixels, width, height, err := common.DecodeImage(imagePath)
	if err != nil {
		return err
	}
	if width != rec.width || height != rec.height {
		return fmt.Errorf("%w: image %dx%d, texture %dx%d", ErrTextureSizeMismatch, width, height, rec.width, rec.height)
	}

	r.backend.WriteTextureRegion(rec.texture, pixels, 0, 0, width, height)
	return nil
}

func (r *renderer) UpdateTextureSize(id common.TextureID, owner *common.PipelineID, width, height uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.textures.get(id.Index, id.Generation)
	if !ok {
		return fmt.Errorf("%w: texture %d", ErrStaleHandle, id.Index)
	}

	tex, err := r.backend.CreateTexture(width, height, rec.surfaceFormat)
	if err != nil {
		return err
	}
	r.backend.ReleaseTexture(rec.texture)
	r.textures.replace(id.Index, id.Generation, &textureRecord{
		texture:       tex,
		width:         width,
		height:        height,
		surfaceFormat: rec.surfaceFormat,
	})

	// Rebuild the owning pipeline's bind group so both texture slots resolve
	// to live textures again.
	if owner != nil {
		p, ok := r.pipelines.get(owner.Index, owner.Generation)
		if !ok {
			return fmt.Errorf("%w: pipeline %d", ErrStaleHandle, owner.Index)
		}
		return r.rebuildTransformBindGroupLocked(p)
	}
	return nil
}

// resolveTextureLocked maps an optional texture handle to its GPU texture.
// Nil handles resolve to nil, which the backend replaces with the blank
// fallback texture.
func (r *renderer) resolveTextureLocked(id *common.TextureID) (*wgpu.Texture, error) {
	if id == nil {
		return nil, nil
	}
	rec, ok := r.textures.get(id.Index, id.Generation)
	if !ok {
		return nil, fmt.Errorf("%w: texture %d", ErrStaleHandle, id.Index)
	}
	return rec.texture, nil
}

// rebuildTransformBindGroupLocked re-resolves the pipeline's recorded texture
// handles and rebuilds bind group 0 around them.
func (r *renderer) rebuildTransformBindGroupLocked(p pipeline.Pipeline) error {
	textures := p.Textures()
	first, err := r.resolveTextureLocked(textures[0])
	if err != nil {
		return err
	}
	second, err := r.resolveTextureLocked(textures[1])
	if err != nil {
		return err
	}
	return r.backend.BuildTransformBindGroup(p, first, second)
}

func (r *renderer) AddPipeline(opts ...pipeline.Option) (common.PipelineID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addPipelineLocked(opts...)
}

func (r *renderer) addPipelineLocked(opts ...pipeline.Option) (common.PipelineID, error) {
	p := pipeline.NewPipeline(opts...)

	source := p.ShaderSource()
	if source == "" {
		source = defaultShaderSource(p.VertexType(), p.MaxJointCount())
	}

	if err := r.backend.CompileRenderPipeline(p, source); err != nil {
		return common.PipelineID{}, err
	}
	if err := r.rebuildTransformBindGroupLocked(p); err != nil {
		return common.PipelineID{}, err
	}
	if err := r.backend.BuildUniformBindGroup(p); err != nil {
		return common.PipelineID{}, err
	}

	index, generation := r.pipelines.insert(p)
	return common.PipelineID{Index: index, Generation: generation}, nil
}

func (r *renderer) AddObject(setup ObjectSetup) (common.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addObjectLocked(setup)
}

func (r *renderer) addObjectLocked(setup ObjectSetup) (common.ObjectID, error) {
	p, ok := r.pipelines.get(setup.Pipeline.Index, setup.Pipeline.Generation)
	if !ok {
		return common.ObjectID{}, fmt.Errorf("%w: pipeline %d", ErrStaleHandle, setup.Pipeline.Index)
	}
	if p.ObjectCount() >= p.MaxObjectCount() {
		return common.ObjectID{}, fmt.Errorf("%w: capacity %d", ErrPipelineFull, p.MaxObjectCount())
	}

	var vertexData []byte
	var vertexCount int
	if p.VertexType() == pipeline.VertexTypeAnimated {
		vertexData = common.SliceToBytes(setup.AnimVertices)
		vertexCount = len(setup.AnimVertices)
	} else {
		vertexData = common.SliceToBytes(setup.Vertices)
		vertexCount = len(setup.Vertices)
	}
	if vertexCount == 0 {
		return common.ObjectID{}, ErrNoVertexData
	}

	slot := p.ObjectCount()
	mesh := bind_group_provider.NewBindGroupProvider("object mesh")
	if err := r.backend.InitMeshBuffers(mesh, vertexData, common.SliceToBytes(setup.Indices), len(setup.Indices)); err != nil {
		return common.ObjectID{}, err
	}

	obj := pipeline.NewObject(slot, uint32(vertexCount), mesh, pipeline.WithInstances(setup.Instances))
	p.AddObject(obj)

	id := common.ObjectID{Pipeline: setup.Pipeline, Slot: slot}

	// Seed the object's transform block so it is drawable before its first
	// explicit update.
	writes, err := r.objectWritesLocked(NewObjectUpdate(id), nil)
	if err != nil {
		return common.ObjectID{}, err
	}
	r.backend.WriteBuffers(writes)

	return id, nil
}

// objectWritesLocked validates an update and turns it into staged buffer
// writes. A precomputed transform block may be supplied for batch updates;
// pass nil to compute it here.
func (r *renderer) objectWritesLocked(u ObjectUpdate, block []byte) ([]bind_group_provider.BufferWrite, error) {
	p, ok := r.pipelines.get(u.Object.Pipeline.Index, u.Object.Pipeline.Generation)
	if !ok {
		return nil, fmt.Errorf("%w: pipeline %d", ErrStaleHandle, u.Object.Pipeline.Index)
	}
	objects := p.Objects()
	if int(u.Object.Slot) >= len(objects) {
		return nil, fmt.Errorf("%w: object slot %d", ErrStaleHandle, u.Object.Slot)
	}
	obj := objects[u.Object.Slot]
	obj.SetVisible(u.Visible)

	if block == nil {
		block = computeTransformBlock(u, r.defaultCamera, float32(r.width), float32(r.height))
	}

	stride := r.backend.UniformStride()
	offset := uint64(stride) * uint64(u.Object.Slot)

	writes := []bind_group_provider.BufferWrite{
		{Provider: p.Transforms(), Binding: 0, Offset: offset, Data: block},
	}

	if p.VertexType() == pipeline.VertexTypeAnimated && len(u.Joints) > 0 {
		joints := u.Joints
		if max := int(p.MaxJointCount()); len(joints) > max {
			joints = joints[:max]
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: p.Transforms(),
			Binding:  4,
			Offset:   0,
			Data:     common.SliceToBytes(joints),
		})
	}

	if len(u.Uniforms) > 0 && p.CustomUniforms() != nil {
		for _, data := range u.Uniforms {
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: p.CustomUniforms(),
				Binding:  int(data.BindSlot),
				Offset:   offset,
				Data:     data.Data,
			})
		}
	}

	return writes, nil
}

func (r *renderer) UpdateObject(update ObjectUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	writes, err := r.objectWritesLocked(update, nil)
	if err != nil {
		return err
	}
	r.backend.WriteBuffers(writes)
	return nil
}

func (r *renderer) UpdateObjects(updates []ObjectUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Phase 1: compute transform blocks in parallel. Matrix math dominates
	// batch update cost and is independent per object.
	width, height := float32(r.width), float32(r.height)
	blocks := make([][]byte, len(updates))
	var wg sync.WaitGroup
	for i := range updates {
		wg.Add(1)
		idx := i
		r.updatePool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				blocks[idx] = computeTransformBlock(updates[idx], r.defaultCamera, width, height)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: stage every write and flush the batch in one call.
	var errs []error
	writes := make([]bind_group_provider.BufferWrite, 0, len(updates))
	for i, u := range updates {
		w, err := r.objectWritesLocked(u, blocks[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		writes = append(writes, w...)
	}
	r.backend.WriteBuffers(writes)

	return errors.Join(errs...)
}

// buildDrawListLocked flattens the given pipelines' visible objects into
// backend draw commands. Stale pipeline handles are skipped with a warning so
// one bad handle doesn't drop the whole frame.
func (r *renderer) buildDrawListLocked(pipelineIDs []common.PipelineID) []DrawCommand {
	stride := r.backend.UniformStride()
	var draws []DrawCommand
	for _, id := range pipelineIDs {
		p, ok := r.pipelines.get(id.Index, id.Generation)
		if !ok {
			Logger().Warn("skipping stale pipeline handle", "index", id.Index)
			continue
		}
		for _, obj := range p.Objects() {
			if !obj.Visible() {
				continue
			}
			draws = append(draws, DrawCommand{
				Pipeline:      p,
				Mesh:          obj.Mesh(),
				VertexCount:   obj.VertexCount(),
				Instances:     obj.Instances(),
				DynamicOffset: stride * obj.Slot(),
			})
		}
	}
	return draws
}

func (r *renderer) RenderToTexture(pipelineIDs []common.PipelineID, target common.TextureID, clear *common.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.textures.get(target.Index, target.Generation)
	if !ok {
		return fmt.Errorf("%w: texture %d", ErrStaleHandle, target.Index)
	}

	clearColor := r.clearColor
	if clear != nil {
		clearColor = *clear
	}

	return r.backend.RenderToTexture(rec.texture, clearColor, r.buildDrawListLocked(pipelineIDs))
}

func (r *renderer) Render(pipelineIDs []common.PipelineID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.backend.RenderFrame(r.clearColor, r.buildDrawListLocked(pipelineIDs))
	switch ClassifyFrameError(err) {
	case FrameErrorRecoverable:
		Logger().Warn("surface lost, reconfiguring", "error", err)
		r.backend.ConfigureSurface(r.width, r.height)
	case FrameErrorTransient:
		Logger().Debug("transient frame error, skipping frame", "error", err)
	}
	return err
}

func (r *renderer) RenderStringOnTexture(id common.TextureID, input text.StringInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.textures.get(id.Index, id.Generation)
	if !ok {
		return fmt.Errorf("%w: texture %d", ErrStaleHandle, id.Index)
	}

	// Surface-format textures on most platforms are BGRA; glyph pixels are
	// laid out RGBA and need their channels swapped to match.
	format := wgpu.TextureFormatRGBA8Unorm
	if rec.surfaceFormat {
		format = r.backend.SurfaceFormat()
	}
	swapRB := format == wgpu.TextureFormatBGRA8Unorm || format == wgpu.TextureFormatBGRA8UnormSrgb

	glyphs, err := text.LayoutString(input, rec.width, rec.height, swapRB)
	if err != nil {
		return err
	}
	for _, g := range glyphs {
		r.backend.WriteTextureRegion(rec.texture, g.Pixels, g.X, g.Y, g.Width, g.Height)
	}
	return nil
}

func (r *renderer) ResizeCanvas(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	r.width = width
	r.height = height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetClearColor(c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) AddOverlayPipeline() (common.PipelineID, common.TextureID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	textureID, err := r.addTextureLocked(uint32(r.width), uint32(r.height), "", true)
	if err != nil {
		return common.PipelineID{}, common.TextureID{}, err
	}

	pipelineID, err := r.addPipelineLocked(
		pipeline.WithShader(textShaderSource),
		pipeline.WithMaxObjectCount(1),
		pipeline.WithDepthWrite(false),
		pipeline.WithTextures(&textureID, nil),
	)
	if err != nil {
		return common.PipelineID{}, common.TextureID{}, err
	}

	// Full-screen quad in clip space; the overlay shader passes positions
	// straight through.
	vertices, indices := primitives.RectIndexed(2.0, 2.0, 0.0)
	if _, err := r.addObjectLocked(ObjectSetup{
		Pipeline: pipelineID,
		Vertices: vertices,
		Indices:  indices,
	}); err != nil {
		return common.PipelineID{}, common.TextureID{}, err
	}

	return pipelineID, textureID, nil
}

func (r *renderer) Destroy(destroyDevice bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.textures.clear(func(rec *textureRecord) {
		r.backend.ReleaseTexture(rec.texture)
	})
	r.pipelines.clear(func(p pipeline.Pipeline) {
		p.Release()
	})
	r.backend.Destroy(destroyDevice)
}
