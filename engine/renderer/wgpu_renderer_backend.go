package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyon-gfx/halcyon/common"
	"github.com/halcyon-gfx/halcyon/engine/renderer/bind_group_provider"
	"github.com/halcyon-gfx/halcyon/engine/renderer/pipeline"
)

const (
	// transformBlockSize is the byte size of the per-object transform block:
	// model, view and projection matrices, 16 float32 each.
	transformBlockSize = 3 * 16 * 4

	// jointMatrixSize is the byte size of a single joint transform matrix.
	jointMatrixSize = 16 * 4

	// blankTextureSize is the edge length of the fallback texture bound at
	// texture slots that have no texture assigned.
	blankTextureSize = 10
)

// wgpuRendererBackendImpl implements the WebGPU rendering backend.
type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	sampleCount   MSAASampleCount
	uniformStride uint32

	width  int
	height int

	// MSAA color target and depth buffer, recreated on every surface
	// configure so they always match the canvas size.
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	// blankTexture backs texture bindings that have no texture assigned.
	blankTexture *wgpu.Texture
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	limits := wgpu.DefaultLimits()
	w.uniformStride = limits.MinUniformBufferOffsetAlignment

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	// Fallback texture for unassigned texture slots. Written once with
	// transparent pixels so sampling it is deterministic.
	blank, err := w.createTextureLocked(blankTextureSize, blankTextureSize, wgpu.TextureFormatRGBA8Unorm)
	if err != nil {
		panic(err)
	}
	w.blankTexture = blank
	w.writeTextureRegionLocked(blank, make([]byte, blankTextureSize*blankTextureSize*4), 0, 0, blankTextureSize, blankTextureSize)

	return w
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.width = width
	b.height = height

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	b.releaseRenderTargetsLocked()

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is
		// written to the real target as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	Logger().Info("surface configured",
		"width", width,
		"height", height,
		"format", *b.surfaceFormat,
		"msaa", count,
	)
}

// releaseRenderTargetsLocked frees the MSAA and depth textures. Callers must
// hold b.mu.
func (b *wgpuRendererBackendImpl) releaseRenderTargetsLocked() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) SurfaceFormat() wgpu.TextureFormat {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return wgpu.TextureFormatUndefined
	}
	return *b.surfaceFormat
}

func (b *wgpuRendererBackendImpl) UniformStride() uint32 {
	return b.uniformStride
}

func (b *wgpuRendererBackendImpl) CreateTexture(width, height uint32, useSurfaceFormat bool) (*wgpu.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	format := wgpu.TextureFormatRGBA8Unorm
	if useSurfaceFormat && b.surfaceFormat != nil {
		format = *b.surfaceFormat
	}
	return b.createTextureLocked(width, height, format)
}

// createTextureLocked creates a sampleable texture that can also serve as a
// render pass resolve target. Callers must hold b.mu.
func (b *wgpuRendererBackendImpl) createTextureLocked(width, height uint32, format wgpu.TextureFormat) (*wgpu.Texture, error) {
	return b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Render Texture",
		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst | wgpu.TextureUsageRenderAttachment,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		MipLevelCount: 1,
		SampleCount:   1,
	})
}

func (b *wgpuRendererBackendImpl) ReleaseTexture(tex *wgpu.Texture) {
	if tex != nil {
		tex.Release()
	}
}

func (b *wgpuRendererBackendImpl) WriteTextureRegion(tex *wgpu.Texture, pixels []byte, x, y, width, height uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.writeTextureRegionLocked(tex, pixels, x, y, width, height)
}

func (b *wgpuRendererBackendImpl) writeTextureRegionLocked(tex *wgpu.Texture, pixels []byte, x, y, width, height uint32) {
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: x, Y: y},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)
}

// transformLayoutEntries builds the bind group 0 layout entries for a
// pipeline: the dynamic-offset transform buffer, the sampler, two sampled
// textures, and for animated pipelines the joint transform buffer.
func transformLayoutEntries(p pipeline.Pipeline) []wgpu.BindGroupLayoutEntry {
	entries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   transformBlockSize,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
		{
			Binding:    2,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    3,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
	}
	if p.VertexType() == pipeline.VertexTypeAnimated {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    4,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(p.MaxJointCount()) * jointMatrixSize,
			},
		})
	}
	return entries
}

// vertexBufferLayout builds the vertex buffer layout for a vertex type.
// Static: position, uv, normal. Animated adds joint indices and weights.
func vertexBufferLayout(t pipeline.VertexType) wgpu.VertexBufferLayout {
	attrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
	}
	stride := uint64(32)
	if t == pipeline.VertexTypeAnimated {
		attrs = append(attrs,
			wgpu.VertexAttribute{Format: wgpu.VertexFormatUint32x4, Offset: 32, ShaderLocation: 3},
			wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 4},
		)
		stride = 64
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

func (b *wgpuRendererBackendImpl) CompileRenderPipeline(p pipeline.Pipeline, shaderSource string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return fmt.Errorf("surface not configured")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Pipeline Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: shaderSource,
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	transformLayout := p.Transforms().BindGroupLayout()
	if transformLayout == nil {
		transformLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   "Transform Bind Group Layout",
			Entries: transformLayoutEntries(p),
		})
		if err != nil {
			return err
		}
		p.Transforms().SetBindGroupLayout(transformLayout)
	}

	bindGroupLayouts := []*wgpu.BindGroupLayout{transformLayout}

	if len(p.Uniforms()) > 0 {
		uniformProvider := p.CustomUniforms()
		if uniformProvider == nil {
			uniformProvider = bind_group_provider.NewBindGroupProvider("pipeline uniforms")
			p.SetCustomUniforms(uniformProvider)
		}
		uniformLayout := uniformProvider.BindGroupLayout()
		if uniformLayout == nil {
			entries := make([]wgpu.BindGroupLayoutEntry, 0, len(p.Uniforms()))
			for _, u := range p.Uniforms() {
				entries = append(entries, wgpu.BindGroupLayoutEntry{
					Binding:    u.BindSlot,
					Visibility: u.Visibility,
					Buffer: wgpu.BufferBindingLayout{
						Type:             wgpu.BufferBindingTypeUniform,
						HasDynamicOffset: true,
						MinBindingSize:   uint64(u.SizeInBytes),
					},
				})
			}
			uniformLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
				Label:   "Uniform Bind Group Layout",
				Entries: entries,
			})
			if err != nil {
				return err
			}
			uniformProvider.SetBindGroupLayout(uniformLayout)
		}
		bindGroupLayouts = append(bindGroupLayouts, uniformLayout)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Render Pipeline Layout",
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntry(),
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout(p.VertexType())},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntry(),
			Targets: []wgpu.ColorTargetState{
				{
					Format: *b.surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count:                  uint32(b.sampleCount),
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: b.sampleCount > 1,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWrite(),
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)

	Logger().Debug("render pipeline compiled",
		"vertexType", p.VertexType(),
		"maxObjects", p.MaxObjectCount(),
		"uniforms", len(p.Uniforms()),
	)

	return nil
}

func (b *wgpuRendererBackendImpl) BuildTransformBindGroup(p pipeline.Pipeline, first, second *wgpu.Texture) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	provider := p.Transforms()
	layout := provider.BindGroupLayout()
	if layout == nil {
		return fmt.Errorf("pipeline not compiled: no transform bind group layout")
	}

	// Transform buffer: one aligned slice per object slot.
	buf := provider.Buffer(0)
	if buf == nil {
		var err error
		buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Buffer",
			Size:  uint64(p.MaxObjectCount()) * uint64(b.uniformStride),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		provider.SetBuffer(0, buf)
	}

	samp := provider.Sampler(1)
	if samp == nil {
		var err error
		samp, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
			Label:         provider.Label() + " Sampler",
			AddressModeU:  wgpu.AddressModeClampToEdge,
			AddressModeV:  wgpu.AddressModeClampToEdge,
			AddressModeW:  wgpu.AddressModeClampToEdge,
			MagFilter:     wgpu.FilterModeLinear,
			MinFilter:     wgpu.FilterModeNearest,
			MipmapFilter:  wgpu.MipmapFilterModeNearest,
			LodMinClamp:   0.0,
			LodMaxClamp:   32.0,
			MaxAnisotropy: 1,
		})
		if err != nil {
			return err
		}
		provider.SetSampler(1, samp)
	}

	// Texture views are recreated on every rebuild so resized textures take
	// effect. Unassigned slots get a view of the blank fallback texture.
	for binding, tex := range map[int]*wgpu.Texture{2: first, 3: second} {
		if tex == nil {
			tex = b.blankTexture
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			return err
		}
		if old := provider.TextureView(binding); old != nil {
			old.Release()
		}
		provider.SetTextureView(binding, view)
	}

	entries := []wgpu.BindGroupEntry{
		{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    transformBlockSize,
		},
		{
			Binding: 1,
			Sampler: samp,
		},
		{
			Binding:     2,
			TextureView: provider.TextureView(2),
		},
		{
			Binding:     3,
			TextureView: provider.TextureView(3),
		},
	}

	if p.VertexType() == pipeline.VertexTypeAnimated {
		jointBuf := provider.Buffer(4)
		if jointBuf == nil {
			var err error
			jointBuf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: provider.Label() + " Joint Buffer",
				Size:  uint64(p.MaxJointCount()) * jointMatrixSize,
				Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return err
			}
			provider.SetBuffer(4, jointBuf)
		}
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: 4,
			Buffer:  jointBuf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		})
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	if old := provider.BindGroup(); old != nil {
		old.Release()
	}
	provider.SetBindGroup(bindGroup)

	return nil
}

func (b *wgpuRendererBackendImpl) BuildUniformBindGroup(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(p.Uniforms()) == 0 {
		return nil
	}
	provider := p.CustomUniforms()
	if provider == nil || provider.BindGroupLayout() == nil {
		return fmt.Errorf("pipeline not compiled: no uniform bind group layout")
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(p.Uniforms()))
	for _, u := range p.Uniforms() {
		binding := int(u.BindSlot)
		buf := provider.Buffer(binding)
		if buf == nil {
			var err error
			buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: provider.Label() + " Buffer",
				Size:  uint64(p.MaxObjectCount()) * uint64(b.uniformStride),
				Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return err
			}
			provider.SetBuffer(binding, buf)
		}
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: u.BindSlot,
			Buffer:  buf,
			Offset:  0,
			Size:    uint64(u.SizeInBytes),
		})
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  provider.BindGroupLayout(),
		Entries: entries,
	})
	if err != nil {
		return err
	}
	if old := provider.BindGroup(); old != nil {
		old.Release()
	}
	provider.SetBindGroup(bindGroup)

	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            provider.Label() + " Vertex Buffer",
			Size:             uint64(len(vertexData)),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            provider.Label() + " Index Buffer",
			Size:             uint64(len(indexData)),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(indexCount)

	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

// encodeDrawList replays the draw list against a render pass encoder. Every
// draw binds the pipeline's transform bind group at the object's dynamic
// offset; pipelines with custom uniforms bind group 1 at the same offset,
// once per declared uniform buffer.
func encodeDrawList(pass *wgpu.RenderPassEncoder, draws []DrawCommand) {
	for _, d := range draws {
		rp := d.Pipeline.RenderPipeline()
		if rp == nil {
			continue
		}
		pass.SetPipeline(rp)
		pass.SetBindGroup(0, d.Pipeline.Transforms().BindGroup(), []uint32{d.DynamicOffset})
		if uniforms := d.Pipeline.CustomUniforms(); uniforms != nil {
			offsets := make([]uint32, len(d.Pipeline.Uniforms()))
			for i := range offsets {
				offsets[i] = d.DynamicOffset
			}
			pass.SetBindGroup(1, uniforms.BindGroup(), offsets)
		}
		pass.SetVertexBuffer(0, d.Mesh.VertexBuffer(), 0, wgpu.WholeSize)
		if d.Mesh.IndexBuffer() != nil {
			pass.SetIndexBuffer(d.Mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(uint32(d.Mesh.IndexCount()), d.Instances, 0, 0, 0)
		} else {
			pass.Draw(d.VertexCount, d.Instances, 0, 0)
		}
	}
}

// renderPassLocked encodes and submits one render pass targeting the given
// view. With MSAA on, the pass draws into the MSAA texture and resolves into
// the target; otherwise it draws the target directly. Callers must hold b.mu.
func (b *wgpuRendererBackendImpl) renderPassLocked(target *wgpu.TextureView, clear common.Color, draws []DrawCommand) error {
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	colorAttachment := wgpu.RenderPassColorAttachment{
		View:    target,
		LoadOp:  wgpu.LoadOpClear,
		StoreOp: wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: clear.R, G: clear.G, B: clear.B, A: clear.A,
		},
	}
	if b.sampleCount > 1 {
		colorAttachment.View = b.msaaTextureView
		colorAttachment.ResolveTarget = target
		colorAttachment.StoreOp = wgpu.StoreOpDiscard // Don't store MSAA data, just resolve
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{colorAttachment},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard, // Depth not needed after resolving
			DepthClearValue: 1.0,
		},
	})
	encodeDrawList(pass, draws)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	return nil
}

func (b *wgpuRendererBackendImpl) RenderToTexture(target *wgpu.Texture, clear common.Color, draws []DrawCommand) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	view, err := target.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	return b.renderPassLocked(view, clear, draws)
}

func (b *wgpuRendererBackendImpl) RenderFrame(clear common.Color, draws []DrawCommand) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return wrapSurfaceError(err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	if err := b.renderPassLocked(view, clear, draws); err != nil {
		return err
	}

	b.surface.Present()

	return nil
}

func (b *wgpuRendererBackendImpl) Destroy(destroyDevice bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseRenderTargetsLocked()

	if b.blankTexture != nil {
		b.blankTexture.Release()
		b.blankTexture = nil
	}

	if destroyDevice && b.device != nil {
		b.device.Release()
		b.device = nil
		b.queue = nil
	}
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Adapter() *wgpu.Adapter {
	return b.adapter
}

func (b *wgpuRendererBackendImpl) Surface() *wgpu.Surface {
	return b.surface
}
