// package pipeline holds the per-pipeline state the renderer manages: the
// compiled GPU pipeline, its configuration, its bind group providers and the
// objects drawn with it. Pipelines are created through the renderer, which
// compiles the GPU state and allocates the shared dynamic-offset buffers.
package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyon-gfx/halcyon/common"
	"github.com/halcyon-gfx/halcyon/engine/renderer/bind_group_provider"
)

// VertexType selects the vertex layout a pipeline consumes.
type VertexType int

const (
	// VertexTypeStatic is the standard layout: position, uv, normal.
	VertexTypeStatic VertexType = iota

	// VertexTypeAnimated extends the static layout with joint indices and
	// weights for GPU skinning.
	VertexTypeAnimated
)

// Uniform declares one custom uniform buffer exposed to the pipeline's
// shaders on bind group 1. Each declared uniform becomes a dynamic-offset
// buffer with one visible range of SizeInBytes per object.
type Uniform struct {
	// BindSlot is the binding index within bind group 1.
	BindSlot uint32
	// Visibility is the shader stage mask that can read the uniform.
	Visibility wgpu.ShaderStage
	// SizeInBytes is the visible range per object.
	SizeInBytes uint32
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// renderPipeline is the compiled GPU pipeline, set by the renderer backend.
	renderPipeline *wgpu.RenderPipeline

	// The following properties configure the pipeline during creation and are set through the builder options.

	shaderSource   string
	vertexEntry    string
	fragmentEntry  string
	maxObjectCount uint32
	vertexType     VertexType
	cullMode       wgpu.CullMode
	depthWrite     bool
	textures       [2]*common.TextureID
	uniforms       []Uniform
	maxJointCount  uint32

	// transforms is the bind group 0 provider: transform block buffer,
	// sampler, texture views and (for animated pipelines) the joint buffer.
	transforms bind_group_provider.BindGroupProvider
	// customUniforms is the bind group 1 provider, nil when no uniforms are declared.
	customUniforms bind_group_provider.BindGroupProvider

	// objects are the renderables drawn with this pipeline, indexed by slot.
	objects []Object
}

// Pipeline defines the interface for a render pipeline record. It carries the
// configuration used to compile the GPU pipeline, the bind group providers
// holding its GPU resources, and the objects drawn with it.
type Pipeline interface {
	// RenderPipeline returns the compiled GPU pipeline, or nil before compilation.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline or nil
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the compiled GPU pipeline.
	//
	// Parameters:
	//   - rp: the compiled pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// ShaderSource returns the WGSL source for this pipeline.
	//
	// Returns:
	//   - string: the shader source, empty to use the embedded default
	ShaderSource() string

	// VertexEntry returns the vertex shader entry point name.
	//
	// Returns:
	//   - string: the vertex entry point
	VertexEntry() string

	// FragmentEntry returns the fragment shader entry point name.
	//
	// Returns:
	//   - string: the fragment entry point
	FragmentEntry() string

	// MaxObjectCount returns the object capacity of this pipeline. The
	// capacity fixes the size of the dynamic-offset uniform buffers and
	// cannot change after creation.
	//
	// Returns:
	//   - uint32: the object capacity
	MaxObjectCount() uint32

	// VertexType returns the vertex layout this pipeline consumes.
	//
	// Returns:
	//   - VertexType: static or animated
	VertexType() VertexType

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// DepthWrite returns whether this pipeline writes the depth buffer.
	//
	// Returns:
	//   - bool: true if depth writes are enabled
	DepthWrite() bool

	// Textures returns the texture handles bound at bind group 0 bindings 2
	// and 3. A nil entry selects the blank fallback texture. The handles are
	// kept so bind group rebuilds re-resolve the same textures.
	//
	// Returns:
	//   - [2]*common.TextureID: the bound texture handles
	Textures() [2]*common.TextureID

	// Uniforms returns the custom uniform declarations for bind group 1.
	//
	// Returns:
	//   - []Uniform: the declared uniforms, nil if none
	Uniforms() []Uniform

	// MaxJointCount returns the joint capacity for animated pipelines.
	//
	// Returns:
	//   - uint32: the joint capacity
	MaxJointCount() uint32

	// Transforms returns the bind group 0 provider.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the transform provider
	Transforms() bind_group_provider.BindGroupProvider

	// CustomUniforms returns the bind group 1 provider, or nil when the
	// pipeline declares no custom uniforms.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the uniform provider or nil
	CustomUniforms() bind_group_provider.BindGroupProvider

	// SetCustomUniforms stores the bind group 1 provider.
	//
	// Parameters:
	//   - p: the uniform provider
	SetCustomUniforms(p bind_group_provider.BindGroupProvider)

	// Objects returns the objects drawn with this pipeline, indexed by slot.
	//
	// Returns:
	//   - []Object: the object list
	Objects() []Object

	// AddObject appends an object. The object's slot must equal the current
	// object count.
	//
	// Parameters:
	//   - o: the object to append
	AddObject(o Object)

	// ObjectCount returns the number of objects added so far.
	//
	// Returns:
	//   - uint32: the object count
	ObjectCount() uint32

	// Release frees the GPU resources owned by this pipeline: every object's
	// mesh buffers, both bind group providers and the compiled pipeline.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline record with the provided options.
//
// Defaults: embedded base shader, entry points vertexMain/fragmentMain,
// maxObjectCount 10, static vertex layout, no culling, depth writes enabled,
// no bound textures, no custom uniforms, maxJointCount 64.
//
// Parameters:
//   - opts: a variadic list of Option functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline record
func NewPipeline(opts ...Option) Pipeline {
	p := &pipeline{
		vertexEntry:    "vertexMain",
		fragmentEntry:  "fragmentMain",
		maxObjectCount: 10,
		vertexType:     VertexTypeStatic,
		cullMode:       wgpu.CullModeNone,
		depthWrite:     true,
		maxJointCount:  64,
		transforms:     bind_group_provider.NewBindGroupProvider("pipeline transforms"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) ShaderSource() string {
	return p.shaderSource
}

func (p *pipeline) VertexEntry() string {
	return p.vertexEntry
}

func (p *pipeline) FragmentEntry() string {
	return p.fragmentEntry
}

func (p *pipeline) MaxObjectCount() uint32 {
	return p.maxObjectCount
}

func (p *pipeline) VertexType() VertexType {
	return p.vertexType
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) DepthWrite() bool {
	return p.depthWrite
}

func (p *pipeline) Textures() [2]*common.TextureID {
	return p.textures
}

func (p *pipeline) Uniforms() []Uniform {
	return p.uniforms
}

func (p *pipeline) MaxJointCount() uint32 {
	return p.maxJointCount
}

func (p *pipeline) Transforms() bind_group_provider.BindGroupProvider {
	return p.transforms
}

func (p *pipeline) CustomUniforms() bind_group_provider.BindGroupProvider {
	return p.customUniforms
}

func (p *pipeline) SetCustomUniforms(provider bind_group_provider.BindGroupProvider) {
	p.customUniforms = provider
}

func (p *pipeline) Objects() []Object {
	return p.objects
}

func (p *pipeline) AddObject(o Object) {
	p.objects = append(p.objects, o)
}

func (p *pipeline) ObjectCount() uint32 {
	return uint32(len(p.objects))
}

func (p *pipeline) Release() {
	for _, o := range p.objects {
		if mesh := o.Mesh(); mesh != nil {
			mesh.Release()
		}
	}
	p.objects = nil
	if p.customUniforms != nil {
		p.customUniforms.Release()
		p.customUniforms = nil
	}
	if p.transforms != nil {
		p.transforms.Release()
	}
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
