package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyon-gfx/halcyon/common"
)

// Option is a functional option used to configure a Pipeline during construction.
type Option func(*pipeline)

// WithShader sets the WGSL shader source for this pipeline. An empty source
// selects the embedded default shader for the pipeline's vertex type.
//
// Parameters:
//   - source: the WGSL source code
//
// Returns:
//   - Option: a function that sets the shader source for this pipeline
func WithShader(source string) Option {
	return func(p *pipeline) {
		p.shaderSource = source
	}
}

// WithEntryPoints sets the vertex and fragment shader entry point names.
//
// Parameters:
//   - vertex: the vertex entry point name (default "vertexMain")
//   - fragment: the fragment entry point name (default "fragmentMain")
//
// Returns:
//   - Option: a function that sets the entry points for this pipeline
func WithEntryPoints(vertex, fragment string) Option {
	return func(p *pipeline) {
		p.vertexEntry = common.Coalesce(vertex, p.vertexEntry)
		p.fragmentEntry = common.Coalesce(fragment, p.fragmentEntry)
	}
}

// WithMaxObjectCount sets the object capacity for this pipeline. The capacity
// sizes the dynamic-offset uniform buffers and is fixed after creation.
//
// Parameters:
//   - count: the maximum number of objects (default 10)
//
// Returns:
//   - Option: a function that sets the object capacity for this pipeline
func WithMaxObjectCount(count uint32) Option {
	return func(p *pipeline) {
		p.maxObjectCount = common.Coalesce(count, p.maxObjectCount)
	}
}

// WithVertexType sets the vertex layout this pipeline consumes.
//
// Parameters:
//   - t: the vertex type (default VertexTypeStatic)
//
// Returns:
//   - Option: a function that sets the vertex type for this pipeline
func WithVertexType(t VertexType) Option {
	return func(p *pipeline) {
		p.vertexType = t
	}
}

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode to use (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
//
// Returns:
//   - Option: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) Option {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithDepthWrite sets whether this pipeline writes the depth buffer.
// Overlay pipelines disable depth writes so they composite over the scene.
//
// Parameters:
//   - enabled: true to write depth (the default)
//
// Returns:
//   - Option: a function that sets the depth write state for this pipeline
func WithDepthWrite(enabled bool) Option {
	return func(p *pipeline) {
		p.depthWrite = enabled
	}
}

// WithTextures binds textures to bind group 0 bindings 2 and 3. A nil handle
// leaves the blank fallback texture bound at that slot.
//
// Parameters:
//   - first: the texture handle for binding 2, or nil
//   - second: the texture handle for binding 3, or nil
//
// Returns:
//   - Option: a function that sets the bound textures for this pipeline
func WithTextures(first, second *common.TextureID) Option {
	return func(p *pipeline) {
		p.textures = [2]*common.TextureID{first, second}
	}
}

// WithUniforms declares custom uniform buffers on bind group 1, one
// dynamic-offset buffer per declaration.
//
// Parameters:
//   - uniforms: the uniform declarations
//
// Returns:
//   - Option: a function that sets the uniform declarations for this pipeline
func WithUniforms(uniforms ...Uniform) Option {
	return func(p *pipeline) {
		p.uniforms = uniforms
	}
}

// WithMaxJointCount sets the joint capacity for animated pipelines. The
// capacity sizes the shared joint transform buffer; the default animated
// shader sizes its joint array to match. A custom shader must declare a joint
// array of at least this capacity.
//
// Parameters:
//   - count: the maximum number of joints (default 64)
//
// Returns:
//   - Option: a function that sets the joint capacity for this pipeline
func WithMaxJointCount(count uint32) Option {
	return func(p *pipeline) {
		p.maxJointCount = common.Coalesce(count, p.maxJointCount)
	}
}
