package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer sets a buffer for a specific binding index.
//
// Parameters:
//   - binding: the binding index for this buffer
//   - buf: the buffer to associate with this binding
//
// Returns:
//   - BindGroupProviderOption: a function that sets the buffer for the specified binding
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}

// WithVertexBuffer sets the vertex buffer for this provider.
//
// Parameters:
//   - buf: the vertex buffer to associate with this provider
//
// Returns:
//   - BindGroupProviderOption: a function that sets the vertex buffer for this provider
func WithVertexBuffer(buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexBuffer = buf
	}
}

// WithIndexBuffer sets the index buffer and index count for this provider.
//
// Parameters:
//   - buf: the index buffer to associate with this provider
//   - count: the number of indices in the buffer
//
// Returns:
//   - BindGroupProviderOption: a function that sets the index buffer for this provider
func WithIndexBuffer(buf *wgpu.Buffer, count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexBuffer = buf
		p.indexCount = count
	}
}
