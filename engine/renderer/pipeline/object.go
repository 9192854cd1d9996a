package pipeline

import (
	"sync"

	"github.com/halcyon-gfx/halcyon/common"
	"github.com/halcyon-gfx/halcyon/engine/renderer/bind_group_provider"
)

// object is the implementation of the Object interface.
type object struct {
	mu sync.RWMutex

	// slot is the object's index within its pipeline. It is assigned at add
	// time, never changes, and addresses the object's ranges in the
	// pipeline's dynamic-offset buffers.
	slot uint32

	visible   bool
	instances uint32

	// vertexCount is the number of vertices for non-indexed draws.
	vertexCount uint32

	// mesh holds the vertex and index buffers for this object.
	mesh bind_group_provider.BindGroupProvider
}

// Object is a single renderable within a pipeline: a mesh plus per-object
// draw state. Transform data does not live here; it is written directly into
// the pipeline's dynamic-offset buffers at the object's slot.
type Object interface {
	// Slot returns the object's index within its pipeline.
	//
	// Returns:
	//   - uint32: the slot index
	Slot() uint32

	// Visible reports whether the object is drawn.
	//
	// Returns:
	//   - bool: true if the object is drawn
	Visible() bool

	// SetVisible sets whether the object is drawn.
	//
	// Parameters:
	//   - v: true to draw the object
	SetVisible(v bool)

	// Instances returns the instance count for draw calls.
	//
	// Returns:
	//   - uint32: the instance count
	Instances() uint32

	// SetInstances sets the instance count for draw calls.
	//
	// Parameters:
	//   - n: the instance count
	SetInstances(n uint32)

	// VertexCount returns the vertex count for non-indexed draws.
	//
	// Returns:
	//   - uint32: the vertex count
	VertexCount() uint32

	// Mesh returns the provider holding this object's vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	Mesh() bind_group_provider.BindGroupProvider
}

var _ Object = &object{}

// NewObject creates a new Object at the given slot with the provided mesh
// buffers. Defaults: visible, 1 instance.
//
// Parameters:
//   - slot: the object's index within its pipeline
//   - vertexCount: the vertex count for non-indexed draws
//   - mesh: the provider holding the object's mesh buffers
//   - opts: a variadic list of ObjectOption functions to configure the object
//
// Returns:
//   - Object: a new Object instance
func NewObject(slot, vertexCount uint32, mesh bind_group_provider.BindGroupProvider, opts ...ObjectOption) Object {
	o := &object{
		slot:        slot,
		visible:     true,
		instances:   1,
		vertexCount: vertexCount,
		mesh:        mesh,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ObjectOption is a functional option used to configure an Object during construction.
type ObjectOption func(*object)

// WithInstances sets the instance count for draw calls.
//
// Parameters:
//   - n: the instance count (default 1)
//
// Returns:
//   - ObjectOption: a function that sets the instance count for this object
func WithInstances(n uint32) ObjectOption {
	return func(o *object) {
		o.instances = common.Coalesce(n, o.instances)
	}
}

func (o *object) Slot() uint32 {
	return o.slot
}

func (o *object) Visible() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.visible
}

func (o *object) SetVisible(v bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = v
}

func (o *object) Instances() uint32 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.instances
}

func (o *object) SetInstances(n uint32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.instances = n
}

func (o *object) VertexCount() uint32 {
	return o.vertexCount
}

func (o *object) Mesh() bind_group_provider.BindGroupProvider {
	return o.mesh
}
