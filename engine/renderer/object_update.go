package renderer

import (
	"github.com/halcyon-gfx/halcyon/common"
	"github.com/halcyon-gfx/halcyon/engine/camera"
)

// ObjectSetup describes a new object added to a pipeline: its mesh data and
// initial draw state. Exactly one of Vertices or AnimVertices must be set,
// matching the pipeline's vertex type.
type ObjectSetup struct {
	// Pipeline is the pipeline the object is drawn with.
	Pipeline common.PipelineID

	// Vertices is the mesh data for static pipelines.
	Vertices []common.Vertex

	// AnimVertices is the mesh data for animated pipelines.
	AnimVertices []common.VertexAnim

	// Indices is the optional index list. Objects without indices are drawn
	// with a plain vertex draw.
	Indices []uint32

	// Instances is the instance count, default 1.
	Instances uint32
}

// UniformData carries one custom uniform value for an object update. Values
// are matched to the pipeline's uniform declarations by bind slot.
type UniformData struct {
	// BindSlot is the binding index within bind group 1.
	BindSlot uint32

	// Data is the raw uniform value, at most the declared size.
	Data []byte
}

// ObjectUpdate describes one per-object state write: the transform, draw
// state and optional uniform and joint data. Build updates with
// NewObjectUpdate so unset fields get their defaults.
type ObjectUpdate struct {
	// Object identifies the object to update.
	Object common.ObjectID

	// Translate is the object's position.
	Translate common.Vec3

	// RotateAxis and RotateDeg describe the object's rotation about an axis.
	RotateAxis common.Vec3
	RotateDeg  float32

	// Scale is the object's per-axis scale.
	Scale common.Vec3

	// Visible controls whether the object is drawn.
	Visible bool

	// Camera supplies the view and projection matrices. Nil selects the
	// renderer's default orthographic camera.
	Camera camera.Camera

	// Uniforms carries values for the pipeline's custom uniforms.
	Uniforms []UniformData

	// Joints carries joint transform matrices for animated pipelines.
	Joints []common.Mat4
}

// NewObjectUpdate creates an ObjectUpdate with defaults applied: no
// translation, rotation about the z axis by 0 degrees, scale 1, visible.
//
// Parameters:
//   - id: the object to update
//   - opts: a variadic list of ObjectUpdateOption functions to configure the update
//
// Returns:
//   - ObjectUpdate: the configured update
func NewObjectUpdate(id common.ObjectID, opts ...ObjectUpdateOption) ObjectUpdate {
	u := ObjectUpdate{
		Object:     id,
		RotateAxis: common.Vec3{0, 0, 1},
		Scale:      common.Vec3{1, 1, 1},
		Visible:    true,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// ObjectUpdateOption is a functional option used to configure an ObjectUpdate during construction.
type ObjectUpdateOption func(*ObjectUpdate)

// WithTranslate sets the object's position.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - ObjectUpdateOption: a function that sets the position for this update
func WithTranslate(x, y, z float32) ObjectUpdateOption {
	return func(u *ObjectUpdate) {
		u.Translate = common.Vec3{x, y, z}
	}
}

// WithRotation sets the object's rotation as an axis and angle.
//
// Parameters:
//   - axis: the rotation axis (default the z axis)
//   - deg: the rotation angle in degrees
//
// Returns:
//   - ObjectUpdateOption: a function that sets the rotation for this update
func WithRotation(axis common.Vec3, deg float32) ObjectUpdateOption {
	return func(u *ObjectUpdate) {
		u.RotateAxis = axis
		u.RotateDeg = deg
	}
}

// WithScale sets the object's per-axis scale.
//
// Parameters:
//   - x, y, z: the scale components (default 1)
//
// Returns:
//   - ObjectUpdateOption: a function that sets the scale for this update
func WithScale(x, y, z float32) ObjectUpdateOption {
	return func(u *ObjectUpdate) {
		u.Scale = common.Vec3{x, y, z}
	}
}

// WithVisibility sets whether the object is drawn.
//
// Parameters:
//   - visible: true to draw the object (the default)
//
// Returns:
//   - ObjectUpdateOption: a function that sets the visibility for this update
func WithVisibility(visible bool) ObjectUpdateOption {
	return func(u *ObjectUpdate) {
		u.Visible = visible
	}
}

// WithCamera selects the camera whose matrices are written with this update.
//
// Parameters:
//   - c: the camera, or nil for the renderer's default orthographic camera
//
// Returns:
//   - ObjectUpdateOption: a function that sets the camera for this update
func WithCamera(c camera.Camera) ObjectUpdateOption {
	return func(u *ObjectUpdate) {
		u.Camera = c
	}
}

// WithUniformData appends a custom uniform value to the update.
//
// Parameters:
//   - bindSlot: the binding index within bind group 1
//   - data: the raw uniform value
//
// Returns:
//   - ObjectUpdateOption: a function that appends the uniform value to this update
func WithUniformData(bindSlot uint32, data []byte) ObjectUpdateOption {
	return func(u *ObjectUpdate) {
		u.Uniforms = append(u.Uniforms, UniformData{BindSlot: bindSlot, Data: data})
	}
}

// WithJointTransforms sets the joint matrices written with this update.
//
// Parameters:
//   - joints: the joint transform matrices
//
// Returns:
//   - ObjectUpdateOption: a function that sets the joint matrices for this update
func WithJointTransforms(joints []common.Mat4) ObjectUpdateOption {
	return func(u *ObjectUpdate) {
		u.Joints = joints
	}
}

// transformBlock is the per-object uniform layout consumed by the vertex
// shaders: model, view and projection matrices.
type transformBlock struct {
	Model common.Mat4
	View  common.Mat4
	Proj  common.Mat4
}

// computeTransformBlock builds the raw transform block bytes for an update.
// The model matrix composes translate over scale over rotate; the view and
// projection come from the update's camera at the current canvas size.
func computeTransformBlock(u ObjectUpdate, cam camera.Camera, width, height float32) []byte {
	if u.Camera != nil {
		cam = u.Camera
	}

	block := transformBlock{
		Model: common.Multiply(
			common.Translate(u.Translate[0], u.Translate[1], u.Translate[2]),
			common.Multiply(
				common.Scale(u.Scale[0], u.Scale[1], u.Scale[2]),
				common.Rotate(u.RotateAxis, u.RotateDeg),
			),
		),
		View: cam.ViewMatrix(),
		Proj: cam.ProjectionMatrix(width, height),
	}

	out := make([]byte, transformBlockSize)
	copy(out, common.StructToBytes(&block))
	return out
}
