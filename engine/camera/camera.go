// package camera holds the view and projection state used to render a scene.
// A camera is handed to the renderer with each object update; the renderer
// reads its matrices when writing the object's transform block.
package camera

import (
	"sync"

	"github.com/halcyon-gfx/halcyon/common"
)

// ProjectionKind selects how a camera projects the scene onto the canvas.
type ProjectionKind int

const (
	// ProjectionOrthographic projects without perspective. The view volume is
	// centered on the canvas: x spans -width/2..width/2 and y spans
	// -height/2..height/2 with y up.
	ProjectionOrthographic ProjectionKind = iota

	// ProjectionPerspective projects with a vertical field of view and the
	// canvas aspect ratio.
	ProjectionPerspective
)

type cameraImpl struct {
	mu *sync.Mutex

	kind     ProjectionKind
	position common.Vec3
	lookAt   common.Vec3
	up       common.Vec3

	fovY float32
	near float32
	far  float32
}

// Camera defines the interface for the camera system. It holds the position,
// look-at target and projection settings, and computes the view and projection
// matrices the renderer writes into object transform blocks.
type Camera interface {
	// Projection returns the camera's projection kind.
	//
	// Returns:
	//   - ProjectionKind: orthographic or perspective
	Projection() ProjectionKind

	// Position returns the camera position in world space.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// LookAt returns the point the camera is aimed at.
	//
	// Returns:
	//   - common.Vec3: the look-at target
	LookAt() common.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - common.Vec3: the up vector
	Up() common.Vec3

	// FovY returns the vertical field of view in degrees. Only used by
	// perspective cameras.
	//
	// Returns:
	//   - float32: the field of view in degrees
	FovY() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p common.Vec3)

	// SetLookAt aims the camera at a point.
	//
	// Parameters:
	//   - target: the new look-at target
	SetLookAt(target common.Vec3)

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: the new up vector
	SetUp(up common.Vec3)

	// SetFovY sets the vertical field of view in degrees.
	//
	// Parameters:
	//   - deg: the field of view in degrees
	SetFovY(deg float32)

	// SetNear sets the near clipping plane distance.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// ViewMatrix computes the view matrix from the camera's position,
	// look-at target and up vector.
	//
	// Returns:
	//   - common.Mat4: the view matrix
	ViewMatrix() common.Mat4

	// ProjectionMatrix computes the projection matrix for a canvas of the
	// given size. Orthographic cameras span the canvas centered on the
	// origin; perspective cameras use the canvas aspect ratio.
	//
	// Parameters:
	//   - width: the canvas width in pixels
	//   - height: the canvas height in pixels
	//
	// Returns:
	//   - common.Mat4: the projection matrix
	ProjectionMatrix(width, height float32) common.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera.
//
// Defaults: orthographic projection, position (0, 0, 100), looking at the
// origin, up (0, 1, 0), near 0, far 1000, field of view 60 degrees.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		kind:     ProjectionOrthographic,
		position: common.Vec3{0, 0, 100},
		lookAt:   common.Vec3{},
		up:       common.Vec3{0, 1, 0},
		fovY:     60.0,
		near:     0.0,
		far:      1000.0,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Projection() ProjectionKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) LookAt() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookAt
}

func (c *cameraImpl) Up() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) FovY() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovY
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetPosition(p common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
}

func (c *cameraImpl) SetLookAt(target common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookAt = target
}

func (c *cameraImpl) SetUp(up common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) SetFovY(deg float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fovY = deg
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.View(c.position, c.lookAt, c.up)
}

func (c *cameraImpl) ProjectionMatrix(width, height float32) common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kind == ProjectionPerspective {
		return common.Perspective(c.fovY, width/height, c.near, c.far)
	}
	return common.Orthographic(-width/2, width/2, height/2, -height/2, c.near, c.far)
}
