package camera

import "github.com/halcyon-gfx/halcyon/common"

// CameraBuilderOption is a functional option used to configure a Camera during construction.
type CameraBuilderOption func(*cameraImpl)

// WithProjection sets the camera's projection kind.
//
// Parameters:
//   - kind: orthographic or perspective (default orthographic)
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection kind for this camera
func WithProjection(kind ProjectionKind) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.kind = kind
	}
}

// WithPosition sets the camera position in world space.
//
// Parameters:
//   - p: the position (default (0, 0, 100))
//
// Returns:
//   - CameraBuilderOption: a function that sets the position for this camera
func WithPosition(p common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithLookAt aims the camera at a point.
//
// Parameters:
//   - target: the look-at target (default the origin)
//
// Returns:
//   - CameraBuilderOption: a function that sets the look-at target for this camera
func WithLookAt(target common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lookAt = target
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: the up vector (default (0, 1, 0))
//
// Returns:
//   - CameraBuilderOption: a function that sets the up vector for this camera
func WithUp(up common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFovY sets the vertical field of view for perspective cameras.
//
// Parameters:
//   - deg: the field of view in degrees (default 60)
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view for this camera
func WithFovY(deg float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovY = common.Coalesce(deg, c.fovY)
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance (default 0)
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane for this camera
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance (default 1000)
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane for this camera
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = common.Coalesce(far, c.far)
	}
}
