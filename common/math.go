package common

import (
	"github.com/chewxy/math32"
)

// Pi is the circle constant used by every angle conversion in this package.
// Angles on the public API are always expressed in degrees.
const Pi = float32(3.14159265)

// Mat4 is a 4x4 matrix stored flat in column-major order (WebGPU convention).
type Mat4 [16]float32

// Vec3 is a 3-component float vector used for positions, axes and directions.
type Vec3 [3]float32

// Identity returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Multiply multiplies two 4x4 matrices in column-major order.
// Result: a * b (b is applied first when transforming column vectors).
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - Mat4: the product a * b
func Multiply(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Translate builds a translation matrix.
//
// Parameters:
//   - x, y, z: translation along each axis
//
// Returns:
//   - Mat4: the translation matrix
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale builds a scale matrix.
//
// Parameters:
//   - x, y, z: scale factor along each axis
//
// Returns:
//   - Mat4: the scale matrix
func Scale(x, y, z float32) Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = x, y, z, 1
	return m
}

// Rotate builds an axis-angle rotation matrix. The axis is normalized
// internally; a zero axis yields the identity rotation.
//
// Parameters:
//   - axis: rotation axis (need not be normalized)
//   - deg: rotation angle in degrees
//
// Returns:
//   - Mat4: the rotation matrix
func Rotate(axis Vec3, deg float32) Mat4 {
	n := axis.Normalize()
	x, y, z := n[0], n[1], n[2]

	rad := deg * Pi / 180.0
	s := math32.Sin(rad)
	c := math32.Cos(rad)
	t := 1.0 - c

	var m Mat4
	m[0] = t*x*x + c
	m[1] = t*x*y + s*z
	m[2] = t*x*z - s*y

	m[4] = t*x*y - s*z
	m[5] = t*y*y + c
	m[6] = t*y*z + s*x

	m[8] = t*x*z + s*y
	m[9] = t*y*z - s*x
	m[10] = t*z*z + c

	m[15] = 1
	return m
}

// RotateEuler builds a rotation matrix from Euler angles, composed as
// Rz * Ry * Rx: the X rotation is applied first, then Y, then Z.
//
// Parameters:
//   - xDeg: rotation around the X axis in degrees
//   - yDeg: rotation around the Y axis in degrees
//   - zDeg: rotation around the Z axis in degrees
//
// Returns:
//   - Mat4: the combined rotation matrix
func RotateEuler(xDeg, yDeg, zDeg float32) Mat4 {
	xRad := xDeg * Pi / 180.0
	yRad := yDeg * Pi / 180.0
	zRad := zDeg * Pi / 180.0

	sx, cx := math32.Sin(xRad), math32.Cos(xRad)
	sy, cy := math32.Sin(yRad), math32.Cos(yRad)
	sz, cz := math32.Sin(zRad), math32.Cos(zRad)

	var m Mat4
	m[0] = cy * cz
	m[1] = cy * sz
	m[2] = -sy

	m[4] = sx*sy*cz - cx*sz
	m[5] = sx*sy*sz + cx*cz
	m[6] = sx * cy

	m[8] = cx*sy*cz + sx*sz
	m[9] = cx*sy*sz - sx*cz
	m[10] = cx * cy

	m[15] = 1
	return m
}

// Orthographic builds an orthographic projection matrix mapping the given
// view volume to WebGPU clip space (depth range [0, 1]).
//
// Parameters:
//   - left, right: horizontal extents of the view volume
//   - top, bottom: vertical extents of the view volume
//   - near, far: depth extents of the view volume
//
// Returns:
//   - Mat4: the projection matrix
func Orthographic(left, right, top, bottom, near, far float32) Mat4 {
	var m Mat4
	m[0] = 2.0 / (right - left)
	m[5] = 2.0 / (top - bottom)
	m[10] = 1.0 / (near - far)
	m[12] = (right + left) / (left - right)
	m[13] = (top + bottom) / (bottom - top)
	m[14] = near / (near - far)
	m[15] = 1
	return m
}

// Perspective builds a perspective projection matrix for WebGPU clip space
// (depth range [0, 1]).
//
// Parameters:
//   - fovYDeg: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width / height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovYDeg, aspect, near, far float32) Mat4 {
	f := math32.Tan(Pi*0.5 - 0.5*fovYDeg*Pi/180.0)
	rangeInv := 1.0 / (near - far)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far * rangeInv
	m[11] = -1
	m[14] = near * far * rangeInv
	return m
}

// ViewRotation builds the rotation part of a view matrix from a camera
// position, look-at target and up vector.
//
// Parameters:
//   - position: camera position in world space
//   - target: point the camera looks at
//   - up: world up vector (typically [0, 1, 0])
//
// Returns:
//   - Mat4: the view rotation matrix
func ViewRotation(position, target, up Vec3) Mat4 {
	forward := position.Subtract(target).Normalize()
	right := up.Cross(forward).Normalize()
	newUp := forward.Cross(right).Normalize()

	var m Mat4
	m[0], m[1], m[2] = right[0], newUp[0], forward[0]
	m[4], m[5], m[6] = right[1], newUp[1], forward[1]
	m[8], m[9], m[10] = right[2], newUp[2], forward[2]
	m[15] = 1
	return m
}

// View builds a full view matrix (rotation followed by inverse translation)
// for the given camera placement.
//
// Parameters:
//   - position: camera position in world space
//   - target: point the camera looks at
//   - up: world up vector
//
// Returns:
//   - Mat4: the view matrix
func View(position, target, up Vec3) Mat4 {
	rot := ViewRotation(position, target, up)
	return Multiply(rot, Translate(-position[0], -position[1], -position[2]))
}

// Add returns the component-wise sum v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Subtract returns the component-wise difference v - o.
func (v Vec3) Subtract(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Magnitude returns the Euclidean length of v.
func (v Vec3) Magnitude() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. Vectors shorter than a small
// epsilon return the zero vector rather than dividing by near-zero.
func (v Vec3) Normalize() Vec3 {
	n := v.Magnitude()
	if n < 0.00001 {
		return Vec3{}
	}
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}
