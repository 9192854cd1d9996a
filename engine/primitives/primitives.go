// package primitives provides procedural mesh generators for common 2D and 3D
// shapes. Generators return vertex slices (and index slices for the indexed
// variants) ready to upload through the renderer's object setup.
//
// All shapes are centered on the origin unless noted otherwise. UV origin is
// the top-left corner; use FlipUVY when sampling textures authored with a
// bottom-left origin.
package primitives

import (
	"github.com/chewxy/math32"

	"github.com/halcyon-gfx/halcyon/common"
)

// FlipUVY inverts the vertical texture coordinate of every vertex in place.
//
// Parameters:
//   - vertices: the vertex slice to modify
func FlipUVY(vertices []common.Vertex) {
	for i := range vertices {
		vertices[i].UV[1] = 1.0 - vertices[i].UV[1]
	}
}

// Rect builds a non-indexed rectangle in the XY plane (two triangles).
//
// Parameters:
//   - width, height: rectangle dimensions
//   - zIndex: Z coordinate of the plane
//
// Returns:
//   - []common.Vertex: 6 vertices forming the rectangle
func Rect(width, height, zIndex float32) []common.Vertex {
	w := width / 2.0
	h := height / 2.0
	n := [3]float32{0, 0, 1}
	return []common.Vertex{
		{Position: [3]float32{-w, -h, zIndex}, UV: [2]float32{0, 1}, Normal: n},
		{Position: [3]float32{w, -h, zIndex}, UV: [2]float32{1, 1}, Normal: n},
		{Position: [3]float32{w, h, zIndex}, UV: [2]float32{1, 0}, Normal: n},
		{Position: [3]float32{w, h, zIndex}, UV: [2]float32{1, 0}, Normal: n},
		{Position: [3]float32{-w, h, zIndex}, UV: [2]float32{0, 0}, Normal: n},
		{Position: [3]float32{-w, -h, zIndex}, UV: [2]float32{0, 1}, Normal: n},
	}
}

// RectIndexed builds an indexed rectangle in the XY plane.
//
// Parameters:
//   - width, height: rectangle dimensions
//   - zIndex: Z coordinate of the plane
//
// Returns:
//   - []common.Vertex: 4 corner vertices
//   - []uint32: 6 indices forming two triangles
func RectIndexed(width, height, zIndex float32) ([]common.Vertex, []uint32) {
	w := width / 2.0
	h := height / 2.0
	n := [3]float32{0, 0, 1}
	vertices := []common.Vertex{
		{Position: [3]float32{-w, -h, zIndex}, UV: [2]float32{0, 1}, Normal: n},
		{Position: [3]float32{w, -h, zIndex}, UV: [2]float32{1, 1}, Normal: n},
		{Position: [3]float32{w, h, zIndex}, UV: [2]float32{1, 0}, Normal: n},
		{Position: [3]float32{-w, h, zIndex}, UV: [2]float32{0, 0}, Normal: n},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return vertices, indices
}

// RegPolygon builds a non-indexed regular polygon in the XY plane as a fan of
// triangles around the center.
//
// Parameters:
//   - radius: distance from the center to each corner
//   - sides: number of polygon sides
//   - zIndex: Z coordinate of the plane
//
// Returns:
//   - []common.Vertex: sides * 3 vertices
func RegPolygon(radius float32, sides uint32, zIndex float32) []common.Vertex {
	vertices := make([]common.Vertex, 0, sides*3)
	da := 2.0 * common.Pi / float32(sides)
	n := [3]float32{0, 0, 1}

	x0 := float32(1.0)
	y0 := float32(0.0)
	for i := uint32(0); i < sides; i++ {
		x1 := math32.Cos(da)*x0 - math32.Sin(da)*y0
		y1 := math32.Cos(da)*y0 + math32.Sin(da)*x0
		vertices = append(vertices,
			common.Vertex{Position: [3]float32{x0 * radius, y0 * radius, zIndex}, UV: [2]float32{(1.0 + x0) / 2.0, 1.0 - (1.0+y0)/2.0}, Normal: n},
			common.Vertex{Position: [3]float32{x1 * radius, y1 * radius, zIndex}, UV: [2]float32{(1.0 + x1) / 2.0, 1.0 - (1.0+y1)/2.0}, Normal: n},
			common.Vertex{Position: [3]float32{0, 0, zIndex}, UV: [2]float32{0.5, 0.5}, Normal: n},
		)
		x0 = x1
		y0 = y1
	}
	return vertices
}

// Torus2D builds an indexed flat ring (annulus) in the XY plane.
//
// Parameters:
//   - outerRadius: outer ring radius
//   - innerRadius: inner ring radius
//   - sides: number of segments around the ring
//   - zIndex: Z coordinate of the plane
//
// Returns:
//   - []common.Vertex: ring vertices, alternating outer/inner
//   - []uint32: triangle indices
func Torus2D(outerRadius, innerRadius float32, sides uint32, zIndex float32) ([]common.Vertex, []uint32) {
	vertices := make([]common.Vertex, 0, sides*2)
	indices := make([]uint32, 0, sides*6)
	dr := innerRadius / outerRadius
	n := [3]float32{0, 0, 1}

	for i := uint32(0); i < sides; i++ {
		theta := 2.0 * common.Pi * float32(i) / float32(sides)
		x := math32.Cos(theta)
		y := math32.Sin(theta)
		vertices = append(vertices,
			common.Vertex{Position: [3]float32{x * outerRadius, y * outerRadius, zIndex}, UV: [2]float32{(1.0 + x) / 2.0, (1.0 + y) / 2.0}, Normal: n},
			common.Vertex{Position: [3]float32{x * innerRadius, y * innerRadius, zIndex}, UV: [2]float32{(1.0 + dr*x) / 2.0, (1.0 + dr*y) / 2.0}, Normal: n},
		)
	}
	for i := 0; i < len(vertices)-2; i++ {
		u := uint32(i)
		if i%2 == 0 {
			indices = append(indices, u+1, u, u+2)
		} else {
			indices = append(indices, u, u+1, u+2)
		}
	}
	// join back to first 2 vertices
	last := uint32(len(vertices))
	indices = append(indices, last-1, last-2, 0)
	indices = append(indices, last-1, 0, 1)

	return vertices, indices
}

// Cube builds a non-indexed axis-aligned box (6 faces, 36 vertices).
//
// Parameters:
//   - width, height, depth: box dimensions along X, Y, Z
//
// Returns:
//   - []common.Vertex: 36 vertices
func Cube(width, height, depth float32) []common.Vertex {
	w := width / 2.0
	h := height / 2.0
	d := depth / 2.0
	return []common.Vertex{
		// face top
		{Position: [3]float32{w, -h, -d}, UV: [2]float32{1, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{w, -h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-w, -h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-w, -h, d}, UV: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-w, -h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{w, -h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
		// face bottom
		{Position: [3]float32{w, h, d}, UV: [2]float32{1, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{w, h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-w, h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-w, h, -d}, UV: [2]float32{0, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-w, h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{w, h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
		// face left
		{Position: [3]float32{-w, -h, d}, UV: [2]float32{1, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-w, h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-w, -h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-w, h, -d}, UV: [2]float32{0, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-w, -h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-w, h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
		// face right
		{Position: [3]float32{w, -h, -d}, UV: [2]float32{1, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{w, h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{w, -h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{w, h, d}, UV: [2]float32{0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{w, -h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{w, h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		// face back
		{Position: [3]float32{-w, -h, -d}, UV: [2]float32{0, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-w, h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{w, -h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{w, h, -d}, UV: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{w, -h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-w, h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
		// face front
		{Position: [3]float32{w, -h, d}, UV: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{w, h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-w, -h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-w, h, d}, UV: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-w, -h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{w, h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
	}
}

// CubeIndexed builds an indexed axis-aligned box (24 vertices, 36 indices).
//
// Parameters:
//   - width, height, depth: box dimensions along X, Y, Z
//
// Returns:
//   - []common.Vertex: 24 vertices (4 per face)
//   - []uint32: 36 indices
func CubeIndexed(width, height, depth float32) ([]common.Vertex, []uint32) {
	w := width / 2.0
	h := height / 2.0
	d := depth / 2.0
	vertices := []common.Vertex{
		// face top
		{Position: [3]float32{w, -h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{w, -h, -d}, UV: [2]float32{1, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-w, -h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-w, -h, d}, UV: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
		// face bottom
		{Position: [3]float32{w, h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{w, h, d}, UV: [2]float32{1, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-w, h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-w, h, -d}, UV: [2]float32{0, 0}, Normal: [3]float32{0, -1, 0}},
		// face left
		{Position: [3]float32{-w, h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-w, -h, d}, UV: [2]float32{1, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-w, -h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-w, h, -d}, UV: [2]float32{0, 0}, Normal: [3]float32{-1, 0, 0}},
		// face right
		{Position: [3]float32{w, h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{w, -h, -d}, UV: [2]float32{1, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{w, -h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{w, h, d}, UV: [2]float32{0, 0}, Normal: [3]float32{1, 0, 0}},
		// face back
		{Position: [3]float32{-w, h, -d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-w, -h, -d}, UV: [2]float32{0, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{w, -h, -d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{w, h, -d}, UV: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
		// face front
		{Position: [3]float32{w, h, d}, UV: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{w, -h, d}, UV: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-w, -h, d}, UV: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-w, h, d}, UV: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	indices := []uint32{
		1, 0, 2, 3, 2, 0, // top
		5, 4, 6, 7, 6, 4, // bottom
		9, 8, 10, 11, 10, 8, // left
		13, 12, 14, 15, 14, 12, // right
		17, 16, 18, 19, 18, 16, // back
		21, 20, 22, 23, 22, 20, // front
	}
	return vertices, indices
}

// Cylinder builds an indexed cylinder centered on the origin with its axis
// along Y. Caps use disc UVs; the side wall wraps the texture horizontally.
//
// Parameters:
//   - radius: cylinder radius
//   - height: cylinder height
//   - sides: number of segments around the axis
//
// Returns:
//   - []common.Vertex: cap and wall vertices
//   - []uint32: triangle indices
func Cylinder(radius, height float32, sides uint32) ([]common.Vertex, []uint32) {
	vertices := make([]common.Vertex, 0, sides*4+4)
	indices := make([]uint32, 0, sides*12)
	h := height / 2.0

	// top/bottom centers
	vertices = append(vertices,
		common.Vertex{Position: [3]float32{0, h, 0}, UV: [2]float32{0.5, 0.5}, Normal: [3]float32{0, 1, 0}},
		common.Vertex{Position: [3]float32{0, -h, 0}, UV: [2]float32{0.5, 0.5}, Normal: [3]float32{0, 1, 0}},
	)
	// cap rims
	for i := uint32(0); i < sides; i++ {
		theta := 2.0 * common.Pi * float32(i) / float32(sides)
		x := math32.Cos(theta)
		z := math32.Sin(theta)
		vertices = append(vertices,
			common.Vertex{Position: [3]float32{x * radius, h, z * radius}, UV: [2]float32{(1.0 + x) / 2.0, (1.0 + z) / 2.0}, Normal: [3]float32{0, 1, 0}},
			common.Vertex{Position: [3]float32{x * radius, -h, z * radius}, UV: [2]float32{(1.0 + x) / 2.0, (1.0 - z) / 2.0}, Normal: [3]float32{0, -1, 0}},
		)
	}
	for i := 2; i < len(vertices)-2; i++ {
		u := uint32(i)
		if i%2 == 0 {
			indices = append(indices, u, 0, u+2)
		} else {
			indices = append(indices, u, u+2, 1)
		}
	}
	rim := uint32(len(vertices))
	indices = append(indices, rim-2, 0, 2)
	indices = append(indices, rim-1, 3, 1)

	// side wall, duplicated seam column for clean UV wrap
	wall := uint32(len(vertices))
	for i := uint32(0); i <= sides; i++ {
		theta := 2.0 * common.Pi * float32(i) / float32(sides)
		x := math32.Cos(theta)
		z := math32.Sin(theta)
		u := float32(i) / float32(sides)
		vertices = append(vertices,
			common.Vertex{Position: [3]float32{x * radius, h, z * radius}, UV: [2]float32{u, 1}, Normal: [3]float32{x, 0, z}},
			common.Vertex{Position: [3]float32{x * radius, -h, z * radius}, UV: [2]float32{u, 0}, Normal: [3]float32{x, 0, z}},
		)
	}
	for i := int(wall); i < len(vertices)-2; i++ {
		u := uint32(i)
		if i%2 == 0 {
			indices = append(indices, u+1, u, u+2)
		} else {
			indices = append(indices, u, u+1, u+2)
		}
	}

	return vertices, indices
}

// Tube builds an indexed hollow cylinder (outer and inner walls plus flat
// ring caps) centered on the origin with its axis along Y.
//
// Parameters:
//   - outerRadius: outer wall radius
//   - innerRadius: inner wall radius
//   - height: tube height
//   - sides: number of segments around the axis
//
// Returns:
//   - []common.Vertex: cap and wall vertices
//   - []uint32: triangle indices
func Tube(outerRadius, innerRadius, height float32, sides uint32) ([]common.Vertex, []uint32) {
	vertices := make([]common.Vertex, 0, sides*8+8)
	indices := make([]uint32, 0, sides*24)
	dr := innerRadius / outerRadius
	h := height / 2.0

	// ring caps
	for i := uint32(0); i < sides; i++ {
		theta := 2.0 * common.Pi * float32(i) / float32(sides)
		x := math32.Cos(theta)
		z := math32.Sin(theta)
		vertices = append(vertices,
			common.Vertex{Position: [3]float32{x * outerRadius, h, z * outerRadius}, UV: [2]float32{(1.0 + x) / 2.0, (1.0 + z) / 2.0}, Normal: [3]float32{0, 1, 0}},
			common.Vertex{Position: [3]float32{x * outerRadius, -h, z * outerRadius}, UV: [2]float32{(1.0 + x) / 2.0, (1.0 - z) / 2.0}, Normal: [3]float32{0, -1, 0}},
			common.Vertex{Position: [3]float32{x * innerRadius, h, z * innerRadius}, UV: [2]float32{(1.0 + dr*x) / 2.0, (1.0 + dr*z) / 2.0}, Normal: [3]float32{0, 1, 0}},
			common.Vertex{Position: [3]float32{x * innerRadius, -h, z * innerRadius}, UV: [2]float32{(1.0 + dr*x) / 2.0, (1.0 - dr*z) / 2.0}, Normal: [3]float32{0, -1, 0}},
		)
	}
	for i := 0; i < len(vertices)-5; i += 2 {
		u := uint32(i)
		if i%4 == 0 {
			indices = append(indices, u, u+2, u+4)
			indices = append(indices, u+3, u+1, u+5)
		} else {
			indices = append(indices, u+2, u, u+4)
			indices = append(indices, u+1, u+3, u+5)
		}
	}
	// join back to first 2 vertices
	last := uint32(len(vertices))
	indices = append(indices, last-4, last-2, 0)
	indices = append(indices, 0, last-2, 2)
	indices = append(indices, last-1, last-3, 1)
	indices = append(indices, last-1, 1, 3)

	// walls, duplicated seam column for clean UV wrap
	wall := len(vertices)
	for i := uint32(0); i <= sides; i++ {
		theta := 2.0 * common.Pi * float32(i) / float32(sides)
		x := math32.Cos(theta)
		z := math32.Sin(theta)
		u := float32(i) / float32(sides)
		vertices = append(vertices,
			common.Vertex{Position: [3]float32{x * outerRadius, h, z * outerRadius}, UV: [2]float32{u, 1}, Normal: [3]float32{x, 0, z}},
			common.Vertex{Position: [3]float32{x * innerRadius, h, z * innerRadius}, UV: [2]float32{u, 1}, Normal: [3]float32{x, 0, z}},
			common.Vertex{Position: [3]float32{x * outerRadius, -h, z * outerRadius}, UV: [2]float32{u, 0}, Normal: [3]float32{x, 0, z}},
			common.Vertex{Position: [3]float32{x * innerRadius, -h, z * innerRadius}, UV: [2]float32{u, 0}, Normal: [3]float32{x, 0, z}},
		)
	}
	for i := wall; i < len(vertices)-4; i += 2 {
		u := uint32(i)
		if i%4 == 0 {
			indices = append(indices, u+2, u, u+4)
			indices = append(indices, u+1, u+3, u+5)
		} else {
			indices = append(indices, u, u+2, u+4)
			indices = append(indices, u+3, u+1, u+5)
		}
	}

	return vertices, indices
}

// Cone builds an indexed cone with its apex at +Y height and its base disc in
// the XZ plane at the origin.
//
// Parameters:
//   - radius: base radius
//   - height: apex height above the base
//   - sides: number of segments around the axis
//
// Returns:
//   - []common.Vertex: apex, wall and base vertices
//   - []uint32: triangle indices
func Cone(radius, height float32, sides uint32) ([]common.Vertex, []uint32) {
	vertices := make([]common.Vertex, 0, sides*2+3)
	indices := make([]uint32, 0, sides*6)

	// apex
	vertices = append(vertices, common.Vertex{Position: [3]float32{0, height, 0}, UV: [2]float32{0.5, 1}, Normal: [3]float32{0, 1, 0}})
	// wall rim, duplicated seam column for clean UV wrap
	for i := uint32(0); i <= sides; i++ {
		theta := 2.0 * common.Pi * float32(i) / float32(sides)
		x := math32.Cos(theta)
		z := math32.Sin(theta)
		vertices = append(vertices, common.Vertex{
			Position: [3]float32{x * radius, 0, z * radius},
			UV:       [2]float32{float32(i) / float32(sides), 0},
			Normal:   [3]float32{x, 0, z},
		})
	}
	for i := 1; i < len(vertices)-1; i++ {
		u := uint32(i)
		indices = append(indices, u+1, u, 0)
	}
	// base center
	vertices = append(vertices, common.Vertex{Position: [3]float32{0, 0, 0}, UV: [2]float32{0.5, 0.5}, Normal: [3]float32{0, -1, 0}})
	center := uint32(len(vertices) - 1)
	// base rim
	base := uint32(len(vertices))
	for i := uint32(0); i < sides; i++ {
		theta := 2.0 * common.Pi * float32(i) / float32(sides)
		x := math32.Cos(theta)
		z := math32.Sin(theta)
		vertices = append(vertices, common.Vertex{
			Position: [3]float32{x * radius, 0, z * radius},
			UV:       [2]float32{(1.0 + x) / 2.0, (1.0 - z) / 2.0},
			Normal:   [3]float32{0, -1, 0},
		})
	}
	for i := int(base); i < len(vertices)-1; i++ {
		u := uint32(i)
		indices = append(indices, u, u+1, center)
	}
	indices = append(indices, uint32(len(vertices)-1), base, center)

	return vertices, indices
}

// Sphere builds an indexed UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - sides: number of segments around the vertical axis
//   - slices: number of horizontal bands from pole to pole
//
// Returns:
//   - []common.Vertex: pole and band vertices
//   - []uint32: triangle indices
func Sphere(radius float32, sides, slices uint32) ([]common.Vertex, []uint32) {
	vertices := make([]common.Vertex, 0, sides*(slices-1)+2)
	indices := make([]uint32, 0, sides*slices*6)

	// top pole
	vertices = append(vertices, common.Vertex{Position: [3]float32{0, radius, 0}, UV: [2]float32{0.5, 0.5}, Normal: [3]float32{0, 1, 0}})
	// bands
	for i := uint32(0); i < slices-1; i++ {
		phi := common.Pi * float32(i+1) / float32(slices)
		for j := uint32(0); j < sides; j++ {
			theta := 2.0 * common.Pi * float32(j) / float32(sides)
			x := math32.Sin(phi) * math32.Cos(theta)
			y := math32.Cos(phi)
			z := math32.Sin(phi) * math32.Sin(theta)
			vertices = append(vertices, common.Vertex{
				Position: [3]float32{x * radius, y * radius, z * radius},
				UV:       [2]float32{(1.0 + x) / 2.0, (1.0 + z) / 2.0},
				Normal:   [3]float32{x, y, z},
			})
		}
	}
	// bottom pole
	vertices = append(vertices, common.Vertex{Position: [3]float32{0, -radius, 0}, UV: [2]float32{0.5, 0.5}, Normal: [3]float32{0, -1, 0}})

	// pole caps
	bottom := uint32(len(vertices) - 1)
	for i := uint32(0); i < sides; i++ {
		i0 := i + 1
		i1 := (i+1)%sides + 1
		indices = append(indices, 0, i1, i0)
		i0 = i + sides*(slices-2) + 1
		i1 = (i+1)%sides + sides*(slices-2) + 1
		indices = append(indices, bottom, i0, i1)
	}
	// bands
	for j := uint32(0); j < slices-2; j++ {
		j0 := j*sides + 1
		j1 := (j+1)*sides + 1
		for i := uint32(0); i < sides; i++ {
			i0 := j0 + i
			i1 := j0 + (i+1)%sides
			i2 := j1 + (i+1)%sides
			i3 := j1 + i
			indices = append(indices, i0, i1, i2)
			indices = append(indices, i2, i3, i0)
		}
	}

	return vertices, indices
}

// Hemisphere builds an indexed half sphere with its flat face in the XZ plane
// at the origin and its pole at +Y radius.
//
// Parameters:
//   - radius: hemisphere radius
//   - sides: number of segments around the vertical axis
//   - slices: number of horizontal bands from the pole to the rim
//
// Returns:
//   - []common.Vertex: pole, band and base vertices
//   - []uint32: triangle indices
func Hemisphere(radius float32, sides, slices uint32) ([]common.Vertex, []uint32) {
	vertices := make([]common.Vertex, 0, sides*(slices+1)+2)
	indices := make([]uint32, 0, sides*slices*6)

	// top pole
	vertices = append(vertices, common.Vertex{Position: [3]float32{0, radius, 0}, UV: [2]float32{0.5, 0.5}, Normal: [3]float32{0, 1, 0}})
	// bands
	for i := uint32(0); i < slices; i++ {
		phi := common.Pi * float32(i+1) / float32(2*slices)
		for j := uint32(0); j < sides; j++ {
			theta := 2.0 * common.Pi * float32(j) / float32(sides)
			x := math32.Sin(phi) * math32.Cos(theta)
			y := math32.Cos(phi)
			z := math32.Sin(phi) * math32.Sin(theta)
			vertices = append(vertices, common.Vertex{
				Position: [3]float32{x * radius, y * radius, z * radius},
				UV:       [2]float32{(1.0 + x) / 2.0, (1.0 + z) / 2.0},
				Normal:   [3]float32{x, y, z},
			})
		}
	}
	// pole cap
	for i := uint32(0); i < sides; i++ {
		i0 := i + 1
		i1 := (i+1)%sides + 1
		indices = append(indices, 0, i1, i0)
	}
	// bands
	for j := uint32(0); j < slices-1; j++ {
		j0 := j*sides + 1
		j1 := (j+1)*sides + 1
		for i := uint32(0); i < sides; i++ {
			i0 := j0 + i
			i1 := j0 + (i+1)%sides
			i2 := j1 + (i+1)%sides
			i3 := j1 + i
			indices = append(indices, i0, i1, i2)
			indices = append(indices, i2, i3, i0)
		}
	}
	// base disc
	base := uint32(len(vertices))
	for i := uint32(0); i < sides; i++ {
		theta := 2.0 * common.Pi * float32(i) / float32(sides)
		x := math32.Cos(theta)
		z := math32.Sin(theta)
		vertices = append(vertices, common.Vertex{
			Position: [3]float32{x * radius, 0, z * radius},
			UV:       [2]float32{(1.0 + x) / 2.0, (1.0 - z) / 2.0},
			Normal:   [3]float32{0, -1, 0},
		})
	}
	vertices = append(vertices, common.Vertex{Position: [3]float32{0, 0, 0}, UV: [2]float32{0.5, 0.5}, Normal: [3]float32{0, -1, 0}})
	center := uint32(len(vertices) - 1)
	for i := uint32(0); i < sides-1; i++ {
		indices = append(indices, center, base+i, base+i+1)
	}
	indices = append(indices, center, center-1, base)

	return vertices, indices
}
