package primitives

import (
	"testing"
)

func TestRect(t *testing.T) {
	v := Rect(2, 4, 0.5)
	if len(v) != 6 {
		t.Fatalf("got %d vertices, want 6", len(v))
	}
	if v[0].Position != [3]float32{-1, -2, 0.5} {
		t.Fatalf("first corner: got %v", v[0].Position)
	}
	for i, vert := range v {
		if vert.Normal != [3]float32{0, 0, 1} {
			t.Fatalf("vertex %d normal: got %v, want +Z", i, vert.Normal)
		}
		if vert.Position[2] != 0.5 {
			t.Fatalf("vertex %d z: got %v, want 0.5", i, vert.Position[2])
		}
	}
}

func TestRectIndexed(t *testing.T) {
	v, idx := RectIndexed(10, 10, 0)
	if len(v) != 4 {
		t.Fatalf("got %d vertices, want 4", len(v))
	}
	want := []uint32{0, 1, 2, 2, 3, 0}
	if len(idx) != len(want) {
		t.Fatalf("got %d indices, want %d", len(idx), len(want))
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, idx[i], want[i])
		}
	}
}

func TestFlipUVY(t *testing.T) {
	v := Rect(1, 1, 0)
	before := v[0].UV[1]
	FlipUVY(v)
	if v[0].UV[1] != 1.0-before {
		t.Fatalf("got %v, want %v", v[0].UV[1], 1.0-before)
	}
}

func TestRegPolygon(t *testing.T) {
	v := RegPolygon(5, 6, 0)
	if len(v) != 18 {
		t.Fatalf("got %d vertices, want 18", len(v))
	}
	// every third vertex is the center
	for i := 2; i < len(v); i += 3 {
		if v[i].Position != [3]float32{0, 0, 0} {
			t.Fatalf("vertex %d: got %v, want center", i, v[i].Position)
		}
	}
}

func TestIndexedGeneratorsInBounds(t *testing.T) {
	tests := []struct {
		name string
		gen  func() (int, []uint32)
	}{
		{name: "torus2d", gen: func() (int, []uint32) { v, i := Torus2D(10, 5, 16, 0); return len(v), i }},
		{name: "cube", gen: func() (int, []uint32) { v, i := CubeIndexed(1, 1, 1); return len(v), i }},
		{name: "cylinder", gen: func() (int, []uint32) { v, i := Cylinder(5, 10, 12); return len(v), i }},
		{name: "tube", gen: func() (int, []uint32) { v, i := Tube(5, 3, 10, 12); return len(v), i }},
		{name: "cone", gen: func() (int, []uint32) { v, i := Cone(5, 10, 12); return len(v), i }},
		{name: "sphere", gen: func() (int, []uint32) { v, i := Sphere(5, 16, 8); return len(v), i }},
		{name: "hemisphere", gen: func() (int, []uint32) { v, i := Hemisphere(5, 16, 4); return len(v), i }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, idx := tt.gen()
			if count == 0 || len(idx) == 0 {
				t.Fatal("empty geometry")
			}
			if len(idx)%3 != 0 {
				t.Fatalf("index count %d is not a multiple of 3", len(idx))
			}
			for n, i := range idx {
				if int(i) >= count {
					t.Fatalf("index %d references vertex %d, only %d vertices", n, i, count)
				}
			}
		})
	}
}

func TestCubeFaceCount(t *testing.T) {
	if v := Cube(2, 2, 2); len(v) != 36 {
		t.Fatalf("got %d vertices, want 36", len(v))
	}
	v, idx := CubeIndexed(2, 2, 2)
	if len(v) != 24 || len(idx) != 36 {
		t.Fatalf("got %d vertices / %d indices, want 24 / 36", len(v), len(idx))
	}
}

func TestSphereVertexCount(t *testing.T) {
	sides, slices := uint32(16), uint32(8)
	v, _ := Sphere(1, sides, slices)
	want := int(sides*(slices-1)) + 2
	if len(v) != want {
		t.Fatalf("got %d vertices, want %d", len(v), want)
	}
}
