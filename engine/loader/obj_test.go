package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const triangleOBJ = `# simple triangle
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
vt 0.0 0.0
vt 1.0 0.0
vt 0.0 1.0
vn 0.0 0.0 1.0
f 1/1/1 2/2/1 3/3/1
`

const quadOBJ = `v -1.0 -1.0 0.0
v 1.0 -1.0 0.0
v 1.0 1.0 0.0
v -1.0 1.0 0.0
f 1 2 3 4
`

func TestParseOBJTriangle(t *testing.T) {
	verts, err := ParseOBJ(triangleOBJ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(verts) != 3 {
		t.Fatalf("got %d vertices, want 3", len(verts))
	}
	if verts[1].Position != [3]float32{1, 0, 0} {
		t.Fatalf("vertex 1 position: got %v", verts[1].Position)
	}
	if verts[2].UV != [2]float32{0, 1} {
		t.Fatalf("vertex 2 uv: got %v", verts[2].UV)
	}
	for i, v := range verts {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Fatalf("vertex %d normal: got %v", i, v.Normal)
		}
	}
}

func TestParseOBJQuadTriangulation(t *testing.T) {
	verts, err := ParseOBJ(quadOBJ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(verts) != 6 {
		t.Fatalf("got %d vertices, want 6", len(verts))
	}
	// second triangle is (v3, v4, v1)
	if verts[3].Position != [3]float32{1, 1, 0} {
		t.Fatalf("vertex 3: got %v, want v3", verts[3].Position)
	}
	if verts[4].Position != [3]float32{-1, 1, 0} {
		t.Fatalf("vertex 4: got %v, want v4", verts[4].Position)
	}
	if verts[5].Position != [3]float32{-1, -1, 0} {
		t.Fatalf("vertex 5: got %v, want v1", verts[5].Position)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad float", data: "v 1.0 abc 0.0\n"},
		{name: "short position", data: "v 1.0 2.0\n"},
		{name: "bad face index", data: "v 0 0 0\nf 1 x 1\n"},
		{name: "out of range index", data: "v 0 0 0\nf 1 2 3\n"},
		{name: "too many corners", data: "v 0 0 0\nf 1 1 1 1 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(tt.data); !errors.Is(err, ErrOBJData) {
				t.Fatalf("got %v, want ErrOBJData", err)
			}
		})
	}
}

func TestParseOBJIgnoresUnknownDirectives(t *testing.T) {
	data := "o mesh\ns off\nusemtl none\n" + triangleOBJ
	verts, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(verts) != 3 {
		t.Fatalf("got %d vertices, want 3", len(verts))
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte(triangleOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	verts, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(verts) != 3 {
		t.Fatalf("got %d vertices, want 3", len(verts))
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); !errors.Is(err, ErrOBJRead) {
		t.Fatalf("got %v, want ErrOBJRead", err)
	}
}
