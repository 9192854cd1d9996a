package common

import (
	"testing"
)

const epsilon = 1e-6

func matNear(t *testing.T, got, want Mat4) {
	t.Helper()
	for i := range want {
		diff := got[i] - want[i]
		if diff < -epsilon || diff > epsilon {
			t.Fatalf("element %d: got %v, want %v\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

func TestIdentity(t *testing.T) {
	m := Identity()
	want := Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if m != want {
		t.Fatalf("got %v, want %v", m, want)
	}
}

func TestOrthographic(t *testing.T) {
	got := Orthographic(0, 200, 0, 100, 0, 1000)
	want := Mat4{
		0.01, 0, 0, 0,
		0, -0.02, 0, 0,
		0, 0, -0.001, 0,
		-1, 1, 0, 1,
	}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	got := Perspective(80, 1.5, 1, 1000)
	want := Mat4{
		0.79450244, 0, 0, 0,
		0, 1.1917536, 0, 0,
		0, 0, -1.001001, -1,
		0, 0, -1.001001, 0,
	}
	matNear(t, got, want)
}

func TestMultiplyIdentity(t *testing.T) {
	m := Translate(3, -7, 12)
	if got := Multiply(Identity(), m); got != m {
		t.Fatalf("I*m: got %v, want %v", got, m)
	}
	if got := Multiply(m, Identity()); got != m {
		t.Fatalf("m*I: got %v, want %v", got, m)
	}
}

func TestTranslateCompose(t *testing.T) {
	got := Multiply(Translate(1, 2, 3), Translate(10, 20, 30))
	want := Translate(11, 22, 33)
	matNear(t, got, want)
}

func TestRotateMatchesEuler(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		deg   float32
		euler Mat4
	}{
		{name: "x axis is first arg", axis: Vec3{1, 0, 0}, deg: 37, euler: RotateEuler(37, 0, 0)},
		{name: "y axis is second arg", axis: Vec3{0, 1, 0}, deg: 37, euler: RotateEuler(0, 37, 0)},
		{name: "z axis is third arg", axis: Vec3{0, 0, 1}, deg: 37, euler: RotateEuler(0, 0, 37)},
		{name: "negative angle", axis: Vec3{1, 0, 0}, deg: -122.5, euler: RotateEuler(-122.5, 0, 0)},
		{name: "unnormalized axis", axis: Vec3{4, 0, 0}, deg: 90, euler: RotateEuler(90, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matNear(t, Rotate(tt.axis, tt.deg), tt.euler)
		})
	}
}

func TestRotateEulerComposition(t *testing.T) {
	// Combined angles compose as Rz * Ry * Rx with X applied first.
	got := RotateEuler(30, 40, 50)
	want := Multiply(
		Rotate(Vec3{0, 0, 1}, 50),
		Multiply(Rotate(Vec3{0, 1, 0}, 40), Rotate(Vec3{1, 0, 0}, 30)),
	)
	matNear(t, got, want)
}

func TestRotateZeroAxis(t *testing.T) {
	got := Rotate(Vec3{}, 45)
	matNear(t, got, Identity())
}

func TestViewAtOriginLookingDownZ(t *testing.T) {
	// Camera on +Z looking at the origin sees the identity rotation and a
	// translation that pulls the world toward -Z.
	got := View(Vec3{0, 0, 100}, Vec3{}, Vec3{0, 1, 0})
	want := Translate(0, 0, -100)
	matNear(t, got, want)
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{name: "unit x", in: Vec3{1, 0, 0}, want: Vec3{1, 0, 0}},
		{name: "scales down", in: Vec3{0, 3, 4}, want: Vec3{0, 0.6, 0.8}},
		{name: "zero vector", in: Vec3{}, want: Vec3{}},
		{name: "below epsilon", in: Vec3{1e-6, 0, 0}, want: Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			for i := range got {
				diff := got[i] - tt.want[i]
				if diff < -epsilon || diff > epsilon {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if got != (Vec3{0, 0, 1}) {
		t.Fatalf("got %v, want [0 0 1]", got)
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1, 2}
	b := SliceToBytes(data)
	if len(b) != 8 {
		t.Fatalf("got %d bytes, want 8", len(b))
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Fatal("expected nil for empty slice")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 5, 7); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
