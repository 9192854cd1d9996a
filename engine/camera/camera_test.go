package camera

import (
	"testing"

	"github.com/halcyon-gfx/halcyon/common"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	if c.Projection() != ProjectionOrthographic {
		t.Fatalf("projection = %v, want orthographic", c.Projection())
	}
	if c.Position() != (common.Vec3{0, 0, 100}) {
		t.Fatalf("position = %v, want {0 0 100}", c.Position())
	}
	if c.LookAt() != (common.Vec3{}) {
		t.Fatalf("lookAt = %v, want origin", c.LookAt())
	}
	if c.Up() != (common.Vec3{0, 1, 0}) {
		t.Fatalf("up = %v, want {0 1 0}", c.Up())
	}
	if c.FovY() != 60 || c.Near() != 0 || c.Far() != 1000 {
		t.Fatalf("fov/near/far = %v/%v/%v, want 60/0/1000", c.FovY(), c.Near(), c.Far())
	}
}

func TestNewCameraOptions(t *testing.T) {
	c := NewCamera(
		WithProjection(ProjectionPerspective),
		WithPosition(common.Vec3{1, 2, 3}),
		WithLookAt(common.Vec3{0, 1, 0}),
		WithUp(common.Vec3{0, 0, 1}),
		WithFovY(45),
		WithNear(0.1),
		WithFar(500),
	)

	if c.Projection() != ProjectionPerspective {
		t.Fatalf("projection = %v, want perspective", c.Projection())
	}
	if c.Position() != (common.Vec3{1, 2, 3}) {
		t.Fatalf("position = %v", c.Position())
	}
	if c.LookAt() != (common.Vec3{0, 1, 0}) {
		t.Fatalf("lookAt = %v", c.LookAt())
	}
	if c.Up() != (common.Vec3{0, 0, 1}) {
		t.Fatalf("up = %v", c.Up())
	}
	if c.FovY() != 45 || c.Near() != 0.1 || c.Far() != 500 {
		t.Fatalf("fov/near/far = %v/%v/%v", c.FovY(), c.Near(), c.Far())
	}
}

func TestProjectionMatrixSelectsKind(t *testing.T) {
	tests := []struct {
		name string
		cam  Camera
		want common.Mat4
	}{
		{
			name: "orthographic spans the canvas centered on the origin",
			cam:  NewCamera(),
			want: common.Orthographic(-400, 400, 300, -300, 0, 1000),
		},
		{
			name: "perspective uses the canvas aspect ratio",
			cam: NewCamera(
				WithProjection(ProjectionPerspective),
				WithFovY(60),
				WithNear(0.1),
				WithFar(1000),
			),
			want: common.Perspective(60, 800.0/600.0, 0.1, 1000),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cam.ProjectionMatrix(800, 600); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestViewMatrixFollowsSetters(t *testing.T) {
	c := NewCamera()
	c.SetPosition(common.Vec3{0, 10, 20})
	c.SetLookAt(common.Vec3{0, 0, 0})
	c.SetUp(common.Vec3{0, 1, 0})

	want := common.View(common.Vec3{0, 10, 20}, common.Vec3{}, common.Vec3{0, 1, 0})
	if got := c.ViewMatrix(); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}
