package common

// Key codes delivered by the window key callbacks. Values match GLFW key
// codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32
	KeyA     = 65
	KeyD     = 68
	KeyE     = 69
	KeyP     = 80
	KeyQ     = 81
	KeyS     = 83
	KeyW     = 87

	KeyEsc   = 256
	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265

	KeyLeftShift = 340
)
