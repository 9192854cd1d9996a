// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is the static mesh vertex layout uploaded to vertex buffers.
// Field order and sizes match the shader vertex attributes:
// location 0 position (f32x3), location 1 uv (f32x2), location 2 normal (f32x3).
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	Normal   [3]float32
}

// VertexAnim is the skinned mesh vertex layout. It extends Vertex with
// location 3 joint indices (u32x4) and location 4 joint weights (f32x4).
type VertexAnim struct {
	Position [3]float32
	UV       [2]float32
	Normal   [3]float32
	Joints   [4]uint32
	Weights  [4]float32
}

// Color is a normalized RGBA color. Components are in [0, 1] and use float64
// to match the WebGPU clear color type.
type Color struct {
	R, G, B, A float64
}

// TextureID is a generation-checked handle into the renderer's texture arena.
// A handle outlives the texture it referred to only as a stale handle; using
// it after the slot was reused fails validation instead of aliasing.
type TextureID struct {
	// Index is the arena slot.
	Index uint32
	// Generation is the slot generation the handle was issued for.
	Generation uint32
}

// PipelineID is a generation-checked handle into the renderer's pipeline arena.
type PipelineID struct {
	// Index is the arena slot.
	Index uint32
	// Generation is the slot generation the handle was issued for.
	Generation uint32
}

// ObjectID identifies an object within a pipeline. The slot index is stable
// for the lifetime of the pipeline and doubles as the object's offset index
// into the pipeline's dynamic uniform buffers.
type ObjectID struct {
	// Pipeline is the owning pipeline handle.
	Pipeline PipelineID
	// Slot is the object's index within the pipeline.
	Slot uint32
}

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// This is primarily used in the BindGroupProvider to stage sampler data before creating the GPU sampler and bind group.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers, used in shadow mapping and similar techniques.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering, which can improve texture quality at oblique viewing angles.
	MaxAnisotropy uint16
}

// DecodeImage loads an image file from disk and decodes it to raw RGBA pixel
// data. Supports PNG and JPEG formats.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - path: the image file path
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: image width in pixels
//   - uint32: image height in pixels
//   - error: error if opening or decoding fails
func DecodeImage(path string) ([]byte, uint32, uint32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image file %s: %w", path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return rgba.Pix, uint32(bounds.Dx()), uint32(bounds.Dy()), nil
}
