package renderer

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/halcyon-gfx/halcyon/engine/renderer/pipeline"
)

// Embedded default shaders. A pipeline that does not supply its own WGSL
// source gets the default for its vertex type; the overlay pipeline uses the
// text shader.

//go:embed shaders/base.wgsl
var baseShaderSource string

//go:embed shaders/anim.wgsl
var animShaderSource string

//go:embed shaders/text.wgsl
var textShaderSource string

// defaultJointCapacity is the joint array length written in anim.wgsl.
const defaultJointCapacity = 64

// defaultShaderSource returns the embedded WGSL source for the given vertex
// type. The animated shader's joint array is resized to jointCount so the
// shader's minimum binding size matches the pipeline's joint buffer layout.
//
// Parameters:
//   - t: the vertex type the pipeline consumes
//   - jointCount: the pipeline's joint capacity
//
// Returns:
//   - string: the WGSL source
func defaultShaderSource(t pipeline.VertexType, jointCount uint32) string {
	if t != pipeline.VertexTypeAnimated {
		return baseShaderSource
	}
	if jointCount == defaultJointCapacity || jointCount == 0 {
		return animShaderSource
	}
	return strings.Replace(animShaderSource,
		fmt.Sprintf("array<mat4x4<f32>, %d>", defaultJointCapacity),
		fmt.Sprintf("array<mat4x4<f32>, %d>", jointCount),
		1,
	)
}
