// package loader imports mesh data from wavefront .obj files into the
// engine's vertex format. Only the subset of the format needed for static
// meshes is handled: positions (v), texture coordinates (vt), normals (vn)
// and faces (f) with triangle or quad windings. Quads are triangulated on
// the fly. Materials, groups and smoothing directives are ignored.
package loader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/halcyon-gfx/halcyon/common"
)

var (
	// ErrOBJRead indicates the .obj file could not be read from disk.
	ErrOBJRead = errors.New("loader: failed to read obj file")

	// ErrOBJData indicates the .obj file contained malformed or out-of-range data.
	ErrOBJData = errors.New("loader: malformed obj data")
)

// LoadOBJ parses a wavefront .obj file into a flat, non-indexed vertex slice.
// Face entries use the standard 1-based `v`, `v/vt`, `v/vt/vn` index syntax.
// Quad faces are split into two triangles.
//
// Parameters:
//   - path: the .obj file path
//
// Returns:
//   - []common.Vertex: the parsed vertices, in face order
//   - error: ErrOBJRead if the file cannot be read, ErrOBJData on parse failure
func LoadOBJ(path string) ([]common.Vertex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOBJRead, path, err)
	}
	return ParseOBJ(string(data))
}

// ParseOBJ parses wavefront .obj file contents. See LoadOBJ.
//
// Parameters:
//   - data: the .obj file contents
//
// Returns:
//   - []common.Vertex: the parsed vertices, in face order
//   - error: ErrOBJData on parse failure
func ParseOBJ(data string) ([]common.Vertex, error) {
	var positions [][3]float32
	var uvs [][2]float32
	var normals [][3]float32
	var output []common.Vertex

	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, err
			}
			positions = append(positions, v)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: short vt line %q", ErrOBJData, line)
			}
			var uv [2]float32
			for i := 0; i < 2; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("%w: %q: %v", ErrOBJData, fields[i+1], err)
				}
				uv[i] = float32(f)
			}
			uvs = append(uvs, uv)
		case "vn":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, err
			}
			normals = append(normals, v)
		case "f":
			corners := fields[1:]
			if len(corners) < 3 || len(corners) > 4 {
				return nil, fmt.Errorf("%w: face with %d corners", ErrOBJData, len(corners))
			}
			var v1, v3 common.Vertex
			for i, corner := range corners {
				v, err := parseFaceCorner(corner, positions, uvs, normals)
				if err != nil {
					return nil, err
				}
				switch i {
				case 0:
					v1 = v
					output = append(output, v)
				case 1:
					output = append(output, v)
				case 2:
					v3 = v
					output = append(output, v)
				case 3:
					// triangulate the quad: (v3, v4, v1)
					output = append(output, v3, v, v1)
				}
			}
		}
	}

	return output, nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("%w: expected 3 components, got %d", ErrOBJData, len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, fmt.Errorf("%w: %q: %v", ErrOBJData, fields[i], err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseFaceCorner(corner string, positions [][3]float32, uvs [][2]float32, normals [][3]float32) (common.Vertex, error) {
	var v common.Vertex
	for i, part := range strings.Split(corner, "/") {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return v, fmt.Errorf("%w: face index %q: %v", ErrOBJData, part, err)
		}
		switch i {
		case 0:
			if n < 1 || n > len(positions) {
				return v, fmt.Errorf("%w: position index %d out of range", ErrOBJData, n)
			}
			v.Position = positions[n-1]
		case 1:
			if n < 1 || n > len(uvs) {
				return v, fmt.Errorf("%w: uv index %d out of range", ErrOBJData, n)
			}
			v.UV = uvs[n-1]
		case 2:
			if n < 1 || n > len(normals) {
				return v, fmt.Errorf("%w: normal index %d out of range", ErrOBJData, n)
			}
			v.Normal = normals[n-1]
		}
	}
	return v, nil
}
