package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// objCorner is one v/vt/vn reference of a face, as 0-based indices (-1 = absent)
type objCorner struct {
	v, vt, vn int
}

// LoadOBJ loads a Wavefront OBJ file
func LoadOBJ(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParseOBJ reads vertex positions (v), texture coordinates (vt), normals (vn) and
// faces (f). Polygons are split into triangle fans. Other statements are ignored.
//
// OBJ indexes positions, texture coordinates and normals separately; each distinct
// combination used by a face becomes one mesh vertex. Normals or texture coordinates
// are only kept if every face corner provides them.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	var positions, normals []core.Vec3
	var texCoords []core.Vec2
	var polygons [][]objCorner

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			v, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNum, err)
			}
			positions = append(positions, core.NewVec3(v[0], v[1], v[2]))
		case "vt":
			vt, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNum, err)
			}
			texCoords = append(texCoords, core.NewVec2(vt[0], vt[1]))
		case "vn":
			vn, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNum, err)
			}
			normals = append(normals, core.NewVec3(vn[0], vn[1], vn[2]))
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNum, len(parts)-1)
			}
			polygon := make([]objCorner, 0, len(parts)-1)
			for _, ref := range parts[1:] {
				corner, err := parseOBJCorner(ref, len(positions), len(texCoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				polygon = append(polygon, corner)
			}
			polygons = append(polygons, polygon)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ data: %w", err)
	}

	return buildOBJMesh(positions, texCoords, normals, polygons), nil
}

// buildOBJMesh re-indexes OBJ corners into a single vertex list and triangulates
func buildOBJMesh(positions []core.Vec3, texCoords []core.Vec2, normals []core.Vec3, polygons [][]objCorner) *MeshData {
	allHaveUV, allHaveNormal := true, true
	for _, polygon := range polygons {
		for _, c := range polygon {
			allHaveUV = allHaveUV && c.vt >= 0
			allHaveNormal = allHaveNormal && c.vn >= 0
		}
	}

	mesh := &MeshData{}
	vertexIndex := make(map[objCorner]int)
	for _, polygon := range polygons {
		indices := make([]int, len(polygon))
		for i, c := range polygon {
			// Drop attributes that cannot be used so identical positions are shared
			if !allHaveUV {
				c.vt = -1
			}
			if !allHaveNormal {
				c.vn = -1
			}

			idx, ok := vertexIndex[c]
			if !ok {
				idx = len(mesh.Vertices)
				vertexIndex[c] = idx
				mesh.Vertices = append(mesh.Vertices, positions[c.v])
				if allHaveUV {
					mesh.TexCoords = append(mesh.TexCoords, texCoords[c.vt])
				}
				if allHaveNormal {
					mesh.Normals = append(mesh.Normals, normals[c.vn])
				}
			}
			indices[i] = idx
		}

		var skipped int
		mesh.Faces, skipped = appendTriangleFan(mesh.Faces, indices, mesh.Vertices)
		mesh.SkippedFaces += skipped
	}
	return mesh
}

// parseOBJCorner parses "v", "v/vt", "v//vn" or "v/vt/vn"
func parseOBJCorner(ref string, numV, numVT, numVN int) (objCorner, error) {
	fields := strings.Split(ref, "/")
	if len(fields) > 3 {
		return objCorner{}, fmt.Errorf("invalid face vertex %q", ref)
	}

	corner := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if corner.v, err = resolveOBJIndex(fields[0], numV); err != nil {
		return objCorner{}, fmt.Errorf("face vertex %q: %w", ref, err)
	}
	if len(fields) > 1 && fields[1] != "" {
		if corner.vt, err = resolveOBJIndex(fields[1], numVT); err != nil {
			return objCorner{}, fmt.Errorf("face texture coordinate %q: %w", ref, err)
		}
	}
	if len(fields) > 2 && fields[2] != "" {
		if corner.vn, err = resolveOBJIndex(fields[2], numVN); err != nil {
			return objCorner{}, fmt.Errorf("face normal %q: %w", ref, err)
		}
	}
	return corner, nil
}

// resolveOBJIndex converts a 1-based (or negative, relative) OBJ index to 0-based
func resolveOBJIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	switch {
	case idx > 0 && idx <= count:
		return idx - 1, nil
	case idx < 0 && -idx <= count:
		return count + idx, nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d defined)", idx, count)
	}
}

// parseFloats parses at least n numbers; extra values (such as w) are ignored
func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", fields[i])
		}
		values[i] = v
	}
	return values, nil
}
