package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const (
	// maxPLYPreallocate caps slice capacity taken from header counts; larger meshes grow by append
	maxPLYPreallocate = 1 << 16
	// maxPLYListCount bounds the entries of a single list property, such as a face polygon
	maxPLYListCount = 1 << 12
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string // Usually "1.0"
	Elements []PLYElement

	VertexCount int
	FaceCount   int

	HasNormals   bool
	HasTexCoords bool
}

// PLYElement is one element block declared in the header, such as vertex or face
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type; for lists, the type of each entry
	IsList   bool
	ListType string // For list properties, the type of the count
}

// plyValueReader yields the next scalar of the body, whatever the encoding
type plyValueReader interface {
	next(dataType string) (float64, error)
}

// LoadPLY loads a PLY file and returns its vertex and face data
func LoadPLY(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParsePLY reads an ASCII or binary PLY stream. Faces with more than three
// vertices are split into triangle fans; elements other than vertex and face are skipped.
func ParsePLY(r io.Reader) (*MeshData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &plyASCIIReader{scanner: scanner}
	case "binary_little_endian":
		values = &plyBinaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh, err := readPLYBody(values, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return mesh, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			switch parts[1] {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property declared before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)

			if element.Name == "vertex" {
				switch prop.Name {
				case "nx", "ny", "nz":
					header.HasNormals = true
				case "u", "s", "texture_u", "v", "t", "texture_v":
					header.HasTexCoords = true
				}
			}
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("missing format line")
	}
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		if plyTypeSize(parts[1]) == 0 || plyTypeSize(parts[2]) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported list types %s %s", parts[1], parts[2])
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}

	if plyTypeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("unsupported data type: %s", parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// readPLYBody reads every element in header order
func readPLYBody(values plyValueReader, header *PLYHeader) (*MeshData, error) {
	vertexCap := min(header.VertexCount, maxPLYPreallocate)
	mesh := &MeshData{
		Vertices: make([]core.Vec3, 0, vertexCap),
		Faces:    make([]int, 0, 3*min(header.FaceCount, maxPLYPreallocate)), // Assuming triangular faces
	}
	if header.HasNormals {
		mesh.Normals = make([]core.Vec3, 0, vertexCap)
	}
	if header.HasTexCoords {
		mesh.TexCoords = make([]core.Vec2, 0, vertexCap)
	}

	var polygons [][]int
	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			switch element.Name {
			case "vertex":
				if err := readPLYVertex(values, element.Properties, header, mesh); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
			case "face":
				polygon, err := readPLYFace(values, element.Properties)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				polygons = append(polygons, polygon)
			default:
				for _, prop := range element.Properties {
					if _, err := readPLYProperty(values, prop); err != nil {
						return nil, fmt.Errorf("%s %d: %w", element.Name, i, err)
					}
				}
			}
		}
	}

	// Faces may be declared before vertices, so indices are checked at the end
	for i, polygon := range polygons {
		for _, idx := range polygon {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0,%d)", i, idx, len(mesh.Vertices))
			}
		}
		var skipped int
		mesh.Faces, skipped = appendTriangleFan(mesh.Faces, polygon, mesh.Vertices)
		mesh.SkippedFaces += skipped
	}

	return mesh, nil
}

// readPLYVertex reads one vertex record, keeping position, normal and texture coordinates
func readPLYVertex(values plyValueReader, props []PLYProperty, header *PLYHeader, mesh *MeshData) error {
	var position, normal core.Vec3
	var uv core.Vec2

	for _, prop := range props {
		list, err := readPLYProperty(values, prop)
		if err != nil {
			return err
		}
		if prop.IsList || len(list) == 0 {
			continue
		}

		value := list[0]
		switch prop.Name {
		case "x":
			position.X = value
		case "y":
			position.Y = value
		case "z":
			position.Z = value
		case "nx":
			normal.X = value
		case "ny":
			normal.Y = value
		case "nz":
			normal.Z = value
		case "u", "s", "texture_u":
			uv.X = value
		case "v", "t", "texture_v":
			uv.Y = value
		}
	}

	mesh.Vertices = append(mesh.Vertices, position)
	if header.HasNormals {
		mesh.Normals = append(mesh.Normals, normal)
	}
	if header.HasTexCoords {
		mesh.TexCoords = append(mesh.TexCoords, uv)
	}
	return nil
}

// readPLYFace reads one face record and returns its vertex indices
func readPLYFace(values plyValueReader, props []PLYProperty) ([]int, error) {
	var polygon []int
	for _, prop := range props {
		list, err := readPLYProperty(values, prop)
		if err != nil {
			return nil, err
		}
		if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
			continue
		}
		if len(list) < 3 {
			return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(list))
		}
		polygon = make([]int, len(list))
		for i, v := range list {
			polygon[i] = int(v)
		}
	}
	if polygon == nil {
		return nil, fmt.Errorf("face has no vertex_indices property")
	}
	return polygon, nil
}

// readPLYProperty reads a scalar property as a one-entry slice, or every entry of a list
func readPLYProperty(values plyValueReader, prop PLYProperty) ([]float64, error) {
	if !prop.IsList {
		v, err := values.next(prop.Type)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", prop.Name, err)
		}
		return []float64{v}, nil
	}

	count, err := values.next(prop.ListType)
	if err != nil {
		return nil, fmt.Errorf("list %s count: %w", prop.Name, err)
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, fmt.Errorf("list %s: invalid count %v", prop.Name, count)
	}
	if count > maxPLYListCount {
		return nil, fmt.Errorf("list %s: count %v exceeds limit %d", prop.Name, count, maxPLYListCount)
	}

	list := make([]float64, int(count))
	for i := range list {
		if list[i], err = values.next(prop.Type); err != nil {
			return nil, fmt.Errorf("list %s entry %d: %w", prop.Name, i, err)
		}
	}
	return list, nil
}

// plyTypeSize returns the size in bytes of a PLY data type, or 0 if it is unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// plyASCIIReader reads whitespace-separated values
type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func (r *plyASCIIReader) next(dataType string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(r.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, r.scanner.Text())
	}
	return v, nil
}

// plyBinaryReader decodes fixed-size values in the given byte order
type plyBinaryReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (r *plyBinaryReader) next(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	b := r.buf[:size]
	if _, err := io.ReadFull(r.reader, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default: // double
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}
