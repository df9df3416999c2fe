package scene

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrUnsupportedPLY is returned for PLY layouts the loader does not
// understand (ascii files, list properties on vertices, and so on).
var ErrUnsupportedPLY = errors.New("scene: unsupported ply layout")

const packedPositionScale = 1024.0

var plyTypeSizes = map[string]int{
	"char": 1, "int8": 1, "uchar": 1, "uint8": 1,
	"short": 2, "int16": 2, "ushort": 2, "uint16": 2,
	"int": 4, "int32": 4, "uint": 4, "uint32": 4, "float": 4, "float32": 4,
	"double": 8, "float64": 8,
}

type plyProperty struct {
	name string
	size int
}

type plyHeader struct {
	vertexCount int
	properties  []plyProperty
}

func (h plyHeader) stride() int {
	n := 0
	for _, p := range h.properties {
		n += p.size
	}
	return n
}

func (h plyHeader) offsetOf(name string) (int, bool) {
	off := 0
	for _, p := range h.properties {
		if p.name == name {
			return off, true
		}
		off += p.size
	}
	return 0, false
}

// LoadPLY reads camera-planning positions out of a binary
// little-endian PLY file. Two vertex layouts are handled:
//
//   - SuperSplat compressed scenes carrying a packed_position uint32
//     per vertex (10 bits per axis); coordinates come back normalized
//     to [0,1).
//   - plain float32 x/y/z properties, returned as stored.
func LoadPLY(path string) (Cloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return Cloud{}, fmt.Errorf("scene: open ply: %w", err)
	}
	defer f.Close()
	return readPLY(bufio.NewReader(f))
}

func readPLY(r *bufio.Reader) (Cloud, error) {
	header, err := readPLYHeader(r)
	if err != nil {
		return Cloud{}, err
	}

	if off, ok := header.offsetOf("packed_position"); ok {
		return readPackedVertices(r, header, off)
	}
	return readFloatVertices(r, header)
}

func readPLYHeader(r *bufio.Reader) (plyHeader, error) {
	magic, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return plyHeader{}, fmt.Errorf("%w: missing ply magic", ErrUnsupportedPLY)
	}

	var header plyHeader
	inVertex := false
	sawElement := false
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return plyHeader{}, fmt.Errorf("scene: read ply header: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "binary_little_endian" {
				return plyHeader{}, fmt.Errorf("%w: format %q", ErrUnsupportedPLY, strings.TrimSpace(line))
			}
		case "comment":
			// ignored
		case "element":
			if len(fields) < 3 {
				return plyHeader{}, fmt.Errorf("%w: malformed element", ErrUnsupportedPLY)
			}
			if fields[1] == "vertex" {
				// The vertex element must lead the file so the reader can
				// stop after the last vertex record.
				if sawElement {
					return plyHeader{}, fmt.Errorf("%w: vertex element is not first", ErrUnsupportedPLY)
				}
				n, err := strconv.Atoi(fields[2])
				if err != nil || n < 0 {
					return plyHeader{}, fmt.Errorf("%w: vertex count %q", ErrUnsupportedPLY, fields[2])
				}
				header.vertexCount = n
				inVertex = true
			} else {
				inVertex = false
			}
			sawElement = true
		case "property":
			if !inVertex {
				continue
			}
			if fields[1] == "list" {
				return plyHeader{}, fmt.Errorf("%w: list property on vertex", ErrUnsupportedPLY)
			}
			if len(fields) < 3 {
				return plyHeader{}, fmt.Errorf("%w: malformed property", ErrUnsupportedPLY)
			}
			size, ok := plyTypeSizes[fields[1]]
			if !ok {
				return plyHeader{}, fmt.Errorf("%w: property type %q", ErrUnsupportedPLY, fields[1])
			}
			header.properties = append(header.properties, plyProperty{name: fields[2], size: size})
		case "end_header":
			if header.vertexCount == 0 && !sawElement {
				return plyHeader{}, fmt.Errorf("%w: no vertex element", ErrUnsupportedPLY)
			}
			return header, nil
		}
	}
}

// readPackedVertices decodes SuperSplat packed positions: ten bits per
// axis, x in the low bits, normalized by 1024.
func readPackedVertices(r io.Reader, header plyHeader, offset int) (Cloud, error) {
	stride := header.stride()
	record := make([]byte, stride)
	c := Cloud{
		X: make([]float64, header.vertexCount),
		Y: make([]float64, header.vertexCount),
		Z: make([]float64, header.vertexCount),
	}
	for i := 0; i < header.vertexCount; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return Cloud{}, fmt.Errorf("scene: read vertex %d: %w", i, err)
		}
		packed := binary.LittleEndian.Uint32(record[offset:])
		c.X[i] = float64(packed&1023) / packedPositionScale
		c.Y[i] = float64((packed>>10)&1023) / packedPositionScale
		c.Z[i] = float64((packed>>20)&1023) / packedPositionScale
	}
	return c, nil
}

func readFloatVertices(r io.Reader, header plyHeader) (Cloud, error) {
	offX, okX := header.offsetOf("x")
	offY, okY := header.offsetOf("y")
	offZ, okZ := header.offsetOf("z")
	if !okX || !okY || !okZ {
		return Cloud{}, fmt.Errorf("%w: no packed_position or x/y/z properties", ErrUnsupportedPLY)
	}

	stride := header.stride()
	record := make([]byte, stride)
	c := Cloud{
		X: make([]float64, header.vertexCount),
		Y: make([]float64, header.vertexCount),
		Z: make([]float64, header.vertexCount),
	}
	for i := 0; i < header.vertexCount; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return Cloud{}, fmt.Errorf("scene: read vertex %d: %w", i, err)
		}
		c.X[i] = float64(float32FromLE(record[offX:]))
		c.Y[i] = float64(float32FromLE(record[offY:]))
		c.Z[i] = float64(float32FromLE(record[offZ:]))
	}
	return c, nil
}

func float32FromLE(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
