package terrain

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Packed mesh file errors.
var (
	ErrInvalidMeshMagic       = errors.New("invalid mesh magic: expected 'TGRD'")
	ErrUnsupportedMeshVersion = errors.New("unsupported mesh version")
	ErrInvalidMeshHeader      = errors.New("invalid mesh header")
)

const (
	meshMagic   = "TGRD"
	meshVersion = uint16(1)

	maxMeshVertices = 1 << 24
	maxMeshIndices  = 1 << 26
)

type meshHeader struct {
	Version     uint16
	Stride      uint16
	VertexCount uint32
	IndexCount  uint32
	LayoutCount uint32
}

type layoutEntry struct {
	Kind       uint8
	Components uint8
	Slots      uint8
	Packed     uint8
	Offset     uint32
}

// WriteMeshData writes packed buffers and their layout in little-endian order:
// magic, header, layout entries, vertex floats, indices.
func WriteMeshData(w io.Writer, m *MeshData) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(meshMagic); err != nil {
		return err
	}

	header := meshHeader{
		Version:     meshVersion,
		Stride:      uint16(m.Stride),
		VertexCount: uint32(m.VertexCount),
		IndexCount:  uint32(len(m.Indices)),
		LayoutCount: uint32(len(m.Layout)),
	}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return err
	}

	for _, a := range m.Layout {
		e := layoutEntry{
			Kind:       uint8(a.Kind),
			Components: uint8(a.Components),
			Slots:      uint8(a.Slots),
			Offset:     uint32(a.Offset),
		}
		if a.Packed {
			e.Packed = 1
		}
		if err := binary.Write(bw, binary.LittleEndian, e); err != nil {
			return err
		}
	}

	if err := binary.Write(bw, binary.LittleEndian, m.Vertices); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, m.Indices); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadMeshData reads buffers written by WriteMeshData. Bounds are not stored and stay zero.
func ReadMeshData(r io.Reader) (*MeshData, error) {
	magic := make([]byte, len(meshMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != meshMagic {
		return nil, ErrInvalidMeshMagic
	}

	var header meshHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if header.Version != meshVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMeshVersion, header.Version)
	}
	if header.LayoutCount == 0 || header.LayoutCount > uint32(len(attributeNames)) {
		return nil, fmt.Errorf("%w: %d layout entries", ErrInvalidMeshHeader, header.LayoutCount)
	}
	if header.VertexCount > maxMeshVertices || header.IndexCount > maxMeshIndices || header.IndexCount%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices, %d indices", ErrInvalidMeshHeader, header.VertexCount, header.IndexCount)
	}

	layout, err := readLayout(r, int(header.LayoutCount))
	if err != nil {
		return nil, err
	}
	slots := 0
	for _, a := range layout {
		slots += a.Slots
	}
	if int(header.Stride) != slots {
		return nil, fmt.Errorf("%w: stride %d, layout has %d slots", ErrInvalidMeshHeader, header.Stride, slots)
	}

	m := &MeshData{
		Stride:      slots,
		VertexCount: int(header.VertexCount),
		Layout:      layout,
		Vertices:    make([]float32, slots*int(header.VertexCount)),
		Indices:     make([]uint32, header.IndexCount),
	}
	if err := binary.Read(r, binary.LittleEndian, m.Vertices); err != nil {
		return nil, fmt.Errorf("reading vertices: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("reading indices: %w", err)
	}
	return m, nil
}

// readLayout reads n layout entries. Each kind must be known, appear once and carry its own slot count.
func readLayout(r io.Reader, n int) ([]AttributeDescriptor, error) {
	layout := make([]AttributeDescriptor, 0, n)
	seen := make(map[AttributeKind]bool, n)
	for i := 0; i < n; i++ {
		var e layoutEntry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return nil, fmt.Errorf("reading layout: %w", err)
		}
		kind := AttributeKind(e.Kind)
		if int(e.Kind) >= len(attributeNames) || seen[kind] || int(e.Slots) != kind.Slots() {
			return nil, fmt.Errorf("%w: layout entry kind %d with %d slots", ErrInvalidMeshHeader, e.Kind, e.Slots)
		}
		seen[kind] = true
		layout = append(layout, AttributeDescriptor{
			Kind:       kind,
			Name:       kind.ShaderName(),
			Components: int(e.Components),
			Slots:      int(e.Slots),
			Offset:     int(e.Offset),
			Packed:     e.Packed != 0,
		})
	}
	return layout, nil
}

// ReadMeshFile reads a file written by Grid.ExportFile.
func ReadMeshFile(path string) (*MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadMeshData(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// ExportFile writes the grid's packed buffers to path.
func (g *Grid) ExportFile(path string) error {
	if g.data == nil {
		return ErrNoMeshData
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteMeshData(f, g.data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
