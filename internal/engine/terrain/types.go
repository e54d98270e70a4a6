// Package terrain builds packed vertex and index buffers for rectangular grid meshes.
package terrain

import (
	"errors"

	"github.com/Faultbox/trianglegrid/pkg/math"
)

// VerticesPerTile is the number of vertices AddRectangle emits for one tile.
const VerticesPerTile = 4

// Grid build errors.
var (
	ErrInvalidDimensions    = errors.New("grid dimensions must be positive")
	ErrSessionAlreadyActive = errors.New("already building geometry: call End first")
	ErrNoActiveSession      = errors.New("no active build session")
	ErrNoCurrentVertex      = errors.New("vertex attribute set before any vertex was added")
	ErrIndexOutOfRange      = errors.New("triangle references a missing vertex")
	ErrNoMeshData           = errors.New("grid has no packed mesh data")
	ErrGridClosed           = errors.New("grid is closed")
)

// VertexRecord holds one vertex's attribute payload.
// Only the attributes marked used in the session are packed.
type VertexRecord struct {
	Index        uint32
	Position     math.Vec3
	Normal       math.Vec3 // Running sum until the session ends, then unit length
	Color        math.Color
	TexCoord     math.Vec2
	TilePosition math.Vec2
}

// Triangle is an ordered triple of vertex indices.
type Triangle [3]uint32

// Bounds holds the axis-aligned bounding box of the packed positions.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// MeshData is one immutable pair of packed buffers plus the layout needed to read them.
type MeshData struct {
	Vertices    []float32
	Indices     []uint32
	Layout      []AttributeDescriptor
	Stride      int // float32 slots per vertex
	VertexCount int
	Bounds      Bounds
}

// VertexSize returns the size of one packed vertex in bytes.
func (m *MeshData) VertexSize() int {
	return m.Stride * 4
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// MeshHandle is a renderer-owned resource built from MeshData.
type MeshHandle interface {
	Release()
}

// MeshBuilder turns packed buffers into a renderer-owned mesh.
type MeshBuilder interface {
	BuildMesh(data *MeshData) (MeshHandle, error)
}
