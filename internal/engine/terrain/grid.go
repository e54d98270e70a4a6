package terrain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/trianglegrid/internal/logger"
	"github.com/Faultbox/trianglegrid/pkg/math"
)

// Grid accumulates vertices and triangles for a rows x columns tile grid
// and packs them into renderer-ready buffers.
//
// A Grid is not safe for concurrent use. One build session may be active at a time:
// Begin, then AddVertex and the attribute setters, then End.
type Grid struct {
	rows    int
	columns int
	log     *zap.Logger

	building   bool
	closed     bool
	attributes AttributeSet
	records    []VertexRecord
	indices    []uint32
	current    int // Record the attribute setters write to; -1 before the first AddVertex

	data *MeshData
	mesh MeshHandle
}

// NewGrid creates a grid with fixed dimensions.
func NewGrid(rows, columns int) (*Grid, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, columns)
	}
	return &Grid{
		rows:    rows,
		columns: columns,
		log:     logger.Named("grid"),
		current: -1,
	}, nil
}

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of tile columns.
func (g *Grid) Columns() int { return g.columns }

// Building reports whether a build session is active.
func (g *Grid) Building() bool { return g.building }

// Begin starts a build session, discarding the records of the previous one.
// The last packed output stays readable until the session ends successfully.
func (g *Grid) Begin() error {
	if g.closed {
		return ErrGridClosed
	}
	if g.building {
		return ErrSessionAlreadyActive
	}

	tiles := g.rows * g.columns
	g.attributes.Reset()
	g.records = make([]VertexRecord, 0, tiles*VerticesPerTile)
	g.indices = make([]uint32, 0, tiles*6)
	g.current = -1
	g.building = true

	g.log.Debug("build session started", zap.Int("rows", g.rows), zap.Int("columns", g.columns))
	return nil
}

// Declare marks attribute kinds as used before any vertex carries them,
// fixing the packing order up front.
func (g *Grid) Declare(kinds ...AttributeKind) error {
	if !g.building {
		return ErrNoActiveSession
	}
	for _, k := range kinds {
		g.attributes.MarkUsed(k)
	}
	return nil
}

// AddVertex appends a vertex at the given position and returns its index.
// The new vertex becomes the target of the attribute setters until the next AddVertex.
func (g *Grid) AddVertex(x, y, z float32) (uint32, error) {
	if !g.building {
		return 0, ErrNoActiveSession
	}

	idx := uint32(len(g.records))
	g.records = append(g.records, VertexRecord{
		Index:    idx,
		Position: math.Vec3{X: x, Y: y, Z: z},
		Color:    math.White,
	})
	g.current = int(idx)
	g.attributes.MarkUsed(Position)

	return idx, nil
}

// currentRecord returns the most recently added vertex.
func (g *Grid) currentRecord() (*VertexRecord, error) {
	if !g.building {
		return nil, ErrNoActiveSession
	}
	if g.current < 0 {
		return nil, ErrNoCurrentVertex
	}
	return &g.records[g.current], nil
}

// AddNormal seeds the current vertex's normal. Face normals of the triangles
// that reference the vertex are added to it when the session ends.
func (g *Grid) AddNormal(x, y, z float32) error {
	v, err := g.currentRecord()
	if err != nil {
		return err
	}
	v.Normal = math.Vec3{X: x, Y: y, Z: z}
	g.attributes.MarkUsed(Normal)
	return nil
}

// AddZeroNormal enables normals for the current vertex and leaves them to be computed from the triangles.
func (g *Grid) AddZeroNormal() error {
	return g.AddNormal(0, 0, 0)
}

// AddUVMap sets the current vertex's texture coordinate.
func (g *Grid) AddUVMap(u, v float32) error {
	rec, err := g.currentRecord()
	if err != nil {
		return err
	}
	rec.TexCoord = math.Vec2{X: u, Y: v}
	g.attributes.MarkUsed(TextureCoordinate)
	return nil
}

// AddColorToVertex sets the current vertex's color.
func (g *Grid) AddColorToVertex(r, gr, b, a float32) error {
	v, err := g.currentRecord()
	if err != nil {
		return err
	}
	v.Color = math.Color{R: r, G: gr, B: b, A: a}
	g.attributes.MarkUsed(Color)
	return nil
}

// AddTilePos sets the current vertex's tile coordinate.
func (g *Grid) AddTilePos(x, z float32) error {
	v, err := g.currentRecord()
	if err != nil {
		return err
	}
	v.TilePosition = math.Vec2{X: x, Y: z}
	g.attributes.MarkUsed(TileCoordinate)
	return nil
}

// AddIndices appends one triangle. Indices are checked when the session ends.
func (g *Grid) AddIndices(a, b, c uint32) error {
	if !g.building {
		return ErrNoActiveSession
	}
	g.indices = append(g.indices, a, b, c)
	return nil
}

// AddRectangle adds a quad anchored at (x, y, z) on the XZ plane as two triangles.
//
// NOTE: width and height are ignored and every call emits a 1x1 quad. Existing
// callers only pass 1, 1; scaling would change their output.
func (g *Grid) AddRectangle(x, y, z, width, height float32) error {
	topLeft, err := g.AddVertex(x, y, z)
	if err != nil {
		return err
	}
	bottomLeft, err := g.AddVertex(x, y, z+1)
	if err != nil {
		return err
	}
	topRight, err := g.AddVertex(x+1, y, z)
	if err != nil {
		return err
	}
	if err := g.AddIndices(topLeft, bottomLeft, topRight); err != nil {
		return err
	}

	bottomRight, err := g.AddVertex(x+1, y, z+1)
	if err != nil {
		return err
	}
	return g.AddIndices(topRight, bottomLeft, bottomRight)
}

// End closes the build session, computes normals if they are in use and packs the buffers.
// It returns false with a nil error when no session is active. If packing fails the
// session is still closed and the previously packed output is kept.
func (g *Grid) End() (bool, error) {
	if !g.building {
		return false, nil
	}
	g.building = false
	g.current = -1

	if g.attributes.IsUsed(Normal) {
		if err := AccumulateNormals(g.records, g.indices); err != nil {
			g.log.Warn("build session failed", zap.Error(err))
			return false, err
		}
	}

	data, err := Pack(g.records, g.indices, &g.attributes)
	if err != nil {
		g.log.Warn("build session failed", zap.Error(err))
		return false, err
	}

	g.releaseMesh()
	g.data = data

	g.log.Debug("build session packed",
		zap.Int("vertices", data.VertexCount),
		zap.Int("triangles", data.TriangleCount()),
		zap.Int("stride", data.Stride),
	)
	return true, nil
}

// Discard closes the build session without packing.
func (g *Grid) Discard() {
	g.building = false
	g.current = -1
}

// HasMeshData reports whether a session has been packed successfully.
func (g *Grid) HasMeshData() bool {
	return g.data != nil
}

// MeshData returns the most recently packed buffers, or nil.
func (g *Grid) MeshData() *MeshData {
	return g.data
}

// Vertices returns the packed vertex buffer.
func (g *Grid) Vertices() []float32 {
	if g.data == nil {
		return nil
	}
	return g.data.Vertices
}

// Indices returns the packed index buffer.
func (g *Grid) Indices() []uint32 {
	if g.data == nil {
		return nil
	}
	return g.data.Indices
}

// Layout returns the attribute layout of the packed vertex buffer.
func (g *Grid) Layout() []AttributeDescriptor {
	if g.data == nil {
		return nil
	}
	return g.data.Layout
}

// Stride returns the float32 slots per packed vertex.
func (g *Grid) Stride() int {
	if g.data == nil {
		return 0
	}
	return g.data.Stride
}

// VertexCount returns the number of packed vertices.
func (g *Grid) VertexCount() int {
	if g.data == nil {
		return 0
	}
	return g.data.VertexCount
}

// TriangleCount returns the number of packed triangles.
func (g *Grid) TriangleCount() int {
	if g.data == nil {
		return 0
	}
	return g.data.TriangleCount()
}

// Bounds returns the bounding box of the packed positions.
func (g *Grid) Bounds() Bounds {
	if g.data == nil {
		return Bounds{}
	}
	return g.data.Bounds
}

// Mesh hands the packed buffers to b on first use and caches the result
// until the next successful End. Once handed off, the vertex records are freed.
func (g *Grid) Mesh(b MeshBuilder) (MeshHandle, error) {
	if g.closed {
		return nil, ErrGridClosed
	}
	if g.mesh != nil {
		return g.mesh, nil
	}
	if g.data == nil {
		return nil, ErrNoMeshData
	}

	h, err := b.BuildMesh(g.data)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}
	g.mesh = h
	if !g.building {
		g.records = nil
	}

	g.log.Debug("mesh handed off", zap.Int("vertices", g.data.VertexCount))
	return h, nil
}

func (g *Grid) releaseMesh() {
	if g.mesh != nil {
		g.mesh.Release()
		g.mesh = nil
	}
}

// Close releases the mesh handle, the vertex records and the packed buffers.
// It is safe to call more than once.
func (g *Grid) Close() {
	g.releaseMesh()
	g.records = nil
	g.indices = nil
	g.data = nil
	g.building = false
	g.current = -1
	g.closed = true
}
