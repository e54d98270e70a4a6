package terrain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseHeightmap(t *testing.T) {
	data := []byte(`
tile_size: 2
altitudes:
  - [0, 0, 1]
  - [0, 4, 2]
`)
	hm, err := ParseHeightmap(data)
	if err != nil {
		t.Fatalf("ParseHeightmap failed: %v", err)
	}
	if hm.Rows() != 1 || hm.Columns() != 2 {
		t.Errorf("dimensions = %dx%d, want 1x2", hm.Rows(), hm.Columns())
	}
	if hm.TileSize != 2 {
		t.Errorf("TileSize = %v, want 2", hm.TileSize)
	}
	lo, hi := hm.AltitudeRange()
	if lo != 0 || hi != 4 {
		t.Errorf("AltitudeRange() = %v, %v, want 0, 4", lo, hi)
	}
}

func TestParseHeightmap_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"single row", "altitudes:\n  - [0, 1]\n"},
		{"single column", "altitudes:\n  - [0]\n  - [1]\n"},
		{"ragged", "altitudes:\n  - [0, 1]\n  - [1]\n"},
		{"bad tile size", "tile_size: 0\naltitudes:\n  - [0, 1]\n  - [1, 1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHeightmap([]byte(tt.data)); !errors.Is(err, ErrInvalidHeightmap) {
				t.Errorf("expected ErrInvalidHeightmap, got %v", err)
			}
		})
	}
}

func TestLoadHeightmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hills.yaml")
	if err := os.WriteFile(path, []byte("altitudes:\n  - [0, 1]\n  - [2, 3]\n"), 0644); err != nil {
		t.Fatalf("failed to write heightmap: %v", err)
	}

	hm, err := LoadHeightmap(path)
	if err != nil {
		t.Fatalf("LoadHeightmap failed: %v", err)
	}
	if hm.TileSize != 1 {
		t.Errorf("TileSize = %v, want default 1", hm.TileSize)
	}
	if hm.Corner(5, 5) != 3 {
		t.Errorf("Corner(5, 5) = %v, want clamped 3", hm.Corner(5, 5))
	}

	if _, err := LoadHeightmap(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHeightmap_HeightAt(t *testing.T) {
	hm := &Heightmap{
		Altitudes: [][]float32{{0, 0}, {0, 4}},
		TileSize:  2,
	}

	tests := []struct {
		x, z float32
		want float32
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 2, 4},
		{2, 1, 2},
		{-5, -5, 0},
		{10, 10, 4},
	}

	for _, tt := range tests {
		if got := hm.HeightAt(tt.x, tt.z); abs(got-tt.want) > epsilon {
			t.Errorf("HeightAt(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestHeightmap_HeightAtInvalid(t *testing.T) {
	tests := []struct {
		name string
		hm   *Heightmap
	}{
		{"zero tile size", &Heightmap{Altitudes: [][]float32{{1, 1}, {1, 1}}}},
		{"negative tile size", &Heightmap{Altitudes: [][]float32{{1, 1}, {1, 1}}, TileSize: -2}},
		{"empty", &Heightmap{TileSize: 1}},
		{"single corner row", &Heightmap{Altitudes: [][]float32{{1, 1}}, TileSize: 1}},
		{"ragged", &Heightmap{Altitudes: [][]float32{{1, 1}, {1}}, TileSize: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hm.HeightAt(0.5, 0.5); got != 0 {
				t.Errorf("HeightAt = %v, want 0", got)
			}
		})
	}
}

func TestFlatHeightmap_TileSize(t *testing.T) {
	for _, size := range []float32{0, -1} {
		hm := FlatHeightmap(2, 2, size)
		if hm.TileSize != 1 {
			t.Errorf("FlatHeightmap(2, 2, %v).TileSize = %v, want 1", size, hm.TileSize)
		}
		if err := hm.Validate(); err != nil {
			t.Errorf("Validate failed: %v", err)
		}
		if got := hm.HeightAt(0, 0); got != 0 {
			t.Errorf("HeightAt(0, 0) = %v, want 0", got)
		}
	}
}

func TestBuildTerrain_Flat(t *testing.T) {
	g := newTestGrid(t, 2, 3)
	if err := BuildTerrain(g, FlatHeightmap(2, 3, 1), DefaultTerrainOptions()); err != nil {
		t.Fatalf("BuildTerrain failed: %v", err)
	}

	if g.VertexCount() != 12 {
		t.Errorf("VertexCount() = %d, want 12", g.VertexCount())
	}
	if g.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", g.TriangleCount())
	}
	if g.Stride() != 11 {
		t.Errorf("Stride() = %d, want 11", g.Stride())
	}

	wantKinds := []AttributeKind{Position, Normal, Color, TextureCoordinate, TileCoordinate}
	for i, d := range g.Layout() {
		if d.Kind != wantKinds[i] {
			t.Errorf("layout[%d] = %v, want %v", i, d.Kind, wantKinds[i])
		}
	}

	v := g.Vertices()
	for i := 0; i < g.VertexCount(); i++ {
		n := v[i*11+3 : i*11+6]
		if abs(n[0]) > epsilon || abs(n[1]+1) > epsilon || abs(n[2]) > epsilon {
			t.Errorf("vertex %d normal = %v, want (0,-1,0)", i, n)
		}
	}
}

func TestBuildTerrain_BufferInvariants(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 4}, {3, 2}, {8, 8}}
	for _, size := range sizes {
		rows, cols := size[0], size[1]
		g := newTestGrid(t, rows, cols)

		hm := FlatHeightmap(rows, cols, 1.5)
		for r := range hm.Altitudes {
			for c := range hm.Altitudes[r] {
				hm.Altitudes[r][c] = float32(r*c) * 0.5
			}
		}
		opts := DefaultTerrainOptions()
		opts.TilePos = false
		if err := BuildTerrain(g, hm, opts); err != nil {
			t.Fatalf("BuildTerrain(%dx%d) failed: %v", rows, cols, err)
		}

		if len(g.Vertices()) != g.Stride()*g.VertexCount() {
			t.Errorf("%dx%d: %d floats, want stride %d * %d vertices", rows, cols, len(g.Vertices()), g.Stride(), g.VertexCount())
		}
		if len(g.Indices()) != 3*g.TriangleCount() || g.TriangleCount() != 2*rows*cols {
			t.Errorf("%dx%d: %d indices for %d triangles", rows, cols, len(g.Indices()), g.TriangleCount())
		}
		for _, idx := range g.Indices() {
			if int(idx) >= g.VertexCount() {
				t.Errorf("%dx%d: index %d out of range", rows, cols, idx)
			}
		}
		if got := g.Bounds().Max.X; abs(got-float32(cols)*1.5) > epsilon {
			t.Errorf("%dx%d: bounds max x = %v", rows, cols, got)
		}
	}
}

func TestBuildTerrain_DimensionMismatch(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	if err := BuildTerrain(g, FlatHeightmap(3, 2, 1), DefaultTerrainOptions()); err == nil {
		t.Error("expected error for mismatched heightmap")
	}
	if g.Building() {
		t.Error("expected no active session after failure")
	}
}

func TestBuildTerrain_ActiveSession(t *testing.T) {
	g := newTestGrid(t, 1, 1)
	if err := g.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	err := BuildTerrain(g, FlatHeightmap(1, 1, 1), DefaultTerrainOptions())
	if !errors.Is(err, ErrSessionAlreadyActive) {
		t.Errorf("expected ErrSessionAlreadyActive, got %v", err)
	}
}

func TestBuildTiles(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	if err := BuildTiles(g, 3); err != nil {
		t.Fatalf("BuildTiles failed: %v", err)
	}
	if g.VertexCount() != 2*2*VerticesPerTile {
		t.Errorf("VertexCount() = %d, want %d", g.VertexCount(), 2*2*VerticesPerTile)
	}
	if g.TriangleCount() != 8 {
		t.Errorf("TriangleCount() = %d, want 8", g.TriangleCount())
	}
	b := g.Bounds()
	if b.Min.Y != 3 || b.Max.Y != 3 || b.Max.X != 2 || b.Max.Z != 2 {
		t.Errorf("Bounds = %+v", b)
	}
}
