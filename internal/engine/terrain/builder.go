package terrain

import (
	"errors"
	"fmt"

	"github.com/Faultbox/trianglegrid/pkg/math"
)

// TerrainOptions selects the attributes BuildTerrain emits besides position.
type TerrainOptions struct {
	Normals   bool
	Colors    bool
	TexCoords bool
	TilePos   bool
	UVScale   float32    // Texture repeats per tile
	Low       math.Color // Vertex color at the lowest altitude
	High      math.Color // Vertex color at the highest altitude
}

// DefaultTerrainOptions enables every attribute with a green-to-brown altitude tint.
func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{
		Normals:   true,
		Colors:    true,
		TexCoords: true,
		TilePos:   true,
		UVScale:   1,
		Low:       math.Color{R: 0.25, G: 0.55, B: 0.2, A: 1},
		High:      math.Color{R: 0.55, G: 0.45, B: 0.35, A: 1},
	}
}

// BuildTerrain runs one build session that turns hm into a shared-vertex lattice:
// one vertex per tile corner and two triangles per tile, wound like AddRectangle.
// The heightmap must match the grid's dimensions.
func BuildTerrain(g *Grid, hm *Heightmap, opts TerrainOptions) error {
	if err := hm.Validate(); err != nil {
		return err
	}
	if hm.Rows() != g.Rows() || hm.Columns() != g.Columns() {
		return fmt.Errorf("heightmap is %dx%d tiles, grid is %dx%d", hm.Rows(), hm.Columns(), g.Rows(), g.Columns())
	}

	if err := g.Begin(); err != nil {
		return err
	}
	if err := emitLattice(g, hm, opts); err != nil {
		g.Discard()
		return err
	}

	ok, err := g.End()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoActiveSession
	}
	return nil
}

func emitLattice(g *Grid, hm *Heightmap, opts TerrainOptions) error {
	lo, hi := hm.AltitudeRange()
	span := hi - lo

	for row := 0; row <= hm.Rows(); row++ {
		for col := 0; col <= hm.Columns(); col++ {
			alt := hm.Corner(row, col)
			if _, err := g.AddVertex(float32(col)*hm.TileSize, alt, float32(row)*hm.TileSize); err != nil {
				return err
			}

			var errs []error
			if opts.Normals {
				errs = append(errs, g.AddZeroNormal())
			}
			if opts.Colors {
				var t float32
				if span > 0 {
					t = (alt - lo) / span
				}
				c := lerpColor(opts.Low, opts.High, t)
				errs = append(errs, g.AddColorToVertex(c.R, c.G, c.B, c.A))
			}
			if opts.TexCoords {
				errs = append(errs, g.AddUVMap(float32(col)*opts.UVScale, float32(row)*opts.UVScale))
			}
			if opts.TilePos {
				errs = append(errs, g.AddTilePos(float32(col), float32(row)))
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}
		}
	}

	stride := uint32(hm.Columns() + 1)
	for row := uint32(0); row < uint32(hm.Rows()); row++ {
		for col := uint32(0); col < uint32(hm.Columns()); col++ {
			topLeft := row*stride + col
			bottomLeft := topLeft + stride
			topRight := topLeft + 1
			bottomRight := bottomLeft + 1
			if err := g.AddIndices(topLeft, bottomLeft, topRight); err != nil {
				return err
			}
			if err := g.AddIndices(topRight, bottomLeft, bottomRight); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildTiles runs one build session that places a unit quad on every tile at height y.
func BuildTiles(g *Grid, y float32) error {
	if err := g.Begin(); err != nil {
		return err
	}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			if err := g.AddRectangle(float32(col), y, float32(row), 1, 1); err != nil {
				g.Discard()
				return err
			}
		}
	}
	_, err := g.End()
	return err
}

func lerpColor(a, b math.Color, t float32) math.Color {
	return math.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
