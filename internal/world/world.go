// Package world builds grids from configuration.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/trianglegrid/internal/config"
	"github.com/Faultbox/trianglegrid/internal/engine/terrain"
	"github.com/Faultbox/trianglegrid/internal/logger"
)

// Map is a grid together with the heightmap it was built from.
type Map struct {
	Grid      *terrain.Grid
	Heightmap *terrain.Heightmap
	cfg       config.GridConfig
}

// Load builds a grid as described by cfg. Without a heightmap path the grid is flat.
func Load(cfg config.GridConfig) (*Map, error) {
	hm, err := loadHeightmap(cfg)
	if err != nil {
		return nil, err
	}

	g, err := terrain.NewGrid(hm.Rows(), hm.Columns())
	if err != nil {
		return nil, err
	}

	m := &Map{Grid: g, Heightmap: hm, cfg: cfg}
	if err := m.Rebuild(); err != nil {
		g.Close()
		return nil, err
	}
	return m, nil
}

func loadHeightmap(cfg config.GridConfig) (*terrain.Heightmap, error) {
	if cfg.Heightmap == "" {
		if cfg.Rows <= 0 || cfg.Columns <= 0 {
			return nil, fmt.Errorf("%w: %dx%d", terrain.ErrInvalidDimensions, cfg.Rows, cfg.Columns)
		}
		tileSize := cfg.TileSize
		if tileSize <= 0 {
			tileSize = 1
		}
		return terrain.FlatHeightmap(cfg.Rows, cfg.Columns, tileSize), nil
	}

	hm, err := terrain.LoadHeightmap(cfg.Heightmap)
	if err != nil {
		return nil, fmt.Errorf("loading heightmap: %w", err)
	}
	if cfg.TileSize > 0 {
		hm.TileSize = cfg.TileSize
	}
	return hm, nil
}

// Options returns the terrain options selected by the configuration.
func Options(cfg config.GridConfig) terrain.TerrainOptions {
	opts := terrain.DefaultTerrainOptions()
	opts.Normals = cfg.Normals
	opts.Colors = cfg.Colors
	opts.TilePos = cfg.TilePos
	if cfg.UVScale > 0 {
		opts.UVScale = cfg.UVScale
	}
	return opts
}

// Rebuild runs a new build session over the map's heightmap.
func (m *Map) Rebuild() error {
	if err := terrain.BuildTerrain(m.Grid, m.Heightmap, Options(m.cfg)); err != nil {
		return fmt.Errorf("building terrain: %w", err)
	}

	logger.Info("grid built",
		zap.Int("rows", m.Grid.Rows()),
		zap.Int("columns", m.Grid.Columns()),
		zap.Int("vertices", m.Grid.VertexCount()),
		zap.Int("triangles", m.Grid.TriangleCount()),
		zap.Int("stride", m.Grid.Stride()),
	)
	return nil
}

// Close releases the grid.
func (m *Map) Close() {
	m.Grid.Close()
}
