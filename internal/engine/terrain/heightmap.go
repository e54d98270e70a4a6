package terrain

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidHeightmap is returned for heightmaps that are not a rectangular lattice of at least 2x2 corners.
var ErrInvalidHeightmap = errors.New("invalid heightmap")

// Heightmap holds tile corner altitudes for a grid.
// A grid of R x C tiles has (R+1) x (C+1) corners.
type Heightmap struct {
	Altitudes [][]float32 `yaml:"altitudes"` // [row][column]
	TileSize  float32     `yaml:"tile_size"`
}

// FlatHeightmap returns a heightmap of rows x columns tiles at altitude zero.
// A non-positive tile size is replaced by 1.
func FlatHeightmap(rows, columns int, tileSize float32) *Heightmap {
	if tileSize <= 0 {
		tileSize = 1
	}
	altitudes := make([][]float32, max(rows+1, 0))
	for r := range altitudes {
		altitudes[r] = make([]float32, columns+1)
	}
	return &Heightmap{Altitudes: altitudes, TileSize: tileSize}
}

// LoadHeightmap reads a YAML heightmap file.
func LoadHeightmap(path string) (*Heightmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	hm, err := ParseHeightmap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hm, nil
}

// ParseHeightmap decodes and validates a YAML heightmap.
func ParseHeightmap(data []byte) (*Heightmap, error) {
	hm := &Heightmap{TileSize: 1}
	if err := yaml.Unmarshal(data, hm); err != nil {
		return nil, err
	}
	if err := hm.Validate(); err != nil {
		return nil, err
	}
	return hm, nil
}

// Validate checks the lattice shape and tile size.
func (h *Heightmap) Validate() error {
	if len(h.Altitudes) < 2 {
		return fmt.Errorf("%w: need at least 2 corner rows, got %d", ErrInvalidHeightmap, len(h.Altitudes))
	}
	width := len(h.Altitudes[0])
	if width < 2 {
		return fmt.Errorf("%w: need at least 2 corner columns, got %d", ErrInvalidHeightmap, width)
	}
	for r, row := range h.Altitudes {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d corners, want %d", ErrInvalidHeightmap, r, len(row), width)
		}
	}
	if h.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %v", ErrInvalidHeightmap, h.TileSize)
	}
	return nil
}

// Rows returns the number of tile rows.
func (h *Heightmap) Rows() int {
	return len(h.Altitudes) - 1
}

// Columns returns the number of tile columns.
func (h *Heightmap) Columns() int {
	if len(h.Altitudes) == 0 {
		return -1
	}
	return len(h.Altitudes[0]) - 1
}

// Corner returns the altitude at a corner, clamping out-of-range coordinates to the edge.
func (h *Heightmap) Corner(row, column int) float32 {
	row = clampi(row, 0, h.Rows())
	column = clampi(column, 0, h.Columns())
	return h.Altitudes[row][column]
}

// AltitudeRange returns the lowest and highest corner altitudes.
func (h *Heightmap) AltitudeRange() (lo, hi float32) {
	for r, row := range h.Altitudes {
		for c, a := range row {
			if (r == 0 && c == 0) || a < lo {
				lo = a
			}
			if (r == 0 && c == 0) || a > hi {
				hi = a
			}
		}
	}
	return lo, hi
}

// HeightAt returns the bilinearly interpolated altitude at world position (x, z).
// Positions outside the grid are clamped to its edge. An invalid heightmap reads as zero.
func (h *Heightmap) HeightAt(x, z float32) float32 {
	if h.Validate() != nil {
		return 0
	}
	fx := clampf(x/h.TileSize, 0, float32(h.Columns()))
	fz := clampf(z/h.TileSize, 0, float32(h.Rows()))

	col := min(int(fx), h.Columns()-1)
	row := min(int(fz), h.Rows()-1)
	tx := fx - float32(col)
	tz := fz - float32(row)

	top := h.Corner(row, col)*(1-tx) + h.Corner(row, col+1)*tx
	bottom := h.Corner(row+1, col)*(1-tx) + h.Corner(row+1, col+1)*tx
	return top*(1-tz) + bottom*tz
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
