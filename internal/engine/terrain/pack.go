package terrain

import (
	"slices"

	"github.com/Faultbox/trianglegrid/pkg/math"
)

// Pack interleaves the records' used attributes in the set's order into one
// float32 buffer and copies the index list. The layout is derived from attrs.
func Pack(records []VertexRecord, indices []uint32, attrs *AttributeSet) (*MeshData, error) {
	for t := 0; t+2 < len(indices); t += 3 {
		if err := checkTriangle(Triangle{indices[t], indices[t+1], indices[t+2]}, t/3, len(records)); err != nil {
			return nil, err
		}
	}

	kinds := attrs.Kinds()
	stride := attrs.Stride()
	vertices := make([]float32, 0, stride*len(records))

	var bounds Bounds
	for i := range records {
		v := &records[i]
		for _, k := range kinds {
			switch k {
			case Position:
				vertices = append(vertices, v.Position.X, v.Position.Y, v.Position.Z)
			case Normal:
				vertices = append(vertices, v.Normal.X, v.Normal.Y, v.Normal.Z)
			case Color:
				vertices = append(vertices, PackColor(v.Color))
			case TextureCoordinate:
				vertices = append(vertices, v.TexCoord.X, v.TexCoord.Y)
			case TileCoordinate:
				vertices = append(vertices, v.TilePosition.X, v.TilePosition.Y)
			}
		}

		if i == 0 {
			bounds = Bounds{Min: v.Position, Max: v.Position}
		} else {
			bounds.Min = bounds.Min.Min(v.Position)
			bounds.Max = bounds.Max.Max(v.Position)
		}
	}

	return &MeshData{
		Vertices:    vertices,
		Indices:     slices.Clone(indices),
		Layout:      attrs.Layout(),
		Stride:      stride,
		VertexCount: len(records),
		Bounds:      bounds,
	}, nil
}

// PackColor encodes c into a single float32 slot as four normalized unsigned bytes (ABGR).
func PackColor(c math.Color) float32 {
	return c.FloatBits()
}
