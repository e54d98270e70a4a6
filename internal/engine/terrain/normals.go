package terrain

import (
	"fmt"

	"github.com/Faultbox/trianglegrid/pkg/math"
)

// FaceNormal returns the unnormalized normal of the triangle (p1, p2, p3).
// Its length is twice the triangle's area.
func FaceNormal(p1, p2, p3 math.Vec3) math.Vec3 {
	side1 := p1.Sub(p3)
	side2 := p1.Sub(p2)
	return side1.Cross(side2)
}

// AccumulateNormals adds every triangle's face normal to the normals of its three
// vertices, then normalizes all vertex normals. Larger triangles weigh more.
// Vertices referenced by no triangle keep a zero normal unless one was seeded.
func AccumulateNormals(records []VertexRecord, indices []uint32) error {
	for t := 0; t+2 < len(indices); t += 3 {
		tri := Triangle{indices[t], indices[t+1], indices[t+2]}
		if err := checkTriangle(tri, t/3, len(records)); err != nil {
			return err
		}

		n := FaceNormal(records[tri[0]].Position, records[tri[1]].Position, records[tri[2]].Position)
		for _, i := range tri {
			records[i].Normal = records[i].Normal.Add(n)
		}
	}

	for i := range records {
		records[i].Normal = records[i].Normal.Normalize()
	}
	return nil
}

func checkTriangle(tri Triangle, n, vertexCount int) error {
	for _, i := range tri {
		if int(i) >= vertexCount {
			return fmt.Errorf("%w: triangle %d uses index %d, have %d vertices", ErrIndexOutOfRange, n, i, vertexCount)
		}
	}
	return nil
}
