package terrain

import (
	"errors"
	"testing"

	"github.com/Faultbox/trianglegrid/pkg/math"
)

const epsilon = 1e-5

func approx(a, b math.Vec3) bool {
	d := a.Sub(b)
	return abs(d.X) < epsilon && abs(d.Y) < epsilon && abs(d.Z) < epsilon
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func records(positions ...math.Vec3) []VertexRecord {
	out := make([]VertexRecord, len(positions))
	for i, p := range positions {
		out[i] = VertexRecord{Index: uint32(i), Position: p, Color: math.White}
	}
	return out
}

func TestFaceNormal_SingleTriangle(t *testing.T) {
	p1 := math.Vec3{X: 0, Y: 0, Z: 0}
	p2 := math.Vec3{X: 0, Y: 0, Z: 1}
	p3 := math.Vec3{X: 1, Y: 0, Z: 0}

	n := FaceNormal(p1, p2, p3)
	if want := (math.Vec3{X: 0, Y: -1, Z: 0}); n != want {
		t.Errorf("FaceNormal() = %v, want %v", n, want)
	}

	if d := n.Dot(p2.Sub(p1)); abs(d) > epsilon {
		t.Errorf("normal not orthogonal to first edge: dot = %v", d)
	}
	if d := n.Dot(p3.Sub(p1)); abs(d) > epsilon {
		t.Errorf("normal not orthogonal to second edge: dot = %v", d)
	}

	// Reversing the winding flips the normal.
	if got, want := FaceNormal(p1, p3, p2), (math.Vec3{X: 0, Y: 1, Z: 0}); got != want {
		t.Errorf("reversed FaceNormal() = %v, want %v", got, want)
	}
}

func TestAccumulateNormals_Normalizes(t *testing.T) {
	recs := records(
		math.Vec3{X: 0, Y: 0, Z: 0},
		math.Vec3{X: 0, Y: 0, Z: 3},
		math.Vec3{X: 3, Y: 0, Z: 0},
	)

	if err := AccumulateNormals(recs, []uint32{0, 1, 2}); err != nil {
		t.Fatalf("AccumulateNormals failed: %v", err)
	}

	for i, r := range recs {
		if l := r.Normal.Length(); abs(l-1) > epsilon {
			t.Errorf("vertex %d normal length = %v, want 1", i, l)
		}
		if !approx(r.Normal, math.Vec3{Y: -1}) {
			t.Errorf("vertex %d normal = %v, want (0,-1,0)", i, r.Normal)
		}
	}
}

func TestAccumulateNormals_SharedVerticesAreAreaWeighted(t *testing.T) {
	recs := records(
		math.Vec3{X: 0, Y: 0, Z: 0},
		math.Vec3{X: 0, Y: 0, Z: 1},
		math.Vec3{X: 1, Y: 0, Z: 0}, // floor triangle, face normal (0,-1,0)
		math.Vec3{X: 0, Y: 2, Z: 0}, // wall triangle twice the area, face normal (2,0,0)
	)

	if err := AccumulateNormals(recs, []uint32{0, 1, 2, 0, 1, 3}); err != nil {
		t.Fatalf("AccumulateNormals failed: %v", err)
	}

	shared := math.Vec3{X: 2, Y: -1}.Normalize()
	for _, i := range []int{0, 1} {
		if !approx(recs[i].Normal, shared) {
			t.Errorf("shared vertex %d normal = %v, want %v", i, recs[i].Normal, shared)
		}
	}
	if !approx(recs[2].Normal, math.Vec3{Y: -1}) {
		t.Errorf("floor vertex normal = %v, want (0,-1,0)", recs[2].Normal)
	}
	if !approx(recs[3].Normal, math.Vec3{X: 1}) {
		t.Errorf("wall vertex normal = %v, want (1,0,0)", recs[3].Normal)
	}
}

func TestAccumulateNormals_UnreferencedVertex(t *testing.T) {
	recs := records(
		math.Vec3{X: 0, Y: 0, Z: 0},
		math.Vec3{X: 0, Y: 0, Z: 1},
		math.Vec3{X: 1, Y: 0, Z: 0},
		math.Vec3{X: 5, Y: 5, Z: 5},
		math.Vec3{X: 6, Y: 6, Z: 6},
	)
	recs[4].Normal = math.Vec3{Y: 2}

	if err := AccumulateNormals(recs, []uint32{0, 1, 2}); err != nil {
		t.Fatalf("AccumulateNormals failed: %v", err)
	}

	if recs[3].Normal != (math.Vec3{}) {
		t.Errorf("untouched vertex normal = %v, want zero vector", recs[3].Normal)
	}
	if !approx(recs[4].Normal, math.Vec3{Y: 1}) {
		t.Errorf("seeded vertex normal = %v, want (0,1,0)", recs[4].Normal)
	}
}

func TestAccumulateNormals_OutOfRange(t *testing.T) {
	recs := records(math.Vec3{}, math.Vec3{Z: 1})

	err := AccumulateNormals(recs, []uint32{0, 1, 2})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}
