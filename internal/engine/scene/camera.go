package scene

import (
	gomath "math"

	"github.com/Faultbox/trianglegrid/internal/engine/terrain"
	"github.com/Faultbox/trianglegrid/pkg/math"
)

// OrbitCamera circles a target point.
type OrbitCamera struct {
	Target   math.Vec3
	Distance float32
	Yaw      float32 // Radians around the Y axis
	Pitch    float32 // Radians above the XZ plane
	FovY     float32
}

// FrameBounds returns a camera that looks at the centre of b from far enough to see all of it.
func FrameBounds(b terrain.Bounds) OrbitCamera {
	size := b.Max.Sub(b.Min)
	return OrbitCamera{
		Target:   b.Min.Add(size.Scale(0.5)),
		Distance: max(size.Length()*1.2, 2),
		Yaw:      gomath.Pi / 4,
		Pitch:    gomath.Pi / 5,
		FovY:     gomath.Pi / 4,
	}
}

// Eye returns the camera position.
func (c OrbitCamera) Eye() math.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	offset := math.Vec3{
		X: c.Distance * cp * float32(gomath.Sin(float64(c.Yaw))),
		Y: c.Distance * float32(gomath.Sin(float64(c.Pitch))),
		Z: c.Distance * cp * float32(gomath.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset)
}

// Rotate changes yaw and pitch, keeping pitch short of the poles.
func (c *OrbitCamera) Rotate(dYaw, dPitch float32) {
	const limit = gomath.Pi/2 - 0.05
	c.Yaw += dYaw
	c.Pitch = min(max(c.Pitch+dPitch, -limit), limit)
}

// Zoom scales the distance to the target.
func (c *OrbitCamera) Zoom(factor float32) {
	c.Distance = max(c.Distance*factor, 0.5)
}

// ViewProj returns the combined view-projection matrix.
func (c OrbitCamera) ViewProj(aspect float32) math.Mat4 {
	far := c.Distance * 4
	proj := math.Perspective(c.FovY, aspect, 0.1, far)
	view := math.LookAt(c.Eye(), c.Target, math.Vec3{Y: 1})
	return proj.Mul(view)
}
