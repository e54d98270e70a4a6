package math

import "math"

// Color is an RGBA color with channels in the 0-1 range.
type Color struct {
	R, G, B, A float32
}

// White is fully opaque white.
var White = Color{1, 1, 1, 1}

// Uint32 packs the color as ABGR bytes (R in the low byte).
// Channels outside 0-1 are clamped.
func (c Color) Uint32() uint32 {
	return uint32(channel(c.A))<<24 | uint32(channel(c.B))<<16 | uint32(channel(c.G))<<8 | uint32(channel(c.R))
}

// FloatBits packs the color into a single float32 slot.
// The lowest alpha bit is dropped so the result is never a NaN pattern.
func (c Color) FloatBits() float32 {
	return math.Float32frombits(c.Uint32() & 0xfeffffff)
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(255 * v)
}
