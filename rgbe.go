package radhdr

import "math"

// rgbeMinLevel is the smallest max-channel radiance that still maps to a
// non-zero RGBE quad. Anything below collapses to (0,0,0,0), the canonical
// encoding of black.
const rgbeMinLevel = 1e-32

// quantizeRGBE converts one linear radiance triple into the 4-byte
// shared-exponent RGBE quad. The mantissa bytes are rounded to nearest and
// clamped to [0, 255]; the exponent byte carries the binary exponent of the
// largest channel, biased by 128. Inputs are assumed finite and non-negative;
// the image encoder validates them before calling.
func quantizeRGBE(r, g, b float32) [4]byte {
	v := float64(max3(r, g, b))
	if v < rgbeMinLevel {
		return [4]byte{}
	}
	m, e := math.Frexp(v)
	scale := m * 256.0 / v
	return [4]byte{
		clampByte(int(float64(r)*scale + 0.5)),
		clampByte(int(float64(g)*scale + 0.5)),
		clampByte(int(float64(b)*scale + 0.5)),
		clampByte(e + 128),
	}
}

func clampByte(n int) byte {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return byte(n)
}

func max3(a, b, c float32) float32 {
	if a >= b && a >= c {
		return a
	}
	if b >= a && b >= c {
		return b
	}
	return c
}
