package radhdr

// UniformSource is a solid-radiance field. Its main use is tiny probe
// environments such as a 1x1 all-white map.
type UniformSource struct {
	W, H    int
	R, G, B float32
}

// Size returns the configured dimensions.
func (s UniformSource) Size() (int, int) { return s.W, s.H }

// At returns the same radiance triple for every coordinate.
func (s UniformSource) At(x, y int) (float32, float32, float32) { return s.R, s.G, s.B }

// SkyFloorSource is a procedural environment map: a blue sky ramp over the
// top half of the image and a brown floor ramp over the bottom half. Rows are
// constant, so its scanlines compress well with new-style RLE.
type SkyFloorSource struct {
	W, H int
}

// Size returns the configured dimensions.
func (s SkyFloorSource) Size() (int, int) { return s.W, s.H }

// At returns the ramp radiance for row y; x is ignored.
func (s SkyFloorSource) At(x, y int) (float32, float32, float32) {
	d := s.H - 1
	if d < 1 {
		d = 1
	}
	t := float32(y) / float32(d)
	if t < 0.5 {
		k := t / 0.5
		return 0.15 + 0.35*k, 0.25 + 0.45*k, 0.60 + 0.35*k
	}
	k := (t - 0.5) / 0.5
	return 0.35 - 0.10*k, 0.22 - 0.08*k, 0.12 - 0.04*k
}
