package radhdr

import (
	"image"
	"math"
)

// FromImage wraps an LDR image as a linear-radiance PixelSource. Samples are
// linearized with the inverse sRGB OETF and scaled by exposure, so with
// exposure 1.0 an sRGB white pixel maps to radiance (1, 1, 1). A non-positive
// exposure is treated as 1.0.
func FromImage(img image.Image, exposure float32) PixelSource {
	if exposure <= 0 {
		exposure = 1
	}
	return &imageSource{img: img, exposure: exposure}
}

type imageSource struct {
	img      image.Image
	exposure float32
}

func (s *imageSource) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *imageSource) At(x, y int) (float32, float32, float32) {
	b := s.img.Bounds()
	r, g, bl, _ := s.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	// RGBA returns 16-bit values in [0, 65535].
	return srgbInvOetf(float32(r)/65535.0) * s.exposure,
		srgbInvOetf(float32(g)/65535.0) * s.exposure,
		srgbInvOetf(float32(bl)/65535.0) * s.exposure
}

func srgbInvOetf(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow(float64((v+0.055)/1.055), 2.4))
}
