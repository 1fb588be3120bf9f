package radhdr

import (
	"math"
	"math/rand"
	"testing"
)

func TestQuantizeRGBE(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b float32
		want    [4]byte
	}{
		{name: "white", r: 1, g: 1, b: 1, want: [4]byte{128, 128, 128, 129}},
		{name: "half_steps", r: 1, g: 0.5, b: 0.25, want: [4]byte{128, 64, 32, 129}},
		{name: "black", r: 0, g: 0, b: 0, want: [4]byte{0, 0, 0, 0}},
		{name: "below_threshold", r: 1e-33, g: 5e-34, b: 0, want: [4]byte{0, 0, 0, 0}},
		{name: "just_above_threshold", r: 0, g: 0, b: 2e-32, want: [4]byte{0, 0, 208, 23}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := quantizeRGBE(tc.r, tc.g, tc.b)
			if got != tc.want {
				t.Fatalf("quantize(%g, %g, %g) = %v, want %v", tc.r, tc.g, tc.b, got, tc.want)
			}
		})
	}
}

func TestQuantizeExponentSaturates(t *testing.T) {
	p := quantizeRGBE(3e38, 1, 1)
	if p[3] != 255 {
		t.Fatalf("exponent byte = %d, want 255", p[3])
	}
}

func TestQuantizeRoundTripWithinOneStep(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		mag := math.Pow(10, float64(rng.Intn(60)-30))
		r := float32(rng.Float64() * mag)
		g := float32(rng.Float64() * mag)
		b := float32(rng.Float64() * mag)
		if max3(r, g, b) < rgbeMinLevel {
			continue
		}
		p := quantizeRGBE(r, g, b)
		step := math.Exp2(float64(int(p[3]) - 128 - 8))
		for c, orig := range []float32{r, g, b} {
			dec := float64(p[c]) / 256.0 * math.Exp2(float64(int(p[3])-128))
			if diff := math.Abs(dec - float64(orig)); diff > step*(1+1e-9) {
				t.Fatalf("channel %d of (%g, %g, %g): decoded %g, want %g within %g",
					c, r, g, b, dec, orig, step)
			}
		}
	}
}

func TestQuantizeNearZeroCollapse(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		r := float32(rng.Float64() * 0.9e-32)
		g := float32(rng.Float64() * 0.9e-32)
		b := float32(rng.Float64() * 0.9e-32)
		if got := quantizeRGBE(r, g, b); got != ([4]byte{}) {
			t.Fatalf("quantize(%g, %g, %g) = %v, want zero quad", r, g, b, got)
		}
	}
}
