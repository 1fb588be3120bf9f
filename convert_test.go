package radhdr

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestFromImageLinearizes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{A: 255})

	src := FromImage(img, 1)
	if w, h := src.Size(); w != 2 || h != 1 {
		t.Fatalf("size %dx%d, want 2x1", w, h)
	}
	r, g, b := src.At(0, 0)
	for _, v := range []float32{r, g, b} {
		if v < 0.9999 || v > 1.0001 {
			t.Fatalf("white pixel linearized to (%g, %g, %g)", r, g, b)
		}
	}
	if r, g, b := src.At(1, 0); r != 0 || g != 0 || b != 0 {
		t.Fatalf("black pixel linearized to (%g, %g, %g)", r, g, b)
	}

	data, err := EncodeBytes(src, ModeAuto)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := append([]byte(hdrHeader(2, 1)), 128, 128, 128, 129, 0, 0, 0, 0)
	if !bytes.Equal(data, want) {
		t.Fatalf("got % d, want % d", data, want)
	}
}

func TestFromImageExposure(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 188, G: 92, B: 40, A: 255})

	r1, g1, b1 := FromImage(img, 1).At(0, 0)
	r2, g2, b2 := FromImage(img, 2).At(0, 0)
	if r2 != 2*r1 || g2 != 2*g1 || b2 != 2*b1 {
		t.Fatalf("exposure 2 gave (%g, %g, %g), want (%g, %g, %g)", r2, g2, b2, 2*r1, 2*g1, 2*b1)
	}

	r3, _, _ := FromImage(img, 0).At(0, 0)
	if r3 != r1 {
		t.Fatalf("non-positive exposure should default to 1")
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 12, 21))
	img.SetRGBA(11, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	r, _, _ := FromImage(img, 1).At(1, 0)
	if r < 0.9999 {
		t.Fatalf("offset bounds not honored, got r = %g", r)
	}
}
