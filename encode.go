package radhdr

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
)

// Mode selects the scanline framing written by Encode.
type Mode int

const (
	// ModeAuto picks ModeNewRLE when the width fits new-style framing and
	// falls back to ModeFlat otherwise.
	ModeAuto Mode = iota
	// ModeFlat writes raw RGBE pixels with no scanline framing.
	ModeFlat
	// ModeNewRLE writes new-style run-length encoded scanlines.
	ModeNewRLE
)

var (
	// ErrInvalidDimensions reports a non-positive width or height.
	ErrInvalidDimensions = errors.New("radhdr: image dimensions must be positive")
	// ErrUnsupportedWidth reports a width new-style framing cannot carry.
	ErrUnsupportedWidth = errors.New("radhdr: width outside [8, 32767] cannot use new-style RLE")
	// ErrInvalidPixelValue reports a NaN, infinite or negative radiance value.
	ErrInvalidPixelValue = errors.New("radhdr: pixel values must be finite and non-negative")
)

// PixelSource yields linear radiance pixels for encoding. At must be safe to
// call from multiple goroutines; scanlines are encoded concurrently for tall
// images.
type PixelSource interface {
	Size() (width, height int)
	At(x, y int) (r, g, b float32)
}

// HDRImage stores a linear-light image as packed RGB float32 triplets.
// It implements PixelSource.
type HDRImage struct {
	W, H int
	Pix  []float32
}

// NewHDRImage allocates a black image of the given size.
func NewHDRImage(w, h int) *HDRImage {
	return &HDRImage{W: w, H: h, Pix: make([]float32, w*h*3)}
}

// Size returns the image dimensions in pixels.
func (im *HDRImage) Size() (int, int) { return im.W, im.H }

// At returns the radiance triple at (x, y).
func (im *HDRImage) At(x, y int) (float32, float32, float32) {
	i := (y*im.W + x) * 3
	return im.Pix[i], im.Pix[i+1], im.Pix[i+2]
}

// Set stores a radiance triple at (x, y).
func (im *HDRImage) Set(x, y int, r, g, b float32) {
	i := (y*im.W + x) * 3
	im.Pix[i], im.Pix[i+1], im.Pix[i+2] = r, g, b
}

// Encode writes src to w as a Radiance .hdr file: the ASCII header followed
// by height scanlines top to bottom in the chosen framing. Output bytes are
// deterministic for a given source and mode.
func Encode(w io.Writer, src PixelSource, mode Mode) error {
	width, height := src.Size()
	if width < 1 || height < 1 {
		return ErrInvalidDimensions
	}
	switch mode {
	case ModeAuto:
		if width < rleMinWidth || width > rleMaxWidth {
			mode = ModeFlat
		} else {
			mode = ModeNewRLE
		}
	case ModeNewRLE:
		if width < rleMinWidth || width > rleMaxWidth {
			return ErrUnsupportedWidth
		}
	case ModeFlat:
	default:
		return fmt.Errorf("radhdr: unknown mode %d", mode)
	}

	rows, err := encodeRows(src, width, height, mode)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", height, width)
	for _, row := range rows {
		bw.Write(row)
	}
	return bw.Flush()
}

// EncodeBytes is Encode into a freshly allocated byte slice.
func EncodeBytes(src PixelSource, mode Mode) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, src, mode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Rows below parallelMinRows are encoded inline; taller images split across
// worker goroutines, one contiguous row range each.
const parallelMinRows = 16

// encodeRows encodes every scanline independently and returns them in row
// order. Each row depends only on its own pixels, so ranges of rows run on
// separate goroutines; the first error in row order wins.
func encodeRows(src PixelSource, width, height int, mode Mode) ([][]byte, error) {
	rows := make([][]byte, height)
	errs := make([]error, height)
	encodeRange := func(start, end int) {
		var chans *channelBufs
		if mode == ModeNewRLE {
			chans = newChannelBufs(width)
		}
		for y := start; y < end; y++ {
			if mode == ModeFlat {
				rows[y], errs[y] = appendFlatRow(make([]byte, 0, width*4), src, y, width)
			} else {
				rows[y], errs[y] = appendRLERow(make([]byte, 0, rleRowCap(width)), src, y, width, chans)
			}
		}
	}
	if height < parallelMinRows {
		encodeRange(0, height)
	} else {
		parallelFor(height, encodeRange)
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// rleRowCap bounds a new-style scanline: 4 framing bytes plus, per channel,
// the all-literal worst case of width bytes and one length byte per 128.
func rleRowCap(width int) int {
	return 4 + 4*(width+(width+rleMaxLiteral-1)/rleMaxLiteral)
}

func appendFlatRow(dst []byte, src PixelSource, y, width int) ([]byte, error) {
	for x := 0; x < width; x++ {
		r, g, b := src.At(x, y)
		if err := checkPixel(r, g, b, x, y); err != nil {
			return nil, err
		}
		p := quantizeRGBE(r, g, b)
		dst = append(dst, p[0], p[1], p[2], p[3])
	}
	return dst, nil
}

func appendRLERow(dst []byte, src PixelSource, y, width int, chans *channelBufs) ([]byte, error) {
	dst = append(dst, 2, 2, byte(width>>8), byte(width))
	for x := 0; x < width; x++ {
		r, g, b := src.At(x, y)
		if err := checkPixel(r, g, b, x, y); err != nil {
			return nil, err
		}
		p := quantizeRGBE(r, g, b)
		chans.r[x], chans.g[x], chans.b[x], chans.e[x] = p[0], p[1], p[2], p[3]
	}
	dst = appendRLEChannel(dst, chans.r)
	dst = appendRLEChannel(dst, chans.g)
	dst = appendRLEChannel(dst, chans.b)
	dst = appendRLEChannel(dst, chans.e)
	return dst, nil
}

// channelBufs holds one scanline de-interleaved into its four byte channels.
type channelBufs struct {
	r, g, b, e []byte
}

func newChannelBufs(width int) *channelBufs {
	buf := make([]byte, width*4)
	return &channelBufs{
		r: buf[:width],
		g: buf[width : 2*width],
		b: buf[2*width : 3*width],
		e: buf[3*width:],
	}
}

func checkPixel(r, g, b float32, x, y int) error {
	if !validComponent(r) || !validComponent(g) || !validComponent(b) {
		return fmt.Errorf("%w: (%g, %g, %g) at pixel (%d, %d)", ErrInvalidPixelValue, r, g, b, x, y)
	}
	return nil
}

func validComponent(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
