package radhdr

import "errors"

// Wire constants of the Radiance new-style RLE scheme. These are fixed by the
// format; changing any of them breaks compatibility with standard readers.
const (
	rleMinRun     = 4   // shortest repetition worth a run record
	rleMaxRun     = 127 // longest repetition a single run record can carry
	rleMaxLiteral = 128 // longest literal span a single record can carry

	rleMinWidth = 8     // narrowest scanline new-style framing is used for
	rleMaxWidth = 32767 // widest scanline the 15-bit framing can describe
)

// ErrInvalidChannelLength reports a channel buffer whose length cannot be
// represented in new-style scanline framing.
var ErrInvalidChannelLength = errors.New("radhdr: channel length outside [1, 32767]")

// EncodeChannel compresses one scanline's worth of a single byte channel
// (R, G, B or E) with the Radiance adaptive run-length scheme. The output is
// a sequence of records: 128+n followed by a value byte repeats that value n
// times (4 <= n <= 127); n in [1, 128] followed by n bytes copies them
// literally.
func EncodeChannel(src []byte) ([]byte, error) {
	if len(src) == 0 || len(src) > rleMaxWidth {
		return nil, ErrInvalidChannelLength
	}
	dst := make([]byte, 0, len(src)+(len(src)+rleMaxLiteral-1)/rleMaxLiteral)
	return appendRLEChannel(dst, src), nil
}

// runLengthAt returns the length of the run of identical bytes starting at i,
// capped at rleMaxRun.
func runLengthAt(src []byte, i int) int {
	n := 1
	v := src[i]
	for i+n < len(src) && n < rleMaxRun && src[i+n] == v {
		n++
	}
	return n
}

// appendRLEChannel appends the greedy single-pass encoding of src to dst.
// At every position a qualifying run takes priority over extending a literal
// span, so a literal never absorbs bytes that belong to a following run and
// the stream decodes unambiguously.
func appendRLEChannel(dst, src []byte) []byte {
	i := 0
	for i < len(src) {
		if n := runLengthAt(src, i); n >= rleMinRun {
			dst = append(dst, byte(128+n), src[i])
			i += n
			continue
		}
		start := i
		i++
		for i < len(src) && i-start < rleMaxLiteral {
			if runLengthAt(src, i) >= rleMinRun {
				break
			}
			i++
		}
		dst = append(dst, byte(i-start))
		dst = append(dst, src[start:i]...)
	}
	return dst
}
