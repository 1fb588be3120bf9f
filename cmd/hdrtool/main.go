package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/Syntopia/radhdr"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "white":
		if err := runWhite(os.Args[2:]); err != nil {
			fail(err)
		}
	case "skyfloor":
		if err := runSkyFloor(os.Args[2:]); err != nil {
			fail(err)
		}
	case "convert":
		if err := runConvert(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: hdrtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  white    -out white.hdr [-w 1] [-h 1] [-value 1.0]")
	fmt.Fprintln(os.Stderr, "  skyfloor -out sky.hdr [-w 64] [-h 32]")
	fmt.Fprintln(os.Stderr, "  convert  -in input.png -out output.hdr [-w N] [-h N] [-exposure 1.0] [-mode auto|flat|rle]")
}

func runWhite(args []string) error {
	fs := flag.NewFlagSet("white", flag.ContinueOnError)
	outPath := fs.String("out", "", "output .hdr file")
	w := fs.Int("w", 1, "width")
	h := fs.Int("h", 1, "height")
	value := fs.Float64("value", 1.0, "radiance for all channels")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return errors.New("missing required arguments")
	}
	v := float32(*value)
	src := radhdr.UniformSource{W: *w, H: *h, R: v, G: v, B: v}
	return writeHDR(*outPath, src, radhdr.ModeAuto)
}

func runSkyFloor(args []string) error {
	fs := flag.NewFlagSet("skyfloor", flag.ContinueOnError)
	outPath := fs.String("out", "", "output .hdr file")
	w := fs.Int("w", 64, "width")
	h := fs.Int("h", 32, "height")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return errors.New("missing required arguments")
	}
	return writeHDR(*outPath, radhdr.SkyFloorSource{W: *w, H: *h}, radhdr.ModeAuto)
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (png/jpeg)")
	outPath := fs.String("out", "", "output .hdr file")
	w := fs.Int("w", 0, "target width (0 keeps source size)")
	h := fs.Int("h", 0, "target height (0 keeps aspect)")
	exposure := fs.Float64("exposure", 1.0, "linear exposure multiplier")
	modeStr := fs.String("mode", "auto", "scanline framing: auto, flat or rle")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	mode, err := parseMode(*modeStr)
	if err != nil {
		return err
	}
	img, err := imaging.Open(filepath.Clean(*inPath), imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	if *w > 0 || *h > 0 {
		img = resize.Resize(uint(*w), uint(*h), img, resize.Lanczos3)
	}
	return writeHDR(*outPath, radhdr.FromImage(img, float32(*exposure)), mode)
}

func parseMode(s string) (radhdr.Mode, error) {
	switch strings.ToLower(s) {
	case "auto":
		return radhdr.ModeAuto, nil
	case "flat":
		return radhdr.ModeFlat, nil
	case "rle":
		return radhdr.ModeNewRLE, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func writeHDR(path string, src radhdr.PixelSource, mode radhdr.Mode) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := radhdr.Encode(f, src, mode); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
