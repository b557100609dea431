// Command magentify repacks the sprites of an image onto a magenta sprite
// sheet that the magenta runtime can segment.
//
// Sprites are found as connected regions on a transparent background, moved
// into a grid of boxes separated by magenta, and optionally upscaled. A
// metadata strip recording the transparent frame border is written below
// the frames so the runtime does not have to infer it.
//
// Usage:
//
//	magentify [flags] input.png output.png
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"

	"github.com/phanxgames/magenta"
	"go.uber.org/zap"
)

const version = "0.2.0"

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	pad := flag.Int("pad", 1, "magenta padding between frames")
	padBlob := flag.Int("pad-blob", 0, "transparent padding inside each frame")
	anchor := flag.String("anchor", "top", "anchor frames to the top or bottom of their boxes")
	padHeight := flag.String("pad-height", "none", "none, or row to pad every frame to the tallest in its row")
	upscale := flag.Int("upscale", 1, "upscale the output by an integer factor")
	debug := flag.Bool("debug", false, "tint frame padding and mark anchors")
	noMeta := flag.Bool("no-meta", false, "do not embed the metadata strip")
	overlay := flag.String("overlay", "", "also write a segmentation overlay of the output to this file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: magentify [flags] input output\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("magentify", version)
		return
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	var l *zap.Logger
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck
	magenta.SetLogger(l)
	magenta.SetDebugMode(*verbose)

	a, err := magenta.ParseAnchor(*anchor)
	if err != nil {
		l.Fatal("parse flags", zap.Error(err))
	}
	ph, err := parsePadHeight(*padHeight)
	if err != nil {
		l.Fatal("parse flags", zap.Error(err))
	}
	opts := Options{
		Pad:       *pad,
		PadBlob:   *padBlob,
		Anchor:    a,
		PadHeight: ph,
		Upscale:   *upscale,
		Meta:      !*noMeta,
		Debug:     *debug,
	}

	in, out := flag.Arg(0), flag.Arg(1)
	if err := run(in, out, *overlay, opts); err != nil {
		l.Fatal("magentify", zap.String("input", in), zap.Error(err))
	}
}

func run(inPath, outPath, overlayPath string, opts Options) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}

	sheet, err := Pack(src, opts)
	if err != nil {
		return err
	}
	if err := magenta.WritePNG(outPath, sheet); err != nil {
		return err
	}

	seg := magenta.Segment(magenta.GridFromImage(sheet))
	zap.L().Info("wrote sheet",
		zap.String("path", outPath),
		zap.Int("width", sheet.Bounds().Dx()),
		zap.Int("height", sheet.Bounds().Dy()),
		zap.Int("frames", len(seg.Frames)),
		zap.Int("padding", seg.Padding),
		zap.Bool("meta", seg.HasMeta))

	if overlayPath != "" {
		if err := magenta.WritePNG(overlayPath, magenta.DebugOverlay(sheet, seg)); err != nil {
			return err
		}
	}
	return nil
}
