// Package pixelsort applies a "pixel sorting" glitch-art transform to
// raster images.
//
// Pixels inside contiguous spans of each row (or column) are reordered by a
// chosen brightness or color metric. The spans are selected by a threshold
// mask over a channel that may differ from the sort metric, so dark sky can
// stay put while midtone streaks smear across the frame.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/menta2k/pixelsort"
//		"github.com/menta2k/pixelsort/pkg/pipeline"
//	)
//
//	func main() {
//		sorter := pixelsort.New()
//
//		cfg := pipeline.Default()
//		cfg.Mask.Low = 0.25
//		cfg.Mask.High = 0.75
//		cfg.Sort.Reverse = true
//
//		if err := sorter.SortFile("photo.jpg", "photo_sorted.png", cfg); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of five main components:
//
// 1. Metric (pkg/metric): pixel-to-scalar channel functions (luminance, RGB, HSL)
// 2. Mask (pkg/mask): per-pixel eligibility from a threshold interval, with
// optional per-line random jitter and inversion
// 3. Span (pkg/span): segmentation of mask lines into runs and the stable
// per-run sort
// 4. Pipeline (pkg/pipeline): gamma-corrected orchestration across a worker pool
// 5. ImageIO (pkg/imageio): decoding and encoding of the image files
//
// The transform is deterministic for a fixed seed regardless of the number
// of workers, because every line draws its threshold jitter from a
// line-indexed random sub-stream.
package pixelsort

import (
	"fmt"
	"image"

	"github.com/menta2k/pixelsort/pkg/imageio"
	"github.com/menta2k/pixelsort/pkg/pipeline"
	"github.com/menta2k/pixelsort/pkg/raster"
)

// Version of the pixelsort library
const Version = "1.0.0"

// Sorter provides a high-level interface for sorting images in memory or
// on disk.
type Sorter struct {
	opts imageio.Options
}

// New creates a Sorter with default encoder options.
func New() *Sorter {
	return &Sorter{opts: imageio.DefaultOptions()}
}

// NewWithOptions creates a Sorter with custom encoder options.
func NewWithOptions(opts imageio.Options) *Sorter {
	return &Sorter{opts: opts}
}

// Sort runs the pixel sorting pipeline on img and returns the transformed
// image. The result always has the same dimensions as the input.
func (s *Sorter) Sort(img image.Image, cfg pipeline.Config) (image.Image, error) {
	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, err
	}

	out, err := p.Run(raster.FromImage(img))
	if err != nil {
		return nil, err
	}

	return out.ToNRGBA(), nil
}

// SortFile loads inputPath, sorts it and writes the result to outputPath.
func (s *Sorter) SortFile(inputPath, outputPath string, cfg pipeline.Config) error {
	img, err := imageio.LoadImage(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	out, err := s.Sort(img, cfg)
	if err != nil {
		return err
	}

	if err := imageio.SaveImage(out, outputPath, s.opts); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	return nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
