// Package imageio loads and saves the raster images the sorter works on.
// Format support is decided by the file extension.
package imageio

import (
	"fmt"
	"image"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/pixelsort/internal/utils"
)

// Options control the lossy encoders.
type Options struct {
	Quality  int  // JPEG/WebP quality, 1-100
	Lossless bool // WebP only
}

// DefaultOptions returns the encoder settings the CLI uses by default.
func DefaultOptions() Options {
	return Options{Quality: 90}
}

// LoadImage decodes the image at path. imaging handles the registered
// formats; WebP falls back to an explicit decode.
func LoadImage(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}

	return nil, fmt.Errorf("failed to decode %s: unknown image format", path)
}

// SaveImage encodes img to path, picking the codec from the extension.
func SaveImage(img image.Image, path string, opts Options) error {
	switch utils.FileExtension(path) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		wo := &webp.Options{Lossless: opts.Lossless, Quality: float32(opts.Quality)}
		if err := webp.Encode(f, img, wo); err != nil {
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		return nil
	case "tif", "tiff":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		return nil
	case "jpg", "jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(opts.Quality))
	case "png", "gif", "bmp":
		return imaging.Save(img, path)
	default:
		return fmt.Errorf("unsupported output format for %s", path)
	}
}
