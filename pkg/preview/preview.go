// Package preview shows a before/after comparison of a sorted image. It is
// strictly optional: callers treat every failure here as non-fatal because
// the output file has already been written.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/disintegration/imaging"
)

const (
	gutter    = 8
	maxHeight = 900
)

// SideBySide composes before and after onto one canvas, scaling tall images
// down to a screen-friendly height.
func SideBySide(before, after image.Image) image.Image {
	b := scaleToHeight(before)
	a := scaleToHeight(after)

	bw, bh := b.Bounds().Dx(), b.Bounds().Dy()
	aw, ah := a.Bounds().Dx(), a.Bounds().Dy()
	h := bh
	if ah > h {
		h = ah
	}

	canvas := imaging.New(bw+gutter+aw, h, color.NRGBA{32, 32, 32, 255})
	canvas = imaging.Paste(canvas, b, image.Pt(0, (h-bh)/2))
	canvas = imaging.Paste(canvas, a, image.Pt(bw+gutter, (h-ah)/2))
	return canvas
}

func scaleToHeight(img image.Image) image.Image {
	if img.Bounds().Dy() <= maxHeight {
		return img
	}
	return imaging.Resize(img, 0, maxHeight, imaging.Lanczos)
}

// Show writes the comparison to a temporary PNG and opens it with the
// platform image viewer.
func Show(before, after image.Image) error {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("pixelsort-preview-%d.png", os.Getpid()))
	if err := imaging.Save(SideBySide(before, after), path); err != nil {
		return fmt.Errorf("failed to write preview image: %w", err)
	}
	return open(path)
}

func open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch viewer for %s: %w", path, err)
	}
	return nil
}
