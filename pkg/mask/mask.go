// Package mask decides, per pixel, whether a pixel is eligible for
// reordering, based on a threshold interval over one channel.
package mask

import (
	"fmt"
	"math/rand"

	"github.com/menta2k/pixelsort/pkg/metric"
	"github.com/menta2k/pixelsort/pkg/raster"
)

// Config controls which pixels the sorter may touch.
type Config struct {
	Channel      metric.Channel
	Low          float64
	High         float64
	Invert       bool
	RandomOffset float64
}

// Validate checks the threshold interval and jitter amount.
func (c Config) Validate() error {
	if c.Low < 0 || c.Low > 1 {
		return fmt.Errorf("low threshold %v outside [0, 1]", c.Low)
	}
	if c.High < 0 || c.High > 1 {
		return fmt.Errorf("high threshold %v outside [0, 1]", c.High)
	}
	if c.Low > c.High {
		return fmt.Errorf("low threshold %v exceeds high threshold %v", c.Low, c.High)
	}
	if c.RandomOffset < 0 {
		return fmt.Errorf("random offset must be >= 0, got %v", c.RandomOffset)
	}
	return nil
}

// Bitmap is a per-pixel eligibility grid with the same dimensions as the
// image it was built from.
type Bitmap struct {
	width  int
	height int
	bits   []bool
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.height }

// At reports whether the pixel at (x, y) is eligible for sorting.
func (b *Bitmap) At(x, y int) bool { return b.bits[y*b.width+x] }

// Row returns the backing slice for row y.
func (b *Bitmap) Row(y int) []bool {
	return b.bits[y*b.width : (y+1)*b.width]
}

// Column copies column x into a fresh slice.
func (b *Bitmap) Column(x int) []bool {
	col := make([]bool, b.height)
	for y := 0; y < b.height; y++ {
		col[y] = b.bits[y*b.width+x]
	}
	return col
}

// Builder computes bitmaps from a threshold interval over one channel.
type Builder struct {
	cfg  Config
	seed int64
}

// NewBuilder creates a Builder. The seed drives the per-line threshold
// jitter; runs with equal seeds produce identical bitmaps.
func NewBuilder(cfg Config, seed int64) *Builder {
	return &Builder{cfg: cfg, seed: seed}
}

// Build scans g line by line in the given orientation and marks every pixel
// whose channel value falls inside the line's effective threshold interval.
// Each line draws its jitter from a line-indexed sub-stream, so the result
// does not depend on evaluation order or worker count.
func (b *Builder) Build(g *raster.Grid, o raster.Orientation) (*Bitmap, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	bm := &Bitmap{
		width:  g.Width(),
		height: g.Height(),
		bits:   make([]bool, g.Width()*g.Height()),
	}

	lines := g.Lines(o)
	length := g.LineLen(o)
	for i := 0; i < lines; i++ {
		low, high := b.lineInterval(i)
		for j := 0; j < length; j++ {
			var p raster.Pixel
			var idx int
			if o == raster.Vertical {
				p = g.At(i, j)
				idx = j*bm.width + i
			} else {
				p = g.At(j, i)
				idx = i*bm.width + j
			}
			v := b.cfg.Channel.Value(p)
			bm.bits[idx] = v >= low && v <= high
		}
	}

	// Inversion applies after thresholding and jitter.
	if b.cfg.Invert {
		for i := range bm.bits {
			bm.bits[i] = !bm.bits[i]
		}
	}

	return bm, nil
}

// lineInterval returns the effective threshold interval for line i: the
// configured interval shifted by the line's jitter and clamped to [0, 1].
func (b *Builder) lineInterval(i int) (float64, float64) {
	low, high := b.cfg.Low, b.cfg.High
	if b.cfg.RandomOffset <= 0 {
		return low, high
	}
	rng := rand.New(rand.NewSource(lineSeed(b.seed, i)))
	delta := (rng.Float64()*2 - 1) * b.cfg.RandomOffset
	return clamp01(low + delta), clamp01(high + delta)
}

// lineSeed derives an independent sub-seed for one line.
func lineSeed(seed int64, line int) int64 {
	return seed ^ int64(uint64(int64(line)+1)*0x9e3779b97f4a7c15)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
