// Package raster holds the in-memory pixel grid the sorting pipeline
// operates on, plus conversions to and from the standard image types.
package raster

import "image"

// Pixel is a single RGB sample with every channel normalized to [0, 1].
type Pixel struct {
	R, G, B float64
}

// Orientation selects whether pipeline lines are rows or columns.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Grid is a fixed-size, row-major pixel buffer. Dimensions never change
// after construction; pixels are only read and reordered.
type Grid struct {
	width  int
	height int
	pix    []Pixel
}

// NewGrid allocates a zeroed grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}
}

// FromImage samples every pixel of img into a normalized grid. Alpha is
// dropped; the transform reorders opaque color values only.
func FromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	g := NewGrid(bounds.Dx(), bounds.Dy())

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			r, gr, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			g.pix[y*g.width+x] = Pixel{
				R: float64(r) / 65535.0,
				G: float64(gr) / 65535.0,
				B: float64(b) / 65535.0,
			}
		}
	}

	return g
}

// Width returns the number of pixels per row.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the pixel at (x, y).
func (g *Grid) At(x, y int) Pixel { return g.pix[y*g.width+x] }

// Set overwrites the pixel at (x, y).
func (g *Grid) Set(x, y int, p Pixel) { g.pix[y*g.width+x] = p }

// Row returns the backing slice for row y. Mutations write through to the
// grid.
func (g *Grid) Row(y int) []Pixel {
	return g.pix[y*g.width : (y+1)*g.width]
}

// Column copies column x into a fresh slice. Use SetColumn to write the
// result back.
func (g *Grid) Column(x int) []Pixel {
	col := make([]Pixel, g.height)
	for y := 0; y < g.height; y++ {
		col[y] = g.pix[y*g.width+x]
	}
	return col
}

// SetColumn writes line back into column x.
func (g *Grid) SetColumn(x int, line []Pixel) {
	for y := 0; y < g.height; y++ {
		g.pix[y*g.width+x] = line[y]
	}
}

// Lines returns the number of lines the grid has in the given orientation.
func (g *Grid) Lines(o Orientation) int {
	if o == Vertical {
		return g.width
	}
	return g.height
}

// LineLen returns the number of pixels per line in the given orientation.
func (g *Grid) LineLen(o Orientation) int {
	if o == Vertical {
		return g.height
	}
	return g.width
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		width:  g.width,
		height: g.height,
		pix:    make([]Pixel, len(g.pix)),
	}
	copy(out.pix, g.pix)
	return out
}

// ToNRGBA quantizes the grid back to an 8-bit image.
func (g *Grid) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := g.pix[y*g.width+x]
			i := out.PixOffset(x, y)
			out.Pix[i+0] = quantize(p.R)
			out.Pix[i+1] = quantize(p.G)
			out.Pix[i+2] = quantize(p.B)
			out.Pix[i+3] = 255
		}
	}
	return out
}

func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
