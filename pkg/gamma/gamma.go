// Package gamma applies forward and inverse gamma correction so that
// thresholding and sort keys are computed in a perceptually-biased space.
package gamma

import (
	"fmt"
	"math"

	"github.com/menta2k/pixelsort/pkg/raster"
)

// Validate rejects gamma values the correction is undefined for.
func Validate(gamma float64) error {
	if gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %v", gamma)
	}
	return nil
}

// Forward raises every channel to 1/gamma in place. Applied once before
// masking and sorting.
func Forward(g *raster.Grid, gamma float64) error {
	if err := Validate(gamma); err != nil {
		return err
	}
	apply(g, 1/gamma)
	return nil
}

// Inverse raises every channel to gamma in place, undoing Forward up to
// floating-point error.
func Inverse(g *raster.Grid, gamma float64) error {
	if err := Validate(gamma); err != nil {
		return err
	}
	apply(g, gamma)
	return nil
}

func apply(g *raster.Grid, exp float64) {
	if exp == 1 {
		return
	}
	for y := 0; y < g.Height(); y++ {
		row := g.Row(y)
		for i, p := range row {
			row[i] = raster.Pixel{
				R: math.Pow(p.R, exp),
				G: math.Pow(p.G, exp),
				B: math.Pow(p.B, exp),
			}
		}
	}
}
