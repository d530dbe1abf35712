// Package metric converts pixels to the scalar values used for mask
// thresholding and span sort keys.
package metric

import (
	"fmt"
	"math"

	"github.com/menta2k/pixelsort/pkg/raster"
)

// Channel identifies one scalar measurement of a pixel. Every channel is a
// pure, total function from Pixel to [0, 1].
type Channel int

const (
	Luminance Channel = iota
	Red
	Green
	Blue
	Hue
	Saturation
	Lightness
)

func (c Channel) String() string {
	switch c {
	case Luminance:
		return "luminance"
	case Red:
		return "r"
	case Green:
		return "g"
	case Blue:
		return "b"
	case Hue:
		return "hsl_h"
	case Saturation:
		return "hsl_s"
	case Lightness:
		return "hsl_l"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// Value returns the channel's measurement of p.
func (c Channel) Value(p raster.Pixel) float64 {
	switch c {
	case Luminance:
		// BT.601 weights, same as the R-REC-BT.601 constants.
		return 0.299*p.R + 0.587*p.G + 0.114*p.B
	case Red:
		return p.R
	case Green:
		return p.G
	case Blue:
		return p.B
	case Hue:
		h, _, _ := rgbToHSL(p.R, p.G, p.B)
		return h
	case Saturation:
		_, s, _ := rgbToHSL(p.R, p.G, p.B)
		return s
	case Lightness:
		_, _, l := rgbToHSL(p.R, p.G, p.B)
		return l
	}
	panic(fmt.Sprintf("metric: unknown channel %d", int(c)))
}

// rgbToHSL converts normalized RGB to HSL with hue scaled to [0, 1).
// Achromatic input yields hue 0 and saturation 0.
func rgbToHSL(r, g, b float64) (h, s, l float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6

	return h, s, l
}

// ParseChannel maps a mask-channel name from the CLI to its Channel.
func ParseChannel(name string) (Channel, error) {
	switch name {
	case "luminance":
		return Luminance, nil
	case "hsl_h":
		return Hue, nil
	case "hsl_s":
		return Saturation, nil
	case "hsl_l":
		return Lightness, nil
	}
	return 0, fmt.Errorf("unknown channel %q (expected luminance|hsl_h|hsl_s|hsl_l)", name)
}

// ParseMetric maps a sort-metric name from the CLI to its Channel. Metrics
// allow the raw r/g/b channels in addition to the mask channels.
func ParseMetric(name string) (Channel, error) {
	switch name {
	case "luminance":
		return Luminance, nil
	case "r":
		return Red, nil
	case "g":
		return Green, nil
	case "b":
		return Blue, nil
	case "hsl_h":
		return Hue, nil
	case "hsl_s":
		return Saturation, nil
	case "hsl_l":
		return Lightness, nil
	}
	return 0, fmt.Errorf("unknown metric %q (expected luminance|r|g|b|hsl_h|hsl_s|hsl_l)", name)
}
