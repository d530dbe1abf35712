package gamma

import (
	"math"
	"testing"

	"github.com/menta2k/pixelsort/pkg/raster"
)

func createTestGrid(width, height int) *raster.Grid {
	g := raster.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := float64(y*width+x) / float64(width*height)
			g.Set(x, y, raster.Pixel{R: v, G: v * 0.5, B: 1 - v})
		}
	}
	return g
}

func TestValidate(t *testing.T) {
	for _, gamma := range []float64{0.5, 1, 1.2, 2.2} {
		if err := Validate(gamma); err != nil {
			t.Errorf("Validate(%v) failed: %v", gamma, err)
		}
	}

	for _, gamma := range []float64{0, -1, -0.001} {
		if err := Validate(gamma); err == nil {
			t.Errorf("Validate(%v) should fail", gamma)
		}
	}
}

func TestForwardRejectsNonPositive(t *testing.T) {
	g := createTestGrid(2, 2)

	if err := Forward(g, 0); err == nil {
		t.Error("Forward with gamma 0 should fail")
	}
	if err := Inverse(g, -1); err == nil {
		t.Error("Inverse with gamma -1 should fail")
	}
}

func TestForwardBrightens(t *testing.T) {
	g := raster.NewGrid(1, 1)
	g.Set(0, 0, raster.Pixel{R: 0.25, G: 0.5, B: 0.75})

	if err := Forward(g, 2.2); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	// v^(1/gamma) >= v for gamma > 1 and v in [0,1]
	p := g.At(0, 0)
	if p.R < 0.25 || p.G < 0.5 || p.B < 0.75 {
		t.Errorf("Forward with gamma > 1 should not darken, got %+v", p)
	}
}

func TestGammaOneIsIdentity(t *testing.T) {
	g := createTestGrid(4, 4)
	orig := g.Clone()

	if err := Forward(g, 1); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if err := Inverse(g, 1); err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if g.At(x, y) != orig.At(x, y) {
				t.Fatalf("Gamma 1 changed pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	const eps = 1e-9

	for _, gamma := range []float64{0.8, 1.2, 2.2} {
		g := createTestGrid(8, 8)
		orig := g.Clone()

		if err := Forward(g, gamma); err != nil {
			t.Fatalf("Forward failed: %v", err)
		}
		if err := Inverse(g, gamma); err != nil {
			t.Fatalf("Inverse failed: %v", err)
		}

		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				got, want := g.At(x, y), orig.At(x, y)
				if math.Abs(got.R-want.R) > eps ||
					math.Abs(got.G-want.G) > eps ||
					math.Abs(got.B-want.B) > eps {
					t.Fatalf("gamma %v: round trip changed pixel (%d,%d): got %+v want %+v",
						gamma, x, y, got, want)
				}
			}
		}
	}
}

func BenchmarkForward(b *testing.B) {
	g := createTestGrid(1920, 1080)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Forward(g, 1.2)
	}
}
