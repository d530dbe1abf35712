package span

import (
	"sort"
	"testing"

	"github.com/menta2k/pixelsort/pkg/metric"
	"github.com/menta2k/pixelsort/pkg/raster"
)

func grayLine(values ...float64) []raster.Pixel {
	line := make([]raster.Pixel, len(values))
	for i, v := range values {
		line[i] = raster.Pixel{R: v, G: v, B: v}
	}
	return line
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		mask []bool
		want []Span
	}{
		{"empty line", nil, nil},
		{"all false", []bool{false, false, false}, nil},
		{"all true", []bool{true, true, true}, []Span{{0, 3}}},
		{"single pixel runs", []bool{true, false, true}, []Span{{0, 1}, {2, 3}}},
		{"two runs", []bool{false, true, true, false, true}, []Span{{1, 3}, {4, 5}}},
		{"run at end", []bool{false, false, true, true}, []Span{{2, 4}}},
	}

	for _, tt := range tests {
		got := Segment(tt.mask)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %d spans, want %d", tt.name, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: span %d = %+v, want %+v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSegmentPartition(t *testing.T) {
	mask := []bool{true, false, true, true, false, false, true, true, true, false}
	spans := Segment(mask)

	// Spans are ordered, disjoint, and cover exactly the true indices
	covered := make([]bool, len(mask))
	prevEnd := -1
	for _, s := range spans {
		if s.Start <= prevEnd {
			t.Errorf("span %+v overlaps or is out of order", s)
		}
		prevEnd = s.End
		for i := s.Start; i < s.End; i++ {
			covered[i] = true
		}
	}

	for i := range mask {
		if covered[i] != mask[i] {
			t.Errorf("index %d: covered=%v mask=%v", i, covered[i], mask[i])
		}
	}
}

func TestSortAscending(t *testing.T) {
	line := grayLine(0.9, 0.1, 0.5, 0.3)

	Sort(line, Span{0, 4}, metric.Lightness, false)

	want := []float64{0.1, 0.3, 0.5, 0.9}
	for i, w := range want {
		if line[i].R != w {
			t.Errorf("line[%d] = %v, want %v", i, line[i].R, w)
		}
	}
}

func TestSortOutsideSpanUntouched(t *testing.T) {
	line := grayLine(0.9, 0.7, 0.2, 0.8, 0.1)

	Sort(line, Span{1, 4}, metric.Lightness, false)

	if line[0].R != 0.9 || line[4].R != 0.1 {
		t.Errorf("pixels outside the span changed: %v, %v", line[0].R, line[4].R)
	}
	want := []float64{0.2, 0.7, 0.8}
	for i, w := range want {
		if line[1+i].R != w {
			t.Errorf("line[%d] = %v, want %v", 1+i, line[1+i].R, w)
		}
	}
}

func TestSortStability(t *testing.T) {
	// Equal red keys; green identifies the original order
	line := []raster.Pixel{
		{R: 0.5, G: 0.1},
		{R: 0.2, G: 0.2},
		{R: 0.5, G: 0.3},
		{R: 0.5, G: 0.4},
	}

	Sort(line, Span{0, 4}, metric.Red, false)

	// 0.2 first, then the three 0.5 pixels in their input order
	wantG := []float64{0.2, 0.1, 0.3, 0.4}
	for i, w := range wantG {
		if line[i].G != w {
			t.Errorf("line[%d].G = %v, want %v (stability violated)", i, line[i].G, w)
		}
	}
}

func TestSortReverse(t *testing.T) {
	// Reverse must be the exact reversal of the ascending result, ties included
	line := []raster.Pixel{
		{R: 0.5, G: 0.1},
		{R: 0.2, G: 0.2},
		{R: 0.5, G: 0.3},
	}
	forward := make([]raster.Pixel, len(line))
	copy(forward, line)

	Sort(forward, Span{0, 3}, metric.Red, false)
	Sort(line, Span{0, 3}, metric.Red, true)

	for i := range line {
		if line[i] != forward[len(forward)-1-i] {
			t.Errorf("reverse[%d] = %+v, want %+v", i, line[i], forward[len(forward)-1-i])
		}
	}
}

func TestSortConservation(t *testing.T) {
	line := grayLine(0.4, 0.9, 0.1, 0.4, 0.6, 0.2)
	before := make([]float64, 0, len(line))
	for _, p := range line[1:5] {
		before = append(before, p.R)
	}

	Sort(line, Span{1, 5}, metric.Lightness, false)

	after := make([]float64, 0, 4)
	for _, p := range line[1:5] {
		after = append(after, p.R)
	}
	sort.Float64s(before)
	sort.Float64s(after)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("multiset changed: %v vs %v", before, after)
		}
	}
}

func TestSortBadBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Sort with out-of-range span should panic")
		}
	}()

	line := grayLine(0.1, 0.2)
	Sort(line, Span{0, 3}, metric.Lightness, false)
}

func TestSpanLen(t *testing.T) {
	if (Span{2, 7}).Len() != 5 {
		t.Errorf("Span{2,7}.Len() = %d, want 5", (Span{2, 7}).Len())
	}
}

func BenchmarkSort(b *testing.B) {
	src := make([]raster.Pixel, 1920)
	for i := range src {
		src[i] = raster.Pixel{
			R: float64((i*31)%255) / 255,
			G: float64((i*17)%255) / 255,
			B: float64((i*7)%255) / 255,
		}
	}
	line := make([]raster.Pixel, len(src))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(line, src)
		Sort(line, Span{0, len(line)}, metric.Lightness, false)
	}
}
