// Package span segments mask lines into contiguous runs and sorts the
// pixels inside each run.
package span

import (
	"fmt"
	"sort"

	"github.com/menta2k/pixelsort/pkg/metric"
	"github.com/menta2k/pixelsort/pkg/raster"
)

// Span is a half-open [Start, End) run of eligible pixels on one line.
type Span struct {
	Start int
	End   int
}

// Len returns the number of pixels covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Segment returns the maximal runs of true in maskLine, ordered by
// ascending start. An all-false line yields nil; an all-true line yields a
// single span covering the whole line.
func Segment(maskLine []bool) []Span {
	var spans []Span
	for i := 0; i < len(maskLine); {
		if !maskLine[i] {
			i++
			continue
		}
		start := i
		for i < len(maskLine) && maskLine[i] {
			i++
		}
		spans = append(spans, Span{Start: start, End: i})
	}
	return spans
}

// Sort reorders line[s.Start:s.End] by m ascending, or descending when
// reverse is set. The sort is stable: pixels with equal keys keep their
// relative order (reverse flips the whole sorted run, ties included).
// Pixels outside the span are never read or written.
func Sort(line []raster.Pixel, s Span, m metric.Channel, reverse bool) {
	if s.Start < 0 || s.End > len(line) || s.Start > s.End {
		panic(fmt.Sprintf("span: bounds [%d,%d) invalid for line of length %d", s.Start, s.End, len(line)))
	}
	run := line[s.Start:s.End]
	if len(run) < 2 {
		return
	}

	keys := make([]float64, len(run))
	for i, p := range run {
		keys[i] = m.Value(p)
	}

	order := make([]int, len(run))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]] < keys[order[b]]
	})
	if reverse {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	sorted := make([]raster.Pixel, len(run))
	for i, j := range order {
		sorted[i] = run[j]
	}
	copy(run, sorted)
}
