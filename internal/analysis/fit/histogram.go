package fit

import (
	"math"
	"sort"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

// BuildHistogram bins sample with the automatic rule: the smaller of the
// Sturges and Freedman–Diaconis widths, Sturges alone when the inter-quartile
// range is zero, and a single bin when the sample has no spread. The bin count
// never exceeds the sample size; a Freedman–Diaconis width that would need more
// bins than observations is discarded in favour of Sturges.
func BuildHistogram(sample domain.Sample) (domain.Histogram, error) {
	n := len(sample)
	if n == 0 {
		return domain.Histogram{}, errors.EmptySample("cannot build a histogram of an empty sample")
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	first, last := sorted[0], sorted[n-1]
	bins := autoBinCount(sorted)
	if first == last {
		first -= 0.5
		last += 0.5
	}

	edges := linspace(first, last, bins+1)
	counts := make([]int, bins)
	for _, x := range sample {
		counts[binIndex(x, edges)]++
	}

	return domain.Histogram{Edges: edges, Counts: counts}, nil
}

// autoBinCount expects sorted, non-empty data. The count is compared against
// the sample size in float64, before any conversion or allocation.
func autoBinCount(sorted []float64) int {
	n := float64(len(sorted))
	span := sorted[len(sorted)-1] - sorted[0]
	if span <= 0 {
		return 1
	}

	sturges := span / (math.Log2(n) + 1)
	width := sturges

	iqr := percentileSorted(sorted, 75) - percentileSorted(sorted, 25)
	if fd := 2 * iqr * math.Pow(n, -1.0/3.0); fd > 0 && fd < sturges {
		if math.Ceil(span/fd) <= n {
			width = fd
		}
	}

	bins := math.Ceil(span / width)
	switch {
	case !(bins >= 1):
		return 1
	case bins > n:
		return len(sorted)
	}
	return int(bins)
}

// percentileSorted interpolates linearly between the order statistics that
// bracket rank p/100·(n-1).
func percentileSorted(sorted []float64, p float64) float64 {
	h := (float64(len(sorted)) - 1) * p / 100
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func linspace(start, stop float64, num int) []float64 {
	out := make([]float64, num)
	step := (stop - start) / float64(num-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[0] = start
	out[num-1] = stop
	return out
}

// binIndex places x in [edges[i], edges[i+1]), the last bin closed on the right.
// The arithmetic guess is corrected against the edges themselves so rounding
// never moves a value across a boundary.
func binIndex(x float64, edges []float64) int {
	bins := len(edges) - 1
	first, last := edges[0], edges[bins]

	i := int((x - first) / (last - first) * float64(bins))
	if i >= bins {
		i = bins - 1
	}
	if i < 0 {
		i = 0
	}
	if x < edges[i] && i > 0 {
		i--
	}
	if x >= edges[i+1] && i != bins-1 {
		i++
	}
	return i
}
