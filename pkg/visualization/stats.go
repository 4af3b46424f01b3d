// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package visualization

import (
	"fmt"
	"math"
	"sort"
)

// binValues buckets values into equal-width histogram bins using Sturges'
// rule and returns per-bin range labels and counts. The max value lands in
// the last bin.
func binValues(vals []float64) ([]string, []int) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	bins := int(math.Ceil(math.Log2(float64(len(vals))))) + 1
	if bins < 1 || hi == lo {
		bins = 1
	}
	width := (hi - lo) / float64(bins)

	counts := make([]int, bins)
	for _, v := range vals {
		i := bins - 1
		if width > 0 {
			i = int((v - lo) / width)
			if i >= bins {
				i = bins - 1
			}
		}
		counts[i]++
	}

	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.4g to %.4g", lo+float64(i)*width, lo+float64(i+1)*width)
	}
	return labels, counts
}

// fiveNumber returns [min, Q1, median, Q3, max], the order the boxplot
// series expects.
func fiveNumber(vals []float64) []float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return []float64{
		sorted[0],
		quantileSorted(sorted, 0.25),
		quantileSorted(sorted, 0.5),
		quantileSorted(sorted, 0.75),
		sorted[len(sorted)-1],
	}
}

// quantileSorted linearly interpolates quantile q over pre-sorted values.
func quantileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	i := int(pos)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}
