// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bin partitions samples into equal-width buckets for
// histograms.
package bin

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"
)

// A Bucket counts the samples in [Lower, Upper). The last bucket of a
// binning also includes its upper bound.
type Bucket struct {
	Lower, Upper float64
	Count        int
}

// Label returns the bucket's category label, "{lower} - {upper}".
func (b Bucket) Label() string {
	return format(b.Lower) + " - " + format(b.Upper)
}

func format(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Count returns the number of buckets Sturges' rule picks for n
// samples: ceil(log2 n) + 1.
func Count(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// Bins partitions the finite values of samples into Count(n)
// contiguous equal-width buckets covering [min, max]. The result
// depends only on the sample values, so identical inputs produce
// identical buckets. If all samples are equal, there is a single
// bucket [v, v]. If there are no finite samples, Bins returns nil.
func Bins(samples []float64) []Bucket {
	xs := make([]float64, 0, len(samples))
	for _, x := range samples {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			xs = append(xs, x)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	min, max := stats.Bounds(xs)
	if min == max {
		return []Bucket{{min, max, len(xs)}}
	}

	n := Count(len(xs))
	h := stats.NewLinearHist(min, max, n)
	for _, x := range xs {
		h.Add(x)
	}
	_, counts, high := h.Counts()

	width := (max - min) / float64(n)
	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i] = Bucket{
			Lower: min + float64(i)*width,
			Upper: min + float64(i+1)*width,
			Count: int(counts[i]),
		}
	}
	// Pin the ends exactly and fold the maximum sample, which
	// lands just past the last bucket, into it.
	buckets[0].Lower = min
	buckets[n-1].Upper = max
	buckets[n-1].Count += int(high)
	return buckets
}

// Total returns the total count over buckets.
func Total(buckets []Bucket) int {
	s := stats.Sample{Xs: make([]float64, len(buckets))}
	for i, b := range buckets {
		s.Xs[i] = float64(b.Count)
	}
	return int(s.Sum())
}

// MaxCount returns the largest bucket count.
func MaxCount(buckets []Bucket) int {
	max := 0
	for _, b := range buckets {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// Mode selects what a histogram bar's length encodes.
type Mode int

const (
	// RawCount bars encode the bucket count; the domain runs to
	// the largest count.
	RawCount Mode = iota

	// Normalized bars encode count / total samples; the domain is
	// fixed to [0, 1].
	Normalized
)

func (m Mode) String() string {
	switch m {
	case RawCount:
		return "raw"
	case Normalized:
		return "normalized"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Domain returns the value domain for bar lengths over buckets.
func (m Mode) Domain(buckets []Bucket) [2]float64 {
	if m == Normalized {
		return [2]float64{0, 1}
	}
	return [2]float64{0, float64(MaxCount(buckets))}
}

// Divisor returns the value bucket counts are divided by to get bar
// lengths: the total sample count in Normalized mode, 1 otherwise.
func (m Mode) Divisor(buckets []Bucket) float64 {
	if m == Normalized {
		if t := Total(buckets); t > 0 {
			return float64(t)
		}
	}
	return 1
}

// Length returns b's bar length given divisor.
func (b Bucket) Length(divisor float64) float64 {
	return float64(b.Count) / divisor
}
