// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale maps data values to pixel coordinates.
//
// A Linear scale maps a continuous domain onto a pixel range and a
// Band scale maps an ordered set of category keys onto evenly spaced
// pixel intervals. Both accept ranges in either orientation; the bar
// charts flip their drawing direction by giving a descending range.
package scale

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
)

// Linear is a continuous linear mapping from Domain to Range.
//
// The domain may be given in either order. If either domain endpoint
// is not finite (for example, the extent of an empty data set), the
// scale is an identity mapping: Map returns its argument and Ticks
// returns nothing.
type Linear struct {
	Domain [2]float64
	Range  [2]float64

	unit     scale.Linear
	identity bool
}

// NewLinear returns a linear scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	l := Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
	if !isFinite(d0) || !isFinite(d1) {
		l.identity = true
		return l
	}
	l.unit = scale.Linear{Min: d0, Max: d1}
	return l
}

// Identity reports whether l is the no-op identity mapping.
func (l Linear) Identity() bool {
	return l.identity
}

// Map returns the range coordinate of domain value x.
//
// A domain of zero width maps every x to the middle of the range.
func (l Linear) Map(x float64) float64 {
	if l.identity {
		return x
	}
	return l.Range[0] + l.unit.Map(x)*(l.Range[1]-l.Range[0])
}

// Invert returns the domain value at range coordinate y.
func (l Linear) Invert(y float64) float64 {
	if l.identity || l.Range[0] == l.Range[1] {
		return y
	}
	return l.unit.Unmap((y - l.Range[0]) / (l.Range[1] - l.Range[0]))
}

// Ticks returns at most max "nice" tick values within the domain, in
// increasing order.
func (l Linear) Ticks(max int) []float64 {
	if l.identity || max <= 0 {
		return nil
	}
	major, _ := l.unit.Ticks(scale.TickOptions{Max: max})
	lo, hi := math.Min(l.Domain[0], l.Domain[1]), math.Max(l.Domain[0], l.Domain[1])
	// Ticks are computed on a grid and may round to a hair
	// outside the domain.
	eps := (hi - lo) * 1e-9
	ticks := major[:0:0]
	for _, t := range major {
		if t >= lo-eps && t <= hi+eps {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

func (l Linear) String() string {
	if l.identity {
		return "linear identity"
	}
	return fmt.Sprintf("linear [%g,%g] => [%g,%g]", l.Domain[0], l.Domain[1], l.Range[0], l.Range[1])
}

// AutoDomain returns the domain [lower, max] where lower is 0 if min
// is non-negative and min otherwise. Zero is therefore always
// included when the data is non-negative, and negative minimums are
// preserved.
func AutoDomain(min, max float64) [2]float64 {
	lower := min
	if min >= 0 {
		lower = 0
	}
	return [2]float64{lower, max}
}

// Extent returns the minimum and maximum of xs, ignoring non-finite
// values. If xs has no finite values, both results are NaN.
func Extent(xs []float64) (min, max float64) {
	finite := xs
	for i, x := range xs {
		if !isFinite(x) {
			// Copy on first non-finite value.
			finite = append([]float64(nil), xs[:i]...)
			for _, x := range xs[i+1:] {
				if isFinite(x) {
					finite = append(finite, x)
				}
			}
			break
		}
	}
	return stats.Bounds(finite)
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}
