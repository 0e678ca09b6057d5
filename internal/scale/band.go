// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"
)

// Band maps an ordered set of keys to evenly spaced bands of a pixel
// range.
//
// The first key occupies the band nearest Range[0]. With a descending
// range such as [height, 0], the first key is drawn at the bottom.
type Band struct {
	keys  []string
	index map[string]int

	Range [2]float64

	// PaddingInner is the fraction of each step left empty between
	// bands. PaddingOuter is the space before the first and after
	// the last band, in steps.
	PaddingInner, PaddingOuter float64

	step, bandwidth, offset float64
}

// NewBand returns a band scale over keys with a single padding
// fraction p. Each key gets an equal step of the range; the band
// covers (1 - p) of its step and is centered in it, so a band starts
// half the inter-band gap after its step start.
func NewBand(keys []string, r0, r1, p float64) *Band {
	b := &Band{Range: [2]float64{r0, r1}, PaddingInner: p}
	b.setKeys(keys)
	b.rescale(func(n, extent float64) (step, offset float64) {
		step = extent / n
		return step, step * p / 2
	})
	return b
}

// NewBandInnerOuter returns a band scale with separate inner and outer
// padding, laid out with the steps centered in the range.
func NewBandInnerOuter(keys []string, r0, r1, inner, outer float64) *Band {
	b := &Band{Range: [2]float64{r0, r1}, PaddingInner: inner, PaddingOuter: outer}
	b.setKeys(keys)
	b.rescale(func(n, extent float64) (step, offset float64) {
		step = extent / math.Max(1, n-inner+2*outer)
		offset = (extent - step*(n-inner)) / 2
		return step, offset
	})
	return b
}

func (b *Band) setKeys(keys []string) {
	b.keys = make([]string, 0, len(keys))
	b.index = make(map[string]int, len(keys))
	for _, k := range keys {
		if _, ok := b.index[k]; ok {
			continue
		}
		b.index[k] = len(b.keys)
		b.keys = append(b.keys, k)
	}
}

func (b *Band) rescale(layout func(n, extent float64) (step, offset float64)) {
	n := float64(len(b.keys))
	if n == 0 {
		b.step, b.bandwidth, b.offset = 0, 0, 0
		return
	}
	extent := math.Abs(b.Range[1] - b.Range[0])
	b.step, b.offset = layout(n, extent)
	b.bandwidth = b.step * (1 - b.PaddingInner)
}

// Keys returns the domain in order. The caller must not modify it.
func (b *Band) Keys() []string {
	return b.keys
}

// Len returns the number of keys in the domain.
func (b *Band) Len() int {
	return len(b.keys)
}

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 {
	return b.step
}

// Bandwidth returns the width of each band.
func (b *Band) Bandwidth() float64 {
	return b.bandwidth
}

// Map returns the start coordinate of key's band, the smaller of its
// two edges. If key is not in the domain, Map returns NaN, false.
func (b *Band) Map(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return math.NaN(), false
	}
	return b.MapIndex(i), true
}

// MapIndex returns the start coordinate of the i'th band.
func (b *Band) MapIndex(i int) float64 {
	lo := math.Min(b.Range[0], b.Range[1])
	if b.Range[1] < b.Range[0] {
		// Descending: the first key is nearest Range[0].
		i = len(b.keys) - 1 - i
	}
	return lo + b.offset + b.step*float64(i)
}

func (b *Band) String() string {
	return fmt.Sprintf("band %d keys => [%g,%g] bandwidth %g", len(b.keys), b.Range[0], b.Range[1], b.bandwidth)
}
