// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palette assigns stable colors to category indexes.
//
// Every chart draws from the same discrete palette, so index i maps
// to the same color in every chart of a dashboard. Indexes beyond the
// palette length wrap around.
package palette

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/palette"
)

// Colors is the discrete category palette.
var Colors = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xff, 0x7f, 0x0e, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x94, 0x67, 0xbd, 0xff},
	{0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
	{0xbc, 0xbd, 0x22, 0xff},
	{0x17, 0xbe, 0xcf, 0xff},
}

// None is the absent paint. It renders as "none".
var None = color.RGBA{}

// At returns the color for category index i. Negative indexes wrap
// the same way positive ones do.
func At(i int) color.RGBA {
	n := len(Colors)
	i %= n
	if i < 0 {
		i += n
	}
	return Colors[i]
}

// Blend returns the color a fraction t of the way from a to b.
// t is clamped to [0, 1].
func Blend(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	if a == b {
		return a
	}
	// Paint switching to or from none is not interpolated.
	if a.A == 0 || b.A == 0 {
		return a
	}
	// RGBGradient returns its first stop for the whole first
	// segment, so pad it and blend over the second segment.
	g := palette.RGBGradient{Colors: []color.RGBA{a, a, b}}
	return color.RGBAModel.Convert(g.Map(0.5 + t/2)).(color.RGBA)
}

// CSS formats c as a CSS color. Fully transparent colors format as
// "none".
func CSS(c color.RGBA) string {
	if c.A == 0 {
		return "none"
	}
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	// c is alpha-premultiplied.
	r := int(c.R) * 0xff / int(c.A)
	g := int(c.G) * 0xff / int(c.A)
	b := int(c.B) * 0xff / int(c.A)
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", r, g, b, float64(c.A)/0xff)
}
