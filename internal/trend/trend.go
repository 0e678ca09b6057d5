// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trend draws smooth trend curves through ordered points.
package trend

import (
	"image/color"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/drlvis/drlchart/internal/palette"
	"github.com/drlvis/drlchart/internal/scene"
)

// Warning is the logger for degenerate trend input.
var Warning = log.New(os.Stderr, "[trend] ", log.Lshortfile)

// A Point is a vertex in pixel coordinates.
type Point struct {
	X, Y float64
}

// BasisPath returns SVG path data for the uniform cubic B-spline with
// control points pts. The curve starts at the first point and ends at
// the last, and is pulled towards, but generally does not pass
// through, the points in between. Two points give a straight line and
// a single point gives a bare move. Non-finite points are skipped.
func BasisPath(pts []Point) string {
	var b pathBuilder
	n := 0
	var x0, y0, x1, y1 float64
	for _, p := range pts {
		if !finite(p) {
			continue
		}
		switch n {
		case 0:
			b.cmd('M', p.X, p.Y)
		case 1:
		case 2:
			b.cmd('L', (5*x0+x1)/6, (5*y0+y1)/6)
			fallthrough
		default:
			b.bezier(x0, y0, x1, y1, p.X, p.Y)
		}
		n++
		x0, x1 = x1, p.X
		y0, y1 = y1, p.Y
	}
	switch {
	case n >= 3:
		b.bezier(x0, y0, x1, y1, x1, y1)
		fallthrough
	case n == 2:
		b.cmd('L', x1, y1)
	}
	return string(b.buf)
}

type pathBuilder struct {
	buf []byte
}

func (b *pathBuilder) cmd(op byte, xys ...float64) {
	b.buf = append(b.buf, op)
	for i, v := range xys {
		if i%2 == 1 {
			b.buf = append(b.buf, ',')
		} else if i > 0 {
			b.buf = append(b.buf, ' ')
		}
		b.buf = strconv.AppendFloat(b.buf, v, 'g', 6, 64)
	}
}

// bezier emits the cubic segment for the B-spline span whose last
// three control points are (x0,y0), (x1,y1), (x,y).
func (b *pathBuilder) bezier(x0, y0, x1, y1, x, y float64) {
	b.cmd('C',
		(2*x0+x1)/3, (2*y0+y1)/3,
		(x0+2*x1)/3, (y0+2*y1)/3,
		(x0+4*x1+x)/6, (y0+4*y1+y)/6)
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Smooth returns len(pts) points evenly spaced in X along a LOESS fit
// of pts with the given span (a fraction of the points, in (0, 1]).
// With fewer than four points, or a span outside (0, 1], Smooth
// returns pts unchanged.
func Smooth(pts []Point, span float64) []Point {
	if len(pts) < 4 || !(span > 0 && span <= 1) {
		return pts
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	lo, hi := stats.Bounds(xs)
	if lo == hi {
		Warning.Printf("cannot smooth %d points with constant X", len(pts))
		return pts
	}
	f := fit.LOESS(xs, ys, 1, span)
	out := make([]Point, len(pts))
	for i, x := range vec.Linspace(lo, hi, len(pts)) {
		out[i] = Point{x, f(x)}
	}
	return out
}

// A Fitter maintains a chart's single trend path. The first Fit
// creates the path; later Fits replace its geometry in place.
type Fitter struct {
	Class  string
	Stroke color.RGBA
	Width  float64

	created bool
}

// Fit draws the B-spline through pts into g and returns the path.
func (f *Fitter) Fit(g *scene.Group, pts []Point) *scene.Primitive {
	key := f.Class
	if key == "" {
		key = "trend"
	}
	p := g.Append(scene.Path, key)
	if !f.created {
		p.SetStr("class", key)
		p.SetPaint("fill", palette.None)
		p.SetPaint("stroke", f.Stroke)
		p.SetNum("stroke-width", f.Width)
		f.created = true
	}
	p.SetStr("d", BasisPath(pts))
	return p
}

// Created reports whether Fit has created the path.
func (f *Fitter) Created() bool {
	return f.created
}
