// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"

	"github.com/drlvis/drlchart/internal/bin"
	"github.com/drlvis/drlchart/internal/interact"
	"github.com/drlvis/drlchart/internal/palette"
	"github.com/drlvis/drlchart/internal/scale"
	"github.com/drlvis/drlchart/internal/scene"
)

// Histogram shows the distribution of a layer's weights at one step
// as horizontal bars, one per bucket.
type Histogram struct {
	matrix  *WeightMatrix
	current []float64

	width, height float64
	mode          bin.Mode
	buckets       []bin.Bucket
	divisor       float64
	x             scale.Linear
	y             *scale.Band

	surface      *scene.Surface
	bars         *scene.Group
	xAxis, yAxis *axis
	ctl          *interact.Controller
}

// NewHistogram mounts a histogram of matrix into container id and
// draws step 0.
func NewHistogram(doc *scene.Document, id string, matrix *WeightMatrix, opts Options, snap Snapshot) (*Histogram, error) {
	c := &Histogram{}
	if matrix.Len() == 0 {
		return c, nil
	}
	if err := validateWeights(matrix); err != nil {
		return nil, fmt.Errorf("histogram %s: %w", id, err)
	}
	c.matrix = matrix
	step0, _ := matrix.Get(0)
	c.current = soleValues(step0)
	c.width = orDefault(opts.Width, 380)
	c.height = orDefault(opts.Height, 240)
	m := scene.Margin{Top: 40, Right: 20, Bottom: 60, Left: 65}

	c.surface = doc.Mount(id, c.width, c.height, m)
	c.surface.SetTitle(opts.Title)
	caption(c.surface.Root, "caption", "#Weights in Bucket", (c.width+m.Right)/2, c.height+50, "middle")
	c.bars = c.surface.Root.Group("rect", scene.Rect)
	c.ctl = interact.NewController(doc, nil)
	c.draw(snap)
	return c, nil
}

// Surface returns the chart's surface, or nil if the chart is empty.
func (c *Histogram) Surface() *scene.Surface {
	return c.surface
}

// SetWidth resizes the chart. The bars follow on the next draw.
func (c *Histogram) SetWidth(width float64) {
	if c.surface == nil {
		return
	}
	c.width = width
	c.surface.SetSize(c.width, c.height)
}

// Update redraws the histogram for frame. A matrix without step 0 is
// ignored and the previous matrix is kept; if the matrix in use has no
// frame, nothing is drawn.
func (c *Histogram) Update(matrix *WeightMatrix, frame int, snap Snapshot) error {
	if c.surface == nil {
		return nil
	}
	if matrix.Has(0) {
		if err := validateWeights(matrix); err != nil {
			return err
		}
		c.matrix = matrix
	}
	ws, ok := c.matrix.Get(frame)
	if !ok {
		return nil
	}
	c.current = soleValues(ws)
	c.draw(snap)
	return nil
}

// Mode returns the bar length mode of the last draw.
func (c *Histogram) Mode() bin.Mode {
	return c.mode
}

// Buckets returns the buckets of the last draw.
func (c *Histogram) Buckets() []bin.Bucket {
	return c.buckets
}

func (c *Histogram) draw(snap Snapshot) {
	c.mode = bin.RawCount
	if snap.ScaleMinMax {
		c.mode = bin.Normalized
	}
	c.buckets = bin.Bins(c.current)
	c.divisor = c.mode.Divisor(c.buckets)
	d := c.mode.Domain(c.buckets)
	c.x = scale.NewLinear(d[0], d[1], 0, c.width)

	labels := make([]string, len(c.buckets))
	for i, b := range c.buckets {
		labels[i] = b.Label()
	}
	c.y = scale.NewBandInnerOuter(labels, 0, c.height, 0.25, 0.2)

	buckets, divisor := c.buckets, c.divisor
	c.bars.Bind(len(buckets), scene.Binding{
		Enter: func(i int, p *scene.Primitive) {
			p.SetStr("class", "rect")
			p.SetPaint("fill", palette.At(0))
			p.On(scene.MouseEnter, c.enter)
			p.On(scene.MouseLeave, c.leave)
		},
		Attrs: func(i int) scene.Attrs {
			return scene.Attrs{
				"x":      0,
				"y":      c.y.MapIndex(i),
				"width":  c.x.Map(buckets[i].Length(divisor)),
				"height": c.y.Bandwidth(),
			}
		},
		Duration: scene.DefaultDuration,
	})

	if c.xAxis == nil {
		c.xAxis = newAxis(c.surface.Root, "x axis", bottom)
		c.xAxis.g.Y = c.height
		c.xAxis.rotate = 90
		c.yAxis = newAxis(c.surface.Root, "y axis", left)
	}
	c.yAxis.draw(bandTicks(c.y, nil), c.height)
	c.xAxis.draw(linearTicks(c.x, 10), c.width)
}

func (c *Histogram) enter(p *scene.Primitive, x, y float64) {
	if p.Index >= len(c.buckets) {
		return
	}
	highlight(p, true)
	c.ctl.Enter(p.Key, interact.Point{X: x, Y: y}, []string{interact.Format2(c.buckets[p.Index].Length(c.divisor))})
}

func (c *Histogram) leave(p *scene.Primitive, x, y float64) {
	highlight(p, false)
	c.ctl.Leave()
}
