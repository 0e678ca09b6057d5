// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/drlvis/drlchart/internal/interact"
	"github.com/drlvis/drlchart/internal/palette"
	"github.com/drlvis/drlchart/internal/scale"
	"github.com/drlvis/drlchart/internal/scene"
	"github.com/drlvis/drlchart/internal/trend"
)

// zeroStub is the height given to zero-valued bars so the selected
// step stays visible.
const zeroStub = 5

// TimeBarChart shows a per-timestep scalar as one bar per step. Only
// the selected step's bar is filled; a trend line follows the
// secondary values.
type TimeBarChart struct {
	data  *RewardMap
	steps []string
	vals  []EpisodeValuePair

	width, height float64
	x             *scale.Band
	y             scale.Linear

	surface      *scene.Surface
	bars         *scene.Group
	xAxis, yAxis *axis
	fitter       trend.Fitter
	smooth       float64
	ctl          *interact.Controller
}

// NewTimeBarChart mounts a time bar chart of data into container id.
func NewTimeBarChart(doc *scene.Document, id string, data *RewardMap, opts Options) (*TimeBarChart, error) {
	c := &TimeBarChart{}
	if data.Len() == 0 {
		return c, nil
	}
	if err := validateRewards(data); err != nil {
		return nil, fmt.Errorf("time bar chart %s: %w", id, err)
	}
	c.data = data
	c.width = orDefault(opts.Width, 380)
	c.height = orDefault(opts.Height, 200)
	m := scene.Margin{Top: 40, Right: 20, Bottom: 50, Left: 55}
	c.rescale()

	c.surface = doc.Mount(id, c.width, c.height, m)
	c.surface.SetTitle(opts.Title)
	caption(c.surface.Root, "caption", "Timestep", (c.width-m.Left-m.Right)/2, c.height+m.Bottom/2+5, "")
	c.bars = c.surface.Root.Group("rect", scene.Rect)
	c.fitter = trend.Fitter{Class: "line", Stroke: palette.At(1), Width: 3}
	c.smooth = opts.Smooth
	c.ctl = interact.NewController(doc, nil)
	return c, nil
}

func (c *TimeBarChart) rescale() {
	c.steps = c.steps[:0]
	for _, s := range c.data.Steps() {
		c.steps = append(c.steps, strconv.Itoa(s))
	}
	c.vals = c.data.Values()
	c.x = scale.NewBand(c.steps, 0, c.width, 0)

	primary := make([]float64, len(c.vals))
	for i, v := range c.vals {
		primary[i] = v.Primary()
	}
	d := scale.AutoDomain(scale.Extent(primary))
	c.y = scale.NewLinear(d[0], d[1], c.height, 0)
}

// Surface returns the chart's surface, or nil if the chart is empty.
func (c *TimeBarChart) Surface() *scene.Surface {
	return c.surface
}

// SetWidth resizes the chart. The bars follow on the next Draw.
func (c *TimeBarChart) SetWidth(width float64) {
	if c.surface == nil {
		return
	}
	c.width = width
	c.surface.SetSize(c.width, c.height)
}

// UpdateData replaces the chart's data and redraws with step
// selected.
func (c *TimeBarChart) UpdateData(data *RewardMap, step int) error {
	if c.surface == nil || data.Len() == 0 {
		return nil
	}
	if err := validateRewards(data); err != nil {
		return err
	}
	c.data = data
	c.Draw(step)
	return nil
}

// Draw redraws every step with step selected.
func (c *TimeBarChart) Draw(step int) {
	if c.surface == nil {
		return
	}
	c.rescale()
	selected := strconv.Itoa(step)

	every := int(math.Round(float64(len(c.steps)) / 5))
	if every < 1 {
		every = 1
	}
	if c.xAxis == nil {
		c.xAxis = newAxis(c.surface.Root, "x axis", bottom)
		c.xAxis.g.Y = c.height
		c.yAxis = newAxis(c.surface.Root, "y axis", left)
	}
	c.yAxis.draw(linearTicks(c.y, 5), c.height)
	c.xAxis.draw(bandTicks(c.x, func(i int) bool { return i%every == 0 }), c.width)

	pts := make([]trend.Point, len(c.vals))
	for i, v := range c.vals {
		pts[i] = trend.Point{X: c.x.MapIndex(i), Y: c.y.Map(v.Secondary())}
	}
	if c.smooth > 0 {
		pts = trend.Smooth(pts, c.smooth)
	}
	c.fitter.Fit(c.surface.Root, pts)

	// Unselected bars are parked, unfilled, at the first step.
	park, ok := c.x.Map("0")
	if !ok {
		park = c.x.MapIndex(0)
	}
	stub := c.y.Domain[1] != 0
	c.bars.Bind(len(c.vals), scene.Binding{
		Enter: func(i int, p *scene.Primitive) {
			p.SetStr("class", "rect")
			p.On(scene.MouseEnter, c.enter)
			p.On(scene.MouseLeave, c.leave)
		},
		Attrs: func(i int) scene.Attrs {
			v := c.vals[i].Primary()
			x := park
			if c.steps[i] == selected {
				x = c.x.MapIndex(i)
			}
			y, h := c.y.Map(v), c.height-c.y.Map(v)
			if v == 0 && stub {
				y, h = y-zeroStub, h+zeroStub
			}
			return scene.Attrs{"x": x, "y": y, "width": c.x.Bandwidth(), "height": h}
		},
		Paints: func(i int) scene.Paints {
			if c.steps[i] == selected {
				return scene.Paints{"fill": palette.At(0)}
			}
			return scene.Paints{"fill": palette.None}
		},
	})
}

// enter widens the hovered bar threefold and shifts it left by half
// its new width.
func (c *TimeBarChart) enter(p *scene.Primitive, x, y float64) {
	if p.Index >= len(c.vals) {
		return
	}
	highlight(p, true)
	w := p.Num("width") * 3
	p.SetNum("width", w)
	p.SetNum("x", p.Num("x")-w/2)
	c.ctl.Enter(p.Key, interact.Point{X: x, Y: y}, []string{
		"Value: " + interact.Format2(c.vals[p.Index].Primary()),
		"Timestep: " + c.steps[p.Index],
	})
}

func (c *TimeBarChart) leave(p *scene.Primitive, x, y float64) {
	highlight(p, false)
	w := p.Num("width")
	p.SetNum("x", p.Num("x")+w/2)
	p.SetNum("width", w/3)
	c.ctl.Leave()
}
