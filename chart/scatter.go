// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"strconv"

	"github.com/drlvis/drlchart/internal/interact"
	"github.com/drlvis/drlchart/internal/palette"
	"github.com/drlvis/drlchart/internal/scale"
	"github.com/drlvis/drlchart/internal/scene"
	"github.com/drlvis/drlchart/internal/trend"
)

const (
	dotRadius     = 4
	hoveredRadius = 12
)

// ScatterPlot shows one dot per episode with a trend line. Hovering a
// dot marks its episode as hovered and clicking selects it, which
// other charts pick up through the Sink.
type ScatterPlot struct {
	data  *RewardMap
	sink  Sink
	steps []int
	vals  []EpisodeValuePair

	width, height float64
	x, y          scale.Linear

	surface      *scene.Surface
	dots         *scene.Group
	xAxis, yAxis *axis
	fitter       trend.Fitter
	smooth       float64
	ctl          *interact.Controller
}

// NewScatterPlot mounts a scatter plot of data into container id.
// Hover and selection changes are written to sink.
func NewScatterPlot(doc *scene.Document, id string, data *RewardMap, opts Options, sink Sink) (*ScatterPlot, error) {
	c := &ScatterPlot{}
	if data.Len() == 0 {
		return c, nil
	}
	if err := validateRewards(data); err != nil {
		return nil, fmt.Errorf("scatter plot %s: %w", id, err)
	}
	c.data = data
	c.sink = sinkOrNop(sink)
	c.width = orDefault(opts.Width, 550)
	c.height = orDefault(opts.Height, 200)
	m := scene.Margin{Top: 60, Right: 50, Bottom: 60, Left: 50}

	c.surface = doc.Mount(id, c.width, c.height, m)
	c.surface.SetTitle(opts.Title)
	caption(c.surface.Root, "caption", "Episode Count", (c.width-m.Left-m.Right)/2, c.height+m.Bottom/2+5, "")
	ytitle := caption(c.surface.Root, "ytitle", opts.Title, -m.Left/2-10, c.height/2, "middle")
	ytitle.SetNum("rotate", -90)
	c.dots = c.surface.Root.Group("dot", scene.Circle)
	c.fitter = trend.Fitter{Class: "line", Stroke: palette.At(1), Width: 3}
	c.smooth = opts.Smooth
	c.ctl = interact.NewController(doc, nil)
	c.xAxis = newAxis(c.surface.Root, "x axis", bottom)
	c.xAxis.g.Y = c.height
	c.yAxis = newAxis(c.surface.Root, "y axis", left)
	c.rescale()
	return c, nil
}

func (c *ScatterPlot) rescale() {
	c.steps = c.data.Steps()
	c.vals = c.data.Values()
	c.x = scale.NewLinear(0, float64(len(c.steps)), 0, c.width)
	top := 0.0
	for i, v := range c.vals {
		if i == 0 || v.Primary() > top {
			top = v.Primary()
		}
	}
	c.y = scale.NewLinear(0, top, c.height, 0)
	c.xAxis.draw(linearTicks(c.x, 10), c.width)
	c.yAxis.draw(linearTicks(c.y, 5), c.height)
}

// Surface returns the chart's surface, or nil if the chart is empty.
func (c *ScatterPlot) Surface() *scene.Surface {
	return c.surface
}

// SetWidth resizes the chart. The dots follow on the next Draw.
func (c *ScatterPlot) SetWidth(width float64) {
	if c.surface == nil {
		return
	}
	c.width = width
	c.surface.SetSize(c.width, c.height)
}

// UpdateData replaces the chart's data. It is drawn on the next Draw.
func (c *ScatterPlot) UpdateData(data *RewardMap) error {
	if c.surface == nil || data.Len() == 0 {
		return nil
	}
	if err := validateRewards(data); err != nil {
		return err
	}
	c.data = data
	return nil
}

// Draw redraws the plot, coloring snap.SelectedEpisode and enlarging
// snap.HoveredEpisode.
func (c *ScatterPlot) Draw(snap Snapshot) {
	if c.surface == nil {
		return
	}
	c.rescale()
	c.dots.Bind(len(c.vals), scene.Binding{
		Enter: func(i int, p *scene.Primitive) {
			p.SetStr("class", "dot")
			p.On(scene.MouseEnter, c.enter)
			p.On(scene.MouseLeave, c.leave)
			p.On(scene.Click, c.click)
		},
		Attrs: func(i int) scene.Attrs {
			r := float64(dotRadius)
			if c.steps[i] == snap.HoveredEpisode {
				r = hoveredRadius
			}
			return scene.Attrs{
				"cx":      c.x.Map(float64(c.steps[i])),
				"cy":      c.y.Map(c.vals[i].Primary()),
				"r":       r,
				"opacity": 1,
			}
		},
		Paints: func(i int) scene.Paints {
			col := palette.At(0)
			if c.steps[i] == snap.SelectedEpisode {
				col = palette.At(2)
			}
			return scene.Paints{"fill": col, "stroke": col}
		},
	})

	pts := make([]trend.Point, len(c.vals))
	for i, v := range c.vals {
		pts[i] = trend.Point{X: c.x.Map(float64(c.steps[i])), Y: c.y.Map(v.Secondary())}
	}
	if c.smooth > 0 {
		pts = trend.Smooth(pts, c.smooth)
	}
	c.fitter.Fit(c.surface.Root, pts)
}

func (c *ScatterPlot) enter(p *scene.Primitive, x, y float64) {
	if p.Index >= len(c.vals) {
		return
	}
	c.sink.SetHoveredEpisode(c.steps[p.Index])
	highlight(p, true)
	c.ctl.Enter(strconv.Itoa(c.steps[p.Index]), interact.Point{X: x, Y: y}, []string{interact.Format2(c.vals[p.Index].Primary())})
}

func (c *ScatterPlot) leave(p *scene.Primitive, x, y float64) {
	highlight(p, false)
	p.SetNum("opacity", 0.8)
	c.ctl.Leave()
	c.sink.SetHoveredEpisode(NoEpisode)
}

func (c *ScatterPlot) click(p *scene.Primitive, x, y float64) {
	if p.Index >= len(c.vals) {
		return
	}
	c.sink.SetSelectedEpisode(c.steps[p.Index])
}
