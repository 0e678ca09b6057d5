// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/drlvis/drlchart/internal/interact"
	"github.com/drlvis/drlchart/internal/palette"
	"github.com/drlvis/drlchart/internal/scale"
	"github.com/drlvis/drlchart/internal/scene"
)

// barChart is the horizontal bar chart shared by BarChart and
// CustomBarChart. Bars run from the left edge to the value's position
// on a linear axis over Bounds; each category has one band of a
// vertical band axis.
type barChart struct {
	data *ActionMap
	opts Options

	// label returns the band key of the i'th value of a step.
	label func(i int, v NamedValue) string
	// color returns the fill of a new bar.
	color func(v NamedValue) color.RGBA

	width, height float64
	bounds        [2]float64
	x             scale.Linear
	y             *scale.Band
	current       []NamedValue

	surface      *scene.Surface
	bars         *scene.Group
	xAxis, yAxis *axis
	ctl          *interact.Controller
}

// BarChart shows one step's action values, one bar per action.
type BarChart struct {
	barChart
	withNames bool
}

// CustomBarChart shows one step of a custom named metric, one bar per
// name seen in any step.
type CustomBarChart struct {
	barChart
}

// NewBarChart mounts a bar chart of data into container id. The bands
// are the names of the actions at step 0, or snap.ActionMeanings if
// the environment names its actions. NewBarChart reports the number of
// actions to sink.
func NewBarChart(doc *scene.Document, id string, data *ActionMap, opts Options, snap Snapshot, sink Sink) (*BarChart, error) {
	c := &BarChart{}
	if data.Len() == 0 {
		return c, nil
	}
	if err := validateActions(data); err != nil {
		return nil, fmt.Errorf("bar chart %s: %w", id, err)
	}
	step0, _ := data.Get(0)

	c.withNames = snap.ActionMeanings != nil
	meanings := snap.ActionMeanings
	number := make(map[string]int, len(step0))
	domain := make([]string, len(step0))
	for i, v := range step0 {
		if c.withNames {
			domain[i] = interact.CategoryLabel(meanings, i)
		} else {
			domain[i] = v.Name
		}
		number[v.Name] = i
	}
	sinkOrNop(sink).SetNumberOfActions(len(domain))

	c.label = func(i int, v NamedValue) string {
		if c.withNames {
			return interact.CategoryLabel(meanings, i)
		}
		return v.Name
	}
	c.color = func(v NamedValue) color.RGBA {
		return palette.At(number[v.Name])
	}
	c.init(doc, id, data, opts, domain, len(step0), scene.Margin{Top: 40, Right: 20, Bottom: 50, Left: 45}, 300)
	return c, nil
}

// NewCustomBarChart mounts a bar chart of a custom metric into
// container id. The bands are the union of the names of every step, in
// step order. Names that are numbers are colored by that number.
func NewCustomBarChart(doc *scene.Document, id string, data *ActionMap, opts Options) (*CustomBarChart, error) {
	c := &CustomBarChart{}
	if data.Len() == 0 {
		return c, nil
	}
	if err := validateActions(data); err != nil {
		return nil, fmt.Errorf("custom bar chart %s: %w", id, err)
	}
	var domain []string
	index := make(map[string]int)
	data.Each(func(_ int, vs []NamedValue) {
		for _, v := range vs {
			if _, ok := index[v.Name]; !ok {
				index[v.Name] = len(domain)
				domain = append(domain, v.Name)
			}
		}
	})
	step0, _ := data.Get(0)

	c.label = func(_ int, v NamedValue) string { return v.Name }
	c.color = func(v NamedValue) color.RGBA {
		if n, err := strconv.Atoi(v.Name); err == nil {
			return palette.At(n)
		}
		return palette.At(index[v.Name])
	}
	c.init(doc, id, data, opts, domain, len(step0), scene.Margin{Top: 40, Right: 20, Bottom: 50, Left: 40}, 240)
	return c, nil
}

func (c *barChart) init(doc *scene.Document, id string, data *ActionMap, opts Options, domain []string, rows int, m scene.Margin, defWidth float64) {
	c.data = data
	c.opts = opts
	c.bounds = opts.Bounds
	c.width = orDefault(opts.Width, defWidth)
	c.height = orDefault(opts.BarHeight, 30) * float64(rows)
	c.y = scale.NewBand(domain, c.height, 0, 0.1)
	c.x = c.xScale()

	c.surface = doc.Mount(id, c.width, c.height, m)
	c.surface.SetTitle(opts.Title)
	c.bars = c.surface.Root.Group("bar", scene.Rect)
	c.ctl = interact.NewController(doc, nil)
}

func (c *barChart) xScale() scale.Linear {
	return scale.NewLinear(c.bounds[1], c.bounds[0], c.width, 0)
}

// Surface returns the chart's surface, or nil if the chart is empty.
func (c *barChart) Surface() *scene.Surface {
	return c.surface
}

// SetWidth resizes the chart. The bars follow on the next Draw.
func (c *barChart) SetWidth(width float64) {
	if c.surface == nil {
		return
	}
	c.width = width
	c.surface.SetSize(c.width, c.height)
}

// UpdateData replaces the chart's data. The bands are not recomputed.
func (c *barChart) UpdateData(data *ActionMap) error {
	if c.surface == nil || data.Len() == 0 {
		return nil
	}
	if err := validateActions(data); err != nil {
		return err
	}
	c.data = data
	return nil
}

// Draw shows step. Steps without data are ignored.
func (c *barChart) Draw(step int) {
	if c.surface == nil {
		return
	}
	vs, ok := c.data.Get(step)
	if !ok {
		return
	}
	c.current = vs
	c.x = c.xScale()

	b := scene.Binding{
		Enter: func(i int, p *scene.Primitive) {
			p.SetStr("class", "bar")
			p.SetPaint("fill", c.color(vs[i]))
			p.On(scene.MouseEnter, c.enter)
			p.On(scene.MouseLeave, c.leave)
		},
		Attrs: func(i int) scene.Attrs {
			y, _ := c.y.Map(c.label(i, vs[i]))
			return scene.Attrs{
				"x":      0,
				"y":      y,
				"width":  c.x.Map(vs[i].Value),
				"height": c.y.Bandwidth(),
			}
		},
		Duration: scene.DefaultDuration,
	}
	if c.opts.KeyByName {
		b.Key = scene.Keyed(func(i int) string { return vs[i].Name })
	}
	c.bars.Bind(len(vs), b)

	if c.xAxis == nil {
		c.xAxis = newAxis(c.surface.Root, "x axis", bottom)
		c.xAxis.g.Y = c.height
		c.xAxis.rotate = 45
		c.yAxis = newAxis(c.surface.Root, "y axis", left)
	}
	c.xAxis.draw(linearTicks(c.x, 5), c.width)
	c.yAxis.draw(bandTicks(c.y, nil), c.height)
}

func (c *barChart) enter(p *scene.Primitive, x, y float64) {
	if p.Index >= len(c.current) {
		return
	}
	highlight(p, true)
	c.ctl.Enter(p.Key, interact.Point{X: x, Y: y}, []string{interact.Format2(c.current[p.Index].Value)})
}

func (c *barChart) leave(p *scene.Primitive, x, y float64) {
	highlight(p, false)
	c.ctl.Leave()
}
