// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/drlvis/drlchart/internal/interact"
	"github.com/drlvis/drlchart/internal/palette"
	"github.com/drlvis/drlchart/internal/scale"
	"github.com/drlvis/drlchart/internal/scene"
)

const (
	stateRadius      = 3
	stateDuration    = 750 * time.Millisecond
	frameRadius      = 15
	stateHoverFactor = 5
)

// ExperimentalScatterPlot shows a 2-D projection of the states visited
// in an episode, colored by the action taken and shaded by the agent's
// confidence. Hovering a state shows the environment frame for it, or
// the raw state values if the environment has no frames.
type ExperimentalScatterPlot struct {
	values  []SpatialSample
	episode int
	snap    Snapshot

	width, height float64
	x, y          scale.Linear

	surface *scene.Surface
	dots    *scene.Group
	ctl     *interact.Controller
}

// NewExperimentalScatterPlot mounts a state scatter plot for ds into
// container id. Nothing is drawn until Draw. Frames are fetched with
// opts.Fetcher.
func NewExperimentalScatterPlot(doc *scene.Document, id string, ds *ExperimentalDataset, opts Options) (*ExperimentalScatterPlot, error) {
	c := &ExperimentalScatterPlot{}
	if ds == nil || len(ds.Values) == 0 {
		return c, nil
	}
	if err := validateSpatial(ds); err != nil {
		return nil, fmt.Errorf("state scatter plot %s: %w", id, err)
	}
	c.values = ds.Values
	c.width = orDefault(opts.Width, 900)
	c.height = orDefault(opts.Height, 600)
	c.rescale()

	c.surface = doc.Mount(id, c.width, c.height, scene.Margin{Top: 50, Right: 20, Bottom: 100, Left: 20})
	c.dots = c.surface.Root.Group("dot", scene.Circle)
	c.ctl = interact.NewController(doc, opts.Fetcher)
	return c, nil
}

func (c *ExperimentalScatterPlot) rescale() {
	xs := make([]float64, len(c.values))
	ys := make([]float64, len(c.values))
	for i, s := range c.values {
		xs[i], ys[i] = s.X(), s.Y()
	}
	x0, x1 := scale.Extent(xs)
	y0, y1 := scale.Extent(ys)
	c.x = scale.NewLinear(x0, x1, 0, c.width)
	c.y = scale.NewLinear(y0, y1, c.height, 0)
}

// Surface returns the chart's surface, or nil if the chart is empty.
func (c *ExperimentalScatterPlot) Surface() *scene.Surface {
	return c.surface
}

// Controller returns the chart's tooltip controller.
func (c *ExperimentalScatterPlot) Controller() *interact.Controller {
	return c.ctl
}

// SetSize resizes the chart. The dots follow on the next Draw.
func (c *ExperimentalScatterPlot) SetSize(width, height float64) {
	if c.surface == nil {
		return
	}
	c.width, c.height = width, height
	c.surface.SetSize(width, height)
}

// Draw shows ds, the states of episode. Tooltips read snap.
func (c *ExperimentalScatterPlot) Draw(ds *ExperimentalDataset, episode int, snap Snapshot) error {
	if c.surface == nil || ds == nil || len(ds.Values) == 0 {
		return nil
	}
	if err := validateSpatial(ds); err != nil {
		return err
	}
	c.values, c.episode, c.snap = ds.Values, episode, snap
	c.rescale()

	values := c.values
	c.dots.Bind(len(values), scene.Binding{
		Enter: func(i int, p *scene.Primitive) {
			p.SetStr("class", "dot")
			p.SetPaint("stroke", white)
			p.On(scene.MouseEnter, c.enter)
			p.On(scene.MouseLeave, c.leave)
		},
		Attrs: func(i int) scene.Attrs {
			s := values[i]
			return scene.Attrs{
				"cx":           c.x.Map(s.X()),
				"cy":           c.y.Map(s.Y()),
				"r":            stateRadius,
				"fill-opacity": s.Opacity(),
				"stroke-width": 1,
			}
		},
		Paints: func(i int) scene.Paints {
			col := palette.At(values[i].Category())
			return scene.Paints{"fill": col, "stroke": col}
		},
		Duration: stateDuration,
	})
	return nil
}

func (c *ExperimentalScatterPlot) enter(p *scene.Primitive, x, y float64) {
	if p.Index >= len(c.values) {
		return
	}
	s := c.values[p.Index]
	lines := []string{
		"Confidence: " + interact.Format2(s.Opacity()),
		"Action: " + interact.CategoryLabel(c.snap.ActionMeanings, s.Category()),
	}
	at := interact.Point{X: x, Y: y}
	if c.snap.IsNoImageData {
		lines = append(lines, "State Values:")
		for i, v := range s.Extra() {
			lines = append(lines, "state value "+strconv.Itoa(i)+": "+interact.Format2(v))
		}
		c.ctl.Enter(p.Key, at, lines)
		p.SetNum("r", p.Num("r")*stateHoverFactor)
		return
	}
	req := interact.FrameRequest{Episode: c.episode, Index: p.Index}
	c.ctl.EnterFrame(p.Key, at, lines, req, func() {
		p.SetNum("r", frameRadius)
	})
}

func (c *ExperimentalScatterPlot) leave(p *scene.Primitive, x, y float64) {
	for _, d := range c.dots.Primitives() {
		d.SetNum("r", stateRadius)
	}
	c.ctl.Leave()
}
