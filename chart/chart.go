// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws the telemetry charts of a reinforcement
// learning run into a scene.Document.
//
// Each chart is built from a dataset and a container id, mounts one
// surface into that container, and redraws in place when it is told
// the selected step changed or new data arrived. Redraws reconcile the
// chart's primitives against the new data, so unchanged items keep
// their primitives and changed attributes tween to their new values.
//
// A chart built from an empty dataset mounts nothing, and all of its
// methods do nothing.
package chart

import (
	"image/color"

	"github.com/drlvis/drlchart/internal/interact"
	"github.com/drlvis/drlchart/internal/palette"
	"github.com/drlvis/drlchart/internal/scene"
)

// Options are the construction parameters shared by the charts.
// Zero fields take each chart's default.
type Options struct {
	Title string

	Width, Height float64

	// BarHeight is the height of one bar in the bar charts.
	BarHeight float64

	// Bounds is the [min, max] value range of the bar charts.
	Bounds [2]float64

	// KeyByName makes the bar charts match bars to data by action
	// name instead of by position, so a bar keeps its color when
	// the actions are reordered.
	KeyByName bool

	// Smooth, if in (0, 1], is the LOESS span applied to trend
	// lines before they are drawn.
	Smooth float64

	// Fetcher retrieves frame images for the experimental scatter
	// plot's tooltips.
	Fetcher interact.FrameFetcher
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// highlight outlines p while it is hovered.
func highlight(p *scene.Primitive, on bool) {
	if on {
		p.SetPaint("stroke", black)
	} else {
		p.SetPaint("stroke", palette.None)
	}
}

// caption adds a static text label to g.
func caption(g *scene.Group, key, text string, x, y float64, anchor string) *scene.Primitive {
	t := g.Append(scene.Text, key)
	t.SetStr("text", text)
	t.SetNum("x", x)
	t.SetNum("y", y)
	t.SetNum("font-size", 12)
	if anchor != "" {
		t.SetStr("anchor", anchor)
	}
	return t
}
