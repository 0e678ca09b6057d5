// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"strconv"

	"github.com/drlvis/drlchart/internal/scale"
	"github.com/drlvis/drlchart/internal/scene"
)

type orient int

const (
	bottom orient = iota
	left
)

const tickSize = 6

// An axis is a domain line with labeled ticks. Ticks are keyed by
// label, so a tick that survives a rescale keeps its primitives and
// only moves.
type axis struct {
	orient orient
	g      *scene.Group
	marks  *scene.Group
	labels *scene.Group

	// rotate is the tick label rotation in degrees.
	rotate float64
}

type tick struct {
	label string
	pos   float64
}

func newAxis(parent *scene.Group, class string, o orient) *axis {
	g := parent.Group(class, scene.Line)
	a := &axis{
		orient: o,
		g:      g,
		marks:  g.Group("tick", scene.Line),
		labels: g.Group("label", scene.Text),
	}
	domain := g.Append(scene.Line, "domain")
	domain.SetPaint("stroke", black)
	return a
}

// draw lays the axis out along [0, length] with the given ticks.
func (a *axis) draw(ticks []tick, length float64) {
	domain := a.g.Lookup("domain")
	if a.orient == bottom {
		domain.SetNum("x2", length)
		domain.SetNum("y2", 0)
	} else {
		domain.SetNum("x2", 0)
		domain.SetNum("y2", length)
	}

	key := scene.Keyed(func(i int) string { return ticks[i].label })
	a.marks.Bind(len(ticks), scene.Binding{
		Key: key,
		Enter: func(i int, p *scene.Primitive) {
			p.SetPaint("stroke", black)
		},
		Attrs: func(i int) scene.Attrs {
			pos := ticks[i].pos
			if a.orient == bottom {
				return scene.Attrs{"x1": pos, "x2": pos, "y1": 0, "y2": tickSize}
			}
			return scene.Attrs{"x1": -tickSize, "x2": 0, "y1": pos, "y2": pos}
		},
	})
	a.labels.Bind(len(ticks), scene.Binding{
		Key: key,
		Enter: func(i int, p *scene.Primitive) {
			p.SetPaint("fill", black)
			if a.orient == bottom {
				p.SetStr("anchor", "middle")
			} else {
				p.SetStr("anchor", "end")
			}
		},
		Attrs: func(i int) scene.Attrs {
			pos := ticks[i].pos
			if a.orient == bottom {
				return scene.Attrs{"x": pos, "y": tickSize + 12, "rotate": a.rotate}
			}
			return scene.Attrs{"x": -tickSize - 3, "y": pos + 3, "rotate": a.rotate}
		},
		Update: func(i int, p *scene.Primitive) {
			p.SetStr("text", ticks[i].label)
		},
	})
}

// labelTexts returns the axis's tick labels in order.
func (a *axis) labelTexts() []string {
	var out []string
	for _, p := range a.labels.Primitives() {
		out = append(out, p.Str("text"))
	}
	return out
}

func linearTicks(s scale.Linear, n int) []tick {
	var ts []tick
	for _, v := range s.Ticks(n) {
		ts = append(ts, tick{strconv.FormatFloat(v, 'g', 6, 64), s.Map(v)})
	}
	return ts
}

// bandTicks returns a tick at the center of each band whose index
// passes keep.
func bandTicks(b *scale.Band, keep func(i int) bool) []tick {
	var ts []tick
	for i, k := range b.Keys() {
		if keep != nil && !keep(i) {
			continue
		}
		ts = append(ts, tick{k, b.MapIndex(i) + b.Bandwidth()/2})
	}
	return ts
}
