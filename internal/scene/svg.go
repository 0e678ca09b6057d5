// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/drlvis/drlchart/internal/palette"
)

// errWriter records the first error from w and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return len(b), nil
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}

// WriteSVG writes the surface as a standalone SVG document, with every
// attribute at its current tween value.
func (s *Surface) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := s.Size()
	canvas.Start(px(width), px(height), `font-family="sans-serif"`, `font-size="10"`)
	now := s.Root.now()
	renderGroup(canvas, s.Top, now)
	canvas.Gtransform(translate(s.Margin.Left, s.Margin.Top))
	renderGroup(canvas, s.Root, now)
	canvas.Gend()
	canvas.End()
	return ew.err
}

func renderGroup(canvas *svg.SVG, g *Group, now time.Time) {
	attrs := []string{`class="` + g.Class + `"`}
	if g.X != 0 || g.Y != 0 {
		attrs = append(attrs, `transform="`+translate(g.X, g.Y)+`"`)
	}
	canvas.Group(attrs...)
	for _, p := range g.prims {
		renderPrimitive(canvas, p, now)
	}
	for _, c := range g.children {
		renderGroup(canvas, c, now)
	}
	canvas.Gend()
}

func renderPrimitive(canvas *svg.SVG, p *Primitive, now time.Time) {
	num := func(name string) float64 {
		if t, ok := p.nums[name]; ok {
			return t.at(now)
		}
		return 0
	}
	style := styleOf(p, now)
	switch p.Kind {
	case Rect:
		canvas.Rect(px(num("x")), px(num("y")), px(math.Max(0, num("width"))), px(math.Max(0, num("height"))), style...)
	case Circle:
		canvas.Circle(px(num("cx")), px(num("cy")), px(math.Max(0, num("r"))), style...)
	case Path:
		if d := p.strs["d"]; d != "" {
			canvas.Path(d, style...)
		}
	case Line:
		canvas.Line(px(num("x1")), px(num("y1")), px(num("x2")), px(num("y2")), style...)
	case Text:
		x, y := num("x"), num("y")
		if r := num("rotate"); r != 0 {
			style = append(style, fmt.Sprintf(`transform="rotate(%g %d %d)"`, r, px(x), px(y)))
		}
		canvas.Text(px(x), px(y), p.strs["text"], style...)
	}
}

// geometry attributes are emitted positionally by svgo; everything
// else goes into the style.
var geometry = map[string]bool{
	"x": true, "y": true, "width": true, "height": true,
	"cx": true, "cy": true, "r": true,
	"x1": true, "y1": true, "x2": true, "y2": true,
	"rotate": true,
}

func styleOf(p *Primitive, now time.Time) []string {
	var css []string
	for _, name := range sortedKeys(p.paints) {
		css = append(css, name+":"+palette.CSS(p.paints[name].at(now)))
	}
	for _, name := range sortedKeys(p.nums) {
		if geometry[name] {
			continue
		}
		v := strconv.FormatFloat(p.nums[name].at(now), 'g', 4, 64)
		if name == "font-size" {
			v += "px"
		}
		css = append(css, name+":"+v)
	}
	if a := p.strs["anchor"]; a != "" {
		css = append(css, "text-anchor:"+a)
	}
	var out []string
	if len(css) > 0 {
		out = append(out, strings.Join(css, ";"))
	}
	if c := p.strs["class"]; c != "" {
		out = append(out, `class="`+c+`"`)
	}
	return out
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%g,%g)", x, y)
}

func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
