// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
	"sort"
	"time"

	"github.com/drlvis/drlchart/internal/palette"
)

// Kind is the shape of a primitive.
type Kind int

const (
	Rect Kind = iota
	Circle
	Path
	Text
	Line
)

func (k Kind) String() string {
	switch k {
	case Rect:
		return "rect"
	case Circle:
		return "circle"
	case Path:
		return "path"
	case Text:
		return "text"
	case Line:
		return "line"
	}
	return "kind?"
}

// An Event is a pointer event delivered to a primitive.
type Event string

const (
	MouseEnter Event = "mouseenter"
	MouseLeave Event = "mouseleave"
	Click      Event = "click"
)

// A Handler responds to an event on p. x and y are the pointer
// position in document coordinates.
type Handler func(p *Primitive, x, y float64)

// A Primitive is one visual element in a Group.
//
// Numeric and paint attributes may be animated. Reading an attribute
// returns its value at the document clock's current time.
type Primitive struct {
	Kind Kind
	Key  string

	// Index is the data index this primitive was last bound to.
	Index int

	group    *Group
	nums     map[string]*tween
	paints   map[string]*paintTween
	strs     map[string]string
	handlers map[Event]Handler
}

func newPrimitive(g *Group, kind Kind, key string) *Primitive {
	return &Primitive{
		Kind:   kind,
		Key:    key,
		group:  g,
		nums:   make(map[string]*tween),
		paints: make(map[string]*paintTween),
		strs:   make(map[string]string),
	}
}

func (p *Primitive) now() time.Time {
	return p.group.now()
}

// Group returns the group that owns p.
func (p *Primitive) Group() *Group {
	return p.group
}

// Num returns the current value of numeric attribute name, or 0 if it
// has never been set.
func (p *Primitive) Num(name string) float64 {
	t, ok := p.nums[name]
	if !ok {
		return 0
	}
	return t.at(p.now())
}

// Target returns the value numeric attribute name is animating
// towards, or its current value if it is not animating.
func (p *Primitive) Target(name string) float64 {
	t, ok := p.nums[name]
	if !ok {
		return 0
	}
	return t.to
}

// HasNum reports whether numeric attribute name has been set.
func (p *Primitive) HasNum(name string) bool {
	_, ok := p.nums[name]
	return ok
}

// SetNum sets numeric attribute name to v immediately, cancelling any
// tween on it.
func (p *Primitive) SetNum(name string, v float64) {
	p.nums[name] = &tween{from: v, to: v}
}

// AnimateNum tweens numeric attribute name from its current value to v
// over d. An in-flight tween on name is pre-empted: the new one starts
// from wherever the old one had reached. An attribute that was never
// set starts from 0.
func (p *Primitive) AnimateNum(name string, v float64, d time.Duration) {
	if d <= 0 {
		p.SetNum(name, v)
		return
	}
	now := p.now()
	from := 0.0
	if t, ok := p.nums[name]; ok {
		from = t.at(now)
	}
	p.nums[name] = &tween{from: from, to: v, start: now, dur: d}
}

// Paint returns the current color of paint attribute name. Unset
// paints are palette.None.
func (p *Primitive) Paint(name string) color.RGBA {
	t, ok := p.paints[name]
	if !ok {
		return palette.None
	}
	return t.at(p.now())
}

// SetPaint sets paint attribute name to c immediately.
func (p *Primitive) SetPaint(name string, c color.RGBA) {
	p.paints[name] = &paintTween{from: c, to: c}
}

// AnimatePaint tweens paint attribute name to c over d. Paints that
// were never set, and transitions to or from palette.None, switch
// immediately.
func (p *Primitive) AnimatePaint(name string, c color.RGBA, d time.Duration) {
	t, ok := p.paints[name]
	if d <= 0 || !ok || c.A == 0 {
		p.SetPaint(name, c)
		return
	}
	now := p.now()
	from := t.at(now)
	if from.A == 0 {
		p.SetPaint(name, c)
		return
	}
	p.paints[name] = &paintTween{from: from, to: c, start: now, dur: d}
}

// Str returns string attribute name, such as "d" or "text".
func (p *Primitive) Str(name string) string {
	return p.strs[name]
}

// SetStr sets string attribute name.
func (p *Primitive) SetStr(name, v string) {
	p.strs[name] = v
}

// On installs h as p's handler for ev, replacing any previous one.
func (p *Primitive) On(ev Event, h Handler) {
	if p.handlers == nil {
		p.handlers = make(map[Event]Handler)
	}
	p.handlers[ev] = h
}

// Fire delivers ev to p and reports whether p had a handler for it.
func (p *Primitive) Fire(ev Event, x, y float64) bool {
	h := p.handlers[ev]
	if h == nil {
		return false
	}
	h(p, x, y)
	return true
}

// Animating reports whether any attribute of p is mid-tween.
func (p *Primitive) Animating() bool {
	now := p.now()
	for _, t := range p.nums {
		if t.running(now) {
			return true
		}
	}
	for _, t := range p.paints {
		if t.running(now) {
			return true
		}
	}
	return false
}

func (p *Primitive) settle() {
	for _, t := range p.nums {
		t.dur = 0
	}
	for _, t := range p.paints {
		t.dur = 0
	}
}

// contains reports whether (x, y), in the group's coordinates, lies
// inside p. Only rects and circles are hit targets.
func (p *Primitive) contains(x, y float64) bool {
	switch p.Kind {
	case Rect:
		x0, y0 := p.Num("x"), p.Num("y")
		w, h := p.Num("width"), p.Num("height")
		return x >= x0 && x <= x0+w && y >= y0 && y <= y0+h
	case Circle:
		dx, dy, r := x-p.Num("cx"), y-p.Num("cy"), p.Num("r")
		return dx*dx+dy*dy <= r*r
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type tween struct {
	from, to float64
	start    time.Time
	dur      time.Duration
}

func (t *tween) running(now time.Time) bool {
	return t.dur > 0 && now.Sub(t.start) < t.dur
}

func (t *tween) at(now time.Time) float64 {
	if !t.running(now) {
		return t.to
	}
	f := ease(progress(now, t.start, t.dur))
	return t.from + (t.to-t.from)*f
}

type paintTween struct {
	from, to color.RGBA
	start    time.Time
	dur      time.Duration
}

func (t *paintTween) running(now time.Time) bool {
	return t.dur > 0 && now.Sub(t.start) < t.dur
}

func (t *paintTween) at(now time.Time) color.RGBA {
	if !t.running(now) {
		return t.to
	}
	return palette.Blend(t.from, t.to, ease(progress(now, t.start, t.dur)))
}

func progress(now, start time.Time, d time.Duration) float64 {
	f := float64(now.Sub(start)) / float64(d)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ease is the symmetric cubic easing curve.
func ease(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
