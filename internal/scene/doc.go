// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is a retained scene graph for charts.
//
// A Document holds containers, each of which holds the surfaces
// mounted into it. A Surface is one SVG canvas with margins around a
// content Group. Groups hold primitives (rects, circles, paths, text
// and lines) that are reconciled against data with Bind: primitives
// are matched to data by key, created for new data, removed for
// vanished data, and tweened to new attribute values.
//
// The scene is not safe for concurrent use, except for the overlay
// layer, which may be modified from any goroutine.
package scene

import (
	"sync"
	"time"
)

// A Clock supplies the current time to tweens.
type Clock interface {
	Now() time.Time
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewManualClock returns a ManualClock reading t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{t: t}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves c forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Margin is the space between a surface's edge and its content.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// A Document is the root of a scene.
type Document struct {
	// Clock drives tweens. If nil, the system clock is used.
	Clock Clock

	containers map[string]*Container
	order      []string

	mu       sync.Mutex
	overlays []*Overlay
	posted   []func()
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{containers: make(map[string]*Container)}
}

func (d *Document) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock.Now()
}

// A Container is a mount point addressed by id.
type Container struct {
	ID       string
	Surfaces []*Surface
}

// Container returns the container with the given id, or nil if
// nothing has been mounted there.
func (d *Document) Container(id string) *Container {
	return d.containers[id]
}

// Containers returns the ids of every container in mount order.
func (d *Document) Containers() []string {
	return d.order
}

// Surfaces returns the total number of surfaces in d.
func (d *Document) Surfaces() int {
	n := 0
	for _, c := range d.containers {
		n += len(c.Surfaces)
	}
	return n
}

// Mount appends a new surface to container id, creating the container
// if needed. The surface's content area is width × height; the
// surface itself is larger by the margins. Mounting twice into the same
// container yields two surfaces.
func (d *Document) Mount(id string, width, height float64, m Margin) *Surface {
	c := d.containers[id]
	if c == nil {
		c = &Container{ID: id}
		d.containers[id] = c
		d.order = append(d.order, id)
	}
	s := &Surface{
		Margin: m,
		width:  width,
		height: height,
		Top:    newGroup(d, "top", Text),
		Root:   newGroup(d, "root", Rect),
	}
	c.Surfaces = append(c.Surfaces, s)
	return s
}

// Post queues f to run on the goroutine that next calls Flush. It is
// safe to call from any goroutine; primitives are not, so background
// work that must change the scene posts the change.
func (d *Document) Post(f func()) {
	d.mu.Lock()
	d.posted = append(d.posted, f)
	d.mu.Unlock()
}

// Flush runs the functions queued by Post, in order, and reports how
// many ran. Settle and Surface.Pointer flush before doing anything
// else.
func (d *Document) Flush() int {
	d.mu.Lock()
	fs := d.posted
	d.posted = nil
	d.mu.Unlock()
	for _, f := range fs {
		f()
	}
	return len(fs)
}

// Settle completes every running tween in d.
func (d *Document) Settle() {
	d.Flush()
	for _, c := range d.containers {
		for _, s := range c.Surfaces {
			s.Top.settle()
			s.Root.settle()
		}
	}
}

// Animating reports whether any tween in d is still running.
func (d *Document) Animating() bool {
	for _, c := range d.containers {
		for _, s := range c.Surfaces {
			if s.Top.animating() || s.Root.animating() {
				return true
			}
		}
	}
	return false
}

// A Surface is one SVG canvas.
type Surface struct {
	Margin Margin

	// Top is drawn in surface coordinates, outside the margins.
	// Root is drawn translated by the left and top margins.
	Top  *Group
	Root *Group

	width, height float64
	hover         *Primitive
}

// SetSize sets the content area size.
func (s *Surface) SetSize(width, height float64) {
	s.width, s.height = width, height
}

// ContentSize returns the content area size.
func (s *Surface) ContentSize() (width, height float64) {
	return s.width, s.height
}

// Size returns the full surface size including margins.
func (s *Surface) Size() (width, height float64) {
	return s.width + s.Margin.Left + s.Margin.Right, s.height + s.Margin.Top + s.Margin.Bottom
}

// SetTitle places a title at the left of the top margin.
func (s *Surface) SetTitle(title string) {
	t := s.Top.Append(Text, "title")
	t.SetStr("text", title)
	t.SetNum("x", 0)
	t.SetNum("y", s.Margin.Top/2)
	t.SetNum("font-size", 14)
}

// Title returns the surface's title, if any.
func (s *Surface) Title() string {
	if t := s.Top.Lookup("title"); t != nil {
		return t.Str("text")
	}
	return ""
}

// Hit returns the topmost primitive under (x, y), given in surface
// coordinates.
func (s *Surface) Hit(x, y float64) (*Primitive, bool) {
	return s.Root.Hit(x-s.Margin.Left, y-s.Margin.Top)
}

// Pointer moves the pointer to (x, y) in surface coordinates. If this
// changes the primitive under the pointer, the old one receives
// MouseLeave and the new one MouseEnter. Pointer returns the
// primitive now under the pointer, if any.
func (s *Surface) Pointer(x, y float64) *Primitive {
	s.Root.doc.Flush()
	p, _ := s.Hit(x, y)
	if p != s.hover {
		if s.hover != nil {
			s.hover.Fire(MouseLeave, x, y)
		}
		s.hover = p
		if p != nil {
			p.Fire(MouseEnter, x, y)
		}
	}
	return p
}

// Click delivers a Click to the primitive under (x, y) and reports
// whether it was handled.
func (s *Surface) Click(x, y float64) bool {
	p, ok := s.Hit(x, y)
	if !ok {
		return false
	}
	return p.Fire(Click, x, y)
}
