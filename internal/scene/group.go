// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
	"strconv"
	"time"
)

// DefaultDuration is the standard transition length for data-driven
// attribute changes.
const DefaultDuration = 200 * time.Millisecond

// A KeyFunc returns the identity key of the i'th datum.
type KeyFunc func(i int) string

// Positional identifies data by array position: the i'th datum of a
// redraw is matched with whatever primitive the i'th datum of the
// previous draw produced, even if it is a different semantic item.
func Positional(i int) string {
	return strconv.Itoa(i)
}

// Keyed identifies data by a semantic key, such as an action name, so
// a primitive follows its datum when the data is reordered.
func Keyed(key func(i int) string) KeyFunc {
	return KeyFunc(key)
}

// Attrs are numeric attribute targets.
type Attrs map[string]float64

// Paints are color attribute targets.
type Paints map[string]color.RGBA

// A Binding describes how Bind turns data into primitives.
type Binding struct {
	// Key identifies data. If nil, Positional is used.
	Key KeyFunc

	// Enter, if non-nil, sets static attributes and handlers on a
	// newly created primitive before its first tween.
	Enter func(i int, p *Primitive)

	// Attrs and Paints, if non-nil, return the target attributes
	// for the i'th datum. Entering and updating primitives tween to
	// them over Duration.
	Attrs  func(i int) Attrs
	Paints func(i int) Paints

	// Update, if non-nil, is called on every entering and updating
	// primitive after its tweens are set.
	Update func(i int, p *Primitive)

	Duration time.Duration
}

// A Diff is the result of matching new data against a group's
// primitives. Enter and Update are indexes into the new data; Exit
// holds the keys of primitives with no datum. The three sets are
// disjoint.
type Diff struct {
	Enter  []int
	Update []int
	Exit   []string
}

// A Group is an ordered, keyed set of primitives of one kind, plus
// child groups drawn after them.
type Group struct {
	Class string
	Kind  Kind

	// X and Y translate the group relative to its parent.
	X, Y float64

	doc      *Document
	prims    []*Primitive
	index    map[string]*Primitive
	children []*Group
}

func newGroup(doc *Document, class string, kind Kind) *Group {
	return &Group{
		Class: class,
		Kind:  kind,
		doc:   doc,
		index: make(map[string]*Primitive),
	}
}

func (g *Group) now() time.Time {
	return g.doc.now()
}

// Group returns g's child group with the given class, creating it
// with the given kind if it does not exist.
func (g *Group) Group(class string, kind Kind) *Group {
	if c := g.Child(class); c != nil {
		return c
	}
	c := newGroup(g.doc, class, kind)
	g.children = append(g.children, c)
	return c
}

// Child returns g's child group with the given class, or nil.
func (g *Group) Child(class string) *Group {
	for _, c := range g.children {
		if c.Class == class {
			return c
		}
	}
	return nil
}

// Children returns g's child groups in drawing order.
func (g *Group) Children() []*Group {
	return g.children
}

// Len returns the number of primitives in g, excluding children.
func (g *Group) Len() int {
	return len(g.prims)
}

// Primitives returns g's primitives in drawing order. The caller must
// not modify the slice.
func (g *Group) Primitives() []*Primitive {
	return g.prims
}

// Lookup returns the primitive with the given key, or nil.
func (g *Group) Lookup(key string) *Primitive {
	return g.index[key]
}

// Append adds a primitive of the given kind outside of any data
// binding. If a primitive with key already exists, Append returns it.
func (g *Group) Append(kind Kind, key string) *Primitive {
	if p := g.index[key]; p != nil {
		return p
	}
	p := newPrimitive(g, kind, key)
	p.Index = len(g.prims)
	g.prims = append(g.prims, p)
	g.index[key] = p
	return p
}

// Remove deletes the primitive with the given key, if any.
func (g *Group) Remove(key string) {
	if g.index[key] == nil {
		return
	}
	delete(g.index, key)
	for i, p := range g.prims {
		if p.Key == key {
			g.prims = append(g.prims[:i], g.prims[i+1:]...)
			break
		}
	}
}

// Clear removes every primitive and child group.
func (g *Group) Clear() {
	g.prims = nil
	g.index = make(map[string]*Primitive)
	g.children = nil
}

// keys returns the identity keys of n data. A key repeated within one
// binding is made unique by suffixing its data index, so the duplicate
// gets its own primitive.
func keys(n int, key KeyFunc) []string {
	if key == nil {
		key = Positional
	}
	ks := make([]string, n)
	seen := make(map[string]bool, n)
	for i := range ks {
		k := key(i)
		if seen[k] {
			k += "\x00" + strconv.Itoa(i)
		}
		seen[k] = true
		ks[i] = k
	}
	return ks
}

// Join matches n data, identified by key, against g's primitives
// without modifying g.
func (g *Group) Join(n int, key KeyFunc) Diff {
	return g.diff(keys(n, key))
}

func (g *Group) diff(ks []string) Diff {
	var d Diff
	want := make(map[string]bool, len(ks))
	for i, k := range ks {
		want[k] = true
		if g.index[k] != nil {
			d.Update = append(d.Update, i)
		} else {
			d.Enter = append(d.Enter, i)
		}
	}
	for _, p := range g.prims {
		if !want[p.Key] {
			d.Exit = append(d.Exit, p.Key)
		}
	}
	return d
}

// Bind reconciles g's primitives with n data. Exiting primitives are
// removed at once; entering primitives are created and passed to
// b.Enter; then every entering and updating primitive tweens to its
// targets. Afterwards g holds exactly n primitives in data order.
func (g *Group) Bind(n int, b Binding) Diff {
	ks := keys(n, b.Key)
	d := g.diff(ks)
	for _, k := range d.Exit {
		delete(g.index, k)
	}

	prims := make([]*Primitive, n)
	for i, k := range ks {
		p := g.index[k]
		if p == nil {
			p = newPrimitive(g, g.Kind, k)
			g.index[k] = p
			p.Index = i
			if b.Enter != nil {
				b.Enter(i, p)
			}
		}
		p.Index = i
		if b.Attrs != nil {
			for name, v := range b.Attrs(i) {
				p.AnimateNum(name, v, b.Duration)
			}
		}
		if b.Paints != nil {
			ps := b.Paints(i)
			for name, c := range ps {
				p.AnimatePaint(name, c, b.Duration)
			}
		}
		if b.Update != nil {
			b.Update(i, p)
		}
		prims[i] = p
	}
	g.prims = prims
	return d
}

// Hit returns the topmost rect or circle containing (x, y), given in
// g's parent coordinates, searching child groups before g's own
// primitives.
func (g *Group) Hit(x, y float64) (*Primitive, bool) {
	x, y = x-g.X, y-g.Y
	for i := len(g.children) - 1; i >= 0; i-- {
		if p, ok := g.children[i].Hit(x, y); ok {
			return p, true
		}
	}
	for i := len(g.prims) - 1; i >= 0; i-- {
		if p := g.prims[i]; p.contains(x, y) {
			return p, true
		}
	}
	return nil, false
}

func (g *Group) settle() {
	for _, p := range g.prims {
		p.settle()
	}
	for _, c := range g.children {
		c.settle()
	}
}

func (g *Group) animating() bool {
	for _, p := range g.prims {
		if p.Animating() {
			return true
		}
	}
	for _, c := range g.children {
		if c.animating() {
			return true
		}
	}
	return false
}
