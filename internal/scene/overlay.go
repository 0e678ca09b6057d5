// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// An Overlay is a floating box, such as a tooltip, drawn above every
// surface at document coordinates.
type Overlay struct {
	Class string   `json:"class"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Lines []string `json:"lines"`

	// Image, if non-empty, is a base64-encoded JPEG shown below the
	// lines.
	Image string `json:"image,omitempty"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const (
	overlayPad   = 4
	imageSize    = 160
	lineHeight   = 13
	overlayShift = 28
)

// TextWidth returns the width in pixels of s in the overlay font.
func TextWidth(s string) float64 {
	return float64(font.MeasureString(basicfont.Face7x13, s).Ceil())
}

// ShowOverlay adds o to the overlay layer, sized to fit its content
// and placed just above and to the right of (o.X, o.Y).
func (d *Document) ShowOverlay(o Overlay) Overlay {
	w := 0.0
	for _, l := range o.Lines {
		if tw := TextWidth(l); tw > w {
			w = tw
		}
	}
	h := float64(len(o.Lines) * lineHeight)
	if o.Image != "" {
		if w < imageSize {
			w = imageSize
		}
		h += imageSize
	}
	o.Width, o.Height = w+2*overlayPad, h+2*overlayPad
	o.X, o.Y = o.X+5, o.Y-overlayShift
	o.Lines = append([]string(nil), o.Lines...)

	d.mu.Lock()
	defer d.mu.Unlock()
	p := o
	d.overlays = append(d.overlays, &p)
	return o
}

// RemoveOverlays removes every overlay with the given class and
// returns how many were removed.
func (d *Document) RemoveOverlays(class string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	keep := d.overlays[:0]
	n := 0
	for _, o := range d.overlays {
		if o.Class == class {
			n++
			continue
		}
		keep = append(keep, o)
	}
	for i := len(keep); i < len(d.overlays); i++ {
		d.overlays[i] = nil
	}
	d.overlays = keep
	return n
}

// Overlays returns a copy of the overlay layer, bottom to top.
func (d *Document) Overlays() []Overlay {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Overlay, len(d.overlays))
	for i, o := range d.overlays {
		out[i] = *o
	}
	return out
}
