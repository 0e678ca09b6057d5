// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact implements hover tooltips for charts.
//
// A Controller tracks whether its chart is hovered and owns the
// tooltip overlays it creates. Tooltips are either synchronous (text
// computed from the hovered datum) or asynchronous (an image fetched
// from a frame server). For asynchronous tooltips, every hover takes
// a new token and only the response carrying the current token may
// show a tooltip, so a slow response to an earlier hover can never
// overwrite the tooltip for a later one.
package interact

import (
	"context"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/drlvis/drlchart/internal/scene"
)

// Warning logs swallowed fetch failures.
var Warning = log.New(os.Stderr, "[interact] ", log.Lshortfile)

// TooltipClass is the overlay class of tooltips.
const TooltipClass = "tooltip"

// State is a controller's hover state.
type State int

const (
	Idle State = iota
	Hovered
)

func (s State) String() string {
	if s == Hovered {
		return "hovered"
	}
	return "idle"
}

// A Point is a pointer position in document coordinates.
type Point struct {
	X, Y float64
}

// A Controller manages the tooltip of one chart.
type Controller struct {
	doc     *scene.Document
	fetcher FrameFetcher

	mu     sync.Mutex
	state  State
	key    string
	token  uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController returns an idle controller drawing tooltips into doc.
// fetcher may be nil if the chart never requests frames.
func NewController(doc *scene.Document, fetcher FrameFetcher) *Controller {
	return &Controller{doc: doc, fetcher: fetcher}
}

// State returns the controller's hover state and the key of the
// hovered item.
func (c *Controller) State() (State, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.key
}

// Token returns the current request token.
func (c *Controller) Token() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// begin moves to Hovered on key, invalidates any outstanding fetch
// and removes the current tooltip. c.mu must be held.
func (c *Controller) begin(key string) uint64 {
	c.token++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state, c.key = Hovered, key
	c.doc.RemoveOverlays(TooltipClass)
	return c.token
}

// Enter shows a text tooltip for key at pointer position at.
func (c *Controller) Enter(key string, at Point, lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.begin(key)
	c.doc.ShowOverlay(scene.Overlay{Class: TooltipClass, X: at.X, Y: at.Y, Lines: lines})
}

// EnterFrame starts fetching the frame for req and, if it arrives
// while it is still the latest request, shows it with lines as a
// tooltip at at. onShow, if not nil, runs once the tooltip is shown,
// on the goroutine that next flushes the document, and only if no
// later hover or leave has happened by then. A failed fetch shows
// nothing and never runs onShow. EnterFrame does not block. It returns
// the request's token.
func (c *Controller) EnterFrame(key string, at Point, lines []string, req FrameRequest, onShow func()) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	token := c.begin(key)
	if c.fetcher == nil {
		c.doc.ShowOverlay(scene.Overlay{Class: TooltipClass, X: at.X, Y: at.Y, Lines: lines})
		if onShow != nil {
			onShow()
		}
		return token
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	lines = append([]string(nil), lines...)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		img, err := c.fetcher.FetchFrame(ctx, req)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			if ctx.Err() == nil {
				Warning.Printf("fetching frame %d,%d: %v", req.Episode, req.Index, err)
			}
			return
		}
		if token != c.token {
			// Superseded by a later hover or a leave.
			return
		}
		c.doc.ShowOverlay(scene.Overlay{Class: TooltipClass, X: at.X, Y: at.Y, Lines: lines, Image: img})
		if onShow != nil {
			c.doc.Post(func() {
				if c.Token() == token {
					onShow()
				}
			})
		}
	}()
	return token
}

// Leave returns to Idle, removes the tooltip and invalidates any
// outstanding fetch.
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state, c.key = Idle, ""
	c.doc.RemoveOverlays(TooltipClass)
}

// Wait blocks until every fetch started by EnterFrame has resolved,
// then flushes the document so their onShow callbacks have run.
func (c *Controller) Wait() {
	c.wg.Wait()
	c.doc.Flush()
}

// Format2 formats x with two decimal places.
func Format2(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// CategoryLabel returns the display name of category i: names[i] if
// names covers i, and "action i" otherwise.
func CategoryLabel(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return "action " + strconv.Itoa(i)
}
