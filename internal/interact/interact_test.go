// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drlvis/drlchart/internal/scene"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func init() {
	Warning.SetOutput(io.Discard)
}

// gatedFetcher answers each request only when the test releases it.
type gatedFetcher struct {
	started chan FrameRequest
	gates   map[FrameRequest]chan error
}

func newGatedFetcher(reqs ...FrameRequest) *gatedFetcher {
	f := &gatedFetcher{
		started: make(chan FrameRequest, len(reqs)),
		gates:   make(map[FrameRequest]chan error),
	}
	for _, r := range reqs {
		f.gates[r] = make(chan error, 1)
	}
	return f
}

func (f *gatedFetcher) FetchFrame(ctx context.Context, req FrameRequest) (string, error) {
	f.started <- req
	if err := <-f.gates[req]; err != nil {
		return "", err
	}
	return fmt.Sprintf("frame-%d-%d", req.Episode, req.Index), nil
}

func (f *gatedFetcher) release(req FrameRequest, err error) {
	f.gates[req] <- err
}

func TestEnterLeave(t *testing.T) {
	doc := scene.NewDocument()
	c := NewController(doc, nil)
	if s, _ := c.State(); s != Idle {
		t.Fatalf("new controller is %v", s)
	}
	c.Enter("up", Point{10, 20}, []string{"Value: " + Format2(0.7)})
	if s, key := c.State(); s != Hovered || key != "up" {
		t.Errorf("after Enter: %v %q", s, key)
	}
	c.Enter("down", Point{10, 50}, []string{"Value: 0.30"})
	ovs := doc.Overlays()
	if len(ovs) != 1 || ovs[0].Lines[0] != "Value: 0.30" {
		t.Errorf("overlays after re-enter = %+v, want only the latest tooltip", ovs)
	}
	c.Leave()
	if s, _ := c.State(); s != Idle {
		t.Errorf("after Leave: %v", s)
	}
	if n := len(doc.Overlays()); n != 0 {
		t.Errorf("%d overlays after Leave", n)
	}
}

func TestStaleFrameDropped(t *testing.T) {
	doc := scene.NewDocument()
	r5, r6 := FrameRequest{2, 5}, FrameRequest{2, 6}
	f := newGatedFetcher(r5, r6)
	c := NewController(doc, f)
	var shown []string

	c.EnterFrame("5", Point{}, []string{"Confidence: 0.50"}, r5, func() { shown = append(shown, "5") })
	<-f.started
	c.EnterFrame("6", Point{}, []string{"Confidence: 0.60"}, r6, func() { shown = append(shown, "6") })
	<-f.started

	// The newer request resolves first; the older one arrives late.
	f.release(r6, nil)
	f.release(r5, nil)
	c.Wait()

	ovs := doc.Overlays()
	if len(ovs) != 1 {
		t.Fatalf("got %d tooltips, want 1", len(ovs))
	}
	if diff := cmp.Diff([]string{"Confidence: 0.60"}, ovs[0].Lines); diff != "" {
		t.Errorf("tooltip lines (-want +got):\n%s", diff)
	}
	if ovs[0].Image != "frame-2-6" {
		t.Errorf("tooltip image = %q, want frame-2-6", ovs[0].Image)
	}
	if diff := cmp.Diff([]string{"6"}, shown); diff != "" {
		t.Errorf("onShow calls (-want +got):\n%s", diff)
	}
}

func TestLeaveInvalidatesFetch(t *testing.T) {
	doc := scene.NewDocument()
	r := FrameRequest{1, 1}
	f := newGatedFetcher(r)
	c := NewController(doc, f)
	shown := false
	c.EnterFrame("1", Point{}, nil, r, func() { shown = true })
	<-f.started
	c.Leave()
	f.release(r, nil)
	c.Wait()
	if n := len(doc.Overlays()); n != 0 {
		t.Errorf("late response after Leave created %d tooltips", n)
	}
	if shown {
		t.Errorf("onShow ran for a response that arrived after Leave")
	}
}

func TestLeaveBeforeFlush(t *testing.T) {
	doc := scene.NewDocument()
	r := FrameRequest{1, 2}
	f := newGatedFetcher(r)
	c := NewController(doc, f)
	shown := false
	c.EnterFrame("2", Point{}, nil, r, func() { shown = true })
	<-f.started
	f.release(r, nil)
	c.wg.Wait()

	// The tooltip is up but its callback is still queued.
	c.Leave()
	doc.Flush()
	if shown {
		t.Errorf("onShow ran after Leave")
	}
}

func TestFetchFailureIsSilent(t *testing.T) {
	doc := scene.NewDocument()
	r := FrameRequest{0, 3}
	f := newGatedFetcher(r)
	c := NewController(doc, f)
	shown := false
	c.EnterFrame("3", Point{}, nil, r, func() { shown = true })
	<-f.started
	f.release(r, errors.New("connection refused"))
	c.Wait()
	if n := len(doc.Overlays()); n != 0 {
		t.Errorf("failed fetch created %d tooltips", n)
	}
	if shown {
		t.Errorf("onShow ran for a failed fetch")
	}
	if s, _ := c.State(); s != Hovered {
		t.Errorf("state after failed fetch = %v, want hovered", s)
	}
}

func TestHTTPFetcher(t *testing.T) {
	var gotUser, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-confidence-frame" {
			http.NotFound(w, r)
			return
		}
		gotUser = r.URL.Query().Get("user")
		gotID = r.Header.Get("X-Request-Id")
		switch gotUser {
		case "2,5":
			fmt.Fprint(w, `{"confidenceFrames": ["AAAA", "BBBB"]}`)
		case "0,0":
			fmt.Fprint(w, `{"confidenceFrames": []}`)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	f := &HTTPFetcher{BaseURL: srv.URL + "/", Client: srv.Client()}
	ctx := context.Background()
	img, err := f.FetchFrame(ctx, FrameRequest{2, 5})
	if err != nil {
		t.Fatal(err)
	}
	if img != "AAAA" {
		t.Errorf("frame = %q, want AAAA", img)
	}
	if gotUser != "2,5" {
		t.Errorf("user parameter = %q, want 2,5", gotUser)
	}
	if _, err := uuid.Parse(gotID); err != nil {
		t.Errorf("X-Request-Id %q is not a UUID: %v", gotID, err)
	}

	if _, err := f.FetchFrame(ctx, FrameRequest{0, 0}); err == nil {
		t.Errorf("empty frame list: want error")
	}
	if _, err := f.FetchFrame(ctx, FrameRequest{9, 9}); err == nil {
		t.Errorf("server error: want error")
	}
}

func TestHTTPFetcherEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"confidenceFrames": [%q]}`, r.URL.Query().Get("user"))
	}))
	defer srv.Close()

	doc := scene.NewDocument()
	c := NewController(doc, &HTTPFetcher{BaseURL: srv.URL})
	c.EnterFrame("k", Point{1, 2}, []string{"Action: left"}, FrameRequest{4, 7}, nil)
	c.Wait()
	ovs := doc.Overlays()
	if len(ovs) != 1 || ovs[0].Image != "4,7" {
		t.Errorf("overlays = %+v", ovs)
	}
}

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		x    float64
		want string
	}{
		{0.7, "0.70"}, {1, "1.00"}, {-0.126, "-0.13"}, {12.3456, "12.35"},
	} {
		if got := Format2(test.x); got != test.want {
			t.Errorf("Format2(%g) = %q, want %q", test.x, got, test.want)
		}
	}
	names := []string{"left", "right"}
	for _, test := range []struct {
		names []string
		i     int
		want  string
	}{
		{names, 1, "right"}, {names, 2, "action 2"}, {nil, 0, "action 0"},
	} {
		if got := CategoryLabel(test.names, test.i); got != test.want {
			t.Errorf("CategoryLabel(%v, %d) = %q, want %q", test.names, test.i, got, test.want)
		}
	}
}
