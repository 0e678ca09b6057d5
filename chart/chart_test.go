// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/drlvis/drlchart/internal/bin"
	"github.com/drlvis/drlchart/internal/interact"
	"github.com/drlvis/drlchart/internal/palette"
	"github.com/drlvis/drlchart/internal/scene"
	"github.com/google/go-cmp/cmp"
)

func init() {
	interact.Warning.SetOutput(io.Discard)
}

func newTestDoc() (*scene.Document, *scene.ManualClock) {
	clock := scene.NewManualClock(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	doc := scene.NewDocument()
	doc.Clock = clock
	return doc, clock
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func overlayLines(doc *scene.Document) [][]string {
	var out [][]string
	for _, o := range doc.Overlays() {
		out = append(out, o.Lines)
	}
	return out
}

func upDown() *ActionMap {
	return NewStepMap(
		[]NamedValue{{"up", 0.7}, {"down", 0.2}},
		[]NamedValue{{"up", 0.1}, {"down", 0.9}},
	)
}

func TestEmptyDatasets(t *testing.T) {
	doc, _ := newTestDoc()
	snap := NewStore().Snapshot()

	bar, err := NewBarChart(doc, "bar", nil, Options{}, snap, nil)
	if err != nil {
		t.Fatal(err)
	}
	bar.Draw(0)
	custom, err := NewCustomBarChart(doc, "custom", &ActionMap{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	custom.Draw(0)
	tb, err := NewTimeBarChart(doc, "timebar", nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	tb.Draw(0)
	if err := tb.UpdateData(NewStepMap(EpisodeValuePair{1, 1}), 0); err != nil {
		t.Fatal(err)
	}
	h, err := NewHistogram(doc, "hist", nil, Options{}, snap)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Update(nil, 0, snap); err != nil {
		t.Fatal(err)
	}
	sp, err := NewScatterPlot(doc, "scatter", nil, Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	sp.Draw(snap)
	ex, err := NewExperimentalScatterPlot(doc, "states", &ExperimentalDataset{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := ex.Draw(nil, 0, snap); err != nil {
		t.Fatal(err)
	}

	if n := doc.Surfaces(); n != 0 {
		t.Errorf("empty charts mounted %d surfaces", n)
	}
	for _, s := range []*scene.Surface{bar.Surface(), custom.Surface(), tb.Surface(), h.Surface(), sp.Surface(), ex.Surface()} {
		if s != nil {
			t.Errorf("empty chart has a surface")
		}
	}
}

func TestValidationErrors(t *testing.T) {
	doc, _ := newTestDoc()
	snap := NewStore().Snapshot()

	noStep0 := &ActionMap{}
	noStep0.Set(1, []NamedValue{{"up", 1}})
	dup := NewStepMap([]NamedValue{{"up", 1}, {"up", 2}})
	nan := NewStepMap(EpisodeValuePair{math.NaN(), 0})
	twoWeights := NewStepMap([]WeightSample{{"a": 1, "b": 2}})
	shortSample := &ExperimentalDataset{Values: []SpatialSample{{1, 2, 3}}}
	badCategory := &ExperimentalDataset{Values: []SpatialSample{{1, 2, 1.5, 1}}}

	for _, test := range []struct {
		name string
		f    func() error
		want ValidationError
	}{
		{"bar missing step 0", func() error {
			_, err := NewBarChart(doc, "a", noStep0, Options{}, snap, nil)
			return err
		}, ValidationError{0, -1, "missing step 0"}},
		{"custom bar duplicate", func() error {
			_, err := NewCustomBarChart(doc, "b", dup, Options{})
			return err
		}, ValidationError{0, 1, `duplicate name "up"`}},
		{"time bar NaN", func() error {
			_, err := NewTimeBarChart(doc, "c", nan, Options{})
			return err
		}, ValidationError{0, -1, "value pair [NaN 0] is not finite"}},
		{"scatter NaN", func() error {
			_, err := NewScatterPlot(doc, "d", nan, Options{}, nil)
			return err
		}, ValidationError{0, -1, "value pair [NaN 0] is not finite"}},
		{"histogram two weights", func() error {
			_, err := NewHistogram(doc, "e", twoWeights, Options{}, snap)
			return err
		}, ValidationError{0, 0, "weight sample has 2 entries, want 1"}},
		{"short spatial sample", func() error {
			_, err := NewExperimentalScatterPlot(doc, "f", shortSample, Options{})
			return err
		}, ValidationError{-1, 0, "spatial sample has 3 values, want at least 4"}},
		{"fractional category", func() error {
			_, err := NewExperimentalScatterPlot(doc, "g", badCategory, Options{})
			return err
		}, ValidationError{-1, 0, "category 1.5 is not a non-negative integer"}},
	} {
		err := test.f()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: got error %v, want a ValidationError", test.name, err)
			continue
		}
		if diff := cmp.Diff(test.want, *verr); diff != "" {
			t.Errorf("%s: error mismatch (-want +got):\n%s", test.name, diff)
		}
	}
	if n := doc.Surfaces(); n != 0 {
		t.Errorf("invalid charts mounted %d surfaces", n)
	}
}

func TestBarChart(t *testing.T) {
	doc, clock := newTestDoc()
	store := NewStore()
	c, err := NewBarChart(doc, "actions", upDown(), Options{Title: "Actions", Bounds: [2]float64{0, 1}}, store.Snapshot(), store)
	if err != nil {
		t.Fatal(err)
	}
	if got := store.Snapshot().NumberOfActions; got != 2 {
		t.Errorf("NumberOfActions = %d, want 2", got)
	}
	if got := c.Surface().Title(); got != "Actions" {
		t.Errorf("title = %q, want %q", got, "Actions")
	}
	if w, h := c.Surface().ContentSize(); w != 300 || h != 60 {
		t.Errorf("content size = %v×%v, want 300×60", w, h)
	}

	c.Draw(0)
	up := c.bars.Lookup("0")
	clock.Advance(scene.DefaultDuration / 2)
	if w := up.Num("width"); !(w > 0 && w < 210) {
		t.Errorf("mid-tween width = %v, want in (0, 210)", w)
	}
	doc.Settle()
	if w := up.Num("width"); !near(w, 210) {
		t.Errorf("up width = %v, want 210", w)
	}
	if w := c.bars.Lookup("1").Num("width"); !near(w, 60) {
		t.Errorf("down width = %v, want 60", w)
	}
	if got, want := up.Paint("fill"), palette.At(0); got != want {
		t.Errorf("up fill = %v, want %v", got, want)
	}
	if got, want := c.yAxis.labelTexts(), []string{"up", "down"}; !cmp.Equal(got, want) {
		t.Errorf("y axis labels = %v, want %v", got, want)
	}

	// Missing steps leave the chart alone.
	c.Draw(7)
	if w := up.Target("width"); !near(w, 210) {
		t.Errorf("after drawing a missing step, up width = %v, want 210", w)
	}

	m := c.Surface().Margin
	p := c.Surface().Pointer(m.Left+10, m.Top+up.Num("y")+1)
	if p != up {
		t.Fatalf("pointer hit %v, want the up bar", p)
	}
	if got := up.Paint("stroke"); got != black {
		t.Errorf("hovered stroke = %v, want black", got)
	}
	if diff := cmp.Diff([][]string{{"0.70"}}, overlayLines(doc)); diff != "" {
		t.Errorf("tooltip mismatch (-want +got):\n%s", diff)
	}
	c.Surface().Pointer(0, 0)
	if got := up.Paint("stroke"); got != palette.None {
		t.Errorf("stroke after leave = %v, want none", got)
	}
	if n := len(doc.Overlays()); n != 0 {
		t.Errorf("%d overlays after leave, want 0", n)
	}
}

func TestBarChartActionMeanings(t *testing.T) {
	doc, _ := newTestDoc()
	snap := NewStore().Snapshot()
	snap.ActionMeanings = []string{"NOOP"}
	c, err := NewBarChart(doc, "actions", upDown(), Options{Bounds: [2]float64{0, 1}}, snap, nil)
	if err != nil {
		t.Fatal(err)
	}
	c.Draw(0)
	if got, want := c.yAxis.labelTexts(), []string{"NOOP", "action 1"}; !cmp.Equal(got, want) {
		t.Errorf("y axis labels = %v, want %v", got, want)
	}
}

func TestBarChartIdentity(t *testing.T) {
	data := NewStepMap(
		[]NamedValue{{"a", 0.2}, {"b", 0.8}},
		[]NamedValue{{"b", 0.4}, {"a", 0.6}},
	)
	for _, keyed := range []bool{false, true} {
		doc, _ := newTestDoc()
		c, err := NewBarChart(doc, "actions", data, Options{Bounds: [2]float64{0, 1}, Width: 100, KeyByName: keyed}, NewStore().Snapshot(), nil)
		if err != nil {
			t.Fatal(err)
		}
		c.Draw(0)
		first := c.bars.Primitives()[0]
		c.Draw(1)
		doc.Settle()

		if got := c.bars.Len(); got != 2 {
			t.Errorf("keyed=%v: %d bars, want 2", keyed, got)
		}
		// The primitive created for "a" keeps its color either
		// way; what it shows after the reorder differs.
		if got := first.Paint("fill"); got != palette.At(0) {
			t.Errorf("keyed=%v: first bar fill = %v, want %v", keyed, got, palette.At(0))
		}
		want := 40.0
		if keyed {
			want = 60
		}
		if got := first.Num("width"); !near(got, want) {
			t.Errorf("keyed=%v: first bar width = %v, want %v", keyed, got, want)
		}
	}
}

func TestCustomBarChart(t *testing.T) {
	data := NewStepMap(
		[]NamedValue{{"3", 0.5}},
		[]NamedValue{{"3", 0.1}, {"loss", 0.9}},
	)
	doc, _ := newTestDoc()
	c, err := NewCustomBarChart(doc, "custom", data, Options{Bounds: [2]float64{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.y.Keys(), []string{"3", "loss"}; !cmp.Equal(got, want) {
		t.Errorf("domain = %v, want %v", got, want)
	}
	if w, _ := c.Surface().ContentSize(); w != 240 {
		t.Errorf("width = %v, want 240", w)
	}
	c.Draw(1)
	doc.Settle()
	if got, want := c.bars.Lookup("0").Paint("fill"), palette.At(3); got != want {
		t.Errorf(`"3" fill = %v, want %v`, got, want)
	}
	if got, want := c.bars.Lookup("1").Paint("fill"), palette.At(1); got != want {
		t.Errorf(`"loss" fill = %v, want %v`, got, want)
	}
	if w := c.bars.Lookup("1").Num("width"); !near(w, 216) {
		t.Errorf(`"loss" width = %v, want 216`, w)
	}
}

func TestTimeBarChart(t *testing.T) {
	data := NewStepMap(
		EpisodeValuePair{1, 1},
		EpisodeValuePair{2, 1.5},
		EpisodeValuePair{0, 2},
		EpisodeValuePair{4, 2.5},
		EpisodeValuePair{3, 3},
	)
	doc, _ := newTestDoc()
	c, err := NewTimeBarChart(doc, "rewards", data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	c.Draw(2)

	if got, want := c.y.Domain, [2]float64{0, 4}; got != want {
		t.Errorf("y domain = %v, want %v", got, want)
	}
	sel := c.bars.Lookup("2")
	if got := sel.Paint("fill"); got != palette.At(0) {
		t.Errorf("selected fill = %v, want %v", got, palette.At(0))
	}
	if y, h := sel.Num("y"), sel.Num("height"); !near(y, 195) || !near(h, 5) {
		t.Errorf("zero bar y, height = %v, %v, want 195, 5", y, h)
	}
	if x := sel.Num("x"); !near(x, 152) {
		t.Errorf("selected x = %v, want 152", x)
	}
	other := c.bars.Lookup("3")
	if got := other.Paint("fill"); got != palette.None {
		t.Errorf("unselected fill = %v, want none", got)
	}
	if x := other.Num("x"); x != 0 {
		t.Errorf("unselected x = %v, want 0", x)
	}
	if !c.fitter.Created() {
		t.Errorf("trend line not drawn")
	}
	if got, want := c.xAxis.labelTexts(), []string{"0", "1", "2", "3", "4"}; !cmp.Equal(got, want) {
		t.Errorf("x axis labels = %v, want %v", got, want)
	}

	// Hover the selected step's bar.
	c.Draw(3)
	bar := c.bars.Lookup("3")
	m := c.Surface().Margin
	if p := c.Surface().Pointer(m.Left+230, m.Top+100); p != bar {
		t.Fatalf("pointer hit %v, want step 3's bar", p)
	}
	if w, x := bar.Num("width"), bar.Num("x"); !near(w, 228) || !near(x, 114) {
		t.Errorf("hovered width, x = %v, %v, want 228, 114", w, x)
	}
	if diff := cmp.Diff([][]string{{"Value: 4.00", "Timestep: 3"}}, overlayLines(doc)); diff != "" {
		t.Errorf("tooltip mismatch (-want +got):\n%s", diff)
	}
	c.Surface().Pointer(0, 0)
	if w, x := bar.Num("width"), bar.Num("x"); !near(w, 76) || !near(x, 228) {
		t.Errorf("after leave width, x = %v, %v, want 76, 228", w, x)
	}
}

func TestTimeBarChartNegative(t *testing.T) {
	data := NewStepMap(EpisodeValuePair{-2, 0}, EpisodeValuePair{0, 0}, EpisodeValuePair{0, 0})
	doc, _ := newTestDoc()
	c, err := NewTimeBarChart(doc, "rewards", data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	c.Draw(1)
	if got, want := c.y.Domain, [2]float64{-2, 0}; got != want {
		t.Errorf("y domain = %v, want %v", got, want)
	}
	// A zero domain maximum means zero bars get no stub.
	bar := c.bars.Lookup("1")
	if y, h := bar.Num("y"), bar.Num("height"); y != 0 || h != 200 {
		t.Errorf("zero bar y, height = %v, %v, want 0, 200", y, h)
	}
}

func TestHistogram(t *testing.T) {
	ws := func(xs ...float64) []WeightSample {
		var out []WeightSample
		for _, x := range xs {
			out = append(out, WeightSample{"w": x})
		}
		return out
	}
	matrix := NewStepMap(ws(0, 1, 2, 3, 4, 5, 6, 7), ws(0, 0, 0, 0, 0, 0, 0, 7))

	store := NewStore()
	doc, _ := newTestDoc()
	c, err := NewHistogram(doc, "weights", matrix, Options{}, store.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	doc.Settle()
	if c.Mode() != bin.RawCount {
		t.Errorf("mode = %v, want raw", c.Mode())
	}
	if n := len(c.Buckets()); n != 4 {
		t.Fatalf("%d buckets, want 4", n)
	}
	for _, p := range c.bars.Primitives() {
		if w := p.Num("width"); !near(w, 380) {
			t.Errorf("raw bar %s width = %v, want 380", p.Key, w)
		}
	}

	store.SetScaleMinMax(true)
	if err := c.Update(matrix, 0, store.Snapshot()); err != nil {
		t.Fatal(err)
	}
	doc.Settle()
	if c.Mode() != bin.Normalized {
		t.Errorf("mode = %v, want normalized", c.Mode())
	}
	for _, p := range c.bars.Primitives() {
		if w := p.Num("width"); !near(w, 95) {
			t.Errorf("normalized bar %s width = %v, want 95", p.Key, w)
		}
	}

	// A matrix without step 0 is ignored; frame 1 of the old one
	// is drawn.
	bad := &WeightMatrix{}
	bad.Set(1, ws(9))
	if err := c.Update(bad, 1, store.Snapshot()); err != nil {
		t.Fatal(err)
	}
	var counts []int
	for _, b := range c.Buckets() {
		counts = append(counts, b.Count)
	}
	if diff := cmp.Diff([]int{7, 0, 0, 1}, counts); diff != "" {
		t.Errorf("frame 1 counts mismatch (-want +got):\n%s", diff)
	}

	// A missing frame draws nothing.
	before := c.Buckets()
	if err := c.Update(matrix, 5, store.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(before, c.Buckets()) {
		t.Errorf("missing frame changed buckets")
	}
}

func TestScatterPlot(t *testing.T) {
	data := NewStepMap(
		EpisodeValuePair{10, 10},
		EpisodeValuePair{20, 15},
		EpisodeValuePair{40, 25},
		EpisodeValuePair{30, 30},
	)
	store := NewStore()
	doc, _ := newTestDoc()
	c, err := NewScatterPlot(doc, "episodes", data, Options{Title: "Reward"}, store)
	if err != nil {
		t.Fatal(err)
	}
	c.Draw(store.Snapshot())

	dot := c.dots.Lookup("2")
	if cx, cy := dot.Num("cx"), dot.Num("cy"); !near(cx, 275) || !near(cy, 0) {
		t.Errorf("dot 2 at %v,%v, want 275,0", cx, cy)
	}
	if r := dot.Num("r"); r != dotRadius {
		t.Errorf("r = %v, want %v", r, dotRadius)
	}

	m := c.Surface().Margin
	if p := c.Surface().Pointer(m.Left+275, m.Top+1); p != dot {
		t.Fatalf("pointer hit %v, want dot 2", p)
	}
	if got := store.Snapshot().HoveredEpisode; got != 2 {
		t.Errorf("hovered episode = %d, want 2", got)
	}
	if diff := cmp.Diff([][]string{{"40.00"}}, overlayLines(doc)); diff != "" {
		t.Errorf("tooltip mismatch (-want +got):\n%s", diff)
	}
	if !c.Surface().Click(m.Left+275, m.Top+1) {
		t.Errorf("click not handled")
	}
	if got := store.Snapshot().SelectedEpisode; got != 2 {
		t.Errorf("selected episode = %d, want 2", got)
	}

	c.Draw(store.Snapshot())
	if r := dot.Num("r"); r != hoveredRadius {
		t.Errorf("hovered r = %v, want %v", r, hoveredRadius)
	}
	if got := dot.Paint("fill"); got != palette.At(2) {
		t.Errorf("selected fill = %v, want %v", got, palette.At(2))
	}
	if got := c.dots.Lookup("0").Paint("fill"); got != palette.At(0) {
		t.Errorf("unselected fill = %v, want %v", got, palette.At(0))
	}

	c.Surface().Pointer(0, 0)
	if got := store.Snapshot().HoveredEpisode; got != NoEpisode {
		t.Errorf("hovered episode after leave = %d, want none", got)
	}
	if got := dot.Num("opacity"); got != 0.8 {
		t.Errorf("opacity after leave = %v, want 0.8", got)
	}
	if n := len(doc.Overlays()); n != 0 {
		t.Errorf("%d overlays after leave, want 0", n)
	}
}

type fakeFetcher struct {
	reqs chan interact.FrameRequest
}

func (f *fakeFetcher) FetchFrame(ctx context.Context, req interact.FrameRequest) (string, error) {
	f.reqs <- req
	return "aW1n", nil
}

type failingFetcher struct{}

func (failingFetcher) FetchFrame(ctx context.Context, req interact.FrameRequest) (string, error) {
	return "", errors.New("connection refused")
}

// gatedFetcher answers each request only when the test releases it.
type gatedFetcher struct {
	started chan interact.FrameRequest
	gates   map[interact.FrameRequest]chan error
}

func newGatedFetcher(reqs ...interact.FrameRequest) *gatedFetcher {
	f := &gatedFetcher{
		started: make(chan interact.FrameRequest, len(reqs)),
		gates:   make(map[interact.FrameRequest]chan error),
	}
	for _, r := range reqs {
		f.gates[r] = make(chan error, 1)
	}
	return f
}

func (f *gatedFetcher) FetchFrame(ctx context.Context, req interact.FrameRequest) (string, error) {
	f.started <- req
	if err := <-f.gates[req]; err != nil {
		return "", err
	}
	return "frame", nil
}

func states() *ExperimentalDataset {
	return &ExperimentalDataset{Values: []SpatialSample{
		{0, 0, 1, 0.5, 0.25, -1},
		{10, 10, 2, 0.9},
	}}
}

func TestExperimentalStateValues(t *testing.T) {
	doc, _ := newTestDoc()
	c, err := NewExperimentalScatterPlot(doc, "states", states(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	snap := NewStore().Snapshot()
	snap.IsNoImageData = true
	snap.ActionMeanings = []string{"NOOP", "FIRE"}
	if err := c.Draw(states(), 4, snap); err != nil {
		t.Fatal(err)
	}
	doc.Settle()

	dot := c.dots.Lookup("0")
	if got, want := dot.Paint("fill"), palette.At(1); got != want {
		t.Errorf("fill = %v, want %v", got, want)
	}
	if got := dot.Num("fill-opacity"); got != 0.5 {
		t.Errorf("fill-opacity = %v, want 0.5", got)
	}
	if cx, cy := dot.Num("cx"), dot.Num("cy"); cx != 0 || cy != 600 {
		t.Errorf("dot 0 at %v,%v, want 0,600", cx, cy)
	}

	m := c.Surface().Margin
	if p := c.Surface().Pointer(m.Left+1, m.Top+599); p != dot {
		t.Fatalf("pointer hit %v, want dot 0", p)
	}
	want := [][]string{{
		"Confidence: 0.50",
		"Action: FIRE",
		"State Values:",
		"state value 0: 0.25",
		"state value 1: -1.00",
	}}
	if diff := cmp.Diff(want, overlayLines(doc)); diff != "" {
		t.Errorf("tooltip mismatch (-want +got):\n%s", diff)
	}
	if r := dot.Num("r"); r != stateRadius*stateHoverFactor {
		t.Errorf("hovered r = %v, want %v", r, stateRadius*stateHoverFactor)
	}

	c.Surface().Pointer(-100, -100)
	if r := dot.Num("r"); r != stateRadius {
		t.Errorf("r after leave = %v, want %v", r, stateRadius)
	}
	if n := len(doc.Overlays()); n != 0 {
		t.Errorf("%d overlays after leave, want 0", n)
	}
}

func TestExperimentalFrame(t *testing.T) {
	doc, _ := newTestDoc()
	f := &fakeFetcher{reqs: make(chan interact.FrameRequest, 1)}
	c, err := NewExperimentalScatterPlot(doc, "states", states(), Options{Fetcher: f})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Draw(states(), 4, NewStore().Snapshot()); err != nil {
		t.Fatal(err)
	}
	doc.Settle()

	m := c.Surface().Margin
	dot := c.dots.Lookup("1")
	if p := c.Surface().Pointer(m.Left+899, m.Top+1); p != dot {
		t.Fatalf("pointer hit %v, want dot 1", p)
	}
	c.Controller().Wait()

	if got, want := <-f.reqs, (interact.FrameRequest{Episode: 4, Index: 1}); got != want {
		t.Errorf("fetched %+v, want %+v", got, want)
	}
	ovs := doc.Overlays()
	if len(ovs) != 1 {
		t.Fatalf("%d overlays, want 1", len(ovs))
	}
	if diff := cmp.Diff([]string{"Confidence: 0.90", "Action: action 2"}, ovs[0].Lines); diff != "" {
		t.Errorf("tooltip mismatch (-want +got):\n%s", diff)
	}
	if ovs[0].Image != "aW1n" {
		t.Errorf("image = %q, want %q", ovs[0].Image, "aW1n")
	}
	if r := dot.Num("r"); r != frameRadius {
		t.Errorf("hovered r = %v, want %v", r, frameRadius)
	}
}

func TestExperimentalFrameFailure(t *testing.T) {
	doc, _ := newTestDoc()
	c, err := NewExperimentalScatterPlot(doc, "states", states(), Options{Fetcher: failingFetcher{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Draw(states(), 4, NewStore().Snapshot()); err != nil {
		t.Fatal(err)
	}
	doc.Settle()

	m := c.Surface().Margin
	dot := c.dots.Lookup("1")
	if p := c.Surface().Pointer(m.Left+899, m.Top+1); p != dot {
		t.Fatalf("pointer hit %v, want dot 1", p)
	}
	c.Controller().Wait()

	// A failed fetch leaves the chart as it was before the hover.
	if n := len(doc.Overlays()); n != 0 {
		t.Errorf("%d overlays after a failed fetch, want 0", n)
	}
	for _, d := range c.dots.Primitives() {
		if r := d.Num("r"); r != stateRadius {
			t.Errorf("dot %s r = %v after a failed fetch, want %v", d.Key, r, stateRadius)
		}
	}
}

func TestExperimentalFrameLatestHover(t *testing.T) {
	doc, _ := newTestDoc()
	r0, r1 := interact.FrameRequest{Episode: 4, Index: 0}, interact.FrameRequest{Episode: 4, Index: 1}
	f := newGatedFetcher(r0, r1)
	c, err := NewExperimentalScatterPlot(doc, "states", states(), Options{Fetcher: f})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Draw(states(), 4, NewStore().Snapshot()); err != nil {
		t.Fatal(err)
	}
	doc.Settle()

	m := c.Surface().Margin
	dot0, dot1 := c.dots.Lookup("0"), c.dots.Lookup("1")
	if p := c.Surface().Pointer(m.Left+1, m.Top+599); p != dot0 {
		t.Fatalf("pointer hit %v, want dot 0", p)
	}
	<-f.started
	if r := dot0.Num("r"); r != stateRadius {
		t.Errorf("dot 0 r = %v before its frame arrived, want %v", r, stateRadius)
	}
	if p := c.Surface().Pointer(m.Left+899, m.Top+1); p != dot1 {
		t.Fatalf("pointer hit %v, want dot 1", p)
	}
	<-f.started

	// The second hover's frame arrives first; the first one's arrives late.
	f.gates[r1] <- nil
	f.gates[r0] <- nil
	c.Controller().Wait()

	ovs := doc.Overlays()
	if len(ovs) != 1 {
		t.Fatalf("%d overlays, want 1", len(ovs))
	}
	if diff := cmp.Diff([]string{"Confidence: 0.90", "Action: action 2"}, ovs[0].Lines); diff != "" {
		t.Errorf("tooltip mismatch (-want +got):\n%s", diff)
	}
	if r := dot1.Num("r"); r != frameRadius {
		t.Errorf("dot 1 r = %v, want %v", r, frameRadius)
	}
	if r := dot0.Num("r"); r != stateRadius {
		t.Errorf("dot 0 r = %v, want %v", r, stateRadius)
	}
}
