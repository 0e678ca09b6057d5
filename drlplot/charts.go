// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/drlvis/drlchart/chart"
	"github.com/drlvis/drlchart/internal/interact"
	"github.com/drlvis/drlchart/internal/scene"
)

// A chartFile is one chart read from the data directory.
type chartFile struct {
	Name  string          `json:"-"`
	Kind  string          `json:"kind"`
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`
}

var errEmpty = errors.New("empty dataset")

// loadCharts reads every *.json chart file in dir, sorted by name.
func loadCharts(dir string) ([]*chartFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	var out []*chartFile
	for _, path := range paths {
		f, err := readChart(path)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func readChart(path string) (*chartFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := new(chartFile)
	if err := json.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	return f, nil
}

// A built chart is one chart mounted in its own document and drawn.
type built struct {
	doc     *scene.Document
	surface *scene.Surface

	// wait blocks until any tooltip fetch the chart started has
	// resolved.
	wait func()

	// ctl is the chart's tooltip controller, if it has one of its own.
	ctl *interact.Controller
}

// build mounts f into a new document and draws it as configured, with
// step selected. Tweens are settled, so the result is the chart's
// final state.
func build(f *chartFile, cfg *config, step int) (*built, error) {
	doc := scene.NewDocument()
	b := &built{doc: doc, wait: func() {}}
	st := cfg.store()
	st.SetCurrentAnimationFrame(step)
	snap := st.Snapshot()
	opts := cfg.options(f.Title)
	id := f.Name

	decode := func(v any) error {
		if err := json.Unmarshal(f.Data, v); err != nil {
			return fmt.Errorf("%s: decoding %s data: %w", f.Name, f.Kind, err)
		}
		return nil
	}

	switch f.Kind {
	case "bar", "custom-bar":
		var data chart.ActionMap
		if err := decode(&data); err != nil {
			return nil, err
		}
		opts.KeyByName = true
		if f.Kind == "bar" {
			c, err := chart.NewBarChart(doc, id, &data, opts, snap, st)
			if err != nil {
				return nil, err
			}
			c.Draw(step)
			b.surface = c.Surface()
		} else {
			c, err := chart.NewCustomBarChart(doc, id, &data, opts)
			if err != nil {
				return nil, err
			}
			c.Draw(step)
			b.surface = c.Surface()
		}

	case "time-bar":
		var data chart.RewardMap
		if err := decode(&data); err != nil {
			return nil, err
		}
		c, err := chart.NewTimeBarChart(doc, id, &data, opts)
		if err != nil {
			return nil, err
		}
		c.Draw(step)
		b.surface = c.Surface()

	case "histogram":
		var data chart.WeightMatrix
		if err := decode(&data); err != nil {
			return nil, err
		}
		c, err := chart.NewHistogram(doc, id, &data, opts, snap)
		if err != nil {
			return nil, err
		}
		if err := c.Update(&data, step, snap); err != nil {
			return nil, err
		}
		b.surface = c.Surface()

	case "scatter", "custom-scalar":
		var data *chart.RewardMap
		if f.Kind == "scatter" {
			data = new(chart.RewardMap)
			if err := decode(data); err != nil {
				return nil, err
			}
		} else {
			var custom chart.CustomChartData
			if err := decode(&custom); err != nil {
				return nil, err
			}
			data = custom.Data
			if opts.Title == "" {
				opts.Title = custom.Title
			}
		}
		c, err := chart.NewScatterPlot(doc, id, data, opts, st)
		if err != nil {
			return nil, err
		}
		c.Draw(snap)
		b.surface = c.Surface()

	case "experimental":
		var ds chart.ExperimentalDataset
		if err := decode(&ds); err != nil {
			return nil, err
		}
		if cfg.BaseURL != "" {
			opts.Fetcher = &interact.HTTPFetcher{BaseURL: cfg.BaseURL}
		}
		c, err := chart.NewExperimentalScatterPlot(doc, id, &ds, opts)
		if err != nil {
			return nil, err
		}
		if err := c.Draw(&ds, cfg.Episode, snap); err != nil {
			return nil, err
		}
		b.surface = c.Surface()
		if ctl := c.Controller(); ctl != nil {
			b.wait, b.ctl = ctl.Wait, ctl
		}

	default:
		return nil, fmt.Errorf("%s: unknown chart kind %q", f.Name, f.Kind)
	}

	if b.surface == nil {
		return nil, fmt.Errorf("%s: %w", f.Name, errEmpty)
	}
	doc.Settle()
	return b, nil
}

// writeChart renders f as an SVG document to w.
func writeChart(w io.Writer, f *chartFile, cfg *config, step int) error {
	b, err := build(f, cfg, step)
	if err != nil {
		return err
	}
	return b.surface.WriteSVG(w)
}
