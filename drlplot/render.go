// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRenderCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "render [chart...]",
		Short: "Render charts to SVG files",
		Long: `Render writes each chart in the data directory to <out_dir>/<name>.svg,
drawn at the configured step. With arguments, only the named charts are
rendered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := loadCharts(cfg.DataDir)
			if err != nil {
				return err
			}
			files, err = selectCharts(files, args)
			if err != nil {
				return err
			}
			n, err := renderAll(cmd.Context(), files, cfg)
			if err != nil {
				return err
			}
			log.Printf("rendered %d charts to %s", n, cfg.OutDir)
			return nil
		},
	}
}

func selectCharts(files []*chartFile, names []string) ([]*chartFile, error) {
	if len(names) == 0 {
		return files, nil
	}
	byName := make(map[string]*chartFile, len(files))
	for _, f := range files {
		byName[f.Name] = f
	}
	var out []*chartFile
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no chart %q", name)
		}
		out = append(out, f)
	}
	return out, nil
}

// renderAll renders files into cfg.OutDir in parallel and returns how
// many were written. Charts with empty datasets are skipped.
func renderAll(ctx context.Context, files []*chartFile, cfg *config) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(cfg.OutDir, 0o777); err != nil {
		return 0, err
	}

	written := make([]bool, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := renderFile(filepath.Join(cfg.OutDir, f.Name+".svg"), f, cfg)
			if errors.Is(err, errEmpty) {
				log.Printf("skipping %s: %v", f.Name, err)
				return nil
			}
			written[i] = err == nil
			return err
		})
	}
	err := g.Wait()

	n := 0
	for _, ok := range written {
		if ok {
			n++
		}
	}
	return n, err
}

func renderFile(path string, f *chartFile, cfg *config) error {
	// Build before creating the file so an empty or invalid chart
	// leaves nothing behind.
	b, err := build(f, cfg, cfg.Step)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	if err := b.surface.WriteSVG(w); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
