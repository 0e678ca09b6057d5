// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command drlplot renders the telemetry charts of a reinforcement
// learning run.
//
// drlplot reads chart files from a data directory. Each file
// <name>.json holds one chart:
//
//	{"kind": "bar", "title": "Action probabilities", "data": {...}}
//
// where kind is one of bar, custom-bar, time-bar, histogram, scatter,
// custom-scalar or experimental, and data is the dataset for that
// kind, keyed by step or episode.
//
// "drlplot render" writes every chart to <out_dir>/<name>.svg.
// "drlplot serve" serves the charts over HTTP and answers hover
// queries with the tooltip the chart would show.
//
// Settings come from flags, from DRLPLOT_* environment variables, and
// from drlplot.yaml in the current directory or $HOME/.drlplot.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	log.SetPrefix("drlplot: ")
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cfg := new(config)
	var (
		cfgFile    string
		cpuProfile string
		profile    *os.File
	)

	root := &cobra.Command{
		Use:           "drlplot",
		Short:         "Render reinforcement learning telemetry charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			*cfg = *c

			if cpuProfile != "" {
				profile, err = os.Create(cpuProfile)
				if err != nil {
					return err
				}
				pprof.StartCPUProfile(profile)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if profile != nil {
				pprof.StopCPUProfile()
				profile.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "read settings from `file` (default: drlplot.yaml)")
	flags.StringVar(&cpuProfile, "cpuprofile", "", "write CPU profile to `file`")
	flags.String("data-dir", ".", "read chart files from `dir`")
	flags.String("out-dir", "out", "write rendered charts to `dir`")
	flags.String("base-url", "", "fetch tooltip frames from the server at `url`")
	flags.Float64("width", 0, "chart width in pixels (default: per chart)")
	flags.Float64("height", 0, "chart height in pixels (default: per chart)")
	flags.Float64("bar-height", 0, "height of one bar in the bar charts")
	flags.StringSlice("bounds", []string{"0", "1"}, "value `min,max` of the bar charts")
	flags.Bool("scale-min-max", false, "normalize histograms")
	flags.Bool("no-image-data", false, "show state values instead of frames in state tooltips")
	flags.String("action-meanings", "", "shell-quoted action `names`")
	flags.Int("step", 0, "draw timestep `n`")
	flags.Int("episode", -1, "select episode `n`")
	flags.String("listen", "localhost:8080", "serve on `addr`")
	flags.Float64("smooth", 0, "LOESS `span` for trend lines (0 disables)")
	if err := bindFlags(v, root); err != nil {
		log.Fatal(err)
	}

	root.AddCommand(newRenderCmd(cfg), newServeCmd(cfg))
	return root
}
