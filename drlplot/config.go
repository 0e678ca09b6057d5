// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drlvis/drlchart/chart"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configKeys are the settings drlplot reads. Each has a flag of the
// same name with dashes for underscores.
var configKeys = []string{
	"data_dir", "out_dir", "base_url",
	"width", "height", "bar_height", "bounds",
	"scale_min_max", "no_image_data", "action_meanings",
	"step", "episode", "listen", "smooth",
}

type config struct {
	DataDir        string    `mapstructure:"data_dir"`
	OutDir         string    `mapstructure:"out_dir"`
	BaseURL        string    `mapstructure:"base_url"`
	Width          float64   `mapstructure:"width"`
	Height         float64   `mapstructure:"height"`
	BarHeight      float64   `mapstructure:"bar_height"`
	Bounds         []float64 `mapstructure:"bounds"`
	ScaleMinMax    bool      `mapstructure:"scale_min_max"`
	NoImageData    bool      `mapstructure:"no_image_data"`
	ActionMeanings string    `mapstructure:"action_meanings"`
	Step           int       `mapstructure:"step"`
	Episode        int       `mapstructure:"episode"`
	Listen         string    `mapstructure:"listen"`
	Smooth         float64   `mapstructure:"smooth"`

	meanings []string
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for _, k := range configKeys {
		name := strings.ReplaceAll(k, "_", "-")
		f := cmd.PersistentFlags().Lookup(name)
		if f == nil {
			return fmt.Errorf("no flag for setting %s", k)
		}
		if err := v.BindPFlag(k, f); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig reads settings from v's flags, the environment, and the
// config file. If path is empty, drlplot.yaml is looked for in the
// current directory and $HOME/.drlplot, and a missing file is not an
// error.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	v.SetEnvPrefix("DRLPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("drlplot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".drlplot"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := new(config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if len(cfg.Bounds) != 2 || cfg.Bounds[0] >= cfg.Bounds[1] {
		return nil, fmt.Errorf("bounds must be min,max with min < max, got %v", cfg.Bounds)
	}
	if cfg.ActionMeanings != "" {
		names, err := shellquote.Split(cfg.ActionMeanings)
		if err != nil {
			return nil, fmt.Errorf("parsing action_meanings: %w", err)
		}
		cfg.meanings = names
	}
	return cfg, nil
}

// options returns the chart options for a chart titled title.
func (c *config) options(title string) chart.Options {
	return chart.Options{
		Title:     title,
		Width:     c.Width,
		Height:    c.Height,
		BarHeight: c.BarHeight,
		Bounds:    [2]float64{c.Bounds[0], c.Bounds[1]},
		Smooth:    c.Smooth,
	}
}

// store returns a fresh application state seeded from c.
func (c *config) store() *chart.Store {
	st := chart.NewStore()
	st.SetActionMeanings(c.meanings)
	st.SetScaleMinMax(c.ScaleMinMax)
	st.SetNoImageData(c.NoImageData)
	st.SetSelectedEpisode(c.Episode)
	st.SetCurrentAnimationFrame(c.Step)
	return st
}
