// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// A StepMap maps non-negative step or episode indexes to values.
// Iteration is in ascending step order. Steps may be sparse.
//
// A nil *StepMap is an empty map.
type StepMap[T any] struct {
	steps []int
	vals  map[int]T
}

// NewStepMap returns a StepMap holding vs at steps 0, 1, ....
func NewStepMap[T any](vs ...T) *StepMap[T] {
	m := &StepMap[T]{}
	for i, v := range vs {
		m.Set(i, v)
	}
	return m
}

// Len returns the number of steps in m.
func (m *StepMap[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.steps)
}

// Get returns the value at step.
func (m *StepMap[T]) Get(step int) (T, bool) {
	var zero T
	if m == nil {
		return zero, false
	}
	v, ok := m.vals[step]
	return v, ok
}

// Has reports whether m has a value at step.
func (m *StepMap[T]) Has(step int) bool {
	_, ok := m.Get(step)
	return ok
}

// Set sets the value at step, which must be non-negative.
func (m *StepMap[T]) Set(step int, v T) {
	if step < 0 {
		panic("negative step " + strconv.Itoa(step))
	}
	if m.vals == nil {
		m.vals = make(map[int]T)
	}
	if _, ok := m.vals[step]; !ok {
		i := sort.SearchInts(m.steps, step)
		m.steps = append(m.steps, 0)
		copy(m.steps[i+1:], m.steps[i:])
		m.steps[i] = step
	}
	m.vals[step] = v
}

// Steps returns the steps of m in ascending order. The caller must
// not modify the result.
func (m *StepMap[T]) Steps() []int {
	if m == nil {
		return nil
	}
	return m.steps
}

// Values returns the values of m in step order.
func (m *StepMap[T]) Values() []T {
	out := make([]T, m.Len())
	for i, s := range m.Steps() {
		out[i] = m.vals[s]
	}
	return out
}

// Each calls f for every step of m in ascending order.
func (m *StepMap[T]) Each(f func(step int, v T)) {
	for _, s := range m.Steps() {
		f(s, m.vals[s])
	}
}

// MarshalJSON encodes m as an object keyed by decimal step.
func (m *StepMap[T]) MarshalJSON() ([]byte, error) {
	obj := make(map[string]T, m.Len())
	m.Each(func(step int, v T) {
		obj[strconv.Itoa(step)] = v
	})
	return json.Marshal(obj)
}

// UnmarshalJSON decodes an object keyed by decimal step.
func (m *StepMap[T]) UnmarshalJSON(data []byte) error {
	var obj map[string]T
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*m = StepMap[T]{}
	for k, v := range obj {
		step, err := strconv.Atoi(k)
		if err != nil || step < 0 {
			return fmt.Errorf("bad step key %q", k)
		}
		m.Set(step, v)
	}
	return nil
}

// A NamedValue is one action's or metric's value at a step.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// An EpisodeValuePair is a plotted primary value and a secondary
// value, such as a running mean, drawn as the trend line.
type EpisodeValuePair [2]float64

func (p EpisodeValuePair) Primary() float64 { return p[0] }
func (p EpisodeValuePair) Secondary() float64 { return p[1] }

// A WeightSample holds one network weight under its parameter name.
type WeightSample map[string]float64

// Sole returns the sample's only value. It fails if the sample does
// not have exactly one entry.
func (w WeightSample) Sole() (float64, error) {
	if len(w) != 1 {
		return 0, fmt.Errorf("weight sample has %d entries, want 1", len(w))
	}
	for _, v := range w {
		return v, nil
	}
	panic("unreachable")
}

// A SpatialSample is a projected state: x, y, category (action)
// index, opacity (confidence), then the raw state values.
type SpatialSample []float64

func (s SpatialSample) X() float64 { return s[0] }
func (s SpatialSample) Y() float64 { return s[1] }
func (s SpatialSample) Category() int { return int(s[2]) }
func (s SpatialSample) Opacity() float64 { return s[3] }
func (s SpatialSample) Extra() []float64 { return s[4:] }

// ExperimentalDataset is a state-space projection for one episode.
// Only Values is drawn.
type ExperimentalDataset struct {
	MinEpisode int             `json:"minEpisode"`
	MaxEpisode int             `json:"maxEpisode"`
	Step       int             `json:"step"`
	MinState   []float64       `json:"minState"`
	MaxState   []float64       `json:"maxState"`
	Values     []SpatialSample `json:"values"`
}

type (
	RewardMap    = StepMap[EpisodeValuePair]
	ActionMap    = StepMap[[]NamedValue]
	WeightMatrix = StepMap[[]WeightSample]
)

// CustomChartData is a user-logged scalar series.
type CustomChartData struct {
	Title  string     `json:"title"`
	LogTag string     `json:"logTag"`
	Data   *RewardMap `json:"data"`
}

// A ValidationError reports a malformed sample.
type ValidationError struct {
	Step   int // -1 if not step-indexed
	Index  int // -1 for the step as a whole
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Step < 0:
		return fmt.Sprintf("sample %d: %s", e.Index, e.Reason)
	case e.Index < 0:
		return fmt.Sprintf("step %d: %s", e.Step, e.Reason)
	}
	return fmt.Sprintf("step %d, sample %d: %s", e.Step, e.Index, e.Reason)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// requireStep0 checks that a non-empty map has step 0, which the bar
// charts and histogram take their categories from.
func requireStep0[T any](m *StepMap[T]) error {
	if m.Len() > 0 && !m.Has(0) {
		return &ValidationError{Step: 0, Index: -1, Reason: "missing step 0"}
	}
	return nil
}

func validateActions(m *ActionMap) error {
	if err := requireStep0(m); err != nil {
		return err
	}
	var err error
	m.Each(func(step int, vs []NamedValue) {
		if err != nil {
			return
		}
		seen := make(map[string]bool, len(vs))
		for i, v := range vs {
			if seen[v.Name] {
				err = &ValidationError{step, i, fmt.Sprintf("duplicate name %q", v.Name)}
				return
			}
			seen[v.Name] = true
			if !finite(v.Value) {
				err = &ValidationError{step, i, fmt.Sprintf("%s value %v is not finite", v.Name, v.Value)}
				return
			}
		}
	})
	return err
}

func validateRewards(m *RewardMap) error {
	var err error
	m.Each(func(step int, p EpisodeValuePair) {
		if err == nil && (!finite(p[0]) || !finite(p[1])) {
			err = &ValidationError{step, -1, fmt.Sprintf("value pair %v is not finite", [2]float64(p))}
		}
	})
	return err
}

func validateWeights(m *WeightMatrix) error {
	if err := requireStep0(m); err != nil {
		return err
	}
	var err error
	m.Each(func(step int, ws []WeightSample) {
		for i, w := range ws {
			if err != nil {
				return
			}
			v, e := w.Sole()
			if e != nil {
				err = &ValidationError{step, i, e.Error()}
			} else if !finite(v) {
				err = &ValidationError{step, i, fmt.Sprintf("weight %v is not finite", v)}
			}
		}
	})
	return err
}

func validateSpatial(ds *ExperimentalDataset) error {
	for i, s := range ds.Values {
		if len(s) < 4 {
			return &ValidationError{-1, i, fmt.Sprintf("spatial sample has %d values, want at least 4", len(s))}
		}
		for _, x := range s[:4] {
			if !finite(x) {
				return &ValidationError{-1, i, fmt.Sprintf("spatial sample %v is not finite", []float64(s[:4]))}
			}
		}
		if s[2] < 0 || s[2] != math.Trunc(s[2]) {
			return &ValidationError{-1, i, fmt.Sprintf("category %v is not a non-negative integer", s[2])}
		}
	}
	return nil
}

// soleValues returns the sole value of each weight sample. ws must
// have been validated.
func soleValues(ws []WeightSample) []float64 {
	xs := make([]float64, len(ws))
	for i, w := range ws {
		xs[i], _ = w.Sole()
	}
	return xs
}
