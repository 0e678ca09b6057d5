// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import "sync"

// NoEpisode is the hovered or selected episode when there is none.
const NoEpisode = -1

// A Snapshot is the application state a chart reads when it draws.
type Snapshot struct {
	SelectedEpisode int
	HoveredEpisode  int

	// ActionMeanings names the actions by index. nil means the
	// environment has no action names.
	ActionMeanings []string

	// ScaleMinMax selects normalized histograms.
	ScaleMinMax bool

	// IsNoImageData means the environment has no frame images, so
	// state tooltips show raw state values instead.
	IsNoImageData bool

	NumberOfActions       int
	CurrentAnimationFrame int
}

// A Sink receives the state changes charts make. It is the only
// channel through which one chart affects another.
type Sink interface {
	SetHoveredEpisode(ep int)
	SetSelectedEpisode(ep int)
	SetNumberOfActions(n int)
}

type nopSink struct{}

func (nopSink) SetHoveredEpisode(int)  {}
func (nopSink) SetSelectedEpisode(int) {}
func (nopSink) SetNumberOfActions(int) {}

func sinkOrNop(s Sink) Sink {
	if s == nil {
		return nopSink{}
	}
	return s
}

// Store is a Sink that also produces Snapshots. It is safe for
// concurrent use.
type Store struct {
	mu sync.Mutex
	s  Snapshot

	// OnChange, if non-nil, is called with the new state after
	// every change. It is called without the lock held.
	OnChange func(Snapshot)
}

// NewStore returns a store with no hovered or selected episode.
func NewStore() *Store {
	return &Store{s: Snapshot{SelectedEpisode: NoEpisode, HoveredEpisode: NoEpisode}}
}

// Snapshot returns a copy of the current state.
func (st *Store) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.copyLocked()
}

func (st *Store) copyLocked() Snapshot {
	s := st.s
	if s.ActionMeanings != nil {
		s.ActionMeanings = append([]string{}, s.ActionMeanings...)
	}
	return s
}

func (st *Store) update(f func(s *Snapshot)) {
	st.mu.Lock()
	f(&st.s)
	s := st.copyLocked()
	cb := st.OnChange
	st.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}

func (st *Store) SetHoveredEpisode(ep int) {
	st.update(func(s *Snapshot) { s.HoveredEpisode = ep })
}

func (st *Store) SetSelectedEpisode(ep int) {
	st.update(func(s *Snapshot) { s.SelectedEpisode = ep })
}

func (st *Store) SetNumberOfActions(n int) {
	st.update(func(s *Snapshot) { s.NumberOfActions = n })
}

// SetActionMeanings sets the action names. nil clears them.
func (st *Store) SetActionMeanings(names []string) {
	if names != nil {
		names = append([]string{}, names...)
	}
	st.update(func(s *Snapshot) { s.ActionMeanings = names })
}

func (st *Store) SetScaleMinMax(v bool) {
	st.update(func(s *Snapshot) { s.ScaleMinMax = v })
}

func (st *Store) SetNoImageData(v bool) {
	st.update(func(s *Snapshot) { s.IsNoImageData = v })
}

func (st *Store) SetCurrentAnimationFrame(f int) {
	st.update(func(s *Snapshot) { s.CurrentAnimationFrame = f })
}
