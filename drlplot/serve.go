// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/drlvis/drlchart/internal/scene"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve charts over HTTP",
		Long: `Serve answers

	GET /charts/{name}.svg?step=N    the chart drawn at step N
	GET /hover/{name}?x=X&y=Y&step=N the tooltip shown when hovering (X, Y)
	GET /healthz

Chart files are reread on every request, so the data directory may be
updated while the server runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:         cfg.Listen,
				Handler:      newServer(cfg).router(),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 60 * time.Second,
			}
			log.Printf("serving %s on http://%s", cfg.DataDir, cfg.Listen)
			return srv.ListenAndServe()
		},
	}
}

type server struct {
	cfg *config
}

func newServer(cfg *config) *server {
	return &server{cfg: cfg}
}

func (s *server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/charts/{name}.svg", s.handleChart)
	r.Get("/hover/{name}", s.handleHover)
	return r
}

// A hoverResponse reports what a pointer at (X, Y) hit and the
// tooltips it produced.
type hoverResponse struct {
	Chart    string          `json:"chart"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Hit      bool            `json:"hit"`
	Key      string          `json:"key,omitempty"`
	Overlays []scene.Overlay `json:"overlays"`

	// State and Token report the tooltip controller of charts that
	// fetch frames.
	State string `json:"state,omitempty"`
	Token uint64 `json:"token,omitempty"`
}

func (s *server) chartFile(w http.ResponseWriter, r *http.Request) (*chartFile, int, bool) {
	name := chi.URLParam(r, "name")
	files, err := loadCharts(s.cfg.DataDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, 0, false
	}
	var f *chartFile
	for _, cf := range files {
		if cf.Name == name {
			f = cf
		}
	}
	if f == nil {
		writeError(w, http.StatusNotFound, errors.New("no chart "+strconv.Quote(name)))
		return nil, 0, false
	}

	step := s.cfg.Step
	if q := r.URL.Query().Get("step"); q != "" {
		step, err = strconv.Atoi(q)
		if err != nil || step < 0 {
			writeError(w, http.StatusBadRequest, errors.New("bad step "+strconv.Quote(q)))
			return nil, 0, false
		}
	}
	return f, step, true
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	f, step, ok := s.chartFile(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := writeChart(&buf, f, s.cfg, step); err != nil {
		writeError(w, buildStatus(err), err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func (s *server) handleHover(w http.ResponseWriter, r *http.Request) {
	f, step, ok := s.chartFile(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, errors.New("x and y must be numbers"))
		return
	}

	b, err := build(f, s.cfg, step)
	if err != nil {
		writeError(w, buildStatus(err), err)
		return
	}
	resp := hoverResponse{Chart: f.Name, X: x, Y: y}
	if p := b.surface.Pointer(x, y); p != nil {
		resp.Hit, resp.Key = true, p.Key
	}
	b.wait()
	if b.ctl != nil {
		st, _ := b.ctl.State()
		resp.State, resp.Token = st.String(), b.ctl.Token()
	}
	resp.Overlays = b.doc.Overlays()
	if resp.Overlays == nil {
		resp.Overlays = []scene.Overlay{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func buildStatus(err error) int {
	if errors.Is(err, errEmpty) {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
