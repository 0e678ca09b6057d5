// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// A FrameRequest identifies one rendered environment frame.
type FrameRequest struct {
	Episode, Index int
}

// A FrameFetcher retrieves environment frames as base64-encoded JPEG.
type FrameFetcher interface {
	FetchFrame(ctx context.Context, req FrameRequest) (string, error)
}

// HTTPFetcher fetches frames from a frame server.
type HTTPFetcher struct {
	// BaseURL is the server root, without a trailing slash.
	BaseURL string

	// Client is the HTTP client to use. If nil,
	// http.DefaultClient is used.
	Client *http.Client
}

type frameResponse struct {
	ConfidenceFrames []string `json:"confidenceFrames"`
}

// URL returns the request URL for req.
func (f *HTTPFetcher) URL(req FrameRequest) string {
	return fmt.Sprintf("%s/get-confidence-frame?user=%d,%d", strings.TrimRight(f.BaseURL, "/"), req.Episode, req.Index)
}

// FetchFrame performs GET <base>/get-confidence-frame?user=<ep>,<idx>
// and returns the first entry of the response's confidenceFrames.
func (f *HTTPFetcher) FetchFrame(ctx context.Context, req FrameRequest) (string, error) {
	hreq, err := http.NewRequestWithContext(ctx, "GET", f.URL(req), nil)
	if err != nil {
		return "", err
	}
	hreq.Header.Set("X-Request-Id", uuid.NewString())
	hreq.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(hreq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%s: %s", hreq.URL, resp.Status)
	}

	var fr frameResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return "", fmt.Errorf("decoding frame response: %w", err)
	}
	if len(fr.ConfidenceFrames) == 0 {
		return "", fmt.Errorf("%s: no frames in response", hreq.URL)
	}
	return fr.ConfidenceFrames[0], nil
}
