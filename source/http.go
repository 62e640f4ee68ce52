// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "go-kbbi/1.0"

// HTTP is a Source that fetches resources relative to a base URL.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP returns a Source reading from the given base URL. If client is nil
// a client with a 10 second timeout is used.
func NewHTTP(baseURL string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing base url %q: %w", ErrSource, baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrSource, u.Scheme)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTP{
		base:   u,
		client: client,
	}, nil
}

// URL returns the URL for the named resource.
func (h *HTTP) URL(name string) string {
	u := *h.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + name
	u.RawPath = ""
	return u.String()
}

// Open implements [Source.Open]. 404 and 410 responses are reported as not
// found. Any other non-2xx response is a transport failure.
func (h *HTTP) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	u := h.URL(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %q: %w", ErrSource, u, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		resp.Body.Close()
		return nil, notFound(name)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: fetching %q: %s", ErrStatus, u, resp.Status)
	}
}
