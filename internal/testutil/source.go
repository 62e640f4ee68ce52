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

package testutil

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ianlewis/go-kbbi/source"
)

// ErrTransport is returned by a FailingSource.
var ErrTransport = errors.New("transport failure")

// CountingSource wraps a Source and counts calls to Open per resource name.
// If Gate is non-nil, Open blocks until it is closed.
type CountingSource struct {
	Source source.Source
	Gate   chan struct{}

	total  atomic.Int64
	mu     sync.Mutex
	counts map[string]int
}

// Open implements [source.Source.Open].
func (c *CountingSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	c.total.Add(1)
	c.mu.Lock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[name]++
	c.mu.Unlock()

	if c.Gate != nil {
		select {
		case <-c.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return c.Source.Open(ctx, name)
}

// Count returns the number of times name was opened.
func (c *CountingSource) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

// Total returns the total number of opens.
func (c *CountingSource) Total() int {
	return int(c.total.Load())
}

// FailingSource fails every Open with ErrTransport.
type FailingSource struct{}

// Open implements [source.Source.Open].
func (FailingSource) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, ErrTransport
}
