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

package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultQuiet is the default quiet period of a Session.
const DefaultQuiet = 300 * time.Millisecond

// Searcher performs a search. *Engine implements Searcher.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Tracker hands out monotonically increasing sequence numbers and reports
// whether a sequence number is still the latest. It is safe for concurrent
// use. The zero value is ready to use.
type Tracker struct {
	latest atomic.Uint64
}

// Next returns a new sequence number that becomes the latest.
func (t *Tracker) Next() uint64 {
	return t.latest.Add(1)
}

// Latest returns the latest sequence number, or zero if none was issued.
func (t *Tracker) Latest() uint64 {
	return t.latest.Load()
}

// IsLatest reports whether seq is the latest sequence number.
func (t *Tracker) IsLatest(seq uint64) bool {
	return t.latest.Load() == seq
}

// Result is the outcome of a search issued by a Session.
type Result struct {
	// Seq is the sequence number assigned by Submit.
	Seq uint64

	// Query is the query as submitted.
	Query string

	// Words are the matching words.
	Words []string

	// Err is the search error, if any.
	Err error
}

// SessionOptions are options for a Session.
type SessionOptions struct {
	// Quiet is the quiet period after the last Submit before a search is
	// issued. Defaults to DefaultQuiet.
	Quiet time.Duration

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Session is a debounced live search, e.g. for a search-as-you-type input.
//
// Each Submit supersedes the previous one. A search is issued only after no
// further Submit happened for the quiet period, and its result is committed
// only if no newer query was submitted in the meantime. Results of
// superseded searches are discarded regardless of the order in which
// searches complete.
type Session struct {
	searcher Searcher
	commit   func(Result)
	quiet    time.Duration
	logger   *zap.Logger
	tracker  Tracker

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	timer  *time.Timer
	closed atomic.Bool
	wg     sync.WaitGroup

	// commitMu serializes calls to commit.
	commitMu sync.Mutex
}

// NewSession returns a new Session. commit is called with the result of
// every search that is still the latest when it completes. Calls to commit
// are serialized.
func NewSession(searcher Searcher, commit func(Result), opts *SessionOptions) *Session {
	if opts == nil {
		opts = &SessionOptions{}
	}
	quiet := opts.Quiet
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		searcher: searcher,
		commit:   commit,
		quiet:    quiet,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Submit submits a new query and returns its sequence number. Any pending
// search that has not started yet is cancelled. Submit after Close returns
// zero and does nothing.
func (s *Session) Submit(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return 0
	}

	seq := s.tracker.Next()
	s.stopTimerLocked()

	s.wg.Add(1)
	s.timer = time.AfterFunc(s.quiet, func() {
		defer s.wg.Done()
		s.run(seq, query)
	})
	return seq
}

// Latest returns the sequence number of the latest submitted query.
func (s *Session) Latest() uint64 {
	return s.tracker.Latest()
}

// Close stops the session. Pending searches are cancelled, in-flight
// searches are abandoned and Close waits for them to return. No result is
// committed after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed.Swap(true) {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil && s.timer.Stop() {
		// The callback will never run.
		s.wg.Done()
	}
	s.timer = nil
}

func (s *Session) run(seq uint64, query string) {
	if !s.tracker.IsLatest(seq) || s.closed.Load() {
		return
	}

	words, err := s.searcher.Search(s.ctx, query)

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	if s.closed.Load() || !s.tracker.IsLatest(seq) {
		s.logger.Debug("discarding stale search result",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", s.tracker.Latest()),
			zap.String("query", query),
		)
		return
	}

	s.commit(Result{
		Seq:   seq,
		Query: query,
		Words: words,
		Err:   err,
	})
}
