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

// Package search implements substring search over the letter index.
//
// Search is deliberately simple: every word whose lowercased form contains
// the lowercased query matches. Results are ordered by letter (a to z) and
// then by the order of the letter index, and capped at [MaxResults]. There
// is no ranking.
package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/ianlewis/go-kbbi/idx"
	"github.com/ianlewis/go-kbbi/internal/folding"
)

const (
	// MinQueryLen is the minimum length, in characters, of a folded query.
	// Shorter queries return no results without scanning the index.
	MinQueryLen = 2

	// MaxResults is the maximum number of results returned by a search.
	MaxResults = 50
)

// Lister iterates the words for a letter. A letter whose words cannot be
// obtained must yield no words. *idx.Index implements Lister.
type Lister interface {
	RangeWords(ctx context.Context, letter string, fn func(word string) bool)
}

// Options are options for an Engine.
type Options struct {
	// MaxResults overrides the result cap. Defaults to MaxResults.
	MaxResults int

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Engine searches the words of a Lister.
type Engine struct {
	index   Lister
	max     int
	logger  *zap.Logger
	letters []string
}

// New returns a new search Engine over index.
func New(index Lister, opts *Options) *Engine {
	if opts == nil {
		opts = &Options{}
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = MaxResults
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		index:   index,
		max:     maxResults,
		logger:  logger,
		letters: idx.AvailableLetters(),
	}
}

// Search returns the words containing query. The query is trimmed and
// lowercased before matching. Matching is case-insensitive but results keep
// the casing stored in the index. Search returns an empty, non-nil slice for
// queries shorter than MinQueryLen. An error is returned only if ctx is done
// or the query cannot be folded.
func (e *Engine) Search(ctx context.Context, query string) ([]string, error) {
	q, err := folding.Query(query)
	if err != nil {
		return nil, err
	}
	results := []string{}
	if len([]rune(q)) < MinQueryLen {
		return results, nil
	}

	m := folding.NewMatcher(q)
	for _, letter := range e.letters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.index.RangeWords(ctx, letter, func(w string) bool {
			if m.Match(w) {
				results = append(results, w)
			}
			return len(results) < e.max
		})
		if len(results) == e.max {
			e.logger.Debug("search truncated", zap.String("query", q), zap.Int("results", len(results)))
			return results, nil
		}
	}

	e.logger.Debug("search", zap.String("query", q), zap.Int("results", len(results)))
	return results, nil
}
