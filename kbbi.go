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

package kbbi

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ianlewis/go-kbbi/dict"
	"github.com/ianlewis/go-kbbi/idx"
	"github.com/ianlewis/go-kbbi/page"
	"github.com/ianlewis/go-kbbi/search"
	"github.com/ianlewis/go-kbbi/source"
)

// ErrNotDir is returned by Open when the path is not a directory.
var ErrNotDir = errors.New("not a directory")

// Options are options for a Corpus.
type Options struct {
	// IndexName is the name of the letter index resource. Defaults to
	// idx.DefaultName.
	IndexName string

	// PageSize is the listing page size. Defaults to page.DefaultSize.
	PageSize int

	// MaxResults is the search result cap. Defaults to search.MaxResults.
	MaxResults int

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Corpus is a KBBI word corpus. A Corpus holds the single letter index shared
// by listing and search. It is safe for concurrent use.
type Corpus struct {
	index    *idx.Index
	store    *dict.Store
	engine   *search.Engine
	pageSize int
	logger   *zap.Logger
}

// Open opens the corpus stored in the directory at path. Compressed
// resources are decoded transparently.
func Open(path string, opts *Options) (*Corpus, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("error opening %q: %w", path, ErrNotDir)
	}
	return New(source.Compressed(source.NewDir(path)), opts), nil
}

// New returns a Corpus reading resources from src.
func New(src source.Source, opts *Options) *Corpus {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = page.DefaultSize
	}

	index := idx.New(src, &idx.Options{
		Name:   opts.IndexName,
		Logger: logger.Named("idx"),
	})
	store := dict.New(src, &dict.Options{
		Logger: logger.Named("dict"),
	})
	engine := search.New(index, &search.Options{
		MaxResults: opts.MaxResults,
		Logger:     logger.Named("search"),
	})
	return &Corpus{
		index:    index,
		store:    store,
		engine:   engine,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Index returns the corpus letter index.
func (c *Corpus) Index() *idx.Index {
	return c.index
}

// Letters returns the letters a..z.
func (c *Corpus) Letters() []string {
	return idx.AvailableLetters()
}

// Words returns all words for letter. Unknown letters and an unavailable
// index yield an empty list.
func (c *Corpus) Words(ctx context.Context, letter string) []string {
	return c.index.WordsForLetter(ctx, letter)
}

// Page is a page of a letter listing.
type Page struct {
	page.View

	// Letter is the listed letter.
	Letter string `json:"letter"`

	// Filter is the filter applied to the letter's words.
	Filter string `json:"filter"`

	// Window are the page numbers to display around the current page.
	Window []int `json:"window"`
}

// List returns the requested page of the words for letter that contain
// filter. Pages are 1-indexed. Out of range pages have no items.
func (c *Corpus) List(ctx context.Context, letter, filter string, n int) *Page {
	l := c.Listing(ctx, letter)
	l.SetFilter(filter)
	l.SetPage(n)
	return &Page{
		View:   l.View(),
		Letter: letter,
		Filter: filter,
		Window: l.Window(),
	}
}

// Listing returns a new paginated listing of the words for letter.
func (c *Corpus) Listing(ctx context.Context, letter string) *page.Listing {
	return page.NewListing(c.Words(ctx, letter), c.pageSize)
}

// Lookup returns the entry for word. Words without a record yield a
// placeholder entry. An error is returned only if the record could not be
// fetched.
func (c *Corpus) Lookup(ctx context.Context, word string) (*Entry, error) {
	rec, err := c.store.Get(ctx, word)
	if err != nil {
		return nil, err
	}
	e := &Entry{
		word:        word,
		record:      rec,
		placeholder: dict.IsPlaceholder(rec),
		indexed:     c.index.Contains(ctx, word),
	}
	if !e.indexed && !e.placeholder && c.index.State() == idx.Loaded {
		c.logger.Warn("record not in letter index", zap.String("word", word))
	}
	return e, nil
}

// Search returns up to the result cap of words containing query. See
// [search.Engine.Search].
func (c *Corpus) Search(ctx context.Context, query string) ([]string, error) {
	return c.engine.Search(ctx, query)
}

// NewSession returns a debounced search session over the corpus. See
// [search.NewSession].
func (c *Corpus) NewSession(commit func(search.Result), opts *search.SessionOptions) *search.Session {
	if opts == nil {
		opts = &search.SessionOptions{Logger: c.logger.Named("session")}
	}
	return search.NewSession(c.engine, commit, opts)
}
