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

package idx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ianlewis/go-kbbi/internal/index"
	"github.com/ianlewis/go-kbbi/source"
)

// DefaultName is the default name of the letter index resource.
const DefaultName = "word-mapping.json"

var (
	// ErrIndex is a parent error for index load failures.
	ErrIndex = errors.New("letter index")

	// ErrMissing indicates that the index resource does not exist.
	ErrMissing = fmt.Errorf("%w: missing", ErrIndex)

	// ErrMalformed indicates that the index resource could not be parsed.
	ErrMalformed = fmt.Errorf("%w: malformed", ErrIndex)
)

var letters = []string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
}

// AvailableLetters returns the letters a through z. The result does not
// depend on which letters have words in the index.
func AvailableLetters() []string {
	return slices.Clone(letters)
}

// State is the load state of an Index.
type State int

const (
	// Unloaded means the index has not been successfully loaded yet.
	Unloaded State = iota

	// Loaded means the index is loaded and memoized.
	Loaded
)

// String implements [fmt.Stringer].
func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}

// Options are options for an Index.
type Options struct {
	// Name is the name of the index resource. Defaults to DefaultName.
	Name string

	// Logger receives load failures. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Index is the letter index. It is safe for concurrent use.
type Index struct {
	src    source.Source
	name   string
	logger *zap.Logger

	group singleflight.Group

	mu      sync.RWMutex
	state   State
	mapping *Mapping
}

// New returns a new unloaded Index reading from src.
func New(src source.Source, opts *Options) *Index {
	if opts == nil {
		opts = &Options{}
	}
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		src:    src,
		name:   name,
		logger: logger,
	}
}

// State returns the current load state.
func (x *Index) State() State {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.state
}

// Load returns the letter mapping, fetching it on first use. Concurrent
// callers share a single fetch. If the index cannot be loaded an empty
// mapping is returned and the index stays unloaded.
func (x *Index) Load(ctx context.Context) *Mapping {
	if m := x.loaded(); m != nil {
		return m
	}

	// The fetch is shared by all waiting callers so it must not be cancelled
	// by any single one of them.
	fetchCtx := context.WithoutCancel(ctx)
	ch := x.group.DoChan(x.name, func() (any, error) {
		if m := x.loaded(); m != nil {
			return m, nil
		}

		m, err := x.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		x.mu.Lock()
		x.mapping = m
		x.state = Loaded
		x.mu.Unlock()

		x.logger.Debug("letter index loaded",
			zap.String("name", x.name),
			zap.Int("words", m.Total()),
		)
		return m, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			x.logger.Warn("loading letter index failed", zap.String("name", x.name), zap.Error(res.Err))
			return emptyMapping
		}
		return res.Val.(*Mapping)
	case <-ctx.Done():
		return emptyMapping
	}
}

// WordsForLetter returns the words for letter in stored order. It returns an
// empty slice if the letter has no words or the index could not be loaded.
// The returned slice is a copy.
func (x *Index) WordsForLetter(ctx context.Context, letter string) []string {
	return x.Load(ctx).Words(letter)
}

// RangeWords calls fn for each word of letter in stored order until fn
// returns false. The index is loaded as by WordsForLetter but the words are
// not copied.
func (x *Index) RangeWords(ctx context.Context, letter string, fn func(word string) bool) {
	x.Load(ctx).Range(letter, fn)
}

// Contains reports whether word is present in the index.
func (x *Index) Contains(ctx context.Context, word string) bool {
	return x.Load(ctx).Contains(word)
}

func (x *Index) loaded() *Mapping {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.state == Loaded {
		return x.mapping
	}
	return nil
}

func (x *Index) fetch(ctx context.Context) (*Mapping, error) {
	b, err := source.ReadAll(ctx, x.src, x.name)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrMissing, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIndex, err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if raw == nil {
		// The resource was the JSON literal null.
		return nil, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	return NewMapping(raw), nil
}

// key is a word in the exact lookup index.
type key string

func (k key) String() string {
	return string(k)
}

// Mapping is an immutable snapshot of the letter index.
type Mapping struct {
	words  map[string][]string
	lookup map[string]*index.Index[key]
	total  int
}

var emptyMapping = NewMapping(nil)

// NewMapping returns a Mapping from letters to words. The words for each
// letter keep the given order. The map and slices are copied.
func NewMapping(m map[string][]string) *Mapping {
	mapping := &Mapping{
		words:  make(map[string][]string, len(m)),
		lookup: make(map[string]*index.Index[key], len(m)),
	}
	for letter, words := range m {
		mapping.words[letter] = slices.Clone(words)
		keys := make([]key, len(words))
		for i, w := range words {
			keys[i] = key(w)
		}
		mapping.lookup[letter] = index.NewIndex(keys, strings.Compare)
		mapping.total += len(words)
	}
	return mapping
}

// Words returns a copy of the words for letter. It is empty, never nil, if
// the letter is absent.
func (m *Mapping) Words(letter string) []string {
	words := m.words[letter]
	if len(words) == 0 {
		return []string{}
	}
	return slices.Clone(words)
}

// Range calls fn for each word of letter in stored order until fn returns
// false. It does not copy the words.
func (m *Mapping) Range(letter string, fn func(word string) bool) {
	for _, w := range m.words[letter] {
		if !fn(w) {
			return
		}
	}
}

// Len returns the number of words for letter.
func (m *Mapping) Len(letter string) int {
	return len(m.words[letter])
}

// Total returns the number of words in the mapping.
func (m *Mapping) Total() int {
	return m.total
}

// Contains reports whether word is listed under its first letter.
func (m *Mapping) Contains(word string) bool {
	if word == "" {
		return false
	}
	l, ok := m.lookup[Partition(word)]
	if !ok {
		return false
	}
	return l.Contains(word)
}

// Partition returns the partition letter of word: its first character. It
// returns the empty string for an empty word.
func Partition(word string) string {
	for _, r := range word {
		return string(r)
	}
	return ""
}
