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

package dict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ianlewis/go-kbbi/idx"
	"github.com/ianlewis/go-kbbi/source"
)

var (
	// ErrInvalidWord indicates that no resource name can be derived from
	// the word.
	ErrInvalidWord = errors.New("invalid word")

	// ErrFetch indicates a transport failure while fetching a record.
	ErrFetch = errors.New("fetching record")
)

// Path returns the resource name of the record for word.
func Path(word string) string {
	return "kbbi/" + idx.Partition(word) + "/" + word + ".json"
}

// Options are options for a Store.
type Options struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Store resolves words to records. It does not cache records. It is safe for
// concurrent use.
type Store struct {
	src    source.Source
	logger *zap.Logger
}

// New returns a new Store reading from src.
func New(src source.Source, opts *Options) *Store {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		src:    src,
		logger: logger,
	}
}

// Get returns the record for word. The word is used verbatim. If the corpus
// has no record for the word a placeholder record is returned (see
// [Placeholder]). On a transport failure Get returns a nil record and an
// error wrapping ErrFetch.
func (s *Store) Get(ctx context.Context, word string) (*Record, error) {
	if word == "" {
		return nil, ErrInvalidWord
	}

	name := Path(word)
	b, err := source.ReadAll(ctx, s.src, name)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			s.logger.Debug("record not found, using placeholder", zap.String("word", word))
			return Placeholder(word), nil
		}
		return nil, fmt.Errorf("%w %q: %w", ErrFetch, word, err)
	}

	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("%w %q: decoding %s: %w", ErrFetch, word, name, err)
	}
	return &rec, nil
}
