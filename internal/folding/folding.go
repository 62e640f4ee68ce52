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

// Package folding implements the text folding applied to words and queries
// before substring matching.
package folding

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// TrimFolder removes whitespace from the beginning and end of the input.
// Internal whitespace is kept as is.
type TrimFolder struct {
	// notStart is true after encountering the first non-whitespace rune.
	notStart bool

	// pending holds a whitespace span that is only emitted if more
	// non-whitespace follows it.
	pending []byte
}

// Transform implements [transform.Transformer.Transform].
func (w *TrimFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(c) {
			if w.notStart {
				w.pending = append(w.pending, src[nSrc:nSrc+size]...)
			}
			nSrc += size
			continue
		}

		if len(w.pending) > 0 {
			if nDst+len(w.pending) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], w.pending)
			w.pending = w.pending[:0]
		}
		w.notStart = true

		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *TrimFolder) Reset() {
	*w = TrimFolder{}
}

// QueryFolder returns a transformer that trims and lowercases a query.
func QueryFolder() transform.Transformer {
	return transform.Chain(&TrimFolder{}, cases.Lower(language.Und))
}

// Query folds a search query: surrounding whitespace is removed and the
// result is lowercased.
func Query(q string) (string, error) {
	folded, _, err := transform.String(QueryFolder(), q)
	if err != nil {
		return "", fmt.Errorf("folding query %q: %w", q, err)
	}
	return folded, nil
}

// Matcher reports whether words contain a folded query. A Matcher is not
// safe for concurrent use.
type Matcher struct {
	query string
	ascii bool
	lower cases.Caser
}

// NewMatcher returns a Matcher for the already folded query.
func NewMatcher(foldedQuery string) *Matcher {
	return &Matcher{
		query: foldedQuery,
		ascii: isASCII(foldedQuery),
		lower: cases.Lower(language.Und),
	}
}

// Match reports whether the lowercased word contains the query. An empty
// query matches every word. ASCII words are matched without allocating.
func (m *Matcher) Match(word string) bool {
	if m.query == "" {
		return true
	}
	if isASCII(word) {
		// Lowercasing ASCII yields ASCII, which cannot hold a non-ASCII query.
		return m.ascii && containsLowerASCII(word, m.query)
	}
	return strings.Contains(m.lower.String(word), m.query)
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// containsLowerASCII reports whether the ASCII lowercasing of s contains the
// lowercase ASCII string sub.
func containsLowerASCII(s, sub string) bool {
	n := len(sub)
	for i := 0; i+n <= len(s); i++ {
		j := 0
		for ; j < n; j++ {
			c := s[i+j]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != sub[j] {
				break
			}
		}
		if j == n {
			return true
		}
	}
	return false
}

// Lower lowercases s.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
