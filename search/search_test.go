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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/ianlewis/go-kbbi/idx"
	"github.com/ianlewis/go-kbbi/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mapLister is a Lister backed by a map. Letters in failing yield no words.
type mapLister struct {
	words   map[string][]string
	calls   []string
	visited int
	failing map[string]bool
}

func (l *mapLister) RangeWords(_ context.Context, letter string, fn func(string) bool) {
	l.calls = append(l.calls, letter)
	if l.failing[letter] {
		return
	}
	for _, w := range l.words[letter] {
		l.visited++
		if !fn(w) {
			return
		}
	}
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()

	index := map[string][]string{
		"a": {"abu"},
		"b": {"buku", "batu"},
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "letter order then stored order",
			query:    "bu",
			expected: []string{"abu", "buku"},
		},
		{
			name:     "case insensitive",
			query:    "BU",
			expected: []string{"abu", "buku"},
		},
		{
			name:     "trimmed",
			query:    "  bu\t",
			expected: []string{"abu", "buku"},
		},
		{
			name:     "substring not prefix",
			query:    "tu",
			expected: []string{"batu"},
		},
		{
			name:     "no match",
			query:    "xyz",
			expected: []string{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			e := New(&mapLister{words: index}, nil)
			got, err := e.Search(context.Background(), test.query)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Search(%q) (-want, +got):\n%s", test.query, diff)
			}
		})
	}
}

func TestEngine_Search_belowThreshold(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"", " ", "\t\n", "b", " b ", "é"} {
		l := &mapLister{words: map[string][]string{"b": {"b", "buku"}}}
		got, err := New(l, nil).Search(context.Background(), q)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Search(%q): got %#v, want empty", q, got)
		}
		if len(l.calls) != 0 {
			t.Errorf("Search(%q): scanned letters %v", q, l.calls)
		}
	}
}

func TestEngine_Search_preservesCasing(t *testing.T) {
	t.Parallel()

	l := &mapLister{words: map[string][]string{"j": {"Jakarta", "jala"}}}
	got, err := New(l, nil).Search(context.Background(), "JA")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if diff := cmp.Diff([]string{"Jakarta", "jala"}, got); diff != "" {
		t.Errorf("Search (-want, +got):\n%s", diff)
	}
}

func TestEngine_Search_truncated(t *testing.T) {
	t.Parallel()

	words := map[string][]string{}
	for _, letter := range []string{"a", "k", "z"} {
		for i := range 30 {
			words[letter] = append(words[letter], fmt.Sprintf("%ska%02d", letter, i))
		}
	}

	l := &mapLister{words: words}
	got, err := New(l, nil).Search(context.Background(), "ka")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != MaxResults {
		t.Fatalf("Search: got %d results, want %d", len(got), MaxResults)
	}
	// Scanning stops at the cap.
	if l.visited != MaxResults {
		t.Errorf("Search visited %d words, want %d", l.visited, MaxResults)
	}
	want := append(append([]string{}, words["a"]...), words["k"][:20]...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search (-want, +got):\n%s", diff)
	}
}

func TestEngine_Search_letterFailure(t *testing.T) {
	t.Parallel()

	l := &mapLister{
		words: map[string][]string{
			"a": {"abu"},
			"b": {"buku"},
			"r": {"rebus"},
		},
		failing: map[string]bool{"b": true},
	}
	got, err := New(l, nil).Search(context.Background(), "bu")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if diff := cmp.Diff([]string{"abu", "rebus"}, got); diff != "" {
		t.Errorf("Search (-want, +got):\n%s", diff)
	}
	if len(l.calls) != 26 {
		t.Errorf("Search scanned %d letters, want 26", len(l.calls))
	}
}

func TestEngine_Search_cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &mapLister{words: map[string][]string{"a": {"abu"}}}
	if _, err := New(l, nil).Search(ctx, "bu"); err == nil {
		t.Errorf("Search: expected error for cancelled context")
	}
}

func TestEngine_Search_letterIndex(t *testing.T) {
	t.Parallel()

	src := testutil.NewCorpus(t, map[string][]string{
		"a": {"abu"},
		"b": {"buku", "batu"},
	})
	e := New(idx.New(src, nil), nil)

	got, err := e.Search(context.Background(), "bu")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if diff := cmp.Diff([]string{"abu", "buku"}, got); diff != "" {
		t.Errorf("Search (-want, +got):\n%s", diff)
	}
}

func TestEngine_Search_missingIndex(t *testing.T) {
	t.Parallel()

	e := New(idx.New(testutil.FailingSource{}, nil), nil)
	got, err := e.Search(context.Background(), "bu")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Search: got %v, want empty", got)
	}
}
