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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-kbbi/dict"
	"github.com/ianlewis/go-kbbi/internal/testutil"
	"github.com/ianlewis/go-kbbi/search"
)

var testIndex = map[string][]string{
	"a": {"abu", "anak", "angin"},
	"b": {"batu", "buku"},
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteDir(t, testutil.NewCorpus(t, testIndex))

	c, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if diff := cmp.Diff([]string{"batu", "buku"}, c.Words(t.Context(), "b")); diff != "" {
		t.Errorf("Words (-want, +got):\n%s", diff)
	}

	e, err := c.Lookup(t.Context(), "anak")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if e.Placeholder() {
		t.Errorf("Lookup: got placeholder, want record")
	}
}

func TestOpen_errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "word-mapping.json")
	if err := os.WriteFile(file, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(file, nil); !errors.Is(err, ErrNotDir) {
		t.Errorf("Open(file): got %v, want %v", err, ErrNotDir)
	}
	if _, err := Open(filepath.Join(dir, "missing"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing): got %v, want %v", err, os.ErrNotExist)
	}
}

func TestCorpus_Letters(t *testing.T) {
	t.Parallel()

	c := New(testutil.NewCorpus(t, testIndex), nil)
	letters := c.Letters()
	if len(letters) != 26 || letters[0] != "a" || letters[25] != "z" {
		t.Errorf("Letters: got %v", letters)
	}
}

func TestCorpus_List(t *testing.T) {
	t.Parallel()

	c := New(testutil.NewCorpus(t, testIndex), &Options{PageSize: 2})

	tests := []struct {
		name   string
		letter string
		filter string
		page   int

		items      []string
		total      int
		totalPages int
		window     []int
	}{
		{
			name:       "first page",
			letter:     "a",
			page:       1,
			items:      []string{"abu", "anak"},
			total:      3,
			totalPages: 2,
			window:     []int{1, 2},
		},
		{
			name:       "last page",
			letter:     "a",
			page:       2,
			items:      []string{"angin"},
			total:      3,
			totalPages: 2,
			window:     []int{1, 2},
		},
		{
			name:       "filtered",
			letter:     "a",
			filter:     "AN",
			page:       1,
			items:      []string{"anak", "angin"},
			total:      2,
			totalPages: 1,
			window:     []int{1},
		},
		{
			name:       "out of range",
			letter:     "b",
			page:       5,
			items:      []string{},
			total:      2,
			totalPages: 1,
			window:     []int{1},
		},
		{
			name:       "empty letter",
			letter:     "z",
			page:       1,
			items:      []string{},
			total:      0,
			totalPages: 0,
			window:     []int{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			p := c.List(t.Context(), test.letter, test.filter, test.page)
			if diff := cmp.Diff(test.items, p.Items); diff != "" {
				t.Errorf("Items (-want, +got):\n%s", diff)
			}
			if p.Total != test.total {
				t.Errorf("Total: got %d, want %d", p.Total, test.total)
			}
			if p.TotalPages != test.totalPages {
				t.Errorf("TotalPages: got %d, want %d", p.TotalPages, test.totalPages)
			}
			if diff := cmp.Diff(test.window, p.Window); diff != "" {
				t.Errorf("Window (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestCorpus_Lookup(t *testing.T) {
	t.Parallel()

	m := testutil.NewCorpus(t, testIndex)
	// A record that is not listed in the letter index.
	m.Put(testutil.RecordName("bola"), testutil.MakeRecord(t, "bola", "benda bulat"))
	c := New(m, nil)

	tests := []struct {
		word        string
		placeholder bool
		indexed     bool
		str         string
	}{
		{
			word:    "buku",
			indexed: true,
			str:     "buku\n1. n arti buku\n",
		},
		{
			word: "bola",
			str:  "bola\n1. n benda bulat\n",
		},
		{
			word:        "cahaya",
			placeholder: true,
			str:         "cahaya (1) /cahaya/\n1. n Arti dari kata \"cahaya\" dalam bahasa Indonesia\n",
		},
	}

	for _, test := range tests {
		t.Run(test.word, func(t *testing.T) {
			t.Parallel()

			e, err := c.Lookup(t.Context(), test.word)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if got := e.Word(); got != test.word {
				t.Errorf("Word: got %q, want %q", got, test.word)
			}
			if got := e.Placeholder(); got != test.placeholder {
				t.Errorf("Placeholder: got %v, want %v", got, test.placeholder)
			}
			if got := e.Indexed(); got != test.indexed {
				t.Errorf("Indexed: got %v, want %v", got, test.indexed)
			}
			if diff := cmp.Diff(test.str, e.String()); diff != "" {
				t.Errorf("String (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestCorpus_Lookup_transportFailure(t *testing.T) {
	t.Parallel()

	c := New(testutil.FailingSource{}, nil)
	e, err := c.Lookup(t.Context(), "buku")
	if !errors.Is(err, dict.ErrFetch) {
		t.Errorf("Lookup: got %v, want %v", err, dict.ErrFetch)
	}
	if e != nil {
		t.Errorf("Lookup: got %v, want nil", e)
	}
}

func TestCorpus_Search(t *testing.T) {
	t.Parallel()

	c := New(testutil.NewCorpus(t, testIndex), nil)

	got, err := c.Search(t.Context(), "  BU ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if diff := cmp.Diff([]string{"abu", "buku"}, got); diff != "" {
		t.Errorf("Search (-want, +got):\n%s", diff)
	}
}

func TestCorpus_sharedIndex(t *testing.T) {
	t.Parallel()

	src := &testutil.CountingSource{Source: testutil.NewCorpus(t, testIndex)}
	c := New(src, nil)

	_ = c.Words(t.Context(), "a")
	_ = c.List(t.Context(), "b", "", 1)
	if _, err := c.Search(t.Context(), "ang"); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got := src.Count(testutil.IndexName); got != 1 {
		t.Errorf("index fetches: got %d, want 1", got)
	}
}

func TestCorpus_NewSession(t *testing.T) {
	t.Parallel()

	c := New(testutil.NewCorpus(t, testIndex), nil)

	results := make(chan search.Result, 1)
	s := c.NewSession(func(r search.Result) {
		results <- r
	}, &search.SessionOptions{Quiet: 10 * time.Millisecond})
	defer s.Close()

	s.Submit("a")
	s.Submit("an")
	seq := s.Submit("ang")

	select {
	case r := <-results:
		if r.Seq != seq {
			t.Errorf("Seq: got %d, want %d", r.Seq, seq)
		}
		if diff := cmp.Diff([]string{"angin"}, r.Words); diff != "" {
			t.Errorf("Words (-want, +got):\n%s", diff)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}
}
