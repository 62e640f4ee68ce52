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

package page

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func words(n int) []string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("kata%02d", i+1)
	}
	return w
}

func TestFilter(t *testing.T) {
	t.Parallel()

	input := []string{"abu", "Anak", "batu", "buku"}
	tests := []struct {
		name     string
		filter   string
		expected []string
	}{
		{"empty filter", "", []string{"abu", "Anak", "batu", "buku"}},
		{"substring", "bu", []string{"abu", "buku"}},
		{"case insensitive", "AN", []string{"Anak"}},
		{"no match", "xyz", []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Filter(input, test.filter)); diff != "" {
				t.Errorf("Filter(%q) (-want, +got):\n%s", test.filter, diff)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	t.Parallel()

	w := words(45)
	if got := TotalPages(len(w), DefaultSize); got != 3 {
		t.Errorf("TotalPages: got %d, want 3", got)
	}

	tests := []struct {
		page     int
		expected []string
	}{
		{1, w[0:20]},
		{2, w[20:40]},
		{3, w[40:45]},
		{4, []string{}},
		{0, []string{}},
		{-1, []string{}},
		{math.MaxInt, []string{}},
		{1<<62 + 1, []string{}},
		{math.MinInt, []string{}},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.expected, Slice(w, test.page, DefaultSize)); diff != "" {
			t.Errorf("Slice(page %d) (-want, +got):\n%s", test.page, diff)
		}
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, size, expected int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{10, 0, 0},
	}
	for _, test := range tests {
		if got := TotalPages(test.n, test.size); got != test.expected {
			t.Errorf("TotalPages(%d, %d): got %d, want %d", test.n, test.size, got, test.expected)
		}
	}
}

func TestWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current, total int
		expected       []int
	}{
		{1, 10, []int{1, 2, 3, 4, 5}},
		{3, 10, []int{1, 2, 3, 4, 5}},
		{4, 10, []int{2, 3, 4, 5, 6}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{7, 10, []int{5, 6, 7, 8, 9}},
		{8, 10, []int{6, 7, 8, 9, 10}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{1, 3, []int{1, 2, 3}},
		{3, 5, []int{1, 2, 3, 4, 5}},
		{4, 6, []int{2, 3, 4, 5, 6}},
		{1, 1, []int{1}},
		{1, 0, []int{}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%d of %d", test.current, test.total), func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Window(test.current, test.total)); diff != "" {
				t.Errorf("Window (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestListing_View(t *testing.T) {
	t.Parallel()

	w := words(45)
	l := NewListing(w, 0)

	want := View{
		Page:       1,
		Size:       DefaultSize,
		Total:      45,
		TotalPages: 3,
		Unfiltered: 45,
		Items:      w[0:20],
	}
	if diff := cmp.Diff(want, l.View()); diff != "" {
		t.Errorf("View (-want, +got):\n%s", diff)
	}

	l.SetPage(3)
	if diff := cmp.Diff(w[40:45], l.View().Items); diff != "" {
		t.Errorf("View page 3 (-want, +got):\n%s", diff)
	}

	l.SetPage(math.MaxInt)
	if got := l.View().Items; len(got) != 0 {
		t.Errorf("View page MaxInt: got %d items, want none", len(got))
	}

	l.SetPage(4)
	v := l.View()
	if len(v.Items) != 0 || v.Page != 4 {
		t.Errorf("View page 4: got page %d with %d items, want page 4 with none", v.Page, len(v.Items))
	}
}

func TestListing_filterResetsPage(t *testing.T) {
	t.Parallel()

	w := words(45)
	l := NewListing(w, DefaultSize)
	l.SetPage(2)

	// "kata" matches every word so page 2 would still exist.
	l.SetFilter("kata")
	if got := l.Page(); got != 1 {
		t.Errorf("Page after SetFilter: got %d, want 1", got)
	}

	l.SetPage(2)
	l.SetFilter("kata")
	if got := l.Page(); got != 1 {
		t.Errorf("Page after same filter: got %d, want 1", got)
	}

	l.SetFilter("kata4")
	v := l.View()
	if diff := cmp.Diff([]string{"kata40", "kata41", "kata42", "kata43", "kata44", "kata45"}, v.Items); diff != "" {
		t.Errorf("filtered items (-want, +got):\n%s", diff)
	}
	if v.Total != 6 || v.TotalPages != 1 || v.Unfiltered != 45 {
		t.Errorf("View: got %+v", v)
	}
}

func TestListing_wordsResetPage(t *testing.T) {
	t.Parallel()

	l := NewListing(words(45), DefaultSize)
	l.SetFilter("kata")
	l.SetPage(3)

	l.SetWords(words(60))
	if got := l.Page(); got != 1 {
		t.Errorf("Page after SetWords: got %d, want 1", got)
	}
	if got := l.Filter(); got != "kata" {
		t.Errorf("Filter after SetWords: got %q, want %q", got, "kata")
	}
	if got := l.TotalPages(); got != 3 {
		t.Errorf("TotalPages: got %d, want 3", got)
	}
}

func TestListing_NextPrev(t *testing.T) {
	t.Parallel()

	l := NewListing(words(45), DefaultSize)
	l.Prev()
	if got := l.Page(); got != 1 {
		t.Errorf("Prev at first page: got %d, want 1", got)
	}
	l.Next()
	l.Next()
	l.Next()
	if got := l.Page(); got != 3 {
		t.Errorf("Next at last page: got %d, want 3", got)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, l.Window()); diff != "" {
		t.Errorf("Window (-want, +got):\n%s", diff)
	}
}
