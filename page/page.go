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

// Package page implements deterministic pagination of a letter's word list
// under an optional filter.
package page

import (
	"github.com/ianlewis/go-kbbi/internal/folding"
)

const (
	// DefaultSize is the number of words per page.
	DefaultSize = 20

	// WindowSize is the maximum number of page numbers in a window.
	WindowSize = 5
)

// Filter returns the words whose lowercased form contains the lowercased
// filter, in their original order. An empty filter keeps every word. The
// input slice is not modified.
func Filter(words []string, filter string) []string {
	m := folding.NewMatcher(folding.Lower(filter))
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if m.Match(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// TotalPages returns the number of pages needed for n items.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Slice returns the items on the 1-indexed page. A page outside
// [1, TotalPages] yields an empty slice. The page is not clamped.
func Slice(words []string, page, size int) []string {
	// Pages past the end are rejected before multiplying so that huge page
	// numbers cannot overflow.
	if page < 1 || size <= 0 || page > TotalPages(len(words), size) {
		return []string{}
	}
	start := (page - 1) * size
	end := min(start+size, len(words))
	return words[start:end:end]
}

// Window returns the page numbers to display for navigation: at most
// WindowSize pages around current.
//
//   - If total <= WindowSize, all pages are shown.
//   - If current is within the first three pages, pages 1 to 5 are shown.
//   - If current is within the last three pages, the last five are shown.
//   - Otherwise two pages before and after current are shown.
func Window(current, total int) []int {
	if total <= 0 {
		return []int{}
	}

	n := min(WindowSize, total)
	var start int
	switch {
	case total <= WindowSize, current <= 3:
		start = 1
	case current >= total-2:
		start = total - WindowSize + 1
	default:
		start = current - 2
	}

	pages := make([]int, n)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
