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

// View is a materialized page of a filtered word list.
type View struct {
	// Page is the current 1-indexed page number.
	Page int `json:"page"`

	// Size is the page size.
	Size int `json:"size"`

	// Total is the number of words after filtering.
	Total int `json:"total"`

	// TotalPages is the number of pages.
	TotalPages int `json:"total_pages"`

	// Unfiltered is the number of words before filtering.
	Unfiltered int `json:"unfiltered"`

	// Items are the words on the page.
	Items []string `json:"items"`
}

// Listing is the pagination state of a word list. Changing the word list or
// the filter always resets the current page to 1. A Listing is not safe for
// concurrent use.
type Listing struct {
	words    []string
	filter   string
	filtered []string
	page     int
	size     int
}

// NewListing returns a Listing over words with the given page size. A size
// <= 0 selects DefaultSize.
func NewListing(words []string, size int) *Listing {
	if size <= 0 {
		size = DefaultSize
	}
	l := &Listing{size: size}
	l.SetWords(words)
	return l
}

// SetWords replaces the word list, e.g. when a different letter is shown,
// and resets the page to 1. The filter is kept.
func (l *Listing) SetWords(words []string) {
	l.words = words
	l.filtered = Filter(words, l.filter)
	l.page = 1
}

// SetFilter sets the filter and resets the page to 1, even if the filter did
// not change.
func (l *Listing) SetFilter(filter string) {
	l.filter = filter
	l.filtered = Filter(l.words, filter)
	l.page = 1
}

// Filter returns the current filter.
func (l *Listing) Filter() string {
	return l.filter
}

// SetPage sets the current page. The page is stored as given. Pages outside
// [1, TotalPages] show no words.
func (l *Listing) SetPage(page int) {
	l.page = page
}

// Page returns the current page.
func (l *Listing) Page() int {
	return l.page
}

// TotalPages returns the number of pages of the filtered list.
func (l *Listing) TotalPages() int {
	return TotalPages(len(l.filtered), l.size)
}

// Next moves to the next page unless the current page is the last one.
func (l *Listing) Next() {
	if l.page < l.TotalPages() {
		l.page++
	}
}

// Prev moves to the previous page unless the current page is the first one.
func (l *Listing) Prev() {
	if l.page > 1 {
		l.page--
	}
}

// View materializes the current page.
func (l *Listing) View() View {
	items := Slice(l.filtered, l.page, l.size)
	return View{
		Page:       l.page,
		Size:       l.size,
		Total:      len(l.filtered),
		TotalPages: l.TotalPages(),
		Unfiltered: len(l.words),
		Items:      append([]string{}, items...),
	}
}

// Window returns the page numbers to display around the current page.
func (l *Listing) Window() []int {
	return Window(l.page, l.TotalPages())
}
