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
	"strings"

	"github.com/ianlewis/go-kbbi/dict"
)

// Entry is a looked up word.
type Entry struct {
	word        string
	record      *dict.Record
	placeholder bool
	indexed     bool
}

// Word returns the looked up word.
func (e *Entry) Word() string {
	return e.word
}

// Record returns the entry's record.
func (e *Entry) Record() *dict.Record {
	return e.record
}

// Placeholder reports whether the record is a placeholder for a word missing
// from the corpus.
func (e *Entry) Placeholder() bool {
	return e.placeholder
}

// Indexed reports whether the word is listed in the letter index.
func (e *Entry) Indexed() bool {
	return e.indexed
}

// String returns a string representation of the Entry.
func (e *Entry) String() string {
	var b strings.Builder
	for i, de := range e.record.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(de.String())
	}
	return b.String()
}
