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
	"strconv"
	"strings"
)

// Record is the full definition record of one word.
type Record struct {
	// URL is the source URL of the record.
	URL string `json:"pranala"`

	// Entries are the dictionary entries for the word, in order.
	Entries []*Entry `json:"entri"`

	// placeholder is true for records synthesized for missing words.
	placeholder bool
}

// Entry is a single dictionary entry (headword) within a Record.
type Entry struct {
	// Name is the display name of the entry.
	Name string `json:"nama"`

	// Number is the homonym number. It is empty for words with a single
	// homonym.
	Number string `json:"nomor"`

	// BaseWords are references to the base words of a derived word.
	BaseWords []string `json:"kata_dasar"`

	// Pronunciation is the pronunciation, if given.
	Pronunciation string `json:"pelafalan"`

	// NonStandard are non-standard forms of the word.
	NonStandard []string `json:"bentuk_tidak_baku"`

	// Variants are variant spellings of the word.
	Variants []string `json:"varian"`

	// Meanings are the meanings of the entry, in order.
	Meanings []*Meaning `json:"makna"`
}

// Meaning is one meaning of an Entry.
type Meaning struct {
	// Classes are the word classes of the meaning.
	Classes []*Class `json:"kelas"`

	// Senses are the sense strings of the meaning.
	Senses []string `json:"submakna"`

	// Info is a free-text note.
	Info string `json:"info"`

	// Examples are example usages.
	Examples []string `json:"contoh"`
}

// Class is a word class tag (e.g. n, Nomina, kata benda).
type Class struct {
	Code        string `json:"kode"`
	Name        string `json:"nama"`
	Description string `json:"deskripsi"`
}

// Title returns the entry's title: the name followed by the homonym number
// in parentheses, if any.
func (e *Entry) Title() string {
	if e.Number == "" {
		return e.Name
	}
	return e.Name + " (" + e.Number + ")"
}

// String returns a plain text representation of the Entry.
func (e *Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Title())
	if e.Pronunciation != "" {
		b.WriteString(" " + e.Pronunciation)
	}
	b.WriteString("\n")
	for i, m := range e.Meanings {
		b.WriteString(m.prefix(i + 1))
		b.WriteString(strings.Join(m.Senses, "; "))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Meaning) prefix(n int) string {
	var codes []string
	for _, c := range m.Classes {
		codes = append(codes, c.Code)
	}
	p := strconv.Itoa(n) + ". "
	if len(codes) > 0 {
		p += strings.Join(codes, " ") + " "
	}
	return p
}
