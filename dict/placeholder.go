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

// PlaceholderURL is the base of the source URL of placeholder records.
const PlaceholderURL = "http://kbbi.kemdikbud.go.id/entri/"

// Placeholder returns the record synthesized for a word that has no record
// in the corpus. It has a single entry named after the word, tagged as a
// noun, with one generic sense and one generic example.
func Placeholder(word string) *Record {
	return &Record{
		URL: PlaceholderURL + word,
		Entries: []*Entry{
			{
				Name:          word,
				Number:        "1",
				BaseWords:     []string{},
				Pronunciation: "/" + word + "/",
				NonStandard:   []string{},
				Variants:      []string{},
				Meanings: []*Meaning{
					{
						Classes: []*Class{
							{
								Code:        "n",
								Name:        "Nomina",
								Description: "kata benda",
							},
						},
						Senses:   []string{`Arti dari kata "` + word + `" dalam bahasa Indonesia`},
						Info:     "",
						Examples: []string{`Contoh penggunaan kata "` + word + `" dalam kalimat.`},
					},
				},
			},
		},
		placeholder: true,
	}
}

// IsPlaceholder reports whether rec was synthesized by [Placeholder] rather
// than read from the corpus.
func IsPlaceholder(rec *Record) bool {
	return rec != nil && rec.placeholder
}
