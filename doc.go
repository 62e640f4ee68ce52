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

// Package kbbi implements browsing and search over a KBBI (Kamus Besar Bahasa
// Indonesia) word corpus.
//
// A corpus consists of two kinds of resources:
//  1. A letter index, word-mapping.json, mapping each letter a..z to the
//     ordered list of words starting with that letter.
//  2. One JSON record per word at kbbi/<first letter>/<word>.json holding the
//     word's entries, meanings and examples.
//
// Resources are read through a [source.Source] which may be a local
// directory, an HTTP(S) base URL or an object store bucket. Any resource may
// also be stored gzip, zstd or dictzip compressed.
//
// A [Corpus] ties the letter index, the record store and the search engine
// together:
//
//	c, err := kbbi.Open("/srv/kbbi", nil)
//	if err != nil {
//		return err
//	}
//	words, err := c.Search(ctx, "buku")
package kbbi
