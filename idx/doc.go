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

// Package idx implements the letter index of a corpus.
//
// The letter index is a single JSON resource mapping each letter to the
// sorted list of words that start with it:
//
//	{"a": ["abu", "anak"], "b": ["batu", "buku"]}
//
// The index is loaded lazily on first use and kept in memory for the lifetime
// of the [Index]. It is never refreshed: the corpus is immutable for a given
// deployment. A missing or malformed index resource is not an error. It
// behaves as an index with no words for any letter and a later call tries
// to load it again.
package idx
