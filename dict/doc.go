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

// Package dict implements the record store: resolving a single word to its
// full definition record.
//
// Each word's record is a JSON resource named after the word and its first
// character:
//
//	kbbi/<first character>/<word>.json
//
// A word with no record resource is not an error. [Store.Get] returns a
// synthesized placeholder record for it so that a browsing UI always has
// something to show for gaps in the corpus. Only transport failures are
// reported as errors.
package dict
