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

// Package source implements read-only access to the resources that make up a
// dictionary corpus.
//
// A corpus is a tree of named resources:
//  1. word-mapping.json is the letter index. It maps each letter to the
//     sorted list of words starting with that letter.
//  2. kbbi/<letter>/<word>.json holds the full record for a single word.
//
// A [Source] opens resources by name. Backends exist for local directories
// ([Dir]), HTTP servers ([HTTP]), memory ([Memory]), and object storage (the
// minio and s3 subpackages). Resources may be stored compressed; wrap a
// source with [Compressed] to transparently probe and decode gzip, zstd and
// dictzip variants. [Cache] adds a transport level cache in front of any
// source.
//
// Sources distinguish a clean miss from a transport failure: a missing
// resource always yields an error satisfying errors.Is(err, ErrNotFound).
package source
