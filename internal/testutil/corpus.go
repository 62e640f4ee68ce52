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

// Package testutil implements helpers for building test corpora.
package testutil

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-kbbi/source"
)

// IndexName is the name of the letter index resource.
const IndexName = "word-mapping.json"

// RecordName returns the name of the record resource for word.
func RecordName(word string) string {
	first := []rune(word)[0]
	return path.Join("kbbi", string(first), word+".json")
}

// MakeJSON marshals v or fails the test.
func MakeJSON(t testing.TB, v any) []byte {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// MakeRecord returns the JSON for a minimal record of word with a single
// sense.
func MakeRecord(t testing.TB, word, sense string) []byte {
	t.Helper()

	return MakeJSON(t, map[string]any{
		"pranala": "https://kbbi.example/entri/" + word,
		"entri": []map[string]any{
			{
				"nama":              word,
				"nomor":             "",
				"kata_dasar":        []string{},
				"pelafalan":         "",
				"bentuk_tidak_baku": []string{},
				"varian":            []string{},
				"makna": []map[string]any{
					{
						"kelas": []map[string]string{
							{"kode": "n", "nama": "Nomina", "deskripsi": "kata benda"},
						},
						"submakna": []string{sense},
						"info":     "",
						"contoh":   []string{},
					},
				},
			},
		},
	})
}

// NewCorpus returns an in-memory source holding the given letter index and
// a minimal record for every indexed word.
func NewCorpus(t testing.TB, index map[string][]string) *source.Memory {
	t.Helper()

	m := source.NewMemory()
	m.Put(IndexName, MakeJSON(t, index))
	for _, words := range index {
		for _, w := range words {
			m.Put(RecordName(w), MakeRecord(t, w, "arti "+w))
		}
	}
	return m
}

// WriteDir writes every resource in m into a temporary directory and returns
// the directory path.
func WriteDir(t testing.TB, m *source.Memory) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range m.Names() {
		b, err := source.ReadAll(t.Context(), m, name)
		if err != nil {
			t.Fatal(err)
		}
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, b, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// MakeDictzip compresses data with dictzip.
func MakeDictzip(t testing.TB, data []byte) []byte {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "kbbi.*.dz")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	return b
}
