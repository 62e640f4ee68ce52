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

package source_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/ianlewis/go-kbbi/internal/testutil"
	"github.com/ianlewis/go-kbbi/source"
)

const mapping = `{"a":["abu"],"b":["batu","buku"]}`

func mustRead(t *testing.T, src source.Source, name string) string {
	t.Helper()

	b, err := source.ReadAll(context.Background(), src, name)
	if err != nil {
		t.Fatalf("ReadAll(%q): %v", name, err)
	}
	return string(b)
}

func gzipped(t *testing.T, data string) []byte {
	t.Helper()

	var buf bytes.Buffer
	z := gzip.NewWriter(&buf)
	if _, err := z.Write([]byte(data)); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func zstded(t *testing.T, data string) []byte {
	t.Helper()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll([]byte(data), nil)
}

func TestMemory(t *testing.T) {
	t.Parallel()

	m := source.NewMemory()
	m.Put(testutil.IndexName, []byte(mapping))

	if diff := cmp.Diff(mapping, mustRead(t, m, testutil.IndexName)); diff != "" {
		t.Errorf("ReadAll (-want, +got):\n%s", diff)
	}
	if _, err := m.Open(context.Background(), "missing.json"); !errors.Is(err, source.ErrNotFound) {
		t.Errorf("Open missing: got %v, want ErrNotFound", err)
	}
}

func TestDir(t *testing.T) {
	t.Parallel()

	m := testutil.NewCorpus(t, map[string][]string{"a": {"abu"}})
	d := source.NewDir(testutil.WriteDir(t, m))

	if got := mustRead(t, d, testutil.IndexName); got != `{"a":["abu"]}` {
		t.Errorf("ReadAll: got %q", got)
	}

	tests := []struct {
		name     string
		resource string
	}{
		{"missing file", "kbbi/z/zzz.json"},
		{"directory", "kbbi/a"},
		{"parent escape", "../etc/passwd"},
		{"absolute", "/etc/passwd"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if _, err := d.Open(context.Background(), test.resource); !errors.Is(err, source.ErrNotFound) {
				t.Errorf("Open(%q): got %v, want ErrNotFound", test.resource, err)
			}
		})
	}
}

func TestHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/word-mapping.json":
			_, _ = w.Write([]byte(mapping))
		case "/data/kbbi/b/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	h, err := source.NewHTTP(srv.URL+"/data/", srv.Client())
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}

	if diff := cmp.Diff(mapping, mustRead(t, h, testutil.IndexName)); diff != "" {
		t.Errorf("ReadAll (-want, +got):\n%s", diff)
	}

	if _, err := h.Open(context.Background(), "kbbi/z/zzz.json"); !errors.Is(err, source.ErrNotFound) {
		t.Errorf("Open missing: got %v, want ErrNotFound", err)
	}

	_, err = h.Open(context.Background(), "kbbi/b/broken.json")
	if !errors.Is(err, source.ErrStatus) {
		t.Errorf("Open broken: got %v, want ErrStatus", err)
	}
	if errors.Is(err, source.ErrNotFound) {
		t.Errorf("Open broken: server error reported as not found")
	}
}

func TestHTTP_URL(t *testing.T) {
	t.Parallel()

	h, err := source.NewHTTP("https://example.com/corpus", nil)
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	want := "https://example.com/corpus/kbbi/a/anak%20ayam.json"
	if got := h.URL("kbbi/a/anak ayam.json"); got != want {
		t.Errorf("URL: got %q, want %q", got, want)
	}

	if _, err := source.NewHTTP("ftp://example.com", nil); !errors.Is(err, source.ErrSource) {
		t.Errorf("NewHTTP ftp: got %v, want ErrSource", err)
	}
}

func TestCompressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		put  func(t *testing.T, m *source.Memory)
	}{
		{
			name: "plain",
			put: func(_ *testing.T, m *source.Memory) {
				m.Put(testutil.IndexName, []byte(mapping))
			},
		},
		{
			name: "gzip",
			put: func(t *testing.T, m *source.Memory) {
				m.Put(testutil.IndexName+".gz", gzipped(t, mapping))
			},
		},
		{
			name: "zstd",
			put: func(t *testing.T, m *source.Memory) {
				m.Put(testutil.IndexName+".zst", zstded(t, mapping))
			},
		},
		{
			name: "dictzip",
			put: func(t *testing.T, m *source.Memory) {
				m.Put(testutil.IndexName+".dz", testutil.MakeDictzip(t, []byte(mapping)))
			},
		},
		{
			name: "plain preferred",
			put: func(t *testing.T, m *source.Memory) {
				m.Put(testutil.IndexName, []byte(mapping))
				m.Put(testutil.IndexName+".gz", gzipped(t, `{}`))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			m := source.NewMemory()
			test.put(t, m)

			if diff := cmp.Diff(mapping, mustRead(t, source.Compressed(m), testutil.IndexName)); diff != "" {
				t.Errorf("ReadAll (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestCompressed_notFound(t *testing.T) {
	t.Parallel()

	c := source.Compressed(source.NewMemory())
	if _, err := c.Open(context.Background(), testutil.IndexName); !errors.Is(err, source.ErrNotFound) {
		t.Errorf("Open: got %v, want ErrNotFound", err)
	}

	c = source.Compressed(testutil.FailingSource{})
	if _, err := c.Open(context.Background(), testutil.IndexName); !errors.Is(err, testutil.ErrTransport) {
		t.Errorf("Open: got %v, want ErrTransport", err)
	}
}

type mapStorage struct {
	mu   sync.Mutex
	data map[string][]byte
	exp  time.Duration
}

func (s *mapStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *mapStorage) Set(key string, val []byte, exp time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = map[string][]byte{}
	}
	s.data[key] = val
	s.exp = exp
	return nil
}

func TestCache(t *testing.T) {
	t.Parallel()

	m := source.NewMemory()
	m.Put(testutil.IndexName, []byte(mapping))
	counting := &testutil.CountingSource{Source: m}
	storage := &mapStorage{}
	c := source.NewCache(counting, storage, &source.CacheOptions{TTL: time.Hour})

	for range 3 {
		if got := mustRead(t, c, testutil.IndexName); got != mapping {
			t.Fatalf("ReadAll: got %q", got)
		}
	}
	if got := counting.Count(testutil.IndexName); got != 1 {
		t.Errorf("upstream opens: got %d, want 1", got)
	}
	if _, ok := storage.data["kbbi:"+testutil.IndexName]; !ok {
		t.Errorf("cache key not stored")
	}
	if storage.exp != time.Hour {
		t.Errorf("ttl: got %v, want %v", storage.exp, time.Hour)
	}

	// Misses are not cached.
	for range 2 {
		if _, err := c.Open(context.Background(), "kbbi/z/zzz.json"); !errors.Is(err, source.ErrNotFound) {
			t.Fatalf("Open missing: got %v, want ErrNotFound", err)
		}
	}
	if got := counting.Count("kbbi/z/zzz.json"); got != 2 {
		t.Errorf("upstream opens for miss: got %d, want 2", got)
	}
}
