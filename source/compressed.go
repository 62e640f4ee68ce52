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

package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// variants are the compressed resource extensions probed by Compressed, in
// order. The uncompressed resource is always tried first.
var variants = []string{".gz", ".zst", ".dz"}

// compressed is a Source that probes for compressed variants of resources.
type compressed struct {
	src Source
}

// Compressed wraps src so that a resource "name" is served from the first of
// "name", "name.gz", "name.zst" or "name.dz" that exists. Compressed variants
// are decoded transparently.
func Compressed(src Source) Source {
	return &compressed{src: src}
}

// Open implements [Source.Open].
func (c *compressed) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := c.src.Open(ctx, name)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	for _, ext := range variants {
		r, err = c.src.Open(ctx, name+ext)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		return decode(name+ext, r)
	}

	return nil, notFound(name)
}

// decode returns a reader that decompresses r according to the extension of
// name. The returned reader takes ownership of r.
func decode(name string, r io.ReadCloser) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		z, err := gzip.NewReader(r)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("%w: opening gzip %q: %w", ErrSource, name, err)
		}
		return &stackedReader{Reader: z, closers: []io.Closer{z, r}}, nil

	case strings.HasSuffix(name, ".zst"):
		z, err := zstd.NewReader(r)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("%w: opening zstd %q: %w", ErrSource, name, err)
		}
		zr := z.IOReadCloser()
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, r}}, nil

	case strings.HasSuffix(name, ".dz"):
		// dictzip needs random access.
		b, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %q: %w", ErrSource, name, err)
		}
		z, err := dictzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("%w: opening dictzip %q: %w", ErrSource, name, err)
		}
		return io.NopCloser(z), nil

	default:
		return r, nil
	}
}

// stackedReader reads from a decoder and closes the decoder and the
// underlying reader in order.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

// Close implements [io.Closer].
func (s *stackedReader) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
