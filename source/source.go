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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// ErrNotFound is returned when a resource does not exist. Implementations
// must return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = fs.ErrNotExist

// ErrSource is a parent error for transport failures.
var ErrSource = errors.New("source")

// ErrStatus indicates that a remote server returned an unexpected status.
var ErrStatus = fmt.Errorf("%w: unexpected status", ErrSource)

// Source opens named corpus resources for reading. Names are slash separated
// and relative to the root of the corpus. Implementations must be safe for
// concurrent use.
type Source interface {
	// Open opens the named resource. The caller must close the returned
	// reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// ReadAll opens the named resource and reads it fully.
func ReadAll(ctx context.Context, src Source, name string) ([]byte, error) {
	r, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrSource, name, err)
	}
	return b, nil
}

// notFound returns a not found error for the named resource.
func notFound(name string) error {
	return &fs.PathError{Op: "open", Path: name, Err: ErrNotFound}
}
