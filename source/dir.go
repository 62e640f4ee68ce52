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
	"os"
)

// Dir is a Source that reads resources from a local directory.
type Dir struct {
	fsys fs.FS
}

// NewDir returns a Source rooted at the given directory.
func NewDir(root string) *Dir {
	return &Dir{
		fsys: os.DirFS(root),
	}
}

// Open implements [Source.Open]. Names that could not address a file under
// the root (e.g. containing "..") are reported as not found.
func (d *Dir) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) {
		return nil, notFound(name)
	}

	f, err := d.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(name)
		}
		return nil, fmt.Errorf("%w: opening %q: %w", ErrSource, name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: opening %q: %w", ErrSource, name, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, notFound(name)
	}

	return f, nil
}
