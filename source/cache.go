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
	"io"
	"time"

	"go.uber.org/zap"
)

// Storage is a key/value store used as a transport cache. It matches the
// storage interface implemented by the gofiber storage drivers, e.g.
// github.com/gofiber/storage/redis/v3. Get returns a nil value and a nil
// error when the key is absent.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// CacheOptions are options for a Cache.
type CacheOptions struct {
	// Prefix is prepended to cache keys.
	Prefix string

	// TTL is the expiration of cached resources. Zero means no expiration.
	TTL time.Duration

	// Logger receives cache errors. Cache errors never fail a read.
	Logger *zap.Logger
}

// Cache is a Source that caches the contents of resources read from an
// upstream Source. Misses and transport failures are not cached.
type Cache struct {
	src     Source
	storage Storage
	prefix  string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCache returns a caching Source in front of src.
func NewCache(src Source, storage Storage, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = &CacheOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "kbbi:"
	}
	return &Cache{
		src:     src,
		storage: storage,
		prefix:  prefix,
		ttl:     opts.TTL,
		logger:  logger,
	}
}

// Open implements [Source.Open].
func (c *Cache) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := c.prefix + name

	b, err := c.storage.Get(key)
	if err != nil {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	} else if b != nil {
		return io.NopCloser(bytes.NewReader(b)), nil
	}

	b, err = ReadAll(ctx, c.src, name)
	if err != nil {
		return nil, err
	}

	if err := c.storage.Set(key, b, c.ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
