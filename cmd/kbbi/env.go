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

package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/storage/redis/v3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ianlewis/go-kbbi"
	"github.com/ianlewis/go-kbbi/idx"
	"github.com/ianlewis/go-kbbi/internal/config"
	"github.com/ianlewis/go-kbbi/source"
	"github.com/ianlewis/go-kbbi/source/minio"
	"github.com/ianlewis/go-kbbi/source/s3"
)

// env is the state shared by all commands.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	src     source.Source
	storage *redis.Storage
}

// newEnv loads the configuration, applies command line flags and opens the
// corpus source.
func newEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKbbi, err)
	}
	if c.IsSet("source") {
		cfg.Source = c.String("source")
	}
	if c.IsSet("redis-url") {
		cfg.RedisURL = c.String("redis-url")
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}
	if cfg.Source == "" {
		cfg.Source = defaultSource()
	}
	if cfg.Source == "" {
		return nil, ErrNoSource
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKbbi, err)
	}

	e := &env{
		cfg:    cfg,
		logger: logger,
	}
	e.src, err = openSource(c.Context, cfg)
	if err != nil {
		return nil, err
	}
	e.src = source.Compressed(e.src)

	if cfg.RedisURL != "" {
		e.storage, err = newRedisStorage(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		e.src = source.NewCache(e.src, e.storage, &source.CacheOptions{
			TTL:    cfg.CacheTTL,
			Logger: logger.Named("cache"),
		})
	}

	logger.Debug("opened corpus source", zap.String("source", cfg.Source))
	return e, nil
}

// corpus returns a new Corpus over src.
func (e *env) corpus(src source.Source) *kbbi.Corpus {
	return kbbi.New(src, &kbbi.Options{
		IndexName: e.cfg.IndexName,
		PageSize:  e.cfg.PageSize,
		Logger:    e.logger,
	})
}

// Close releases the resources held by e.
func (e *env) Close() {
	if e.storage != nil {
		if err := e.storage.Close(); err != nil {
			e.logger.Warn("closing redis storage", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}

// newRedisStorage connects to the Redis server at redisURL. redis.New panics if
// the URL is invalid or the server is unreachable; the panic is returned as
// an error.
func newRedisStorage(redisURL string) (storage *redis.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			storage = nil
			err = fmt.Errorf("%w: connecting to redis: %v", ErrKbbi, r)
		}
	}()
	return redis.New(redis.Config{
		URL: redisURL,
	}), nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

// defaultSource returns the first default corpus location that contains a
// letter index.
func defaultSource() string {
	for _, dir := range corpusLocations() {
		for _, ext := range []string{"", ".gz", ".zst", ".dz"} {
			if _, err := os.Stat(filepath.Join(dir, idx.DefaultName+ext)); err == nil {
				return dir
			}
		}
	}
	return ""
}

// openSource opens the source named by the URI in cfg.Source. Supported
// schemes are file, http, https, minio and s3. A URI without a scheme is a
// local directory path.
//
//	minio://HOST[:PORT]/BUCKET[/PREFIX]
//	s3://BUCKET[/PREFIX]
func openSource(ctx context.Context, cfg *config.Config) (source.Source, error) {
	uri := cfg.Source
	if !strings.Contains(uri, "://") {
		return source.NewDir(uri), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid source %q: %w", ErrKbbi, uri, err)
	}

	switch u.Scheme {
	case "file":
		return source.NewDir(u.Path), nil
	case "http", "https":
		src, err := source.NewHTTP(uri, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKbbi, err)
		}
		return src, nil
	case "minio":
		bucket, prefix := splitBucket(u.Path)
		if u.Host == "" || bucket == "" {
			return nil, fmt.Errorf("%w: invalid source %q: missing host or bucket", ErrKbbi, uri)
		}
		client, err := miniogo.New(u.Host, &miniogo.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: !cfg.MinIOInsecure,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKbbi, err)
		}
		return minio.NewStore(client, bucket, prefix), nil
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: invalid source %q: missing bucket", ErrKbbi, uri)
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: loading AWS config: %w", ErrKbbi, err)
		}
		return s3.NewStore(awss3.NewFromConfig(awsCfg), u.Host, strings.Trim(u.Path, "/")), nil
	default:
		return nil, fmt.Errorf("%w: source scheme %q", ErrUnsupported, u.Scheme)
	}
}

// splitBucket splits "/bucket/some/prefix" into "bucket" and "some/prefix".
func splitBucket(p string) (string, string) {
	p = strings.Trim(p, "/")
	bucket, prefix, _ := strings.Cut(p, "/")
	return bucket, prefix
}
