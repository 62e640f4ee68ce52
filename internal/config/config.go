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

// Package config loads the kbbi tool configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the kbbi configuration. Values are read from an optional YAML
// file and then overridden by environment variables.
type Config struct {
	// Env is the environment name, e.g. "development" or "production".
	Env string `yaml:"env"`

	// Source is the corpus location: a directory path or a file://,
	// http(s)://, minio:// or s3:// URI.
	Source string `yaml:"source"`

	// IndexName is the name of the letter index resource.
	IndexName string `yaml:"index_name"`

	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// RedisURL enables the resource cache when set.
	RedisURL string `yaml:"redis_url"`

	// CacheTTL is how long cached resources are kept.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// PageSize is the listing page size.
	PageSize int `yaml:"page_size"`

	// RateLimit is the maximum number of API requests per minute per client.
	// Zero disables rate limiting.
	RateLimit int `yaml:"rate_limit"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	// MinIO credentials for minio:// sources.
	MinIOAccessKey string `yaml:"minio_access_key"`
	MinIOSecretKey string `yaml:"minio_secret_key"`
	MinIOInsecure  bool   `yaml:"minio_insecure"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Env:       "development",
		IndexName: "word-mapping.json",
		Addr:      ":3000",
		CacheTTL:  time.Hour,
		PageSize:  20,
		RateLimit: 100,
	}
}

// Load reads the YAML file at path, if any, over the defaults and then
// applies KBBI_* environment variables. A missing file is not an error. If
// path is empty KBBI_CONFIG is used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("KBBI_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Config file is optional
		case err != nil:
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %q: %w", path, err)
			}
		}
	}

	cfg.Env = getEnv("KBBI_ENV", cfg.Env)
	cfg.Source = getEnv("KBBI_SOURCE", cfg.Source)
	cfg.IndexName = getEnv("KBBI_INDEX_NAME", cfg.IndexName)
	cfg.Addr = getEnv("KBBI_ADDR", cfg.Addr)
	cfg.RedisURL = getEnv("KBBI_REDIS_URL", cfg.RedisURL)
	cfg.MinIOAccessKey = getEnv("KBBI_MINIO_ACCESS_KEY", cfg.MinIOAccessKey)
	cfg.MinIOSecretKey = getEnv("KBBI_MINIO_SECRET_KEY", cfg.MinIOSecretKey)

	var err error
	if cfg.CacheTTL, err = getDuration("KBBI_CACHE_TTL", cfg.CacheTTL); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = getInt("KBBI_PAGE_SIZE", cfg.PageSize); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("KBBI_RATE_LIMIT", cfg.RateLimit); err != nil {
		return nil, err
	}
	if cfg.Verbose, err = getBool("KBBI_VERBOSE", cfg.Verbose); err != nil {
		return nil, err
	}
	if cfg.MinIOInsecure, err = getBool("KBBI_MINIO_INSECURE", cfg.MinIOInsecure); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
