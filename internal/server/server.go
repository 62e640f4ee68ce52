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

// Package server implements the kbbi HTTP API.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ianlewis/go-kbbi"
	"github.com/ianlewis/go-kbbi/internal/config"
	"github.com/ianlewis/go-kbbi/internal/metrics"
)

// Options are options for a Server.
type Options struct {
	// Registry receives the corpus metrics and is served at /metrics.
	// Defaults to a new registry.
	Registry *prometheus.Registry

	// Metrics records API activity. Defaults to metrics registered with
	// Registry.
	Metrics *metrics.Metrics

	// Storage backs the rate limiter. Defaults to in-memory storage.
	Storage fiber.Storage

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config

	corpus   *kbbi.Corpus
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// New creates a new server for corpus with middleware configured and routes
// registered.
func New(corpus *kbbi.Corpus, cfg *config.Config, opts *Options) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New(reg, corpus.Index())
	}

	app := fiber.New(fiber.Config{
		AppName:      "kbbi",
		UnescapePath: true,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("request failed",
					zap.String("path", c.Path()),
					zap.Int("status", code),
					zap.Error(err),
				)
			}
			return jsonError(c, code, message)
		},
	})

	// Global middleware
	app.Use(recover.New())
	if cfg.IsDev() || cfg.Verbose {
		app.Use(logger.New())
	}

	if cfg.RateLimit > 0 {
		// Rate limiting middleware, per client IP.
		app.Use("/api", limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: 1 * time.Minute,
			Storage:    opts.Storage,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return jsonError(c, fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			},
		}))
	}

	s := &Server{
		App:      app,
		Cfg:      cfg,
		corpus:   corpus,
		registry: reg,
		metrics:  m,
		logger:   log,
	}
	s.RegisterRoutes()
	return s
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.Cfg.Addr))
	return s.App.Listen(s.Cfg.Addr, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
