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
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ianlewis/go-kbbi/internal/metrics"
	"github.com/ianlewis/go-kbbi/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "serve the corpus over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "listen on `ADDR`",
		},
	},
	Action: withEnv(func(c *cli.Context, e *env) error {
		if c.IsSet("addr") {
			e.cfg.Addr = c.String("addr")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg, nil)
		corpus := e.corpus(m.Source(e.src))
		reg.MustRegister(metrics.NewIndexCollector(corpus.Index()))

		opts := &server.Options{
			Registry: reg,
			Metrics:  m,
			Logger:   e.logger.Named("server"),
		}
		if e.storage != nil {
			opts.Storage = e.storage
		}
		s := server.New(corpus, e.cfg, opts)

		ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			errc <- s.Start()
		}()

		select {
		case err := <-errc:
			return fmt.Errorf("%w: %w", ErrKbbi, err)
		case <-ctx.Done():
		}

		e.logger.Info("shutting down", zap.String("addr", e.cfg.Addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%w: %w", ErrKbbi, err)
		}
		return nil
	}),
}
