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

// Package metrics exports Prometheus metrics for a KBBI corpus.
package metrics

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ianlewis/go-kbbi/idx"
	"github.com/ianlewis/go-kbbi/source"
)

// Outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
	OutcomePlaceholder = "placeholder"
	OutcomeEmpty       = "empty"
)

var (
	indexLoadedDesc = prometheus.NewDesc(
		"kbbi_index_loaded",
		"Whether the letter index is loaded",
		nil,
		nil,
	)
	indexWordsDesc = prometheus.NewDesc(
		"kbbi_index_words",
		"Number of indexed words by letter",
		[]string{"letter"},
		nil,
	)
)

// IndexCollector is a custom Prometheus collector that reads the letter
// index state on each scrape. It never triggers an index load.
type IndexCollector struct {
	index *idx.Index
}

// Describe sends the metric descriptors to the channel.
func (c *IndexCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- indexLoadedDesc
	ch <- indexWordsDesc
}

// Collect emits the index state and, once loaded, the word count per letter.
func (c *IndexCollector) Collect(ch chan<- prometheus.Metric) {
	if c.index.State() != idx.Loaded {
		ch <- prometheus.MustNewConstMetric(indexLoadedDesc, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(indexLoadedDesc, prometheus.GaugeValue, 1)

	// Load returns the memoized mapping without fetching.
	m := c.index.Load(context.Background())
	for _, l := range idx.AvailableLetters() {
		ch <- prometheus.MustNewConstMetric(
			indexWordsDesc,
			prometheus.GaugeValue,
			float64(m.Len(l)),
			l,
		)
	}
}

// NewIndexCollector returns a collector for the state of index.
func NewIndexCollector(index *idx.Index) *IndexCollector {
	return &IndexCollector{index: index}
}

// Metrics holds the corpus metrics.
type Metrics struct {
	opens    *prometheus.CounterVec
	lookups  *prometheus.CounterVec
	searches *prometheus.CounterVec
	results  prometheus.Histogram
}

// New registers the corpus metrics with reg. If index is non-nil an
// IndexCollector for it is registered too. Callers that wrap the corpus
// source with [Metrics.Source] before the index exists can register the
// collector later with [NewIndexCollector].
func New(reg prometheus.Registerer, index *idx.Index) *Metrics {
	m := &Metrics{
		opens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kbbi_resource_opens_total",
			Help: "Total corpus resource opens by kind and outcome",
		}, []string{"kind", "outcome"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kbbi_lookups_total",
			Help: "Total word lookups by outcome",
		}, []string{"outcome"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kbbi_searches_total",
			Help: "Total searches by outcome",
		}, []string{"outcome"}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kbbi_search_results",
			Help:    "Number of results per search",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		}),
	}
	reg.MustRegister(m.opens, m.lookups, m.searches, m.results)
	if index != nil {
		reg.MustRegister(NewIndexCollector(index))
	}
	return m
}

// RecordLookup records the outcome of a word lookup.
func (m *Metrics) RecordLookup(outcome string) {
	m.lookups.WithLabelValues(outcome).Inc()
}

// RecordSearch records a search that returned n results or failed with err.
func (m *Metrics) RecordSearch(n int, err error) {
	switch {
	case err != nil:
		m.searches.WithLabelValues(OutcomeError).Inc()
		return
	case n == 0:
		m.searches.WithLabelValues(OutcomeEmpty).Inc()
	default:
		m.searches.WithLabelValues(OutcomeOK).Inc()
	}
	m.results.Observe(float64(n))
}

// Source wraps src so that every Open is counted.
func (m *Metrics) Source(src source.Source) source.Source {
	return &countingSource{src: src, opens: m.opens}
}

type countingSource struct {
	src   source.Source
	opens *prometheus.CounterVec
}

func (s *countingSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.src.Open(ctx, name)
	outcome := OutcomeOK
	switch {
	case errors.Is(err, source.ErrNotFound):
		outcome = OutcomeNotFound
	case err != nil:
		outcome = OutcomeError
	}
	s.opens.WithLabelValues(kind(name), outcome).Inc()
	return r, err
}

// kind returns the resource kind label for name.
func kind(name string) string {
	switch {
	case path.Base(name) == idx.DefaultName:
		return "index"
	case strings.HasPrefix(name, "kbbi/"):
		return "record"
	default:
		return "other"
	}
}
