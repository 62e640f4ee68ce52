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

package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/ianlewis/go-kbbi/dict"
	"github.com/ianlewis/go-kbbi/idx"
	"github.com/ianlewis/go-kbbi/internal/metrics"
)

// wordData is the /api/words response payload. The record fields are
// inlined.
type wordData struct {
	*dict.Record

	Word        string `json:"kata"`
	Placeholder bool   `json:"placeholder"`
	Indexed     bool   `json:"indexed"`
}

func (s *Server) letters(c fiber.Ctx) error {
	return jsonSuccess(c, s.corpus.Letters())
}

func (s *Server) listLetter(c fiber.Ctx) error {
	n := 1
	if p := c.Query("page"); p != "" {
		var err error
		n, err = strconv.Atoi(p)
		if err != nil || n < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid page")
		}
	}
	return jsonSuccess(c, s.corpus.List(c.Context(), strings.ToLower(c.Params("letter")), c.Query("filter"), n))
}

func (s *Server) word(c fiber.Ctx) error {
	word := c.Params("word")
	e, err := s.corpus.Lookup(c.Context(), word)
	switch {
	case errors.Is(err, dict.ErrInvalidWord):
		s.metrics.RecordLookup(metrics.OutcomeError)
		return fiber.NewError(fiber.StatusBadRequest, "invalid word")
	case err != nil:
		s.metrics.RecordLookup(metrics.OutcomeError)
		s.logger.Warn("lookup failed", zap.String("word", word), zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "record unavailable")
	}

	if e.Placeholder() {
		s.metrics.RecordLookup(metrics.OutcomePlaceholder)
	} else {
		s.metrics.RecordLookup(metrics.OutcomeOK)
	}
	return jsonSuccess(c, &wordData{
		Record:      e.Record(),
		Word:        e.Word(),
		Placeholder: e.Placeholder(),
		Indexed:     e.Indexed(),
	})
}

func (s *Server) search(c fiber.Ctx) error {
	words, err := s.corpus.Search(c.Context(), c.Query("q"))
	s.metrics.RecordSearch(len(words), err)
	if err != nil {
		return err
	}
	return jsonSuccess(c, words)
}

func (s *Server) health(c fiber.Ctx) error {
	return jsonSuccess(c, fiber.Map{
		"index": s.corpus.Index().State().String(),
		"ready": s.corpus.Index().State() == idx.Loaded,
	})
}
