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
	"fmt"
	"io"
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-kbbi/dict"
)

var showCommand = &cli.Command{
	Name:      "show",
	Usage:     "show the definition of a word",
	ArgsUsage: "WORD",
	Action: withEnv(func(c *cli.Context, e *env) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: expected a WORD argument", ErrFlagParse)
		}
		word := strings.Join(c.Args().Slice(), " ")

		entry, err := e.corpus(e.src).Lookup(c.Context, word)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrKbbi, err)
		}
		if entry.Placeholder() {
			fmt.Fprintf(c.App.ErrWriter, "%s: no record for %q\n", c.App.Name, word)
		}
		return printRecord(c.App.Writer, entry.Record())
	}),
}

// text converts an HTML fragment from a record to plain text.
func text(s string) string {
	return strings.TrimSpace(html2text.HTML2Text(s))
}

func printRecord(w io.Writer, rec *dict.Record) error {
	var b strings.Builder
	for i, e := range rec.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Title())
		if e.Pronunciation != "" {
			b.WriteString(" " + e.Pronunciation)
		}
		b.WriteString("\n")

		for _, f := range []struct {
			label string
			words []string
		}{
			{"kata dasar", e.BaseWords},
			{"bentuk tidak baku", e.NonStandard},
			{"varian", e.Variants},
		} {
			if len(f.words) > 0 {
				fmt.Fprintf(&b, "  %s: %s\n", f.label, strings.Join(f.words, ", "))
			}
		}

		for j, m := range e.Meanings {
			var classes []string
			for _, cl := range m.Classes {
				classes = append(classes, cl.Code)
			}
			senses := make([]string, 0, len(m.Senses))
			for _, s := range m.Senses {
				senses = append(senses, text(s))
			}

			fmt.Fprintf(&b, "  %d.", j+1)
			if len(classes) > 0 {
				b.WriteString(" " + strings.Join(classes, " "))
			}
			if m.Info != "" {
				b.WriteString(" " + text(m.Info))
			}
			b.WriteString(" " + strings.Join(senses, "; ") + "\n")
			for _, ex := range m.Examples {
				fmt.Fprintf(&b, "     %s\n", text(ex))
			}
		}
	}
	if rec.URL != "" {
		fmt.Fprintf(&b, "\n%s\n", rec.URL)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
