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
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-kbbi/search"
)

// resultTimeout bounds the wait for the final interactive search result.
const resultTimeout = 30 * time.Second

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "search for words containing a query",
	ArgsUsage: "QUERY",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:               "interactive",
			Usage:              "read queries from standard input, one per line, and print results whenever input pauses",
			Aliases:            []string{"i"},
			DisableDefaultText: true,
		},
	},
	Action: withEnv(func(c *cli.Context, e *env) error {
		if c.Bool("interactive") {
			return searchInteractive(c, e)
		}
		if c.NArg() == 0 {
			return fmt.Errorf("%w: expected a QUERY argument", ErrFlagParse)
		}

		words, err := e.corpus(e.src).Search(c.Context, strings.Join(c.Args().Slice(), " "))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrKbbi, err)
		}
		printWords(c, words)
		return nil
	}),
}

func printWords(c *cli.Context, words []string) {
	tbl := table.New("#", "Word").WithWriter(c.App.Writer)
	for i, w := range words {
		tbl.AddRow(i+1, w)
	}
	tbl.Print()
}

// searchInteractive submits every line read from the app's reader to a
// debounced search session. Each committed result is printed as soon as it
// arrives, e.g. whenever typing pauses. It returns after the result for the
// last line has been printed.
func searchInteractive(c *cli.Context, e *env) error {
	// Calls to commit are serialized by the session.
	printed := make(chan search.Result, 1)
	s := e.corpus(e.src).NewSession(func(r search.Result) {
		if r.Err != nil {
			fmt.Fprintf(c.App.ErrWriter, "%s: %q: %v\n", c.App.Name, r.Query, r.Err)
		} else {
			fmt.Fprintf(c.App.Writer, "%q\n", r.Query)
			printWords(c, r.Words)
		}

		// Only the newest result is kept.
		select {
		case <-printed:
		default:
		}
		printed <- r
	}, nil)
	defer s.Close()

	var last uint64
	scanner := bufio.NewScanner(c.App.Reader)
	for scanner.Scan() {
		last = s.Submit(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading queries: %w", ErrKbbi, err)
	}
	if last == 0 {
		return nil
	}

	timeout := time.After(resultTimeout)
	for {
		select {
		case r := <-printed:
			if r.Seq != last {
				continue
			}
			if r.Err != nil {
				return fmt.Errorf("%w: %w", ErrKbbi, r.Err)
			}
			return nil
		case <-timeout:
			return fmt.Errorf("%w: timed out waiting for results", ErrKbbi)
		case <-c.Context.Done():
			return c.Context.Err()
		}
	}
}
