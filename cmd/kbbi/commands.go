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
	"strconv"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

// withEnv wraps a command action with environment setup and teardown.
func withEnv(fn func(*cli.Context, *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := newEnv(c)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(c, e)
	}
}

var lettersCommand = &cli.Command{
	Name:  "letters",
	Usage: "list letters and their word counts",
	Action: withEnv(func(c *cli.Context, e *env) error {
		corpus := e.corpus(e.src)

		tbl := table.New("Letter", "Words").WithWriter(c.App.Writer)
		for _, l := range corpus.Letters() {
			tbl.AddRow(l, len(corpus.Words(c.Context, l)))
		}
		tbl.Print()
		return nil
	}),
}

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "list the words for a letter",
	ArgsUsage: "LETTER",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "filter",
			Usage:   "only list words containing `TEXT`",
			Aliases: []string{"f"},
		},
		&cli.IntFlag{
			Name:    "page",
			Usage:   "show page `N`",
			Aliases: []string{"p"},
			Value:   1,
		},
	},
	Action: withEnv(func(c *cli.Context, e *env) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected one LETTER argument", ErrFlagParse)
		}
		letter := strings.ToLower(c.Args().First())

		p := e.corpus(e.src).List(c.Context, letter, c.String("filter"), c.Int("page"))

		tbl := table.New("#", "Word").WithWriter(c.App.Writer)
		for i, w := range p.Items {
			tbl.AddRow((p.Page-1)*p.Size+i+1, w)
		}
		tbl.Print()

		var window []string
		for _, n := range p.Window {
			s := strconv.Itoa(n)
			if n == p.Page {
				s = "[" + s + "]"
			}
			window = append(window, s)
		}
		_, err := fmt.Fprintf(c.App.Writer, "\npage %d of %d (%d of %d words) %s\n",
			p.Page, p.TotalPages, p.Total, p.Unfiltered, strings.Join(window, " "))
		return err
	}),
}
