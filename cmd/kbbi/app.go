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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrKbbi is a parent error for all command errors.
var ErrKbbi = errors.New("kbbi")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrKbbi)

// ErrUnsupported indicates a feature is unsupported.
var ErrUnsupported = fmt.Errorf("%w: unsupported", ErrKbbi)

// ErrNoSource indicates that no corpus source was configured or found.
var ErrNoSource = fmt.Errorf("%w: no corpus source", ErrKbbi)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// which conflicts with our own --help flag.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, info.GitVersion)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKbbi, err)
	}
	if c.Bool("verbose") {
		if _, err := fmt.Fprintln(c.App.Writer, info.String()); err != nil {
			return fmt.Errorf("%w: %w", ErrKbbi, err)
		}
	}
	return nil
}

func newKbbiApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Browse and search the KBBI dictionary.",
		Description: strings.Join([]string{
			"KBBI corpus utility written in Go.",
			"http://github.com/ianlewis/go-kbbi",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "read the corpus from `URI` (directory, http(s)://, minio:// or s3://)",
				Aliases: []string{"s"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from YAML `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "redis-url",
				Usage: "cache corpus resources in the Redis server at `URL`",
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "enable debug logging",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			lettersCommand,
			listCommand,
			showCommand,
			searchCommand,
			serveCommand,
		},
	}
}
