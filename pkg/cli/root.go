/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/logging"
	"github.com/NVIDIA/encore/pkg/serializer"
)

const (
	name           = "encore"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	// fileSystem is where recipes are read from and required files are looked up.
	fileSystem afero.Fs = afero.NewOsFs()
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Sources: cli.EnvVars("ENCORE_FORMAT"),
	}

	recipeFlag = &cli.StringFlag{
		Name:     "recipe",
		Aliases:  []string{"r"},
		Required: true,
		Usage:    "Path to the build recipe (.yaml, .yml, .json or .hcl)",
		Sources:  cli.EnvVars("ENCORE_RECIPE"),
	}
)

// runtimeFlags are the dev-server and bundler settings a recipe does not carry.
func runtimeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "context",
			Usage:   "Base directory entries and required files resolve against",
			Sources: cli.EnvVars("ENCORE_CONTEXT"),
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Dev-server host",
			Sources: cli.EnvVars("ENCORE_HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Dev-server port",
			Sources: cli.EnvVars("ENCORE_PORT"),
		},
		&cli.BoolFlag{
			Name:  "https",
			Usage: "Serve the dev-server over HTTPS",
		},
		&cli.BoolFlag{
			Name:  "hot",
			Usage: "Enable hot module replacement",
		},
		&cli.BoolFlag{
			Name:  "keep-public-path",
			Usage: "Do not rewrite the public path to the dev-server URL",
		},
		&cli.BoolFlag{
			Name:  "watch",
			Usage: "Rebuild on change",
		},
	}
}

func runtimeOptionsFromCmd(cmd *cli.Command) env.RuntimeOptions {
	return env.RuntimeOptions{
		Context:        cmd.String("context"),
		Host:           cmd.String("host"),
		Port:           cmd.Int("port"),
		HTTPS:          cmd.Bool("https"),
		Hot:            cmd.Bool("hot"),
		KeepPublicPath: cmd.Bool("keep-public-path"),
		Watch:          cmd.Bool("watch"),
		Verbose:        cmd.String("log-level") == "debug",
	}
}

// parseOutputFormat reads --format, rejecting unknown values.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported values: %s)",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "encore - bundler configuration from declarative recipes",
		Description: `Builds webpack or esbuild configurations from a recipe file.

  build    - project a recipe for one or more modes
  validate - report feature interaction errors and warnings`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevel := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", logLevel)
			return ctx, nil
		},
		Commands: []*cli.Command{
			buildCmd(),
			validateCmd(),
		},
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
