/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/encore/pkg/encore"
	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/recipe"
	"github.com/NVIDIA/encore/pkg/serializer"
	"github.com/NVIDIA/encore/pkg/validator"
)

type buildCmdOptions struct {
	recipePath string
	modes      []env.Mode
	target     string
	output     string
	format     serializer.Format
	runtime    env.RuntimeOptions
}

func parseBuildCmdOptions(cmd *cli.Command) (*buildCmdOptions, error) {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}

	target := cmd.String("target")
	if target != encore.TargetWebpack && target != encore.TargetESBuild {
		return nil, fmt.Errorf("unknown target: %q (supported values: %s)",
			target, strings.Join(encore.SupportedTargets(), ", "))
	}

	names := cmd.StringSlice("mode")
	if len(names) == 0 {
		names = []string{string(env.ModeProduction)}
	}
	modes := make([]env.Mode, 0, len(names))
	seen := make(map[env.Mode]bool, len(names))
	for _, n := range names {
		m, err := env.ParseMode(n)
		if err != nil {
			return nil, err
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		modes = append(modes, m)
	}

	return &buildCmdOptions{
		recipePath: cmd.String("recipe"),
		modes:      modes,
		target:     target,
		output:     cmd.String("output"),
		format:     format,
		runtime:    runtimeOptionsFromCmd(cmd),
	}, nil
}

func buildCmd() *cli.Command {
	flags := []cli.Flag{
		recipeFlag,
		&cli.StringSliceFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage: fmt.Sprintf("Mode to build, can be repeated (supported values: %s; default: production)",
				strings.Join(env.SupportedModes(), ", ")),
			Sources: cli.EnvVars("ENCORE_MODE"),
		},
		&cli.StringFlag{
			Name:  "target",
			Value: encore.TargetWebpack,
			Usage: fmt.Sprintf("Bundler to project for (supported values: %s)",
				strings.Join(encore.SupportedTargets(), ", ")),
			Sources: cli.EnvVars("ENCORE_TARGET"),
		},
		outputFlag,
		formatFlag,
	}

	return &cli.Command{
		Name:                  "build",
		EnableShellCompletion: true,
		Usage:                 "Project a recipe into bundler configuration",
		Description: `Applies a recipe to a fresh builder for each requested mode and writes the
projected configurations as a list of BuildResult documents.

Modes are built concurrently; each has its own builder, so overlays and
runtime flags never leak between them.

# Examples

Production webpack configuration:
  encore build -r encore.yaml

Every mode at once, as JSON:
  encore build -r encore.yaml -m dev -m production -m dev-server -t json

Dev-server on a custom port, written to a file:
  encore build -r encore.hcl -m dev-server --port 9000 --hot -o webpack.config.yaml

esbuild options instead of webpack:
  encore build -r encore.yaml --target esbuild`,
		Flags: append(flags, runtimeFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseBuildCmdOptions(cmd)
			if err != nil {
				return err
			}

			slog.Debug("building",
				"recipe", opts.recipePath,
				"modes", opts.modes,
				"target", opts.target)

			results, err := buildAll(ctx, fileSystem, opts)
			if err != nil {
				return err
			}

			ser := serializer.NewFileWriterOrStdout(opts.format, opts.output)
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			return ser.Serialize(ctx, results)
		},
	}
}

// buildAll builds every mode concurrently from forks of one base builder.
// Results keep the order of opts.modes.
func buildAll(ctx context.Context, fs afero.Fs, opts *buildCmdOptions) ([]*encore.Result, error) {
	base := encore.New(
		encore.WithFileChecker(validator.NewFileChecker(fs)),
		encore.WithValidatorOptions(validator.WithVersion(version)),
	)

	results := make([]*encore.Result, len(opts.modes))
	g, gctx := errgroup.WithContext(ctx)

	for i, mode := range opts.modes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rcp, err := recipe.Load(fs, opts.recipePath, recipe.WithMode(mode))
			if err != nil {
				return err
			}

			b, err := base.Fork()
			if err != nil {
				return err
			}
			b.ConfigureRuntimeEnvironment(mode, opts.runtime)
			if err := rcp.Apply(b); err != nil {
				return fmt.Errorf("%s: %w", mode, err)
			}

			res, err := b.BuildResult(opts.target, version)
			if err != nil {
				return fmt.Errorf("%s: %w", mode, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
