/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/encore/pkg/encore"
	"github.com/NVIDIA/encore/pkg/env"
	"github.com/NVIDIA/encore/pkg/errors"
	"github.com/NVIDIA/encore/pkg/recipe"
	"github.com/NVIDIA/encore/pkg/serializer"
	"github.com/NVIDIA/encore/pkg/validator"
)

func validateCmd() *cli.Command {
	flags := []cli.Flag{
		recipeFlag,
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Value:   string(env.ModeProduction),
			Usage: fmt.Sprintf("Mode to validate against (supported values: %s)",
				strings.Join(env.SupportedModes(), ", ")),
			Sources: cli.EnvVars("ENCORE_MODE"),
		},
		outputFlag,
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"t"},
			Usage:   "Write the report as json, yaml or table instead of coloured text",
		},
	}

	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Check a recipe for conflicting features",
		Description: `Applies a recipe for one mode and runs every interaction rule without
projecting. All errors are reported at once, followed by warnings.

The command fails when the report carries errors, which makes it usable as a
CI gate.

# Examples

  encore validate -r encore.yaml
  encore validate -r encore.yaml -m dev-server --port 9000
  encore validate -r encore.yaml -t json -o report.json`,
		Flags: append(flags, runtimeFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mode, err := env.ParseMode(cmd.String("mode"))
			if err != nil {
				return err
			}

			path := cmd.String("recipe")
			report, err := validateRecipe(fileSystem, path, mode, runtimeOptionsFromCmd(cmd))
			if report == nil {
				return err
			}

			if f := cmd.String("format"); f != "" {
				format := serializer.Format(f)
				if format.IsUnknown() {
					return fmt.Errorf("unknown output format: %q", f)
				}
				ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
				defer func() {
					if cerr := ser.Close(); cerr != nil {
						slog.Warn("failed to close serializer", "error", cerr)
					}
				}()
				if serr := ser.Serialize(ctx, report); serr != nil {
					return serr
				}
			} else {
				printReport(cmd.Root().Writer, path, report)
			}

			if err != nil {
				return errors.Wrap(errors.ErrCodeInteraction,
					fmt.Sprintf("%s: %d interaction error(s)", path, len(report.Errors)), err)
			}
			return nil
		},
	}
}

// validateRecipe applies the recipe at path to a builder configured for mode
// and validates it. The report is nil only when validation could not run.
func validateRecipe(fs afero.Fs, path string, mode env.Mode, rt env.RuntimeOptions) (*validator.Report, error) {
	rcp, err := recipe.Load(fs, path, recipe.WithMode(mode))
	if err != nil {
		return nil, err
	}

	b := encore.New(
		encore.WithFileChecker(validator.NewFileChecker(fs)),
		encore.WithValidatorOptions(validator.WithVersion(version)),
	).ConfigureRuntimeEnvironment(mode, rt)
	if err := rcp.Apply(b); err != nil {
		return nil, err
	}
	return b.Validate()
}

func printReport(w io.Writer, path string, r *validator.Report) {
	bold := color.New(color.Bold)
	status := color.GreenString("PASS")
	switch r.Status {
	case validator.ValidationStatusWarn:
		status = color.YellowString("WARN")
	case validator.ValidationStatusFail:
		status = color.RedString("FAIL")
	}

	fmt.Fprintf(w, "%s (%s): %s\n", bold.Sprint(path), r.Mode, status)

	for _, issue := range r.Errors {
		fmt.Fprintf(w, "  %s %s\n", color.RedString("error"), formatIssue(issue))
	}
	for _, issue := range r.Warnings {
		fmt.Fprintf(w, "  %s %s\n", color.YellowString("warn "), formatIssue(issue))
	}
	if len(r.Errors)+len(r.Warnings) > 0 {
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(r.Errors), len(r.Warnings))
	}
}

func formatIssue(i validator.Issue) string {
	features := make([]string, len(i.Features))
	for n, f := range i.Features {
		features[n] = string(f)
	}
	return fmt.Sprintf("[%s] %s %s", i.Rule, i.Message,
		color.New(color.Faint).Sprintf("(%s)", strings.Join(features, ", ")))
}
