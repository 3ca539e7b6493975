/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the encore command line.
//
// # Commands
//
// build - project a recipe:
//
//	encore build --recipe encore.yaml [--mode MODE]... [--target webpack|esbuild]
//	             [--output FILE] [--format yaml|json|table]
//
// Each --mode is built concurrently on its own builder. The output is a list
// of BuildResult documents in the order the modes were given. Without --mode
// the recipe is built for production.
//
// validate - report feature conflicts:
//
//	encore validate --recipe encore.yaml [--mode MODE] [--format json|yaml|table]
//
// Prints every interaction error and warning for one mode and exits non-zero
// when there are errors. With --format the report is written as a
// ValidationReport document instead of coloured text.
//
// # Runtime Flags
//
// Both commands accept the settings a recipe does not carry:
//
//	--context DIR          base directory for required file checks
//	--host, --port         dev-server address
//	--https, --hot         dev-server TLS and hot module replacement
//	--keep-public-path     do not rewrite the public path under the dev-server
//	--watch                rebuild on change
//
// # Environment Variables
//
//	ENCORE_RECIPE, ENCORE_MODE, ENCORE_TARGET, ENCORE_FORMAT,
//	ENCORE_CONTEXT, ENCORE_HOST, ENCORE_PORT, LOG_LEVEL
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/encore/pkg/cli.version=1.0.0'" ./cmd/encore
package cli
