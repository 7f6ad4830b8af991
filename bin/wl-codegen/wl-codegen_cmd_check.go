// Copyright (c) 2024 the wl-codegen authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	wlcodegen "github.com/AidoP/wl-codegen"
	"github.com/AidoP/wl-codegen/ir"
)

type cmdCheck struct {
	common commonFlags
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [options] SCHEMA...",
		summary: "Report errors and warnings in protocol schemas",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	cmd.common.register(flags)
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	if _, ok := compileArgs(ctx, &cmd.common, argv); !ok {
		return 1
	}
	return 0
}

// compileArgs compiles the schema files named by argv against the given
// dependencies, printing every diagnostic to stderr.
func compileArgs(ctx context.Context, common *commonFlags, argv []string) (*ir.Schema, bool) {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "No schema files given")
		return nil, false
	}
	log := loggerFrom(ctx)
	deps, err := loadDependencies(common.deps, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}
	sources, err := readSources(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}
	schema, warnings, err := wlcodegen.Compile(
		sources,
		wlcodegen.WithDependencies(deps),
		wlcodegen.WithLogger(log),
	)
	printWarnings(os.Stderr, warnings)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}
	return schema, true
}
