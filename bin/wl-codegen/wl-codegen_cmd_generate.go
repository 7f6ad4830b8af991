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
	"go.uber.org/zap"

	wlcodegen "github.com/AidoP/wl-codegen"
	"github.com/AidoP/wl-codegen/codegen"
)

type cmdGenerate struct {
	common     commonFlags
	configPath string
	settings   generateSettings
	flagSet    *pflag.FlagSet
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [options] [SCHEMA...]",
		summary: "Generate Go code for protocol schemas",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	cmd.flagSet = flags
	cmd.common.register(flags)
	flags.StringVarP(&cmd.configPath, "config", "c", "", "project file (default "+defaultConfigPath+" if present)")
	flags.StringVarP(&cmd.settings.output, "output", "o", "", "directory to write generated files to")
	flags.StringVar(&cmd.settings.pkg, "package", "", "Go package name (default derived from the first protocol)")
	flags.StringVar(&cmd.settings.role, "role", "client", "side of the protocol to generate: client or server")
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	s := cmd.settings
	s.schemas = argv
	s.deps = cmd.common.deps

	configPath, err := findConfig(cmd.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if configPath != "" {
		changed := func(name string) bool {
			return cmd.flagSet != nil && cmd.flagSet.Changed(name)
		}
		if err := applyConfig(&s, configPath, changed); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if len(s.schemas) == 0 {
		fmt.Fprintln(os.Stderr, "No schema files given")
		return 1
	}
	if s.output == "" {
		fmt.Fprintln(os.Stderr, "No output directory specified (set --output=)")
		return 1
	}
	role, err := codegen.ParseRole(s.role)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := loggerFrom(ctx)
	deps, err := loadDependencies(s.deps, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	sources, err := readSources(s.schemas)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	schema, warnings, err := wlcodegen.Compile(
		sources,
		wlcodegen.WithDependencies(deps),
		wlcodegen.WithLogger(log),
	)
	printWarnings(os.Stderr, warnings)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	files, err := codegen.Generate(schema, codegen.Options{
		Package: s.pkg,
		Role:    role,
		Logger:  log,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := os.MkdirAll(s.output, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, file := range files {
		path, err := outPath(s.output, file.Path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := os.WriteFile(path, []byte(file.Content), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		log.Info("wrote file", zap.String("path", path))
	}
	return 0
}
