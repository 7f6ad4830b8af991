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
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	wlcodegen "github.com/AidoP/wl-codegen"
	"github.com/AidoP/wl-codegen/compiler"
	"github.com/AidoP/wl-codegen/ir"
)

// commonFlags are shared by every command that compiles schemas.
type commonFlags struct {
	deps []string
}

func (c *commonFlags) register(flags *pflag.FlagSet) {
	flags.StringArrayVarP(
		&c.deps, "dep", "d", nil,
		"schema file providing interfaces for reference (repeatable)",
	)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

type loggerKey struct{}

func withLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// loggerFrom returns the logger installed by the root command, or a no-op
// logger.
func loggerFrom(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}

func readSources(paths []string) ([]wlcodegen.Source, error) {
	sources := make([]wlcodegen.Source, 0, len(paths))
	for _, path := range paths {
		src, err := wlcodegen.ReadSource(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// loadDependencies compiles the dependency schemas as one set, so that they
// may refer to each other.
func loadDependencies(paths []string, log *zap.Logger) (*compiler.SchemaSet, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	sources, err := readSources(paths)
	if err != nil {
		return nil, err
	}
	schema, _, err := wlcodegen.Compile(sources, wlcodegen.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("compiling dependencies:\n%w", err)
	}
	return compiler.Merge([]*ir.Schema{schema})
}

func printWarnings(w io.Writer, warnings []*compiler.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "%v\n", warn)
	}
}

// outPath joins a generated file name onto the output directory. Generated
// names are single path components.
func outPath(outDir string, name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("Invalid output path %q", name)
	}
	if filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("Invalid output path %q: not a file name", name)
	}
	return filepath.Join(outDir, name), nil
}
