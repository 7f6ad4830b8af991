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

// Package wlcodegen compiles Wayland-style protocol schemas into Go code.
//
// The stages are also available on their own: [syntax.Parse] reads one
// schema file, [compiler.Compile] resolves parsed protocols into an
// [ir.Schema], and [codegen.Generate] emits Go source from the schema.
package wlcodegen

import (
	"go.uber.org/zap"

	"github.com/AidoP/wl-codegen/codegen"
	"github.com/AidoP/wl-codegen/compiler"
	"github.com/AidoP/wl-codegen/ir"
	"github.com/AidoP/wl-codegen/syntax"
)

type Option interface {
	apply(*options)
}

type option func(*options)

func (f option) apply(opts *options) { f(opts) }

type options struct {
	pkg    string
	role   codegen.Role
	deps   *compiler.SchemaSet
	logger *zap.Logger
}

func newOptions(opts []Option) *options {
	out := &options{}
	for _, opt := range opts {
		opt.apply(out)
	}
	if out.logger == nil {
		out.logger = zap.NewNop()
	}
	return out
}

// WithPackage sets the Go package name of generated code.
func WithPackage(name string) Option {
	return option(func(opts *options) {
		opts.pkg = name
	})
}

// WithRole selects the side of the protocol generated code implements.
func WithRole(role codegen.Role) Option {
	return option(func(opts *options) {
		opts.role = role
	})
}

// WithDependencies makes previously compiled schemas available for
// reference. Their interfaces are not emitted.
func WithDependencies(deps *compiler.SchemaSet) Option {
	return option(func(opts *options) {
		opts.deps = deps
	})
}

func WithLogger(logger *zap.Logger) Option {
	return option(func(opts *options) {
		opts.logger = logger
	})
}

// Compile parses and resolves sources, in order, into one schema.
//
// The returned error is a [SourceErrorList] when any source fails to parse,
// and a [compiler.ErrorList] when resolution fails. Warnings are returned
// only for schemas that reached the resolver.
func Compile(sources []Source, opts ...Option) (*ir.Schema, []*compiler.Warning, error) {
	return compile(sources, newOptions(opts))
}

func compile(sources []Source, opts *options) (*ir.Schema, []*compiler.Warning, error) {
	var (
		protocols []*syntax.Protocol
		errs      SourceErrorList
	)
	for _, src := range sources {
		proto, err := syntax.Parse(src.Text)
		if err != nil {
			errs = append(errs, &SourceError{Name: src.Name, Err: err})
			continue
		}
		opts.logger.Debug("parsed source",
			zap.String("source", src.Name),
			zap.String("protocol", proto.Name),
		)
		protocols = append(protocols, proto)
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}

	compileOpts := []compiler.CompileOption{compiler.WithLogger(opts.logger)}
	if opts.deps != nil {
		compileOpts = append(compileOpts, compiler.WithDependencies(opts.deps))
	}
	result := compiler.Compile(protocols, compileOpts...)
	schema, err := result.Schema()
	if err != nil {
		return nil, result.Warnings, err
	}
	return schema, result.Warnings, nil
}

// Generate compiles sources and emits one Go file per protocol. Compiler
// warnings are logged and otherwise ignored; use [Compile] to inspect them.
func Generate(sources []Source, opts ...Option) ([]codegen.OutputFile, error) {
	o := newOptions(opts)
	schema, warnings, err := compile(sources, o)
	for _, warn := range warnings {
		o.logger.Warn(warn.Message(),
			zap.Uint32("code", warn.Code()),
			zap.Stringer("path", warn.Path()),
		)
	}
	if err != nil {
		return nil, err
	}
	return codegen.Generate(schema, codegen.Options{
		Package: o.pkg,
		Role:    o.role,
		Logger:  o.logger,
	})
}
