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

package codegen_test

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AidoP/wl-codegen/codegen"
	"github.com/AidoP/wl-codegen/compiler"
	"github.com/AidoP/wl-codegen/internal/testutil"
	"github.com/AidoP/wl-codegen/ir"
	"github.com/AidoP/wl-codegen/syntax"
	"github.com/AidoP/wl-codegen/wire"
)

func compile(t *testing.T, opts []compiler.CompileOption, srcs ...string) *ir.Schema {
	t.Helper()
	var protocols []*syntax.Protocol
	for _, src := range srcs {
		proto, err := syntax.Parse([]byte(src))
		testutil.AssertNoError(t, err)
		protocols = append(protocols, proto)
	}
	result := compiler.Compile(protocols, opts...)
	schema, err := result.Schema()
	testutil.AssertNoError(t, err)
	return schema
}

func generate(t *testing.T, schema *ir.Schema, opts codegen.Options) []codegen.OutputFile {
	t.Helper()
	files, err := codegen.Generate(schema, opts)
	testutil.AssertNoError(t, err)
	return files
}

func codes(t *testing.T, err error) []uint32 {
	t.Helper()
	var list codegen.ErrorList
	testutil.AssertTrue(t, errors.As(err, &list))
	var out []uint32
	for _, e := range list {
		out = append(out, e.Code())
	}
	return out
}

// declarations lists the top-level identifiers of a Go file, with methods
// named "Type.Method".
func declarations(t *testing.T, name string, src string) []string {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), name, src, parser.SkipObjectResolution)
	testutil.AssertNoError(t, err)

	var out []string
	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.FuncDecl:
			if decl.Recv == nil {
				out = append(out, decl.Name.Name)
				continue
			}
			recv := decl.Recv.List[0].Type
			if star, ok := recv.(*ast.StarExpr); ok {
				recv = star.X
			}
			out = append(out, recv.(*ast.Ident).Name+"."+decl.Name.Name)
		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				switch spec := spec.(type) {
				case *ast.TypeSpec:
					out = append(out, spec.Name.Name)
				case *ast.ValueSpec:
					for _, ident := range spec.Names {
						out = append(out, ident.Name)
					}
				}
			}
		}
	}
	slices.Sort(out)
	return out
}

func TestGenerateTestproto(t *testing.T) {
	t.Parallel()
	src, err := os.ReadFile("../internal/testproto/testproto.toml")
	testutil.AssertNoError(t, err)
	want, err := os.ReadFile("../internal/testproto/testproto.go")
	testutil.AssertNoError(t, err)

	schema := compile(t, nil, string(src))
	files := generate(t, schema, codegen.Options{Role: codegen.RoleServer})
	testutil.AssertTrue(t, len(files) == 1)
	testutil.ExpectEq(t, "testproto.go", files[0].Path)

	testutil.ExpectNoDiff(
		t,
		strings.Join(declarations(t, "testproto.go", string(want)), "\n"),
		strings.Join(declarations(t, files[0].Path, files[0].Content), "\n"),
	)
	testutil.ExpectTrue(t, strings.HasPrefix(
		files[0].Content,
		"// Code generated by wl-codegen from protocol testproto. DO NOT EDIT.\n",
	))
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()
	src, err := os.ReadFile("../internal/testproto/testproto.toml")
	testutil.AssertNoError(t, err)

	first := generate(t, compile(t, nil, string(src)), codegen.Options{})
	second := generate(t, compile(t, nil, string(src)), codegen.Options{})
	testutil.AssertTrue(t, len(first) == len(second))
	for ii := range first {
		testutil.ExpectEq(t, first[ii].Path, second[ii].Path)
		testutil.ExpectNoDiff(t, first[ii].Content, second[ii].Content)
	}
}

const surfaceSrc = `
name = "core-surface"
copyright = "Copyright 2024"

[[interface]]
name = "core_surface"
version = 3
summary = "a rectangle"

[[interface.request]]
name = "attach"

[[interface.request.arg]]
name = "buffer"
type = "object"
interface = "core_buffer"
nullable = true

[[interface.request.arg]]
name = "x"
type = "int"

[[interface.request]]
name = "set_scale"
since = 3

[[interface.request.arg]]
name = "scale"
type = "fixed"

[[interface.event]]
name = "enter"

[[interface.event.arg]]
name = "output"
type = "object"

[[interface.event.arg]]
name = "type"
type = "array"

[[interface]]
name = "core_buffer"
version = 1
`

func TestGenerateClientRole(t *testing.T) {
	t.Parallel()
	files := generate(t, compile(t, nil, surfaceSrc), codegen.Options{})
	testutil.AssertTrue(t, len(files) == 1)
	file := files[0]
	testutil.ExpectEq(t, "core_surface.go", file.Path)

	decls := declarations(t, file.Path, file.Content)
	testutil.ExpectTrue(t, slices.Contains(decls, "CoreSurfaceEventHandler"))
	testutil.ExpectTrue(t, slices.Contains(decls, "DispatchCoreSurfaceEvent"))
	testutil.ExpectFalse(t, slices.Contains(decls, "CoreSurfaceRequestHandler"))
	// core_buffer has no events, so there is nothing to dispatch.
	testutil.ExpectFalse(t, slices.Contains(decls, "DispatchCoreBufferEvent"))

	for _, snippet := range []string{
		"package coresurface\n",
		"// Copyright 2024\n",
		"\tBuffer CoreBuffer\n",
		"e.PutObject(m.Buffer.ID(), true)",
		"d.Object(CoreBufferInterfaceName, true)",
		"e.PutFixed(m.Scale)",
		"Enter(self CoreSurface, output wire.Handle, type_ []byte) error",
		`{Name: "set_scale", Since: 3, Signature: "f"},`,
		`{Name: "attach", Since: 1, Signature: "?oi"},`,
	} {
		if !strings.Contains(file.Content, snippet) {
			t.Errorf("generated code is missing %q", snippet)
		}
	}
}

func TestGenerateServerVersionCheck(t *testing.T) {
	t.Parallel()
	files := generate(t, compile(t, nil, surfaceSrc), codegen.Options{
		Package: "surfaces",
		Role:    codegen.RoleServer,
	})
	file := files[0]
	testutil.ExpectTrue(t, strings.Contains(file.Content, "package surfaces\n"))
	testutil.ExpectTrue(t, strings.Contains(
		file.Content,
		`return wire.VersionError(CoreSurfaceInterfaceName, "set_scale", 3, self.Version())`,
	))
	testutil.ExpectTrue(t, strings.Contains(
		file.Content,
		"SetScale(self CoreSurface, scale wire.Fixed) error",
	))
}

const shellSrc = `
name = "shell"

[[interface]]
name = "shell_surface"
version = 1

[[interface.request]]
name = "get_popup"

[[interface.request.arg]]
name = "id"
type = "new_id"
interface = "core_buffer"

[[interface.request.arg]]
name = "parent"
type = "object"
interface = "core_surface"
`

func TestGenerateDependencyTypes(t *testing.T) {
	t.Parallel()
	core := compile(t, nil, surfaceSrc)
	deps, err := compiler.Merge([]*ir.Schema{core})
	testutil.AssertNoError(t, err)

	shell := compile(t, []compiler.CompileOption{compiler.WithDependencies(deps)}, shellSrc)
	files := generate(t, shell, codegen.Options{Role: codegen.RoleServer})
	testutil.AssertTrue(t, len(files) == 1)
	content := files[0].Content

	// Interfaces of dependencies are referenced by name only.
	testutil.ExpectFalse(t, strings.Contains(content, "CoreSurface{"))
	for _, snippet := range []string{
		"\tParent wire.Handle\n",
		`d.Object("core_surface", false)`,
		`m.ID = wire.NewHandle(v0, "core_buffer", version)`,
	} {
		if !strings.Contains(content, snippet) {
			t.Errorf("generated code is missing %q", snippet)
		}
	}
}

const callbackSrc = `
name = "core"

[[interface]]
name = "core_callback"
version = 1

[[interface.event]]
name = "done"
destructor = true

[[interface.event.arg]]
name = "callback_data"
type = "uint"

[[interface.request]]
name = "ping"
`

func TestGenerateDestructor(t *testing.T) {
	t.Parallel()
	schema := compile(t, nil, callbackSrc)

	client := generate(t, schema, codegen.Options{Role: codegen.RoleClient})[0].Content
	testutil.ExpectTrue(t, strings.Contains(
		client,
		`{Name: "done", Since: 1, Signature: "u", Destructor: true},`,
	))
	testutil.ExpectTrue(t, strings.Contains(client, `{Name: "ping", Since: 1, Signature: ""},`))
	testutil.ExpectTrue(t, strings.Contains(
		client,
		"// done is a destructor: it ends the lifetime of the core_callback object.\n",
	))
	testutil.ExpectTrue(t, strings.Contains(client, "\t// Destructor. self is retired once this method returns nil.\n"))
	testutil.ExpectTrue(t, strings.Contains(
		client,
		"\t\tif err := h.Done(self, m.CallbackData); err != nil {\n"+
			"\t\t\treturn err\n"+
			"\t\t}\n"+
			"\t\tctx.Destroyed(self.Handle())\n"+
			"\t\treturn nil\n",
	))

	// The server only receives ping, which does not retire the object.
	server := generate(t, schema, codegen.Options{Role: codegen.RoleServer})[0].Content
	testutil.ExpectTrue(t, strings.Contains(server, "return h.Ping(self)\n"))
	testutil.ExpectFalse(t, strings.Contains(server, "ctx.Destroyed"))
	testutil.ExpectTrue(t, strings.Contains(
		server,
		"// Object arguments are resolved through ctx.Objects. When it is nil they are\n"+
			"// not checked and their handles have version 0.\n"+
			"func DispatchCoreCallbackRequest(",
	))
}

func TestGenerateUnsupportedArgType(t *testing.T) {
	t.Parallel()
	b := ir.NewBuilder()
	proto := b.AddProtocol(ir.ProtocolInfo{Name: "core"})
	iface := b.AddInterface(proto, ir.InterfaceInfo{Name: "core_thing", Version: 1})
	msg := b.AddRequest(iface, ir.MessageInfo{Name: "poke", Since: 1})
	b.AddArg(msg, ir.ArgInfo{Name: "what", Type: 0})
	b.AddArg(msg, ir.ArgInfo{Name: "more", Type: wire.ArgFd + 1})

	_, err := codegen.Generate(b.Finish(), codegen.Options{Role: codegen.RoleServer})
	testutil.AssertError(t, err)
	testutil.ExpectSliceEq(t, []uint32{5004, 5004}, codes(t, err))
	testutil.ExpectTrue(t, strings.Contains(
		err.Error(),
		"E5004: Unsupported type 0 of arg 'what' of request 'core_thing.poke'",
	))
}

func TestGenerateEmptyProtocol(t *testing.T) {
	t.Parallel()
	files := generate(t, compile(t, nil, `name = "empty"`), codegen.Options{})
	testutil.AssertTrue(t, len(files) == 1)
	testutil.ExpectFalse(t, strings.Contains(files[0].Content, "import"))
	testutil.ExpectTrue(t, strings.Contains(files[0].Content, "package empty\n"))
}

func TestGenerateInvalidPackage(t *testing.T) {
	t.Parallel()
	schema := compile(t, nil, surfaceSrc)
	for _, pkg := range []string{"func", "9lives", "has space"} {
		_, err := codegen.Generate(schema, codegen.Options{Package: pkg})
		testutil.AssertError(t, err)
		testutil.ExpectSliceEq(t, []uint32{5001}, codes(t, err))
	}
}

func TestGenerateCollision(t *testing.T) {
	t.Parallel()
	src := `
name = "core"

[[interface]]
name = "core_thing"
version = 1

[[interface.enum]]
name = "version"

[[interface.enum.entry]]
name = "one"
value = 1
`
	_, err := codegen.Generate(compile(t, nil, src), codegen.Options{})
	testutil.AssertError(t, err)
	testutil.ExpectSliceEq(t, []uint32{5000}, codes(t, err))
	testutil.ExpectTrue(t, strings.Contains(err.Error(), "'CoreThingVersion'"))
}

func TestGenerateFieldCollision(t *testing.T) {
	t.Parallel()
	src := `
name = "core"

[[interface]]
name = "core_thing"
version = 1

[[interface.request]]
name = "set"

[[interface.request.arg]]
name = "marshal_message"
type = "uint"
`
	_, err := codegen.Generate(compile(t, nil, src), codegen.Options{})
	testutil.AssertError(t, err)
	testutil.ExpectSliceEq(t, []uint32{5000}, codes(t, err))
}

func TestGenerateFileCollision(t *testing.T) {
	t.Parallel()
	_, err := codegen.Generate(
		compile(t, nil, `name = "core-a"`, `name = "core_a"`),
		codegen.Options{Package: "core"},
	)
	testutil.AssertError(t, err)
	testutil.ExpectSliceEq(t, []uint32{5000}, codes(t, err))
}

func TestGenerateLogging(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	generate(t, compile(t, nil, surfaceSrc), codegen.Options{Logger: zap.New(core)})

	emitted := logs.FilterMessage("emitted file").All()
	testutil.AssertTrue(t, len(emitted) == 1)
	testutil.ExpectEq(t, "core_surface.go", emitted[0].ContextMap()["path"])
}

func TestParseRole(t *testing.T) {
	t.Parallel()
	role, err := codegen.ParseRole("server")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, codegen.RoleServer, role)
	testutil.ExpectEq(t, "server", role.String())

	role, err = codegen.ParseRole("client")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, codegen.RoleClient, role)

	_, err = codegen.ParseRole("peer")
	testutil.AssertError(t, err)
}
