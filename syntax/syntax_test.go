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

package syntax_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/AidoP/wl-codegen/internal/testutil"
	"github.com/AidoP/wl-codegen/syntax"
	"github.com/AidoP/wl-codegen/wire"
)

var (
	testdata     fs.FS
	syntaxErrors map[string]*testutil.Diagnostic
)

func init() {
	var err error
	testdata, err = testutil.TestdataFS()
	if err != nil {
		panic(err)
	}
	syntaxErrors, err = testutil.LoadDiagnostics(
		testdata, "diagnostics/syntax_errors.json",
	)
	if err != nil {
		panic(err)
	}
}

func runSyntaxCase(t *testing.T, testName string) {
	t.Parallel()

	srcPath := fmt.Sprintf("syntax/%s/%s.toml", testName, testName)
	src, err := fs.ReadFile(testdata, srcPath)
	testutil.AssertNoError(t, err)

	expectPath := fmt.Sprintf("syntax/%s/expect_err.json", testName)
	expected := testutil.LoadExpected(
		t, syntaxErrors, testdata, expectPath, "errors",
	)
	if len(expected) != 1 {
		t.Fatalf("%s: expected exactly one error, got %d", expectPath, len(expected))
	}
	expectErr := expected[0]

	_, err = syntax.Parse(src)
	testutil.AssertError(t, err)

	var parseErr *syntax.Error
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *syntax.Error, got %T: %v", err, err)
	}
	testutil.ExpectEq(t, expectErr.Code, parseErr.Code())
	testutil.ExpectMessage(t, &expectErr.Diagnostic, parseErr.Message())
	testutil.ExpectEq(t, expectErr.Path, parseErr.Path().String())
	if expectErr.Line != 0 {
		testutil.ExpectEq(t, expectErr.Line, parseErr.Line())
	}
}

func TestSyntax(t *testing.T) {
	t.Parallel()

	testDirs, err := fs.ReadDir(testdata, "syntax")
	testutil.AssertNoError(t, err)

	for _, testDir := range testDirs {
		if testDir.IsDir() {
			testName := testDir.Name()
			t.Run(testName, func(t *testing.T) {
				runSyntaxCase(t, testName)
			})
		}
	}
}

const coreSchema = `
name = "core"
copyright = "Copyright 2024 The Core Authors"
summary = "core protocol"

[[interface]]
name = "core_display"
version = 3
summary = "the singleton display object"

[[interface.request]]
name = "sync"

[[interface.request.arg]]
name = "callback"
type = "new_id"
interface = "core_callback"

[[interface.request]]
name = "get_registry"
since = 2
destructor = false

[[interface.request.arg]]
name = "registry"
type = "new_id"
interface = "core_registry"

[[interface.event]]
name = "error"

[[interface.event.arg]]
name = "object_id"
type = "object"
allow-null = true

[[interface.event.arg]]
name = "code"
type = "uint"
enum = "error"

[[interface.event.arg]]
name = "message"
type = "string"
nullable = true

[[interface.enum]]
name = "error"
since = 1
description = "global error values"

[[interface.enum.entry]]
name = "invalid_object"
value = 0

[[interface.enum.entry]]
name = "invalid_method"
value = 1
summary = "method doesn't exist"

[[interface.enum.entry]]
name = "bad_method"
value = 1
alias = true
since = 2

[[interface]]
name = "core_callback"
version = 1

[[interface.event]]
name = "done"
destructor = true
`

func TestParse(t *testing.T) {
	proto, err := syntax.Parse([]byte(coreSchema))
	testutil.AssertNoError(t, err)

	testutil.ExpectEq(t, "core", proto.Name)
	testutil.ExpectEq(t, "Copyright 2024 The Core Authors", proto.Copyright)
	testutil.ExpectEq(t, "core protocol", proto.Summary)
	testutil.ExpectEq(t, "protocol core", proto.Path.String())
	if len(proto.Interfaces) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(proto.Interfaces))
	}

	display := proto.Interfaces[0]
	testutil.ExpectEq(t, "core_display", display.Name)
	testutil.ExpectEq(t, uint32(3), display.Version)
	testutil.ExpectEq(t, "the singleton display object", display.Summary)
	testutil.ExpectEq(t, 2, len(display.Requests))
	testutil.ExpectEq(t, 1, len(display.Events))
	testutil.ExpectEq(t, 1, len(display.Enums))

	sync := display.Requests[0]
	testutil.ExpectEq(t, "sync", sync.Name)
	testutil.ExpectEq(t, uint32(0), sync.Since)
	testutil.ExpectEq(t, 1, len(sync.Args))
	testutil.ExpectEq(t, wire.ArgNewID, sync.Args[0].Type)
	testutil.ExpectEq(t, "core_callback", sync.Args[0].Interface)
	testutil.ExpectEq(
		t,
		"protocol core > interface core_display > request sync > arg callback",
		sync.Args[0].Path.String(),
	)

	getRegistry := display.Requests[1]
	testutil.ExpectEq(t, uint32(2), getRegistry.Since)
	testutil.ExpectFalse(t, getRegistry.Destructor)

	errorEvent := display.Events[0]
	testutil.ExpectEq(t, 3, len(errorEvent.Args))
	testutil.ExpectTrue(t, errorEvent.Args[0].Nullable)
	testutil.ExpectEq(t, wire.ArgObject, errorEvent.Args[0].Type)
	testutil.ExpectEq(t, "", errorEvent.Args[0].Interface)
	testutil.ExpectEq(t, "error", errorEvent.Args[1].Enum)
	testutil.ExpectFalse(t, errorEvent.Args[1].Nullable)
	testutil.ExpectTrue(t, errorEvent.Args[2].Nullable)

	enum := display.Enums[0]
	testutil.ExpectEq(t, "error", enum.Name)
	testutil.ExpectFalse(t, enum.Bitfield)
	testutil.ExpectEq(t, uint32(1), enum.Since)
	testutil.ExpectEq(t, "global error values", enum.Description)
	testutil.ExpectEq(t, 3, len(enum.Entries))
	testutil.ExpectEq(t, "method doesn't exist", enum.Entries[1].Summary)
	testutil.ExpectTrue(t, enum.Entries[2].Alias)
	testutil.ExpectEq(t, uint32(2), enum.Entries[2].Since)
	testutil.ExpectEq(t, uint32(1), enum.Entries[2].Value)

	callback := proto.Interfaces[1]
	testutil.ExpectEq(t, 0, len(callback.Requests))
	testutil.ExpectTrue(t, callback.Events[0].Destructor)
}

func TestParseInlineTables(t *testing.T) {
	src := `
name = "inline"
interface = [
	{ name = "a", version = 1, request = [{ name = "ping", arg = [{ name = "serial", type = "uint" }] }] },
]
`
	proto, err := syntax.Parse([]byte(src))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 1, len(proto.Interfaces))
	ping := proto.Interfaces[0].Requests[0]
	testutil.ExpectEq(t, "ping", ping.Name)
	testutil.ExpectEq(t, wire.ArgUint, ping.Args[0].Type)
}

func TestParseEmptyProtocol(t *testing.T) {
	proto, err := syntax.Parse([]byte(`name = "empty-proto"`))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "empty-proto", proto.Name)
	testutil.ExpectEq(t, 0, len(proto.Interfaces))
}

func TestParseInvalidUtf8(t *testing.T) {
	src := []byte("name = \"core\"\n# \xff\n")
	_, err := syntax.Parse(src)
	testutil.AssertError(t, err)

	parseErr := err.(*syntax.Error)
	testutil.ExpectEq(t, uint32(1000), parseErr.Code())
	testutil.ExpectEq(t, 2, parseErr.Line())
	testutil.ExpectEq(t, "", parseErr.Path().String())
	testutil.ExpectEq(
		t,
		"E1000: Source file contains invalid UTF-8 (at line 2)",
		parseErr.Error(),
	)
}

func TestParseTomlLine(t *testing.T) {
	src := []byte("name = \"core\"\n\n[[interface]\n")
	_, err := syntax.Parse(src)
	testutil.AssertError(t, err)

	parseErr := err.(*syntax.Error)
	testutil.ExpectEq(t, uint32(1001), parseErr.Code())
	testutil.ExpectTrue(t, parseErr.Line() >= 3)
}

func TestErrorString(t *testing.T) {
	src := []byte(`
name = "core"

[[interface]]
name = "core_display"
version = 1

[[interface.request]]
name = "sync"
bogus = 1
`)
	_, err := syntax.Parse(src)
	testutil.AssertError(t, err)
	testutil.ExpectEq(
		t,
		"E1002: Unknown key 'bogus' (at protocol core > interface core_display > request sync)",
		err.Error(),
	)
}

func TestPath(t *testing.T) {
	var root syntax.Path
	proto := root.Child(syntax.PathProtocol, "core", 0)
	iface := proto.Child(syntax.PathInterface, "core_display", 0)
	unnamed := iface.Child(syntax.PathEvent, "", 4)

	testutil.ExpectEq(t, "protocol core > interface core_display", iface.String())
	testutil.ExpectEq(t, "protocol core > interface core_display > event #4", unnamed.String())
	testutil.ExpectEq(t, "core_display", unnamed.Name(syntax.PathInterface))
	testutil.ExpectEq(t, "", unnamed.Name(syntax.PathEnum))
	testutil.ExpectEq(t, 1, len(proto))
}
