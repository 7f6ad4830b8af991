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
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AidoP/wl-codegen/internal/testutil"
)

const coreSchema = `
name = "core"

[[interface]]
name = "core_display"
version = 1

[[interface.request]]
name = "sync"

[[interface.request.arg]]
name = "callback"
type = "new_id"
interface = "core_callback"

[[interface]]
name = "core_callback"
version = 1

[[interface.event]]
name = "done"

[[interface.event.arg]]
name = "callback_data"
type = "uint"
`

func runCommand(t *testing.T, cmd command, args ...string) int {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cmd.flags(flags)
	testutil.AssertNoError(t, flags.Parse(args))
	return cmd.run(context.Background(), flags.Args())
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "core.toml")
	writeFile(t, schemaPath, coreSchema)
	outDir := filepath.Join(dir, "out")

	rc := runCommand(t, &cmdGenerate{}, "-o", outDir, "--role", "server", schemaPath)
	testutil.AssertTrue(t, rc == 0)

	content, err := os.ReadFile(filepath.Join(outDir, "core.go"))
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, strings.Contains(string(content), "package core\n"))
	testutil.ExpectTrue(t, strings.Contains(string(content), "type CoreDisplayRequestHandler interface {"))
}

func TestGenerateCommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "schemas", "core.toml"), coreSchema)
	configPath := filepath.Join(dir, "project.toml")
	writeFile(t, configPath, `
package = "wl"
output = "gen"
schemas = ["schemas/*.toml"]
`)

	rc := runCommand(t, &cmdGenerate{}, "-c", configPath)
	testutil.AssertTrue(t, rc == 0)

	content, err := os.ReadFile(filepath.Join(dir, "gen", "core.go"))
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, strings.Contains(string(content), "package wl\n"))
	testutil.ExpectTrue(t, strings.Contains(string(content), "type CoreCallbackEventHandler interface {"))
}

func TestGenerateCommandErrors(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "core.toml")
	writeFile(t, schemaPath, coreSchema)
	badPath := filepath.Join(dir, "bad.toml")
	writeFile(t, badPath, "name = \"bad\"\nbogus = true\n")

	testutil.ExpectEq(t, 1, runCommand(t, &cmdGenerate{}, schemaPath))
	testutil.ExpectEq(t, 1, runCommand(t, &cmdGenerate{}, "-o", dir, "--role", "peer", schemaPath))
	testutil.ExpectEq(t, 1, runCommand(t, &cmdGenerate{}, "-o", dir, badPath))
	testutil.ExpectEq(t, 1, runCommand(t, &cmdGenerate{}, "-o", dir, "--package", "func", schemaPath))
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	corePath := filepath.Join(dir, "core.toml")
	writeFile(t, corePath, coreSchema)
	shellPath := filepath.Join(dir, "shell.toml")
	writeFile(t, shellPath, `
name = "shell"

[[interface]]
name = "shell_base"
version = 1

[[interface.request]]
name = "pong"

[[interface.request.arg]]
name = "display"
type = "object"
interface = "core_display"
`)

	testutil.ExpectEq(t, 0, runCommand(t, &cmdCheck{}, corePath))
	testutil.ExpectEq(t, 1, runCommand(t, &cmdCheck{}, shellPath))
	testutil.ExpectEq(t, 0, runCommand(t, &cmdCheck{}, "--dep", corePath, shellPath))
	testutil.ExpectEq(t, 1, runCommand(t, &cmdCheck{}))
}

func TestDumpCommand(t *testing.T) {
	dir := t.TempDir()
	corePath := filepath.Join(dir, "core.toml")
	writeFile(t, corePath, coreSchema)
	outPath := filepath.Join(dir, "core.txt")

	testutil.ExpectEq(t, 0, runCommand(t, &cmdDump{}, "-o", outPath, corePath))
	content, err := os.ReadFile(outPath)
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, strings.HasPrefix(string(content), "protocol core\n"))
	testutil.ExpectTrue(t, strings.Contains(string(content), "\trequest 0 sync\n"))
}

func TestRootCommand(t *testing.T) {
	corePath := filepath.Join(t.TempDir(), "core.toml")
	writeFile(t, corePath, coreSchema)

	for _, tc := range []struct {
		args []string
		want int
	}{
		{[]string{"check", corePath}, 0},
		{[]string{"-v", "check", corePath}, 0},
		{[]string{"check", "--verbose", corePath}, 0},
		{[]string{"check"}, 1},
		{[]string{}, 1},
	} {
		exitCode := -1
		root := newRootCommand(context.Background(), &exitCode)
		root.SetArgs(tc.args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		testutil.AssertNoError(t, root.Execute())
		testutil.ExpectEq(t, tc.want, exitCode)
	}

	exitCode := 0
	root := newRootCommand(context.Background(), &exitCode)
	root.SetArgs([]string{"bogus"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	testutil.AssertError(t, root.Execute())
}

func TestCommandLogger(t *testing.T) {
	corePath := filepath.Join(t.TempDir(), "core.toml")
	writeFile(t, corePath, coreSchema)

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := withLogger(context.Background(), zap.New(core))
	var cmd cmdCheck
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cmd.flags(flags)
	testutil.AssertNoError(t, flags.Parse([]string{corePath}))

	testutil.ExpectEq(t, 0, cmd.run(ctx, flags.Args()))
	testutil.ExpectEq(t, 1, logs.FilterMessage("parsed source").Len())

	// Without an installed logger commands stay quiet.
	testutil.AssertTrue(t, loggerFrom(context.Background()) != nil)
}
