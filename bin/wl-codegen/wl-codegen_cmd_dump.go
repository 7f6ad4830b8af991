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

	"github.com/AidoP/wl-codegen/encoding/irtext"
)

type cmdDump struct {
	common  commonFlags
	outPath string
}

func (*cmdDump) help() *commandHelp {
	return &commandHelp{
		usage:   "dump [options] SCHEMA...",
		summary: "Print the resolved schema as text",
	}
}

func (cmd *cmdDump) flags(flags *pflag.FlagSet) {
	cmd.common.register(flags)
	flags.StringVarP(&cmd.outPath, "output", "o", "", "file to write the listing to (default stdout)")
}

func (cmd *cmdDump) run(ctx context.Context, argv []string) int {
	schema, ok := compileArgs(ctx, &cmd.common, argv)
	if !ok {
		return 1
	}

	if cmd.outPath == "" {
		if err := irtext.EncodeTo(schema, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	fp, err := os.OpenFile(cmd.outPath, openFlags, 0o666)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	writeErr := irtext.EncodeTo(schema, fp)
	closeErr := fp.Close()
	if writeErr != nil {
		fmt.Fprintln(os.Stderr, writeErr)
		return 1
	}
	if closeErr != nil {
		fmt.Fprintln(os.Stderr, closeErr)
		return 1
	}
	return 0
}
