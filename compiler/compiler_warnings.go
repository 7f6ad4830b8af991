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

package compiler

import (
	"fmt"

	"github.com/AidoP/wl-codegen/syntax"
)

type Warning struct {
	code    uint32
	message string
	path    syntax.Path
}

func (w *Warning) String() string {
	if len(w.path) == 0 {
		return fmt.Sprintf("W%d: %s", w.code, w.message)
	}
	return fmt.Sprintf("W%d: %s (at %s)", w.code, w.message, w.path)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) Path() syntax.Path {
	return w.path
}

func warnEmptyInterface(path syntax.Path, name string) *Warning {
	return &Warning{
		code:    4000,
		message: fmt.Sprintf("Interface '%s' is empty", name),
		path:    path,
	}
}

func warnRedundantSince(path syntax.Path) *Warning {
	return &Warning{
		code:    4001,
		message: "since = 1 is the default and can be omitted",
		path:    path,
	}
}
