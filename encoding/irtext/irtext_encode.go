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

// Package irtext renders a compiled schema as a line-oriented listing.
//
// The listing shows opcodes, versions and resolved references. It is meant
// for inspection and golden tests, and is not parsed back.
package irtext

import (
	"fmt"
	"io"
	"strings"

	"github.com/AidoP/wl-codegen/ir"
	"github.com/AidoP/wl-codegen/wire"
)

func Encode(schema *ir.Schema) string {
	var buf strings.Builder
	EncodeTo(schema, &buf)
	return buf.String()
}

func EncodeTo(schema *ir.Schema, w io.Writer) error {
	e := encoder{w: w}
	for proto := range schema.Protocols() {
		e.visitProtocol(proto)
	}
	return e.err
}

type encoder struct {
	w      io.Writer
	indent int
	err    error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("\t", e.indent); indent != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
		return
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) visitProtocol(proto *ir.Protocol) {
	e.linef("protocol %s", proto.Name())
	for iface := range proto.Interfaces() {
		e.linef("interface %s v%d", iface.Name(), iface.Version())
		e.indent += 1
		for msg := range iface.Requests() {
			e.visitMessage(msg)
		}
		for msg := range iface.Events() {
			e.visitMessage(msg)
		}
		for enum := range iface.Enums() {
			e.visitEnum(enum)
		}
		e.indent -= 1
	}
}

func (e *encoder) visitMessage(msg *ir.Message) {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s %d %s", msg.Direction(), msg.Opcode(), msg.Name())
	if msg.Destructor() {
		buf.WriteString(" destructor")
	}
	writeSince(&buf, msg.Since())
	e.line(buf.String())

	e.indent += 1
	for arg := range msg.Args() {
		e.line(fmtArg(arg))
	}
	e.indent -= 1
}

func fmtArg(arg *ir.Arg) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "arg %s: %s", arg.Name(), arg.Type())
	switch arg.Type() {
	case wire.ArgObject, wire.ArgNewID:
		if iface := arg.Interface(); iface != nil {
			fmt.Fprintf(&buf, "<%s>", iface.Name())
		} else {
			buf.WriteString("<*>")
		}
	}
	if arg.Nullable() {
		buf.WriteString(" nullable")
	}
	if enum := arg.Enum(); enum != nil {
		fmt.Fprintf(&buf, " enum=%s", enum.QualifiedName())
	}
	return buf.String()
}

func (e *encoder) visitEnum(enum *ir.Enum) {
	var buf strings.Builder
	fmt.Fprintf(&buf, "enum %s", enum.Name())
	if enum.Bitfield() {
		buf.WriteString(" bitfield")
	}
	writeSince(&buf, enum.Since())
	e.line(buf.String())

	e.indent += 1
	for entry := range enum.Entries() {
		buf.Reset()
		if enum.Bitfield() {
			fmt.Fprintf(&buf, "%s = 0x%X", entry.Name(), entry.Value())
		} else {
			fmt.Fprintf(&buf, "%s = %d", entry.Name(), entry.Value())
		}
		writeSince(&buf, entry.Since())
		if entry.Alias() {
			buf.WriteString(" alias")
		}
		e.line(buf.String())
	}
	e.indent -= 1
}

func writeSince(buf *strings.Builder, since uint32) {
	if since > 1 {
		fmt.Fprintf(buf, " since=%d", since)
	}
}
