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

package codegen

import (
	"fmt"
	"strconv"

	"github.com/AidoP/wl-codegen/ir"
	"github.com/AidoP/wl-codegen/wire"
)

// local reports whether iface is emitted along with the current schema.
// Interfaces of dependencies live in other Go packages and are passed
// around as untyped handles.
func (g *generator) local(iface *ir.Interface) bool {
	if iface == nil {
		return false
	}
	found, ok := g.schema.Interface(iface.Name())
	return ok && found == iface
}

// enumType returns the Go type of an enum-typed argument, or "" if the
// argument is not typed by a locally emitted enum.
func (g *generator) enumType(arg *ir.Arg) string {
	enum := arg.Enum()
	if enum == nil || !g.local(enum.Interface()) {
		return ""
	}
	return goName(enum.Interface().Name()) + goName(enum.Name())
}

func (g *generator) argGoType(arg *ir.Arg) string {
	switch arg.Type() {
	case wire.ArgInt:
		if t := g.enumType(arg); t != "" {
			return t
		}
		return "int32"
	case wire.ArgUint:
		if t := g.enumType(arg); t != "" {
			return t
		}
		return "uint32"
	case wire.ArgFixed:
		return "wire.Fixed"
	case wire.ArgString:
		if arg.Nullable() {
			return "*string"
		}
		return "string"
	case wire.ArgArray:
		return "[]byte"
	case wire.ArgFd:
		return "int"
	case wire.ArgObject:
		if iface := arg.Interface(); g.local(iface) {
			return goName(iface.Name())
		}
		return "wire.Handle"
	case wire.ArgNewID:
		if iface := arg.Interface(); g.local(iface) {
			return goName(iface.Name())
		} else if iface != nil {
			return "wire.Handle"
		}
		return "wire.NewID"
	}
	return g.unsupported(arg)
}

// marshalArg returns the encoder call appending the field holding arg.
func (g *generator) marshalArg(arg *ir.Arg, field string) string {
	nullable := strconv.FormatBool(arg.Nullable())
	switch arg.Type() {
	case wire.ArgInt:
		if g.enumType(arg) != "" {
			return fmt.Sprintf("e.PutInt(int32(%s))", field)
		}
		return fmt.Sprintf("e.PutInt(%s)", field)
	case wire.ArgUint:
		if g.enumType(arg) != "" {
			return fmt.Sprintf("e.PutUint(uint32(%s))", field)
		}
		return fmt.Sprintf("e.PutUint(%s)", field)
	case wire.ArgFixed:
		return fmt.Sprintf("e.PutFixed(%s)", field)
	case wire.ArgString:
		if arg.Nullable() {
			return fmt.Sprintf("e.PutNullableText(%s)", field)
		}
		return fmt.Sprintf("e.PutText(%s)", field)
	case wire.ArgArray:
		return fmt.Sprintf("e.PutArray(%s)", field)
	case wire.ArgFd:
		return fmt.Sprintf("e.PutFd(%s)", field)
	case wire.ArgObject:
		return fmt.Sprintf("e.PutObject(%s.ID(), %s)", field, nullable)
	case wire.ArgNewID:
		if arg.Interface() == nil {
			return fmt.Sprintf("e.PutGenericNewID(%s)", field)
		}
		return fmt.Sprintf("e.PutNewID(%s.ID())", field)
	}
	return g.unsupported(arg)
}

// decodeCall returns the decoder call reading arg.
func (g *generator) decodeCall(arg *ir.Arg) string {
	nullable := strconv.FormatBool(arg.Nullable())
	switch arg.Type() {
	case wire.ArgInt:
		return "d.Int()"
	case wire.ArgUint:
		return "d.Uint()"
	case wire.ArgFixed:
		return "d.Fixed()"
	case wire.ArgString:
		if arg.Nullable() {
			return "d.NullableText()"
		}
		return "d.Text()"
	case wire.ArgArray:
		return "d.Array()"
	case wire.ArgFd:
		return "d.Fd()"
	case wire.ArgObject:
		iface := arg.Interface()
		switch {
		case g.local(iface):
			return fmt.Sprintf("d.Object(%sInterfaceName, %s)", goName(iface.Name()), nullable)
		case iface != nil:
			return fmt.Sprintf("d.Object(%q, %s)", iface.Name(), nullable)
		}
		return fmt.Sprintf("d.Object(\"\", %s)", nullable)
	case wire.ArgNewID:
		if arg.Interface() == nil {
			return "d.GenericNewID()"
		}
		return "d.NewID()"
	}
	return g.unsupported(arg)
}

// decodeValue converts the decoded value v into the field type of arg.
func (g *generator) decodeValue(arg *ir.Arg, v string) string {
	switch arg.Type() {
	case wire.ArgInt, wire.ArgUint:
		if t := g.enumType(arg); t != "" {
			return fmt.Sprintf("%s(%s)", t, v)
		}
	case wire.ArgObject:
		if iface := arg.Interface(); g.local(iface) {
			return fmt.Sprintf("%s{h: %s}", goName(iface.Name()), v)
		}
	case wire.ArgNewID:
		iface := arg.Interface()
		switch {
		case g.local(iface):
			return fmt.Sprintf("New%s(%s, version)", goName(iface.Name()), v)
		case iface != nil:
			return fmt.Sprintf("wire.NewHandle(%s, %q, version)", v, iface.Name())
		}
	}
	return v
}

// unsupported records that arg has no Go representation. Schemas
// rejecting such args in checkSchema never reach this path.
func (g *generator) unsupported(arg *ir.Arg) string {
	g.errs = append(g.errs, errUnsupportedArgType(argWhat(arg), arg.Type()))
	return ""
}

func argWhat(arg *ir.Arg) string {
	msg := arg.Message()
	return fmt.Sprintf(
		"arg '%s' of %s '%s.%s'",
		arg.Name(), msg.Direction(), msg.Interface().Name(), msg.Name(),
	)
}

func knownArgType(t wire.ArgType) bool {
	return t.Signature() != '?'
}
