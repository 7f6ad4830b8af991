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
	"strings"

	"github.com/AidoP/wl-codegen/wire"
)

// Error is a failure to emit Go code for a schema that compiled cleanly.
type Error struct {
	code    uint32
	message string
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

// ErrorList is every error found while emitting one schema.
type ErrorList []*Error

func (list ErrorList) Error() string {
	var buf strings.Builder
	for ii, err := range list {
		if ii > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(err.Error())
	}
	return buf.String()
}

func (list ErrorList) Unwrap() []error {
	out := make([]error, len(list))
	for ii, err := range list {
		out[ii] = err
	}
	return out
}

func errIdentCollision(ident, first, second string) *Error {
	return &Error{
		code: 5000,
		message: fmt.Sprintf(
			"Go identifier '%s' of %s collides with %s",
			ident, second, first,
		),
	}
}

func errInvalidPackage(name string) *Error {
	return &Error{
		code:    5001,
		message: fmt.Sprintf("Invalid Go package name %q", name),
	}
}

func errOpcodeMismatch(iface, msg string, opcode uint16, index int) *Error {
	return &Error{
		code: 5002,
		message: fmt.Sprintf(
			"Message '%s.%s' has opcode %d at position %d",
			iface, msg, opcode, index,
		),
	}
}

func errNoGoName(what, name string) *Error {
	return &Error{
		code:    5003,
		message: fmt.Sprintf("Can not derive a Go identifier from %s '%s'", what, name),
	}
}

func errUnsupportedArgType(what string, t wire.ArgType) *Error {
	return &Error{
		code:    5004,
		message: fmt.Sprintf("Unsupported type %d of %s", uint8(t), what),
	}
}

func errFormat(path string, err error) *Error {
	return &Error{
		code:    5005,
		message: fmt.Sprintf("Formatting %s: %v", path, err),
	}
}
