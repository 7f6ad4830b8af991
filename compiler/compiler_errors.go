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
	"strings"

	"github.com/AidoP/wl-codegen/syntax"
	"github.com/AidoP/wl-codegen/wire"
)

// ErrorKind classifies compile errors.
type ErrorKind uint8

const (
	// KindUnresolvedReference is a reference to an interface or enum that
	// no schema in the compilation defines.
	KindUnresolvedReference ErrorKind = iota + 1

	// KindSemanticConstraint is a well-formed schema that breaks a rule of
	// the protocol model.
	KindSemanticConstraint
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnresolvedReference:
		return "unresolved reference"
	case KindSemanticConstraint:
		return "semantic constraint"
	}
	return "unknown"
}

type Error struct {
	code    uint32
	kind    ErrorKind
	message string
	path    syntax.Path
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	if len(err.path) == 0 {
		return fmt.Sprintf("E%d: %s", err.code, err.message)
	}
	return fmt.Sprintf("E%d: %s (at %s)", err.code, err.message, err.path)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Kind() ErrorKind {
	return err.kind
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Path() syntax.Path {
	return err.path
}

// ErrorList is every error found by one compilation.
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

func errInterfaceNotFound(path syntax.Path, name string) error {
	return &Error{
		code:    2000,
		kind:    KindUnresolvedReference,
		message: fmt.Sprintf("Interface '%s' not found", name),
		path:    path,
	}
}

func errEnumNotFound(path syntax.Path, name string) error {
	return &Error{
		code:    2001,
		kind:    KindUnresolvedReference,
		message: fmt.Sprintf("Enum '%s' not found", name),
		path:    path,
	}
}

func errDuplicateInterface(path syntax.Path, name, prevProtocol string) error {
	return &Error{
		code: 3000,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Duplicate interface '%s' (first defined by protocol '%s')",
			name, prevProtocol,
		),
		path: path,
	}
}

func errBitfieldValue(path syntax.Path, name string, value uint32) error {
	return &Error{
		code: 3001,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Bitfield entry '%s' has value 0x%X, which is not a single bit",
			name, value,
		),
		path: path,
	}
}

func errDuplicateValue(path syntax.Path, name, prev string, value uint32) error {
	return &Error{
		code: 3002,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Entry '%s' reuses value %d of entry '%s' without alias = true",
			name, value, prev,
		),
		path: path,
	}
}

func errMessageSince(path syntax.Path, since, version uint32) error {
	return &Error{
		code: 3003,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Message since %d exceeds interface version %d",
			since, version,
		),
		path: path,
	}
}

func errEnumSince(path syntax.Path, what string, since, version uint32) error {
	return &Error{
		code: 3004,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"%s since %d exceeds interface version %d",
			what, since, version,
		),
		path: path,
	}
}

func errSinceDecreases(
	path syntax.Path,
	since uint32,
	prev string,
	prevSince uint32,
) error {
	return &Error{
		code: 3005,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Message since %d is lower than since %d of preceding message '%s'",
			since, prevSince, prev,
		),
		path: path,
	}
}

func errInterfaceOnNonObject(path syntax.Path, argType wire.ArgType) error {
	return &Error{
		code: 3006,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Argument of type %s can not name an interface",
			argType,
		),
		path: path,
	}
}

func errEnumOnNonInteger(path syntax.Path, argType wire.ArgType) error {
	return &Error{
		code: 3007,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Argument of type %s can not name an enum",
			argType,
		),
		path: path,
	}
}

func errNotNullable(path syntax.Path, argType wire.ArgType) error {
	return &Error{
		code: 3008,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Argument of type %s can not be nullable",
			argType,
		),
		path: path,
	}
}

func errBitfieldOnInt(path syntax.Path, enum string) error {
	return &Error{
		code: 3009,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Bitfield enum '%s' can not type an int argument",
			enum,
		),
		path: path,
	}
}

func errAliasWithoutTarget(path syntax.Path, name string, value uint32) error {
	return &Error{
		code: 3010,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Alias entry '%s' value %d matches no earlier entry",
			name, value,
		),
		path: path,
	}
}

func errDependencyConflict(name, protoA, protoB string) error {
	return &Error{
		code: 3000,
		kind: KindSemanticConstraint,
		message: fmt.Sprintf(
			"Duplicate interface '%s' (defined by protocols '%s' and '%s')",
			name, protoA, protoB,
		),
	}
}
