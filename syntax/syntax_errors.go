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

package syntax

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// Error is a structural defect in a schema file.
type Error struct {
	code    uint32
	message string
	path    Path
	line    int
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	switch {
	case len(err.path) > 0:
		return fmt.Sprintf("E%d: %s (at %s)", err.code, err.message, err.path)
	case err.line > 0:
		return fmt.Sprintf("E%d: %s (at line %d)", err.code, err.message, err.line)
	}
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

// Path returns the location of the offending element. It is empty for
// errors detected before the schema structure is known.
func (err *Error) Path() Path {
	return err.path
}

// Line returns the 1-based source line of the error, or 0 if unknown.
func (err *Error) Line() int {
	return err.line
}

func errInvalidUtf8(src []byte) error {
	line := 1
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size <= 1 {
			break
		}
		if r == '\n' {
			line++
		}
		src = src[size:]
	}
	return &Error{
		code:    1000,
		message: "Source file contains invalid UTF-8",
		line:    line,
	}
}

func errTomlSyntax(err error) error {
	var parseErr toml.ParseError
	if errors.As(err, &parseErr) {
		return &Error{
			code:    1001,
			message: fmt.Sprintf("Invalid TOML: %s", parseErr.Message),
			line:    parseErr.Position.Line,
		}
	}
	return &Error{
		code:    1001,
		message: fmt.Sprintf("Invalid TOML: %v", err),
	}
}

func errUnknownKey(path Path, key string) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Unknown key '%s'", key),
		path:    path,
	}
}

func errMissingKey(path Path, key string) error {
	return &Error{
		code:    1003,
		message: fmt.Sprintf("Missing required key '%s'", key),
		path:    path,
	}
}

func errWrongType(path Path, key, want string, got any) error {
	return &Error{
		code: 1004,
		message: fmt.Sprintf(
			"Key '%s' must be %s, got %s",
			key, want, tomlTypeName(got),
		),
		path: path,
	}
}

func errOutOfRange(path Path, key string, value int64, min, max uint32) error {
	return &Error{
		code: 1005,
		message: fmt.Sprintf(
			"Value %d of key '%s' out of range [%d, %d]",
			value, key, min, max,
		),
		path: path,
	}
}

func errUnknownArgType(path Path, name string) error {
	return &Error{
		code: 1006,
		message: fmt.Sprintf(
			"Unknown argument type %q (expected one of int, uint, fixed,"+
				" string, object, new_id, array, fd)",
			name,
		),
		path: path,
	}
}

func errInvalidName(path Path, key, name string) error {
	return &Error{
		code:    1007,
		message: fmt.Sprintf("Invalid %s %q", key, name),
		path:    path,
	}
}

func errDuplicateName(path Path, kind PathKind, name string) error {
	return &Error{
		code:    1008,
		message: fmt.Sprintf("Duplicate %s name '%s'", kind, name),
		path:    path,
	}
}

func errConflictingKeys(path Path, a, b string) error {
	return &Error{
		code:    1009,
		message: fmt.Sprintf("Keys '%s' and '%s' are mutually exclusive", a, b),
		path:    path,
	}
}

func tomlTypeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case []map[string]any:
		return "array of tables"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	}
	return fmt.Sprintf("%T", v)
}
