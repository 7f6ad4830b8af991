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
	"go/token"
	"strings"
)

var initialisms = map[string]string{
	"api":  "API",
	"cpu":  "CPU",
	"dpi":  "DPI",
	"fd":   "FD",
	"gpu":  "GPU",
	"http": "HTTP",
	"id":   "ID",
	"json": "JSON",
	"rgb":  "RGB",
	"rgba": "RGBA",
	"ui":   "UI",
	"uri":  "URI",
	"url":  "URL",
	"utf8": "UTF8",
	"xml":  "XML",
}

func splitName(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
}

// goName converts a schema name such as "object_id" into an exported Go
// identifier ("ObjectID"). The result is empty when name has no
// alphanumeric parts.
func goName(name string) string {
	var buf strings.Builder
	for _, part := range splitName(name) {
		if upper, ok := initialisms[strings.ToLower(part)]; ok {
			buf.WriteString(upper)
			continue
		}
		buf.WriteString(strings.ToUpper(part[:1]))
		buf.WriteString(part[1:])
	}
	return buf.String()
}

// paramName converts a schema name into an unexported Go identifier.
// Keywords and "self" get a trailing underscore.
func paramName(name string) string {
	parts := splitName(name)
	if len(parts) == 0 {
		return ""
	}
	var buf strings.Builder
	first := parts[0]
	if _, ok := initialisms[strings.ToLower(first)]; ok {
		buf.WriteString(strings.ToLower(first))
	} else {
		buf.WriteString(strings.ToLower(first[:1]))
		buf.WriteString(first[1:])
	}
	buf.WriteString(goName(strings.Join(parts[1:], "_")))

	out := buf.String()
	if token.IsKeyword(out) || out == "self" {
		out += "_"
	}
	return out
}

// lowerFirst turns an exported identifier into its unexported form.
func lowerFirst(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// fileName returns the output file name of a protocol.
func fileName(protocol string) string {
	return strings.ToLower(strings.ReplaceAll(protocol, "-", "_")) + ".go"
}

// defaultPackage derives a Go package name from a protocol name.
func defaultPackage(protocol string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(protocol))
}

func validIdent(name string) bool {
	return name != "" && token.IsIdentifier(name)
}
