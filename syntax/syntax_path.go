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
	"strconv"
	"strings"
)

// PathKind is the kind of schema element named by one step of a [Path].
type PathKind uint8

const (
	PathProtocol PathKind = iota + 1
	PathInterface
	PathRequest
	PathEvent
	PathArg
	PathEnum
	PathEntry
)

func (k PathKind) String() string {
	switch k {
	case PathProtocol:
		return "protocol"
	case PathInterface:
		return "interface"
	case PathRequest:
		return "request"
	case PathEvent:
		return "event"
	case PathArg:
		return "arg"
	case PathEnum:
		return "enum"
	case PathEntry:
		return "entry"
	}
	return "unknown"
}

// PathElem is one step of a [Path]. Elements declared without a name are
// identified by their zero-based position instead.
type PathElem struct {
	Kind  PathKind
	Name  string
	Index int
}

func (e PathElem) String() string {
	if e.Name == "" {
		return e.Kind.String() + " #" + strconv.Itoa(e.Index)
	}
	return e.Kind.String() + " " + e.Name
}

// Path locates a schema element by the chain of names leading to it, such
// as protocol > interface > request > arg.
type Path []PathElem

// Child returns a copy of p extended by one element.
func (p Path) Child(kind PathKind, name string, index int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, PathElem{Kind: kind, Name: name, Index: index})
}

// Name returns the name of the innermost element of the given kind, or ""
// if p has no such element.
func (p Path) Name(kind PathKind) string {
	for ii := len(p) - 1; ii >= 0; ii-- {
		if p[ii].Kind == kind {
			return p[ii].Name
		}
	}
	return ""
}

func (p Path) String() string {
	var buf strings.Builder
	for ii, elem := range p {
		if ii > 0 {
			buf.WriteString(" > ")
		}
		buf.WriteString(elem.String())
	}
	return buf.String()
}
