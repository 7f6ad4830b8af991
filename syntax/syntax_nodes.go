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
	"github.com/AidoP/wl-codegen/wire"
)

// Protocol is the parsed form of one schema file. Slices keep declaration
// order, which later determines opcodes.
type Protocol struct {
	Path        Path
	Name        string
	Copyright   string
	Summary     string
	Description string
	Interfaces  []*Interface
}

type Interface struct {
	Path        Path
	Name        string
	Version     uint32
	Summary     string
	Description string
	Requests    []*Message
	Events      []*Message
	Enums       []*Enum
}

// Message is a request or an event. Since is zero when the schema does not
// set it.
type Message struct {
	Path        Path
	Name        string
	Since       uint32
	Destructor  bool
	Summary     string
	Description string
	Args        []*Arg
}

// Arg is one message argument. Interface and Enum hold the referenced
// names verbatim; they are bound by the compiler.
type Arg struct {
	Path      Path
	Name      string
	Type      wire.ArgType
	Interface string
	Enum      string
	Nullable  bool
	Summary   string
}

type Enum struct {
	Path        Path
	Name        string
	Bitfield    bool
	Since       uint32
	Summary     string
	Description string
	Entries     []*Entry
}

type Entry struct {
	Path        Path
	Name        string
	Value       uint32
	Since       uint32
	Alias       bool
	Summary     string
	Description string
}
