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

// Package ir defines the resolved, immutable form of a protocol schema.
//
// IR values are produced by the compiler through a [Builder] and are never
// modified afterwards. Every reference that was a name in the schema text is
// a pointer here: an argument's interface, an argument's enum, and the
// owning element of each node.
package ir

import (
	"iter"
	"slices"

	"github.com/AidoP/wl-codegen/wire"
)

// Direction tells requests (client to server) apart from events (server to
// client).
type Direction uint8

const (
	Request Direction = iota + 1
	Event
)

func (d Direction) String() string {
	switch d {
	case Request:
		return "request"
	case Event:
		return "event"
	}
	return "unknown"
}

// Schema is the result of one compiler run: the protocols it was given, in
// caller order.
type Schema struct {
	protocols  []*Protocol
	interfaces map[string]*Interface
}

func (s *Schema) Protocols() iter.Seq[*Protocol] {
	return slices.Values(s.protocols)
}

func (s *Schema) NumProtocols() int {
	return len(s.protocols)
}

// Interfaces yields every interface of every protocol in declaration order.
func (s *Schema) Interfaces() iter.Seq[*Interface] {
	return func(yield func(*Interface) bool) {
		for _, proto := range s.protocols {
			for _, iface := range proto.interfaces {
				if !yield(iface) {
					return
				}
			}
		}
	}
}

// Interface looks up an interface defined by this schema.
func (s *Schema) Interface(name string) (*Interface, bool) {
	iface, ok := s.interfaces[name]
	return iface, ok
}

type Protocol struct {
	name        string
	copyright   string
	summary     string
	description string
	interfaces  []*Interface
}

func (p *Protocol) Name() string { return p.name }
func (p *Protocol) Copyright() string { return p.copyright }
func (p *Protocol) Summary() string { return p.summary }
func (p *Protocol) Description() string { return p.description }

func (p *Protocol) Interfaces() iter.Seq[*Interface] {
	return slices.Values(p.interfaces)
}

type Interface struct {
	protocol    *Protocol
	name        string
	version     uint32
	summary     string
	description string
	requests    []*Message
	events      []*Message
	enums       []*Enum
}

func (i *Interface) Protocol() *Protocol { return i.protocol }
func (i *Interface) Name() string { return i.name }
func (i *Interface) Version() uint32 { return i.version }
func (i *Interface) Summary() string { return i.summary }
func (i *Interface) Description() string { return i.description }
func (i *Interface) NumRequests() int { return len(i.requests) }
func (i *Interface) NumEvents() int { return len(i.events) }
func (i *Interface) NumEnums() int { return len(i.enums) }
func (i *Interface) Enums() iter.Seq[*Enum] { return slices.Values(i.enums) }

// Requests yields the requests of i in opcode order.
func (i *Interface) Requests() iter.Seq[*Message] {
	return slices.Values(i.requests)
}

// Events yields the events of i in opcode order.
func (i *Interface) Events() iter.Seq[*Message] {
	return slices.Values(i.events)
}

// Messages yields the messages of one direction in opcode order.
func (i *Interface) Messages(dir Direction) iter.Seq[*Message] {
	if dir == Event {
		return i.Events()
	}
	return i.Requests()
}

// Request returns the request with the given opcode.
func (i *Interface) Request(opcode wire.Opcode) (*Message, bool) {
	if int(opcode) < len(i.requests) {
		return i.requests[opcode], true
	}
	return nil, false
}

// Event returns the event with the given opcode.
func (i *Interface) Event(opcode wire.Opcode) (*Message, bool) {
	if int(opcode) < len(i.events) {
		return i.events[opcode], true
	}
	return nil, false
}

// Enum looks up an enum declared by i.
func (i *Interface) Enum(name string) (*Enum, bool) {
	for _, enum := range i.enums {
		if enum.name == name {
			return enum, true
		}
	}
	return nil, false
}

// Message is a request or an event.
type Message struct {
	iface       *Interface
	direction   Direction
	opcode      wire.Opcode
	name        string
	since       uint32
	destructor  bool
	summary     string
	description string
	args        []*Arg
}

func (m *Message) Interface() *Interface { return m.iface }
func (m *Message) Direction() Direction { return m.direction }
func (m *Message) Opcode() wire.Opcode { return m.opcode }
func (m *Message) Name() string { return m.name }
func (m *Message) Destructor() bool { return m.destructor }
func (m *Message) Summary() string { return m.summary }
func (m *Message) Description() string { return m.description }
func (m *Message) NumArgs() int { return len(m.args) }
func (m *Message) Args() iter.Seq[*Arg] { return slices.Values(m.args) }

// Since is the first interface version in which the message exists.
func (m *Message) Since() uint32 { return m.since }

// Signature returns the libwayland signature string of the message's
// arguments. Nullable arguments are prefixed with '?' and a new_id without
// a bound interface expands to "sun".
func (m *Message) Signature() string {
	buf := make([]byte, 0, len(m.args))
	for _, arg := range m.args {
		if arg.nullable {
			buf = append(buf, '?')
		}
		if arg.argType == wire.ArgNewID && arg.iface == nil {
			buf = append(buf, 's', 'u')
		}
		buf = append(buf, arg.argType.Signature())
	}
	return string(buf)
}

type Arg struct {
	message  *Message
	name     string
	argType  wire.ArgType
	iface    *Interface
	enum     *Enum
	nullable bool
	summary  string
}

func (a *Arg) Message() *Message { return a.message }
func (a *Arg) Name() string { return a.name }
func (a *Arg) Type() wire.ArgType { return a.argType }
func (a *Arg) Nullable() bool { return a.nullable }
func (a *Arg) Summary() string { return a.summary }

// Interface returns the interface an object or new_id argument is bound
// to, or nil if the argument accepts any interface.
func (a *Arg) Interface() *Interface { return a.iface }

// Enum returns the enum an int or uint argument is typed as, or nil.
func (a *Arg) Enum() *Enum { return a.enum }

type Enum struct {
	iface       *Interface
	name        string
	bitfield    bool
	since       uint32
	summary     string
	description string
	entries     []*Entry
}

func (e *Enum) Interface() *Interface { return e.iface }
func (e *Enum) Name() string { return e.name }
func (e *Enum) Bitfield() bool { return e.bitfield }
func (e *Enum) Since() uint32 { return e.since }
func (e *Enum) Summary() string { return e.summary }
func (e *Enum) Description() string { return e.description }
func (e *Enum) NumEntries() int { return len(e.entries) }
func (e *Enum) Entries() iter.Seq[*Entry] { return slices.Values(e.entries) }

// QualifiedName returns the enum's name in the symbol table, of the form
// "interface.enum".
func (e *Enum) QualifiedName() string {
	return e.iface.name + "." + e.name
}

type Entry struct {
	enum        *Enum
	name        string
	value       uint32
	since       uint32
	alias       bool
	summary     string
	description string
}

func (e *Entry) Enum() *Enum { return e.enum }
func (e *Entry) Name() string { return e.name }
func (e *Entry) Value() uint32 { return e.value }
func (e *Entry) Since() uint32 { return e.since }
func (e *Entry) Alias() bool { return e.alias }
func (e *Entry) Summary() string { return e.summary }
func (e *Entry) Description() string { return e.description }
