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

// Package wire implements the Wayland wire format primitives used by
// generated protocol code.
//
// A message is an 8-byte header followed by a sequence of 4-byte aligned
// argument slots. File descriptors travel out of band and are consumed from
// an [FdQueue] in argument declaration order.
//
// Nothing in this package performs I/O. Reading bytes from a socket, passing
// descriptors with SCM_RIGHTS and scheduling dispatch belong to the runtime
// driving the generated code. Messages of one connection must be dispatched
// in arrival order, because new_id arguments create the objects that later
// messages refer to.
package wire

import (
	"encoding/binary"
)

// HeaderSize is the size of a message header in bytes.
const HeaderSize = 8

// MaxMessageSize is the largest message (header included) whose size fits
// the 16-bit size field of the header.
const MaxMessageSize = 0xFFFF

var byteOrder = binary.NativeEndian

// ObjectID identifies a protocol object within one connection. The zero ID
// is the null object.
type ObjectID uint32

// Opcode is the zero-based index of a message within its interface's
// request list or event list.
type Opcode uint16

// ArgType is the wire type tag of a message argument.
type ArgType uint8

const (
	ArgInt ArgType = iota + 1
	ArgUint
	ArgFixed
	ArgString
	ArgObject
	ArgNewID
	ArgArray
	ArgFd
)

var argTypeNames = [...]string{
	ArgInt:    "int",
	ArgUint:   "uint",
	ArgFixed:  "fixed",
	ArgString: "string",
	ArgObject: "object",
	ArgNewID:  "new_id",
	ArgArray:  "array",
	ArgFd:     "fd",
}

// ParseArgType returns the ArgType named by a schema type tag.
func ParseArgType(name string) (ArgType, bool) {
	for t, typeName := range argTypeNames {
		if t != 0 && typeName == name {
			return ArgType(t), true
		}
	}
	return 0, false
}

func (t ArgType) String() string {
	if int(t) < len(argTypeNames) && t != 0 {
		return argTypeNames[t]
	}
	return "invalid"
}

// Signature returns the libwayland signature character of t.
func (t ArgType) Signature() byte {
	switch t {
	case ArgInt:
		return 'i'
	case ArgUint:
		return 'u'
	case ArgFixed:
		return 'f'
	case ArgString:
		return 's'
	case ArgObject:
		return 'o'
	case ArgNewID:
		return 'n'
	case ArgArray:
		return 'a'
	case ArgFd:
		return 'h'
	}
	return '?'
}

// InBand reports whether values of type t occupy bytes in the message
// body. Descriptors (fd) are the only out-of-band type.
func (t ArgType) InBand() bool {
	return t != ArgFd
}

// Nullable reports whether arguments of type t may be declared nullable.
func (t ArgType) Nullable() bool {
	return t == ArgString || t == ArgObject || t == ArgArray
}

// Interface describes a protocol interface for introspection and logging.
type Interface struct {
	Name     string
	Version  uint32
	Requests []MessageDesc
	Events   []MessageDesc
}

// MessageDesc describes one message of an [Interface]. Its opcode is its
// index in the owning list.
type MessageDesc struct {
	Name      string
	Since     uint32
	Signature string

	// Destructor is set for messages that end the lifetime of the object
	// they are sent on.
	Destructor bool
}

// Request returns the descriptor of the request with the given opcode.
func (iface *Interface) Request(opcode Opcode) (MessageDesc, bool) {
	if int(opcode) < len(iface.Requests) {
		return iface.Requests[opcode], true
	}
	return MessageDesc{}, false
}

// Event returns the descriptor of the event with the given opcode.
func (iface *Interface) Event(opcode Opcode) (MessageDesc, bool) {
	if int(opcode) < len(iface.Events) {
		return iface.Events[opcode], true
	}
	return MessageDesc{}, false
}

func padding(n int) int {
	return (4 - n%4) % 4
}

func align4(n int) int {
	return n + padding(n)
}
