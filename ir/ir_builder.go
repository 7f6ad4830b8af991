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

package ir

import (
	"fmt"
	"math"

	"github.com/AidoP/wl-codegen/wire"
)

type ProtocolInfo struct {
	Name        string
	Copyright   string
	Summary     string
	Description string
}

type InterfaceInfo struct {
	Name        string
	Version     uint32
	Summary     string
	Description string
}

type MessageInfo struct {
	Name        string
	Since       uint32
	Destructor  bool
	Summary     string
	Description string
}

// ArgInfo describes one argument. Interface and Enum may point into a
// schema other than the one being built.
type ArgInfo struct {
	Name      string
	Type      wire.ArgType
	Interface *Interface
	Enum      *Enum
	Nullable  bool
	Summary   string
}

type EnumInfo struct {
	Name        string
	Bitfield    bool
	Since       uint32
	Summary     string
	Description string
}

type EntryInfo struct {
	Name        string
	Value       uint32
	Since       uint32
	Alias       bool
	Summary     string
	Description string
}

// Builder assembles a [Schema]. Elements are appended in declaration order;
// message opcodes are the position of the message within its direction.
//
// Once [Builder.Finish] has been called the builder is sealed and every
// further call panics.
type Builder struct {
	schema *Schema
	owned  map[*Protocol]struct{}
	sealed bool
}

func NewBuilder() *Builder {
	return &Builder{
		schema: &Schema{
			interfaces: make(map[string]*Interface),
		},
		owned: make(map[*Protocol]struct{}),
	}
}

func (b *Builder) check(proto *Protocol) {
	if b.sealed {
		panic("ir: Builder used after Finish")
	}
	if proto == nil {
		return
	}
	if _, ok := b.owned[proto]; !ok {
		panic(fmt.Sprintf("ir: protocol %q not created by this Builder", proto.name))
	}
}

func (b *Builder) AddProtocol(info ProtocolInfo) *Protocol {
	b.check(nil)
	proto := &Protocol{
		name:        info.Name,
		copyright:   info.Copyright,
		summary:     info.Summary,
		description: info.Description,
	}
	b.owned[proto] = struct{}{}
	b.schema.protocols = append(b.schema.protocols, proto)
	return proto
}

// AddInterface panics if the schema already has an interface of the same
// name.
func (b *Builder) AddInterface(proto *Protocol, info InterfaceInfo) *Interface {
	b.check(proto)
	if _, dup := b.schema.interfaces[info.Name]; dup {
		panic(fmt.Sprintf("ir: duplicate interface %q", info.Name))
	}
	iface := &Interface{
		protocol:    proto,
		name:        info.Name,
		version:     info.Version,
		summary:     info.Summary,
		description: info.Description,
	}
	proto.interfaces = append(proto.interfaces, iface)
	b.schema.interfaces[info.Name] = iface
	return iface
}

func (b *Builder) AddRequest(iface *Interface, info MessageInfo) *Message {
	b.check(iface.protocol)
	msg := newMessage(iface, Request, len(iface.requests), info)
	iface.requests = append(iface.requests, msg)
	return msg
}

func (b *Builder) AddEvent(iface *Interface, info MessageInfo) *Message {
	b.check(iface.protocol)
	msg := newMessage(iface, Event, len(iface.events), info)
	iface.events = append(iface.events, msg)
	return msg
}

func newMessage(iface *Interface, dir Direction, index int, info MessageInfo) *Message {
	if index > math.MaxUint16 {
		panic(fmt.Sprintf("ir: too many %ss in interface %q", dir, iface.name))
	}
	return &Message{
		iface:       iface,
		direction:   dir,
		opcode:      wire.Opcode(index),
		name:        info.Name,
		since:       info.Since,
		destructor:  info.Destructor,
		summary:     info.Summary,
		description: info.Description,
	}
}

func (b *Builder) AddArg(msg *Message, info ArgInfo) *Arg {
	b.check(msg.iface.protocol)
	arg := &Arg{
		message:  msg,
		name:     info.Name,
		argType:  info.Type,
		iface:    info.Interface,
		enum:     info.Enum,
		nullable: info.Nullable,
		summary:  info.Summary,
	}
	msg.args = append(msg.args, arg)
	return arg
}

func (b *Builder) AddEnum(iface *Interface, info EnumInfo) *Enum {
	b.check(iface.protocol)
	enum := &Enum{
		iface:       iface,
		name:        info.Name,
		bitfield:    info.Bitfield,
		since:       info.Since,
		summary:     info.Summary,
		description: info.Description,
	}
	iface.enums = append(iface.enums, enum)
	return enum
}

func (b *Builder) AddEntry(enum *Enum, info EntryInfo) *Entry {
	b.check(enum.iface.protocol)
	entry := &Entry{
		enum:        enum,
		name:        info.Name,
		value:       info.Value,
		since:       info.Since,
		alias:       info.Alias,
		summary:     info.Summary,
		description: info.Description,
	}
	enum.entries = append(enum.entries, entry)
	return entry
}

// Finish seals the builder and returns the schema.
func (b *Builder) Finish() *Schema {
	b.check(nil)
	b.sealed = true
	b.owned = nil
	return b.schema
}
