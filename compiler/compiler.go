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

// Package compiler resolves parsed protocol schemas into IR.
//
// Compilation runs two passes over a flat symbol table. The first pass
// registers every interface and enum, so references may point forward or
// form cycles within one compilation. The second pass builds messages and
// binds argument references against the table.
package compiler

import (
	"strings"

	"go.uber.org/zap"

	"github.com/AidoP/wl-codegen/ir"
	"github.com/AidoP/wl-codegen/syntax"
	"github.com/AidoP/wl-codegen/wire"
)

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	deps   *SchemaSet
	logger *zap.Logger
}

// WithDependencies makes the interfaces and enums of previously compiled
// schemas available for reference.
func WithDependencies(dependencies *SchemaSet) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.deps = dependencies
	})
}

func WithLogger(logger *zap.Logger) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.logger = logger
	})
}

type CompileResult struct {
	schema *ir.Schema

	Errors   []*Error
	Warnings []*Warning
}

// Schema returns the compiled schema, or an [ErrorList] if compilation
// failed.
func (r *CompileResult) Schema() (*ir.Schema, error) {
	if len(r.Errors) > 0 {
		return nil, ErrorList(r.Errors)
	}
	return r.schema, nil
}

// Compile resolves protocols, in caller order, into one schema.
func Compile(protocols []*syntax.Protocol, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).Compile(protocols)
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	return compileOptions
}

func (opts *CompileOptions) Compile(protocols []*syntax.Protocol) CompileResult {
	log := opts.logger
	if log == nil {
		log = zap.NewNop()
	}
	c := compiler{
		opts:       opts,
		log:        log,
		protocols:  protocols,
		builder:    ir.NewBuilder(),
		interfaces: make(map[string]*ifaceInfo),
		enums:      make(map[string]*ir.Enum),
	}
	c.compileSchema()
	schema := c.builder.Finish()
	log.Debug("compiled schema",
		zap.Int("protocols", len(protocols)),
		zap.Int("errors", len(c.errors)),
		zap.Int("warnings", len(c.warnings)),
	)
	if len(c.errors) > 0 {
		return CompileResult{
			Errors:   c.errors,
			Warnings: c.warnings,
		}
	}
	return CompileResult{
		schema:   schema,
		Warnings: c.warnings,
	}
}

type compiler struct {
	opts      *CompileOptions
	log       *zap.Logger
	protocols []*syntax.Protocol
	builder   *ir.Builder
	errors    []*Error
	warnings  []*Warning

	// Set by registerInterfaces()
	interfaces map[string]*ifaceInfo
	enums      map[string]*ir.Enum
	locals     []*ifaceInfo
}

// ifaceInfo is one entry of the symbol table. Interfaces from dependencies
// have no node.
type ifaceInfo struct {
	node     *syntax.Interface
	iface    *ir.Interface
	protocol string
}

func (c *compiler) err(err error) {
	c.errors = append(c.errors, err.(*Error))
}

func (c *compiler) warn(warning *Warning) {
	c.warnings = append(c.warnings, warning)
}

func (c *compiler) compileSchema() {
	c.registerDependencies()
	c.registerInterfaces()
	for _, info := range c.locals {
		c.compileMessages(info, ir.Request, info.node.Requests)
		c.compileMessages(info, ir.Event, info.node.Events)
	}
}

func (c *compiler) registerDependencies() {
	if c.opts.deps == nil {
		return
	}
	for _, iface := range c.opts.deps.Interfaces() {
		c.interfaces[iface.Name()] = &ifaceInfo{
			iface:    iface,
			protocol: iface.Protocol().Name(),
		}
		for enum := range iface.Enums() {
			c.enums[enum.QualifiedName()] = enum
		}
	}
	c.log.Debug("registered dependencies",
		zap.Int("interfaces", len(c.interfaces)),
	)
}

func (c *compiler) registerInterfaces() {
	for _, node := range c.protocols {
		proto := c.builder.AddProtocol(ir.ProtocolInfo{
			Name:        node.Name,
			Copyright:   node.Copyright,
			Summary:     node.Summary,
			Description: node.Description,
		})
		for _, ifaceNode := range node.Interfaces {
			c.registerInterface(proto, ifaceNode)
		}
	}
}

func (c *compiler) registerInterface(proto *ir.Protocol, node *syntax.Interface) {
	if prev, dup := c.interfaces[node.Name]; dup {
		c.err(errDuplicateInterface(node.Path, node.Name, prev.protocol))
		return
	}
	if len(node.Requests) == 0 && len(node.Events) == 0 && len(node.Enums) == 0 {
		c.warn(warnEmptyInterface(node.Path, node.Name))
	}

	iface := c.builder.AddInterface(proto, ir.InterfaceInfo{
		Name:        node.Name,
		Version:     node.Version,
		Summary:     node.Summary,
		Description: node.Description,
	})
	info := &ifaceInfo{
		node:     node,
		iface:    iface,
		protocol: proto.Name(),
	}
	c.interfaces[node.Name] = info
	c.locals = append(c.locals, info)
	c.log.Debug("registered interface",
		zap.String("protocol", proto.Name()),
		zap.String("interface", node.Name),
		zap.Uint32("version", node.Version),
	)

	for _, enumNode := range node.Enums {
		enum := c.compileEnum(iface, enumNode)
		c.enums[enum.QualifiedName()] = enum
	}
}

// since returns the effective since of an element, warning when the schema
// spells out the default.
func (c *compiler) since(path syntax.Path, since uint32) uint32 {
	switch since {
	case 0:
		return 1
	case 1:
		c.warn(warnRedundantSince(path))
	}
	return since
}

func (c *compiler) compileEnum(iface *ir.Interface, node *syntax.Enum) *ir.Enum {
	since := c.since(node.Path, node.Since)
	if since > iface.Version() {
		c.err(errEnumSince(node.Path, "Enum", since, iface.Version()))
	}
	enum := c.builder.AddEnum(iface, ir.EnumInfo{
		Name:        node.Name,
		Bitfield:    node.Bitfield,
		Since:       since,
		Summary:     node.Summary,
		Description: node.Description,
	})

	byValue := make(map[uint32]string, len(node.Entries))
	for _, entry := range node.Entries {
		entrySince := c.since(entry.Path, entry.Since)
		if entrySince > iface.Version() {
			c.err(errEnumSince(entry.Path, "Entry", entrySince, iface.Version()))
		}
		if node.Bitfield && entry.Value&(entry.Value-1) != 0 {
			c.err(errBitfieldValue(entry.Path, entry.Name, entry.Value))
		}
		prev, dup := byValue[entry.Value]
		switch {
		case entry.Alias && !dup:
			c.err(errAliasWithoutTarget(entry.Path, entry.Name, entry.Value))
		case dup && !entry.Alias && !node.Bitfield:
			c.err(errDuplicateValue(entry.Path, entry.Name, prev, entry.Value))
		}
		if !dup {
			byValue[entry.Value] = entry.Name
		}
		c.builder.AddEntry(enum, ir.EntryInfo{
			Name:        entry.Name,
			Value:       entry.Value,
			Since:       entrySince,
			Alias:       entry.Alias,
			Summary:     entry.Summary,
			Description: entry.Description,
		})
	}
	return enum
}

func (c *compiler) compileMessages(
	info *ifaceInfo,
	dir ir.Direction,
	nodes []*syntax.Message,
) {
	iface := info.iface
	var prev *syntax.Message
	var prevSince uint32
	for _, node := range nodes {
		since := c.since(node.Path, node.Since)
		if since > iface.Version() {
			c.err(errMessageSince(node.Path, since, iface.Version()))
		}
		if prev != nil && since < prevSince {
			c.err(errSinceDecreases(node.Path, since, prev.Name, prevSince))
		}
		prev, prevSince = node, since

		msgInfo := ir.MessageInfo{
			Name:        node.Name,
			Since:       since,
			Destructor:  node.Destructor,
			Summary:     node.Summary,
			Description: node.Description,
		}
		var msg *ir.Message
		if dir == ir.Request {
			msg = c.builder.AddRequest(iface, msgInfo)
		} else {
			msg = c.builder.AddEvent(iface, msgInfo)
		}
		for _, arg := range node.Args {
			c.compileArg(msg, arg)
		}
	}
}

func (c *compiler) compileArg(msg *ir.Message, node *syntax.Arg) {
	argInfo := ir.ArgInfo{
		Name:     node.Name,
		Type:     node.Type,
		Nullable: node.Nullable,
		Summary:  node.Summary,
	}

	if node.Interface != "" {
		argInfo.Interface = c.resolveInterface(node)
	}
	if node.Enum != "" {
		argInfo.Enum = c.resolveEnum(msg.Interface(), node)
	}
	if node.Nullable && !node.Type.Nullable() {
		c.err(errNotNullable(node.Path, node.Type))
	}

	c.builder.AddArg(msg, argInfo)
}

func (c *compiler) resolveInterface(node *syntax.Arg) *ir.Interface {
	if node.Type != wire.ArgObject && node.Type != wire.ArgNewID {
		c.err(errInterfaceOnNonObject(node.Path, node.Type))
		return nil
	}
	info, ok := c.interfaces[node.Interface]
	if !ok {
		c.err(errInterfaceNotFound(node.Path, node.Interface))
		return nil
	}
	return info.iface
}

// resolveEnum looks an enum reference up in the symbol table. Unqualified
// names refer to an enum of the owning interface.
func (c *compiler) resolveEnum(owner *ir.Interface, node *syntax.Arg) *ir.Enum {
	if node.Type != wire.ArgInt && node.Type != wire.ArgUint {
		c.err(errEnumOnNonInteger(node.Path, node.Type))
		return nil
	}
	name := node.Enum
	if !strings.Contains(name, ".") {
		name = owner.Name() + "." + name
	}
	enum, ok := c.enums[name]
	if !ok {
		c.err(errEnumNotFound(node.Path, node.Enum))
		return nil
	}
	if enum.Bitfield() && node.Type == wire.ArgInt {
		c.err(errBitfieldOnInt(node.Path, name))
	}
	return enum
}
