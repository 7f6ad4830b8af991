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

// Package codegen emits Go source code from a compiled schema.
//
// Every protocol of the schema becomes one Go file. The files of one schema
// share a package and depend only on the wire runtime package.
package codegen

import (
	"fmt"
	"go/format"
	"go/token"
	"iter"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/AidoP/wl-codegen/ir"
)

// WirePackage is the import path of the runtime used by generated code.
const WirePackage = "github.com/AidoP/wl-codegen/wire"

// Role selects which side of the protocol the generated code implements.
// The role determines which direction gets handler interfaces and
// dispatchers.
type Role uint8

const (
	// RoleClient sends requests and receives events.
	RoleClient Role = iota
	// RoleServer sends events and receives requests.
	RoleServer
)

func ParseRole(name string) (Role, error) {
	switch name {
	case "client":
		return RoleClient, nil
	case "server":
		return RoleServer, nil
	}
	return 0, fmt.Errorf("unknown role %q (expected client or server)", name)
}

func (r Role) String() string {
	if r == RoleServer {
		return "server"
	}
	return "client"
}

func (r Role) receives() ir.Direction {
	if r == RoleServer {
		return ir.Request
	}
	return ir.Event
}

type Options struct {
	// Package is the Go package name of the output. It defaults to the
	// name of the schema's first protocol.
	Package string
	Role    Role
	Logger  *zap.Logger
}

type OutputFile struct {
	Path    string
	Content string
}

// Generate emits one gofmt-formatted file per protocol of schema. The
// output is a pure function of schema and opts.
func Generate(schema *ir.Schema, opts Options) ([]OutputFile, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	g := &generator{
		opts:   opts,
		schema: schema,
		log:    log,
		idents: make(map[string]string),
	}

	pkg := opts.Package
	if pkg == "" {
		for proto := range schema.Protocols() {
			pkg = defaultPackage(proto.Name())
			break
		}
	}
	if !validIdent(pkg) || token.IsKeyword(pkg) || pkg == "_" {
		return nil, ErrorList{errInvalidPackage(pkg)}
	}
	g.pkg = pkg

	g.checkSchema()
	if len(g.errs) > 0 {
		return nil, g.errs
	}

	var out []OutputFile
	for proto := range schema.Protocols() {
		path := fileName(proto.Name())
		text := g.protocolFile(proto)
		if len(g.errs) > 0 {
			return nil, g.errs
		}
		src, err := formatFile(path, []byte(text))
		if err != nil {
			return nil, ErrorList{err}
		}
		file := OutputFile{
			Path:    path,
			Content: string(src),
		}
		log.Debug("emitted file",
			zap.String("protocol", proto.Name()),
			zap.String("path", file.Path),
			zap.Int("bytes", len(file.Content)),
		)
		out = append(out, file)
	}
	return out, nil
}

func formatFile(path string, text []byte) ([]byte, *Error) {
	src, err := format.Source(text)
	if err != nil {
		return nil, errFormat(path, err)
	}
	return src, nil
}

type generator struct {
	opts   Options
	schema *ir.Schema
	log    *zap.Logger
	pkg    string
	errs   ErrorList

	// Go identifier -> description of the schema element declaring it.
	idents map[string]string
}

func (g *generator) declare(ident, what string) {
	if prev, dup := g.idents[ident]; dup {
		g.errs = append(g.errs, errIdentCollision(ident, prev, what))
		return
	}
	g.idents[ident] = what
}

func (g *generator) goName(what, name string) string {
	out := goName(name)
	if out == "" || !token.IsIdentifier(out) {
		g.errs = append(g.errs, errNoGoName(what, name))
	}
	return out
}

// checkSchema declares every top-level identifier the output will contain,
// so that collisions are reported before anything is emitted.
func (g *generator) checkSchema() {
	files := make(map[string]string)
	for proto := range g.schema.Protocols() {
		what := fmt.Sprintf("protocol '%s'", proto.Name())
		file := fileName(proto.Name())
		if prev, dup := files[file]; dup {
			g.errs = append(g.errs, errIdentCollision(file, prev, what))
		}
		files[file] = what
	}

	for iface := range g.schema.Interfaces() {
		what := fmt.Sprintf("interface '%s'", iface.Name())
		name := g.goName("interface", iface.Name())
		g.declare(name, what)
		g.declare(name+"InterfaceName", what)
		g.declare(name+"Version", what)
		g.declare(name+"Interface", what)
		g.declare("New"+name, what)
		g.declare("As"+name, what)
		g.declare("Bind"+name, what)

		for enum := range iface.Enums() {
			what := fmt.Sprintf("enum '%s'", enum.QualifiedName())
			typeName := name + g.goName("enum", enum.Name())
			g.declare(typeName, what)
			if enum.Bitfield() {
				g.declare(lowerFirst(typeName)+"Names", what)
			}
			for entry := range enum.Entries() {
				g.declare(
					typeName+goName(entry.Name()),
					fmt.Sprintf("entry '%s.%s'", enum.QualifiedName(), entry.Name()),
				)
			}
		}

		for _, dir := range []ir.Direction{ir.Request, ir.Event} {
			methods := make(map[string]string)
			index := 0
			for msg := range iface.Messages(dir) {
				if int(msg.Opcode()) != index {
					g.errs = append(g.errs, errOpcodeMismatch(
						iface.Name(), msg.Name(), uint16(msg.Opcode()), index,
					))
				}
				index++
				g.checkMessage(name, msg, methods)
			}
			if dir == g.opts.Role.receives() && index > 0 {
				what := fmt.Sprintf("%s handler of interface '%s'", dir, iface.Name())
				g.declare(name+dirSuffix(dir)+"Handler", what)
				g.declare("Dispatch"+name+dirSuffix(dir), what)
			}
		}
	}
}

func (g *generator) checkMessage(ifaceName string, msg *ir.Message, methods map[string]string) {
	what := fmt.Sprintf("%s '%s.%s'", msg.Direction(), msg.Interface().Name(), msg.Name())
	method := g.goName(msg.Direction().String(), msg.Name())
	if prev, dup := methods[method]; dup {
		g.errs = append(g.errs, errIdentCollision(method, prev, what))
	}
	methods[method] = what

	typeName := ifaceName + method + dirSuffix(msg.Direction())
	g.declare(typeName, what)
	g.declare(typeName+"Opcode", what)

	fields := map[string]string{
		"MarshalMessage":   "method MarshalMessage",
		"UnmarshalMessage": "method UnmarshalMessage",
	}
	params := map[string]string{"self": "the receiving object"}
	for arg := range msg.Args() {
		desc := argWhat(arg)
		if !knownArgType(arg.Type()) {
			g.errs = append(g.errs, errUnsupportedArgType(desc, arg.Type()))
		}
		field := g.goName("arg", arg.Name())
		if prev, dup := fields[field]; dup {
			g.errs = append(g.errs, errIdentCollision(field, prev, desc))
		}
		fields[field] = desc
		param := paramName(arg.Name())
		if prev, dup := params[param]; dup {
			g.errs = append(g.errs, errIdentCollision(param, prev, desc))
		}
		params[param] = desc
	}
}

func dirSuffix(dir ir.Direction) string {
	if dir == ir.Event {
		return "Event"
	}
	return "Request"
}

// writer accumulates the text of one output file.
type writer struct {
	buf    strings.Builder
	indent int
}

func (w *writer) line(s string) {
	if s != "" {
		w.buf.WriteString(strings.Repeat("\t", w.indent))
		w.buf.WriteString(s)
	}
	w.buf.WriteByte('\n')
}

func (w *writer) linef(format string, a ...any) {
	w.line(fmt.Sprintf(format, a...))
}

// doc writes a doc comment: the lead sentence, then the schema's summary
// and description as further paragraphs.
func (w *writer) doc(lead string, summary string, description string) {
	w.line("// " + lead)
	for _, para := range []string{summary, description} {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		w.line("//")
		for _, text := range strings.Split(para, "\n") {
			if text = strings.TrimSpace(text); text == "" {
				w.line("//")
			} else {
				w.line("// " + text)
			}
		}
	}
}

func (g *generator) protocolFile(proto *ir.Protocol) string {
	var body writer
	hasInterfaces := false
	for iface := range proto.Interfaces() {
		hasInterfaces = true
		g.emitInterface(&body, iface)
	}

	var w writer
	w.linef("// Code generated by wl-codegen from protocol %s. DO NOT EDIT.", proto.Name())
	if copyright := strings.TrimSpace(proto.Copyright()); copyright != "" {
		w.line("//")
		for _, text := range strings.Split(copyright, "\n") {
			if text = strings.TrimSpace(text); text == "" {
				w.line("//")
			} else {
				w.line("// " + text)
			}
		}
	}
	w.line("")
	w.linef("package %s", g.pkg)
	if hasInterfaces {
		w.line("")
		w.linef("import %s", strconv.Quote(WirePackage))
	}
	w.buf.WriteString(body.buf.String())
	return w.buf.String()
}

func (g *generator) emitInterface(w *writer, iface *ir.Interface) {
	name := goName(iface.Name())

	w.line("")
	w.linef("const %sInterfaceName = %q", name, iface.Name())
	w.line("")
	w.linef("const %sVersion uint32 = %d", name, iface.Version())
	w.line("")
	w.linef("// %sInterface describes the %s interface.", name, iface.Name())
	w.linef("var %sInterface = &wire.Interface{", name)
	w.indent++
	w.linef("Name:    %sInterfaceName,", name)
	w.linef("Version: %sVersion,", name)
	g.emitDescriptors(w, "Requests", iface.NumRequests(), iface.Requests())
	g.emitDescriptors(w, "Events", iface.NumEvents(), iface.Events())
	w.indent--
	w.line("}")

	g.emitHandle(w, iface, name)
	for enum := range iface.Enums() {
		g.emitEnum(w, name, enum)
	}
	for msg := range iface.Requests() {
		g.emitMessage(w, name, msg)
	}
	for msg := range iface.Events() {
		g.emitMessage(w, name, msg)
	}
	dir := g.opts.Role.receives()
	if (dir == ir.Request && iface.NumRequests() > 0) ||
		(dir == ir.Event && iface.NumEvents() > 0) {
		g.emitHandler(w, iface, name, dir)
		g.emitDispatch(w, iface, name, dir)
	}
}

func (g *generator) emitDescriptors(
	w *writer,
	field string,
	count int,
	msgs iter.Seq[*ir.Message],
) {
	if count == 0 {
		return
	}
	w.linef("%s: []wire.MessageDesc{", field)
	w.indent++
	for msg := range msgs {
		destructor := ""
		if msg.Destructor() {
			destructor = ", Destructor: true"
		}
		w.linef(
			"{Name: %q, Since: %d, Signature: %q%s},",
			msg.Name(), msg.Since(), msg.Signature(), destructor,
		)
	}
	w.indent--
	w.line("},")
}

func (g *generator) emitHandle(w *writer, iface *ir.Interface, name string) {
	w.line("")
	w.doc(
		fmt.Sprintf("%s is a handle to a %s object.", name, iface.Name()),
		iface.Summary(),
		iface.Description(),
	)
	w.linef("type %s struct {", name)
	w.line("\th wire.Handle")
	w.line("}")

	w.line("")
	w.linef("// New%s returns a handle to the %s object id, created at version.", name, iface.Name())
	w.linef("func New%s(id wire.ObjectID, version uint32) %s {", name, name)
	w.linef("\treturn %s{h: wire.NewHandle(id, %sInterfaceName, version)}", name, name)
	w.line("}")

	w.line("")
	w.linef("// As%s checks that h refers to a %s object.", name, iface.Name())
	w.linef("func As%s(h wire.Handle) (%s, error) {", name, name)
	w.linef("\tif err := h.Expect(%sInterfaceName); err != nil {", name)
	w.linef("\t\treturn %s{}, err", name)
	w.line("\t}")
	w.linef("\treturn %s{h: h}, nil", name)
	w.line("}")

	w.line("")
	w.linef("// Bind%s accepts a generic new_id creating a %s object.", name, iface.Name())
	w.linef("func Bind%s(n wire.NewID) (%s, error) {", name, name)
	w.linef("\th, err := n.Bind(%sInterfaceName, %sVersion)", name, name)
	w.line("\tif err != nil {")
	w.linef("\t\treturn %s{}, err", name)
	w.line("\t}")
	w.linef("\treturn %s{h: h}, nil", name)
	w.line("}")

	w.line("")
	w.linef("func (o %s) ID() wire.ObjectID { return o.h.ID() }", name)
	w.line("")
	w.linef("func (o %s) Version() uint32 { return o.h.Version() }", name)
	w.line("")
	w.linef("func (o %s) Handle() wire.Handle { return o.h }", name)
	w.line("")
	w.linef("func (o %s) IsNull() bool { return o.h.IsNull() }", name)
}

func (g *generator) emitEnum(w *writer, ifaceName string, enum *ir.Enum) {
	typeName := ifaceName + goName(enum.Name())

	w.line("")
	w.doc(
		fmt.Sprintf("%s is the %s enum.", typeName, enum.QualifiedName()),
		enum.Summary(),
		enum.Description(),
	)
	w.linef("type %s uint32", typeName)

	// Entries sharing a value collapse onto the first one in switches.
	var distinct []*ir.Entry
	seen := make(map[uint32]struct{})
	var mask uint32

	if enum.NumEntries() > 0 {
		w.line("")
		w.line("const (")
		w.indent++
		for entry := range enum.Entries() {
			if summary := strings.TrimSpace(entry.Summary()); summary != "" {
				w.line("// " + strings.ReplaceAll(summary, "\n", " "))
			}
			w.linef("%s%s %s = %s", typeName, goName(entry.Name()), typeName, fmtValue(enum, entry.Value()))
			if _, dup := seen[entry.Value()]; !dup {
				seen[entry.Value()] = struct{}{}
				distinct = append(distinct, entry)
			}
			mask |= entry.Value()
		}
		w.indent--
		w.line(")")
	}

	if enum.Bitfield() {
		g.emitBitfieldMethods(w, enum, typeName, distinct, mask)
		return
	}

	w.line("")
	w.linef("func (v %s) String() string {", typeName)
	if len(distinct) > 0 {
		w.line("\tswitch v {")
		for _, entry := range distinct {
			w.linef("\tcase %s%s:", typeName, goName(entry.Name()))
			w.linef("\t\treturn %q", entry.Name())
		}
		w.line("\t}")
	}
	w.linef("\treturn wire.FormatUnknown(%q, uint32(v))", typeName)
	w.line("}")

	w.line("")
	w.line("// Valid reports whether v is a declared entry.")
	w.linef("func (v %s) Valid() bool {", typeName)
	if len(distinct) > 0 {
		cases := make([]string, len(distinct))
		for ii, entry := range distinct {
			cases[ii] = typeName + goName(entry.Name())
		}
		w.line("\tswitch v {")
		w.linef("\tcase %s:", strings.Join(cases, ", "))
		w.line("\t\treturn true")
		w.line("\t}")
	}
	w.line("\treturn false")
	w.line("}")
}

func (g *generator) emitBitfieldMethods(
	w *writer,
	enum *ir.Enum,
	typeName string,
	distinct []*ir.Entry,
	mask uint32,
) {
	namesVar := lowerFirst(typeName) + "Names"
	w.line("")
	w.linef("var %s = []wire.FlagName{", namesVar)
	for _, entry := range distinct {
		w.linef("\t{Value: %s, Name: %q},", fmtValue(enum, entry.Value()), entry.Name())
	}
	w.line("}")

	w.line("")
	w.linef("func (v %s) String() string {", typeName)
	w.linef("\treturn wire.FormatFlags(uint32(v), %s)", namesVar)
	w.line("}")

	w.line("")
	w.line("// Has reports whether every bit of flags is set in v.")
	w.linef("func (v %s) Has(flags %s) bool { return v&flags == flags }", typeName, typeName)
	w.line("")
	w.linef("func (v %s) With(flags %s) %s { return v | flags }", typeName, typeName, typeName)
	w.line("")
	w.linef("func (v %s) Without(flags %s) %s { return v &^ flags }", typeName, typeName, typeName)

	w.line("")
	w.line("// Valid reports whether v sets only declared bits.")
	w.linef("func (v %s) Valid() bool {", typeName)
	w.linef("\treturn v&^%s == 0", fmtValue(enum, mask))
	w.line("}")
}

func fmtValue(enum *ir.Enum, value uint32) string {
	if enum.Bitfield() {
		return fmt.Sprintf("0x%X", value)
	}
	return strconv.FormatUint(uint64(value), 10)
}

func (g *generator) emitMessage(w *writer, ifaceName string, msg *ir.Message) {
	iface := msg.Interface()
	typeName := ifaceName + goName(msg.Name()) + dirSuffix(msg.Direction())
	ifaceConst := ifaceName + "InterfaceName"

	w.line("")
	w.linef("const %sOpcode wire.Opcode = %d", typeName, msg.Opcode())

	w.line("")
	w.doc(
		fmt.Sprintf("%s holds the arguments of the %s.%s %s.", typeName, iface.Name(), msg.Name(), msg.Direction()),
		msg.Summary(),
		msg.Description(),
	)
	if msg.Destructor() {
		w.line("//")
		w.linef("// %s is a destructor: it ends the lifetime of the %s object.", msg.Name(), iface.Name())
	}
	if msg.NumArgs() == 0 {
		w.linef("type %s struct{}", typeName)
	} else {
		w.linef("type %s struct {", typeName)
		w.indent++
		for arg := range msg.Args() {
			if summary := strings.TrimSpace(arg.Summary()); summary != "" {
				w.line("// " + strings.ReplaceAll(summary, "\n", " "))
			}
			w.linef("%s %s", goName(arg.Name()), g.argGoType(arg))
		}
		w.indent--
		w.line("}")
	}

	w.line("")
	w.linef("func (m *%s) MarshalMessage(sender wire.ObjectID) (*wire.Message, error) {", typeName)
	w.indent++
	w.linef("e := wire.NewEncoder(sender, %sOpcode)", typeName)
	for arg := range msg.Args() {
		w.line(g.marshalArg(arg, "m."+goName(arg.Name())))
	}
	w.line("return e.Finish()")
	w.indent--
	w.line("}")

	w.line("")
	w.linef(
		"func (m *%s) UnmarshalMessage(ctx *wire.DecodeCtx, version uint32, msg *wire.Message) error {",
		typeName,
	)
	w.indent++
	w.line("d := wire.NewDecoder(ctx, msg.Body)")
	ii := 0
	for arg := range msg.Args() {
		v := fmt.Sprintf("v%d", ii)
		ii++
		argErr := func(err string) string {
			return fmt.Sprintf(
				"return wire.ArgError(%s, %q, %q, %s)",
				ifaceConst, msg.Name(), arg.Name(), err,
			)
		}
		w.linef("%s, err := %s", v, g.decodeCall(arg))
		w.line("if err != nil {")
		w.line("\t" + argErr("err"))
		w.line("}")
		if t := g.enumType(arg); t != "" {
			w.linef("if !%s(%s).Valid() {", t, v)
			w.line("\t" + argErr(fmt.Sprintf(
				"wire.InvalidEnum(%q, uint32(%s))",
				arg.Enum().QualifiedName(), v,
			)))
			w.line("}")
		}
		w.linef("m.%s = %s", goName(arg.Name()), g.decodeValue(arg, v))
	}
	w.linef("return wire.MessageError(%s, %q, d.Finish())", ifaceConst, msg.Name())
	w.indent--
	w.line("}")
}

func (g *generator) emitHandler(w *writer, iface *ir.Interface, name string, dir ir.Direction) {
	handler := name + dirSuffix(dir) + "Handler"
	w.line("")
	w.linef("// %s receives the %ss of %s objects.", handler, dir, iface.Name())
	w.linef("type %s interface {", handler)
	w.indent++
	first := true
	for msg := range iface.Messages(dir) {
		if !first {
			w.line("")
		}
		first = false
		summary := strings.ReplaceAll(strings.TrimSpace(msg.Summary()), "\n", " ")
		if summary != "" {
			w.line("// " + summary)
		}
		if msg.Destructor() {
			if summary != "" {
				w.line("//")
			}
			w.line("// Destructor. self is retired once this method returns nil.")
		}
		params := []string{"self " + name}
		for arg := range msg.Args() {
			params = append(params, paramName(arg.Name())+" "+g.argGoType(arg))
		}
		w.linef("%s(%s) error", goName(msg.Name()), strings.Join(params, ", "))
	}
	w.indent--
	w.line("}")
}

func (g *generator) emitDispatch(w *writer, iface *ir.Interface, name string, dir ir.Direction) {
	handler := name + dirSuffix(dir) + "Handler"
	w.line("")
	w.linef(
		"// Dispatch%s%s decodes msg, a %s addressed to self, and calls the matching",
		name, dirSuffix(dir), dir,
	)
	w.line("// method of h. Decode failures are returned as *wire.DecodeError.")
	w.line("//")
	w.line("// Object arguments are resolved through ctx.Objects. When it is nil they are")
	w.line("// not checked and their handles have version 0.")
	if hasDestructor(iface, dir) {
		w.line("// After a destructor succeeds, self is passed to ctx.Destroyed.")
	}
	w.linef(
		"func Dispatch%s%s(ctx *wire.DecodeCtx, self %s, msg *wire.Message, h %s) error {",
		name, dirSuffix(dir), name, handler,
	)
	w.indent++
	w.line("switch msg.Opcode {")
	for msg := range iface.Messages(dir) {
		typeName := name + goName(msg.Name()) + dirSuffix(dir)
		w.linef("case %sOpcode:", typeName)
		w.indent++
		if msg.Since() > 1 {
			w.linef("if self.Version() < %d {", msg.Since())
			w.linef(
				"\treturn wire.VersionError(%sInterfaceName, %q, %d, self.Version())",
				name, msg.Name(), msg.Since(),
			)
			w.line("}")
		}
		w.linef("var m %s", typeName)
		w.line("if err := m.UnmarshalMessage(ctx, self.Version(), msg); err != nil {")
		w.line("\treturn err")
		w.line("}")
		args := []string{"self"}
		for arg := range msg.Args() {
			args = append(args, "m."+goName(arg.Name()))
		}
		call := fmt.Sprintf("h.%s(%s)", goName(msg.Name()), strings.Join(args, ", "))
		if msg.Destructor() {
			w.linef("if err := %s; err != nil {", call)
			w.line("\treturn err")
			w.line("}")
			w.line("ctx.Destroyed(self.Handle())")
			w.line("return nil")
		} else {
			w.line("return " + call)
		}
		w.indent--
	}
	w.line("}")
	w.linef("return wire.OpcodeError(%sInterfaceName, msg.Opcode)", name)
	w.indent--
	w.line("}")
}

func hasDestructor(iface *ir.Interface, dir ir.Direction) bool {
	for msg := range iface.Messages(dir) {
		if msg.Destructor() {
			return true
		}
	}
	return false
}
