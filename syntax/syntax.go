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

// Package syntax parses protocol schema files into an unresolved AST.
//
// A schema file is a TOML document describing one protocol: its interfaces,
// their requests, events and enums. The parser checks structure only.
// References between interfaces and enums are bound later by the compiler.
package syntax

import (
	"math"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/AidoP/wl-codegen/wire"
)

var (
	identRE     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	protoNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	entryNameRE = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	enumRefRE   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
)

// Parse parses one schema file. The first structural defect found is
// returned as a [*Error].
func Parse(src []byte) (*Protocol, error) {
	if !utf8.Valid(src) {
		return nil, errInvalidUtf8(src)
	}
	var doc map[string]any
	if _, err := toml.Decode(string(src), &doc); err != nil {
		return nil, errTomlSyntax(err)
	}
	return parseProtocol(doc)
}

type table struct {
	path Path
	kv   map[string]any
}

// newTable names the element by its "name" key when that is a string, so
// that errors about the element itself already carry its name.
func newTable(parent Path, kind PathKind, index int, kv map[string]any) *table {
	name, _ := kv["name"].(string)
	return &table{
		path: parent.Child(kind, name, index),
		kv:   kv,
	}
}

func (t *table) checkKeys(allowed ...string) error {
	keys := make([]string, 0, len(t.kv))
	for key := range t.kv {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if !slices.Contains(allowed, key) {
			return errUnknownKey(t.path, key)
		}
	}
	return nil
}

func (t *table) name(re *regexp.Regexp) (string, error) {
	name, ok, err := t.stringKey("name")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errMissingKey(t.path, "name")
	}
	if !re.MatchString(name) {
		return "", errInvalidName(t.path, "name", name)
	}
	return name, nil
}

func (t *table) stringKey(key string) (string, bool, error) {
	raw, ok := t.kv[key]
	if !ok {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", false, errWrongType(t.path, key, "a string", raw)
	}
	return value, true, nil
}

func (t *table) boolKey(key string) (bool, bool, error) {
	raw, ok := t.kv[key]
	if !ok {
		return false, false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, false, errWrongType(t.path, key, "a boolean", raw)
	}
	return value, true, nil
}

func (t *table) uint32Key(key string, lo uint32) (uint32, bool, error) {
	raw, ok := t.kv[key]
	if !ok {
		return 0, false, nil
	}
	value, ok := raw.(int64)
	if !ok {
		return 0, false, errWrongType(t.path, key, "an integer", raw)
	}
	if value < int64(lo) || value > math.MaxUint32 {
		return 0, false, errOutOfRange(t.path, key, value, lo, math.MaxUint32)
	}
	return uint32(value), true, nil
}

// since reads an optional "since" key. Zero means the key is absent.
func (t *table) since() (uint32, error) {
	since, _, err := t.uint32Key("since", 1)
	return since, err
}

// tablesKey reads an optional array of tables. The TOML decoder produces
// []map[string]any for [[key]] headers and []any for inline arrays.
func (t *table) tablesKey(key string) ([]map[string]any, error) {
	raw, ok := t.kv[key]
	if !ok {
		return nil, nil
	}
	switch value := raw.(type) {
	case []map[string]any:
		return value, nil
	case []any:
		out := make([]map[string]any, 0, len(value))
		for _, elem := range value {
			kv, ok := elem.(map[string]any)
			if !ok {
				return nil, errWrongType(t.path, key, "an array of tables", raw)
			}
			out = append(out, kv)
		}
		return out, nil
	}
	return nil, errWrongType(t.path, key, "an array of tables", raw)
}

// docs reads the optional documentation keys shared by most elements.
func (t *table) docs(summary, description *string) error {
	var err error
	if description != nil {
		if *description, _, err = t.stringKey("description"); err != nil {
			return err
		}
	}
	*summary, _, err = t.stringKey("summary")
	return err
}

// names tracks the element names declared within one scope.
type names map[string]struct{}

func (n names) add(path Path, kind PathKind, name string) error {
	if _, dup := n[name]; dup {
		return errDuplicateName(path, kind, name)
	}
	n[name] = struct{}{}
	return nil
}

func parseProtocol(doc map[string]any) (*Protocol, error) {
	t := newTable(nil, PathProtocol, 0, doc)
	if err := t.checkKeys(
		"name", "copyright", "summary", "description", "interface",
	); err != nil {
		return nil, err
	}
	var err error
	proto := &Protocol{Path: t.path}
	if proto.Name, err = t.name(protoNameRE); err != nil {
		return nil, err
	}
	if proto.Copyright, _, err = t.stringKey("copyright"); err != nil {
		return nil, err
	}
	if err := t.docs(&proto.Summary, &proto.Description); err != nil {
		return nil, err
	}
	ifaces, err := t.tablesKey("interface")
	if err != nil {
		return nil, err
	}
	for ii, kv := range ifaces {
		iface, err := parseInterface(newTable(t.path, PathInterface, ii, kv))
		if err != nil {
			return nil, err
		}
		proto.Interfaces = append(proto.Interfaces, iface)
	}
	return proto, nil
}

func parseInterface(t *table) (*Interface, error) {
	if err := t.checkKeys(
		"name", "version", "summary", "description",
		"request", "event", "enum",
	); err != nil {
		return nil, err
	}
	var err error
	iface := &Interface{Path: t.path}
	if iface.Name, err = t.name(identRE); err != nil {
		return nil, err
	}
	version, ok, err := t.uint32Key("version", 1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errMissingKey(t.path, "version")
	}
	iface.Version = version
	if err := t.docs(&iface.Summary, &iface.Description); err != nil {
		return nil, err
	}

	if iface.Requests, err = parseMessages(t, "request", PathRequest); err != nil {
		return nil, err
	}
	if iface.Events, err = parseMessages(t, "event", PathEvent); err != nil {
		return nil, err
	}

	enums, err := t.tablesKey("enum")
	if err != nil {
		return nil, err
	}
	seen := names{}
	for ii, kv := range enums {
		enum, err := parseEnum(newTable(t.path, PathEnum, ii, kv))
		if err != nil {
			return nil, err
		}
		if err := seen.add(enum.Path, PathEnum, enum.Name); err != nil {
			return nil, err
		}
		iface.Enums = append(iface.Enums, enum)
	}
	return iface, nil
}

func parseMessages(parent *table, key string, kind PathKind) ([]*Message, error) {
	list, err := parent.tablesKey(key)
	if err != nil {
		return nil, err
	}
	var out []*Message
	seen := names{}
	for ii, kv := range list {
		msg, err := parseMessage(newTable(parent.path, kind, ii, kv))
		if err != nil {
			return nil, err
		}
		if err := seen.add(msg.Path, kind, msg.Name); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}

func parseMessage(t *table) (*Message, error) {
	if err := t.checkKeys(
		"name", "since", "destructor", "summary", "description", "arg",
	); err != nil {
		return nil, err
	}
	var err error
	msg := &Message{Path: t.path}
	if msg.Name, err = t.name(identRE); err != nil {
		return nil, err
	}
	if msg.Since, err = t.since(); err != nil {
		return nil, err
	}
	if msg.Destructor, _, err = t.boolKey("destructor"); err != nil {
		return nil, err
	}
	if err := t.docs(&msg.Summary, &msg.Description); err != nil {
		return nil, err
	}
	args, err := t.tablesKey("arg")
	if err != nil {
		return nil, err
	}
	seen := names{}
	for ii, kv := range args {
		arg, err := parseArg(newTable(t.path, PathArg, ii, kv))
		if err != nil {
			return nil, err
		}
		if err := seen.add(arg.Path, PathArg, arg.Name); err != nil {
			return nil, err
		}
		msg.Args = append(msg.Args, arg)
	}
	return msg, nil
}

func parseArg(t *table) (*Arg, error) {
	if err := t.checkKeys(
		"name", "type", "interface", "enum", "allow-null", "nullable",
		"summary",
	); err != nil {
		return nil, err
	}
	var err error
	arg := &Arg{Path: t.path}
	if arg.Name, err = t.name(identRE); err != nil {
		return nil, err
	}

	typeName, ok, err := t.stringKey("type")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errMissingKey(t.path, "type")
	}
	if arg.Type, ok = wire.ParseArgType(typeName); !ok {
		return nil, errUnknownArgType(t.path, typeName)
	}

	if arg.Interface, _, err = t.stringKey("interface"); err != nil {
		return nil, err
	}
	if arg.Interface != "" && !identRE.MatchString(arg.Interface) {
		return nil, errInvalidName(t.path, "interface", arg.Interface)
	}
	if arg.Enum, _, err = t.stringKey("enum"); err != nil {
		return nil, err
	}
	if arg.Enum != "" && !enumRefRE.MatchString(arg.Enum) {
		return nil, errInvalidName(t.path, "enum", arg.Enum)
	}

	allowNull, haveAllowNull, err := t.boolKey("allow-null")
	if err != nil {
		return nil, err
	}
	nullable, haveNullable, err := t.boolKey("nullable")
	if err != nil {
		return nil, err
	}
	if haveAllowNull && haveNullable {
		return nil, errConflictingKeys(t.path, "allow-null", "nullable")
	}
	arg.Nullable = allowNull || nullable

	if err := t.docs(&arg.Summary, nil); err != nil {
		return nil, err
	}
	return arg, nil
}

func parseEnum(t *table) (*Enum, error) {
	if err := t.checkKeys(
		"name", "bitfield", "since", "summary", "description", "entry",
	); err != nil {
		return nil, err
	}
	var err error
	enum := &Enum{Path: t.path}
	if enum.Name, err = t.name(identRE); err != nil {
		return nil, err
	}
	if enum.Bitfield, _, err = t.boolKey("bitfield"); err != nil {
		return nil, err
	}
	if enum.Since, err = t.since(); err != nil {
		return nil, err
	}
	if err := t.docs(&enum.Summary, &enum.Description); err != nil {
		return nil, err
	}
	entries, err := t.tablesKey("entry")
	if err != nil {
		return nil, err
	}
	seen := names{}
	for ii, kv := range entries {
		entry, err := parseEntry(newTable(t.path, PathEntry, ii, kv))
		if err != nil {
			return nil, err
		}
		if err := seen.add(entry.Path, PathEntry, entry.Name); err != nil {
			return nil, err
		}
		enum.Entries = append(enum.Entries, entry)
	}
	return enum, nil
}

func parseEntry(t *table) (*Entry, error) {
	if err := t.checkKeys(
		"name", "value", "since", "alias", "summary", "description",
	); err != nil {
		return nil, err
	}
	var err error
	entry := &Entry{Path: t.path}
	if entry.Name, err = t.name(entryNameRE); err != nil {
		return nil, err
	}
	value, ok, err := t.uint32Key("value", 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errMissingKey(t.path, "value")
	}
	entry.Value = value
	if entry.Since, err = t.since(); err != nil {
		return nil, err
	}
	if entry.Alias, _, err = t.boolKey("alias"); err != nil {
		return nil, err
	}
	if err := t.docs(&entry.Summary, &entry.Description); err != nil {
		return nil, err
	}
	return entry, nil
}
