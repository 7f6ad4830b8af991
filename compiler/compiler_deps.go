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

package compiler

import (
	"github.com/AidoP/wl-codegen/ir"
)

// SchemaSet is the combined symbol table of previously compiled schemas.
// Its interfaces and enums may be referenced by a compilation but are not
// part of its output.
type SchemaSet struct {
	interfaces []*ir.Interface
	byName     map[string]*ir.Interface
}

// Interfaces returns the set's interfaces in merge order.
func (s *SchemaSet) Interfaces() []*ir.Interface {
	return s.interfaces
}

func (s *SchemaSet) Interface(name string) (*ir.Interface, bool) {
	iface, ok := s.byName[name]
	return iface, ok
}

// Merge combines schemas into a [SchemaSet]. Passing the same schema twice
// is harmless; two schemas defining the same interface name is an error.
func Merge(schemas []*ir.Schema) (*SchemaSet, error) {
	set := &SchemaSet{
		byName: make(map[string]*ir.Interface),
	}
	var errs ErrorList
	seen := make(map[*ir.Schema]struct{}, len(schemas))
	for _, schema := range schemas {
		if _, dup := seen[schema]; dup {
			continue
		}
		seen[schema] = struct{}{}
		for iface := range schema.Interfaces() {
			name := iface.Name()
			if prev, conflict := set.byName[name]; conflict {
				errs = append(errs, errDependencyConflict(
					name,
					prev.Protocol().Name(),
					iface.Protocol().Name(),
				).(*Error))
				continue
			}
			set.byName[name] = iface
			set.interfaces = append(set.interfaces, iface)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return set, nil
}
