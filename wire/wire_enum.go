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

package wire

import (
	"strconv"
	"strings"
)

// FlagName names one bit (or the zero value) of a bitfield enum.
type FlagName struct {
	Value uint32
	Name  string
}

// FormatUnknown formats a value that matches no entry of the named enum.
func FormatUnknown(typeName string, value uint32) string {
	return typeName + "(" + strconv.FormatUint(uint64(value), 10) + ")"
}

// FormatFlags formats a bitfield value as its entry names joined by "|".
// Bits without an entry are printed in hexadecimal.
func FormatFlags(value uint32, names []FlagName) string {
	if value == 0 {
		for _, name := range names {
			if name.Value == 0 {
				return name.Name
			}
		}
		return "0"
	}
	var parts []string
	rest := value
	for _, name := range names {
		if name.Value != 0 && value&name.Value == name.Value {
			parts = append(parts, name.Name)
			rest &^= name.Value
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}
