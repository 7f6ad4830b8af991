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
	"fmt"
)

// Uint32s interprets an array payload as host-order 32-bit words, the
// layout used by arrays such as wl_keyboard.enter's key list.
func Uint32s(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("array of %d bytes is not a whole number of words", len(b))
	}
	out := make([]uint32, len(b)/4)
	for ii := range out {
		out[ii] = byteOrder.Uint32(b[ii*4:])
	}
	return out, nil
}

// Int32s is like [Uint32s] for signed words.
func Int32s(b []byte) ([]int32, error) {
	words, err := Uint32s(b)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(words))
	for ii, w := range words {
		out[ii] = int32(w)
	}
	return out, nil
}

// AppendUint32s appends words to an array payload.
func AppendUint32s(b []byte, words ...uint32) []byte {
	for _, w := range words {
		b = byteOrder.AppendUint32(b, w)
	}
	return b
}
