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
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Decoder reads argument slots from the body of one incoming message.
type Decoder struct {
	ctx *DecodeCtx
	buf []byte
	off int
}

// NewDecoder returns a decoder over body. ctx may be nil when the message
// has no fd or object arguments.
func NewDecoder(ctx *DecodeCtx, body []byte) *Decoder {
	if ctx == nil {
		ctx = &DecodeCtx{}
	}
	return &Decoder{ctx: ctx, buf: body}
}

func (d *Decoder) word() (uint32, error) {
	if len(d.buf)-d.off < 4 {
		return 0, ErrTruncated
	}
	v := byteOrder.Uint32(d.buf[d.off:])
	d.off += 4
	return v, nil
}

func (d *Decoder) bytes(n uint32) ([]byte, error) {
	padded := uint64(align4(int(n)))
	if uint64(len(d.buf)-d.off) < padded {
		return nil, ErrTruncated
	}
	b := d.buf[d.off : d.off+int(n)]
	d.off += int(padded)
	return b, nil
}

func (d *Decoder) Int() (int32, error) {
	v, err := d.word()
	return int32(v), err
}

func (d *Decoder) Uint() (uint32, error) {
	return d.word()
}

func (d *Decoder) Fixed() (Fixed, error) {
	v, err := d.word()
	return Fixed(int32(v)), err
}

// Text reads a non-nullable string.
func (d *Decoder) Text() (string, error) {
	s, err := d.NullableText()
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", ErrNullValue
	}
	return *s, nil
}

// NullableText reads a nullable string; length 0 decodes as nil.
func (d *Decoder) NullableText() (*string, error) {
	n, err := d.word()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	b, err := d.bytes(n)
	if err != nil {
		return nil, err
	}
	if b[n-1] != 0 {
		return nil, fmt.Errorf("%w: string is not NUL terminated", ErrTruncated)
	}
	b = b[:n-1]
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, ErrEmbeddedNul
	}
	if !utf8.Valid(b) {
		return nil, ErrInvalidUTF8
	}
	s := string(b)
	return &s, nil
}

// Array reads an array payload. The result is a copy.
func (d *Decoder) Array() ([]byte, error) {
	n, err := d.word()
	if err != nil {
		return nil, err
	}
	b, err := d.bytes(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// Fd pops the next descriptor from the connection's queue.
func (d *Decoder) Fd() (int, error) {
	return d.ctx.Fds.Pop()
}

// Object reads an object id and resolves it. An empty iface accepts any
// interface. When the context has no object table the handle is tagged
// with iface and carries no version.
func (d *Decoder) Object(iface string, nullable bool) (Handle, error) {
	v, err := d.word()
	if err != nil {
		return Handle{}, err
	}
	id := ObjectID(v)
	if id == 0 {
		if !nullable {
			return Handle{}, ErrNullValue
		}
		return Handle{}, nil
	}
	if d.ctx.Objects == nil {
		return NewHandle(id, iface, 0), nil
	}
	h, ok := d.ctx.Objects.Lookup(id)
	if !ok {
		return Handle{}, fmt.Errorf("%w %d", ErrUnknownObject, id)
	}
	if iface != "" {
		if err := h.Expect(iface); err != nil {
			return Handle{}, err
		}
	}
	return h, nil
}

// NewID reads the id of an object created by this message.
func (d *Decoder) NewID() (ObjectID, error) {
	v, err := d.word()
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, ErrNullValue
	}
	return ObjectID(v), nil
}

// GenericNewID reads the interface name, version and id of a new_id whose
// interface is not fixed by the schema.
func (d *Decoder) GenericNewID() (NewID, error) {
	iface, err := d.Text()
	if err != nil {
		return NewID{}, err
	}
	version, err := d.Uint()
	if err != nil {
		return NewID{}, err
	}
	id, err := d.NewID()
	if err != nil {
		return NewID{}, err
	}
	return NewID{Interface: iface, Version: version, ID: id}, nil
}

// Remaining returns the number of unread body bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

// Finish checks that the whole body was consumed.
func (d *Decoder) Finish() error {
	if n := d.Remaining(); n != 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingData, n)
	}
	return nil
}
