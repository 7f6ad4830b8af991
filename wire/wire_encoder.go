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
	"strings"
	"unicode/utf8"
)

// Encoder builds one outgoing message. Put methods append argument slots in
// call order; the first failure is kept and reported by Finish.
type Encoder struct {
	msg Message
	err error
}

// NewEncoder starts a message sent by object sender.
func NewEncoder(sender ObjectID, opcode Opcode) *Encoder {
	return &Encoder{
		msg: Message{Sender: sender, Opcode: opcode},
	}
}

func (e *Encoder) putWord(v uint32) {
	e.msg.Body = byteOrder.AppendUint32(e.msg.Body, v)
}

func (e *Encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Encoder) PutInt(v int32) {
	e.putWord(uint32(v))
}

func (e *Encoder) PutUint(v uint32) {
	e.putWord(v)
}

func (e *Encoder) PutFixed(v Fixed) {
	e.putWord(uint32(v))
}

// PutText appends a non-nullable string.
func (e *Encoder) PutText(s string) {
	if strings.IndexByte(s, 0) >= 0 {
		e.fail(ErrEmbeddedNul)
		return
	}
	if !utf8.ValidString(s) {
		e.fail(ErrInvalidUTF8)
		return
	}
	e.putWord(uint32(len(s) + 1))
	e.msg.Body = append(e.msg.Body, s...)
	e.msg.Body = append(e.msg.Body, 0)
	e.pad(len(s) + 1)
}

// PutNullableText appends a nullable string; nil is encoded as length 0.
func (e *Encoder) PutNullableText(s *string) {
	if s == nil {
		e.putWord(0)
		return
	}
	e.PutText(*s)
}

func (e *Encoder) PutArray(b []byte) {
	e.putWord(uint32(len(b)))
	e.msg.Body = append(e.msg.Body, b...)
	e.pad(len(b))
}

// PutObject appends an object id. The null id is rejected unless the
// argument is nullable.
func (e *Encoder) PutObject(id ObjectID, nullable bool) {
	if id == 0 && !nullable {
		e.fail(fmt.Errorf("%w: object", ErrNullValue))
	}
	e.putWord(uint32(id))
}

// PutNewID appends the id of an object created by this message.
func (e *Encoder) PutNewID(id ObjectID) {
	if id == 0 {
		e.fail(fmt.Errorf("%w: new_id", ErrNullValue))
	}
	e.putWord(uint32(id))
}

// PutGenericNewID appends a new_id whose interface is chosen at runtime:
// interface name, version, then id.
func (e *Encoder) PutGenericNewID(n NewID) {
	e.PutText(n.Interface)
	e.PutUint(n.Version)
	e.PutNewID(n.ID)
}

// PutFd attaches a descriptor to the message. It occupies no body bytes.
func (e *Encoder) PutFd(fd int) {
	e.msg.Fds = append(e.msg.Fds, fd)
}

func (e *Encoder) pad(n int) {
	for range padding(n) {
		e.msg.Body = append(e.msg.Body, 0)
	}
}

// Finish returns the built message.
func (e *Encoder) Finish() (*Message, error) {
	if e.err != nil {
		return nil, e.err
	}
	if size := e.msg.Size(); size > MaxMessageSize {
		return nil, errMessageTooLarge(size)
	}
	msg := e.msg
	return &msg, nil
}
