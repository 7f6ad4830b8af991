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

// Message is one wire message, split into header fields and body.
//
// For outgoing messages Fds holds the descriptors to send alongside the
// bytes, in argument declaration order. Incoming descriptors are not
// attached to messages; they arrive in the connection's [FdQueue].
type Message struct {
	Sender ObjectID
	Opcode Opcode
	Body   []byte
	Fds    []int
}

// Size returns the encoded size of m, header included.
func (m *Message) Size() int {
	return HeaderSize + len(m.Body)
}

// AppendTo appends the encoded header and body of m to buf.
func (m *Message) AppendTo(buf []byte) ([]byte, error) {
	size := m.Size()
	if size > MaxMessageSize {
		return buf, errMessageTooLarge(size)
	}
	if len(m.Body)%4 != 0 {
		return buf, errUnaligned(len(m.Body))
	}
	buf = byteOrder.AppendUint32(buf, uint32(m.Sender))
	buf = byteOrder.AppendUint32(buf, uint32(size)<<16|uint32(m.Opcode))
	return append(buf, m.Body...), nil
}

// Bytes returns the encoded header and body of m.
func (m *Message) Bytes() ([]byte, error) {
	return m.AppendTo(make([]byte, 0, m.Size()))
}

// Header is the decoded form of the 8-byte message header.
type Header struct {
	Sender ObjectID
	Opcode Opcode
	Size   uint16
}

// ParseHeader decodes the header at the start of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrTruncated
	}
	word := byteOrder.Uint32(buf[4:8])
	h := Header{
		Sender: ObjectID(byteOrder.Uint32(buf[0:4])),
		Opcode: Opcode(word & 0xFFFF),
		Size:   uint16(word >> 16),
	}
	if h.Size < HeaderSize || h.Size%4 != 0 {
		return Header{}, errBadSize(h.Size)
	}
	return h, nil
}

// ReadMessage splits the first complete message off buf. The returned
// message body aliases buf. If buf holds only part of a message the error
// is [ErrTruncated] and the caller should read more bytes.
func ReadMessage(buf []byte) (*Message, []byte, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return nil, buf, err
	}
	if len(buf) < int(h.Size) {
		return nil, buf, ErrTruncated
	}
	msg := &Message{
		Sender: h.Sender,
		Opcode: h.Opcode,
		Body:   buf[HeaderSize:h.Size:h.Size],
	}
	return msg, buf[h.Size:], nil
}
