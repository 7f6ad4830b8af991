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
	"errors"
	"fmt"
)

// Decode failures. Generated code wraps these in a [*DecodeError]; test
// for a class with errors.Is.
var (
	ErrTruncated          = errors.New("message truncated")
	ErrUnknownOpcode      = errors.New("unknown opcode")
	ErrInvalidUTF8        = errors.New("string is not valid UTF-8")
	ErrInvalidEnum        = errors.New("value not in enum")
	ErrFdQueueEmpty       = errors.New("file descriptor queue exhausted")
	ErrTypeMismatch       = errors.New("object has unexpected interface")
	ErrUnknownObject      = errors.New("unknown object id")
	ErrNullValue          = errors.New("null value for non-nullable argument")
	ErrTrailingData       = errors.New("trailing data after last argument")
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Encode failures.
var (
	ErrMessageTooLarge = errors.New("message too large")
	ErrEmbeddedNul     = errors.New("string contains NUL byte")
)

// DecodeError is a failure to decode or dispatch an incoming message.
//
// Every DecodeError is fatal to the connection it was read from: the wire
// format has no resynchronization point, so the peer must be disconnected.
type DecodeError struct {
	Interface string
	Message   string
	Arg       string
	Err       error
}

func (err *DecodeError) Error() string {
	switch {
	case err.Message == "":
		return fmt.Sprintf("%s: %v", err.Interface, err.Err)
	case err.Arg == "":
		return fmt.Sprintf("%s.%s: %v", err.Interface, err.Message, err.Err)
	}
	return fmt.Sprintf("%s.%s(%s): %v", err.Interface, err.Message, err.Arg, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// Fatal always reports true.
func (err *DecodeError) Fatal() bool {
	return true
}

// ArgError wraps an argument decode failure.
func ArgError(iface, message, arg string, err error) error {
	return &DecodeError{
		Interface: iface,
		Message:   message,
		Arg:       arg,
		Err:       err,
	}
}

// MessageError wraps a message level decode failure. It returns nil if
// err is nil.
func MessageError(iface, message string, err error) error {
	if err == nil {
		return nil
	}
	return &DecodeError{
		Interface: iface,
		Message:   message,
		Err:       err,
	}
}

// OpcodeError reports an opcode that names no message of iface.
func OpcodeError(iface string, opcode Opcode) error {
	return &DecodeError{
		Interface: iface,
		Err:       fmt.Errorf("%w %d", ErrUnknownOpcode, opcode),
	}
}

// VersionError reports a message that was added after the version bound to
// the receiving object.
func VersionError(iface, message string, since, version uint32) error {
	return &DecodeError{
		Interface: iface,
		Message:   message,
		Err: fmt.Errorf(
			"%w: message since version %d, object bound at version %d",
			ErrUnknownOpcode, since, version,
		),
	}
}

// InvalidEnum reports a value outside the declared entries of enum.
func InvalidEnum(enum string, value uint32) error {
	return fmt.Errorf("%w %s: %d", ErrInvalidEnum, enum, value)
}

func errMessageTooLarge(size int) error {
	return fmt.Errorf("%w: %d bytes (max %d)", ErrMessageTooLarge, size, MaxMessageSize)
}

func errUnaligned(size int) error {
	return fmt.Errorf("message body size %d is not a multiple of 4", size)
}

func errBadSize(size uint16) error {
	return fmt.Errorf("invalid message size %d in header", size)
}
