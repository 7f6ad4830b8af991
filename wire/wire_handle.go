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

// Handle is a reference to a protocol object tagged with the name of its
// interface at runtime. Generated code wraps handles in one typed struct
// per interface; a Handle on its own is the representation of object
// arguments whose interface is not fixed by the schema.
type Handle struct {
	id      ObjectID
	iface   string
	version uint32
}

// NewHandle returns a handle for object id implementing iface at version.
func NewHandle(id ObjectID, iface string, version uint32) Handle {
	return Handle{id: id, iface: iface, version: version}
}

func (h Handle) ID() ObjectID {
	return h.id
}

// Interface returns the interface name the object was created with, or ""
// for the null handle.
func (h Handle) Interface() string {
	return h.iface
}

func (h Handle) Version() uint32 {
	return h.version
}

// IsNull reports whether h refers to no object.
func (h Handle) IsNull() bool {
	return h.id == 0
}

// Expect checks that h is null or refers to an object of interface iface.
// The error wraps [ErrTypeMismatch].
func (h Handle) Expect(iface string) error {
	if h.id == 0 || h.iface == iface {
		return nil
	}
	return fmt.Errorf("%w: object %d is %s, expected %s", ErrTypeMismatch, h.id, h.iface, iface)
}

func (h Handle) String() string {
	if h.id == 0 {
		return "null"
	}
	return fmt.Sprintf("%s@%d", h.iface, h.id)
}

// NewID is the generic-bind form of a new_id argument: the interface is not
// fixed by the schema, so the name and version travel on the wire ahead of
// the new object's id.
type NewID struct {
	Interface string
	Version   uint32
	ID        ObjectID
}

// Handle returns the handle of the object created by n.
func (n NewID) Handle() Handle {
	return NewHandle(n.ID, n.Interface, n.Version)
}

// Bind validates n against the interface a caller expects to create and
// returns the new object's handle. The error wraps [ErrTypeMismatch] when
// the interface names differ and [ErrUnsupportedVersion] when n.Version
// is zero or higher than maxVersion.
func (n NewID) Bind(iface string, maxVersion uint32) (Handle, error) {
	if n.Interface != iface {
		return Handle{}, fmt.Errorf("%w: bind of %s as %s", ErrTypeMismatch, n.Interface, iface)
	}
	if n.Version == 0 || n.Version > maxVersion {
		return Handle{}, fmt.Errorf(
			"%w: %s version %d (max %d)",
			ErrUnsupportedVersion, iface, n.Version, maxVersion,
		)
	}
	return n.Handle(), nil
}

// Objects looks up live objects of one connection.
type Objects interface {
	Lookup(id ObjectID) (Handle, bool)
}

// ObjectMap is a minimal [Objects] implementation.
type ObjectMap map[ObjectID]Handle

func (m ObjectMap) Lookup(id ObjectID) (Handle, bool) {
	h, ok := m[id]
	return h, ok
}

// Add records h in m.
func (m ObjectMap) Add(h Handle) {
	m[h.ID()] = h
}

// Remove forgets the object id. The id may then be reused.
func (m ObjectMap) Remove(id ObjectID) {
	delete(m, id)
}

// ObjectRemover is implemented by [Objects] tables that retire destroyed
// objects through [DecodeCtx.Destroyed].
type ObjectRemover interface {
	Remove(id ObjectID)
}

// DecodeCtx carries per-connection state needed to decode messages.
//
// Objects may be nil, in which case object arguments are not checked
// against live objects and carry only their id. Such handles have version
// 0, so dispatching a message with since > 1 on them fails with a version
// error.
type DecodeCtx struct {
	Fds     *FdQueue
	Objects Objects

	// OnDestroy, if set, is called by [DecodeCtx.Destroyed] after the
	// object has been removed from Objects.
	OnDestroy func(h Handle)
}

// Destroyed records that the object h was destroyed by a destructor
// message. Generated dispatchers call it once the handler of such a message
// returns without error. A nil ctx is a no-op.
func (ctx *DecodeCtx) Destroyed(h Handle) {
	if ctx == nil || h.IsNull() {
		return
	}
	if objects, ok := ctx.Objects.(ObjectRemover); ok {
		objects.Remove(h.ID())
	}
	if ctx.OnDestroy != nil {
		ctx.OnDestroy(h)
	}
}
