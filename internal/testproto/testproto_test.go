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

package testproto_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/AidoP/wl-codegen/internal/testproto"
	"github.com/AidoP/wl-codegen/internal/testutil"
	"github.com/AidoP/wl-codegen/wire"
)

type displayServer struct {
	synced     []testproto.TestCallback
	registries []testproto.TestRegistry
}

func (s *displayServer) Sync(self testproto.TestDisplay, callback testproto.TestCallback) error {
	s.synced = append(s.synced, callback)
	return nil
}

func (s *displayServer) GetRegistry(self testproto.TestDisplay, registry testproto.TestRegistry) error {
	s.registries = append(s.registries, registry)
	return nil
}

type registryServer struct {
	bound []wire.NewID
}

func (s *registryServer) Bind(self testproto.TestRegistry, name uint32, id wire.NewID) error {
	s.bound = append(s.bound, id)
	return nil
}

type bufferServer struct {
	destroyed  bool
	destroyErr error
	attached  []testproto.TestBufferAttachRequest
	labels    []*string
}

func (s *bufferServer) Destroy(self testproto.TestBuffer) error {
	s.destroyed = true
	return s.destroyErr
}

func (s *bufferServer) Attach(
	self testproto.TestBuffer,
	data int,
	meta int,
	format testproto.TestBufferFormat,
	flags testproto.TestBufferFlags,
) error {
	s.attached = append(s.attached, testproto.TestBufferAttachRequest{
		Data:   data,
		Meta:   meta,
		Format: format,
		Flags:  flags,
	})
	return nil
}

func (s *bufferServer) SetLabel(self testproto.TestBuffer, label *string) error {
	s.labels = append(s.labels, label)
	return nil
}

type marshaler interface {
	MarshalMessage(sender wire.ObjectID) (*wire.Message, error)
}

func marshal(t *testing.T, sender wire.ObjectID, m marshaler) *wire.Message {
	t.Helper()
	msg, err := m.MarshalMessage(sender)
	testutil.AssertNoError(t, err)
	return msg
}

func TestSyncBytes(t *testing.T) {
	t.Parallel()
	req := &testproto.TestDisplaySyncRequest{
		Callback: testproto.NewTestCallback(2, 1),
	}
	msg := marshal(t, 1, req)
	raw, err := msg.Bytes()
	testutil.AssertNoError(t, err)

	testutil.ExpectEq(t, 12, len(raw))
	testutil.ExpectEq(t, uint32(1), binary.NativeEndian.Uint32(raw[0:]))
	testutil.ExpectEq(t, uint32(12<<16|0), binary.NativeEndian.Uint32(raw[4:]))
	testutil.ExpectEq(t, uint32(2), binary.NativeEndian.Uint32(raw[8:]))
}

func TestDispatchSync(t *testing.T) {
	t.Parallel()
	display := testproto.NewTestDisplay(1, 1)
	msg := marshal(t, display.ID(), &testproto.TestDisplaySyncRequest{
		Callback: testproto.NewTestCallback(3, 1),
	})

	var server displayServer
	err := testproto.DispatchTestDisplayRequest(nil, display, msg, &server)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, len(server.synced) == 1)

	callback := server.synced[0]
	testutil.ExpectEq(t, wire.ObjectID(3), callback.ID())
	testutil.ExpectEq(t, display.Version(), callback.Version())
	testutil.ExpectEq(t, testproto.TestCallbackInterfaceName, callback.Handle().Interface())
}

func TestDispatchUnknownOpcode(t *testing.T) {
	t.Parallel()
	msg := &wire.Message{Sender: 1, Opcode: 7}
	err := testproto.DispatchTestDisplayRequest(
		nil, testproto.NewTestDisplay(1, 1), msg, &displayServer{},
	)
	testutil.ExpectErrorIs(t, wire.ErrUnknownOpcode, err)

	var decodeErr *wire.DecodeError
	testutil.AssertTrue(t, errors.As(err, &decodeErr))
	testutil.ExpectEq(t, "test_display", decodeErr.Interface)
	testutil.ExpectTrue(t, decodeErr.Fatal())
}

func TestDispatchTrailingData(t *testing.T) {
	t.Parallel()
	msg := marshal(t, 1, &testproto.TestBufferDestroyRequest{})
	msg.Body = append(msg.Body, 0, 0, 0, 0)

	var server bufferServer
	err := testproto.DispatchTestBufferRequest(
		nil, testproto.NewTestBuffer(1, 1), msg, &server,
	)
	testutil.ExpectErrorIs(t, wire.ErrTrailingData, err)
	testutil.ExpectFalse(t, server.destroyed)
}

func TestGenericBind(t *testing.T) {
	t.Parallel()
	msg := marshal(t, 2, &testproto.TestRegistryBindRequest{
		Name: 5,
		ID: wire.NewID{
			Interface: testproto.TestBufferInterfaceName,
			Version:   2,
			ID:        9,
		},
	})

	var server registryServer
	err := testproto.DispatchTestRegistryRequest(
		nil, testproto.NewTestRegistry(2, 1), msg, &server,
	)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, len(server.bound) == 1)

	buffer, err := testproto.BindTestBuffer(server.bound[0])
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, wire.ObjectID(9), buffer.ID())
	testutil.ExpectEq(t, uint32(2), buffer.Version())

	_, err = testproto.BindTestCallback(server.bound[0])
	testutil.ExpectErrorIs(t, wire.ErrTypeMismatch, err)
}

func TestGenericBindVersionTooHigh(t *testing.T) {
	t.Parallel()
	_, err := testproto.BindTestBuffer(wire.NewID{
		Interface: testproto.TestBufferInterfaceName,
		Version:   testproto.TestBufferVersion + 1,
		ID:        4,
	})
	testutil.ExpectErrorIs(t, wire.ErrUnsupportedVersion, err)
}

func TestAttachFds(t *testing.T) {
	t.Parallel()
	req := &testproto.TestBufferAttachRequest{
		Data:   10,
		Meta:   11,
		Format: testproto.TestBufferFormatXrgb8888,
		Flags:  testproto.TestBufferFlagsYInvert | testproto.TestBufferFlagsBottomFirst,
	}
	msg := marshal(t, 4, req)
	testutil.ExpectSliceEq(t, []int{10, 11}, msg.Fds)
	testutil.ExpectEq(t, 8, len(msg.Body))

	ctx := &wire.DecodeCtx{Fds: wire.NewFdQueue(msg.Fds...)}
	ctx.Fds.Push(12)

	var server bufferServer
	err := testproto.DispatchTestBufferRequest(
		ctx, testproto.NewTestBuffer(4, 1), msg, &server,
	)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, len(server.attached) == 1)
	testutil.ExpectEq(t, *req, server.attached[0])

	// Descriptors of later messages stay queued.
	testutil.ExpectEq(t, 1, ctx.Fds.Len())
}

func TestAttachMissingFd(t *testing.T) {
	t.Parallel()
	msg := marshal(t, 4, &testproto.TestBufferAttachRequest{Data: 10, Meta: 11})
	ctx := &wire.DecodeCtx{Fds: wire.NewFdQueue(10)}

	var server bufferServer
	err := testproto.DispatchTestBufferRequest(
		ctx, testproto.NewTestBuffer(4, 1), msg, &server,
	)
	testutil.ExpectErrorIs(t, wire.ErrFdQueueEmpty, err)

	var decodeErr *wire.DecodeError
	testutil.AssertTrue(t, errors.As(err, &decodeErr))
	testutil.ExpectEq(t, "attach", decodeErr.Message)
	testutil.ExpectEq(t, "meta", decodeErr.Arg)
}

func TestAttachInvalidEnum(t *testing.T) {
	t.Parallel()
	e := wire.NewEncoder(4, testproto.TestBufferAttachRequestOpcode)
	e.PutFd(10)
	e.PutFd(11)
	e.PutUint(7)
	e.PutUint(0)
	msg, err := e.Finish()
	testutil.AssertNoError(t, err)

	ctx := &wire.DecodeCtx{Fds: wire.NewFdQueue(msg.Fds...)}
	var server bufferServer
	err = testproto.DispatchTestBufferRequest(
		ctx, testproto.NewTestBuffer(4, 1), msg, &server,
	)
	testutil.ExpectErrorIs(t, wire.ErrInvalidEnum, err)
	testutil.ExpectEq(t, 0, len(server.attached))
}

func TestAttachInvalidFlags(t *testing.T) {
	t.Parallel()
	e := wire.NewEncoder(4, testproto.TestBufferAttachRequestOpcode)
	e.PutFd(10)
	e.PutFd(11)
	e.PutUint(0)
	e.PutUint(0x8)
	msg, err := e.Finish()
	testutil.AssertNoError(t, err)

	ctx := &wire.DecodeCtx{Fds: wire.NewFdQueue(msg.Fds...)}
	err = testproto.DispatchTestBufferRequest(
		ctx, testproto.NewTestBuffer(4, 1), msg, &bufferServer{},
	)
	testutil.ExpectErrorIs(t, wire.ErrInvalidEnum, err)
}

func TestSetLabelVersion(t *testing.T) {
	t.Parallel()
	label := "front"
	msg := marshal(t, 4, &testproto.TestBufferSetLabelRequest{Label: &label})

	var server bufferServer
	err := testproto.DispatchTestBufferRequest(
		nil, testproto.NewTestBuffer(4, 1), msg, &server,
	)
	testutil.ExpectErrorIs(t, wire.ErrUnknownOpcode, err)
	testutil.ExpectEq(t, 0, len(server.labels))

	err = testproto.DispatchTestBufferRequest(
		nil, testproto.NewTestBuffer(4, 2), msg, &server,
	)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, len(server.labels) == 1)
	testutil.ExpectEq(t, "front", *server.labels[0])
}

func TestSetLabelNull(t *testing.T) {
	t.Parallel()
	msg := marshal(t, 4, &testproto.TestBufferSetLabelRequest{})
	testutil.ExpectEq(t, 4, len(msg.Body))

	var server bufferServer
	err := testproto.DispatchTestBufferRequest(
		nil, testproto.NewTestBuffer(4, 2), msg, &server,
	)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, len(server.labels) == 1)
	testutil.ExpectTrue(t, server.labels[0] == nil)
}

func TestErrorEventRoundTrip(t *testing.T) {
	t.Parallel()
	surface := wire.NewHandle(5, "test_buffer", 1)
	ev := &testproto.TestDisplayErrorEvent{
		ObjectID: surface,
		Code:     uint32(testproto.TestDisplayErrorNoMemory),
		Message:  "out of memory",
	}
	msg := marshal(t, 1, ev)

	objects := wire.ObjectMap{}
	objects.Add(surface)
	ctx := &wire.DecodeCtx{Objects: objects}

	var got testproto.TestDisplayErrorEvent
	testutil.AssertNoError(t, got.UnmarshalMessage(ctx, 1, msg))
	testutil.ExpectEq(t, *ev, got)
}

func TestErrorEventUnknownObject(t *testing.T) {
	t.Parallel()
	msg := marshal(t, 1, &testproto.TestDisplayErrorEvent{
		ObjectID: wire.NewHandle(5, "test_buffer", 1),
		Message:  "gone",
	})
	ctx := &wire.DecodeCtx{Objects: wire.ObjectMap{}}

	var got testproto.TestDisplayErrorEvent
	err := got.UnmarshalMessage(ctx, 1, msg)
	testutil.ExpectErrorIs(t, wire.ErrUnknownObject, err)
}

func TestEnumString(t *testing.T) {
	t.Parallel()
	testutil.ExpectEq(t, "no_memory", testproto.TestDisplayErrorNoMemory.String())
	testutil.ExpectEq(t, "TestDisplayError(9)", testproto.TestDisplayError(9).String())
	testutil.ExpectTrue(t, testproto.TestDisplayErrorInvalidObject.Valid())
	testutil.ExpectFalse(t, testproto.TestDisplayError(3).Valid())
}

func TestBitfield(t *testing.T) {
	t.Parallel()
	flags := testproto.TestBufferFlagsYInvert.With(testproto.TestBufferFlagsInterlaced)
	testutil.ExpectTrue(t, flags.Has(testproto.TestBufferFlagsInterlaced))
	testutil.ExpectFalse(t, flags.Has(testproto.TestBufferFlagsBottomFirst))
	testutil.ExpectEq(t, "y_invert|interlaced", flags.String())
	testutil.ExpectEq(t, testproto.TestBufferFlagsYInvert, flags.Without(testproto.TestBufferFlagsInterlaced))
	testutil.ExpectEq(t, "y_invert|0x10", (testproto.TestBufferFlagsYInvert | 0x10).String())
	testutil.ExpectFalse(t, (flags | 0x10).Valid())
	testutil.ExpectTrue(t, testproto.TestBufferFlags(0).Valid())
}

func TestAsHandle(t *testing.T) {
	t.Parallel()
	_, err := testproto.AsTestRegistry(wire.NewHandle(3, "test_buffer", 1))
	testutil.ExpectErrorIs(t, wire.ErrTypeMismatch, err)

	registry, err := testproto.AsTestRegistry(wire.NewHandle(3, "test_registry", 1))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, wire.ObjectID(3), registry.ID())
}

func TestInterfaceDescriptor(t *testing.T) {
	t.Parallel()
	desc, ok := testproto.TestBufferInterface.Request(testproto.TestBufferSetLabelRequestOpcode)
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, "set_label", desc.Name)
	testutil.ExpectEq(t, uint32(2), desc.Since)
	testutil.ExpectEq(t, "?s", desc.Signature)

	_, ok = testproto.TestCallbackInterface.Request(0)
	testutil.ExpectFalse(t, ok)
}

func TestInterfaceDestructor(t *testing.T) {
	t.Parallel()
	requests := testproto.TestBufferInterface.Requests
	testutil.ExpectTrue(t, requests[testproto.TestBufferDestroyRequestOpcode].Destructor)
	testutil.ExpectFalse(t, requests[testproto.TestBufferAttachRequestOpcode].Destructor)
	testutil.ExpectFalse(t, testproto.TestBufferInterface.Events[0].Destructor)
}

func TestDispatchDestroy(t *testing.T) {
	t.Parallel()
	buffer := testproto.NewTestBuffer(4, 2)
	objects := wire.ObjectMap{}
	objects.Add(buffer.Handle())
	var retired []wire.Handle
	ctx := &wire.DecodeCtx{
		Objects:   objects,
		OnDestroy: func(h wire.Handle) { retired = append(retired, h) },
	}
	msg := marshal(t, 4, &testproto.TestBufferDestroyRequest{})

	// A failing destructor leaves the object alive.
	server := bufferServer{destroyErr: errors.New("busy")}
	err := testproto.DispatchTestBufferRequest(ctx, buffer, msg, &server)
	testutil.AssertError(t, err)
	_, ok := objects.Lookup(4)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, 0, len(retired))

	server.destroyErr = nil
	err = testproto.DispatchTestBufferRequest(ctx, buffer, msg, &server)
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, server.destroyed)
	_, ok = objects.Lookup(4)
	testutil.ExpectFalse(t, ok)
	testutil.ExpectSliceEq(t, []wire.Handle{buffer.Handle()}, retired)

	// Attach is not a destructor.
	objects.Add(buffer.Handle())
	attach := marshal(t, 4, &testproto.TestBufferAttachRequest{
		Data:   10,
		Meta:   11,
		Format: testproto.TestBufferFormatArgb8888,
	})
	ctx.Fds = wire.NewFdQueue(attach.Fds...)
	testutil.AssertNoError(t, testproto.DispatchTestBufferRequest(ctx, buffer, attach, &server))
	_, ok = objects.Lookup(4)
	testutil.ExpectTrue(t, ok)
}

func TestSetLabelWithoutObjectTable(t *testing.T) {
	t.Parallel()
	msg := marshal(t, 4, &testproto.TestBufferSetLabelRequest{})
	buffer, err := testproto.AsTestBuffer(wire.NewHandle(4, testproto.TestBufferInterfaceName, 0))
	testutil.AssertNoError(t, err)

	var server bufferServer
	err = testproto.DispatchTestBufferRequest(&wire.DecodeCtx{}, buffer, msg, &server)
	testutil.ExpectErrorIs(t, wire.ErrUnknownOpcode, err)
}
