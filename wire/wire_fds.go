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

// FdQueue holds file descriptors received out of band on one connection,
// in arrival order. Each fd argument of a decoded message pops exactly one
// descriptor from the front.
type FdQueue struct {
	fds []int
}

// NewFdQueue returns a queue holding fds.
func NewFdQueue(fds ...int) *FdQueue {
	return &FdQueue{fds: append([]int(nil), fds...)}
}

// Push appends descriptors received with the next chunk of bytes.
func (q *FdQueue) Push(fds ...int) {
	q.fds = append(q.fds, fds...)
}

// Pop removes and returns the oldest descriptor.
func (q *FdQueue) Pop() (int, error) {
	if q == nil || len(q.fds) == 0 {
		return -1, ErrFdQueueEmpty
	}
	fd := q.fds[0]
	q.fds = q.fds[1:]
	return fd, nil
}

func (q *FdQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.fds)
}

// Drain removes and returns all queued descriptors, so the caller can close
// them when the connection is torn down.
func (q *FdQueue) Drain() []int {
	if q == nil {
		return nil
	}
	fds := q.fds
	q.fds = nil
	return fds
}
