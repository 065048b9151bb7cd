/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package reactor is the runtime's substitute for the platform I/O
// readiness facility (epoll/iocp) the server core treats as an assumed
// external service. Rather than binding raw file descriptors, it
// multiplexes one goroutine per watched handle onto a single buffered
// event channel, preserving the create/add/remove/wait contract the
// server's event loop drives.
package reactor

// EventMask mirrors the readiness facility's mask bits.
type EventMask uint8

const (
	// In marks a handle as readable.
	In EventMask = 1 << iota
	// Disconnect marks a handle's peer as gone.
	Disconnect
)

// Handle is an opaque connection identifier, shared with the link and
// client registry.
type Handle uint64

// Event is one readiness notification.
type Event struct {
	Handle Handle
	Mask   EventMask
}

// Watcher blocks until its handle becomes readable or its peer
// disconnects. A Watcher is consumed by exactly one goroutine and must
// be safe to call WaitReadable on repeatedly until Close or an error.
type Watcher interface {
	// WaitReadable blocks until data is available (returns nil) or the
	// peer is gone (returns a non-nil error, ending this watcher's life).
	WaitReadable() error
}
