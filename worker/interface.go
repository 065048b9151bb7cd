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

// Package worker implements the multi-threaded execution mode's fixed
// pool: N goroutines draining one shared FIFO queue, each carrying its
// own scratchpad outgoing buffer, supervised by golang.org/x/sync/errgroup
// so a panic in one protocol action surfaces instead of silently killing
// a worker.
package worker

import (
	"net"

	"github.com/nabbar/rpclink/errors"
)

// Job is one dispatched message, ready for a worker to invoke the
// matching protocol action against it. Buffer holds the raw framed
// message exactly as the link delivered it (header, descriptor vector,
// payloads); the handler re-derives the header and parameter cursor from
// it rather than carrying them as separate fields. Addr is only set for
// a datagram peer not yet promoted to a registered client.
type Job struct {
	Handle  uint64
	Addr    net.Addr
	Buffer  []byte
	Cleanup func()
}

// Pool is the capability set the server core drives: non-blocking push
// and drain-then-join shutdown.
//
// The original runtime looks up a worker's scratchpad outgoing buffer
// through thread-local storage from inside the action callback. Go has
// no goroutine-local storage, so this port passes each worker's
// scratchpad explicitly as an argument to Handler instead - the
// goroutine that owns a buffer is simply the goroutine holding the
// reference, which is the idiomatic Go substitute for TLS.
type Pool interface {
	// Dispatch enqueues job without blocking; it fails with OutOfMemory
	// if the shared queue is full, per the resource-exhaustion policy of
	// logging and dropping rather than closing the connection.
	Dispatch(job Job) errors.Error

	// Close signals every worker to drain its remaining queued jobs and
	// stop, then waits for them to exit.
	Close()
}

// Handler invokes the protocol action for one dispatched job, given the
// calling worker's own scratchpad outgoing buffer.
type Handler func(job Job, scratchpad []byte)
