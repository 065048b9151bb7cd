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

// Package client is the runtime's client-side link layer: the
// counterpart to package server, dialing one of the two UNIX socket
// transports and speaking the same message codec and control protocol.
package client

import (
	"context"

	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/message"
)

// Client is a single connected (stream) or bound (datagram) peer.
type Client interface {
	// Call sends msg and waits for the response carrying the same id,
	// or for ctx to end. msg.ID is overwritten with the client's own
	// sequence counter before sending.
	Call(ctx context.Context, msg *message.Message) (*message.Message, errors.Error)

	// Send transmits msg without waiting for any reply (a fire-and-forget
	// event, spec.md §5's "client-originated event").
	Send(msg *message.Message) errors.Error

	// Subscribe requests delivery of every broadcast event tagged with
	// protocolID; 0xFF subscribes to all.
	Subscribe(protocolID uint8) errors.Error
	// Unsubscribe withdraws a prior Subscribe; 0xFF unsubscribes from
	// everything and, server-side, tears the client record down.
	Unsubscribe(protocolID uint8) errors.Error

	// Events delivers messages the server sent that did not correlate to
	// an outstanding Call: broadcasts, and replies (such as the control
	// protocol's error(id, code) notification) whose id matches no pending
	// Call. A control error answering a Call is returned by that Call as
	// its response.
	Events() <-chan *message.Message

	// Close releases the underlying connection and stops the reader
	// goroutine.
	Close() errors.Error
}
