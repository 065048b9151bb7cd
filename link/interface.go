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

// Package link unifies stream-oriented and datagram-oriented UNIX-domain
// sockets into a single message transport, capability-tested by the
// server core rather than switched on by socket type. The two concrete
// implementations, link/unix and link/unixgram, are the only transports
// the runtime supports; remote/network sockets are out of scope.
package link

import (
	"net"

	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/message"
	"github.com/nabbar/rpclink/server/reactor"
)

// Handle identifies one endpoint: a listener, the shared datagram
// socket, or one accepted/registered client. It is numerically
// compatible with reactor.Handle so the server can hand it straight to
// the reactor.
type Handle uint64

// Reactor converts a link Handle to the type the reactor package uses.
func (h Handle) Reactor() reactor.Handle {
	return reactor.Handle(h)
}

// RecvContext accompanies every received message: the handle it arrived
// on, and, for a datagram peer not yet promoted to a registered client,
// the address to reply to.
type RecvContext struct {
	Handle Handle
	Addr   net.Addr
}

// Link is the capability set every transport exposes to the server
// core: listen, accept, recv_packet, recv_client, send_client, respond,
// create_client, destroy_client, destroy.
type Link interface {
	// Listen creates and binds the endpoint, returning its handle. A
	// link that does not support its own kind returns NotSupported;
	// the server tolerates that from at most one of its two links.
	Listen() (Handle, errors.Error)

	// Accept is only meaningful on a stream listener; it blocks until a
	// peer connects and returns the new client's handle.
	Accept() (Handle, errors.Error)

	// Watcher returns the reactor.Watcher the server registers for
	// handle, so the main loop learns when it is readable.
	Watcher(h Handle) (reactor.Watcher, errors.Error)

	// RecvPacket performs one datagram read into buf, returning the
	// peer's context and the filled part of buf. NoData means the
	// socket has nothing pending right now.
	RecvPacket(buf []byte) (RecvContext, []byte, errors.Error)

	// RecvClient reads exactly one message from a registered stream
	// client into buf.
	RecvClient(h Handle, buf []byte) (*message.Message, errors.Error)

	// SendClient writes msg to a registered client.
	SendClient(h Handle, msg *message.Message) errors.Error

	// Respond replies to an unregistered datagram peer using the
	// address captured in ctx.
	Respond(ctx RecvContext, msg *message.Message) errors.Error

	// CreateClient promotes a datagram peer named by ctx into a
	// registered client and returns its handle.
	CreateClient(ctx RecvContext) (Handle, errors.Error)

	// DestroyClient releases a registered client's resources.
	DestroyClient(h Handle) errors.Error

	// Destroy releases the listener/socket itself.
	Destroy() errors.Error
}
