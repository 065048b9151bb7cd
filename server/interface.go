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

// Package server is the runtime's core: it owns the link(s), the buffer
// provider, the optional worker pool, the protocol and client registries,
// and the readiness reactor, and drives the single event loop that
// classifies, dispatches, and answers every message. The built-in
// control protocol (protocol/control) is registered automatically.
package server

import (
	"context"

	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/link"
	"github.com/nabbar/rpclink/logger"
	"github.com/nabbar/rpclink/message"
	"github.com/nabbar/rpclink/metrics"
	"github.com/nabbar/rpclink/protocol"
)

// Callbacks are the optional lifecycle hooks fired around client
// connect/disconnect.
type Callbacks struct {
	// ClientConnected fires after a stream accept or a datagram peer's
	// first successful subscribe.
	ClientConnected func(handle uint64)
	// ClientDisconnected fires before the client's link resources are
	// released, on disconnect or on unsubscribe(0xFF).
	ClientDisconnected func(handle uint64)
}

// Config is the server's startup configuration, equivalent to spec.md
// §6's gracht_server_configuration. At least one of StreamLink and
// DatagramLink must be set; both absent is a hard failure.
type Config struct {
	Logger logger.Logger

	// StreamLink and DatagramLink provide C2 for each transport kind. A
	// nil link means that kind is not offered, tolerated as long as the
	// other is set (spec.md §4.5 step 5).
	StreamLink   link.Link
	DatagramLink link.Link

	// MaxMessageSize bounds a single message; the buffer provider's
	// allocation size is this plus buffer.ContextOverhead.
	MaxMessageSize int

	// Workers selects the execution mode: 0 or 1 is single-threaded
	// cooperative, >=2 is the multi-threaded worker pool with that many
	// workers.
	Workers int

	// ReadinessQueueDepth sizes the reactor's event channel; 0 uses its
	// own default.
	ReadinessQueueDepth int

	Callbacks Callbacks

	// Metrics, when set, receives the counters and histograms described
	// in the metrics package. Nil disables instrumentation.
	Metrics metrics.Collector
}

func (c Config) validate() errors.Error {
	if c.StreamLink == nil && c.DatagramLink == nil {
		return errors.InvalidArgument.Error()
	}
	if c.MaxMessageSize <= 0 {
		return errors.InvalidArgument.Error()
	}
	return nil
}

// Server is the runtime's process-wide singleton: one Initialize-like
// New, one MainLoop, one implicit Shutdown. Re-running MainLoop after
// Shutdown is not supported, matching spec.md §3's "re-initialization
// before shutdown fails" by construction (a new Server is required).
type Server interface {
	// RegisterProtocol installs a protocol action table. Registering
	// protocol id 0 (the control protocol) is rejected.
	RegisterProtocol(table protocol.Table) errors.Error
	// UnregisterProtocol removes a previously registered protocol.
	UnregisterProtocol(id uint8) errors.Error

	// Respond answers ctx's originating message, using send_client if
	// the handle is registered, or the link's address-based respond
	// otherwise (spec.md §4.5 "Response path").
	Respond(ctx protocol.Context, msg *message.Message) errors.Error
	// SendEvent delivers msg to one specific, already-registered client,
	// regardless of its subscriptions.
	SendEvent(handle uint64, msg *message.Message) errors.Error
	// BroadcastEvent delivers msg to every client subscribed to
	// msg.Protocol. Per-client send errors never abort the broadcast.
	BroadcastEvent(msg *message.Message) errors.Error

	// MainLoop runs the event loop until ctx is cancelled, then runs
	// Shutdown itself before returning (spec.md §4.5 "On exit, run
	// shutdown").
	MainLoop(ctx context.Context) errors.Error
	// Shutdown tears the server down: every client is destroyed, then
	// the reactor, worker pool, buffer provider and links are closed.
	// Calls after the first do nothing; MainLoop calls it automatically
	// on exit.
	Shutdown(ctx context.Context) errors.Error

	IsRunning() bool
}
