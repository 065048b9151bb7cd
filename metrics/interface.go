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

// Package metrics collects the runtime's fixed set of prometheus
// series: a trimmed, fixed-cardinality stand-in for the teacher's
// generic prometheus/metrics+pool registration pattern, sized to
// exactly what the server core emits.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector is the set of series a Server publishes. Every method is
// safe for concurrent use, matching the client_golang collector
// contract.
type Collector interface {
	// MessageReceived counts one inbound message on the given link kind
	// ("stream" or "datagram").
	MessageReceived(link string)

	// MessageDropped counts one message that could not be processed
	// (allocation failure, decode failure), tagged by reason.
	MessageDropped(reason string)

	// ActionInvoked records the latency of one dispatched action, keyed
	// by protocol and action id.
	ActionInvoked(protocolID, actionID uint8, seconds float64)

	// BroadcastDelivered counts one successful per-client send during a
	// BroadcastEvent fan-out, keyed by protocol id.
	BroadcastDelivered(protocolID uint8)

	// SetArenaInUse reports the current number of blocks on loan from
	// the arena buffer provider.
	SetArenaInUse(blocks int)

	// Registry exposes the underlying prometheus.Registerer so a caller
	// can mount it behind an HTTP handler.
	Registry() *prometheus.Registry
}

// New builds a Collector registered against a fresh prometheus.Registry.
func New() Collector {
	return newCollector()
}
