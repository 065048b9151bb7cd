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

// Package protocol holds the server's protocol dispatch table: each
// registered protocol id owns an ordered table of action descriptors,
// opaque callbacks the server core invokes by (protocol, action) index.
// The built-in control protocol (id 0) lives in the protocol/control
// subpackage.
package protocol

import (
	"net"

	"github.com/nabbar/rpclink/atomic"
	"github.com/nabbar/rpclink/errors"
)

// AllProtocols is the 0xFF sentinel for "every protocol id" used by the
// control protocol's subscribe/unsubscribe and never usable as an
// ordinary registered protocol id.
const AllProtocols uint8 = 0xFF

// Context is handed to every action callback: the originating handle,
// the request id being answered, and a cursor into the receive buffer
// positioned just past the message header. Addr is only set for a
// datagram peer not yet promoted to a registered client, mirroring
// link.RecvContext; it is nil for every stream client and every
// already-registered datagram client, and is how a later Respond call
// reaches an unregistered peer by address instead of by handle.
type Context struct {
	Handle uint64
	ID     uint32
	Cursor []byte
	Addr   net.Addr
}

// Action is an opaque callback invoked with the receive context and the
// parameter buffer that follows the message header.
type Action func(ctx Context)

// Table is one protocol's ordered action descriptors, indexed by action
// id.
type Table struct {
	ID      uint8
	Actions []Action
}

// Lookup returns the action registered at actionID, or false if out of
// range.
func (t Table) Lookup(actionID uint8) (Action, bool) {
	if int(actionID) >= len(t.Actions) {
		return nil, false
	}
	return t.Actions[actionID], true
}

// Registry is the server's keyed set of registered protocol tables,
// guarded internally so register/unregister/lookup are all safe to call
// from the event loop and from worker goroutines invoking actions.
type Registry struct {
	m atomic.MapTyped[uint8, Table]
}

// NewRegistry returns an empty protocol registry.
func NewRegistry() *Registry {
	return &Registry{m: atomic.NewMapTyped[uint8, Table]()}
}

// Register installs table under its own protocol id. Registering over
// an existing id replaces it.
func (r *Registry) Register(table Table) errors.Error {
	if table.ID == AllProtocols {
		return errors.InvalidArgument.Error()
	}
	r.m.Store(table.ID, table)
	return nil
}

// Unregister removes the protocol table for id, if present.
func (r *Registry) Unregister(id uint8) errors.Error {
	if _, ok := r.m.Load(id); !ok {
		return errors.NotFound.Error()
	}
	r.m.Delete(id)
	return nil
}

// Lookup resolves the action at (protocolID, actionID).
func (r *Registry) Lookup(protocolID, actionID uint8) (Action, errors.Error) {
	table, ok := r.m.Load(protocolID)
	if !ok {
		return nil, errors.NotFound.Error()
	}
	action, ok := table.Lookup(actionID)
	if !ok {
		return nil, errors.NotFound.Error()
	}
	return action, nil
}
