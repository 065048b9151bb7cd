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

package control

import (
	"encoding/binary"

	"github.com/nabbar/rpclink/protocol"
)

// protocolIDParam reads the single scalar8 parameter subscribe and
// unsubscribe both take: one 16-byte descriptor at the front of the
// cursor, its value in the low byte of the little-endian 8-byte value
// field. This is the control protocol's own fixed, one-parameter wire
// shape, not the generic multi-parameter decode path general actions use.
func protocolIDParam(cursor []byte) uint8 {
	if len(cursor) < 16 {
		return AllProtocols
	}
	return byte(binary.LittleEndian.Uint64(cursor[8:16]))
}

// New builds the control protocol's table (id 0): subscribe, unsubscribe,
// and a reserved error slot, all driven through hooks so the control
// protocol stays ignorant of the server's client registry and link.
func New(hooks Hooks) protocol.Table {
	return protocol.Table{
		ID: ProtocolID,
		Actions: []protocol.Action{
			ActionSubscribe:   subscribeAction(hooks),
			ActionUnsubscribe: unsubscribeAction(hooks),
			ActionError:       errorAction(),
		},
	}
}

// subscribeAction sets the requested protocol's subscription bit for the
// calling handle, registering a client record first if none exists yet.
func subscribeAction(hooks Hooks) protocol.Action {
	return func(ctx protocol.Context) {
		bitmap, err := hooks.EnsureClient(ctx)
		if err != nil {
			return
		}
		bitmap.Set(protocolIDParam(ctx.Cursor))
	}
}

// unsubscribeAction clears the requested protocol's subscription bit. The
// AllProtocols sentinel clears every bit AND additionally destroys the
// client record outright, per the control protocol's "unsubscribe all"
// semantics doubling as client teardown. Unlike subscribeAction, a
// client with no existing record is a no-op: unsubscribe must never
// manufacture the record it would then immediately tear down.
func unsubscribeAction(hooks Hooks) protocol.Action {
	return func(ctx protocol.Context) {
		bitmap, ok := hooks.LookupClient(ctx.Handle)
		if !ok {
			return
		}

		id := protocolIDParam(ctx.Cursor)
		bitmap.Clear(id)

		if id == AllProtocols {
			_ = hooks.DestroyClient(ctx.Handle)
		}
	}
}

// errorAction occupies the reserved error slot. error(id, code) is a
// server-originated notification built with EncodeError, never a
// client-invoked action, so the slot is a guarded no-op.
func errorAction() protocol.Action {
	return func(protocol.Context) {}
}
