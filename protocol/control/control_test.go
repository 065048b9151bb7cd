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

package control_test

import (
	"encoding/binary"
	"sync"

	liberr "github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/protocol"
	"github.com/nabbar/rpclink/protocol/control"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeHooks is a minimal in-memory stand-in for the server's client
// registry, just enough to exercise the control actions in isolation.
type fakeHooks struct {
	mu        sync.Mutex
	clients   map[uint64]*control.Bitmap
	destroyed map[uint64]bool
}

func newFakeHooks() *fakeHooks {
	return &fakeHooks{
		clients:   map[uint64]*control.Bitmap{},
		destroyed: map[uint64]bool{},
	}
}

func (f *fakeHooks) EnsureClient(ctx protocol.Context) (*control.Bitmap, liberr.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.clients[ctx.Handle]
	if !ok {
		b = &control.Bitmap{}
		f.clients[ctx.Handle] = b
	}
	return b, nil
}

// ensure exposes the same lookup used by the tests below, without going
// through an action, to read back a handle's bitmap after dispatch.
func (f *fakeHooks) ensure(handle uint64) *control.Bitmap {
	b, _ := f.EnsureClient(protocol.Context{Handle: handle})
	return b
}

func (f *fakeHooks) LookupClient(handle uint64) (*control.Bitmap, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.clients[handle]
	return b, ok
}

func (f *fakeHooks) DestroyClient(handle uint64) liberr.Error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed[handle] = true
	delete(f.clients, handle)
	return nil
}

// paramCursor builds the single scalar8-descriptor cursor subscribe and
// unsubscribe expect: a 16-byte descriptor with protocolID in the low
// byte of the value field.
func paramCursor(protocolID uint8) []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b[8:16], uint64(protocolID))
	return b
}

var _ = Describe("control protocol", func() {
	It("registers as protocol id 0 with three action slots", func() {
		hooks := newFakeHooks()
		table := control.New(hooks)
		Expect(table.ID).To(Equal(control.ProtocolID))
		Expect(len(table.Actions)).To(Equal(3))
	})

	It("subscribe creates a client record and sets the requested bit", func() {
		hooks := newFakeHooks()
		table := control.New(hooks)
		action, ok := table.Lookup(control.ActionSubscribe)
		Expect(ok).To(BeTrue())

		action(protocol.Context{Handle: 7, Cursor: paramCursor(5)})

		bitmap := hooks.ensure(7)
		Expect(bitmap.IsSet(5)).To(BeTrue())
	})

	It("subscribe(0xFF) sets every bit", func() {
		hooks := newFakeHooks()
		table := control.New(hooks)
		action, _ := table.Lookup(control.ActionSubscribe)

		action(protocol.Context{Handle: 1, Cursor: paramCursor(control.AllProtocols)})

		bitmap := hooks.ensure(1)
		Expect(bitmap.IsSet(0)).To(BeTrue())
		Expect(bitmap.IsSet(255)).To(BeTrue())
	})

	It("unsubscribe clears only the requested bit", func() {
		hooks := newFakeHooks()
		table := control.New(hooks)
		sub, _ := table.Lookup(control.ActionSubscribe)
		unsub, _ := table.Lookup(control.ActionUnsubscribe)

		sub(protocol.Context{Handle: 2, Cursor: paramCursor(5)})
		sub(protocol.Context{Handle: 2, Cursor: paramCursor(9)})
		unsub(protocol.Context{Handle: 2, Cursor: paramCursor(5)})

		bitmap := hooks.ensure(2)
		Expect(bitmap.IsSet(5)).To(BeFalse())
		Expect(bitmap.IsSet(9)).To(BeTrue())
		Expect(hooks.destroyed[2]).To(BeFalse())
	})

	It("unsubscribe(0xFF) clears every bit and destroys the client", func() {
		hooks := newFakeHooks()
		table := control.New(hooks)
		sub, _ := table.Lookup(control.ActionSubscribe)
		unsub, _ := table.Lookup(control.ActionUnsubscribe)

		sub(protocol.Context{Handle: 3, Cursor: paramCursor(5)})
		unsub(protocol.Context{Handle: 3, Cursor: paramCursor(control.AllProtocols)})

		Expect(hooks.destroyed[3]).To(BeTrue())
	})

	It("unsubscribe(0xFF) on an unknown handle is a no-op", func() {
		hooks := newFakeHooks()
		table := control.New(hooks)
		unsub, _ := table.Lookup(control.ActionUnsubscribe)

		unsub(protocol.Context{Handle: 99, Cursor: paramCursor(control.AllProtocols)})

		_, ok := hooks.clients[99]
		Expect(ok).To(BeFalse())
		Expect(hooks.destroyed[99]).To(BeFalse())
	})

	It("encodes a server-originated error notification", func() {
		msg := control.EncodeError(42, 7)
		Expect(msg.Protocol).To(Equal(control.ProtocolID))
		Expect(msg.Action).To(Equal(control.ActionError))
		Expect(msg.ID).To(Equal(uint32(42)))
		Expect(msg.ParamOut).To(Equal(uint8(1)))
		Expect(msg.Params[0].Value).To(Equal(uint64(7)))
	})
})
