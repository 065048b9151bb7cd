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

package server

import (
	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/link"
	"github.com/nabbar/rpclink/protocol"
	"github.com/nabbar/rpclink/protocol/control"
	"github.com/nabbar/rpclink/server/reactor"
)

// srv implements control.Hooks so the control protocol (subscribe,
// unsubscribe, error) can reach the client registry and link without
// protocol/control importing the server package.

// EnsureClient returns ctx.Handle's subscription bitmap, promoting an
// unregistered datagram peer into a registered client first if ctx.Addr
// is set and no record exists yet.
func (s *srv) EnsureClient(ctx protocol.Context) (*control.Bitmap, errors.Error) {
	if rec, ok := s.clients.Load(ctx.Handle); ok {
		return &rec.subs, nil
	}

	kind, local := splitHandle(ctx.Handle)
	if kind != kindDatagram || ctx.Addr == nil {
		rec := &clientRecord{kind: kind}
		s.clients.Store(ctx.Handle, rec)
		return &rec.subs, nil
	}

	newLocal, err := s.cfg.DatagramLink.CreateClient(link.RecvContext{Handle: local, Addr: ctx.Addr})
	if err != nil {
		return nil, err
	}

	newHandle := makeHandle(kindDatagram, newLocal)
	rec, _ := s.clients.LoadOrStore(newHandle, &clientRecord{kind: kindDatagram})
	s.addrIndex.Store(ctx.Addr.String(), newHandle)

	if s.cfg.Callbacks.ClientConnected != nil {
		s.cfg.Callbacks.ClientConnected(newHandle)
	}
	return &rec.subs, nil
}

// LookupClient returns handle's subscription bitmap without registering
// a record when none exists.
func (s *srv) LookupClient(handle uint64) (*control.Bitmap, bool) {
	rec, ok := s.clients.Load(handle)
	if !ok {
		return nil, false
	}
	return &rec.subs, true
}

// DestroyClient tears down handle's client record and link resources,
// firing clientDisconnected first.
func (s *srv) DestroyClient(handle uint64) errors.Error {
	return s.destroyClient(handle)
}

// clientLink resolves the link.Link and link-local handle a flat server
// handle belongs to.
func (s *srv) clientLink(handle uint64) (link.Link, linkKind, link.Handle, errors.Error) {
	kind, local := splitHandle(handle)
	l, err := s.resolveLink(kind)
	if err != nil {
		return nil, kind, 0, err
	}
	return l, kind, local, nil
}

// destroyClient is the shared teardown path for disconnect, explicit
// unsubscribe(0xFF), and Shutdown's enumeration.
func (s *srv) destroyClient(handle uint64) errors.Error {
	if _, ok := s.clients.Load(handle); !ok {
		return errors.NotFound.Error()
	}

	if s.cfg.Callbacks.ClientDisconnected != nil {
		s.cfg.Callbacks.ClientDisconnected(handle)
	}

	s.react.Remove(reactor.Handle(handle))
	s.clients.Delete(handle)

	l, _, local, err := s.clientLink(handle)
	if err != nil {
		return err
	}
	return l.DestroyClient(local)
}
