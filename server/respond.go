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
	"github.com/nabbar/rpclink/message"
	"github.com/nabbar/rpclink/protocol"
)

// Respond is spec.md §4.5's response path: the reply always carries the
// originating request's id, and goes out through send_client when the
// originator is a registered client, or through the link's address-based
// respond when it is still an unregistered datagram peer.
func (s *srv) Respond(ctx protocol.Context, msg *message.Message) errors.Error {
	msg.ID = ctx.ID

	if ctx.Addr != nil {
		l, err := s.resolveLink(kindDatagram)
		if err != nil {
			return err
		}
		_, local := splitHandle(s.datagramHandle)
		return l.Respond(link.RecvContext{Handle: local, Addr: ctx.Addr}, msg)
	}

	return s.SendEvent(ctx.Handle, msg)
}

// SendEvent delivers msg to one specific, already-registered client,
// regardless of its subscriptions - spec.md §4.5's targeted event.
func (s *srv) SendEvent(handle uint64, msg *message.Message) errors.Error {
	if _, ok := s.clients.Load(handle); !ok {
		return errors.NotFound.Error()
	}

	l, _, local, err := s.clientLink(handle)
	if err != nil {
		return err
	}
	return l.SendClient(local, msg)
}

// BroadcastEvent delivers msg to every client subscribed to msg.Protocol
// at the moment of enumeration. Per-client send errors are logged but
// never abort the broadcast, per spec.md §4.5.
func (s *srv) BroadcastEvent(msg *message.Message) errors.Error {
	s.clients.Range(func(handle uint64, rec *clientRecord) bool {
		if !rec.subs.IsSet(msg.Protocol) {
			return true
		}

		l, err := s.resolveLink(rec.kind)
		if err != nil {
			return true
		}
		_, local := splitHandle(handle)

		cp := *msg
		if sendErr := l.SendClient(local, &cp); sendErr != nil {
			s.log.WithClient(handle).WithProtocol(msg.Protocol).WithError(sendErr).
				Debug("broadcast delivery failed for client")
			return true
		}
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.BroadcastDelivered(msg.Protocol)
		}
		return true
	})

	return nil
}
