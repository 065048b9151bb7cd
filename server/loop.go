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
	"context"
	"net"
	"time"

	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/link"
	"github.com/nabbar/rpclink/message"
	"github.com/nabbar/rpclink/protocol"
	"github.com/nabbar/rpclink/protocol/control"
	"github.com/nabbar/rpclink/server/reactor"
	"github.com/nabbar/rpclink/worker"
)

// MainLoop drains the reactor's event channel one event at a time,
// classifying and dispatching each via handleEvent, until ctx is
// cancelled, and then runs Shutdown - spec.md §4.5's main_loop.
func (s *srv) MainLoop(ctx context.Context) errors.Error {
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.react.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	for {
		ev, ok := s.react.Wait()
		if !ok {
			break
		}
		s.handleEvent(ev)
	}

	return s.Shutdown(context.Background())
}

// handleEvent is spec.md §4.5's handle_event classification.
func (s *srv) handleEvent(ev reactor.Event) {
	handle := uint64(ev.Handle)
	kind, local := splitHandle(handle)

	switch {
	case s.hasStream && handle == s.streamHandle:
		s.acceptStream()

	case s.hasDatagram && handle == s.datagramHandle:
		s.drainDatagram()

	case ev.Mask&reactor.Disconnect != 0:
		s.destroyClient(handle)

	default:
		if kind == kindStream {
			s.drainStreamClient(handle, local)
		}
	}
}

// acceptStream handles a readable stream listener: accept, register,
// watch, and fire clientConnected.
func (s *srv) acceptStream() {
	local, err := s.cfg.StreamLink.Accept()
	if err != nil {
		s.log.WithError(err).Debug("accept failed")
		return
	}

	handle := makeHandle(kindStream, local)
	s.clients.Store(handle, &clientRecord{kind: kindStream})

	if w, werr := s.cfg.StreamLink.Watcher(local); werr == nil {
		s.react.Add(reactor.Handle(handle), w)
	}
	if s.cfg.Callbacks.ClientConnected != nil {
		s.cfg.Callbacks.ClientConnected(handle)
	}
}

// drainStreamClient reads exactly one message from a stream client and
// dispatches it; any read failure is fatal for that connection (spec.md
// §7 taxonomy item 3).
func (s *srv) drainStreamClient(handle uint64, local link.Handle) {
	buf, err := s.buffers.Get()
	if err != nil {
		s.log.WithClient(handle).WithError(err).Error("no receive buffer available")
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.MessageDropped("no_buffer")
		}
		return
	}

	msg, rerr := s.cfg.StreamLink.RecvClient(local, buf)
	if rerr != nil {
		s.buffers.Put(buf)
		s.log.WithClient(handle).WithError(rerr).Warn("stream client read failed, closing")
		s.destroyClient(handle)
		return
	}

	if s.cfg.Metrics != nil {
		s.cfg.Metrics.MessageReceived("stream")
	}
	s.dispatch(handle, nil, msg, buf)
}

// drainDatagram loops receiving packets off the shared datagram socket
// until NO_DATA, dispatching each (spec.md §4.5 "datagram-listen ->
// drain").
func (s *srv) drainDatagram() {
	for {
		buf, err := s.buffers.Get()
		if err != nil {
			s.log.WithError(err).Error("no receive buffer available")
			if s.cfg.Metrics != nil {
				s.cfg.Metrics.MessageDropped("no_buffer")
			}
			return
		}

		ctx, payload, rerr := s.cfg.DatagramLink.RecvPacket(buf)
		if rerr != nil {
			s.buffers.Put(buf)
			if rerr.IsCode(errors.NoData) {
				return
			}
			s.log.WithError(rerr).Debug("datagram read failed")
			return
		}

		msg, derr := message.Decode(payload)
		if derr != nil {
			s.buffers.Put(buf)
			s.log.WithError(derr).Info("malformed datagram dropped")
			if s.cfg.Metrics != nil {
				s.cfg.Metrics.MessageDropped("malformed")
			}
			continue
		}

		if s.cfg.Metrics != nil {
			s.cfg.Metrics.MessageReceived("datagram")
		}
		handle, addr := s.resolveDatagramPeer(ctx.Addr)
		s.dispatch(handle, addr, msg, buf)
	}
}

// resolveDatagramPeer maps a packet's source address to an already
// promoted client's handle, if any, via addrIndex. unixgram.RecvPacket
// always reports the shared listener's own handle rather than a
// per-client one, so this side index is what lets the server tell an
// already-subscribed peer's packet from a still-unregistered one's.
func (s *srv) resolveDatagramPeer(addr net.Addr) (handle uint64, unregisteredAddr net.Addr) {
	if addr == nil {
		return s.datagramHandle, nil
	}
	if v, ok := s.addrIndex.Load(addr.String()); ok {
		return v.(uint64), nil
	}
	return s.datagramHandle, addr
}

// dispatch is spec.md §4.5's dispatch: single-threaded mode invokes the
// action inline, multi-threaded mode hands the job to the worker pool.
func (s *srv) dispatch(handle uint64, addr net.Addr, msg *message.Message, buf []byte) {
	if s.pool == nil {
		s.invokeAction(handle, addr, msg, buf)
		s.buffers.Put(buf)
		return
	}

	job := worker.Job{
		Handle: handle,
		Addr:   addr,
		Buffer: buf,
		Cleanup: func() {
			s.buffers.Put(buf)
		},
	}
	if err := s.pool.Dispatch(job); err != nil {
		s.log.WithClient(handle).WithError(err).Error("worker queue full, message dropped")
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.MessageDropped("queue_full")
		}
		s.buffers.Put(buf)
	}
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.SetArenaInUse(s.buffers.InUse())
	}
}

// runJob is the worker pool's Handler: it re-decodes the header from the
// raw buffer and invokes the action, then runs the job's cleanup.
func (s *srv) runJob(job worker.Job, _ []byte) {
	msg, err := message.Decode(job.Buffer)
	if err != nil {
		s.log.WithClient(job.Handle).WithError(err).Info("malformed queued message dropped")
	} else {
		s.invokeAction(job.Handle, job.Addr, msg, job.Buffer)
	}
	if job.Cleanup != nil {
		job.Cleanup()
	}
}

// invokeAction is spec.md §4.5's server_invoke_action: resolve the
// action under the registry lock, and on miss answer with a
// control-protocol error(id, NOT_FOUND); otherwise call it unlocked.
func (s *srv) invokeAction(handle uint64, addr net.Addr, msg *message.Message, buf []byte) {
	s.mu.Lock()
	action, err := s.protocols.Lookup(msg.Protocol, msg.Action)
	s.mu.Unlock()

	ctx := protocol.Context{
		Handle: handle,
		ID:     msg.ID,
		Cursor: buf[message.HeaderSize:msg.Length],
		Addr:   addr,
	}

	if err != nil {
		s.log.WithClient(handle).WithProtocol(msg.Protocol).WithAction(uint32(msg.Action)).
			Info("unknown protocol/action, notifying originator")
		_ = s.Respond(ctx, control.EncodeError(msg.ID, errors.NotFound.Uint16()))
		return
	}

	if s.cfg.Metrics == nil {
		action(ctx)
		return
	}

	start := time.Now()
	action(ctx)
	s.cfg.Metrics.ActionInvoked(msg.Protocol, msg.Action, time.Since(start).Seconds())
}
