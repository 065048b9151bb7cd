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
	"sync"

	"github.com/nabbar/rpclink/atomic"
	"github.com/nabbar/rpclink/buffer"
	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/link"
	"github.com/nabbar/rpclink/logger"
	"github.com/nabbar/rpclink/protocol"
	"github.com/nabbar/rpclink/protocol/control"
	"github.com/nabbar/rpclink/server/reactor"
	"github.com/nabbar/rpclink/worker"
)

// srv is the concrete Server. Fields named after spec.md §3's "Server
// singleton" data model: link(s), readiness handle, client registry,
// protocol registry, buffer provider, optional worker pool, callbacks,
// and a single coarse mutex (mu, the sync_object) held around the
// protocol lookup during dispatch and around the running flag; the
// registries themselves are concurrency-safe maps.
type srv struct {
	cfg Config
	log logger.Logger

	mu      sync.Mutex
	running bool

	react     *reactor.Reactor
	buffers   buffer.Provider
	pool      worker.Pool
	protocols *protocol.Registry
	clients   atomic.MapTyped[uint64, *clientRecord]

	// addrIndex resolves a datagram peer's address back to its promoted
	// client handle. unixgram.RecvPacket always reports the shared
	// listener's own handle, never a per-client one, so the server keeps
	// this side index (populated on subscribe, via EnsureClient) to tell
	// a known client's packet from a still-unregistered peer's.
	addrIndex sync.Map // string -> uint64

	hasStream    bool
	streamHandle uint64
	hasDatagram  bool
	datagramHandle uint64
}

// New builds and starts listening per cfg: the equivalent of spec.md
// §4.5's initialize(config), minus the implicit first MainLoop call.
func New(cfg Config) (Server, errors.Error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.New()
	}

	s := &srv{
		cfg:       cfg,
		log:       cfg.Logger,
		react:     reactor.New(cfg.ReadinessQueueDepth),
		protocols: protocol.NewRegistry(),
		clients:   atomic.NewMapTyped[uint64, *clientRecord](),
	}

	if cfg.Workers >= 2 {
		s.buffers = buffer.NewArena(cfg.Workers, cfg.MaxMessageSize)
		s.pool = worker.New(cfg.Workers, s.buffers.AllocationSize(), s.runJob)
	} else {
		s.buffers = buffer.NewStaticPair(cfg.MaxMessageSize)
	}

	if err := s.protocols.Register(control.New(s)); err != nil {
		return nil, err
	}

	if cfg.StreamLink != nil {
		local, err := cfg.StreamLink.Listen()
		if err != nil {
			if !err.IsCode(errors.NotSupported) {
				return nil, err
			}
		} else {
			s.hasStream = true
			s.streamHandle = makeHandle(kindStream, local)
			if w, werr := cfg.StreamLink.Watcher(local); werr == nil {
				s.react.Add(reactor.Handle(s.streamHandle), w)
			}
		}
	}

	if cfg.DatagramLink != nil {
		local, err := cfg.DatagramLink.Listen()
		if err != nil {
			if !err.IsCode(errors.NotSupported) {
				return nil, err
			}
		} else {
			s.hasDatagram = true
			s.datagramHandle = makeHandle(kindDatagram, local)
			if w, werr := cfg.DatagramLink.Watcher(local); werr == nil {
				s.react.Add(reactor.Handle(s.datagramHandle), w)
			}
		}
	}

	if !s.hasStream && !s.hasDatagram {
		return nil, errors.NotSupported.Error()
	}

	s.running = true
	return s, nil
}

func (s *srv) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RegisterProtocol installs table, rejecting the reserved control
// protocol id (0).
func (s *srv) RegisterProtocol(table protocol.Table) errors.Error {
	if table.ID == control.ProtocolID {
		return errors.InvalidArgument.Error()
	}
	return s.protocols.Register(table)
}

func (s *srv) UnregisterProtocol(id uint8) errors.Error {
	if id == control.ProtocolID {
		return errors.InvalidArgument.Error()
	}
	return s.protocols.Unregister(id)
}

// resolveLink returns the link.Link owning kind, or NotSupported if the
// server never set that kind up.
func (s *srv) resolveLink(kind linkKind) (link.Link, errors.Error) {
	switch kind {
	case kindStream:
		if !s.hasStream {
			return nil, errors.NotSupported.Error()
		}
		return s.cfg.StreamLink, nil
	case kindDatagram:
		if !s.hasDatagram {
			return nil, errors.NotSupported.Error()
		}
		return s.cfg.DatagramLink, nil
	default:
		return nil, errors.InvalidArgument.Error()
	}
}
