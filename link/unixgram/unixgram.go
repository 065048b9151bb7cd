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

// Package unixgram implements link.Link over a connectionless
// (SOCK_DGRAM) UNIX-domain socket: one shared socket, with peers either
// replied-to directly by address or promoted to registered clients
// through the control protocol's subscribe path.
package unixgram

import (
	"net"
	"os"
	"sync"

	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/link"
	"github.com/nabbar/rpclink/message"
	"github.com/nabbar/rpclink/server/reactor"
)

// ListenerHandle is the fixed handle of the link's shared socket.
const ListenerHandle link.Handle = 1

type packet struct {
	addr *net.UnixAddr
	data []byte
}

// Link is the datagram link.Link implementation.
type Link struct {
	path    string
	perm    os.FileMode
	maxSize int

	conn *net.UnixConn

	mu      sync.Mutex
	clients map[link.Handle]*net.UnixAddr
	next    uint64

	pending chan packet
}

// New builds a datagram Link bound to path once Listen is called.
func New(path string, perm os.FileMode, maxMessageSize int) *Link {
	return &Link{
		path:    path,
		perm:    perm,
		maxSize: maxMessageSize,
		clients: make(map[link.Handle]*net.UnixAddr),
		next:    uint64(ListenerHandle) + 1,
		pending: make(chan packet, 64),
	}
}

func (l *Link) Listen() (link.Handle, errors.Error) {
	_ = os.Remove(l.path)

	addr, err := net.ResolveUnixAddr("unixgram", l.path)
	if err != nil {
		return 0, errors.InvalidArgument.Error(err)
	}

	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return 0, errors.NotSupported.Error(err)
	}
	if l.perm != 0 {
		_ = os.Chmod(l.path, l.perm)
	}

	l.conn = conn
	return ListenerHandle, nil
}

func (l *Link) Accept() (link.Handle, errors.Error) {
	return 0, errors.NotSupported.Error()
}

func (l *Link) Watcher(h link.Handle) (reactor.Watcher, errors.Error) {
	if h != ListenerHandle {
		return nil, errors.NotFound.Error()
	}
	return &recvWatcher{conn: l.conn, size: l.maxSize + 512, out: l.pending}, nil
}

func (l *Link) RecvPacket(buf []byte) (link.RecvContext, []byte, errors.Error) {
	select {
	case p, ok := <-l.pending:
		if !ok {
			return link.RecvContext{}, nil, errors.Pipe.Error()
		}
		if len(p.data) > l.maxSize {
			return link.RecvContext{}, nil, errors.TooLarge.Error()
		}
		if len(p.data) < message.HeaderSize {
			return link.RecvContext{}, nil, errors.Pipe.Error()
		}
		n := copy(buf, p.data)
		return link.RecvContext{Handle: ListenerHandle, Addr: p.addr}, buf[:n], nil
	default:
		return link.RecvContext{}, nil, errors.NoData.Error()
	}
}

func (l *Link) RecvClient(link.Handle, []byte) (*message.Message, errors.Error) {
	return nil, errors.NotSupported.Error()
}

func (l *Link) SendClient(h link.Handle, msg *message.Message) errors.Error {
	l.mu.Lock()
	addr, ok := l.clients[h]
	l.mu.Unlock()
	if !ok {
		return errors.NotFound.Error()
	}
	return l.writeTo(msg, addr)
}

func (l *Link) Respond(ctx link.RecvContext, msg *message.Message) errors.Error {
	addr, ok := ctx.Addr.(*net.UnixAddr)
	if !ok || addr == nil {
		return errors.InvalidArgument.Error()
	}
	return l.writeTo(msg, addr)
}

func (l *Link) writeTo(msg *message.Message, addr *net.UnixAddr) errors.Error {
	bufs, err := message.Encode(msg)
	if err != nil {
		return errors.InvalidArgument.Error(err)
	}

	flat := make([]byte, 0, msg.Length)
	for _, b := range bufs {
		flat = append(flat, b...)
	}

	if _, werr := l.conn.WriteToUnix(flat, addr); werr != nil {
		return errors.Pipe.Error(werr)
	}
	return nil
}

func (l *Link) CreateClient(ctx link.RecvContext) (link.Handle, errors.Error) {
	addr, ok := ctx.Addr.(*net.UnixAddr)
	if !ok || addr == nil {
		return 0, errors.InvalidArgument.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for h, a := range l.clients {
		if a.String() == addr.String() {
			return h, nil
		}
	}

	h := link.Handle(l.next)
	l.next++
	l.clients[h] = addr
	return h, nil
}

func (l *Link) DestroyClient(h link.Handle) errors.Error {
	l.mu.Lock()
	_, ok := l.clients[h]
	delete(l.clients, h)
	l.mu.Unlock()

	if !ok {
		return errors.NotFound.Error()
	}
	return nil
}

func (l *Link) Destroy() errors.Error {
	l.mu.Lock()
	l.clients = make(map[link.Handle]*net.UnixAddr)
	l.mu.Unlock()

	if l.conn != nil {
		_ = l.conn.Close()
	}
	_ = os.Remove(l.path)
	return nil
}

// recvWatcher performs the blocking ReadFromUnix itself and hands the
// datagram to the link through a channel: unlike a stream socket, a
// UNIX datagram socket has no non-destructive way to ask "is there
// something to read", so the watcher's wait IS the read.
type recvWatcher struct {
	conn *net.UnixConn
	size int
	out  chan packet
}

func (w *recvWatcher) WaitReadable() error {
	buf := make([]byte, w.size)
	n, addr, err := w.conn.ReadFromUnix(buf)
	if err != nil {
		return err
	}
	w.out <- packet{addr: addr, data: buf[:n]}
	return nil
}
