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

// Package unix implements link.Link over a connection-oriented
// (SOCK_STREAM) UNIX-domain socket: one listener, one net.UnixConn per
// accepted client, framed with the message package.
package unix

import (
	"bufio"
	"io"
	"net"
	"os"
	"sync"

	"github.com/nabbar/rpclink/buffer"
	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/link"
	"github.com/nabbar/rpclink/message"
	"github.com/nabbar/rpclink/server/reactor"
)

// ListenerHandle is the fixed handle of the link's own listening socket.
const ListenerHandle link.Handle = 1

// frame is one fully-received message handed from a client's watcher
// goroutine to RecvClient, or a terminal read error.
type frame struct {
	data []byte
	err  errors.Error
}

type client struct {
	conn    *net.UnixConn
	pending chan frame
}

// Link is the stream link.Link implementation.
type Link struct {
	path    string
	perm    os.FileMode
	maxSize int

	ln *net.UnixListener

	mu      sync.Mutex
	clients map[link.Handle]*client
	next    uint64

	pending chan *net.UnixConn
}

// New builds a stream Link bound to path once Listen is called, with
// permissions perm and an upper bound of maxMessageSize bytes per
// message.
func New(path string, perm os.FileMode, maxMessageSize int) *Link {
	return &Link{
		path:    path,
		perm:    perm,
		maxSize: maxMessageSize,
		clients: make(map[link.Handle]*client),
		next:    uint64(ListenerHandle) + 1,
		pending: make(chan *net.UnixConn, 64),
	}
}

func (l *Link) Listen() (link.Handle, errors.Error) {
	_ = os.Remove(l.path)

	addr, err := net.ResolveUnixAddr("unix", l.path)
	if err != nil {
		return 0, errors.InvalidArgument.Error(err)
	}

	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		return 0, errors.NotSupported.Error(err)
	}
	if l.perm != 0 {
		_ = os.Chmod(l.path, l.perm)
	}

	l.ln = ln
	return ListenerHandle, nil
}

func (l *Link) Accept() (link.Handle, errors.Error) {
	conn, ok := <-l.pending
	if !ok || conn == nil {
		return 0, errors.Pipe.Error()
	}

	l.mu.Lock()
	h := link.Handle(l.next)
	l.next++
	l.clients[h] = &client{conn: conn, pending: make(chan frame, 1)}
	l.mu.Unlock()

	return h, nil
}

func (l *Link) Watcher(h link.Handle) (reactor.Watcher, errors.Error) {
	if h == ListenerHandle {
		return &acceptWatcher{ln: l.ln, out: l.pending}, nil
	}

	l.mu.Lock()
	c, ok := l.clients[h]
	l.mu.Unlock()
	if !ok {
		return nil, errors.NotFound.Error()
	}

	return &streamWatcher{
		r:       bufio.NewReaderSize(c.conn, l.maxSize+buffer.ContextOverhead),
		maxSize: l.maxSize,
		out:     c.pending,
	}, nil
}

func (l *Link) RecvPacket([]byte) (link.RecvContext, []byte, errors.Error) {
	return link.RecvContext{}, nil, errors.NotSupported.Error()
}

// RecvClient never touches the socket itself: the client's streamWatcher
// owns the bufio.Reader exclusively and already read one full framed
// message by the time its readiness event reached the caller, so this is
// a plain channel receive of whatever that watcher goroutine produced.
func (l *Link) RecvClient(h link.Handle, buf []byte) (*message.Message, errors.Error) {
	l.mu.Lock()
	c, ok := l.clients[h]
	l.mu.Unlock()
	if !ok {
		return nil, errors.NotFound.Error()
	}

	fr, ok := <-c.pending
	if !ok {
		return nil, errors.Pipe.Error()
	}
	if fr.err != nil {
		return nil, fr.err
	}

	if len(buf) < len(fr.data) {
		return nil, errors.InvalidArgument.Error()
	}
	n := copy(buf, fr.data)

	return message.Decode(buf[:n])
}

func (l *Link) SendClient(h link.Handle, msg *message.Message) errors.Error {
	l.mu.Lock()
	c, ok := l.clients[h]
	l.mu.Unlock()
	if !ok {
		return errors.NotFound.Error()
	}

	bufs, err := message.Encode(msg)
	if err != nil {
		return errors.InvalidArgument.Error(err)
	}

	if _, werr := bufs.WriteTo(c.conn); werr != nil {
		return errors.Pipe.Error(werr)
	}
	return nil
}

func (l *Link) Respond(link.RecvContext, *message.Message) errors.Error {
	return errors.NotSupported.Error()
}

func (l *Link) CreateClient(link.RecvContext) (link.Handle, errors.Error) {
	return 0, errors.NotSupported.Error()
}

func (l *Link) DestroyClient(h link.Handle) errors.Error {
	l.mu.Lock()
	c, ok := l.clients[h]
	delete(l.clients, h)
	l.mu.Unlock()

	if !ok {
		return errors.NotFound.Error()
	}
	_ = c.conn.Close()
	return nil
}

func (l *Link) Destroy() errors.Error {
	l.mu.Lock()
	for h, c := range l.clients {
		_ = c.conn.Close()
		delete(l.clients, h)
	}
	l.mu.Unlock()

	if l.ln != nil {
		_ = l.ln.Close()
	}
	_ = os.Remove(l.path)
	return nil
}

// acceptWatcher blocks on the listener's Accept and hands the accepted
// connection to the link through a channel, so the reactor's readiness
// event and the server's Accept call never race over the same conn.
type acceptWatcher struct {
	ln  *net.UnixListener
	out chan *net.UnixConn
}

func (w *acceptWatcher) WaitReadable() error {
	conn, err := w.ln.AcceptUnix()
	if err != nil {
		return err
	}
	w.out <- conn
	return nil
}

// streamWatcher owns its client's bufio.Reader exclusively: it is the
// only goroutine that ever touches it. WaitReadable blocks for one full
// framed message (header then payload) and hands the raw framed bytes to
// RecvClient over out, so a readiness event never drives a blocking read
// on the reactor's shared consumer side - only the dedicated per-client
// pump goroutine blocks.
type streamWatcher struct {
	r       *bufio.Reader
	maxSize int
	out     chan frame
}

func (w *streamWatcher) WaitReadable() error {
	head := make([]byte, message.HeaderSize)
	if _, err := io.ReadFull(w.r, head); err != nil {
		w.out <- frame{err: errors.Pipe.Error(err)}
		return err
	}

	hdr, derr := message.DecodeHeader(head)
	if derr != nil {
		w.out <- frame{err: derr}
		return derr
	}

	if int(hdr.Length) > w.maxSize {
		w.out <- frame{err: errors.TooLarge.Error()}
		return errors.TooLarge.Error()
	}
	if int(hdr.Length) < message.HeaderSize {
		w.out <- frame{err: errors.Pipe.Error()}
		return errors.Pipe.Error()
	}

	full := make([]byte, hdr.Length)
	copy(full, head)
	if hdr.Length > message.HeaderSize {
		if _, err := io.ReadFull(w.r, full[message.HeaderSize:]); err != nil {
			w.out <- frame{err: errors.Pipe.Error(err)}
			return err
		}
	}

	w.out <- frame{data: full}
	return nil
}
