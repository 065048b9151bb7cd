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

package client

import (
	"context"
	"io"
	"sync"
	stdatomic "sync/atomic"

	"github.com/nabbar/rpclink/atomic"
	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/message"
	"github.com/nabbar/rpclink/protocol/control"
)

// wireConn is the minimal surface conn needs from the underlying
// transport: write a whole encoded message, and close it. Dial's
// *net.UnixConn satisfies this directly; DialDatagram adapts its bound
// datagram peer to it.
type wireConn interface {
	io.Writer
	io.Closer
}

// conn is the shared implementation behind Dial and DialDatagram: the
// two differ only in how one message is framed off the wire, handled by
// the readOne function each constructor supplies.
type conn struct {
	c wireConn

	seq     uint64
	pending atomic.MapTyped[uint32, chan *message.Message]
	events  chan *message.Message

	readOne func() (*message.Message, errors.Error)

	closeOnce sync.Once
	closed    int32
}

func newConn(c wireConn, readOne func() (*message.Message, errors.Error)) *conn {
	cn := &conn{
		c:       c,
		pending: atomic.NewMapTyped[uint32, chan *message.Message](),
		events:  make(chan *message.Message, 64),
		readOne: readOne,
	}
	go cn.readLoop()
	return cn
}

func (cn *conn) readLoop() {
	for {
		msg, err := cn.readOne()
		if err != nil {
			close(cn.events)
			return
		}

		if ch, ok := cn.pending.Load(msg.ID); ok {
			cn.pending.Delete(msg.ID)
			ch <- msg
			continue
		}

		select {
		case cn.events <- msg:
		default:
		}
	}
}

func (cn *conn) nextID() uint32 {
	return uint32(stdatomic.AddUint64(&cn.seq, 1))
}

func (cn *conn) send(msg *message.Message) errors.Error {
	bufs, err := message.Encode(msg)
	if err != nil {
		return errors.InvalidArgument.Error(err)
	}
	if _, werr := bufs.WriteTo(cn.c); werr != nil {
		return errors.Pipe.Error(werr)
	}
	return nil
}

func (cn *conn) Call(ctx context.Context, msg *message.Message) (*message.Message, errors.Error) {
	msg.ID = cn.nextID()

	ch := make(chan *message.Message, 1)
	cn.pending.Store(msg.ID, ch)

	if err := cn.send(msg); err != nil {
		cn.pending.Delete(msg.ID)
		return nil, err
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		cn.pending.Delete(msg.ID)
		return nil, errors.NoData.Error(ctx.Err())
	}
}

func (cn *conn) Send(msg *message.Message) errors.Error {
	msg.ID = cn.nextID()
	return cn.send(msg)
}

func (cn *conn) subscribeMsg(action uint8, protocolID uint8) *message.Message {
	return &message.Message{
		Header: message.Header{Protocol: control.ProtocolID, Action: action, ParamIn: 1},
		Params: []message.Param{{Kind: message.KindScalar8, Value: uint64(protocolID)}},
	}
}

func (cn *conn) Subscribe(protocolID uint8) errors.Error {
	return cn.Send(cn.subscribeMsg(control.ActionSubscribe, protocolID))
}

func (cn *conn) Unsubscribe(protocolID uint8) errors.Error {
	return cn.Send(cn.subscribeMsg(control.ActionUnsubscribe, protocolID))
}

func (cn *conn) Events() <-chan *message.Message {
	return cn.events
}

func (cn *conn) Close() errors.Error {
	var cerr error
	cn.closeOnce.Do(func() {
		stdatomic.StoreInt32(&cn.closed, 1)
		cerr = cn.c.Close()
	})
	if cerr != nil {
		return errors.Pipe.Error(cerr)
	}
	return nil
}
