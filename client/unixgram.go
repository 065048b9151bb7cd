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
	"net"
	"os"

	"github.com/nabbar/rpclink/buffer"
	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/message"
)

// DialDatagram binds a local SOCK_DGRAM peer address and connects it to
// the server's datagram socket at path, so Write sends to the server and
// Read receives whatever the server addresses back to this peer. A
// connectionless client still needs a bound local path - an unbound
// socket has no return address the server can reply to - so localPath
// must be a filesystem path this process owns; Close removes it.
func DialDatagram(path, localPath string, maxMessageSize int) (Client, errors.Error) {
	_ = os.Remove(localPath)

	laddr, rerr := net.ResolveUnixAddr("unixgram", localPath)
	if rerr != nil {
		return nil, errors.InvalidArgument.Error(rerr)
	}
	raddr, rerr := net.ResolveUnixAddr("unixgram", path)
	if rerr != nil {
		return nil, errors.InvalidArgument.Error(rerr)
	}

	local, lerr := net.ListenUnixgram("unixgram", laddr)
	if lerr != nil {
		return nil, errors.Pipe.Error(lerr)
	}
	if cerr := local.SetReadBuffer(maxMessageSize + buffer.ContextOverhead); cerr != nil {
		_ = local.Close()
		return nil, errors.Pipe.Error(cerr)
	}

	size := maxMessageSize + buffer.ContextOverhead
	readOne := func() (*message.Message, errors.Error) {
		buf := make([]byte, size)
		n, _, rderr := local.ReadFromUnix(buf)
		if rderr != nil {
			return nil, errors.Pipe.Error(rderr)
		}
		return message.Decode(buf[:n])
	}

	cn := newConn(&datagramConn{local: local, raddr: raddr, localPath: localPath}, readOne)
	return cn, nil
}

// datagramConn adapts a connectionless *net.UnixConn bound to a fixed
// peer into the wireConn shape conn expects (Write always targets raddr).
type datagramConn struct {
	local     *net.UnixConn
	raddr     *net.UnixAddr
	localPath string
}

func (d *datagramConn) Write(b []byte) (int, error) { return d.local.WriteToUnix(b, d.raddr) }

func (d *datagramConn) Close() error {
	err := d.local.Close()
	_ = os.Remove(d.localPath)
	return err
}
