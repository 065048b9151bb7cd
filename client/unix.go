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
	"bufio"
	"io"
	"net"

	"github.com/nabbar/rpclink/buffer"
	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/message"
)

// Dial connects to a stream (SOCK_STREAM) link at path. maxMessageSize
// must match the server's configured bound; it sizes the per-message
// read buffer.
func Dial(path string, maxMessageSize int) (Client, errors.Error) {
	c, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, errors.Pipe.Error(err)
	}

	r := bufio.NewReaderSize(c, maxMessageSize+buffer.ContextOverhead)
	readOne := func() (*message.Message, errors.Error) {
		head := make([]byte, message.HeaderSize)
		if _, ioerr := io.ReadFull(r, head); ioerr != nil {
			return nil, errors.Pipe.Error(ioerr)
		}

		h, derr := message.DecodeHeader(head)
		if derr != nil {
			return nil, derr
		}

		rest := make([]byte, int(h.Length)-message.HeaderSize)
		if len(rest) > 0 {
			if _, ioerr := io.ReadFull(r, rest); ioerr != nil {
				return nil, errors.Pipe.Error(ioerr)
			}
		}

		full := append(head, rest...)
		return message.Decode(full)
	}

	return newConn(c, readOne), nil
}
