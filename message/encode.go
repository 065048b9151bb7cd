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

package message

import (
	"encoding/binary"
	"net"

	"github.com/nabbar/rpclink/errors"
)

// Encode builds the scatter-gather vector for msg: the fixed header, the
// parameter descriptor vector, then the concatenated buffer-parameter
// payloads in descriptor order. It mirrors the single sendmsg the
// original runtime issues on both stream and datagram links - on a
// stream connection net.Buffers.WriteTo performs the equivalent writev.
//
// msg.ParamIn and msg.ParamOut must already reflect how msg.Params splits
// between in- and out-parameters; their sum must equal len(msg.Params).
// Encode sets msg.Length before returning, so callers never compute it
// themselves.
func Encode(msg *Message) (net.Buffers, error) {
	assertNoShared(msg.Params)

	if int(msg.ParamIn)+int(msg.ParamOut) != len(msg.Params) {
		return nil, errors.InvalidArgument.Error()
	}

	head := make([]byte, HeaderSize)
	descriptors := make([]byte, descriptorVectorSize(msg.ParamIn, msg.ParamOut))

	total := uint32(HeaderSize) + uint32(len(descriptors))
	payloads := make(net.Buffers, 0, len(msg.Params)+2)

	for i, p := range msg.Params {
		off := i * ParamSize
		descriptors[off] = byte(p.Kind)
		// bytes off+1..off+3 are padding, left zero.
		binary.LittleEndian.PutUint32(descriptors[off+4:off+8], p.Length)
		binary.LittleEndian.PutUint64(descriptors[off+8:off+16], p.Value)

		if p.Kind == KindBuffer {
			total += uint32(len(p.Buffer))
			payloads = append(payloads, p.Buffer)
		}
	}

	msg.Length = total

	binary.LittleEndian.PutUint32(head[0:4], msg.ID)
	binary.LittleEndian.PutUint32(head[4:8], msg.Length)
	head[8] = msg.Protocol
	head[9] = msg.Action
	head[10] = msg.ParamIn<<4 | msg.ParamOut&0x0f
	head[11] = 0

	out := make(net.Buffers, 0, len(payloads)+2)
	out = append(out, head, descriptors)
	out = append(out, payloads...)

	return out, nil
}
